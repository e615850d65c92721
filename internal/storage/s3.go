package storage

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tourdrop/tourdrop/internal/fault"
	"github.com/tourdrop/tourdrop/internal/gpx"
)

func init() {
	Register(KindObjectStorage, writeObjectStorage)
}

// writeObjectStorage puts one object per track into an S3-compatible
// bucket. Writes are independent puts; a failure partway through leaves
// earlier objects in place.
func writeObjectStorage(ctx context.Context, dest Destination, tracks []Track, folder string) error {
	cfg := dest.S3
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return fault.WithDetail(fault.ConfigIncomplete, "endpoint, bucket, access_key, and secret_key are required")
	}

	client, err := newS3Client(cfg)
	if err != nil {
		return fault.WithDetail(fault.StorageConnectionFailed, err.Error())
	}

	prefix := ""
	if folder != "" {
		prefix = strings.TrimRight(folder, "/") + "/"
	}

	for _, track := range tracks {
		key := prefix + gpx.SafeFileName(track.Name) + ".gpx"
		body := strings.NewReader(track.GPX)
		_, err := client.PutObject(ctx, cfg.Bucket, key, body, int64(body.Len()), minio.PutObjectOptions{
			ContentType: "application/gpx+xml",
		})
		if err != nil {
			return classifyS3Error(err)
		}
	}
	return nil
}

func newS3Client(cfg S3Config) (*minio.Client, error) {
	endpoint := cfg.Endpoint
	secure := true
	if u, err := url.Parse(cfg.Endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		secure = u.Scheme != "http"
	}
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
}

// classifyS3Error maps minio/transport failures onto the fault taxonomy so
// the orchestrator never has to inspect S3 internals.
func classifyS3Error(err error) error {
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fault.New(fault.StorageConnectionFailed)
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchBucket":
		return fault.New(fault.StorageBucketNotFound)
	case "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fault.New(fault.StorageAuthFailed)
	case "AccessDenied":
		return fault.New(fault.StorageAccessDenied)
	}
	switch resp.StatusCode {
	case 404:
		return fault.New(fault.StorageBucketNotFound)
	case 403:
		return fault.New(fault.StorageAccessDenied)
	}
	if resp.Code == "" {
		return fault.WithDetail(fault.StorageConnectionFailed, err.Error())
	}
	return fault.WithDetail(fault.StorageConnectionFailed, resp.Code)
}
