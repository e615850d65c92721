package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tourdrop/tourdrop/internal/fault"
	"github.com/tourdrop/tourdrop/internal/gpx"
)

func init() {
	Register(KindFilesystem, writeFilesystem)
}

// writeFilesystem writes tracks as plain text files under a local or
// network-mounted path. Directory creation is recursive and idempotent;
// existing files are overwritten.
func writeFilesystem(ctx context.Context, dest Destination, tracks []Track, folder string) error {
	if dest.FS.Path == "" {
		return fault.WithDetail(fault.ConfigIncomplete, "filesystem path is required")
	}

	targetDir := dest.FS.Path
	if folder != "" {
		targetDir = filepath.Join(dest.FS.Path, folder)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return classifyFSError(err, targetDir)
	}

	for _, track := range tracks {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := gpx.SafeFileName(track.Name) + ".gpx"
		path := filepath.Join(targetDir, name)
		if err := os.WriteFile(path, []byte(track.GPX), 0o644); err != nil {
			return classifyFSError(err, path)
		}
	}
	return nil
}

func classifyFSError(err error, path string) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fault.WithDetail(fault.PermissionDenied, path)
	case errors.Is(err, fs.ErrNotExist):
		return fault.WithDetail(fault.PathNotFound, path)
	default:
		return fault.WithDetail(fault.PathNotFound, err.Error())
	}
}
