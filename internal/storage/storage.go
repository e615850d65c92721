// Package storage hosts the destination adapters the exporter can write
// tracks to. Adapters register themselves at init time; a kind that is
// known but unregistered in this build is a capability gap, not an unknown
// destination.
package storage

import "context"

// Kind names a destination backend.
type Kind string

const (
	KindObjectStorage Kind = "object-storage"
	KindFilesystem    Kind = "filesystem"
	KindSMB           Kind = "smb"
)

// Track is one converted tour ready to be written: the raw tour name and
// the rendered GPX document.
type Track struct {
	Name string
	GPX  string
}

// S3Config holds the connection parameters for S3-compatible object storage.
type S3Config struct {
	Endpoint  string `json:"s3_endpoint"`
	Bucket    string `json:"s3_bucket"`
	AccessKey string `json:"s3_access_key"`
	SecretKey string `json:"s3_secret_key"`
}

// FSConfig holds the target path for a local or network-mounted filesystem.
type FSConfig struct {
	Path string `json:"nfs_path"`
}

// SMBConfig holds the connection parameters for an SMB share.
type SMBConfig struct {
	Server   string `json:"smb_server"`
	Share    string `json:"smb_share"`
	Username string `json:"smb_username"`
	Password string `json:"smb_password"`
	Path     string `json:"smb_path"`
}

// Destination selects a backend and carries its connection parameters.
// Exactly the sub-config matching Kind is consulted.
type Destination struct {
	Kind Kind
	S3   S3Config
	FS   FSConfig
	SMB  SMBConfig
}

// WriteFunc writes every track as one file/object named
// SafeFileName(name)+".gpx", optionally under the folder namespace.
// Mid-run failures leave earlier writes in place; there is no rollback.
type WriteFunc func(ctx context.Context, dest Destination, tracks []Track, folder string) error

var registry = map[Kind]WriteFunc{}

// Register installs an adapter for a destination kind. Called from adapter
// init functions only.
func Register(kind Kind, fn WriteFunc) {
	registry[kind] = fn
}

// Lookup returns the adapter registered for kind.
func Lookup(kind Kind) (WriteFunc, bool) {
	fn, ok := registry[kind]
	return fn, ok
}

// Known reports whether kind is a valid destination kind, registered or not.
func Known(kind Kind) bool {
	switch kind {
	case KindObjectStorage, KindFilesystem, KindSMB:
		return true
	}
	return false
}

// Available lists the kinds registered in this build.
func Available() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for _, k := range []Kind{KindObjectStorage, KindFilesystem, KindSMB} {
		if _, ok := registry[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
