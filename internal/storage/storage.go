package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrNotFound is returned when an object key does not exist.
var ErrNotFound = errors.New("object not found")

// defaultContentType is stored with every uploaded object; keys always end in .jpg.
const defaultContentType = "image/jpeg"

// ObjectStore is the object-store gateway used by the catalog.
type ObjectStore interface {
	// Bucket returns the container name shown in the stats report.
	Bucket() string
	// Upload sends the whole local file to key and returns the key.
	Upload(ctx context.Context, localPath, key string) (string, error)
	// Download fetches key into a fresh temporary file inside dir and returns its path.
	// The caller owns the temporary file.
	Download(ctx context.Context, key, dir string) (string, error)
	// Count lists the bucket and returns the number of objects.
	Count(ctx context.Context) (int, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Options configures either backend.
type Options struct {
	Backend   string // aws (default) or minio
	Bucket    string
	Region    string
	Endpoint  string // optional custom endpoint URL
	PathStyle bool
	// CredentialsFile is used as the shared credentials file; Profile selects the section.
	CredentialsFile string
	Profile         string
	// Static credentials, used by the minio backend.
	AccessKey string
	SecretKey string
}

// New builds the backend selected by opts.Backend.
func New(ctx context.Context, opts Options) (ObjectStore, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: bucket name is required")
	}
	switch strings.ToLower(opts.Backend) {
	case "", "aws", "s3":
		return NewS3(ctx, opts)
	case "minio":
		return NewMinio(opts)
	default:
		return nil, errors.New("storage: unsupported backend " + opts.Backend)
	}
}

// splitEndpoint turns an endpoint URL into host[:port] and a TLS flag.
func splitEndpoint(ep string) (host string, secure bool, err error) {
	if !strings.Contains(ep, "://") {
		return ep, true, nil
	}
	u, err := url.Parse(ep)
	if err != nil {
		return "", false, err
	}
	return u.Host, u.Scheme == "https", nil
}
