package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yourorg/photoapp/internal/iopkg"
)

type minioAPI interface {
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	FGetObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioClient talks to an S3-compatible MinIO endpoint with static credentials.
type MinioClient struct {
	client minioAPI
	bucket string
}

// NewMinio creates a MinioClient from opts.Endpoint and the static key pair.
func NewMinio(opts Options) (*MinioClient, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio: endpoint_url is required")
	}
	host, secure, err := splitEndpoint(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("minio: bad endpoint %q: %w", opts.Endpoint, err)
	}
	lookup := minio.BucketLookupAuto
	if opts.PathStyle {
		lookup = minio.BucketLookupPath
	}
	mc, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       secure,
		Region:       opts.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioClient{client: mc, bucket: opts.Bucket}, nil
}

func (m *MinioClient) Bucket() string { return m.bucket }

func (m *MinioClient) Upload(ctx context.Context, localPath, key string) (string, error) {
	_, err := m.client.FPutObject(ctx, m.bucket, key, localPath, minio.PutObjectOptions{ContentType: defaultContentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (m *MinioClient) Download(ctx context.Context, key, dir string) (string, error) {
	f, err := iopkg.CreateTemp(dir)
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	if err := m.client.FGetObject(ctx, m.bucket, key, name, minio.GetObjectOptions{}); err != nil {
		os.Remove(name)
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

func (m *MinioClient) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	n := 0
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return 0, obj.Err
		}
		n++
	}
	return n, nil
}

func (m *MinioClient) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinioClient) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}
