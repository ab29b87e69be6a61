// Where: internal/infra/cache/s3.go
// What: S3-backed discovery cache.
// Why: Share discovery output between CI jobs through a bucket prefix.
package cache

import (
	"context"
	"fmt"
	"path"
)

// S3API is the subset of S3 operations the cache needs.
type S3API interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, body []byte) error
	HasPrefix(ctx context.Context, bucket, prefix string) (bool, error)
}

// S3Store keeps entries as objects under Bucket/Prefix.
type S3Store struct {
	Client S3API
	Bucket string
	Prefix string
}

// NewS3Store returns a store for bucket and key prefix.
func NewS3Store(client S3API, bucket, prefix string) S3Store {
	return S3Store{Client: client, Bucket: bucket, Prefix: cleanKey(prefix)}
}

func (s S3Store) Exists(ctx context.Context) (bool, error) {
	prefix := s.Prefix
	if prefix != "" {
		prefix += "/"
	}
	ok, err := s.Client.HasPrefix(ctx, s.Bucket, prefix)
	if err != nil {
		return false, fmt.Errorf("list %s: %w", s.Location(), err)
	}
	return ok, nil
}

func (s S3Store) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.Client.GetObject(ctx, s.Bucket, s.key(name))
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.Bucket, s.key(name), err)
	}
	return data, nil
}

func (s S3Store) Write(ctx context.Context, name string, payload []byte) error {
	if err := s.Client.PutObject(ctx, s.Bucket, s.key(name), payload); err != nil {
		return fmt.Errorf("write s3://%s/%s: %w", s.Bucket, s.key(name), err)
	}
	return nil
}

func (s S3Store) Sub(name string) Store {
	return S3Store{Client: s.Client, Bucket: s.Bucket, Prefix: s.key(name)}
}

func (s S3Store) Location() string {
	if s.Prefix == "" {
		return s3Scheme + s.Bucket
	}
	return s3Scheme + s.Bucket + "/" + s.Prefix
}

func (s S3Store) key(name string) string {
	return cleanKey(path.Join(s.Prefix, name))
}
