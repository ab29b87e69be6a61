// Where: internal/infra/cache/store.go
// What: Discovery cache abstraction over a local directory or an S3 prefix.
// Why: Discovery and import generation may run on different machines in CI.
package cache

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned when a cached file does not exist.
var ErrNotFound = errors.New("cache entry not found")

// Store reads and writes named JSON payloads under one location.
type Store interface {
	// Exists reports whether anything has been written under this location.
	Exists(ctx context.Context) (bool, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, payload []byte) error
	// Sub returns a store rooted at a child location.
	Sub(name string) Store
	Location() string
}

// Open picks the backend for location: `s3://bucket/prefix` or a local directory.
// factory is only used for S3 locations and may be nil otherwise.
func Open(ctx context.Context, location string, factory ClientFactory, cfg S3Config) (Store, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = "."
	}
	if !strings.HasPrefix(location, s3Scheme) {
		return NewLocalStore(location), nil
	}
	bucket, prefix, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		factory = AWSClientFactory{}
	}
	client, err := factory.S3(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open s3 cache: %w", err)
	}
	return NewS3Store(client, bucket, prefix), nil
}

const s3Scheme = "s3://"

func parseS3Location(location string) (string, string, error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, prefix, _ := strings.Cut(rest, "/")
	if strings.TrimSpace(bucket) == "" {
		return "", "", fmt.Errorf("invalid s3 cache location %q: bucket is required", location)
	}
	return bucket, cleanKey(prefix), nil
}

func cleanKey(key string) string {
	key = strings.Trim(key, "/")
	if key == "" {
		return ""
	}
	return path.Clean(key)
}
