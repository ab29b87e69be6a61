// Where: internal/infra/cache/local.go
// What: Directory-backed discovery cache.
// Why: The default layout matches the files operators already inspect by hand.
package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dbt-marketing-analytics/dbtops/internal/infra/fileops"
)

// LocalStore keeps entries as files inside Dir.
type LocalStore struct {
	Dir string
}

// NewLocalStore returns a store rooted at dir. The directory is created on first write.
func NewLocalStore(dir string) LocalStore {
	return LocalStore{Dir: dir}
}

func (s LocalStore) Exists(context.Context) (bool, error) {
	info, err := os.Stat(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat cache dir: %w", err)
	}
	return info.IsDir(), nil
}

func (s LocalStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.path(name), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path(name), err)
	}
	return data, nil
}

func (s LocalStore) Write(_ context.Context, name string, payload []byte) error {
	return fileops.WriteFile(s.path(name), payload)
}

func (s LocalStore) Sub(name string) Store {
	return LocalStore{Dir: filepath.Join(s.Dir, name)}
}

func (s LocalStore) Location() string {
	return s.Dir
}

func (s LocalStore) path(name string) string {
	return filepath.Join(s.Dir, name)
}
