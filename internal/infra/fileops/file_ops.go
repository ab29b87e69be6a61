// Where: internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for generated command and tfvars files.
// Why: Keep output permissions and directory creation consistent across workflows.
package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Generated files are meant to be reviewed and committed.
const filePerm fs.FileMode = 0o644

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile writes content to path, creating parent directories. A directory
// already sitting at path is an error rather than being replaced.
func WriteFile(path string, content []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if DirExists(path) {
		return fmt.Errorf("write %s: path is a directory", path)
	}
	if err := os.WriteFile(path, content, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FirstExisting returns the first candidate that is a regular file.
func FirstExisting(candidates ...string) (string, bool, error) {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		if !info.IsDir() {
			return path, true, nil
		}
	}
	return "", false, nil
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
