package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultDirPerm is applied to every directory EnsureDir creates.
const DefaultDirPerm fs.FileMode = 0o755

// EnsureDir creates dir and any missing ancestors, parent first. Existing
// directories are left untouched. A non-directory in the way is an error.
func EnsureDir(dir string) error {
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("ensure dir %s: %w", dir, fs.ErrExist)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", dir, err)
	}

	if parent := filepath.Dir(dir); parent != dir {
		if err := EnsureDir(parent); err != nil {
			return err
		}
	}
	if err := os.Mkdir(dir, DefaultDirPerm); err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return nil
}

// Canonicalize returns the absolute form of path with every symlink resolved
// and relative segments removed. The path must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalize %q: %w", path, err)
	}
	return filepath.Clean(resolved), nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
