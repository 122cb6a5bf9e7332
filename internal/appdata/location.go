package appdata

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	storageDirName  = ".canzero"
	storageFileName = "canzero.toml"
)

// Location names where an appdata record lives on disk.
type Location struct {
	Root string // storage root, normally the user's home directory
	Dir  string // <Root>/.canzero
	File string // <Dir>/canzero.toml
}

// NewLocation derives the storage directory and file beneath root.
func NewLocation(root string) (Location, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return Location{}, errors.New("appdata storage root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Location{}, fmt.Errorf("resolve storage root %q: %w", root, err)
	}
	dir := filepath.Join(abs, storageDirName)
	return Location{
		Root: abs,
		Dir:  dir,
		File: filepath.Join(dir, storageFileName),
	}, nil
}

// DefaultLocation resolves the storage location under the current user's
// home directory.
func DefaultLocation() (Location, error) {
	home, err := systemHome.resolve()
	if err != nil {
		return Location{}, err
	}
	return NewLocation(home)
}
