package appdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// homeLookup finds the storage root for DefaultLocation. The environment is
// consulted on every call, ahead of os.UserHomeDir, so a rewritten HOME wins.
type homeLookup struct {
	getenv      func(string) string
	userHomeDir func() (string, error)
}

var systemHome = homeLookup{
	getenv:      os.Getenv,
	userHomeDir: os.UserHomeDir,
}

func (h homeLookup) resolve() (string, error) {
	if dir := h.fromEnv(); dir != "" {
		return filepath.Clean(dir), nil
	}
	dir, err := h.userHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoHomeDir, err)
	}
	if strings.TrimSpace(dir) == "" {
		return "", ErrNoHomeDir
	}
	return filepath.Clean(dir), nil
}

// fromEnv checks HOME, then HOMEDRIVE+HOMEPATH, then USERPROFILE.
func (h homeLookup) fromEnv() string {
	if home := h.env("HOME"); home != "" {
		return home
	}
	drive, path := h.env("HOMEDRIVE"), h.env("HOMEPATH")
	if drive != "" && path != "" {
		return filepath.Join(drive, path)
	}
	return h.env("USERPROFILE")
}

func (h homeLookup) env(key string) string {
	return strings.TrimSpace(h.getenv(key))
}
