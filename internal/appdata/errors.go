package appdata

import (
	"errors"
	"fmt"
)

var (
	// ErrBrokenConfig reports an appdata file that exists but does not decode.
	ErrBrokenConfig = errors.New("broken appdata file")
	// ErrInvalidConfigPath reports a config path that resolves to a directory.
	ErrInvalidConfigPath = errors.New("invalid config path")
	// ErrNoHomeDir reports that the current user has no resolvable home
	// directory, so the default storage root cannot be derived.
	ErrNoHomeDir = errors.New("no home directory")
)

// ParseError represents a TOML decode failure.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse appdata %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ParseError against ErrBrokenConfig.
func (e *ParseError) Is(target error) bool {
	return target == ErrBrokenConfig
}
