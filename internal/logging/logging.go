// Package logging configures logrus for the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// Setup returns a logger writing to out at the named level. Colors are only
// enabled when out is a terminal and NO_COLOR is unset.
func Setup(level string, out io.Writer) (*logrus.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !IsTerminal(out),
		DisableTimestamp: true,
	})
	return logger, nil
}

// IsTerminal reports whether w is attached to a terminal that accepts color.
func IsTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTTY(w)
}

// IsTTY reports whether stream is backed by a terminal file descriptor.
func IsTTY(stream any) bool {
	type fd interface {
		Fd() uintptr
	}
	f, ok := stream.(fd)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
