package appdata

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T, dir string) {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", dir)
		t.Setenv("HOMEDRIVE", "")
		t.Setenv("HOMEPATH", "")
	default:
		t.Setenv("HOME", dir)
	}
}

func unsetHome(t *testing.T) {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", "")
		t.Setenv("HOMEDRIVE", "")
		t.Setenv("HOMEPATH", "")
	default:
		t.Setenv("HOME", "")
	}
}

// testLocation returns a Location rooted in a fresh temp dir.
func testLocation(t *testing.T) Location {
	t.Helper()
	loc, err := NewLocation(t.TempDir())
	require.NoError(t, err)
	return loc
}

// writeConfigFile creates a file that SetConfigPath can point at and returns
// its canonical path.
func writeConfigFile(t *testing.T, name string) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("# canzero network config\n"), 0o644))
	return path
}

func writeStorageFile(t *testing.T, loc Location, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(loc.Dir, 0o755))
	require.NoError(t, os.WriteFile(loc.File, []byte(contents), 0o644))
}

func quietLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func mustRead(t *testing.T, loc Location, opts ...Option) *AppData {
	t.Helper()
	logger, _ := quietLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	a, err := Read(context.Background(), loc, opts...)
	require.NoError(t, err)
	return a
}
