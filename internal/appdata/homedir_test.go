package appdata

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeHome(env map[string]string, fallback string, fallbackErr error) homeLookup {
	return homeLookup{
		getenv: func(key string) string { return env[key] },
		userHomeDir: func() (string, error) {
			return fallback, fallbackErr
		},
	}
}

func TestHomeLookupOrder(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "home wins",
			env:  map[string]string{"HOME": "/home/pod", "USERPROFILE": "/users/pod"},
			want: "/home/pod",
		},
		{
			name: "drive and path",
			env:  map[string]string{"HOMEDRIVE": "C:", "HOMEPATH": "/users/pod", "USERPROFILE": "/profile"},
			want: filepath.Join("C:", "/users/pod"),
		},
		{
			name: "drive alone is ignored",
			env:  map[string]string{"HOMEDRIVE": "C:", "USERPROFILE": "/profile"},
			want: "/profile",
		},
		{
			name: "blank home falls through",
			env:  map[string]string{"HOME": "  ", "USERPROFILE": "/profile/"},
			want: filepath.Clean("/profile/"),
		},
		{
			name: "fallback",
			env:  map[string]string{},
			want: "/from/os",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := fakeHome(tc.env, "/from/os", nil).resolve()
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tc.want), got)
		})
	}
}

func TestHomeLookupFailureIsNoHomeDir(t *testing.T) {
	t.Parallel()
	cause := errors.New("$HOME is not defined")

	_, err := fakeHome(nil, "", cause).resolve()
	assert.ErrorIs(t, err, ErrNoHomeDir)
	assert.ErrorIs(t, err, cause)

	_, err = fakeHome(nil, " ", nil).resolve()
	assert.ErrorIs(t, err, ErrNoHomeDir)
}
