package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".tfstacks"), paths.HomeDir)
	assert.Equal(t, filepath.Join(home, ".tfstacks", "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(home, ".tfstacks", "cache"), paths.CacheDir)
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env override wins", func(t *testing.T) {
		t.Setenv("TFSTACKS_CONFIG", "/etc/tfstacks/config.yaml")
		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/etc/tfstacks/config.yaml", path)
	})

	t.Run("default without env", func(t *testing.T) {
		t.Setenv("TFSTACKS_CONFIG", "")
		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Contains(t, path, filepath.Join(".tfstacks", "config.yaml"))
	})
}

func TestGetCacheDir(t *testing.T) {
	t.Setenv("TFSTACKS_CACHE_DIR", "/var/cache/tfstacks")
	dir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/tfstacks", dir)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/etc/config.yaml", "/etc/config.yaml"},
		{"relative untouched", "conf/infra.yaml", "conf/infra.yaml"},
		{"bare tilde", "~", home},
		{"tilde slash", "~/stacks/infra.yaml", filepath.Join(home, "stacks", "infra.yaml")},
		{"tilde user unsupported", "~other/x", "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
