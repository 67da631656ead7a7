package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfstacks/cli/internal/testutil"
)

func TestLoaderLoad(t *testing.T) {
	t.Run("reads values from file", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "config.yaml", `
infraFile: stacks/prod.yaml
modulesDir: tf-modules
terraformBin: tofu
workers: 8
`)

		cfg, err := NewLoader().Load(path)
		require.NoError(t, err)

		assert.Equal(t, "stacks/prod.yaml", cfg.InfraFile)
		assert.Equal(t, "tf-modules", cfg.ModulesDir)
		assert.Equal(t, "tofu", cfg.TerraformBin)
		assert.Equal(t, 8, cfg.Workers)
	})

	t.Run("missing file yields zero config", func(t *testing.T) {
		t.Setenv("TFSTACKS_INFRA_FILE", "")
		cfg, err := NewLoader().Load("/nonexistent/config.yaml")
		require.NoError(t, err)
		assert.Empty(t, cfg.InfraFile)
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "config.yaml", "infraFile: from-file.yaml\n")
		t.Setenv("TFSTACKS_INFRA_FILE", "from-env.yaml")

		cfg, err := NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env.yaml", cfg.InfraFile)
	})

	t.Run("malformed file errors", func(t *testing.T) {
		// Unterminated flow sequence, rejected by the YAML parser.
		path := testutil.WriteFile(t, t.TempDir(), "config.yaml", "a: [1,")
		_, err := NewLoader().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}

func TestLoaderLoadWithDefaults(t *testing.T) {
	t.Setenv("TFSTACKS_INFRA_FILE", "")
	path := testutil.WriteFile(t, t.TempDir(), "config.yaml", "workers: 2\n")

	cfg, err := NewLoader().LoadWithDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, DefaultInfraFile, cfg.InfraFile)
	assert.Equal(t, DefaultTerraformBin, cfg.TerraformBin)
}

func TestConfigFileExists(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "config.yaml", "workers: 2\n")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.False(t, exists)
}
