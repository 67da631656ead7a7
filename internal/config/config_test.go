package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaults(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		cfg := (&Config{}).WithDefaults()

		assert.Equal(t, DefaultInfraFile, cfg.InfraFile)
		assert.Equal(t, DefaultModulesDir, cfg.ModulesDir)
		assert.Equal(t, DefaultTerraformBin, cfg.TerraformBin)
		assert.Equal(t, DefaultWorkers, cfg.Workers)
		assert.NotEmpty(t, cfg.CacheDir)
	})

	t.Run("keeps set fields", func(t *testing.T) {
		cfg := (&Config{
			InfraFile:    "stacks/prod.yaml",
			ModulesDir:   "tf-modules",
			CacheDir:     "/tmp/cache",
			TerraformBin: "tofu",
			Workers:      8,
		}).WithDefaults()

		assert.Equal(t, "stacks/prod.yaml", cfg.InfraFile)
		assert.Equal(t, "tf-modules", cfg.ModulesDir)
		assert.Equal(t, "/tmp/cache", cfg.CacheDir)
		assert.Equal(t, "tofu", cfg.TerraformBin)
		assert.Equal(t, 8, cfg.Workers)
	})

	t.Run("rejects non-positive workers", func(t *testing.T) {
		cfg := (&Config{Workers: -1}).WithDefaults()
		assert.Equal(t, DefaultWorkers, cfg.Workers)
	})
}
