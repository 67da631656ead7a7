// Package config provides configuration loading and management.
package config

// Config represents the tfstacks CLI configuration.
// Loaded from ~/.tfstacks/config.yaml, overridable via TFSTACKS_* env vars
// and command-line flags.
type Config struct {
	// InfraFile is the path to the infrastructure description file.
	// Env: TFSTACKS_INFRA_FILE, Default: infra.yaml
	InfraFile string `mapstructure:"infraFile" json:"infraFile,omitempty"`

	// ModulesDir is the directory holding terraform module sources,
	// one subdirectory per source name.
	// Env: TFSTACKS_MODULES_DIR, Default: modules
	ModulesDir string `mapstructure:"modulesDir" json:"modulesDir,omitempty"`

	// CacheDir is the working directory where modules are copied and run.
	// Env: TFSTACKS_CACHE_DIR, Default: ~/.tfstacks/cache
	CacheDir string `mapstructure:"cacheDir" json:"cacheDir,omitempty"`

	// TerraformBin is the terraform binary to invoke.
	// Env: TFSTACKS_TF_BIN, Default: terraform
	TerraformBin string `mapstructure:"terraformBin" json:"terraformBin,omitempty"`

	// Workers is the maximum number of modules run concurrently.
	// Default: 4
	Workers int `mapstructure:"workers" json:"workers,omitempty"`
}

// Defaults for unset configuration values.
const (
	DefaultInfraFile    = "infra.yaml"
	DefaultModulesDir   = "modules"
	DefaultTerraformBin = "terraform"
	DefaultWorkers      = 4
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	cfg := &Config{
		InfraFile:    DefaultInfraFile,
		ModulesDir:   DefaultModulesDir,
		TerraformBin: DefaultTerraformBin,
		Workers:      DefaultWorkers,
	}
	if paths, err := DefaultPaths(); err == nil {
		cfg.CacheDir = paths.CacheDir
	}
	return cfg
}

// WithDefaults fills unset fields with default values and returns the config.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	if c.InfraFile == "" {
		c.InfraFile = def.InfraFile
	}
	if c.ModulesDir == "" {
		c.ModulesDir = def.ModulesDir
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.TerraformBin == "" {
		c.TerraformBin = def.TerraformBin
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	return c
}
