// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tfstacks/cli/internal/config"
	"github.com/tfstacks/cli/internal/output"
)

var (
	// Global flags
	infraFileFlag    string
	modulesDirFlag   string
	cacheDirFlag     string
	tfBinFlag        string
	configFlag       string
	outputFormatFlag string
	verboseFlag      bool
	workersFlag      int

	// Resolved configuration (loaded during PersistentPreRunE)
	resolvedConfig *config.Config
)

// NewRootCmd creates the root command for the tfstacks CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tfstacks",
		Short:         "Terraform stack orchestrator",
		Long:          `tfstacks turns a declarative description of nested infrastructure scopes and terraform modules into an ordered, dependency-aware sequence of terraform runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&infraFileFlag, "infra-file", "f", "", "Path to infrastructure description file (env: TFSTACKS_INFRA_FILE)")
	rootCmd.PersistentFlags().StringVar(&modulesDirFlag, "modules-dir", "", "Directory holding terraform module sources (env: TFSTACKS_MODULES_DIR)")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "Working directory for terraform runs (env: TFSTACKS_CACHE_DIR)")
	rootCmd.PersistentFlags().StringVar(&tfBinFlag, "tf-bin", "", "Terraform binary to invoke (env: TFSTACKS_TF_BIN)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: TFSTACKS_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "text", "Output format: text, yaml, json")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "Maximum number of modules run concurrently")

	// Add subcommands
	rootCmd.AddCommand(NewPlanCmd())
	rootCmd.AddCommand(NewApplyCmd())
	rootCmd.AddCommand(NewDestroyCmd())
	rootCmd.AddCommand(NewGraphCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	output.SetupLogging(verboseFlag)

	configPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return err
	}

	// An explicitly requested config file that does not exist is worth a
	// warning; the implicit default is allowed to be absent silently.
	if configFlag != "" {
		if exists, err := config.ConfigFileExists(configPath.Value); err == nil && !exists {
			output.Warn("config file not found", "path", configPath.Value)
		}
	}

	fileCfg, err := config.NewLoader().Load(configPath.Value)
	if err != nil {
		output.Debug("config load error", "error", err)
		fileCfg = &config.Config{}
	}

	// Resolve each value with precedence: flag > env > config file > default.
	// Viper already folds env into fileCfg, so EnvVar is left empty here.
	infraFile := config.ResolveValue(config.ResolveValueOptions{
		Key:          "infraFile",
		FlagValue:    infraFileFlag,
		ConfigValue:  fileCfg.InfraFile,
		DefaultValue: config.DefaultInfraFile,
	})
	modulesDir := config.ResolveValue(config.ResolveValueOptions{
		Key:          "modulesDir",
		FlagValue:    modulesDirFlag,
		ConfigValue:  fileCfg.ModulesDir,
		DefaultValue: config.DefaultModulesDir,
	})
	cacheDir := config.ResolveValue(config.ResolveValueOptions{
		Key:         "cacheDir",
		FlagValue:   cacheDirFlag,
		ConfigValue: fileCfg.CacheDir,
	})
	tfBin := config.ResolveValue(config.ResolveValueOptions{
		Key:          "terraformBin",
		FlagValue:    tfBinFlag,
		ConfigValue:  fileCfg.TerraformBin,
		DefaultValue: config.DefaultTerraformBin,
	})

	resolvedConfig = (&config.Config{
		InfraFile:    infraFile.Value,
		ModulesDir:   modulesDir.Value,
		CacheDir:     cacheDir.Value,
		TerraformBin: tfBin.Value,
		Workers:      fileCfg.Workers,
	}).WithDefaults()

	if workersFlag > 0 {
		resolvedConfig.Workers = workersFlag
	}

	if verboseFlag {
		config.LogResolvedValues([]config.ResolvedValue{
			configPath, infraFile, modulesDir, cacheDir, tfBin,
		})
		output.Debug("initializing CLI",
			"infraFile", resolvedConfig.InfraFile,
			"modulesDir", resolvedConfig.ModulesDir,
			"cacheDir", resolvedConfig.CacheDir,
			"terraformBin", resolvedConfig.TerraformBin,
			"workers", resolvedConfig.Workers,
		)
	}

	return nil
}

// GetConfig returns the resolved configuration.
func GetConfig() *config.Config {
	if resolvedConfig != nil {
		return resolvedConfig
	}
	return config.DefaultConfig()
}
