package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalogwatch/catalogwatch/internal/logging"
	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X ...cli.version=..."
var version = "v0.1.0"

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalogwatch",
	Short: "CatalogWatch - rights-reversion eligibility and ownership signals for music catalogs",
	Long: `CatalogWatch ingests music-rights catalog records from CSV and annotates
each one with:
- an eligibility window based on years since release
- ownership signals found by keyword search in free-text notes
- a deterministic composite score with a per-component explanation

Scores are transparent heuristics, not legal advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetDefaultCLILogger(viper.GetString("log.level"))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for CatalogWatch.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "catalogwatch %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.catalogwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("windows", "", "eligibility windows YAML (default: built-in windows)")
	rootCmd.PersistentFlags().Int("current-year", 0, "reference year for years since release (default: this year)")

	// Bind flags to viper
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("windows", rootCmd.PersistentFlags().Lookup("windows"))
	_ = viper.BindPFlag("current_year", rootCmd.PersistentFlags().Lookup("current-year"))

	setDefaults(model.DefaultConfig())

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// setDefaults registers every configuration key with viper so environment
// variables can override nested keys
func setDefaults(cfg *model.Config) {
	viper.SetDefault("windows", cfg.Windows)
	viper.SetDefault("current_year", cfg.CurrentYear)
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.name", cfg.Output.Name)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("metrics.file", cfg.Metrics.File)
	viper.SetDefault("log.level", cfg.Log.Level)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".catalogwatch"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CATALOGWATCH_*, with nested
	// keys joined by underscores (CATALOGWATCH_OUTPUT_FORMAT)
	viper.SetEnvPrefix("CATALOGWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing default config file is fine; an explicit one must be readable
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: reading config: %v\n", err)
		}
	}
}

// loadConfig resolves the effective configuration from defaults, config
// file, environment and flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	switch cfg.Output.Format {
	case model.FormatParquet, model.FormatSQLite, model.FormatJSON:
	default:
		return nil, fmt.Errorf("invalid output.format %q (parquet, sqlite, json)", cfg.Output.Format)
	}

	return cfg, nil
}
