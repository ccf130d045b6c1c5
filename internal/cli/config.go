package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/catalogwatch/catalogwatch/internal/eligibility"
	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName  = "config.yaml"
	windowsFileName = "eligibility_windows.yml"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CatalogWatch configuration",
	Long: `Manage CatalogWatch configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CATALOGWATCH_*)
3. Config file (~/.catalogwatch/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after applying defaults, config file, env vars and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		return showConfig(cmd.OutOrStdout(), cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration files",
	Long: `Create ~/.catalogwatch/config.yaml with all available options and
~/.catalogwatch/eligibility_windows.yml holding the built-in eligibility windows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		return writeDefaultConfig(filepath.Join(home, ".catalogwatch"), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func showConfig(w io.Writer, cfg *model.Config) error {
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Current Configuration")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
	fmt.Fprintln(w, string(yamlData))
	fmt.Fprintln(w, "Configuration hierarchy (highest to lowest priority):")
	fmt.Fprintln(w, "  1. CLI flags")
	fmt.Fprintln(w, "  2. Environment variables (CATALOGWATCH_*, e.g. CATALOGWATCH_OUTPUT_FORMAT)")
	fmt.Fprintln(w, "  3. Config file (~/.catalogwatch/config.yaml)")
	fmt.Fprintln(w, "  4. Defaults")

	return nil
}

// writeDefaultConfig writes the default config file and window document into
// dir. Existing files are never overwritten.
func writeDefaultConfig(dir string, w io.Writer) (err error) {
	configPath := filepath.Join(dir, configFileName)
	windowsPath := filepath.Join(dir, windowsFileName)

	for _, p := range []string{configPath, windowsPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'catalogwatch config show' to view it, or delete it first to recreate", p)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(windowsPath, eligibility.DefaultDocument(), 0o644); err != nil {
		return fmt.Errorf("error writing windows file: %w", err)
	}

	defaultCfg := model.DefaultConfig()
	defaultCfg.Windows = windowsPath

	yamlData, err := yaml.Marshal(defaultCfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	header := "# CatalogWatch Configuration File\n" +
		"#\n" +
		"# Configuration hierarchy (highest to lowest priority):\n" +
		"#   1. CLI flags\n" +
		"#   2. Environment variables (CATALOGWATCH_*)\n" +
		"#   3. This config file\n" +
		"#   4. Built-in defaults\n" +
		"#\n" +
		"# current_year: 0 uses the calendar year\n" +
		"# output.format: parquet, sqlite or json\n\n"

	if _, err := io.WriteString(f, header); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	if _, err := f.Write(yamlData); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	fmt.Fprintf(w, "✓ Created default configuration: %s\n", configPath)
	fmt.Fprintf(w, "✓ Created eligibility windows:   %s\n", windowsPath)
	fmt.Fprintf(w, "\nTo view the configuration:\n")
	fmt.Fprintf(w, "  catalogwatch config show\n")
	fmt.Fprintf(w, "\nTo customize, edit the files with your preferred editor:\n")
	fmt.Fprintf(w, "  $EDITOR %s\n", windowsPath)

	return nil
}
