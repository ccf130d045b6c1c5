package model

import "time"

// Output formats for the annotated dataset
const (
	FormatParquet = "parquet"
	FormatSQLite  = "sqlite"
	FormatJSON    = "json"
)

// Config holds the complete CatalogWatch configuration
type Config struct {
	Windows     string        `yaml:"windows" mapstructure:"windows"`           // Path to the eligibility window document; empty uses the built-in windows
	CurrentYear int           `yaml:"current_year" mapstructure:"current_year"` // Reference year; 0 means the calendar year
	Output      OutputConfig  `yaml:"output" mapstructure:"output"`
	Cache       CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Metrics     MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Log         LogConfig     `yaml:"log" mapstructure:"log"`
}

// OutputConfig controls where annotated datasets are written
type OutputConfig struct {
	Dir    string `yaml:"dir" mapstructure:"dir"`
	Name   string `yaml:"name" mapstructure:"name"`
	Format string `yaml:"format" mapstructure:"format"` // parquet, sqlite, json
}

// CacheConfig controls memoization of ownership-note parses
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// MetricsConfig controls the prometheus textfile export
type MetricsConfig struct {
	File string `yaml:"file" mapstructure:"file"` // Empty disables the export
}

// LogConfig controls CLI logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:    "data/ingested",
			Name:   "canonical_catalogs",
			Format: FormatParquet,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
