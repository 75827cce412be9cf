// Package config provides configuration management for the exporter.
//
// Precedence (highest to lowest): CLI flags > environment variables
// (POKEDEX_*) > config file (pokedex-export.yaml) > built-in defaults.
//
// The default config from New() is always valid; Validate() guards
// values arriving from files, flags, and the environment.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete exporter configuration.
type Config struct {
	// Export contains the export range and output settings.
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// API contains upstream API client settings.
	API APIConfig `mapstructure:"api" yaml:"api"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// MetricsAddr is the listen address for the optional Prometheus
	// /metrics endpoint. Empty disables the listener.
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`
}

// ExportConfig contains the export range and output settings.
type ExportConfig struct {
	// StartID is the first pokedex id to export, inclusive.
	StartID int `mapstructure:"start_id" yaml:"start_id"`

	// EndID is the last pokedex id to export, inclusive.
	EndID int `mapstructure:"end_id" yaml:"end_id"`

	// Output is the CSV output file path.
	Output string `mapstructure:"output" yaml:"output"`

	// Language selects the flavor text language.
	Language string `mapstructure:"language" yaml:"language"`

	// Versions lists the game versions whose flavor text qualifies,
	// tried in entry order of the upstream payload.
	Versions []string `mapstructure:"versions" yaml:"versions"`

	// Progress enables the console progress bar.
	Progress bool `mapstructure:"progress" yaml:"progress"`
}

// APIConfig contains upstream API client settings.
type APIConfig struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// UserAgent identifies this tool to the upstream API.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Pace is the minimum interval between consecutive requests.
	// Zero disables pacing.
	Pace time.Duration `mapstructure:"pace" yaml:"pace"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" yaml:"level"`

	// Pretty enables human-readable console output instead of JSON.
	Pretty bool `mapstructure:"pretty" yaml:"pretty"`
}

// New returns the built-in default configuration: the original 151
// species, red/blue English flavor text, pokemon.csv in the working
// directory.
func New() *Config {
	return &Config{
		Export: ExportConfig{
			StartID:  1,
			EndID:    151,
			Output:   "pokemon.csv",
			Language: "en",
			Versions: []string{"red", "blue"},
			Progress: true,
		},
		API: APIConfig{
			BaseURL:   "https://pokeapi.co/api/v2",
			UserAgent: "pokedex-export/0.1.0 (github.com/pokedex-tools/pokedex-export)",
			Timeout:   30 * time.Second,
			Pace:      100 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: false,
		},
		MetricsAddr: "",
	}
}

// Validate checks the configuration for values no run could succeed
// with.
func (c *Config) Validate() error {
	if c.Export.StartID < 1 {
		return fmt.Errorf("export.start_id must be >= 1 (got %d)", c.Export.StartID)
	}
	if c.Export.EndID < c.Export.StartID {
		return fmt.Errorf("export.end_id must be >= export.start_id (got %d < %d)",
			c.Export.EndID, c.Export.StartID)
	}
	if c.Export.Output == "" {
		return fmt.Errorf("export.output must not be empty")
	}
	if c.Export.Language == "" {
		return fmt.Errorf("export.language must not be empty")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.UserAgent == "" {
		return fmt.Errorf("api.user_agent must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive (got %s)", c.API.Timeout)
	}
	if c.API.Pace < 0 {
		return fmt.Errorf("api.pace must not be negative (got %s)", c.API.Pace)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	return nil
}
