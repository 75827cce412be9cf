package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Load reads configuration from a YAML file and the POKEDEX_*
// environment, layered over the built-in defaults. If configPath is
// empty, default locations are searched:
//   - ./pokedex-export.yaml
//   - ~/.config/pokedex-export/pokedex-export.yaml
//
// A missing file is not an error; a malformed one is.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetEnvPrefix("POKEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pokedex-export")
		v.AddConfigPath(".")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "pokedex-export"))
		}
	}

	cfg := New()

	// Register every key with its default so environment overrides are
	// visible to Unmarshal.
	v.SetDefault("export.start_id", cfg.Export.StartID)
	v.SetDefault("export.end_id", cfg.Export.EndID)
	v.SetDefault("export.output", cfg.Export.Output)
	v.SetDefault("export.language", cfg.Export.Language)
	v.SetDefault("export.versions", cfg.Export.Versions)
	v.SetDefault("export.progress", cfg.Export.Progress)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.pace", cfg.API.Pace)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.pretty", cfg.Log.Pretty)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For an explicit config path any read failure is fatal;
			// for the default search, only a malformed file is.
			if configPath != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// BindFlags overlays explicitly set cobra flags onto cfg. CLI flags
// take precedence over config file and environment values.
func BindFlags(cmd *cobra.Command, cfg *Config) (*Config, error) {
	v := viper.New()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("start-id") {
		cfg.Export.StartID = v.GetInt("start-id")
	}
	if flags.Changed("end-id") {
		cfg.Export.EndID = v.GetInt("end-id")
	}
	if flags.Changed("output") {
		cfg.Export.Output = v.GetString("output")
	}
	if flags.Changed("language") {
		cfg.Export.Language = v.GetString("language")
	}
	if flags.Changed("versions") {
		cfg.Export.Versions = v.GetStringSlice("versions")
	}
	if flags.Changed("progress") {
		cfg.Export.Progress = v.GetBool("progress")
	}
	if flags.Changed("base-url") {
		cfg.API.BaseURL = v.GetString("base-url")
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = v.GetDuration("timeout")
	}
	if flags.Changed("pace") {
		cfg.API.Pace = v.GetDuration("pace")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = v.GetString("metrics-addr")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = v.GetString("log-level")
	}
	if flags.Changed("log-pretty") {
		cfg.Log.Pretty = v.GetBool("log-pretty")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration after flag binding: %w", err)
	}

	return cfg, nil
}
