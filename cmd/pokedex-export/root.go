package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pokedex-tools/pokedex-export/pkg/client"
	"github.com/pokedex-tools/pokedex-export/pkg/config"
	"github.com/pokedex-tools/pokedex-export/pkg/evolution"
	"github.com/pokedex-tools/pokedex-export/pkg/export"
	"github.com/pokedex-tools/pokedex-export/pkg/logging"
	"github.com/pokedex-tools/pokedex-export/pkg/metrics"
	"github.com/pokedex-tools/pokedex-export/pkg/pokeapi"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pokedex-export",
		Short: "Export pokedex entries from PokeAPI to CSV",
		Long: `pokedex-export fetches pokemon, species, and evolution chain data
from PokeAPI and writes one denormalized CSV row per species.

By default the original 151 species are exported with English red/blue
flavor text to pokemon.csv in the working directory. The run is
sequential and fails fast: the first fetch, decode, or file error
aborts the export, leaving the rows written so far in place.

Configuration precedence (highest to lowest):
  1. CLI flags (--start-id, --output, etc.)
  2. Environment variables (POKEDEX_*)
  3. Config file (pokedex-export.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (export.start_id → POKEDEX_EXPORT_START_ID).

  Examples:
    POKEDEX_EXPORT_START_ID    First pokedex id, inclusive
    POKEDEX_EXPORT_END_ID      Last pokedex id, inclusive
    POKEDEX_EXPORT_OUTPUT      CSV output path
    POKEDEX_API_BASE_URL       API root URL
    POKEDEX_LOG_LEVEL          Log level (debug/info/warn/error)

  See 'go doc github.com/pokedex-tools/pokedex-export/pkg/config' for
  the complete list.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			cfg, err = config.BindFlags(cmd, loaded)
			if err != nil {
				return err
			}

			logging.Setup(logging.Config{
				Level:  logging.LogLevel(cfg.Log.Level),
				Pretty: cfg.Log.Pretty,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pokedex-export.yaml or ~/.config/pokedex-export/pokedex-export.yaml)")

	flags := rootCmd.Flags()
	flags.Int("start-id", 1, "first pokedex id to export, inclusive")
	flags.Int("end-id", 151, "last pokedex id to export, inclusive")
	flags.StringP("output", "o", "pokemon.csv", "CSV output path")
	flags.String("language", "en", "flavor text language")
	flags.StringSlice("versions", []string{"red", "blue"}, "game versions whose flavor text qualifies")
	flags.Bool("progress", true, "show a progress bar")
	flags.String("base-url", pokeapi.DefaultBaseURL, "API root URL")
	flags.Duration("timeout", 0, "per-request timeout (default from config)")
	flags.Duration("pace", 0, "minimum interval between requests (default from config)")
	flags.String("metrics-addr", "", "listen address for the Prometheus /metrics endpoint (empty disables)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-pretty", false, "human-readable console logs instead of JSON")

	rootCmd.Flags().BoolP("version", "V", false, "version for pokedex-export")

	return rootCmd
}

func runExport(cmd *cobra.Command, cfg *config.Config) error {
	logger := logging.NewLogger("cli")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr); err != nil {
				logger.Warn().Err(err).Str("addr", cfg.MetricsAddr).Msg("Metrics listener stopped")
			}
		}()
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("Serving metrics")
	}

	apiClient, err := client.New(client.Config{
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
		Pace:      cfg.API.Pace,
	})
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	service := pokeapi.NewService(apiClient, cfg.API.BaseURL)
	cache := evolution.NewCache()
	builder := export.NewBuilder(service, cache, cfg.Export.Language, cfg.Export.Versions)

	writer, err := export.NewWriter(cfg.Export.Output)
	if err != nil {
		return err
	}

	exporter, err := export.NewExporter(builder, writer, export.Options{
		StartID:  cfg.Export.StartID,
		EndID:    cfg.Export.EndID,
		Progress: cfg.Export.Progress,
	})
	if err != nil {
		writer.Close()
		return err
	}

	if err := exporter.Run(ctx); err != nil {
		// Keep whatever rows made it out; report how far the run got.
		if closeErr := writer.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("Failed to close output after export error")
		}
		logger.Error().Err(err).Int("rows_written", writer.Rows()).Msg("Export aborted")
		return err
	}

	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote %d rows to %s\n", writer.Rows(), writer.Path())
	return nil
}
