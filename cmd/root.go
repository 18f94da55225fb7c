package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fairhuur/config"
	"fairhuur/services"
	"fairhuur/storage"
	"fairhuur/utils"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
}

var state app

// NewRootCmd builds the fairhuur command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fairhuur",
		Short:         "Browse, export and serve FairHuur rental listings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			state.cfg = config.Load()
			if src, _ := cmd.Flags().GetString("source"); src != "" {
				state.cfg.Source = src
			}
			state.logger = utils.NewLoggerWithOptions(utils.LogOptions{
				Writer: cmd.ErrOrStderr(),
				Level:  state.cfg.LogLevel,
				Color:  state.cfg.LogColor,
				JSON:   state.cfg.LogJSON,
			})
			return nil
		},
	}
	root.PersistentFlags().String("source", "", "listing source: file, http, s3 or postgres (overrides LISTINGS_SOURCE)")

	root.AddCommand(
		newServeCmd(),
		newQueryCmd(),
		newStatsCmd(),
		newShowCmd(),
		newImportCmd(),
		newSubmitCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildSource wires the configured listing source. The returned closer
// releases connections held by the source.
func buildSource(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.ListingSource, func() error, error) {
	noop := func() error { return nil }

	if cfg.Source == config.SourcePostgres {
		store, err := storage.NewPostgresStore(ctx, cfg.DSN(), logger)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	}

	fetcher, err := buildFetcher(ctx, cfg, logger)
	if err != nil {
		return nil, noop, err
	}

	closer := noop
	if cfg.CacheEnabled() {
		client, err := storage.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("[cache] Redis unavailable at %s, reading uncached: %v", cfg.RedisAddr, err)
		} else {
			fetcher = storage.NewCachedFetcher(fetcher, client, cfg.RedisKey, cfg.CacheTTL, logger)
			closer = client.Close
		}
	}

	return storage.NewDocumentSource(fetcher, logger), closer, nil
}

func buildFetcher(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.DocumentFetcher, error) {
	switch cfg.Source {
	case config.SourceFile:
		return storage.NewFileFetcher(cfg.ListingsPath), nil
	case config.SourceHTTP:
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 500 * time.Millisecond, Logger: logger}
		return storage.NewHTTPFetcher(cfg.ListingsURL, cfg.FetchTimeout, retry, logger), nil
	case config.SourceS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 source: S3_BUCKET is not set")
		}
		return storage.NewS3Fetcher(ctx, storage.S3Options{
			Bucket:   cfg.S3Bucket,
			Key:      cfg.S3Key,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown listing source %q", cfg.Source)
	}
}

func newQueryEngine() *services.QueryEngine {
	return services.NewQueryEngine(state.logger)
}
