package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fairhuur/api"
	"fairhuur/catalog"
	"fairhuur/services"
)

func newServeCmd() *cobra.Command {
	var addr string
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the listings overview, detail and submission endpoints over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := state.cfg, state.logger
			if addr == "" {
				addr = cfg.HTTPAddr
			}
			if !cmd.Flags().Changed("refresh") {
				refresh = cfg.RefreshInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			source, closeSource, err := buildSource(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeSource()

			cat := catalog.New(source, newQueryEngine(), logger, cfg.QueryCacheSize)
			// A failed first load is served as 503 until a reload succeeds.
			if err := cat.Load(ctx); err != nil {
				logger.Error("[serve] Initial load failed: %v", err)
			}
			if refresh > 0 {
				go cat.Run(ctx, refresh)
			}

			handler := api.NewHandler(cat, services.NewSubmissionService(cfg.SubmitAddress), logger)
			server := api.NewServer(addr, api.NewRouter(handler, cfg.CORSOrigins, logger), logger)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Stop(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "reload interval, 0 disables (overrides REFRESH_INTERVAL)")
	return cmd
}
