package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fairhuur/config"
	"fairhuur/storage"
)

func newImportCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the listings from the configured source into PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := state.cfg, state.logger
			if cfg.Source == config.SourcePostgres {
				return fmt.Errorf("import: source is already postgres, pick file, http or s3")
			}

			cat, closeSource, err := loadCatalog(cmd.Context())
			defer closeSource()
			if err != nil {
				return err
			}
			listings, err := cat.Listings()
			if err != nil {
				return err
			}

			writers := make([]storage.ListingWriter, 0, 2)
			pg, err := storage.NewPostgresStore(cmd.Context(), cfg.DSN(), logger)
			if err != nil {
				logger.Error("[import] Make sure PostgreSQL is running: docker compose up -d")
				return err
			}
			writers = append(writers, pg)

			if csvPath != "" {
				cw, err := storage.NewCSVWriter(csvPath)
				if err != nil {
					_ = pg.Close()
					return err
				}
				writers = append(writers, cw)
			}

			var firstErr error
			for _, w := range writers {
				if err := w.Write(cmd.Context(), listings); err != nil && firstErr == nil {
					firstErr = err
				}
				if err := w.Close(); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			if firstErr != nil {
				return firstErr
			}

			logger.Info("[import] Stored %d listings in PostgreSQL (table: listings)", len(listings))
			if csvPath != "" {
				logger.Info("[import] CSV copy saved to %s", csvPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the imported listings to this CSV file")
	return cmd
}
