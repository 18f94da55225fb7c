package cmd

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the live, today and average price figures with the filter options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, closeSource, err := loadCatalog(cmd.Context())
			defer closeSource()
			if err != nil {
				return err
			}

			stats, err := cat.Stats()
			if err != nil {
				return err
			}
			opts, err := cat.FilterOptions()
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats, opts)
			return nil
		},
	}
}
