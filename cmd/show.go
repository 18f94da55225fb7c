package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fairhuur/services"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print the detail page of one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, closeSource, err := loadCatalog(cmd.Context())
			defer closeSource()
			if err != nil {
				return err
			}

			l, ok := cat.Lookup(args[0])
			if !ok {
				return fmt.Errorf("woning niet gevonden: %q", args[0])
			}
			printDetail(cmd.OutOrStdout(), services.NewDetail(l))
			return nil
		},
	}
}
