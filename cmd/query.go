package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fairhuur/catalog"
	"fairhuur/models"
	"fairhuur/storage"
)

// loadCatalog builds the configured source and loads it once.
func loadCatalog(ctx context.Context) (*catalog.Catalog, func() error, error) {
	source, closeSource, err := buildSource(ctx, state.cfg, state.logger)
	if err != nil {
		return nil, closeSource, err
	}
	cat := catalog.New(source, newQueryEngine(), state.logger, state.cfg.QueryCacheSize)
	if err := cat.Load(ctx); err != nil {
		return nil, closeSource, err
	}
	return cat, closeSource, nil
}

// bindCriteria registers the filter form fields as flags.
func bindCriteria(fs *pflag.FlagSet, c *models.FilterCriteria) *string {
	*c = models.DefaultCriteria()
	sort := string(c.Sort)

	fs.StringVarP(&c.Query, "query", "q", "", "free-text search over title, city, type and description")
	fs.StringVar(&c.City, "city", "", "exact city")
	fs.StringVar(&c.Type, "type", "", "exact listing type")
	fs.Float64Var(&c.MinPrice, "min-price", 0, "minimum monthly price")
	fs.Float64Var(&c.MaxPrice, "max-price", 0, "maximum monthly price")
	fs.Float64Var(&c.MinSqm, "min-sqm", 0, "minimum surface in m²")
	fs.Float64Var(&c.MinBedrooms, "min-beds", 0, "minimum number of bedrooms")
	fs.StringVar(&sort, "sort", sort, "newest, price_asc, price_desc or sqm_desc")
	return &sort
}

func newQueryCmd() *cobra.Command {
	var criteria models.FilterCriteria
	var sort *string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter and sort the listings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria.Sort = models.ParseSortKey(*sort)

			cat, closeSource, err := loadCatalog(cmd.Context())
			defer closeSource()
			if err != nil {
				return err
			}

			result, err := cat.Query(criteria)
			if err != nil {
				return err
			}

			if asCSV {
				w, err := storage.NewCSVStream(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if err := w.Write(cmd.Context(), result); err != nil {
					return err
				}
				return w.Close()
			}
			printCards(cmd.OutOrStdout(), result)
			return nil
		},
	}

	sort = bindCriteria(cmd.Flags(), &criteria)
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write the result as CSV")
	return cmd
}
