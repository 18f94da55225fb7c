package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fairhuur/models"
	"fairhuur/services"
)

func newSubmitCmd() *cobra.Command {
	var sub models.Submission

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Compose the e-mail draft for offering a listing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := services.NewSubmissionService(state.cfg.SubmitAddress).Draft(sub)
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				for _, f := range verr.Fields {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f.Field, f.Rule)
				}
				return err
			}
			if err != nil {
				return err
			}
			printDraft(cmd.OutOrStdout(), draft)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&sub.Title, "title", "", "listing title (required)")
	fs.StringVar(&sub.City, "city", "", "city (required)")
	fs.StringVar(&sub.Type, "type", "", "listing type")
	fs.StringVar(&sub.Price, "price", "", "monthly price")
	fs.StringVar(&sub.Sqm, "sqm", "", "surface in m²")
	fs.StringVar(&sub.Bedrooms, "bedrooms", "", "number of bedrooms")
	fs.StringVar(&sub.Description, "description", "", "description")
	fs.StringVar(&sub.ContactEmail, "email", "", "contact e-mail")
	fs.StringVar(&sub.ContactPhone, "phone", "", "contact phone")
	fs.StringVar(&sub.ImageURL, "image", "", "photo URL")
	return cmd
}
