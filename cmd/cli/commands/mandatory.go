package commands

import (
	"github.com/spf13/cobra"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/services"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/report"
)

// MandatoryCmd creates the mandatory command
func MandatoryCmd(app *AppContext) *cobra.Command {
	var fromSheet, strict bool

	cmd := &cobra.Command{
		Use:   "mandatory [responses.csv]",
		Short: "List assignments that every maximum schedule contains",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := app.responseSource(args, fromSheet)
			if err != nil {
				return err
			}

			entries, err := services.Mandatory(app.Ctx, source, app.Cfg, app.Logger, strict)
			if err != nil {
				return err
			}

			report.PrintMandatory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromSheet, "sheet", false, "Read responses from the Google Sheet in config")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail if any response row is rejected")

	return cmd
}
