package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/services"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/report"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List saved scheduling runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := services.ListRuns(app.Ctx, app.Store(), app.Logger)
			if err != nil {
				return err
			}

			report.PrintRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
}

// ShowRunCmd creates the showRun command
func ShowRunCmd(app *AppContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "showRun <run_id>",
		Short: "Print a saved scheduling run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("showRun command", zap.String("run_id", args[0]))

			run, entries, err := services.ShowRun(app.Ctx, app.Store(), app.Logger, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report.PrintRun(out, run, entries)

			if outPath != "" {
				if err := report.WriteCSVFile(outPath, report.RowsFromEntries(entries)); err != nil {
					return err
				}
				fmt.Fprintf(out, "Schedule written to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the saved schedule to a CSV file")

	return cmd
}
