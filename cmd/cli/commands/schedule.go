package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/services"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/report"
)

const defaultTabTitle = "Schedule"

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	var (
		fromSheet bool
		opts      services.ScheduleOptions
		outPath   string
		publish   bool
		tabTitle  string
	)

	cmd := &cobra.Command{
		Use:   "schedule [responses.csv]",
		Short: "Assign each participant at most one of their acceptable slots",
		Long: `Reads sign-up responses, assigns slots so that as many participants as
possible are scheduled, and prints the schedule. The most constrained
participants are placed first and earlier picks are moved when that lets
someone else in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := app.responseSource(args, fromSheet)
			if err != nil {
				return err
			}

			app.Logger.Debug("schedule command",
				zap.String("source", source.Describe()),
				zap.Bool("greedy", opts.Greedy),
				zap.Bool("strict", opts.Strict),
				zap.Bool("save", opts.Save))

			result, err := services.Schedule(app.Ctx, source, app.Store(), app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Rejected) > 0 {
				fmt.Fprintf(out, "\n%d response rows were skipped (see log for details)\n", len(result.Rejected))
			}

			report.PrintSchedule(out, report.SummaryOf(result.Outcome), result.Rows)

			if outPath != "" {
				if err := report.WriteCSVFile(outPath, result.Rows); err != nil {
					return err
				}
				fmt.Fprintf(out, "Schedule written to %s\n", outPath)
			}

			if result.Run != nil {
				fmt.Fprintf(out, "Run saved with ID %s\n", result.Run.ID)
			}

			if publish {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				if err := services.PublishSchedule(app.Ctx, client, app.Cfg, app.Logger, tabTitle, result.Rows); err != nil {
					return err
				}
				fmt.Fprintf(out, "Schedule published to tab %q\n", tabTitle)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromSheet, "sheet", false, "Read responses from the Google Sheet in config")
	cmd.Flags().BoolVar(&opts.Greedy, "greedy", false, "Never move earlier picks (may schedule fewer participants)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail if any response row is rejected")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save the run to the database")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the schedule to a CSV file")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the schedule to the results sheet in config")
	cmd.Flags().StringVar(&tabTitle, "tab", defaultTabTitle, "Results sheet tab to create or overwrite")

	return cmd
}
