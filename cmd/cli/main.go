package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/cmd/cli/commands"
	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cuwall",
		Short: "CU climbing wall schedule - assign sign-ups to wall slots",
		Long: `A CLI tool that reads climbing wall sign-up responses and assigns each
participant at most one of the slots they said they could make, scheduling
as many participants as possible.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeApp()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects schedule_config.<env>.yaml)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file")

	rootCmd.AddCommand(commands.ScheduleCmd(app))
	rootCmd.AddCommand(commands.MandatoryCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.ShowRunCmd(app))

	if err := rootCmd.Execute(); err != nil {
		closeApp()
		os.Exit(1)
	}
}

// initApp sets up config, logger and database
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Config comes first because it names the log directory
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDirectory())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application",
		zap.String("environment", env),
		zap.String("config", configPath))

	app.Database, err = commands.OpenDatabase(app.Ctx, app.Cfg.Database, app.Logger)
	if err != nil {
		return err
	}

	return nil
}

func closeApp() {
	if app.Database != nil {
		if err := app.Database.Close(); err != nil && app.Logger != nil {
			app.Logger.Warn("Failed to close database", zap.Error(err))
		}
		app.Database = nil
	}
	if app.Logger != nil {
		app.Logger.Sync()
	}
}
