package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/clients/sheetsclient"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/services"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/responses"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database // nil when no database is configured
	Logger   *zap.Logger
	Ctx      context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient returns the Google Sheets client, authenticating on first use
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClient(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.Logger.Debug("Sheets client initialized successfully")

	a.sheetsClient = client
	return client, nil
}

// Store returns the run store, or nil when no database is configured
func (a *AppContext) Store() db.RunStore {
	if a.Database == nil {
		return nil
	}
	return a.Database
}

// responseSource picks the CSV file given on the command line or, with
// fromSheet, the responses tab named in config
func (a *AppContext) responseSource(args []string, fromSheet bool) (services.ResponseSource, error) {
	if fromSheet {
		if len(args) > 0 {
			return nil, fmt.Errorf("a responses file cannot be combined with --sheet")
		}
		if a.Cfg.ResponsesSheetID == "" {
			return nil, fmt.Errorf("responsesSheetID must be set in config to read from a sheet")
		}

		client, err := a.SheetsClient()
		if err != nil {
			return nil, err
		}
		return sheetsclient.NewResponseSheet(client, a.Cfg.ResponsesSheetID, a.Cfg.ResponsesTab), nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("a responses CSV file is required (or use --sheet)")
	}
	return responses.NewFileSource(args[0]), nil
}
