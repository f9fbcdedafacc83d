package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/postgres"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/sqlite"
)

// OpenDatabase connects to the configured run history store.
// It returns nil when no database is configured.
func OpenDatabase(ctx context.Context, dbCfg *config.DatabaseConfig, logger *zap.Logger) (db.Database, error) {
	if dbCfg == nil {
		logger.Debug("No database configured, run history disabled")
		return nil, nil
	}

	logger.Info("Connecting to database", zap.String("driver", dbCfg.Driver))

	switch dbCfg.Driver {
	case "postgres":
		database, err := postgres.NewDB(ctx, dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return database, nil
	case "sqlite":
		database, err := sqlite.NewDB(ctx, dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return database, nil
	default:
		return nil, fmt.Errorf("unknown database driver: %s", dbCfg.Driver)
	}
}
