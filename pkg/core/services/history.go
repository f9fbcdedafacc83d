package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

// ListRuns returns saved runs, newest first
func ListRuns(ctx context.Context, store db.RunStore, logger *zap.Logger) ([]db.Run, error) {
	if store == nil {
		return nil, db.ErrNoDatabase
	}

	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	logger.Debug("Fetched runs", zap.Int("count", len(runs)))
	return runs, nil
}

// ShowRun returns one saved run with its entries
func ShowRun(ctx context.Context, store db.RunStore, logger *zap.Logger, runID string) (*db.Run, []db.RunEntry, error) {
	if store == nil {
		return nil, nil, db.ErrNoDatabase
	}

	run, entries, err := store.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch run: %w", err)
	}

	logger.Debug("Fetched run", zap.String("run_id", run.ID), zap.Int("entries", len(entries)))
	return run, entries, nil
}
