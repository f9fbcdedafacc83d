package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/clients/sheetsclient"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/report"
)

// SchedulePublisher writes a schedule to a spreadsheet
type SchedulePublisher interface {
	PublishSchedule(ctx context.Context, spreadsheetID string, schedule *sheetsclient.PublishedSchedule) error
}

// PublishSchedule writes the rows to the results sheet under the given tab title
func PublishSchedule(
	ctx context.Context,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	title string,
	rows []report.Row,
) error {
	if cfg.ResultsSheetID == "" {
		return fmt.Errorf("resultsSheetID must be set in config to publish")
	}

	schedule := &sheetsclient.PublishedSchedule{Title: title}
	unscheduled := 0
	for _, row := range rows {
		slot := row.Slot
		if row.Kind == db.EntryUnscheduled {
			slot = report.UnscheduledMarker
			unscheduled++
		}
		schedule.Rows = append(schedule.Rows, sheetsclient.PublishedScheduleRow{
			Slot:        slot,
			Participant: row.Participant,
		})
	}

	logger.Debug("Publishing schedule",
		zap.String("spreadsheet_id", cfg.ResultsSheetID),
		zap.String("tab", title),
		zap.Int("slots", len(schedule.Rows)-unscheduled),
		zap.Int("unscheduled", unscheduled))

	if err := publisher.PublishSchedule(ctx, cfg.ResultsSheetID, schedule); err != nil {
		return fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("tab", title))
	return nil
}
