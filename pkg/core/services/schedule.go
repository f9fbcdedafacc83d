package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/allocator"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/report"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/responses"
)

// ResponseSource supplies raw sign-up rows (CSV file or Google Sheet)
type ResponseSource interface {
	LoadRows(ctx context.Context) ([][]string, error)
	Describe() string
}

// ScheduleOptions holds the per-invocation switches of a scheduling run
type ScheduleOptions struct {
	// Greedy disables reassignment of earlier picks
	Greedy bool

	// Strict fails the run when any response row is rejected
	Strict bool

	// Save records the run in the history store
	Save bool
}

// Preferences is a validated preference table plus what the loader dropped
type Preferences struct {
	Table      *model.PreferenceTable
	Rejected   []responses.RecordError
	Superseded []string
}

// ScheduleResult represents the result of a scheduling run
type ScheduleResult struct {
	Outcome    *allocator.AllocationOutcome
	Rows       []report.Row
	Rejected   []responses.RecordError
	Superseded []string

	// Run is set when the run was saved
	Run *db.Run
}

// AllocationConfigFrom maps the file config and CLI switches onto the allocator config
func AllocationConfigFrom(cfg *config.Config, greedy bool) allocator.AllocationConfig {
	mode := allocator.SearchMode(cfg.SearchMode)
	if greedy {
		mode = allocator.SearchModeGreedy
	}

	return allocator.AllocationConfig{
		Mode:           mode,
		TieBreak:       allocator.TieBreak(cfg.TieBreak),
		MaxSearchDepth: cfg.MaxSearchDepth,
	}
}

// LoadPreferences reads rows from the source and builds the preference table.
// Rejected rows are logged and skipped, or fail the load in strict mode.
func LoadPreferences(
	ctx context.Context,
	source ResponseSource,
	cfg *config.Config,
	logger *zap.Logger,
	strict bool,
) (*Preferences, error) {
	universe, err := cfg.Universe()
	if err != nil {
		return nil, fmt.Errorf("failed to build slot universe: %w", err)
	}

	logger.Debug("Loading responses", zap.String("source", source.Describe()))
	rows, err := source.LoadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	parsed := responses.NewParser(universe, cfg.Responses).ParseRows(rows)

	for _, recErr := range parsed.Rejected {
		logger.Warn("Rejected response row",
			zap.Int("row", recErr.Row),
			zap.String("name", recErr.Name),
			zap.String("reason", recErr.Reason))
	}
	for _, name := range parsed.Superseded {
		logger.Info("Later response replaced an earlier one", zap.String("name", name))
	}

	if strict && len(parsed.Rejected) > 0 {
		return nil, &responses.RejectedRecordsError{Errors: parsed.Rejected}
	}

	table, err := model.NewPreferenceTable(universe, parsed.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to build preference table: %w", err)
	}

	logger.Debug("Responses loaded",
		zap.Int("rows", len(rows)),
		zap.Int("participants", table.Len()),
		zap.Int("rejected", len(parsed.Rejected)),
		zap.Int("slots", universe.Len()))

	return &Preferences{
		Table:      table,
		Rejected:   parsed.Rejected,
		Superseded: parsed.Superseded,
	}, nil
}

// Schedule loads responses, assigns slots and optionally saves the run
func Schedule(
	ctx context.Context,
	source ResponseSource,
	store db.RunStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts ScheduleOptions,
) (*ScheduleResult, error) {
	if opts.Save && store == nil {
		return nil, fmt.Errorf("cannot save run: %w", db.ErrNoDatabase)
	}

	prefs, err := LoadPreferences(ctx, source, cfg, logger, opts.Strict)
	if err != nil {
		return nil, err
	}

	allocCfg := AllocationConfigFrom(cfg, opts.Greedy)
	outcome, err := allocator.Allocate(prefs.Table, allocCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate slots: %w", err)
	}

	logger.Info("Slots allocated",
		zap.String("mode", string(outcome.Mode)),
		zap.String("tie_break", string(outcome.TieBreak)),
		zap.Int("participants", prefs.Table.Len()),
		zap.Int("scheduled", outcome.ScheduledCount()),
		zap.Int("unscheduled", len(outcome.Unscheduled())),
		zap.Int("open_slots", len(outcome.OpenSlots())))

	if outcome.TruncatedSearches > 0 {
		logger.Warn("Search depth limit reached; schedule may not be maximal",
			zap.Int("truncated_searches", outcome.TruncatedSearches),
			zap.Int("max_search_depth", allocCfg.MaxSearchDepth))
	}

	result := &ScheduleResult{
		Outcome:    outcome,
		Rows:       report.Rows(outcome),
		Rejected:   prefs.Rejected,
		Superseded: prefs.Superseded,
	}

	if opts.Save {
		run := &db.Run{
			ID:                uuid.New().String(),
			CreatedAt:         time.Now().UTC(),
			Source:            source.Describe(),
			Mode:              string(outcome.Mode),
			TieBreak:          string(outcome.TieBreak),
			MaxSearchDepth:    allocCfg.MaxSearchDepth,
			ParticipantCount:  prefs.Table.Len(),
			ScheduledCount:    outcome.ScheduledCount(),
			TruncatedSearches: outcome.TruncatedSearches,
		}

		if err := store.InsertRun(ctx, run, runEntries(run.ID, result.Rows)); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}

		logger.Info("Run saved", zap.String("run_id", run.ID))
		result.Run = run
	}

	return result, nil
}

// Mandatory lists the assignments that every maximum schedule shares
func Mandatory(
	ctx context.Context,
	source ResponseSource,
	cfg *config.Config,
	logger *zap.Logger,
	strict bool,
) ([]allocator.Entry, error) {
	prefs, err := LoadPreferences(ctx, source, cfg, logger, strict)
	if err != nil {
		return nil, err
	}

	entries, err := allocator.MandatoryAssignments(prefs.Table, AllocationConfigFrom(cfg, false))
	if err != nil {
		return nil, fmt.Errorf("failed to compute mandatory assignments: %w", err)
	}

	logger.Info("Mandatory assignments computed",
		zap.Int("participants", prefs.Table.Len()),
		zap.Int("mandatory", len(entries)))

	return entries, nil
}

// runEntries numbers export rows for storage
func runEntries(runID string, rows []report.Row) []db.RunEntry {
	entries := make([]db.RunEntry, len(rows))
	for i, row := range rows {
		entries[i] = db.RunEntry{
			RunID:       runID,
			Position:    i,
			Kind:        row.Kind,
			Slot:        row.Slot,
			Participant: row.Participant,
		}
	}
	return entries
}
