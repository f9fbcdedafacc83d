package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

// InsertRun stores the run and its entries in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO run (id, created_at, source, mode, tie_break, max_search_depth,
			participant_count, scheduled_count, truncated_searches)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.CreatedAt.UTC(), run.Source, run.Mode, run.TieBreak, run.MaxSearchDepth,
		run.ParticipantCount, run.ScheduledCount, run.TruncatedSearches)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO run_entry (run_id, position, kind, slot, participant)
			VALUES ($1, $2, $3, $4, $5)
		`, run.ID, e.Position, string(e.Kind), nullable(e.Slot), nullable(e.Participant))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert run entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, source, mode, tie_break, max_search_depth,
			participant_count, scheduled_count, truncated_searches
		FROM run
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []db.Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves a run and its entries ordered by position
func (d *DB) GetRun(ctx context.Context, id string) (*db.Run, []db.RunEntry, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, created_at, source, mode, tie_break, max_search_depth,
			participant_count, scheduled_count, truncated_searches
		FROM run
		WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", db.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := d.pool.Query(ctx, `
		SELECT position, kind, slot, participant
		FROM run_entry
		WHERE run_id = $1
		ORDER BY position
	`, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run entries: %w", err)
	}
	defer rows.Close()

	entries := []db.RunEntry{}
	for rows.Next() {
		e := db.RunEntry{RunID: run.ID}
		var kind string
		var slot, participant *string
		if err := rows.Scan(&e.Position, &kind, &slot, &participant); err != nil {
			return nil, nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		e.Kind = db.EntryKind(kind)
		if slot != nil {
			e.Slot = *slot
		}
		if participant != nil {
			e.Participant = *participant
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating run entries: %w", err)
	}

	return run, entries, nil
}

func scanRun(row pgx.Row) (*db.Run, error) {
	var r db.Run
	var createdAt time.Time
	err := row.Scan(&r.ID, &createdAt, &r.Source, &r.Mode, &r.TieBreak, &r.MaxSearchDepth,
		&r.ParticipantCount, &r.ScheduledCount, &r.TruncatedSearches)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	r.CreatedAt = createdAt.UTC()
	return &r, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
