package db

import (
	"context"
	"errors"
)

var (
	// ErrRunNotFound is returned when no run has the requested ID
	ErrRunNotFound = errors.New("run not found")

	// ErrNoDatabase is returned by history operations when no database is configured
	ErrNoDatabase = errors.New("no database configured")
)

// RunStore defines the interface for run history operations.
// Both postgres.DB and sqlite.DB implement it.
type RunStore interface {
	// InsertRun stores the run and its entries atomically
	InsertRun(ctx context.Context, run *Run, entries []RunEntry) error

	// GetRuns returns all runs, newest first
	GetRuns(ctx context.Context) ([]Run, error)

	// GetRun returns a run and its entries ordered by position, or ErrRunNotFound
	GetRun(ctx context.Context, id string) (*Run, []RunEntry, error)
}

// Database is a RunStore that owns a connection
type Database interface {
	RunStore
	Close() error
}
