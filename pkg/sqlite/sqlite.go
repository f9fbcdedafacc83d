package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

// runRecord is the gorm model for the run table
type runRecord struct {
	ID                string    `gorm:"primaryKey"`
	CreatedAt         time.Time `gorm:"index"`
	Source            string    `gorm:"not null"`
	Mode              string    `gorm:"not null"`
	TieBreak          string    `gorm:"not null"`
	MaxSearchDepth    int
	ParticipantCount  int
	ScheduledCount    int
	TruncatedSearches int
	Entries           []entryRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (runRecord) TableName() string { return "run" }

// entryRecord is the gorm model for the run_entry table
type entryRecord struct {
	RunID       string `gorm:"primaryKey"`
	Position    int    `gorm:"primaryKey;autoIncrement:false"`
	Kind        string `gorm:"not null"`
	Slot        string
	Participant string
}

func (entryRecord) TableName() string { return "run_entry" }

// DB stores run history in a local SQLite file through gorm
type DB struct {
	gorm *gorm.DB
}

// NewDB opens (creating if needed) the SQLite database at dsn and migrates the schema.
// ":memory:" gives a private in-memory database.
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	gormDB, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	// Every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.WithContext(ctx).AutoMigrate(&runRecord{}, &entryRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}

	return &DB{gorm: gormDB}, nil
}

// Close releases the underlying connection
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InsertRun stores the run and its entries in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	record := toRunRecord(run)
	record.Entries = make([]entryRecord, len(entries))
	for i, e := range entries {
		record.Entries[i] = entryRecord{
			RunID:       run.ID,
			Position:    e.Position,
			Kind:        string(e.Kind),
			Slot:        e.Slot,
			Participant: e.Participant,
		}
	}

	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// GetRuns retrieves all runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	var records []runRecord
	if err := d.gorm.WithContext(ctx).Order("created_at DESC").Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	runs := make([]db.Run, len(records))
	for i, r := range records {
		runs[i] = fromRunRecord(r)
	}
	return runs, nil
}

// GetRun retrieves a run and its entries ordered by position
func (d *DB) GetRun(ctx context.Context, id string) (*db.Run, []db.RunEntry, error) {
	var record runRecord
	err := d.gorm.WithContext(ctx).
		Preload("Entries", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: %s", db.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}

	run := fromRunRecord(record)
	entries := make([]db.RunEntry, len(record.Entries))
	for i, e := range record.Entries {
		entries[i] = db.RunEntry{
			RunID:       e.RunID,
			Position:    e.Position,
			Kind:        db.EntryKind(e.Kind),
			Slot:        e.Slot,
			Participant: e.Participant,
		}
	}
	return &run, entries, nil
}

func toRunRecord(run *db.Run) runRecord {
	return runRecord{
		ID:                run.ID,
		CreatedAt:         run.CreatedAt.UTC(),
		Source:            run.Source,
		Mode:              run.Mode,
		TieBreak:          run.TieBreak,
		MaxSearchDepth:    run.MaxSearchDepth,
		ParticipantCount:  run.ParticipantCount,
		ScheduledCount:    run.ScheduledCount,
		TruncatedSearches: run.TruncatedSearches,
	}
}

func fromRunRecord(r runRecord) db.Run {
	return db.Run{
		ID:                r.ID,
		CreatedAt:         r.CreatedAt.UTC(),
		Source:            r.Source,
		Mode:              r.Mode,
		TieBreak:          r.TieBreak,
		MaxSearchDepth:    r.MaxSearchDepth,
		ParticipantCount:  r.ParticipantCount,
		ScheduledCount:    r.ScheduledCount,
		TruncatedSearches: r.TruncatedSearches,
	}
}
