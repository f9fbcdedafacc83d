package db

import "time"

// EntryKind distinguishes the rows stored for a run
type EntryKind string

const (
	EntryAssigned    EntryKind = "assigned"
	EntryOpen        EntryKind = "open"
	EntryUnscheduled EntryKind = "unscheduled"
)

// Run represents one saved scheduling run
type Run struct {
	ID                string
	CreatedAt         time.Time
	Source            string
	Mode              string
	TieBreak          string
	MaxSearchDepth    int
	ParticipantCount  int
	ScheduledCount    int
	TruncatedSearches int
}

// RunEntry is one row of a saved run.
// Open slots have no participant and unscheduled participants have no slot.
type RunEntry struct {
	RunID       string
	Position    int
	Kind        EntryKind
	Slot        string
	Participant string
}

// UnscheduledCount is the number of participants left without a slot
func (r Run) UnscheduledCount() int {
	return r.ParticipantCount - r.ScheduledCount
}
