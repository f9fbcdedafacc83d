package report

import (
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/allocator"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

// UnscheduledMarker fills the slot column of unscheduled participants in exports
const UnscheduledMarker = "UNSCHEDULED"

// Row is one line of a schedule export
type Row struct {
	Kind        db.EntryKind
	Slot        string
	Participant string
}

// Rows flattens an outcome: every universe slot in order (open slots with no
// participant), then each unscheduled participant in processing order
func Rows(outcome *allocator.AllocationOutcome) []Row {
	holders := make(map[string]string)
	for _, entry := range outcome.Entries() {
		holders[string(entry.Slot)] = entry.Participant
	}

	slots := outcome.Universe().Slots()
	unscheduled := outcome.Unscheduled()
	rows := make([]Row, 0, len(slots)+len(unscheduled))

	for _, slot := range slots {
		participant, ok := holders[string(slot)]
		kind := db.EntryAssigned
		if !ok {
			kind = db.EntryOpen
		}
		rows = append(rows, Row{Kind: kind, Slot: string(slot), Participant: participant})
	}
	for _, name := range unscheduled {
		rows = append(rows, Row{Kind: db.EntryUnscheduled, Participant: name})
	}

	return rows
}

// RowsFromEntries rebuilds export rows from a saved run
func RowsFromEntries(entries []db.RunEntry) []Row {
	rows := make([]Row, len(entries))
	for i, e := range entries {
		rows[i] = Row{Kind: e.Kind, Slot: e.Slot, Participant: e.Participant}
	}
	return rows
}
