package allocator

import (
	"maps"
	"slices"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// Entry is a single participant-to-slot assignment
type Entry struct {
	Slot        model.Slot
	Participant string
}

// AllocationOutcome is the read-only result of a scheduling run.
// Accessors return copies, so callers cannot mutate the outcome.
type AllocationOutcome struct {
	// Mode is the search mode the run used
	Mode SearchMode

	// TieBreak is the tie-break rule the run used
	TieBreak TieBreak

	// TruncatedSearches counts participants left unscheduled after an
	// augmenting search was cut short by MaxSearchDepth
	TruncatedSearches int

	universe    *model.Universe
	order       []string
	assignments map[string]model.Slot
	unscheduled []string
}

// Assignments returns participant name -> slot for every scheduled participant
func (o *AllocationOutcome) Assignments() map[string]model.Slot {
	return maps.Clone(o.assignments)
}

// SlotFor returns the slot assigned to a participant
func (o *AllocationOutcome) SlotFor(name string) (model.Slot, bool) {
	slot, ok := o.assignments[name]
	return slot, ok
}

// Entries returns the assignments sorted by universe slot order
func (o *AllocationOutcome) Entries() []Entry {
	entries := make([]Entry, 0, len(o.assignments))
	for name, slot := range o.assignments {
		entries = append(entries, Entry{Slot: slot, Participant: name})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return o.universe.Index(a.Slot) - o.universe.Index(b.Slot)
	})
	return entries
}

// Unscheduled returns participants without a slot: empty-set participants in
// input order first, then allocation failures in processing order
func (o *AllocationOutcome) Unscheduled() []string {
	return slices.Clone(o.unscheduled)
}

// Order returns the processing order used by the run (schedulable participants only)
func (o *AllocationOutcome) Order() []string {
	return slices.Clone(o.order)
}

// ScheduledCount returns the number of scheduled participants
func (o *AllocationOutcome) ScheduledCount() int {
	return len(o.assignments)
}

// OpenSlots returns universe slots nobody was assigned to, in universe order
func (o *AllocationOutcome) OpenSlots() []model.Slot {
	taken := make(map[model.Slot]bool, len(o.assignments))
	for _, slot := range o.assignments {
		taken[slot] = true
	}

	open := []model.Slot{}
	for _, slot := range o.universe.Slots() {
		if !taken[slot] {
			open = append(open, slot)
		}
	}
	return open
}

// Universe returns the slot universe of the run
func (o *AllocationOutcome) Universe() *model.Universe {
	return o.universe
}
