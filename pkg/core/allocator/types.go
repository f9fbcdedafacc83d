package allocator

import (
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// SearchMode selects how hard the allocator works to place a participant
type SearchMode string

const (
	// SearchModeAugmenting runs an exhaustive augmenting search when all of a
	// participant's slots are taken. Produces a maximum-cardinality assignment.
	SearchModeAugmenting SearchMode = "augmenting"

	// SearchModeGreedy only ever takes free slots. Strictly weaker: it can leave
	// participants unscheduled that a reassignment chain would have placed.
	SearchModeGreedy SearchMode = "greedy"
)

// TieBreak decides the order of participants with the same number of acceptable slots
type TieBreak string

const (
	// TieBreakInput keeps the original input order (stable sort)
	TieBreakInput TieBreak = "input"

	// TieBreakName orders by participant name, then input order
	TieBreakName TieBreak = "name"
)

// AssignmentState tracks slot occupancy while a run is in progress.
// It is owned by a single Allocator and discarded once the outcome is built.
type AssignmentState struct {
	// Universe is the fixed slot universe
	Universe *model.Universe

	// holders[i] is the participant occupying the i-th universe slot (nil when free)
	holders []*model.Participant

	// slotOf maps a participant name to the universe index of their slot
	slotOf map[string]int
}

// NewAssignmentState creates an empty assignment over the given universe
func NewAssignmentState(universe *model.Universe) *AssignmentState {
	return &AssignmentState{
		Universe: universe,
		holders:  make([]*model.Participant, universe.Len()),
		slotOf:   make(map[string]int),
	}
}

// IsFree returns true if no participant holds the slot at the given index
func (s *AssignmentState) IsFree(slotIndex int) bool {
	return s.holders[slotIndex] == nil
}

// Holder returns the participant holding the slot at the given index (nil if free)
func (s *AssignmentState) Holder(slotIndex int) *model.Participant {
	return s.holders[slotIndex]
}

// SlotIndexOf returns the slot index held by the participant
func (s *AssignmentState) SlotIndexOf(name string) (int, bool) {
	idx, ok := s.slotOf[name]
	return idx, ok
}

// Size returns the number of scheduled participants
func (s *AssignmentState) Size() int {
	return len(s.slotOf)
}

// assign moves a participant onto a slot, releasing whatever slot they held before.
// The target slot must be free.
func (s *AssignmentState) assign(p *model.Participant, slotIndex int) {
	if prev, ok := s.slotOf[p.Name]; ok {
		s.holders[prev] = nil
	}
	s.holders[slotIndex] = p
	s.slotOf[p.Name] = slotIndex
}
