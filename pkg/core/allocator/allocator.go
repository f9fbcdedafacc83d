package allocator

import (
	"fmt"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// Allocator runs a single scheduling pass over a preference table
type Allocator struct {
	config AllocationConfig
	table  *model.PreferenceTable
	state  *AssignmentState
}

// AllocationConfig contains the configuration for a scheduling run
type AllocationConfig struct {
	// Mode selects greedy-only or augmenting placement (defaults to augmenting)
	Mode SearchMode

	// TieBreak orders participants with equally sized acceptable sets (defaults to input order)
	TieBreak TieBreak

	// MaxSearchDepth caps how many participants one augmenting chain may move.
	// 0 means unbounded. With a bound, maximality is no longer guaranteed.
	// A participant left unscheduled after the search hit the bound is counted
	// in AllocationOutcome.TruncatedSearches; one placed through another branch is not.
	MaxSearchDepth int
}

// withDefaults fills in unset fields and rejects unknown values
func (c AllocationConfig) withDefaults() (AllocationConfig, error) {
	if c.Mode == "" {
		c.Mode = SearchModeAugmenting
	}
	if c.TieBreak == "" {
		c.TieBreak = TieBreakInput
	}

	switch c.Mode {
	case SearchModeAugmenting, SearchModeGreedy:
	default:
		return c, fmt.Errorf("unknown search mode %q", c.Mode)
	}

	switch c.TieBreak {
	case TieBreakInput, TieBreakName:
	default:
		return c, fmt.Errorf("unknown tie-break %q", c.TieBreak)
	}

	if c.MaxSearchDepth < 0 {
		return c, fmt.Errorf("max search depth must not be negative, got %d", c.MaxSearchDepth)
	}

	return c, nil
}

// Allocate assigns participants to slots.
//
// Participants are processed most-constrained-first. Each one takes the first
// free acceptable slot in universe order; if none is free and the mode is
// augmenting, an augmenting search tries to move current holders onto other
// slots from their own sets. Participants that cannot be placed are reported as
// unscheduled and the run continues.
//
// Returns an error only for an invalid config or a broken internal invariant
// (wrapping ErrInvariantViolation).
func Allocate(table *model.PreferenceTable, config AllocationConfig) (*AllocationOutcome, error) {
	if table == nil {
		return nil, fmt.Errorf("preference table is required")
	}

	config, err := config.withDefaults()
	if err != nil {
		return nil, err
	}

	allocator := &Allocator{
		config: config,
		table:  table,
		state:  NewAssignmentState(table.Universe()),
	}

	ranking := RankParticipants(table, config.TieBreak)

	unscheduled := make([]string, 0, len(ranking.Unschedulable))
	for _, p := range ranking.Unschedulable {
		unscheduled = append(unscheduled, p.Name)
	}

	truncated := 0
	for _, p := range ranking.Order {
		placed, hitBound := allocator.placeParticipant(p)
		if placed {
			continue
		}
		if hitBound {
			truncated++
		}
		unscheduled = append(unscheduled, p.Name)
	}

	outcome := allocator.buildOutcome(ranking, unscheduled, truncated)

	if violations := ValidateAssignment(table, outcome.assignments); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvariantViolation, violations[0].Description)
	}

	return outcome, nil
}

// placeParticipant tries to give p a slot. The second return value reports
// whether the augmenting search gave up on a branch because of MaxSearchDepth.
func (a *Allocator) placeParticipant(p *model.Participant) (bool, bool) {
	if idx, ok := a.findFreeSlot(p); ok {
		a.state.assign(p, idx)
		return true, false
	}

	if a.config.Mode == SearchModeGreedy {
		return false, false
	}

	search := newAugmentingSearch(a.state, a.config.MaxSearchDepth)
	placed := search.place(p, 0)
	return placed, search.truncated
}

// findFreeSlot returns the first free slot from p's set in universe order
func (a *Allocator) findFreeSlot(p *model.Participant) (int, bool) {
	for _, slot := range p.Acceptable {
		idx := a.state.Universe.Index(slot)
		if a.state.IsFree(idx) {
			return idx, true
		}
	}
	return 0, false
}

// buildOutcome snapshots the final state into an immutable outcome
func (a *Allocator) buildOutcome(ranking Ranking, unscheduled []string, truncated int) *AllocationOutcome {
	order := make([]string, 0, len(ranking.Order))
	for _, p := range ranking.Order {
		order = append(order, p.Name)
	}

	slots := a.state.Universe.Slots()
	assignments := make(map[string]model.Slot, a.state.Size())
	for name, idx := range a.state.slotOf {
		assignments[name] = slots[idx]
	}

	return &AllocationOutcome{
		Mode:              a.config.Mode,
		TieBreak:          a.config.TieBreak,
		TruncatedSearches: truncated,
		universe:          a.state.Universe,
		order:             order,
		assignments:       assignments,
		unscheduled:       unscheduled,
	}
}
