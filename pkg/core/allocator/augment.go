package allocator

import (
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// augmentingSearch looks for a chain of reassignments that frees a slot for a participant.
// One search is created per participant attempt; visited slots are never reconsidered
// within the same attempt, which keeps the search finite on cyclic reassignment graphs.
type augmentingSearch struct {
	state *AssignmentState

	// visited marks universe slots already explored in this attempt
	visited []bool

	// maxDepth caps the number of participants moved in one chain (0 = unbounded)
	maxDepth int

	// truncated is set when a branch was abandoned because of maxDepth
	truncated bool
}

func newAugmentingSearch(state *AssignmentState, maxDepth int) *augmentingSearch {
	return &augmentingSearch{
		state:    state,
		visited:  make([]bool, state.Universe.Len()),
		maxDepth: maxDepth,
	}
}

// place tries to give p one of their acceptable slots, displacing current holders
// along an augmenting chain if needed. depth is the number of participants already
// displaced above p in the chain. Returns true if p now holds a slot.
//
// Free slots are preferred at every level. Occupied slots are then tried in
// universe order, and the holder is recursively asked to move elsewhere.
func (s *augmentingSearch) place(p *model.Participant, depth int) bool {
	universe := s.state.Universe

	for _, slot := range p.Acceptable {
		idx := universe.Index(slot)
		if s.visited[idx] || !s.state.IsFree(idx) {
			continue
		}
		s.visited[idx] = true
		s.state.assign(p, idx)
		return true
	}

	for _, slot := range p.Acceptable {
		idx := universe.Index(slot)
		if s.visited[idx] {
			continue
		}
		holder := s.state.Holder(idx)
		if holder == nil || holder.Name == p.Name {
			continue
		}
		if s.maxDepth > 0 && depth+1 > s.maxDepth {
			s.truncated = true
			continue
		}

		s.visited[idx] = true
		if s.place(holder, depth+1) {
			s.state.assign(p, idx)
			return true
		}
	}

	return false
}
