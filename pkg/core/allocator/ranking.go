package allocator

import (
	"cmp"
	"slices"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// Ranking is the processing order computed for a preference table
type Ranking struct {
	// Order lists schedulable participants, most constrained first
	Order []*model.Participant

	// Unschedulable lists participants with no acceptable slots, in input order.
	// They never reach the allocation loop.
	Unschedulable []*model.Participant
}

// RankParticipants orders participants most-constrained-first:
// fewer acceptable slots sort earlier. Equal sizes are broken by tieBreak.
//
// The result depends only on the table and tieBreak, so ranking the same table
// twice always yields the same order.
func RankParticipants(table *model.PreferenceTable, tieBreak TieBreak) Ranking {
	ranking := Ranking{
		Order:         make([]*model.Participant, 0, table.Len()),
		Unschedulable: []*model.Participant{},
	}

	for _, p := range table.Participants() {
		if len(p.Acceptable) == 0 {
			ranking.Unschedulable = append(ranking.Unschedulable, p)
			continue
		}
		ranking.Order = append(ranking.Order, p)
	}

	slices.SortStableFunc(ranking.Order, func(a, b *model.Participant) int {
		return compareParticipants(a, b, tieBreak)
	})

	return ranking
}

func compareParticipants(a, b *model.Participant, tieBreak TieBreak) int {
	if c := cmp.Compare(len(a.Acceptable), len(b.Acceptable)); c != 0 {
		return c
	}
	if tieBreak == TieBreakName {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Position, b.Position)
}
