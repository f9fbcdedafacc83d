package allocator

import (
	"fmt"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// MandatoryAssignments returns the assignments that appear in every
// maximum-cardinality assignment of the table, in universe slot order.
//
// A pair (participant, slot) is mandatory when forbidding it lowers the
// maximum number of scheduled participants. Only pairs of one maximum
// assignment need checking: a pair missing from it is clearly not in all of them.
//
// The search always runs unbounded in augmenting mode; the tie-break from
// config is kept so the reference assignment matches a normal run.
func MandatoryAssignments(table *model.PreferenceTable, config AllocationConfig) ([]Entry, error) {
	exact := AllocationConfig{
		Mode:     SearchModeAugmenting,
		TieBreak: config.TieBreak,
	}

	base, err := Allocate(table, exact)
	if err != nil {
		return nil, fmt.Errorf("failed to compute reference assignment: %w", err)
	}

	mandatory := []Entry{}
	for _, entry := range base.Entries() {
		reduced, err := Allocate(table.Without(entry.Participant, entry.Slot), exact)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate without %s/%s: %w", entry.Participant, entry.Slot, err)
		}
		if reduced.ScheduledCount() < base.ScheduledCount() {
			mandatory = append(mandatory, entry)
		}
	}

	return mandatory, nil
}
