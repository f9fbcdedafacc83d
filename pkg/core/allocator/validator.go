package allocator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// ErrInvariantViolation is returned when a finished assignment breaks
// conflict-freedom or preference-respect. This is an internal fault, not an input problem.
var ErrInvariantViolation = errors.New("assignment invariant violated")

// AssignmentValidationError describes one broken invariant
type AssignmentValidationError struct {
	Participant string
	Slot        model.Slot
	Description string
}

// ValidateAssignment checks an assignment against its preference table:
//   - every assigned participant exists in the table
//   - every assigned slot belongs to the universe and to the participant's acceptable set
//   - no slot is assigned to more than one participant
//
// Errors are reported in input order of the participants involved.
func ValidateAssignment(table *model.PreferenceTable, assignments map[string]model.Slot) []AssignmentValidationError {
	errs := []AssignmentValidationError{}
	universe := table.Universe()

	// Unknown participants, sorted for stable output
	unknown := []string{}
	for name := range assignments {
		if _, ok := table.Participant(name); !ok {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	for _, name := range unknown {
		errs = append(errs, AssignmentValidationError{
			Participant: name,
			Slot:        assignments[name],
			Description: fmt.Sprintf("participant %q is not in the preference table", name),
		})
	}

	holders := make(map[model.Slot]string)
	for _, p := range table.Participants() {
		slot, ok := assignments[p.Name]
		if !ok {
			continue
		}

		if !universe.Contains(slot) {
			errs = append(errs, AssignmentValidationError{
				Participant: p.Name,
				Slot:        slot,
				Description: fmt.Sprintf("participant %q assigned to slot %q outside the universe", p.Name, slot),
			})
			continue
		}

		if !p.Accepts(slot) {
			errs = append(errs, AssignmentValidationError{
				Participant: p.Name,
				Slot:        slot,
				Description: fmt.Sprintf("participant %q assigned to slot %q which they did not accept", p.Name, slot),
			})
		}

		if other, taken := holders[slot]; taken {
			errs = append(errs, AssignmentValidationError{
				Participant: p.Name,
				Slot:        slot,
				Description: fmt.Sprintf("slot %q assigned to both %q and %q", slot, other, p.Name),
			})
			continue
		}
		holders[slot] = p.Name
	}

	return errs
}
