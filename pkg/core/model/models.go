package model

import (
	"fmt"
	"slices"
	"strings"
)

// Slot identifies one unit of schedulable capacity (e.g. "A")
type Slot string

// Universe is the fixed, ordered set of slots a run schedules into
type Universe struct {
	slots []Slot
	index map[Slot]int
}

// NewUniverse creates a universe from an ordered list of slot labels
// Labels must be non-empty and unique
func NewUniverse(labels []string) (*Universe, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("slot universe is empty")
	}

	u := &Universe{
		slots: make([]Slot, 0, len(labels)),
		index: make(map[Slot]int, len(labels)),
	}
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("slot universe contains an empty label")
		}
		slot := Slot(label)
		if _, exists := u.index[slot]; exists {
			return nil, fmt.Errorf("slot universe contains duplicate label %q", label)
		}
		u.index[slot] = len(u.slots)
		u.slots = append(u.slots, slot)
	}

	return u, nil
}

// DefaultUniverse returns the A..R universe used by the climbing wall sign-up form
func DefaultUniverse() *Universe {
	labels := make([]string, 0, 18)
	for c := 'A'; c <= 'R'; c++ {
		labels = append(labels, string(c))
	}
	u, _ := NewUniverse(labels)
	return u
}

// Slots returns the slots in universe order
func (u *Universe) Slots() []Slot {
	return slices.Clone(u.slots)
}

// Len returns the number of slots
func (u *Universe) Len() int {
	return len(u.slots)
}

// Index returns the position of a slot in the universe, or -1 if unknown
func (u *Universe) Index(slot Slot) int {
	if i, ok := u.index[slot]; ok {
		return i
	}
	return -1
}

// Contains reports whether the slot belongs to the universe
func (u *Universe) Contains(slot Slot) bool {
	_, ok := u.index[slot]
	return ok
}

// Lookup resolves a raw label to a slot, ignoring case and surrounding whitespace
func (u *Universe) Lookup(label string) (Slot, bool) {
	label = strings.TrimSpace(label)
	if _, ok := u.index[Slot(label)]; ok {
		return Slot(label), true
	}
	for _, slot := range u.slots {
		if strings.EqualFold(string(slot), label) {
			return slot, true
		}
	}
	return "", false
}

// Participant is a person requesting exactly one slot
type Participant struct {
	// Name uniquely identifies the participant
	Name string

	// Position is the participant's index in the input (used for tie-breaking)
	Position int

	// Acceptable holds the participant's acceptable slots, deduplicated, in universe order
	Acceptable []Slot
}

// Accepts returns true if the slot is in the participant's acceptable set
func (p *Participant) Accepts(slot Slot) bool {
	return slices.Contains(p.Acceptable, slot)
}

// Record is a single validated preference entry handed over by a loader
type Record struct {
	Name  string
	Slots []Slot
}

// PreferenceTable is the immutable input of a scheduling run
type PreferenceTable struct {
	universe     *Universe
	participants []*Participant
	byName       map[string]*Participant
}

// NewPreferenceTable builds a table from records in input order.
// Duplicate slots within a record are collapsed. Empty names, repeated names
// and slots outside the universe are rejected.
func NewPreferenceTable(universe *Universe, records []Record) (*PreferenceTable, error) {
	if universe == nil {
		return nil, fmt.Errorf("slot universe is required")
	}

	table := &PreferenceTable{
		universe:     universe,
		participants: make([]*Participant, 0, len(records)),
		byName:       make(map[string]*Participant, len(records)),
	}

	for i, record := range records {
		if record.Name == "" {
			return nil, fmt.Errorf("record %d has an empty participant name", i)
		}
		if _, exists := table.byName[record.Name]; exists {
			return nil, fmt.Errorf("participant %q appears more than once", record.Name)
		}

		seen := make(map[Slot]bool, len(record.Slots))
		acceptable := make([]Slot, 0, len(record.Slots))
		for _, slot := range record.Slots {
			if !universe.Contains(slot) {
				return nil, fmt.Errorf("participant %q requested unknown slot %q", record.Name, slot)
			}
			if seen[slot] {
				continue
			}
			seen[slot] = true
			acceptable = append(acceptable, slot)
		}
		slices.SortFunc(acceptable, func(a, b Slot) int {
			return universe.Index(a) - universe.Index(b)
		})

		participant := &Participant{
			Name:       record.Name,
			Position:   i,
			Acceptable: acceptable,
		}
		table.participants = append(table.participants, participant)
		table.byName[record.Name] = participant
	}

	return table, nil
}

// Universe returns the slot universe of the table
func (t *PreferenceTable) Universe() *Universe {
	return t.universe
}

// Participants returns the participants in input order
func (t *PreferenceTable) Participants() []*Participant {
	return slices.Clone(t.participants)
}

// Participant looks up a participant by name
func (t *PreferenceTable) Participant(name string) (*Participant, bool) {
	p, ok := t.byName[name]
	return p, ok
}

// Len returns the number of participants
func (t *PreferenceTable) Len() int {
	return len(t.participants)
}

// Without returns a copy of the table in which the named participant no longer
// accepts the given slot
func (t *PreferenceTable) Without(name string, slot Slot) *PreferenceTable {
	clone := &PreferenceTable{
		universe:     t.universe,
		participants: make([]*Participant, 0, len(t.participants)),
		byName:       make(map[string]*Participant, len(t.participants)),
	}
	for _, p := range t.participants {
		cp := p
		if p.Name == name {
			cp = &Participant{
				Name:     p.Name,
				Position: p.Position,
				Acceptable: slices.DeleteFunc(slices.Clone(p.Acceptable), func(s Slot) bool {
					return s == slot
				}),
			}
		}
		clone.participants = append(clone.participants, cp)
		clone.byName[cp.Name] = cp
	}
	return clone
}
