package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniverse_RejectsDuplicates(t *testing.T) {
	_, err := NewUniverse([]string{"A", "B", "A"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate label")
}

func TestNewUniverse_RejectsEmpty(t *testing.T) {
	_, err := NewUniverse(nil)
	assert.Error(t, err)

	_, err = NewUniverse([]string{"A", " "})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty label")
}

func TestDefaultUniverse(t *testing.T) {
	u := DefaultUniverse()

	require.Equal(t, 18, u.Len())
	assert.Equal(t, Slot("A"), u.Slots()[0])
	assert.Equal(t, Slot("R"), u.Slots()[17])
	assert.Equal(t, 2, u.Index("C"))
	assert.Equal(t, -1, u.Index("Z"))
}

func TestUniverseLookup_IgnoresCaseAndSpace(t *testing.T) {
	u := DefaultUniverse()

	slot, ok := u.Lookup(" b ")
	require.True(t, ok)
	assert.Equal(t, Slot("B"), slot)

	_, ok = u.Lookup("S")
	assert.False(t, ok)
}

func TestNewPreferenceTable_CollapsesAndSortsSlots(t *testing.T) {
	u := DefaultUniverse()

	table, err := NewPreferenceTable(u, []Record{
		{Name: "Alice", Slots: []Slot{"C", "A", "C", "B"}},
		{Name: "Bob", Slots: []Slot{}},
	})
	require.NoError(t, err)

	alice, ok := table.Participant("Alice")
	require.True(t, ok)
	assert.Equal(t, []Slot{"A", "B", "C"}, alice.Acceptable)
	assert.Equal(t, 0, alice.Position)

	bob, ok := table.Participant("Bob")
	require.True(t, ok)
	assert.Empty(t, bob.Acceptable)
	assert.Equal(t, 1, bob.Position)
	assert.Equal(t, 2, table.Len())
}

func TestNewPreferenceTable_RejectsInvalidRecords(t *testing.T) {
	u := DefaultUniverse()

	_, err := NewPreferenceTable(u, []Record{{Name: "", Slots: []Slot{"A"}}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty participant name")

	_, err = NewPreferenceTable(u, []Record{{Name: "Alice", Slots: []Slot{"Z"}}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown slot")

	_, err = NewPreferenceTable(u, []Record{
		{Name: "Alice", Slots: []Slot{"A"}},
		{Name: "Alice", Slots: []Slot{"B"}},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestPreferenceTableWithout_LeavesOriginalUntouched(t *testing.T) {
	u := DefaultUniverse()
	table, err := NewPreferenceTable(u, []Record{
		{Name: "Alice", Slots: []Slot{"A", "B"}},
		{Name: "Bob", Slots: []Slot{"A"}},
	})
	require.NoError(t, err)

	reduced := table.Without("Alice", "A")

	alice, _ := reduced.Participant("Alice")
	assert.Equal(t, []Slot{"B"}, alice.Acceptable)

	original, _ := table.Participant("Alice")
	assert.Equal(t, []Slot{"A", "B"}, original.Acceptable)

	bob, _ := reduced.Participant("Bob")
	assert.Equal(t, []Slot{"A"}, bob.Acceptable)
}
