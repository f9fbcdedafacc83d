package responses

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

func newTestParser(t *testing.T, layout config.ResponsesLayout) *Parser {
	t.Helper()
	universe, err := model.NewUniverse([]string{"A", "B", "C", "D"})
	require.NoError(t, err)
	return NewParser(universe, layout)
}

func TestParseRows_FormExport(t *testing.T) {
	parser := newTestParser(t, config.ResponsesLayout{SkipHeader: true})

	rows := [][]string{
		{"Timestamp", "Name", "Slots"},
		{"2025/01/06 10:00", "Alice", `"A, b"`},
		{"2025/01/06 10:05", "  Bob ", "C"},
		{"2025/01/06 10:07", "Carol", ""},
	}

	result := parser.ParseRows(rows)

	assert.Empty(t, result.Rejected)
	assert.Equal(t, []model.Record{
		{Name: "Alice", Slots: []model.Slot{"A", "B"}},
		{Name: "Bob", Slots: []model.Slot{"C"}},
		{Name: "Carol", Slots: []model.Slot{}},
	}, result.Records)
}

func TestParseRows_LabelsWithDescriptions(t *testing.T) {
	parser := newTestParser(t, config.ResponsesLayout{})

	rows := [][]string{
		{"t", "Alice", "A (Mon 18:00), D (Thu 18:00)"},
	}

	result := parser.ParseRows(rows)

	require.Empty(t, result.Rejected)
	require.Len(t, result.Records, 1)
	assert.Equal(t, []model.Slot{"A", "D"}, result.Records[0].Slots)
}

func TestParseRows_RejectsMultiWordLabels(t *testing.T) {
	parser := NewParser(model.DefaultUniverse(), config.ResponsesLayout{})

	rows := [][]string{
		{"t", "Zoe", "A or B"},
		{"t", "Will", "Q R"},
		{"t", "Vic", "A (Mon 18:00)"},
	}

	result := parser.ParseRows(rows)

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, "Zoe", result.Rejected[0].Name)
	assert.Contains(t, result.Rejected[0].Reason, `unknown slot "A or B"`)
	assert.Equal(t, "Will", result.Rejected[1].Name)
	assert.Contains(t, result.Rejected[1].Reason, `unknown slot "Q R"`)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "Vic", result.Records[0].Name)
	assert.Equal(t, []model.Slot{"A"}, result.Records[0].Slots)
}

func TestParseRows_RejectsBadRows(t *testing.T) {
	parser := newTestParser(t, config.ResponsesLayout{SkipHeader: true})

	rows := [][]string{
		{"Timestamp", "Name", "Slots"},
		{"t", "", "A"},
		{"t", "Dave", "A, Z"},
		{"t"},
		{"t", "Erin", "B"},
	}

	result := parser.ParseRows(rows)

	require.Len(t, result.Rejected, 3)
	assert.Equal(t, 2, result.Rejected[0].Row)
	assert.Contains(t, result.Rejected[0].Reason, "name is empty")
	assert.Equal(t, 3, result.Rejected[1].Row)
	assert.Equal(t, "Dave", result.Rejected[1].Name)
	assert.Contains(t, result.Rejected[1].Reason, `unknown slot "Z"`)
	assert.Equal(t, 4, result.Rejected[2].Row)
	assert.Contains(t, result.Rejected[2].Reason, "expected at least 3 columns")

	assert.Equal(t, []model.Record{{Name: "Erin", Slots: []model.Slot{"B"}}}, result.Records)
}

func TestParseRows_LaterResponseSupersedesEarlier(t *testing.T) {
	parser := newTestParser(t, config.ResponsesLayout{})

	rows := [][]string{
		{"t", "Alice", "A"},
		{"t", "Bob", "B"},
		{"t", "Alice", "C, D"},
	}

	result := parser.ParseRows(rows)

	assert.Equal(t, []model.Record{
		{Name: "Bob", Slots: []model.Slot{"B"}},
		{Name: "Alice", Slots: []model.Slot{"C", "D"}},
	}, result.Records)
	assert.Equal(t, []string{"Alice"}, result.Superseded)

	_, err := model.NewPreferenceTable(parser.universe, result.Records)
	assert.NoError(t, err)
}

func TestParseRows_CustomLayout(t *testing.T) {
	nameColumn := 0
	slotsColumn := 1
	parser := newTestParser(t, config.ResponsesLayout{
		NameColumn:  &nameColumn,
		SlotsColumn: &slotsColumn,
		Separator:   ";",
	})

	result := parser.ParseRows([][]string{
		{"Alice", "A;B"},
		{"", ""},
		{"Bob", "d"},
	})

	assert.Empty(t, result.Rejected)
	assert.Equal(t, []model.Record{
		{Name: "Alice", Slots: []model.Slot{"A", "B"}},
		{Name: "Bob", Slots: []model.Slot{"D"}},
	}, result.Records)
}

func TestRecordErrors(t *testing.T) {
	err := &RejectedRecordsError{Errors: []RecordError{
		{Row: 2, Reason: "participant name is empty"},
		{Row: 5, Name: "Dave", Reason: `unknown slot "Z"`},
	}}

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "2 response rows rejected"))
	assert.Contains(t, msg, "row 2: participant name is empty")
	assert.Contains(t, msg, `row 5 (Dave): unknown slot "Z"`)

	var target *RejectedRecordsError
	assert.True(t, errors.As(error(err), &target))
}

func TestReadCSV(t *testing.T) {
	input := "Timestamp,Name,Slots\n2025/01/06,Alice,\"A, B\"\n2025/01/06,Bob\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Timestamp", "Name", "Slots"},
		{"2025/01/06", "Alice", "A, B"},
		{"2025/01/06", "Bob"},
	}, rows)
}

func TestFileSource_LoadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Slots\nAlice,A\n"), 0644))

	source := NewFileSource(path)
	rows, err := source.LoadRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "Slots"}, {"Alice", "A"}}, rows)
	assert.Equal(t, "csv:"+path, source.Describe())

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).LoadRows(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open responses file")
}
