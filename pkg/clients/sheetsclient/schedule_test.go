package sheetsclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleValues(t *testing.T) {
	schedule := &PublishedSchedule{
		Title: "Week 2",
		Rows: []PublishedScheduleRow{
			{Slot: "A", Participant: "Alice"},
			{Slot: "B"},
			{Slot: "UNSCHEDULED", Participant: "Bob"},
		},
	}

	values := scheduleValues(schedule)

	assert.Equal(t, [][]interface{}{
		{"Slot", "Participant"},
		{"A", "Alice"},
		{"B", ""},
		{"UNSCHEDULED", "Bob"},
	}, values)
}

func TestPublishSchedule_RequiresTitle(t *testing.T) {
	client := NewClientWithService(nil, nil)

	err := client.PublishSchedule(context.Background(), "sheet", &PublishedSchedule{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestStringRows(t *testing.T) {
	rows := stringRows([][]interface{}{
		{"Timestamp", "Name", "Slots"},
		{"2025/01/06", "Alice", "A, B"},
		{nil, "Bob", 3.0},
	})

	assert.Equal(t, [][]string{
		{"Timestamp", "Name", "Slots"},
		{"2025/01/06", "Alice", "A, B"},
		{"", "Bob", "3"},
	}, rows)
}
