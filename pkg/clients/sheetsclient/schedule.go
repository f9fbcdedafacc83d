package sheetsclient

import (
	"context"
	"fmt"
)

// PublishedScheduleRow is one line of the published schedule
type PublishedScheduleRow struct {
	Slot        string
	Participant string // empty for an open slot
}

// PublishedSchedule represents the complete published schedule
type PublishedSchedule struct {
	Title string
	Rows  []PublishedScheduleRow
}

// PublishSchedule writes the schedule to a tab named after its title.
// A missing tab is created; an existing one is cleared and overwritten.
func (c *Client) PublishSchedule(ctx context.Context, spreadsheetID string, schedule *PublishedSchedule) error {
	if schedule.Title == "" {
		return fmt.Errorf("schedule title is required")
	}

	exists, err := c.HasSheet(ctx, spreadsheetID, schedule.Title)
	if err != nil {
		return err
	}

	if exists {
		if err := c.ClearValues(ctx, spreadsheetID, fmt.Sprintf("%s!A:ZZ", schedule.Title)); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		if _, err := c.CreateSheet(ctx, spreadsheetID, schedule.Title); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.UpdateValues(ctx, spreadsheetID, fmt.Sprintf("%s!A1", schedule.Title), scheduleValues(schedule)); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	return nil
}

// scheduleValues lays out the header then the rows in order
func scheduleValues(schedule *PublishedSchedule) [][]interface{} {
	values := make([][]interface{}, 0, len(schedule.Rows)+1)
	values = append(values, []interface{}{"Slot", "Participant"})

	for _, row := range schedule.Rows {
		values = append(values, []interface{}{row.Slot, row.Participant})
	}

	return values
}
