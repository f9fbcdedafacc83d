package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

// WriteCSV writes slot,participant rows. Unscheduled participants are
// written with the UNSCHEDULED marker in the slot column.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"slot", "participant"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		slot := row.Slot
		if row.Kind == db.EntryUnscheduled {
			slot = UnscheduledMarker
		}
		if err := writer.Write([]string{slot, row.Participant}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteCSVFile writes the rows to path, replacing any existing file
func WriteCSVFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
