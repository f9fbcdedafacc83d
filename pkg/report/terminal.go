package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/allocator"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/db"
)

const (
	minSlotColWidth = 12
	openMarker      = "(open)"
	runTimeLayout   = "2006-01-02 15:04"
)

// Summary holds the headline numbers of a schedule
type Summary struct {
	Mode              string
	TieBreak          string
	Participants      int
	Scheduled         int
	TruncatedSearches int
}

// SummaryOf builds the summary of an outcome
func SummaryOf(outcome *allocator.AllocationOutcome) Summary {
	return Summary{
		Mode:              string(outcome.Mode),
		TieBreak:          string(outcome.TieBreak),
		Participants:      outcome.ScheduledCount() + len(outcome.Unscheduled()),
		Scheduled:         outcome.ScheduledCount(),
		TruncatedSearches: outcome.TruncatedSearches,
	}
}

// SummaryOfRun builds the summary of a saved run
func SummaryOfRun(run *db.Run) Summary {
	return Summary{
		Mode:              run.Mode,
		TieBreak:          run.TieBreak,
		Participants:      run.ParticipantCount,
		Scheduled:         run.ScheduledCount,
		TruncatedSearches: run.TruncatedSearches,
	}
}

// PrintSchedule prints the slot table followed by the unscheduled participants
func PrintSchedule(w io.Writer, summary Summary, rows []Row) {
	slotColWidth := minSlotColWidth
	for _, row := range rows {
		if len(row.Slot)+2 > slotColWidth {
			slotColWidth = len(row.Slot) + 2
		}
	}

	fmt.Fprintf(w, "\n%-*s%s\n", slotColWidth, "Slot", "Participant")
	fmt.Fprintln(w, strings.Repeat("-", slotColWidth+20))

	var unscheduled []string
	for _, row := range rows {
		switch row.Kind {
		case db.EntryUnscheduled:
			unscheduled = append(unscheduled, row.Participant)
		case db.EntryOpen:
			fmt.Fprintf(w, "%-*s%s\n", slotColWidth, row.Slot, openMarker)
		default:
			fmt.Fprintf(w, "%-*s%s\n", slotColWidth, row.Slot, row.Participant)
		}
	}

	fmt.Fprintf(w, "\nScheduled %d of %d participants (mode: %s, tie-break: %s)\n",
		summary.Scheduled, summary.Participants, summary.Mode, summary.TieBreak)

	if summary.TruncatedSearches > 0 {
		fmt.Fprintf(w, "Warning: %d searches stopped at the depth limit; the schedule may not be maximal\n",
			summary.TruncatedSearches)
	}

	if len(unscheduled) > 0 {
		fmt.Fprintf(w, "\nUnscheduled (%d):\n", len(unscheduled))
		for _, name := range unscheduled {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
	fmt.Fprintln(w)
}

// PrintMandatory prints the assignments shared by every maximum schedule
func PrintMandatory(w io.Writer, entries []allocator.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo assignment is fixed: every slot can go to someone else in some maximum schedule.")
		return
	}

	fmt.Fprintf(w, "\nAssignments present in every maximum schedule (%d):\n\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(w, "  %-*s%s\n", minSlotColWidth, entry.Slot, entry.Participant)
	}
	fmt.Fprintln(w)
}

// PrintRuns lists saved runs, newest first
func PrintRuns(w io.Writer, runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "\nNo saved runs.")
		return
	}

	fmt.Fprintf(w, "\n%-38s%-18s%-12s%-8s%s\n", "ID", "Created", "Mode", "Slots", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, run := range runs {
		fmt.Fprintf(w, "%-38s%-18s%-12s%-8s%s\n",
			run.ID,
			run.CreatedAt.Local().Format(runTimeLayout),
			run.Mode,
			fmt.Sprintf("%d/%d", run.ScheduledCount, run.ParticipantCount),
			run.Source,
		)
	}
	fmt.Fprintln(w)
}

// PrintRun prints a saved run header and its schedule
func PrintRun(w io.Writer, run *db.Run, entries []db.RunEntry) {
	fmt.Fprintf(w, "\nRun:     %s\n", run.ID)
	fmt.Fprintf(w, "Created: %s\n", run.CreatedAt.Local().Format(runTimeLayout))
	fmt.Fprintf(w, "Source:  %s\n", run.Source)
	if run.MaxSearchDepth > 0 {
		fmt.Fprintf(w, "Depth:   %d\n", run.MaxSearchDepth)
	}

	PrintSchedule(w, SummaryOfRun(run), RowsFromEntries(entries))
}
