package responses

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nicksheldon/CUClimbingWallSchedule/internal/config"
	"github.com/nicksheldon/CUClimbingWallSchedule/pkg/core/model"
)

// RecordError describes a response row that was rejected before scheduling
type RecordError struct {
	// Row is the 1-based row number in the source (header included)
	Row    int
	Name   string
	Reason string
}

func (e RecordError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d (%s): %s", e.Row, e.Name, e.Reason)
}

// RejectedRecordsError is returned in strict mode when any row was rejected
type RejectedRecordsError struct {
	Errors []RecordError
}

func (e *RejectedRecordsError) Error() string {
	lines := make([]string, len(e.Errors))
	for i, recErr := range e.Errors {
		lines[i] = recErr.Error()
	}
	return fmt.Sprintf("%d response rows rejected:\n  %s", len(e.Errors), strings.Join(lines, "\n  "))
}

// ParseResult is the outcome of normalising raw response rows
type ParseResult struct {
	// Records are the accepted responses, in the order of their (latest) row
	Records []model.Record

	// Rejected rows never reach the scheduler
	Rejected []RecordError

	// Superseded lists names whose earlier response was replaced by a later one
	Superseded []string
}

// response is a single row after column extraction
type response struct {
	Name  string `validate:"required"`
	Slots string
}

var validate = validator.New()

// annotatedLabel matches a label followed by a parenthesised note, e.g. "A (Mon 18:00)"
var annotatedLabel = regexp.MustCompile(`^(\S+)\s*\(.*\)$`)

// Parser turns raw rows (CSV or spreadsheet) into validated preference records
type Parser struct {
	universe *model.Universe
	layout   config.ResponsesLayout
}

// NewParser creates a parser for the given universe and row layout
func NewParser(universe *model.Universe, layout config.ResponsesLayout) *Parser {
	return &Parser{
		universe: universe,
		layout:   layout,
	}
}

// ParseRows normalises rows into records.
//
// The slots column is split on the configured separator; quotes and
// whitespace are stripped and labels are matched against the universe ignoring
// case. A label followed by a parenthesised note such as "A (Mon 18:00)"
// matches on the label alone; any other multi-word token is an unknown label.
// Rows with an empty name, a missing column or an unknown label are rejected.
// A name seen twice keeps only its later response.
func (p *Parser) ParseRows(rows [][]string) ParseResult {
	result := ParseResult{
		Records:    []model.Record{},
		Rejected:   []RecordError{},
		Superseded: []string{},
	}

	start := 0
	if p.layout.SkipHeader {
		start = 1
	}

	nameCol := p.layout.NameColumnIndex()
	slotsCol := p.layout.SlotsColumnIndex()
	positions := make(map[string]int)

	for i := start; i < len(rows); i++ {
		rowNumber := i + 1
		row := rows[i]

		if isBlank(row) {
			continue
		}

		if nameCol >= len(row) || slotsCol >= len(row) {
			result.Rejected = append(result.Rejected, RecordError{
				Row:    rowNumber,
				Reason: fmt.Sprintf("expected at least %d columns, got %d", max(nameCol, slotsCol)+1, len(row)),
			})
			continue
		}

		resp := response{
			Name:  strings.TrimSpace(row[nameCol]),
			Slots: row[slotsCol],
		}
		if err := validate.Struct(resp); err != nil {
			result.Rejected = append(result.Rejected, RecordError{
				Row:    rowNumber,
				Reason: "participant name is empty",
			})
			continue
		}

		slots, err := p.parseSlots(resp.Slots)
		if err != nil {
			result.Rejected = append(result.Rejected, RecordError{
				Row:    rowNumber,
				Name:   resp.Name,
				Reason: err.Error(),
			})
			continue
		}

		record := model.Record{Name: resp.Name, Slots: slots}
		if prev, seen := positions[resp.Name]; seen {
			result.Records = append(result.Records[:prev], result.Records[prev+1:]...)
			for name, pos := range positions {
				if pos > prev {
					positions[name] = pos - 1
				}
			}
			result.Superseded = append(result.Superseded, resp.Name)
		}
		positions[resp.Name] = len(result.Records)
		result.Records = append(result.Records, record)
	}

	return result
}

// parseSlots splits and resolves the raw slots cell
func (p *Parser) parseSlots(raw string) ([]model.Slot, error) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)

	slots := []model.Slot{}
	for _, token := range strings.Split(raw, p.layout.SlotSeparator()) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		slot, ok := p.universe.Lookup(token)
		if !ok {
			if match := annotatedLabel.FindStringSubmatch(token); match != nil {
				slot, ok = p.universe.Lookup(match[1])
			}
		}
		if !ok {
			return nil, fmt.Errorf("unknown slot %q", token)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
