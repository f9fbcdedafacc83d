package sheetsclient

import (
	"context"
	"fmt"
)

// ResponseSheet reads sign-up responses from a tab of a Google Sheet,
// typically the one a Google Form writes to
type ResponseSheet struct {
	client        *Client
	spreadsheetID string
	tab           string
}

// NewResponseSheet creates a source for the given spreadsheet tab
func NewResponseSheet(client *Client, spreadsheetID, tab string) *ResponseSheet {
	return &ResponseSheet{
		client:        client,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}
}

// LoadRows returns every row of the tab as strings
func (s *ResponseSheet) LoadRows(ctx context.Context) ([][]string, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, fmt.Sprintf("%s!A:ZZ", s.tab))
	if err != nil {
		return nil, fmt.Errorf("failed to read responses tab %q: %w", s.tab, err)
	}

	return stringRows(values), nil
}

// Describe names the source for logs and run history
func (s *ResponseSheet) Describe() string {
	return fmt.Sprintf("sheet:%s/%s", s.spreadsheetID, s.tab)
}

// stringRows converts API cell values to strings
func stringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			rows[i][j] = fmt.Sprint(cell)
		}
	}
	return rows
}
