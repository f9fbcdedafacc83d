package responses

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads all rows from r. Rows may have differing numbers of fields.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// FileSource loads response rows from a CSV export on disk
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// LoadRows reads the CSV file
func (s *FileSource) LoadRows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open responses file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// Describe names the source for logs and run history
func (s *FileSource) Describe() string {
	return "csv:" + s.Path
}
