package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// table is a parsed CSV file: a header→column-index map (case-insensitive,
// whitespace-trimmed, as spec.md §6 requires) plus the raw rows.
type table struct {
	header map[string]int
	rows   [][]string
}

// readCSV reads all records from r and builds a table, grounded on the
// teacher's internal/loader/parser_csv.go (encoding/csv, ReadAll).
func readCSV(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return &table{header: map[string]int{}}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[normalizeColumn(col)] = i
	}
	return &table{header: header, rows: records[1:]}, nil
}

func normalizeColumn(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// requireColumns fails fast (a structural error) when any of cols is
// absent from the header.
func (t *table) requireColumns(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if _, ok := t.header[normalizeColumn(c)]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// cell returns the trimmed value of column name in row, or "" if the
// column is absent or the row is short.
func (t *table) cell(row []string, name string) string {
	idx, ok := t.header[normalizeColumn(name)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
