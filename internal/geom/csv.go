package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"mcmap/internal/points"
)

// LoadCSV reads a CSV file with a header row naming X, Y, Z and Type columns.
// Files that are not valid UTF-8 are decoded as Windows-1252, the usual
// encoding of exports from spreadsheet tools.
func LoadCSV(path string) ([]points.Row, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	return ReadCSV(strings.NewReader(text))
}

func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	return charmap.Windows1252.NewDecoder().String(string(raw))
}

// ReadCSV parses CSV records. Column detection is case-insensitive; X, Z and
// Type are required, Y is optional. Short rows are kept with empty fields so
// the index decides what to drop.
func ReadCSV(r io.Reader) ([]points.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	idx := map[string]int{"x": -1, "y": -1, "z": -1, "type": -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if j, ok := idx[key]; ok && j == -1 {
			idx[key] = i
		}
	}
	for _, col := range []string{"x", "z", "type"} {
		if idx[col] == -1 {
			return nil, &ErrColumnMissing{Column: strings.ToUpper(col[:1]) + col[1:]}
		}
	}
	field := func(rec []string, col string) string {
		i := idx[col]
		if i < 0 || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	var rows []points.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, points.Row{
			X:    field(rec, "x"),
			Y:    field(rec, "y"),
			Z:    field(rec, "z"),
			Type: field(rec, "type"),
		})
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}
