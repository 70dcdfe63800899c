package geom

import (
	"errors"
	"fmt"

	"mcmap/internal/points"
)

// ErrNoRows is returned when a file parses but yields no records.
var ErrNoRows = errors.New("no point records found")

// ErrColumnMissing indicates a required CSV header column is absent.
type ErrColumnMissing struct {
	Column string
}

func (e *ErrColumnMissing) Error() string {
	return fmt.Sprintf("csv: required column %q not found", e.Column)
}

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported file: %q", e.Ext)
}

// Dataset is the raw output of a loader.
type Dataset struct {
	Path   string
	Format string
	Rows   []points.Row
}
