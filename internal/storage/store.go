// Package storage provides abstractions for the record store: a
// spreadsheet-like service holding one worksheet per entity.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrWorksheetNotFound is returned when a worksheet does not exist.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// Store defines the record store operations the workflow engine needs.
// This abstraction allows swapping backends (SQLite, Google Sheets)
// without changing the engine.
type Store interface {
	// Worksheet opens an existing worksheet by name.
	// Returns an error wrapping ErrWorksheetNotFound if it does not exist.
	Worksheet(ctx context.Context, name string) (Worksheet, error)

	// AddWorksheet creates an empty worksheet. Creating a worksheet that
	// already exists is not an error.
	AddWorksheet(ctx context.Context, name string) (Worksheet, error)

	// Close releases any resources held by the store.
	Close() error
}

// Worksheet is a grid of string cells. Row 1 is the header row; row and
// column addressing is 1-based.
type Worksheet interface {
	Name() string

	// Values returns the whole grid, header included. An empty worksheet
	// yields an empty grid, not an error.
	Values(ctx context.Context) ([][]string, error)

	// AppendRow writes values into the first row after the last non-empty one.
	AppendRow(ctx context.Context, values []string) error

	// UpdateCell overwrites a single cell.
	UpdateCell(ctx context.Context, row, col int, value string) error

	// Replace clears the worksheet and writes grid starting at A1.
	Replace(ctx context.Context, grid [][]string) error
}

// Error is a record store failure (connection, read or write).
type Error struct {
	Op        string
	Worksheet string
	Err       error
}

func (e *Error) Error() string {
	if e.Worksheet == "" {
		return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("record store %s %q: %v", e.Op, e.Worksheet, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap annotates err as a record store failure. A nil err stays nil and an
// err that already is a *Error is returned unchanged.
func Wrap(op, worksheet string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Worksheet: worksheet, Err: err}
}

// Record is a data row keyed by header name.
type Record struct {
	// Row is the 1-based physical row number in the worksheet.
	Row int
	// Fields holds the cells with surrounding blanks trimmed.
	Fields map[string]string
	// Raw holds the cells exactly as stored. May be nil.
	Raw map[string]string
}

// Get returns the trimmed value of the named field, or "" when absent.
func (r Record) Get(field string) string {
	return r.Fields[field]
}

// Cell returns the named field exactly as stored, falling back to Get
// for records built without raw cells.
func (r Record) Cell(field string) string {
	if r.Raw == nil {
		return r.Get(field)
	}
	return r.Raw[field]
}

// NormalizeHeader canonicalises a header cell so that visually identical
// names typed on different keyboards compare equal.
func NormalizeHeader(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Records converts a grid into field-named records. The first row is the
// header; every following row becomes one record. Blank rows are skipped,
// missing trailing cells read as "".
func Records(grid [][]string) (header []string, records []Record) {
	if len(grid) == 0 {
		return nil, []Record{}
	}
	header = make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = NormalizeHeader(h)
	}

	records = make([]Record, 0, len(grid)-1)
	for i, row := range grid[1:] {
		if isBlank(row) {
			continue
		}
		fields := make(map[string]string, len(header))
		raw := make(map[string]string, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j < len(row) {
				raw[name] = row[j]
				fields[name] = strings.TrimSpace(row[j])
			} else {
				raw[name] = ""
				fields[name] = ""
			}
		}
		records = append(records, Record{Row: i + 2, Fields: fields, Raw: raw})
	}
	return header, records
}

// ReadRecords reads ws and converts it with Records.
func ReadRecords(ctx context.Context, ws Worksheet) ([]string, []Record, error) {
	grid, err := ws.Values(ctx)
	if err != nil {
		return nil, nil, Wrap("read", ws.Name(), err)
	}
	header, records := Records(grid)
	return header, records, nil
}

// EnsureHeader writes header into an empty worksheet. A worksheet that
// already has a header is left untouched.
func EnsureHeader(ctx context.Context, ws Worksheet, header []string) error {
	grid, err := ws.Values(ctx)
	if err != nil {
		return Wrap("read", ws.Name(), err)
	}
	if len(grid) > 0 && !isBlank(grid[0]) {
		return nil
	}
	if err := ws.Replace(ctx, [][]string{header}); err != nil {
		return Wrap("write header", ws.Name(), err)
	}
	return nil
}

// OpenOrCreate opens the named worksheet, creating it when missing.
func OpenOrCreate(ctx context.Context, s Store, name string) (Worksheet, error) {
	ws, err := s.Worksheet(ctx, name)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, ErrWorksheetNotFound) {
		return nil, err
	}
	return s.AddWorksheet(ctx, name)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
