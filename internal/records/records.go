// Package records maps worksheet rows to typed models and back. It owns the
// worksheet names and their exact header order, and rejects rows that miss
// a required field instead of handing out partial records.
package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/eudistrict/chancery/internal/storage"
)

// Worksheet names.
const (
	Users     = "users"
	Documents = "documents"
	Finance   = "finance"
	Schedule  = "schedule"
	Tasks     = "tasks"
)

// DateLayout is the on-sheet date format.
const DateLayout = "2006-01-02"

// Headers lists the exact column order of every worksheet. Appended rows
// follow this order, so a worksheet whose header drifts from it is refused.
var Headers = map[string][]string{
	Users:     {"id", "username", "password", "name", "role"},
	Documents: {"id", "date", "title", "writer", "file_url", "status"},
	Finance:   {"id", "date", "type", "category", "amount", "description", "receipt_url", "status"},
	Schedule:  {"id", "start_date", "end_date", "title", "location", "description"},
	Tasks:     {"id", "due_date", "task", "assignee", "status", "note"},
}

// Names returns the worksheet names in a fixed order.
func Names() []string {
	return []string{Users, Documents, Finance, Schedule, Tasks}
}

// Header returns the schema header of a worksheet.
func Header(name string) ([]string, bool) {
	h, ok := Headers[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), h...), true
}

// Column returns the 1-based position of field in header, or 0.
func Column(header []string, field string) int {
	for i, h := range header {
		if h == field {
			return i + 1
		}
	}
	return 0
}

// SchemaError reports a worksheet header that does not match its schema.
type SchemaError struct {
	Worksheet string
	Want      []string
	Got       []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("worksheet %q header mismatch: want [%s], got [%s]",
		e.Worksheet, strings.Join(e.Want, ", "), strings.Join(e.Got, ", "))
}

// CheckHeader verifies header equals the schema of worksheet name, in order.
func CheckHeader(name string, header []string) error {
	want, ok := Headers[name]
	if !ok {
		return fmt.Errorf("unknown worksheet %q", name)
	}
	got := make([]string, len(header))
	for i, h := range header {
		got[i] = storage.NormalizeHeader(h)
	}
	// Trailing empty header cells are harmless.
	for len(got) > 0 && got[len(got)-1] == "" {
		got = got[:len(got)-1]
	}
	if len(got) != len(want) {
		return &SchemaError{Worksheet: name, Want: want, Got: got}
	}
	for i := range want {
		if got[i] != want[i] {
			return &SchemaError{Worksheet: name, Want: want, Got: got}
		}
	}
	return nil
}

// DecodeError reports a row that cannot become a typed record.
type DecodeError struct {
	Worksheet string
	Row       int
	Field     string
	Reason    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("worksheet %q row %d: field %q %s", e.Worksheet, e.Row, e.Field, e.Reason)
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func required(ws string, r storage.Record, fields ...string) error {
	for _, f := range fields {
		if r.Get(f) == "" {
			return &DecodeError{Worksheet: ws, Row: r.Row, Field: f, Reason: "is required"}
		}
	}
	return nil
}

func invalid(ws string, r storage.Record, field string) error {
	return &DecodeError{Worksheet: ws, Row: r.Row, Field: field, Reason: fmt.Sprintf("has invalid value %q", r.Get(field))}
}
