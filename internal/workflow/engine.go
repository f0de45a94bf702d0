// Package workflow implements the approval, ledger and task board rules on
// top of the record store. Every operation is a single synchronous round
// trip: views re-read the whole worksheet, writes touch one cell, one
// appended row, or (for grid saves) the whole worksheet. Nothing is
// retried; a failed call is reported and left for the officer to repeat.
package workflow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/eudistrict/chancery/internal/calculator"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// Engine runs workflow operations against a record store.
type Engine struct {
	store  storage.Store
	policy calculator.BalancePolicy
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBalancePolicy selects which finance entries count towards the balance.
func WithBalancePolicy(p calculator.BalancePolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithClock overrides the clock used for default dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the record id generator.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine over store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		policy: calculator.BalanceAll,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BalancePolicy returns the policy the engine was configured with.
func (e *Engine) BalancePolicy() calculator.BalancePolicy {
	return e.policy
}

func (e *Engine) today() string {
	return e.now().Format(records.DateLayout)
}

// sheet is one full read of a worksheet.
type sheet struct {
	ws      storage.Worksheet
	header  []string
	records []storage.Record
}

func (e *Engine) read(ctx context.Context, name string) (*sheet, error) {
	ws, err := e.store.Worksheet(ctx, name)
	if err != nil {
		return nil, storage.Wrap("open", name, err)
	}
	header, recs, err := storage.ReadRecords(ctx, ws)
	if err != nil {
		return nil, err
	}
	return &sheet{ws: ws, header: header, records: recs}, nil
}

// find returns the record with the given id.
func (s *sheet) find(id string) (storage.Record, bool) {
	for _, r := range s.records {
		if r.Get("id") == id {
			return r, true
		}
	}
	return storage.Record{}, false
}

// decodeAll decodes every record, skipping rows that fail to decode so one
// hand-edited cell cannot take a whole view down.
func decodeAll[T any](e *Engine, name string, recs []storage.Record, decode func(storage.Record) (T, error)) []T {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		v, err := decode(r)
		if err != nil {
			e.logger.Warn("Skipping invalid row", "worksheet", name, "row", r.Row, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// recordVersion fingerprints a row by its header-ordered cells.
func recordVersion(header []string, r storage.Record) string {
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = r.Get(h)
	}
	return fingerprint([][]string{cells})
}

// rowVersion is recordVersion for a row already in header order.
func rowVersion(row []string) string {
	return fingerprint([][]string{row})
}

// fingerprint hashes a grid after trimming trailing empty cells and rows,
// so padding differences between backends do not change it.
func fingerprint(grid [][]string) string {
	d := xxhash.New()
	rows := canonical(grid)
	for _, row := range rows {
		d.WriteString(strings.Join(row, "\x1f"))
		d.WriteString("\x1e")
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

func canonical(grid [][]string) [][]string {
	out := make([][]string, 0, len(grid))
	for _, row := range grid {
		n := len(row)
		for n > 0 && row[n-1] == "" {
			n--
		}
		out = append(out, row[:n])
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}
