package storage

import (
	"context"
	"time"

	"github.com/eudistrict/chancery/internal/metrics"
)

// Instrumented wraps s so every worksheet call is counted and timed.
func Instrumented(s Store, m *metrics.Metrics) Store {
	if m == nil {
		return s
	}
	return &instrumentedStore{Store: s, m: m}
}

type instrumentedStore struct {
	Store
	m *metrics.Metrics
}

func (s *instrumentedStore) Worksheet(ctx context.Context, name string) (Worksheet, error) {
	start := time.Now()
	ws, err := s.Store.Worksheet(ctx, name)
	s.observe("open", name, start, err)
	if err != nil {
		return nil, err
	}
	return &instrumentedWorksheet{Worksheet: ws, store: s}, nil
}

func (s *instrumentedStore) AddWorksheet(ctx context.Context, name string) (Worksheet, error) {
	start := time.Now()
	ws, err := s.Store.AddWorksheet(ctx, name)
	s.observe("add", name, start, err)
	if err != nil {
		return nil, err
	}
	return &instrumentedWorksheet{Worksheet: ws, store: s}, nil
}

func (s *instrumentedStore) observe(op, worksheet string, start time.Time, err error) {
	s.m.StoreOps.WithLabelValues(op, worksheet, metrics.Outcome(err)).Inc()
	s.m.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

type instrumentedWorksheet struct {
	Worksheet
	store *instrumentedStore
}

func (w *instrumentedWorksheet) Values(ctx context.Context) ([][]string, error) {
	start := time.Now()
	grid, err := w.Worksheet.Values(ctx)
	w.store.observe("values", w.Name(), start, err)
	return grid, err
}

func (w *instrumentedWorksheet) AppendRow(ctx context.Context, values []string) error {
	start := time.Now()
	err := w.Worksheet.AppendRow(ctx, values)
	w.store.observe("append", w.Name(), start, err)
	return err
}

func (w *instrumentedWorksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	start := time.Now()
	err := w.Worksheet.UpdateCell(ctx, row, col, value)
	w.store.observe("update_cell", w.Name(), start, err)
	return err
}

func (w *instrumentedWorksheet) Replace(ctx context.Context, grid [][]string) error {
	start := time.Now()
	err := w.Worksheet.Replace(ctx, grid)
	w.store.observe("replace", w.Name(), start, err)
	return err
}
