package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eudistrict/chancery/internal/storage"
)

// worksheet implements storage.Worksheet over the cells table.
type worksheet struct {
	db   *sql.DB
	name string
}

func (w *worksheet) Name() string { return w.name }

// Values returns the grid up to the last non-empty row. Gaps are filled
// with empty strings so the result looks like a spreadsheet read.
func (w *worksheet) Values(ctx context.Context) ([][]string, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT row_num, col_num, value FROM cells WHERE worksheet = ? AND value <> '' ORDER BY row_num, col_num",
		w.name,
	)
	if err != nil {
		return nil, storage.Wrap("read", w.name, err)
	}
	defer rows.Close()

	grid := [][]string{}
	for rows.Next() {
		var r, c int
		var value string
		if err := rows.Scan(&r, &c, &value); err != nil {
			return nil, storage.Wrap("read", w.name, fmt.Errorf("failed to scan cell: %w", err))
		}
		for len(grid) < r {
			grid = append(grid, []string{})
		}
		row := grid[r-1]
		for len(row) < c {
			row = append(row, "")
		}
		row[c-1] = value
		grid[r-1] = row
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("read", w.name, err)
	}

	return grid, nil
}

// AppendRow writes values below the last non-empty row.
func (w *worksheet) AppendRow(ctx context.Context, values []string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Wrap("append", w.name, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	var last sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT MAX(row_num) FROM cells WHERE worksheet = ? AND value <> ''",
		w.name,
	).Scan(&last)
	if err != nil {
		return storage.Wrap("append", w.name, err)
	}
	next := int(last.Int64) + 1

	if err := insertRow(ctx, tx, w.name, next, values); err != nil {
		return storage.Wrap("append", w.name, err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Wrap("append", w.name, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// UpdateCell overwrites one cell, creating it when missing.
func (w *worksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return storage.Wrap("update cell", w.name, fmt.Errorf("invalid cell address R%dC%d", row, col))
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO cells (worksheet, row_num, col_num, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (worksheet, row_num, col_num) DO UPDATE SET value = excluded.value`,
		w.name, row, col, value,
	)
	if err != nil {
		return storage.Wrap("update cell", w.name, err)
	}
	return nil
}

// Replace clears the worksheet and writes grid from row 1.
func (w *worksheet) Replace(ctx context.Context, grid [][]string) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Wrap("replace", w.name, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cells WHERE worksheet = ?", w.name); err != nil {
		return storage.Wrap("replace", w.name, fmt.Errorf("failed to clear worksheet: %w", err))
	}

	for i, values := range grid {
		if err := insertRow(ctx, tx, w.name, i+1, values); err != nil {
			return storage.Wrap("replace", w.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.Wrap("replace", w.name, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

func insertRow(ctx context.Context, tx *sql.Tx, worksheet string, row int, values []string) error {
	for j, value := range values {
		if value == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO cells (worksheet, row_num, col_num, value) VALUES (?, ?, ?, ?)",
			worksheet, row, j+1, value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cell R%dC%d: %w", row, j+1, err)
		}
	}
	return nil
}
