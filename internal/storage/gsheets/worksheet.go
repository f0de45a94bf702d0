package gsheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/eudistrict/chancery/internal/storage"
)

// RAW keeps "1,000" and "0012" exactly as typed instead of letting the
// spreadsheet coerce them into numbers.
const valueInputOption = "RAW"

type worksheet struct {
	srv           *sheets.Service
	spreadsheetID string
	name          string
}

func (w *worksheet) Name() string { return w.name }

func (w *worksheet) Values(ctx context.Context) ([][]string, error) {
	resp, err := w.srv.Spreadsheets.Values.Get(w.spreadsheetID, quoteSheet(w.name)).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, storage.Wrap("read", w.name, err)
	}
	return toStrings(resp.Values), nil
}

func (w *worksheet) AppendRow(ctx context.Context, values []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	_, err := w.srv.Spreadsheets.Values.Append(w.spreadsheetID, quoteSheet(w.name)+"!A1", vr).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return storage.Wrap("append", w.name, err)
	}
	return nil
}

func (w *worksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	a1, err := cellRef(row, col)
	if err != nil {
		return storage.Wrap("update cell", w.name, err)
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err = w.srv.Spreadsheets.Values.Update(w.spreadsheetID, quoteSheet(w.name)+"!"+a1, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return storage.Wrap("update cell", w.name, err)
	}
	return nil
}

// Replace is two calls (clear, then write). A failure between them leaves
// the worksheet empty; the caller still holds the grid and can retry.
func (w *worksheet) Replace(ctx context.Context, grid [][]string) error {
	_, err := w.srv.Spreadsheets.Values.Clear(w.spreadsheetID, quoteSheet(w.name), &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return storage.Wrap("clear", w.name, err)
	}
	if len(grid) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(grid))
	for i, r := range grid {
		rows[i] = toCells(r)
	}
	_, err = w.srv.Spreadsheets.Values.Update(w.spreadsheetID, quoteSheet(w.name)+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return storage.Wrap("replace", w.name, err)
	}
	return nil
}

// quoteSheet turns a tab title into an A1 sheet reference.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// columnName converts a 1-based column index into letters (1 -> A, 27 -> AA).
func columnName(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

func cellRef(row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", fmt.Errorf("invalid cell address R%dC%d", row, col)
	}
	return fmt.Sprintf("%s%d", columnName(col), row), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func toStrings(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			grid[i][j] = fmt.Sprint(cell)
		}
	}
	return grid
}
