package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// Grid is an editable copy of a whole worksheet.
type Grid struct {
	Table  string
	Header []string
	Rows   [][]string

	// Version fingerprints the worksheet content the grid was loaded from.
	Version string
}

// gridEditors lists who may rewrite each worksheet.
var gridEditors = map[string][]models.Role{
	records.Users:     {models.RoleAdmin},
	records.Documents: {models.RoleAdmin, models.RoleSecretary},
	records.Finance:   {models.RoleAdmin, models.RoleTreasurer},
	records.Schedule:  anyRole,
	records.Tasks:     anyRole,
}

// gridViewers lists who may load each worksheet as a grid. The users grid
// contains passwords.
var gridViewers = map[string][]models.Role{
	records.Users:     {models.RoleAdmin},
	records.Documents: anyRole,
	records.Finance:   anyRole,
	records.Schedule:  anyRole,
	records.Tasks:     anyRole,
}

// LoadTable reads a whole worksheet for editing. Rows are padded to the
// header width.
func (e *Engine) LoadTable(ctx context.Context, who *models.Identity, table string) (*Grid, error) {
	roles, ok := gridViewers[table]
	if !ok {
		return nil, invalidField("table", fmt.Sprintf("unknown table %q", table))
	}
	if err := auth.Authorize(who, roles...); err != nil {
		return nil, err
	}

	ws, err := e.store.Worksheet(ctx, table)
	if err != nil {
		return nil, storage.Wrap("open", table, err)
	}
	values, err := ws.Values(ctx)
	if err != nil {
		return nil, storage.Wrap("read", table, err)
	}

	g := &Grid{Table: table, Rows: [][]string{}, Version: fingerprint(values)}
	if len(values) == 0 {
		g.Header, _ = records.Header(table)
		return g, nil
	}
	g.Header = append([]string(nil), values[0]...)
	for _, row := range values[1:] {
		padded := make([]string, max(len(g.Header), len(row)))
		copy(padded, row)
		g.Rows = append(g.Rows, padded)
	}
	return g, nil
}

// SaveTable clears the worksheet and rewrites it from g.
//
// When baseVersion is set, the save is refused with ErrConflict if the
// worksheet content no longer matches it, so rows appended by someone else
// since the grid was loaded are not silently dropped. An empty baseVersion
// skips the check (last writer wins).
//
// The header must equal the schema. Rows identical to a row already in the
// worksheet are written back as they are, so saving an unmodified grid
// reproduces the worksheet even when it holds rows the list views skip.
// New or edited rows must decode as records of the table, and those
// without an id get a fresh one. Returns the new version.
func (e *Engine) SaveTable(ctx context.Context, who *models.Identity, g *Grid, baseVersion string) (string, error) {
	if g == nil {
		return "", invalidField("grid", "is required")
	}
	roles, ok := gridEditors[g.Table]
	if !ok {
		return "", invalidField("table", fmt.Sprintf("unknown table %q", g.Table))
	}
	if err := auth.Authorize(who, roles...); err != nil {
		return "", err
	}
	if err := records.CheckHeader(g.Table, g.Header); err != nil {
		return "", invalidField("header", err.Error())
	}

	ws, err := e.store.Worksheet(ctx, g.Table)
	if err != nil {
		return "", storage.Wrap("open", g.Table, err)
	}
	current, err := ws.Values(ctx)
	if err != nil {
		return "", storage.Wrap("read", g.Table, err)
	}
	if baseVersion != "" && fingerprint(current) != baseVersion {
		return "", fmt.Errorf("%w: worksheet %s", ErrConflict, g.Table)
	}

	grid, err := e.prepareGrid(g, current)
	if err != nil {
		return "", err
	}

	if err := ws.Replace(ctx, grid); err != nil {
		return "", storage.Wrap("replace", g.Table, err)
	}
	e.logger.Info("Table saved", "worksheet", g.Table, "rows", len(grid)-1, "by", who.Username)
	return fingerprint(grid), nil
}

// prepareGrid validates the rows of g and returns the grid to write,
// header first. Fully blank rows are dropped. Rows already present in
// current are kept verbatim.
func (e *Engine) prepareGrid(g *Grid, current [][]string) ([][]string, error) {
	header, _ := records.Header(g.Table)
	idCol := records.Column(header, "id") - 1

	stored := make(map[string]bool)
	if len(current) > 1 {
		for _, row := range current[1:] {
			stored[rowKey(row, len(header))] = true
		}
	}

	grid := make([][]string, 0, len(g.Rows)+1)
	grid = append(grid, header)
	for i, row := range g.Rows {
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) && !isBlankRow(row[len(header):]) {
			return nil, invalidField(fmt.Sprintf("rows[%d]", i), "has cells beyond the header")
		}
		cells := make([]string, len(header))
		copy(cells, row)
		if stored[rowKey(cells, len(header))] {
			grid = append(grid, cells)
			continue
		}

		if cells[idCol] == "" {
			cells[idCol] = e.newID()
		}
		_, recs := storage.Records([][]string{header, cells})
		recs[0].Row = len(grid) + 1
		if err := records.Validate(g.Table, recs[0]); err != nil {
			return nil, invalidField(fmt.Sprintf("rows[%d]", i), err.Error())
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// rowKey identifies a row by its first width cells, missing cells read as "".
func rowKey(row []string, width int) string {
	cells := make([]string, width)
	copy(cells, row)
	return strings.Join(cells, "\x1f")
}

// BackfillIDs writes a fresh id into every data row of table whose id cell
// is empty, for worksheets filled in by hand. Admin only. Returns how many
// rows were updated.
func (e *Engine) BackfillIDs(ctx context.Context, who *models.Identity, table string) (int, error) {
	if err := auth.Authorize(who, models.RoleAdmin); err != nil {
		return 0, err
	}
	s, err := e.read(ctx, table)
	if err != nil {
		return 0, err
	}
	idCol := records.Column(s.header, "id")
	if idCol == 0 {
		return 0, &records.SchemaError{Worksheet: table, Want: records.Headers[table], Got: s.header}
	}

	n := 0
	for _, r := range s.records {
		if r.Get("id") != "" {
			continue
		}
		if err := s.ws.UpdateCell(ctx, r.Row, idCol, e.newID()); err != nil {
			return n, storage.Wrap("update cell", table, err)
		}
		n++
	}
	if n > 0 {
		e.logger.Info("Backfilled record ids", "worksheet", table, "rows", n)
	}
	return n, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
