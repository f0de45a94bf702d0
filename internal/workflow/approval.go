package workflow

import (
	"context"
	"fmt"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// approve moves the row with id from pending to approved. Approving an
// approved row is a no-op. When version is set and the row no longer
// matches it, nothing is written and ErrConflict is returned.
func (e *Engine) approve(ctx context.Context, who *models.Identity, name, id, version string) error {
	if err := auth.Authorize(who, models.RoleAdmin); err != nil {
		return err
	}
	if id == "" {
		return invalidField("id", "is required")
	}

	s, err := e.read(ctx, name)
	if err != nil {
		return err
	}
	statusCol := records.Column(s.header, "status")
	if statusCol == 0 {
		return &records.SchemaError{Worksheet: name, Want: records.Headers[name], Got: s.header}
	}

	rec, ok := s.find(id)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, name, id)
	}

	switch models.ApprovalStatus(rec.Get("status")) {
	case models.StatusApproved:
		e.logger.Debug("Already approved", "worksheet", name, "id", id)
		return nil
	case models.StatusPending:
	default:
		return fmt.Errorf("%w: %q cannot be approved", ErrInvalidTransition, rec.Get("status"))
	}

	if version != "" && recordVersion(s.header, rec) != version {
		return fmt.Errorf("%w: %s %s", ErrConflict, name, id)
	}

	if err := s.ws.UpdateCell(ctx, rec.Row, statusCol, string(models.StatusApproved)); err != nil {
		return storage.Wrap("update cell", name, err)
	}
	e.logger.Info("Record approved", "worksheet", name, "id", id, "row", rec.Row, "by", who.Username)
	return nil
}

// appendRow writes row below the existing data after checking the worksheet
// header still matches the schema. An empty worksheet gets the header first.
func (e *Engine) appendRow(ctx context.Context, name string, row []string) error {
	ws, err := e.store.Worksheet(ctx, name)
	if err != nil {
		return storage.Wrap("open", name, err)
	}
	grid, err := ws.Values(ctx)
	if err != nil {
		return storage.Wrap("read", name, err)
	}

	if len(grid) == 0 {
		header, _ := records.Header(name)
		if err := storage.EnsureHeader(ctx, ws, header); err != nil {
			return err
		}
	} else if err := records.CheckHeader(name, grid[0]); err != nil {
		return err
	}

	if err := ws.AppendRow(ctx, row); err != nil {
		return storage.Wrap("append", name, err)
	}
	return nil
}
