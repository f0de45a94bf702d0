package cli

import (
	"fmt"
	"log/slog"

	"github.com/eudistrict/chancery/internal/config"
	"github.com/eudistrict/chancery/internal/metrics"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/storage"
	"github.com/eudistrict/chancery/internal/storage/gsheets"
	"github.com/eudistrict/chancery/internal/storage/sqlite"
)

// operator is the identity maintenance commands act as.
var operator = &models.Identity{UserID: "cli", Username: "cli", Name: "Command line", Role: models.RoleAdmin}

// openStore opens the configured record store. A non-nil m instruments it.
func openStore(cfg *config.Config, m *metrics.Metrics) (storage.Store, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}

	var store storage.Store
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		s, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Info("Record store opened", "backend", cfg.Store.Backend, "database", cfg.Store.SQLitePath)
		store = s
	case config.BackendGSheets:
		creds, err := cfg.Credentials()
		if err != nil {
			return nil, err
		}
		slog.Info("Record store opened", "backend", cfg.Store.Backend, "spreadsheet_id", cfg.Store.SpreadsheetID)
		store = gsheets.New(cfg.Store.SpreadsheetID, creds)
	}

	return storage.Instrumented(store, m), nil
}
