// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface. Each worksheet is persisted as a sparse grid of cells, which
// keeps the behaviour of a spreadsheet (blank cells, ragged rows) while
// running entirely on a local file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/eudistrict/chancery/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers; SQLite would otherwise
	// answer concurrent writes with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Worksheet opens an existing worksheet.
func (s *SQLiteStore) Worksheet(ctx context.Context, name string) (storage.Worksheet, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM worksheets WHERE name = ?", name).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrWorksheetNotFound, name)
	}
	if err != nil {
		return nil, storage.Wrap("open", name, err)
	}
	return &worksheet{db: s.db, name: name}, nil
}

// AddWorksheet creates the worksheet if it does not exist yet.
func (s *SQLiteStore) AddWorksheet(ctx context.Context, name string) (storage.Worksheet, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO worksheets (name, created_at) VALUES (?, ?)",
		name, time.Now().Unix(),
	)
	if err != nil {
		return nil, storage.Wrap("add worksheet", name, err)
	}
	return &worksheet{db: s.db, name: name}, nil
}

// WorksheetNames lists all worksheets in creation order.
func (s *SQLiteStore) WorksheetNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM worksheets ORDER BY created_at, name")
	if err != nil {
		return nil, storage.Wrap("list worksheets", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storage.Wrap("list worksheets", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("list worksheets", "", err)
	}
	return names, nil
}
