// Package gsheets implements storage.Store on top of a Google Spreadsheet.
// Each worksheet (tab) of the spreadsheet holds one entity; the service
// account must be shared on the spreadsheet as an editor.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/eudistrict/chancery/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is a spreadsheet-backed record store. The API client is built on
// first use and shared by every worksheet and every caller afterwards.
type Store struct {
	spreadsheetID string
	service       func() (*sheets.Service, error)
}

// New prepares a store for the given spreadsheet. credentialsJSON is a
// service-account key bundle. No network call happens until the first
// worksheet is opened.
func New(spreadsheetID string, credentialsJSON []byte, opts ...option.ClientOption) *Store {
	opts = append([]option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope, "https://www.googleapis.com/auth/drive"),
	}, opts...)

	return &Store{
		spreadsheetID: spreadsheetID,
		service: sync.OnceValues(func() (*sheets.Service, error) {
			slog.Info("Connecting to spreadsheet", "spreadsheet_id", spreadsheetID)
			// The client outlives any single request, so it must not
			// inherit a request context.
			srv, err := sheets.NewService(context.Background(), opts...)
			if err != nil {
				return nil, fmt.Errorf("failed to create sheets client: %w", err)
			}
			return srv, nil
		}),
	}
}

// Close is a no-op; the underlying HTTP client has nothing to release.
func (s *Store) Close() error { return nil }

// Worksheet opens an existing tab by title.
func (s *Store) Worksheet(ctx context.Context, name string) (storage.Worksheet, error) {
	srv, err := s.service()
	if err != nil {
		return nil, storage.Wrap("connect", name, err)
	}

	ss, err := srv.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, storage.Wrap("open", name, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return &worksheet{srv: srv, spreadsheetID: s.spreadsheetID, name: name}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrWorksheetNotFound, name)
}

// AddWorksheet creates a tab. An "already exists" answer is treated as success.
func (s *Store) AddWorksheet(ctx context.Context, name string) (storage.Worksheet, error) {
	srv, err := s.service()
	if err != nil {
		return nil, storage.Wrap("connect", name, err)
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}
	_, err = srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do()
	if err != nil && !alreadyExists(err) {
		return nil, storage.Wrap("add worksheet", name, err)
	}
	return &worksheet{srv: srv, spreadsheetID: s.spreadsheetID, name: name}, nil
}

func alreadyExists(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == 400 && strings.Contains(gerr.Message, "already exists")
}
