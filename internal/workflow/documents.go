package workflow

import (
	"context"
	"strings"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// DocumentAuthors may submit documents.
var DocumentAuthors = []models.Role{models.RoleSecretary, models.RoleAdmin}

// DocumentInput is what an officer submits for a new document.
type DocumentInput struct {
	Title   string
	FileURL string

	// Date defaults to today.
	Date string
}

// ListDocuments returns every document in worksheet order.
func (e *Engine) ListDocuments(ctx context.Context) ([]models.Document, error) {
	s, err := e.read(ctx, records.Documents)
	if err != nil {
		return nil, err
	}
	return decodeAll(e, records.Documents, s.records, func(r storage.Record) (models.Document, error) {
		d, err := records.DecodeDocument(r)
		d.Version = recordVersion(s.header, r)
		return d, err
	}), nil
}

// PendingDocuments returns the documents awaiting approval.
func (e *Engine) PendingDocuments(ctx context.Context) ([]models.Document, error) {
	docs, err := e.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	return PendingOf(docs, func(d models.Document) models.ApprovalStatus { return d.Status }), nil
}

// CreateDocument appends a pending document written by who.
// Secretaries and admins may submit documents.
func (e *Engine) CreateDocument(ctx context.Context, who *models.Identity, in DocumentInput) (*models.Document, error) {
	if err := auth.Authorize(who, DocumentAuthors...); err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:      e.newID(),
		Date:    strings.TrimSpace(in.Date),
		Title:   strings.TrimSpace(in.Title),
		Writer:  who.Name,
		FileURL: strings.TrimSpace(in.FileURL),
		Status:  models.StatusPending,
	}
	if doc.Title == "" {
		return nil, invalidField("title", "is required")
	}
	if doc.Date == "" {
		doc.Date = e.today()
	} else if !records.ValidDate(doc.Date) {
		return nil, invalidField("date", "must be a YYYY-MM-DD date")
	}
	if doc.Writer == "" {
		doc.Writer = who.Username
	}

	row := records.EncodeDocument(doc)
	if err := e.appendRow(ctx, records.Documents, row); err != nil {
		return nil, err
	}
	doc.Version = rowVersion(row)
	e.logger.Info("Document submitted", "id", doc.ID, "title", doc.Title, "by", who.Username)
	return &doc, nil
}

// ApproveDocument marks a document approved. Admin only.
func (e *Engine) ApproveDocument(ctx context.Context, who *models.Identity, id, version string) error {
	return e.approve(ctx, who, records.Documents, id, version)
}

// PendingOf filters items down to those whose status is pending.
func PendingOf[T any](items []T, status func(T) models.ApprovalStatus) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if status(it) == models.StatusPending {
			out = append(out, it)
		}
	}
	return out
}
