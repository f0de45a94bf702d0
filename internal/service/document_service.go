package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/middleware"
	"github.com/eudistrict/chancery/internal/relay"
	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api"
)

// Uploader stores an attachment and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, u relay.Upload) (string, error)
}

// uploadAttachment stores a and returns its URL. A nil attachment yields
// an empty URL.
func uploadAttachment(ctx context.Context, up Uploader, a *api.Attachment) (string, error) {
	if a == nil {
		return "", nil
	}
	if up == nil {
		return "", errUploadsDisabled
	}
	return up.Upload(ctx, relay.Upload{
		Filename: a.Filename,
		MimeType: a.MimeType,
		Content:  a.Content,
	})
}

// DocumentService implements the Connect DocumentService.
type DocumentService struct {
	engine   *workflow.Engine
	uploader Uploader
}

// NewDocumentService creates a DocumentService. uploader may be nil when no
// relay is configured; requests with attachments are then refused.
func NewDocumentService(engine *workflow.Engine, uploader Uploader) *DocumentService {
	return &DocumentService{engine: engine, uploader: uploader}
}

// ListDocuments returns every document.
func (s *DocumentService) ListDocuments(ctx context.Context, req *connect.Request[api.ListDocumentsRequest]) (*connect.Response[api.ListDocumentsResponse], error) {
	slog.Info("ListDocuments request received")

	docs, err := s.engine.ListDocuments(ctx)
	if err != nil {
		return nil, toConnectError("ListDocuments", err)
	}

	return connect.NewResponse(&api.ListDocumentsResponse{Documents: toAPIDocuments(docs)}), nil
}

// ListPendingDocuments returns the approval queue.
func (s *DocumentService) ListPendingDocuments(ctx context.Context, req *connect.Request[api.ListPendingDocumentsRequest]) (*connect.Response[api.ListPendingDocumentsResponse], error) {
	slog.Info("ListPendingDocuments request received")

	docs, err := s.engine.PendingDocuments(ctx)
	if err != nil {
		return nil, toConnectError("ListPendingDocuments", err)
	}

	slog.Info("ListPendingDocuments successful", "count", len(docs))
	return connect.NewResponse(&api.ListPendingDocumentsResponse{Documents: toAPIDocuments(docs)}), nil
}

// CreateDocument submits a document. An attachment is uploaded through the
// relay first and its URL stored on the row.
func (s *DocumentService) CreateDocument(ctx context.Context, req *connect.Request[api.CreateDocumentRequest]) (*connect.Response[api.CreateDocumentResponse], error) {
	who := middleware.IdentityFrom(ctx)
	slog.Info("CreateDocument request received",
		"title", req.Msg.Title,
		"attachment", req.Msg.Attachment != nil,
	)

	if err := auth.Authorize(who, workflow.DocumentAuthors...); err != nil {
		return nil, toConnectError("CreateDocument", err)
	}

	fileURL := req.Msg.FileURL
	if req.Msg.Attachment != nil {
		url, err := uploadAttachment(ctx, s.uploader, req.Msg.Attachment)
		if err != nil {
			return nil, toConnectError("CreateDocument", err)
		}
		fileURL = url
	}

	doc, err := s.engine.CreateDocument(ctx, who, workflow.DocumentInput{
		Title:   req.Msg.Title,
		FileURL: fileURL,
		Date:    req.Msg.Date,
	})
	if err != nil {
		return nil, toConnectError("CreateDocument", err)
	}

	return connect.NewResponse(&api.CreateDocumentResponse{Document: toAPIDocument(*doc)}), nil
}

// ApproveDocument approves a pending document. Admin only.
func (s *DocumentService) ApproveDocument(ctx context.Context, req *connect.Request[api.ApproveDocumentRequest]) (*connect.Response[api.ApproveDocumentResponse], error) {
	slog.Info("ApproveDocument request received", "id", req.Msg.ID)

	if err := s.engine.ApproveDocument(ctx, middleware.IdentityFrom(ctx), req.Msg.ID, req.Msg.Version); err != nil {
		return nil, toConnectError("ApproveDocument", err)
	}

	return connect.NewResponse(&api.ApproveDocumentResponse{}), nil
}
