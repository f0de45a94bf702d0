package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/middleware"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api"
)

// FinanceService implements the Connect FinanceService.
type FinanceService struct {
	engine   *workflow.Engine
	uploader Uploader
}

// NewFinanceService creates a FinanceService. uploader may be nil.
func NewFinanceService(engine *workflow.Engine, uploader Uploader) *FinanceService {
	return &FinanceService{engine: engine, uploader: uploader}
}

// ListEntries returns the whole ledger.
func (s *FinanceService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	slog.Info("ListEntries request received")

	entries, err := s.engine.ListFinance(ctx)
	if err != nil {
		return nil, toConnectError("ListEntries", err)
	}

	return connect.NewResponse(&api.ListEntriesResponse{Entries: toAPIEntries(entries)}), nil
}

// ListPendingEntries returns the ledger lines awaiting approval.
func (s *FinanceService) ListPendingEntries(ctx context.Context, req *connect.Request[api.ListPendingEntriesRequest]) (*connect.Response[api.ListPendingEntriesResponse], error) {
	slog.Info("ListPendingEntries request received")

	entries, err := s.engine.PendingFinance(ctx)
	if err != nil {
		return nil, toConnectError("ListPendingEntries", err)
	}

	slog.Info("ListPendingEntries successful", "count", len(entries))
	return connect.NewResponse(&api.ListPendingEntriesResponse{Entries: toAPIEntries(entries)}), nil
}

// CreateEntry records a ledger line, uploading its receipt first when one
// is attached.
func (s *FinanceService) CreateEntry(ctx context.Context, req *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error) {
	who := middleware.IdentityFrom(ctx)
	slog.Info("CreateEntry request received",
		"type", req.Msg.Type,
		"category", req.Msg.Category,
		"amount", req.Msg.Amount,
		"receipt", req.Msg.Receipt != nil,
	)

	if err := auth.Authorize(who, workflow.LedgerKeepers...); err != nil {
		return nil, toConnectError("CreateEntry", err)
	}

	receiptURL := req.Msg.ReceiptURL
	if req.Msg.Receipt != nil {
		url, err := uploadAttachment(ctx, s.uploader, req.Msg.Receipt)
		if err != nil {
			return nil, toConnectError("CreateEntry", err)
		}
		receiptURL = url
	}

	entry, err := s.engine.CreateFinance(ctx, who, workflow.FinanceInput{
		Type:        models.EntryType(req.Msg.Type),
		Category:    req.Msg.Category,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		ReceiptURL:  receiptURL,
		Date:        req.Msg.Date,
	})
	if err != nil {
		return nil, toConnectError("CreateEntry", err)
	}

	return connect.NewResponse(&api.CreateEntryResponse{Entry: toAPIEntry(*entry)}), nil
}

// ApproveEntry approves a pending ledger line. Admin only.
func (s *FinanceService) ApproveEntry(ctx context.Context, req *connect.Request[api.ApproveEntryRequest]) (*connect.Response[api.ApproveEntryResponse], error) {
	slog.Info("ApproveEntry request received", "id", req.Msg.ID)

	if err := s.engine.ApproveFinance(ctx, middleware.IdentityFrom(ctx), req.Msg.ID, req.Msg.Version); err != nil {
		return nil, toConnectError("ApproveEntry", err)
	}

	return connect.NewResponse(&api.ApproveEntryResponse{}), nil
}

// GetSummary returns the balance under the configured policy.
func (s *FinanceService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	slog.Info("GetSummary request received")

	summary, err := s.engine.Balance(ctx)
	if err != nil {
		return nil, toConnectError("GetSummary", err)
	}

	slog.Info("GetSummary successful",
		"policy", summary.Policy,
		"balance", summary.Balance.Balance,
		"pending", summary.PendingCount,
	)
	return connect.NewResponse(&api.GetSummaryResponse{Summary: toAPISummary(summary)}), nil
}
