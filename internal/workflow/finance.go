package workflow

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/calculator"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// LedgerKeepers may record finance entries.
var LedgerKeepers = []models.Role{models.RoleTreasurer, models.RoleAdmin}

// FinanceInput is what a treasurer submits for a new ledger line.
type FinanceInput struct {
	Type        models.EntryType
	Category    string
	Amount      float64
	Description string
	ReceiptURL  string

	// Date defaults to today.
	Date string
}

// ListFinance returns every ledger line in worksheet order.
func (e *Engine) ListFinance(ctx context.Context) ([]models.FinanceEntry, error) {
	s, err := e.read(ctx, records.Finance)
	if err != nil {
		return nil, err
	}
	return decodeAll(e, records.Finance, s.records, func(r storage.Record) (models.FinanceEntry, error) {
		fe, err := records.DecodeFinance(r)
		fe.Version = recordVersion(s.header, r)
		return fe, err
	}), nil
}

// PendingFinance returns the ledger lines awaiting approval.
func (e *Engine) PendingFinance(ctx context.Context) ([]models.FinanceEntry, error) {
	entries, err := e.ListFinance(ctx)
	if err != nil {
		return nil, err
	}
	return PendingOf(entries, func(fe models.FinanceEntry) models.ApprovalStatus { return fe.Status }), nil
}

// CreateFinance appends a pending ledger line. Treasurers and admins only.
func (e *Engine) CreateFinance(ctx context.Context, who *models.Identity, in FinanceInput) (*models.FinanceEntry, error) {
	if err := auth.Authorize(who, LedgerKeepers...); err != nil {
		return nil, err
	}

	if in.Type != models.EntryIncome && in.Type != models.EntryExpense {
		return nil, invalidField("type", "must be income or expense")
	}
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, invalidField("amount", "must be a non-negative number")
	}
	if in.Amount > calculator.MaxAmount {
		return nil, invalidField("amount", fmt.Sprintf("must not exceed %.0f", calculator.MaxAmount))
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, invalidField("category", "is required")
	}

	entry := models.FinanceEntry{
		ID:          e.newID(),
		Date:        strings.TrimSpace(in.Date),
		Type:        in.Type,
		Category:    category,
		Amount:      strconv.FormatFloat(in.Amount, 'f', -1, 64),
		Description: strings.TrimSpace(in.Description),
		ReceiptURL:  strings.TrimSpace(in.ReceiptURL),
		Status:      models.StatusPending,
	}
	if entry.Date == "" {
		entry.Date = e.today()
	} else if !records.ValidDate(entry.Date) {
		return nil, invalidField("date", "must be a YYYY-MM-DD date")
	}

	row := records.EncodeFinance(entry)
	if err := e.appendRow(ctx, records.Finance, row); err != nil {
		return nil, err
	}
	entry.Version = rowVersion(row)
	e.logger.Info("Finance entry recorded",
		"id", entry.ID,
		"type", entry.Type,
		"amount", entry.Amount,
		"by", who.Username,
	)
	return &entry, nil
}

// ApproveFinance marks a ledger line approved. Admin only.
func (e *Engine) ApproveFinance(ctx context.Context, who *models.Identity, id, version string) error {
	return e.approve(ctx, who, records.Finance, id, version)
}

// Balance summarises the ledger under the engine's balance policy.
func (e *Engine) Balance(ctx context.Context) (calculator.Summary, error) {
	entries, err := e.ListFinance(ctx)
	if err != nil {
		return calculator.Summary{}, err
	}
	return calculator.Summarize(entries, e.policy), nil
}
