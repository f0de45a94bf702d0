package calculator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/eudistrict/chancery/internal/models"
)

// BalancePolicy selects which finance entries count towards the balance.
type BalancePolicy string

const (
	// BalanceAll counts every entry regardless of approval status.
	BalanceAll BalancePolicy = "all"
	// BalanceApproved counts approved entries only.
	BalanceApproved BalancePolicy = "approved"
)

// Valid reports whether p is a known policy.
func (p BalancePolicy) Valid() bool {
	return p == BalanceAll || p == BalanceApproved
}

// Balance is the income/expense aggregate of a set of entries.
type Balance struct {
	Income  float64
	Expense float64
	Balance float64 // Income - Expense
}

// CategoryTotal is the sum of one (type, category) pair.
type CategoryTotal struct {
	Type     models.EntryType
	Category string
	Total    float64
	Count    int
}

// Summary is the dashboard view of the ledger.
type Summary struct {
	Balance
	Policy        BalancePolicy
	Categories    []CategoryTotal
	PendingCount  int
	PendingAmount float64
}

// ParseAmount reads a worksheet amount cell. Thousands separators and
// surrounding blanks are ignored; anything unparseable, negative or
// non-finite reads as zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v != v || v > MaxAmount {
		return 0
	}
	return v
}

// MaxAmount is the largest amount the ledger accepts. Larger cells read as zero.
const MaxAmount = 1e15

// AggregateBalance sums income and expense over entries. The result does
// not depend on the order of entries.
//
// Algorithm:
// - income entries add to Income, expense entries add to Expense
// - entries of any other type are ignored
// - Balance = Income - Expense
func AggregateBalance(entries []models.FinanceEntry) Balance {
	var b Balance
	for _, e := range entries {
		switch e.Type {
		case models.EntryIncome:
			b.Income += ParseAmount(e.Amount)
		case models.EntryExpense:
			b.Expense += ParseAmount(e.Amount)
		}
	}
	b.Balance = b.Income - b.Expense
	return b
}

// CategoryTotals sums entries per (type, category), sorted by type then
// category so the output is stable.
func CategoryTotals(entries []models.FinanceEntry) []CategoryTotal {
	type key struct {
		typ      models.EntryType
		category string
	}
	totals := make(map[key]*CategoryTotal)

	for _, e := range entries {
		if e.Type != models.EntryIncome && e.Type != models.EntryExpense {
			continue
		}
		k := key{e.Type, e.Category}
		if _, exists := totals[k]; !exists {
			totals[k] = &CategoryTotal{Type: e.Type, Category: e.Category}
		}
		totals[k].Total += ParseAmount(e.Amount)
		totals[k].Count++
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, t := range totals {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Type != result[j].Type {
			return result[i].Type < result[j].Type
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// Summarize computes the balance under policy plus the pending queue figures.
// An unknown policy falls back to BalanceAll.
func Summarize(entries []models.FinanceEntry, policy BalancePolicy) Summary {
	if !policy.Valid() {
		policy = BalanceAll
	}

	counted := entries
	if policy == BalanceApproved {
		counted = make([]models.FinanceEntry, 0, len(entries))
		for _, e := range entries {
			if e.Status == models.StatusApproved {
				counted = append(counted, e)
			}
		}
	}

	s := Summary{
		Balance:    AggregateBalance(counted),
		Policy:     policy,
		Categories: CategoryTotals(counted),
	}
	for _, e := range entries {
		if e.Status == models.StatusPending {
			s.PendingCount++
			s.PendingAmount += ParseAmount(e.Amount)
		}
	}
	return s
}
