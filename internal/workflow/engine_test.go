package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/calculator"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
	"github.com/eudistrict/chancery/internal/storage/sqlite"
)

var (
	admin     = &models.Identity{UserID: "u1", Username: "admin", Name: "Kim", Role: models.RoleAdmin}
	secretary = &models.Identity{UserID: "u2", Username: "sec", Name: "Lee", Role: models.RoleSecretary}
	treasurer = &models.Identity{UserID: "u3", Username: "tre", Name: "Park", Role: models.RoleTreasurer}
)

// newTestEngine creates an engine over a fresh sqlite store with every
// worksheet present and headed.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "workflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, name := range records.Names() {
		ws, err := store.AddWorksheet(ctx, name)
		require.NoError(t, err)
		header, _ := records.Header(name)
		require.NoError(t, storage.EnsureHeader(ctx, ws, header))
	}

	seq := 0
	base := []Option{
		WithClock(func() time.Time { return time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(store, append(base, opts...)...), store
}

func writeRows(t *testing.T, store storage.Store, name string, rows ...[]string) {
	t.Helper()
	ctx := context.Background()
	ws, err := store.Worksheet(ctx, name)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, ws.AppendRow(ctx, r))
	}
}

func TestDocuments(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	t.Run("empty worksheet lists nothing", func(t *testing.T) {
		docs, err := e.ListDocuments(ctx)
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)

		pending, err := e.PendingDocuments(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("secretary submits, admin approves", func(t *testing.T) {
		doc, err := e.CreateDocument(ctx, secretary, DocumentInput{Title: "Minutes", FileURL: "https://files/1"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, doc.Status)
		assert.Equal(t, "Lee", doc.Writer)
		assert.Equal(t, "2026-02-01", doc.Date)

		_, err = e.CreateDocument(ctx, secretary, DocumentInput{Title: "Budget"})
		require.NoError(t, err)

		pending, err := e.PendingDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 2)

		require.NoError(t, e.ApproveDocument(ctx, admin, doc.ID, pending[0].Version))

		pending, err = e.PendingDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Budget", pending[0].Title)

		all, err := e.ListDocuments(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Minutes", all[0].Title, "worksheet order is kept")
		assert.Equal(t, models.StatusApproved, all[0].Status)
	})

	t.Run("approve is idempotent", func(t *testing.T) {
		doc, err := e.CreateDocument(ctx, admin, DocumentInput{Title: "Letter"})
		require.NoError(t, err)

		require.NoError(t, e.ApproveDocument(ctx, admin, doc.ID, ""))
		require.NoError(t, e.ApproveDocument(ctx, admin, doc.ID, "stale-version"))

		all, _ := e.ListDocuments(ctx)
		assert.Equal(t, models.StatusApproved, all[len(all)-1].Status)
	})

	t.Run("only admin approves", func(t *testing.T) {
		doc, err := e.CreateDocument(ctx, secretary, DocumentInput{Title: "Report"})
		require.NoError(t, err)
		assert.ErrorIs(t, e.ApproveDocument(ctx, secretary, doc.ID, ""), auth.ErrForbidden)
	})

	t.Run("treasurer cannot submit documents", func(t *testing.T) {
		_, err := e.CreateDocument(ctx, treasurer, DocumentInput{Title: "Nope"})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("title is required", func(t *testing.T) {
		_, err := e.CreateDocument(ctx, secretary, DocumentInput{Title: "  "})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Field)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, e.ApproveDocument(ctx, admin, "missing", ""), ErrNotFound)
	})
}

func TestApprove_AddressesByIDNotPosition(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	writeRows(t, store, records.Documents,
		[]string{"d1", "2026-01-01", "First", "Kim", "", "pending"},
		[]string{"d2", "2026-01-02", "Second", "Kim", "", "pending"},
	)

	// Someone re-sorts the worksheet between the listing and the approval.
	ws, _ := store.Worksheet(ctx, records.Documents)
	require.NoError(t, ws.Replace(ctx, [][]string{
		records.Headers[records.Documents],
		{"d2", "2026-01-02", "Second", "Kim", "", "pending"},
		{"d1", "2026-01-01", "First", "Kim", "", "pending"},
	}))

	require.NoError(t, e.ApproveDocument(ctx, admin, "d1", ""))

	docs, err := e.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "d2", docs[0].ID)
	assert.Equal(t, models.StatusPending, docs[0].Status)
	assert.Equal(t, "d1", docs[1].ID)
	assert.Equal(t, models.StatusApproved, docs[1].Status)
}

func TestApprove_ConflictOnChangedRow(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	writeRows(t, store, records.Finance,
		[]string{"f1", "2026-01-01", "expense", "rent", "100", "", "", "pending"},
	)
	listed, err := e.PendingFinance(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// The treasurer corrects the amount after the admin loaded the queue.
	ws, _ := store.Worksheet(ctx, records.Finance)
	require.NoError(t, ws.UpdateCell(ctx, 2, 5, "1000"))

	err = e.ApproveFinance(ctx, admin, "f1", listed[0].Version)
	assert.ErrorIs(t, err, ErrConflict)

	fresh, _ := e.PendingFinance(ctx)
	require.NoError(t, e.ApproveFinance(ctx, admin, "f1", fresh[0].Version))
}

func TestFinance(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryIncome, Category: "offering", Amount: 100})
	require.NoError(t, err)
	exp, err := e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryExpense, Category: "rent", Amount: 40, Date: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "40", exp.Amount)

	// Hand-typed amounts with separators and junk.
	writeRows(t, store, records.Finance,
		[]string{"f9", "2026-01-05", "income", "donation", "1,000", "", "", "approved"},
		[]string{"f10", "2026-01-06", "expense", "misc", "abc", "", "", "approved"},
	)

	summary, err := e.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, calculator.BalanceAll, summary.Policy)
	assert.Equal(t, 1100.0, summary.Income)
	assert.Equal(t, 40.0, summary.Expense)
	assert.Equal(t, 1060.0, summary.Balance.Balance)
	assert.Equal(t, 2, summary.PendingCount)

	t.Run("validation", func(t *testing.T) {
		_, err := e.CreateFinance(ctx, treasurer, FinanceInput{Type: "gift", Category: "x", Amount: 1})
		assert.ErrorAs(t, err, new(*ValidationError))

		_, err = e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryIncome, Category: "x", Amount: -1})
		assert.ErrorAs(t, err, new(*ValidationError))

		_, err = e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryIncome, Amount: 1})
		assert.ErrorAs(t, err, new(*ValidationError))

		_, err = e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryIncome, Category: "x", Amount: 1, Date: "31.01.2026"})
		assert.ErrorAs(t, err, new(*ValidationError))

		_, err = e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryIncome, Category: "x", Amount: 2 * calculator.MaxAmount})
		assert.ErrorAs(t, err, new(*ValidationError), "an amount the balance would read as zero is refused")
	})

	t.Run("largest accepted amount counts", func(t *testing.T) {
		e, _ := newTestEngine(t)
		_, err := e.CreateFinance(ctx, treasurer, FinanceInput{Type: models.EntryIncome, Category: "bequest", Amount: calculator.MaxAmount})
		require.NoError(t, err)

		summary, err := e.Balance(ctx)
		require.NoError(t, err)
		assert.Equal(t, calculator.MaxAmount, summary.Balance.Income)
	})

	t.Run("secretary cannot record finance", func(t *testing.T) {
		_, err := e.CreateFinance(ctx, secretary, FinanceInput{Type: models.EntryIncome, Category: "x", Amount: 1})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})
}

func TestBalance_ApprovedPolicy(t *testing.T) {
	e, store := newTestEngine(t, WithBalancePolicy(calculator.BalanceApproved))
	writeRows(t, store, records.Finance,
		[]string{"f1", "2026-01-01", "income", "offering", "100", "", "", "approved"},
		[]string{"f2", "2026-01-02", "income", "offering", "50", "", "", "pending"},
	)

	summary, err := e.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, summary.Balance.Balance)
	assert.Equal(t, 1, summary.PendingCount)
	assert.Equal(t, 50.0, summary.PendingAmount)
}

func TestInvalidRowsAreSkipped(t *testing.T) {
	e, store := newTestEngine(t)
	writeRows(t, store, records.Documents,
		[]string{"d1", "2026-01-01", "Good", "Kim", "", "pending"},
		[]string{"", "2026-01-01", "No id", "Kim", "", "pending"},
		[]string{"d3", "2026-01-01", "", "Kim", "", "pending"},
		[]string{"d4", "2026-01-01", "Odd status", "Kim", "", "rejected"},
	)

	docs, err := e.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d1", docs[0].ID)
}

func TestTasks(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	task, err := e.CreateTask(ctx, treasurer, TaskInput{Task: "Book the hall", DueDate: "2026-03-01", Assignee: "Lee"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskWaiting, task.Status)

	t.Run("cannot skip a step", func(t *testing.T) {
		_, err := e.AdvanceTask(ctx, secretary, task.ID, models.TaskDone, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("forward one step at a time", func(t *testing.T) {
		got, err := e.AdvanceTask(ctx, secretary, task.ID, models.TaskInProgress, task.Version)
		require.NoError(t, err)
		assert.Equal(t, models.TaskInProgress, got.Status)

		again, err := e.AdvanceTask(ctx, secretary, task.ID, models.TaskInProgress, "")
		require.NoError(t, err, "repeating the current status is a no-op")
		assert.Equal(t, got.Version, again.Version)

		done, err := e.AdvanceTask(ctx, admin, task.ID, models.TaskDone, got.Version)
		require.NoError(t, err)
		assert.Equal(t, models.TaskDone, done.Status)
	})

	t.Run("never backwards", func(t *testing.T) {
		_, err := e.AdvanceTask(ctx, admin, task.ID, models.TaskWaiting, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := e.AdvanceTask(ctx, admin, task.ID, "cancelled", "")
		assert.ErrorAs(t, err, new(*ValidationError))
	})

	t.Run("open tasks exclude done", func(t *testing.T) {
		_, err := e.CreateTask(ctx, admin, TaskInput{Task: "Print programme"})
		require.NoError(t, err)
		open, err := e.OpenTasks(ctx)
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, "Print programme", open[0].Task)
	})
}

func TestSchedule(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	for _, start := range []string{"2026-03-01", "2026-01-15", "2026-02-10"} {
		_, err := e.CreateEvent(ctx, secretary, EventInput{StartDate: start, Title: "Event " + start})
		require.NoError(t, err)
	}

	events, err := e.ListSchedule(ctx)
	require.NoError(t, err)
	var starts []string
	for _, ev := range events {
		starts = append(starts, ev.StartDate)
	}
	assert.Equal(t, []string{"2026-01-15", "2026-02-10", "2026-03-01"}, starts)
	assert.Equal(t, events[0].StartDate, events[0].EndDate, "end defaults to start")

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := e.CreateEvent(ctx, admin, EventInput{StartDate: "2026-05-02", EndDate: "2026-05-01", Title: "Backwards"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "end_date", ve.Field)
	})

	t.Run("upcoming excludes finished events", func(t *testing.T) {
		writeRows(t, store, records.Schedule, []string{"old", "2025-12-01", "2025-12-02", "Advent"})
		upcoming, err := e.UpcomingEvents(ctx)
		require.NoError(t, err)
		for _, ev := range upcoming {
			assert.NotEqual(t, "old", ev.ID)
			assert.NotEqual(t, "2026-01-15", ev.StartDate)
		}
		assert.Len(t, upcoming, 2)
	})
}

func TestGrid_NoOpSaveIsLossless(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	writeRows(t, store, records.Tasks,
		[]string{"t1", "2026-03-01", "Book hall", "Lee", "waiting", ""},
		[]string{"t2", "", "Order flowers", "", "done", "from the usual shop"},
	)
	ws, _ := store.Worksheet(ctx, records.Tasks)
	before, err := ws.Values(ctx)
	require.NoError(t, err)

	grid, err := e.LoadTable(ctx, secretary, records.Tasks)
	require.NoError(t, err)
	version, err := e.SaveTable(ctx, secretary, grid, grid.Version)
	require.NoError(t, err)

	after, err := ws.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, grid.Version, version)
}

func TestGrid_RoundTripKeepsRowsTheViewsSkip(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	writeRows(t, store, records.Tasks,
		[]string{"t1", "2026-03-01", "Book hall", "Lee", "waiting", ""},
		[]string{"t2", "", "Old chore", "", "cancelled", ""},
		[]string{"", "", "Typed by hand", "", "done", ""},
	)
	ws, _ := store.Worksheet(ctx, records.Tasks)
	before, err := ws.Values(ctx)
	require.NoError(t, err)

	tasks, err := e.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "the cancelled and id-less rows are not listed")

	grid, err := e.LoadTable(ctx, secretary, records.Tasks)
	require.NoError(t, err)
	version, err := e.SaveTable(ctx, secretary, grid, grid.Version)
	require.NoError(t, err)

	after, err := ws.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after, "unchanged rows are written back verbatim, blank ids included")
	assert.Equal(t, grid.Version, version)

	t.Run("edited legacy row is validated", func(t *testing.T) {
		grid, err := e.LoadTable(ctx, secretary, records.Tasks)
		require.NoError(t, err)
		grid.Rows[1][2] = "Old chore, reworded"

		_, err = e.SaveTable(ctx, secretary, grid, grid.Version)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "rows[1]", ve.Field)
		assert.Contains(t, ve.Reason, "row 3")
	})
}

func TestGrid_ErrorsNameThePhysicalRow(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	grid, err := e.LoadTable(ctx, admin, records.Tasks)
	require.NoError(t, err)
	grid.Rows = [][]string{
		{"", "", "Sweep", "", "waiting", ""},
		{"", "", "", "", "", ""},
		{"", "", "Mop", "", "bogus", ""},
	}

	_, err = e.SaveTable(ctx, admin, grid, "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rows[2]", ve.Field)
	assert.Contains(t, ve.Reason, "row 3", "blank rows are dropped before numbering")
}

func TestGrid_ConcurrentAppendIsNotLost(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateEvent(ctx, admin, EventInput{StartDate: "2026-04-01", Title: "Synod"})
	require.NoError(t, err)

	grid, err := e.LoadTable(ctx, admin, records.Schedule)
	require.NoError(t, err)
	grid.Rows[0][3] = "Synod (moved)"

	// Another officer appends while the grid is open.
	_, err = e.CreateEvent(ctx, secretary, EventInput{StartDate: "2026-04-05", Title: "Choir"})
	require.NoError(t, err)

	_, err = e.SaveTable(ctx, admin, grid, grid.Version)
	assert.ErrorIs(t, err, ErrConflict)

	events, _ := e.ListSchedule(ctx)
	assert.Len(t, events, 2)

	// Without a base version the save is last-writer-wins.
	_, err = e.SaveTable(ctx, admin, grid, "")
	require.NoError(t, err)
	events, _ = e.ListSchedule(ctx)
	require.Len(t, events, 1)
	assert.Equal(t, "Synod (moved)", events[0].Title)
}

func TestGrid_Validation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	grid, err := e.LoadTable(ctx, admin, records.Finance)
	require.NoError(t, err)
	assert.Equal(t, records.Headers[records.Finance], grid.Header)

	t.Run("new rows get ids", func(t *testing.T) {
		g := *grid
		g.Rows = [][]string{{"", "2026-01-01", "income", "offering", "10", "", "", "pending"}}
		_, err := e.SaveTable(ctx, treasurer, &g, "")
		require.NoError(t, err)

		entries, _ := e.ListFinance(ctx)
		require.Len(t, entries, 1)
		assert.NotEmpty(t, entries[0].ID)
	})

	t.Run("invalid row", func(t *testing.T) {
		g := *grid
		g.Rows = [][]string{{"x", "2026-01-01", "loan", "offering", "10", "", "", "pending"}}
		_, err := e.SaveTable(ctx, treasurer, &g, "")
		assert.ErrorAs(t, err, new(*ValidationError))
	})

	t.Run("reordered header", func(t *testing.T) {
		g := *grid
		g.Header = []string{"date", "id", "type", "category", "amount", "description", "receipt_url", "status"}
		_, err := e.SaveTable(ctx, admin, &g, "")
		assert.ErrorAs(t, err, new(*ValidationError))
	})

	t.Run("permissions", func(t *testing.T) {
		_, err := e.SaveTable(ctx, secretary, grid, "")
		assert.ErrorIs(t, err, auth.ErrForbidden)

		_, err = e.LoadTable(ctx, treasurer, records.Users)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := e.LoadTable(ctx, admin, "payroll")
		assert.ErrorAs(t, err, new(*ValidationError))
	})
}

func TestBackfillIDs(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	writeRows(t, store, records.Tasks,
		[]string{"", "", "Hand-typed", "", "waiting", ""},
		[]string{"t2", "", "Has id", "", "waiting", ""},
	)

	n, err := e.BackfillIDs(ctx, admin, records.Tasks)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tasks, err := e.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	_, err = e.BackfillIDs(ctx, secretary, records.Tasks)
	assert.ErrorIs(t, err, auth.ErrForbidden)
}

// failingStore fails every worksheet operation.
type failingStore struct{ err error }

func (f failingStore) Worksheet(context.Context, string) (storage.Worksheet, error) {
	return nil, f.err
}

func (f failingStore) AddWorksheet(context.Context, string) (storage.Worksheet, error) {
	return nil, f.err
}

func (f failingStore) Close() error { return nil }

func TestStoreFailuresAreRecordStoreErrors(t *testing.T) {
	e := New(failingStore{err: errors.New("connection refused")},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()

	_, err := e.ListDocuments(ctx)
	var se *storage.Error
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = e.CreateTask(ctx, admin, TaskInput{Task: "x"})
	assert.ErrorAs(t, err, &se)

	err = e.ApproveFinance(ctx, admin, "f1", "")
	assert.ErrorAs(t, err, &se)
}

func TestCreate_RefusesDriftedHeader(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	ws, _ := store.Worksheet(ctx, records.Tasks)
	require.NoError(t, ws.Replace(ctx, [][]string{{"id", "task", "due_date", "assignee", "status", "note"}}))

	_, err := e.CreateTask(ctx, admin, TaskInput{Task: "x"})
	var schemaErr *records.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}
