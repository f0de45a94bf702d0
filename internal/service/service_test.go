package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/relay"
	"github.com/eudistrict/chancery/internal/storage"
	"github.com/eudistrict/chancery/internal/storage/sqlite"
	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api"
	"github.com/eudistrict/chancery/pkg/api/apiconnect"
)

// testClients holds one client per service, all pointed at the test server.
type testClients struct {
	auth      apiconnect.AuthServiceClient
	documents apiconnect.DocumentServiceClient
	finance   apiconnect.FinanceServiceClient
	schedule  apiconnect.ScheduleServiceClient
	tasks     apiconnect.TaskServiceClient
	grid      apiconnect.GridServiceClient
	dashboard apiconnect.DashboardServiceClient
}

// fakeUploader records uploads instead of calling a relay.
type fakeUploader struct {
	url     string
	err     error
	uploads []relay.Upload
}

func (f *fakeUploader) Upload(ctx context.Context, u relay.Upload) (string, error) {
	f.uploads = append(f.uploads, u)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

// setupTestServer creates a test server over a fresh sqlite store seeded
// with one officer per role: admin/admin-pw (bcrypt), sec/sec-pw and
// tre/tre-pw (plaintext cells).
func setupTestServer(t *testing.T, uploader Uploader) (*testClients, *sqlite.SQLiteStore) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, name := range records.Names() {
		ws, err := store.AddWorksheet(ctx, name)
		if err != nil {
			t.Fatalf("failed to add worksheet %s: %v", name, err)
		}
		header, _ := records.Header(name)
		if err := storage.EnsureHeader(ctx, ws, header); err != nil {
			t.Fatalf("failed to write header of %s: %v", name, err)
		}
	}

	hash, err := auth.HashPassword("admin-pw")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	users, _ := store.Worksheet(ctx, records.Users)
	for _, row := range [][]string{
		{"u1", "admin", hash, "Kim", "admin"},
		{"u2", "sec", "sec-pw", "Lee", "secretary"},
		{"u3", "tre", "tre-pw", "Park", "treasurer"},
	} {
		if err := users.AppendRow(ctx, row); err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	sessions := auth.NewSessions(time.Hour)
	mux := http.NewServeMux()
	Mount(mux, Deps{
		Engine:        workflow.New(store),
		Authenticator: auth.NewSheetAuthenticator(store),
		Sessions:      sessions,
		JWT:           auth.NewJWTManager("test-secret", sessions),
		Uploader:      uploader,
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testClients{
		auth:      apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		documents: apiconnect.NewDocumentServiceClient(http.DefaultClient, server.URL),
		finance:   apiconnect.NewFinanceServiceClient(http.DefaultClient, server.URL),
		schedule:  apiconnect.NewScheduleServiceClient(http.DefaultClient, server.URL),
		tasks:     apiconnect.NewTaskServiceClient(http.DefaultClient, server.URL),
		grid:      apiconnect.NewGridServiceClient(http.DefaultClient, server.URL),
		dashboard: apiconnect.NewDashboardServiceClient(http.DefaultClient, server.URL),
	}, store
}

// login signs in and returns the bearer token.
func login(t *testing.T, c *testClients, username, password string) string {
	t.Helper()
	resp, err := c.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Username: username,
		Password: password,
	}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", username, err)
	}
	return resp.Msg.Token
}

// authed builds a request carrying token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got success", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected %v, got %v (%v)", want, got, err)
	}
}

func TestLogin(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()

	resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "admin", Password: "admin-pw"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Error("expected non-empty token")
	}
	if resp.Msg.User.Role != "admin" || resp.Msg.User.Name != "Kim" {
		t.Errorf("unexpected user: %+v", resp.Msg.User)
	}
	if resp.Msg.ExpiresAt <= time.Now().Unix() {
		t.Errorf("expected expiry in the future, got %d", resp.Msg.ExpiresAt)
	}

	// Plaintext password cells still work.
	login(t, c, "sec", "sec-pw")

	_, err = c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "admin", Password: "wrong"}))
	expectCode(t, err, connect.CodeUnauthenticated)

	_, err = c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "admin"}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestLogoutEndsSession(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()
	token := login(t, c, "sec", "sec-pw")

	me, err := c.auth.GetCurrentUser(ctx, authed(token, &api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.Username != "sec" {
		t.Errorf("username: expected 'sec', got '%s'", me.Msg.User.Username)
	}

	if _, err := c.auth.Logout(ctx, authed(token, &api.LogoutRequest{})); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	_, err = c.auth.GetCurrentUser(ctx, authed(token, &api.GetCurrentUserRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestCallsRequireSession(t *testing.T) {
	c, _ := setupTestServer(t, nil)

	_, err := c.documents.ListDocuments(context.Background(), connect.NewRequest(&api.ListDocumentsRequest{}))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestDocumentApprovalFlow(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()
	sec := login(t, c, "sec", "sec-pw")
	admin := login(t, c, "admin", "admin-pw")
	tre := login(t, c, "tre", "tre-pw")

	created, err := c.documents.CreateDocument(ctx, authed(sec, &api.CreateDocumentRequest{
		Title:   "Council minutes",
		FileURL: "https://files.example/minutes",
	}))
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	doc := created.Msg.Document
	if doc.Status != "pending" || doc.Writer != "Lee" || doc.Date == "" {
		t.Errorf("unexpected document: %+v", doc)
	}

	_, err = c.documents.CreateDocument(ctx, authed(tre, &api.CreateDocumentRequest{Title: "x"}))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = c.documents.CreateDocument(ctx, authed(sec, &api.CreateDocumentRequest{Title: ""}))
	expectCode(t, err, connect.CodeInvalidArgument)

	pending, err := c.documents.ListPendingDocuments(ctx, authed(sec, &api.ListPendingDocumentsRequest{}))
	if err != nil {
		t.Fatalf("ListPendingDocuments failed: %v", err)
	}
	if len(pending.Msg.Documents) != 1 {
		t.Fatalf("pending: expected 1, got %d", len(pending.Msg.Documents))
	}

	_, err = c.documents.ApproveDocument(ctx, authed(sec, &api.ApproveDocumentRequest{ID: doc.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = c.documents.ApproveDocument(ctx, authed(admin, &api.ApproveDocumentRequest{ID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)

	for i := 0; i < 2; i++ {
		if _, err := c.documents.ApproveDocument(ctx, authed(admin, &api.ApproveDocumentRequest{
			ID:      doc.ID,
			Version: pending.Msg.Documents[0].Version,
		})); err != nil {
			t.Fatalf("ApproveDocument #%d failed: %v", i+1, err)
		}
	}

	pending, _ = c.documents.ListPendingDocuments(ctx, authed(sec, &api.ListPendingDocumentsRequest{}))
	if len(pending.Msg.Documents) != 0 {
		t.Errorf("pending: expected 0 after approval, got %d", len(pending.Msg.Documents))
	}

	all, err := c.documents.ListDocuments(ctx, authed(tre, &api.ListDocumentsRequest{}))
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(all.Msg.Documents) != 1 || all.Msg.Documents[0].Status != "approved" {
		t.Errorf("unexpected documents: %+v", all.Msg.Documents)
	}
}

func TestCreateDocumentWithAttachment(t *testing.T) {
	uploader := &fakeUploader{url: "https://drive.example/f/1"}
	c, _ := setupTestServer(t, uploader)
	ctx := context.Background()
	sec := login(t, c, "sec", "sec-pw")

	resp, err := c.documents.CreateDocument(ctx, authed(sec, &api.CreateDocumentRequest{
		Title:      "Budget letter",
		Attachment: &api.Attachment{Filename: "letter.pdf", MimeType: "application/pdf", Content: []byte("%PDF")},
	}))
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if resp.Msg.Document.FileURL != uploader.url {
		t.Errorf("file url: expected %q, got %q", uploader.url, resp.Msg.Document.FileURL)
	}
	if len(uploader.uploads) != 1 || string(uploader.uploads[0].Content) != "%PDF" {
		t.Errorf("unexpected uploads: %+v", uploader.uploads)
	}

	t.Run("relay failure", func(t *testing.T) {
		uploader.err = &relay.Error{StatusCode: http.StatusBadGateway, Message: "down"}
		defer func() { uploader.err = nil }()

		_, err := c.documents.CreateDocument(ctx, authed(sec, &api.CreateDocumentRequest{
			Title:      "Retry me",
			Attachment: &api.Attachment{Filename: "a.pdf", Content: []byte("x")},
		}))
		expectCode(t, err, connect.CodeUnavailable)

		all, _ := c.documents.ListDocuments(ctx, authed(sec, &api.ListDocumentsRequest{}))
		if len(all.Msg.Documents) != 1 {
			t.Errorf("expected no row for the failed upload, got %d documents", len(all.Msg.Documents))
		}
	})

	t.Run("forbidden before upload", func(t *testing.T) {
		before := len(uploader.uploads)
		tre := login(t, c, "tre", "tre-pw")
		_, err := c.documents.CreateDocument(ctx, authed(tre, &api.CreateDocumentRequest{
			Title:      "Not mine",
			Attachment: &api.Attachment{Filename: "a.pdf", Content: []byte("x")},
		}))
		expectCode(t, err, connect.CodePermissionDenied)
		if len(uploader.uploads) != before {
			t.Error("expected no upload for a forbidden request")
		}
	})
}

func TestAttachmentWithoutRelay(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	sec := login(t, c, "sec", "sec-pw")

	_, err := c.documents.CreateDocument(context.Background(), authed(sec, &api.CreateDocumentRequest{
		Title:      "Letter",
		Attachment: &api.Attachment{Filename: "a.pdf", Content: []byte("x")},
	}))
	expectCode(t, err, connect.CodeFailedPrecondition)
}

func TestFinanceFlow(t *testing.T) {
	uploader := &fakeUploader{url: "https://drive.example/r/1"}
	c, _ := setupTestServer(t, uploader)
	ctx := context.Background()
	tre := login(t, c, "tre", "tre-pw")
	admin := login(t, c, "admin", "admin-pw")

	income, err := c.finance.CreateEntry(ctx, authed(tre, &api.CreateEntryRequest{
		Type: "income", Category: "offering", Amount: 1500,
	}))
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if income.Msg.Entry.Amount != "1500" || income.Msg.Entry.AmountValue != 1500 {
		t.Errorf("unexpected amount: %+v", income.Msg.Entry)
	}

	expense, err := c.finance.CreateEntry(ctx, authed(tre, &api.CreateEntryRequest{
		Type: "expense", Category: "rent", Amount: 400.5,
		Receipt: &api.Attachment{Filename: "receipt.jpg", Content: []byte{0xff, 0xd8}},
	}))
	if err != nil {
		t.Fatalf("CreateEntry with receipt failed: %v", err)
	}
	if expense.Msg.Entry.ReceiptURL != uploader.url {
		t.Errorf("receipt url: expected %q, got %q", uploader.url, expense.Msg.Entry.ReceiptURL)
	}

	_, err = c.finance.CreateEntry(ctx, authed(tre, &api.CreateEntryRequest{Type: "loan", Category: "x", Amount: 1}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.finance.ApproveEntry(ctx, authed(tre, &api.ApproveEntryRequest{ID: income.Msg.Entry.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	if _, err := c.finance.ApproveEntry(ctx, authed(admin, &api.ApproveEntryRequest{ID: income.Msg.Entry.ID})); err != nil {
		t.Fatalf("ApproveEntry failed: %v", err)
	}

	pending, err := c.finance.ListPendingEntries(ctx, authed(tre, &api.ListPendingEntriesRequest{}))
	if err != nil {
		t.Fatalf("ListPendingEntries failed: %v", err)
	}
	if len(pending.Msg.Entries) != 1 || pending.Msg.Entries[0].Category != "rent" {
		t.Errorf("unexpected pending entries: %+v", pending.Msg.Entries)
	}

	summary, err := c.finance.GetSummary(ctx, authed(tre, &api.GetSummaryRequest{}))
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	s := summary.Msg.Summary
	if s.Policy != "all" || s.Income != 1500 || s.Expense != 400.5 || s.Balance != 1099.5 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.PendingCount != 1 || len(s.Categories) != 2 {
		t.Errorf("unexpected pending figures or categories: %+v", s)
	}
}

func TestTaskFlow(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()
	sec := login(t, c, "sec", "sec-pw")

	created, err := c.tasks.CreateTask(ctx, authed(sec, &api.CreateTaskRequest{Task: "Book the hall", Assignee: "Lee"}))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	task := created.Msg.Task
	if task.Status != "waiting" {
		t.Errorf("status: expected 'waiting', got '%s'", task.Status)
	}

	_, err = c.tasks.AdvanceTask(ctx, authed(sec, &api.AdvanceTaskRequest{ID: task.ID, Status: "done"}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	_, err = c.tasks.AdvanceTask(ctx, authed(sec, &api.AdvanceTaskRequest{ID: task.ID, Status: "in_progress", Version: "stale"}))
	expectCode(t, err, connect.CodeAborted)

	advanced, err := c.tasks.AdvanceTask(ctx, authed(sec, &api.AdvanceTaskRequest{ID: task.ID, Status: "in_progress", Version: task.Version}))
	if err != nil {
		t.Fatalf("AdvanceTask failed: %v", err)
	}
	if advanced.Msg.Task.Status != "in_progress" {
		t.Errorf("status: expected 'in_progress', got '%s'", advanced.Msg.Task.Status)
	}

	if _, err := c.tasks.AdvanceTask(ctx, authed(sec, &api.AdvanceTaskRequest{ID: task.ID, Status: "done"})); err != nil {
		t.Fatalf("AdvanceTask to done failed: %v", err)
	}

	open, err := c.tasks.ListTasks(ctx, authed(sec, &api.ListTasksRequest{OpenOnly: true}))
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(open.Msg.Tasks) != 0 {
		t.Errorf("open tasks: expected 0, got %d", len(open.Msg.Tasks))
	}
}

func TestScheduleOrdering(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()
	tre := login(t, c, "tre", "tre-pw")

	for _, start := range []string{"2999-03-01", "2999-01-15", "2999-02-10"} {
		if _, err := c.schedule.CreateEvent(ctx, authed(tre, &api.CreateEventRequest{StartDate: start, Title: "Meeting"})); err != nil {
			t.Fatalf("CreateEvent(%s) failed: %v", start, err)
		}
	}

	_, err := c.schedule.CreateEvent(ctx, authed(tre, &api.CreateEventRequest{
		StartDate: "2999-05-02", EndDate: "2999-05-01", Title: "Backwards",
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	resp, err := c.schedule.ListEvents(ctx, authed(tre, &api.ListEventsRequest{UpcomingOnly: true}))
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	want := []string{"2999-01-15", "2999-02-10", "2999-03-01"}
	if len(resp.Msg.Events) != len(want) {
		t.Fatalf("events: expected %d, got %d", len(want), len(resp.Msg.Events))
	}
	for i, ev := range resp.Msg.Events {
		if ev.StartDate != want[i] {
			t.Errorf("event %d: expected start %s, got %s", i, want[i], ev.StartDate)
		}
		if ev.EndDate != ev.StartDate {
			t.Errorf("event %d: expected end to default to start, got %s", i, ev.EndDate)
		}
	}
}

func TestGridSave(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()
	sec := login(t, c, "sec", "sec-pw")
	admin := login(t, c, "admin", "admin-pw")

	if _, err := c.tasks.CreateTask(ctx, authed(sec, &api.CreateTaskRequest{Task: "Order flowers"})); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	loaded, err := c.grid.LoadTable(ctx, authed(sec, &api.LoadTableRequest{Table: "tasks"}))
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}
	if len(loaded.Msg.Rows) != 1 || len(loaded.Msg.Header) != 6 {
		t.Fatalf("unexpected grid: %+v", loaded.Msg)
	}

	rows := append(loaded.Msg.Rows, []string{"", "", "Print programme", "", "waiting", ""})
	saved, err := c.grid.SaveTable(ctx, authed(sec, &api.SaveTableRequest{
		Table:       "tasks",
		Header:      loaded.Msg.Header,
		Rows:        rows,
		BaseVersion: loaded.Msg.Version,
	}))
	if err != nil {
		t.Fatalf("SaveTable failed: %v", err)
	}
	if saved.Msg.Version == loaded.Msg.Version {
		t.Error("expected a new version after adding a row")
	}

	// Saving again on the old version must not clobber the new row.
	_, err = c.grid.SaveTable(ctx, authed(sec, &api.SaveTableRequest{
		Table:       "tasks",
		Header:      loaded.Msg.Header,
		Rows:        loaded.Msg.Rows,
		BaseVersion: loaded.Msg.Version,
	}))
	expectCode(t, err, connect.CodeAborted)

	tasks, _ := c.tasks.ListTasks(ctx, authed(sec, &api.ListTasksRequest{}))
	if len(tasks.Msg.Tasks) != 2 {
		t.Errorf("tasks: expected 2, got %d", len(tasks.Msg.Tasks))
	}

	_, err = c.grid.LoadTable(ctx, authed(sec, &api.LoadTableRequest{Table: "users"}))
	expectCode(t, err, connect.CodePermissionDenied)

	users, err := c.grid.LoadTable(ctx, authed(admin, &api.LoadTableRequest{Table: "users"}))
	if err != nil {
		t.Fatalf("LoadTable(users) as admin failed: %v", err)
	}
	if len(users.Msg.Rows) != 3 {
		t.Errorf("users: expected 3 rows, got %d", len(users.Msg.Rows))
	}
}

func TestDashboard(t *testing.T) {
	c, _ := setupTestServer(t, nil)
	ctx := context.Background()
	admin := login(t, c, "admin", "admin-pw")

	empty, err := c.dashboard.GetDashboard(ctx, authed(admin, &api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard on empty worksheets failed: %v", err)
	}
	if empty.Msg.PendingDocuments != 0 || empty.Msg.OpenTasks != 0 || empty.Msg.Summary.Balance != 0 {
		t.Errorf("expected an empty dashboard, got %+v", empty.Msg)
	}

	c.documents.CreateDocument(ctx, authed(admin, &api.CreateDocumentRequest{Title: "Agenda"}))
	c.finance.CreateEntry(ctx, authed(admin, &api.CreateEntryRequest{Type: "income", Category: "dues", Amount: 30}))
	c.tasks.CreateTask(ctx, authed(admin, &api.CreateTaskRequest{Task: "Call printer"}))
	c.schedule.CreateEvent(ctx, authed(admin, &api.CreateEventRequest{StartDate: "2999-01-01", Title: "Assembly"}))

	resp, err := c.dashboard.GetDashboard(ctx, authed(admin, &api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	m := resp.Msg
	if m.PendingDocuments != 1 || m.PendingEntries != 1 || m.OpenTasks != 1 {
		t.Errorf("unexpected counts: %+v", m)
	}
	if m.Summary.Balance != 30 {
		t.Errorf("balance: expected 30, got %v", m.Summary.Balance)
	}
	if len(m.UpcomingEvents) != 1 || m.UpcomingEvents[0].Title != "Assembly" {
		t.Errorf("unexpected upcoming events: %+v", m.UpcomingEvents)
	}
}

func TestStoreOutageIsUnavailable(t *testing.T) {
	c, store := setupTestServer(t, nil)
	sec := login(t, c, "sec", "sec-pw")

	store.Close()

	_, err := c.documents.ListDocuments(context.Background(), authed(sec, &api.ListDocumentsRequest{}))
	expectCode(t, err, connect.CodeUnavailable)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"bad credentials", auth.ErrInvalidCredentials, connect.CodeUnauthenticated},
		{"login store failure", errors.Join(auth.ErrInvalidCredentials, &storage.Error{Op: "read", Err: errors.New("x")}), connect.CodeUnauthenticated},
		{"forbidden", auth.ErrForbidden, connect.CodePermissionDenied},
		{"validation", &workflow.ValidationError{Field: "title", Reason: "is required"}, connect.CodeInvalidArgument},
		{"bad upload", relay.ErrInvalidUpload, connect.CodeInvalidArgument},
		{"not found", workflow.ErrNotFound, connect.CodeNotFound},
		{"conflict", workflow.ErrConflict, connect.CodeAborted},
		{"transition", workflow.ErrInvalidTransition, connect.CodeFailedPrecondition},
		{"schema drift", &records.SchemaError{Worksheet: "tasks"}, connect.CodeFailedPrecondition},
		{"store", &storage.Error{Op: "read", Worksheet: "tasks", Err: errors.New("quota")}, connect.CodeUnavailable},
		{"relay", &relay.Error{StatusCode: 500}, connect.CodeUnavailable},
		{"other", errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeOf(tt.err); got != tt.want {
				t.Errorf("codeOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
