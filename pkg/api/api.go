// Package api defines the request and response messages of the chancery.v1
// Connect services. Messages travel as JSON; see package apiconnect for the
// handlers and clients.
package api

// User is the public view of an officer account. It never carries the
// password.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // unix seconds
	User      *User  `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User      *User `json:"user"`
	ExpiresAt int64 `json:"expiresAt"`
}

// Attachment is a file uploaded through the relay before the record that
// references it is written.
type Attachment struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType,omitempty"`
	Content  []byte `json:"content"` // base64 in JSON
}

type Document struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Writer  string `json:"writer"`
	FileURL string `json:"fileUrl"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ListDocumentsRequest struct{}

type ListDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}

type ListPendingDocumentsRequest struct{}

type ListPendingDocumentsResponse struct {
	Documents []*Document `json:"documents"`
}

type CreateDocumentRequest struct {
	Title      string      `json:"title"`
	Date       string      `json:"date,omitempty"`
	FileURL    string      `json:"fileUrl,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

type CreateDocumentResponse struct {
	Document *Document `json:"document"`
}

type ApproveDocumentRequest struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

type ApproveDocumentResponse struct{}

type FinanceEntry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      string  `json:"amount"`      // as written on the sheet
	AmountValue float64 `json:"amountValue"` // parsed
	Description string  `json:"description"`
	ReceiptURL  string  `json:"receiptUrl"`
	Status      string  `json:"status"`
	Version     string  `json:"version"`
}

type ListEntriesRequest struct{}

type ListEntriesResponse struct {
	Entries []*FinanceEntry `json:"entries"`
}

type ListPendingEntriesRequest struct{}

type ListPendingEntriesResponse struct {
	Entries []*FinanceEntry `json:"entries"`
}

type CreateEntryRequest struct {
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date,omitempty"`
	ReceiptURL  string      `json:"receiptUrl,omitempty"`
	Receipt     *Attachment `json:"receipt,omitempty"`
}

type CreateEntryResponse struct {
	Entry *FinanceEntry `json:"entry"`
}

type ApproveEntryRequest struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

type ApproveEntryResponse struct{}

type CategoryTotal struct {
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int32   `json:"count"`
}

type Summary struct {
	Policy        string           `json:"policy"`
	Income        float64          `json:"income"`
	Expense       float64          `json:"expense"`
	Balance       float64          `json:"balance"`
	Categories    []*CategoryTotal `json:"categories"`
	PendingCount  int32            `json:"pendingCount"`
	PendingAmount float64          `json:"pendingAmount"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

type Event struct {
	ID          string `json:"id"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type ListEventsRequest struct {
	UpcomingOnly bool `json:"upcomingOnly,omitempty"`
}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

type CreateEventRequest struct {
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type Task struct {
	ID       string `json:"id"`
	DueDate  string `json:"dueDate"`
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Status   string `json:"status"`
	Note     string `json:"note"`
	Version  string `json:"version"`
}

type ListTasksRequest struct {
	OpenOnly bool `json:"openOnly,omitempty"`
}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Task     string `json:"task"`
	DueDate  string `json:"dueDate,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Note     string `json:"note,omitempty"`
}

type CreateTaskResponse struct {
	Task *Task `json:"task"`
}

type AdvanceTaskRequest struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type AdvanceTaskResponse struct {
	Task *Task `json:"task"`
}

type LoadTableRequest struct {
	Table string `json:"table"`
}

type LoadTableResponse struct {
	Table   string     `json:"table"`
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
	Version string     `json:"version"`
}

type SaveTableRequest struct {
	Table       string     `json:"table"`
	Header      []string   `json:"header"`
	Rows        [][]string `json:"rows"`
	BaseVersion string     `json:"baseVersion,omitempty"`
}

type SaveTableResponse struct {
	Version string `json:"version"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	PendingDocuments int32    `json:"pendingDocuments"`
	PendingEntries   int32    `json:"pendingEntries"`
	OpenTasks        int32    `json:"openTasks"`
	Summary          *Summary `json:"summary"`
	UpcomingEvents   []*Event `json:"upcomingEvents"`
	Tasks            []*Task  `json:"tasks"`
}
