package models

// ApprovalStatus is the status of a document or finance entry.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
)

// EntryType distinguishes income from expense lines.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// TaskStatus is the status of a task board card.
type TaskStatus string

const (
	TaskWaiting    TaskStatus = "waiting"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Next returns the status that follows s, and false when s is terminal or unknown.
func (s TaskStatus) Next() (TaskStatus, bool) {
	switch s {
	case TaskWaiting:
		return TaskInProgress, true
	case TaskInProgress:
		return TaskDone, true
	}
	return "", false
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	return s == TaskWaiting || s == TaskInProgress || s == TaskDone
}

// Document represents a submitted document.
type Document struct {
	ID string

	// Date is the submission date (YYYY-MM-DD).
	Date string

	Title string

	// Writer is the display name of the officer who submitted it.
	Writer string

	// FileURL points at the attachment stored by the file relay. Optional.
	FileURL string

	Status ApprovalStatus

	// Version fingerprints the row as last read; it is not stored.
	Version string
}

// FinanceEntry represents one line of the ledger.
type FinanceEntry struct {
	ID string

	// Date is the booking date (YYYY-MM-DD).
	Date string

	Type     EntryType
	Category string

	// Amount is kept as the raw worksheet text ("1,000"); it is parsed
	// when aggregated so a malformed cell never blocks a listing.
	Amount string

	Description string

	// ReceiptURL points at the receipt stored by the file relay. Optional.
	ReceiptURL string

	Status  ApprovalStatus
	Version string
}

// ScheduleEvent represents a calendar entry.
type ScheduleEvent struct {
	ID string

	// StartDate and EndDate are inclusive (YYYY-MM-DD); EndDate >= StartDate.
	StartDate string
	EndDate   string

	Title       string
	Location    string
	Description string
}

// Task represents a task board card.
type Task struct {
	ID      string
	DueDate string

	// Task is the card text.
	Task     string
	Assignee string
	Status   TaskStatus
	Note     string
	Version  string
}
