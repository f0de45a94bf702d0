package records

import (
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/storage"
)

// DecodeUser converts a users row. Role must be known. Rows typed in by
// hand often lack an id; the username stands in for it.
func DecodeUser(r storage.Record) (models.User, error) {
	if err := required(Users, r, "username", "role"); err != nil {
		return models.User{}, err
	}
	id := r.Get("id")
	if id == "" {
		id = r.Get("username")
	}
	u := models.User{
		ID:       id,
		Username: r.Get("username"),
		Password: r.Get("password"),
		Name:     r.Get("name"),
		Role:     models.Role(r.Get("role")),
	}
	if !u.Role.Valid() {
		return models.User{}, invalid(Users, r, "role")
	}
	return u, nil
}

// EncodeUser renders u in header order.
func EncodeUser(u models.User) []string {
	return []string{u.ID, u.Username, u.Password, u.Name, string(u.Role)}
}

// DecodeDocument converts a documents row.
func DecodeDocument(r storage.Record) (models.Document, error) {
	if err := required(Documents, r, "id", "title", "status"); err != nil {
		return models.Document{}, err
	}
	d := models.Document{
		ID:      r.Get("id"),
		Date:    r.Get("date"),
		Title:   r.Get("title"),
		Writer:  r.Get("writer"),
		FileURL: r.Get("file_url"),
		Status:  models.ApprovalStatus(r.Get("status")),
	}
	if d.Status != models.StatusPending && d.Status != models.StatusApproved {
		return models.Document{}, invalid(Documents, r, "status")
	}
	return d, nil
}

// EncodeDocument renders d in header order.
func EncodeDocument(d models.Document) []string {
	return []string{d.ID, d.Date, d.Title, d.Writer, d.FileURL, string(d.Status)}
}

// DecodeFinance converts a finance row. The amount is kept verbatim.
func DecodeFinance(r storage.Record) (models.FinanceEntry, error) {
	if err := required(Finance, r, "id", "type", "status"); err != nil {
		return models.FinanceEntry{}, err
	}
	e := models.FinanceEntry{
		ID:          r.Get("id"),
		Date:        r.Get("date"),
		Type:        models.EntryType(r.Get("type")),
		Category:    r.Get("category"),
		Amount:      r.Get("amount"),
		Description: r.Get("description"),
		ReceiptURL:  r.Get("receipt_url"),
		Status:      models.ApprovalStatus(r.Get("status")),
	}
	if e.Type != models.EntryIncome && e.Type != models.EntryExpense {
		return models.FinanceEntry{}, invalid(Finance, r, "type")
	}
	if e.Status != models.StatusPending && e.Status != models.StatusApproved {
		return models.FinanceEntry{}, invalid(Finance, r, "status")
	}
	return e, nil
}

// EncodeFinance renders e in header order.
func EncodeFinance(e models.FinanceEntry) []string {
	return []string{e.ID, e.Date, string(e.Type), e.Category, e.Amount, e.Description, e.ReceiptURL, string(e.Status)}
}

// DecodeEvent converts a schedule row. Rows written before the calendar
// had date ranges carry a single "date" column; it becomes both ends.
func DecodeEvent(r storage.Record) (models.ScheduleEvent, error) {
	ev := models.ScheduleEvent{
		ID:          r.Get("id"),
		StartDate:   r.Get("start_date"),
		EndDate:     r.Get("end_date"),
		Title:       r.Get("title"),
		Location:    r.Get("location"),
		Description: r.Get("description"),
	}
	if ev.StartDate == "" {
		ev.StartDate = r.Get("date")
	}
	if ev.EndDate == "" {
		ev.EndDate = ev.StartDate
	}

	if err := required(Schedule, r, "id", "title"); err != nil {
		return models.ScheduleEvent{}, err
	}
	if !ValidDate(ev.StartDate) {
		return models.ScheduleEvent{}, &DecodeError{Worksheet: Schedule, Row: r.Row, Field: "start_date", Reason: "must be a YYYY-MM-DD date"}
	}
	if !ValidDate(ev.EndDate) {
		return models.ScheduleEvent{}, invalid(Schedule, r, "end_date")
	}
	return ev, nil
}

// EncodeEvent renders ev in header order.
func EncodeEvent(ev models.ScheduleEvent) []string {
	return []string{ev.ID, ev.StartDate, ev.EndDate, ev.Title, ev.Location, ev.Description}
}

// DecodeTask converts a tasks row.
func DecodeTask(r storage.Record) (models.Task, error) {
	if err := required(Tasks, r, "id", "task", "status"); err != nil {
		return models.Task{}, err
	}
	t := models.Task{
		ID:       r.Get("id"),
		DueDate:  r.Get("due_date"),
		Task:     r.Get("task"),
		Assignee: r.Get("assignee"),
		Status:   models.TaskStatus(r.Get("status")),
		Note:     r.Get("note"),
	}
	if !t.Status.Valid() {
		return models.Task{}, invalid(Tasks, r, "status")
	}
	return t, nil
}

// EncodeTask renders t in header order.
func EncodeTask(t models.Task) []string {
	return []string{t.ID, t.DueDate, t.Task, t.Assignee, string(t.Status), t.Note}
}

// Validate decodes r as a row of worksheet name and discards the result.
func Validate(name string, r storage.Record) error {
	var err error
	switch name {
	case Users:
		_, err = DecodeUser(r)
	case Documents:
		_, err = DecodeDocument(r)
	case Finance:
		_, err = DecodeFinance(r)
	case Schedule:
		_, err = DecodeEvent(r)
	case Tasks:
		_, err = DecodeTask(r)
	}
	return err
}
