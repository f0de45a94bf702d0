package service

import (
	"github.com/eudistrict/chancery/internal/calculator"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/pkg/api"
)

func toAPIUser(id *models.Identity) *api.User {
	return &api.User{
		ID:       id.UserID,
		Username: id.Username,
		Name:     id.Name,
		Role:     string(id.Role),
	}
}

func toAPIDocuments(docs []models.Document) []*api.Document {
	out := make([]*api.Document, len(docs))
	for i, d := range docs {
		out[i] = toAPIDocument(d)
	}
	return out
}

func toAPIDocument(d models.Document) *api.Document {
	return &api.Document{
		ID:      d.ID,
		Date:    d.Date,
		Title:   d.Title,
		Writer:  d.Writer,
		FileURL: d.FileURL,
		Status:  string(d.Status),
		Version: d.Version,
	}
}

func toAPIEntries(entries []models.FinanceEntry) []*api.FinanceEntry {
	out := make([]*api.FinanceEntry, len(entries))
	for i, e := range entries {
		out[i] = toAPIEntry(e)
	}
	return out
}

func toAPIEntry(e models.FinanceEntry) *api.FinanceEntry {
	return &api.FinanceEntry{
		ID:          e.ID,
		Date:        e.Date,
		Type:        string(e.Type),
		Category:    e.Category,
		Amount:      e.Amount,
		AmountValue: calculator.ParseAmount(e.Amount),
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		Status:      string(e.Status),
		Version:     e.Version,
	}
}

func toAPISummary(s calculator.Summary) *api.Summary {
	categories := make([]*api.CategoryTotal, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = &api.CategoryTotal{
			Type:     string(c.Type),
			Category: c.Category,
			Total:    c.Total,
			Count:    int32(c.Count),
		}
	}
	return &api.Summary{
		Policy:        string(s.Policy),
		Income:        s.Income,
		Expense:       s.Expense,
		Balance:       s.Balance.Balance,
		Categories:    categories,
		PendingCount:  int32(s.PendingCount),
		PendingAmount: s.PendingAmount,
	}
}

func toAPIEvents(events []models.ScheduleEvent) []*api.Event {
	out := make([]*api.Event, len(events))
	for i, ev := range events {
		out[i] = toAPIEvent(ev)
	}
	return out
}

func toAPIEvent(ev models.ScheduleEvent) *api.Event {
	return &api.Event{
		ID:          ev.ID,
		StartDate:   ev.StartDate,
		EndDate:     ev.EndDate,
		Title:       ev.Title,
		Location:    ev.Location,
		Description: ev.Description,
	}
}

func toAPITasks(tasks []models.Task) []*api.Task {
	out := make([]*api.Task, len(tasks))
	for i, t := range tasks {
		out[i] = toAPITask(t)
	}
	return out
}

func toAPITask(t models.Task) *api.Task {
	return &api.Task{
		ID:       t.ID,
		DueDate:  t.DueDate,
		Task:     t.Task,
		Assignee: t.Assignee,
		Status:   string(t.Status),
		Note:     t.Note,
		Version:  t.Version,
	}
}
