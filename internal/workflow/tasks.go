package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

var anyRole = []models.Role{models.RoleAdmin, models.RoleSecretary, models.RoleTreasurer}

// TaskInput is a new task board card.
type TaskInput struct {
	Task     string
	DueDate  string
	Assignee string
	Note     string
}

// ListTasks returns every task in worksheet order.
func (e *Engine) ListTasks(ctx context.Context) ([]models.Task, error) {
	s, err := e.read(ctx, records.Tasks)
	if err != nil {
		return nil, err
	}
	return decodeAll(e, records.Tasks, s.records, func(r storage.Record) (models.Task, error) {
		t, err := records.DecodeTask(r)
		t.Version = recordVersion(s.header, r)
		return t, err
	}), nil
}

// OpenTasks returns the tasks that are not done yet.
func (e *Engine) OpenTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := e.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != models.TaskDone {
			open = append(open, t)
		}
	}
	return open, nil
}

// CreateTask appends a waiting task. Any officer may add tasks.
func (e *Engine) CreateTask(ctx context.Context, who *models.Identity, in TaskInput) (*models.Task, error) {
	if err := auth.Authorize(who, anyRole...); err != nil {
		return nil, err
	}

	task := models.Task{
		ID:       e.newID(),
		DueDate:  strings.TrimSpace(in.DueDate),
		Task:     strings.TrimSpace(in.Task),
		Assignee: strings.TrimSpace(in.Assignee),
		Status:   models.TaskWaiting,
		Note:     strings.TrimSpace(in.Note),
	}
	if task.Task == "" {
		return nil, invalidField("task", "is required")
	}
	if task.DueDate != "" && !records.ValidDate(task.DueDate) {
		return nil, invalidField("due_date", "must be a YYYY-MM-DD date")
	}

	row := records.EncodeTask(task)
	if err := e.appendRow(ctx, records.Tasks, row); err != nil {
		return nil, err
	}
	task.Version = rowVersion(row)
	e.logger.Info("Task created", "id", task.ID, "assignee", task.Assignee, "by", who.Username)
	return &task, nil
}

// AdvanceTask moves a task to next. Only the immediate successor of the
// current status is accepted (waiting -> in_progress -> done); asking for
// the current status again is a no-op.
func (e *Engine) AdvanceTask(ctx context.Context, who *models.Identity, id string, next models.TaskStatus, version string) (*models.Task, error) {
	if err := auth.Authorize(who, anyRole...); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, invalidField("id", "is required")
	}
	if !next.Valid() {
		return nil, invalidField("status", fmt.Sprintf("unknown task status %q", next))
	}

	s, err := e.read(ctx, records.Tasks)
	if err != nil {
		return nil, err
	}
	rec, ok := s.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, records.Tasks, id)
	}
	task, err := records.DecodeTask(rec)
	if err != nil {
		return nil, err
	}

	if task.Status == next {
		task.Version = recordVersion(s.header, rec)
		return &task, nil
	}
	if successor, ok := task.Status.Next(); !ok || successor != next {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, next)
	}
	if version != "" && recordVersion(s.header, rec) != version {
		return nil, fmt.Errorf("%w: %s %s", ErrConflict, records.Tasks, id)
	}

	statusCol := records.Column(s.header, "status")
	if err := s.ws.UpdateCell(ctx, rec.Row, statusCol, string(next)); err != nil {
		return nil, storage.Wrap("update cell", records.Tasks, err)
	}
	e.logger.Info("Task advanced", "id", id, "from", task.Status, "to", next, "by", who.Username)

	task.Status = next
	rec.Fields["status"] = string(next)
	task.Version = recordVersion(s.header, rec)
	return &task, nil
}
