package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/middleware"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api"
)

// TaskService implements the Connect TaskService.
type TaskService struct {
	engine *workflow.Engine
}

// NewTaskService creates a TaskService.
func NewTaskService(engine *workflow.Engine) *TaskService {
	return &TaskService{engine: engine}
}

// ListTasks returns the task board, optionally without finished tasks.
func (s *TaskService) ListTasks(ctx context.Context, req *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	slog.Info("ListTasks request received", "open_only", req.Msg.OpenOnly)

	var (
		tasks []models.Task
		err   error
	)
	if req.Msg.OpenOnly {
		tasks, err = s.engine.OpenTasks(ctx)
	} else {
		tasks, err = s.engine.ListTasks(ctx)
	}
	if err != nil {
		return nil, toConnectError("ListTasks", err)
	}

	return connect.NewResponse(&api.ListTasksResponse{Tasks: toAPITasks(tasks)}), nil
}

// CreateTask adds a waiting task.
func (s *TaskService) CreateTask(ctx context.Context, req *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	slog.Info("CreateTask request received", "task", req.Msg.Task, "assignee", req.Msg.Assignee)

	task, err := s.engine.CreateTask(ctx, middleware.IdentityFrom(ctx), workflow.TaskInput{
		Task:     req.Msg.Task,
		DueDate:  req.Msg.DueDate,
		Assignee: req.Msg.Assignee,
		Note:     req.Msg.Note,
	})
	if err != nil {
		return nil, toConnectError("CreateTask", err)
	}

	return connect.NewResponse(&api.CreateTaskResponse{Task: toAPITask(*task)}), nil
}

// AdvanceTask moves a task one step along the board.
func (s *TaskService) AdvanceTask(ctx context.Context, req *connect.Request[api.AdvanceTaskRequest]) (*connect.Response[api.AdvanceTaskResponse], error) {
	slog.Info("AdvanceTask request received", "id", req.Msg.ID, "status", req.Msg.Status)

	task, err := s.engine.AdvanceTask(ctx, middleware.IdentityFrom(ctx), req.Msg.ID, models.TaskStatus(req.Msg.Status), req.Msg.Version)
	if err != nil {
		return nil, toConnectError("AdvanceTask", err)
	}

	return connect.NewResponse(&api.AdvanceTaskResponse{Task: toAPITask(*task)}), nil
}
