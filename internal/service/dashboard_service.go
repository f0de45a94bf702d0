package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api"
)

// DashboardService implements the Connect DashboardService.
type DashboardService struct {
	engine *workflow.Engine
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(engine *workflow.Engine) *DashboardService {
	return &DashboardService{engine: engine}
}

// GetDashboard gathers the approval queues, balance, upcoming events and
// open tasks in one call.
func (s *DashboardService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	slog.Info("GetDashboard request received")

	docs, err := s.engine.PendingDocuments(ctx)
	if err != nil {
		return nil, toConnectError("GetDashboard", err)
	}
	summary, err := s.engine.Balance(ctx)
	if err != nil {
		return nil, toConnectError("GetDashboard", err)
	}
	events, err := s.engine.UpcomingEvents(ctx)
	if err != nil {
		return nil, toConnectError("GetDashboard", err)
	}
	tasks, err := s.engine.OpenTasks(ctx)
	if err != nil {
		return nil, toConnectError("GetDashboard", err)
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		PendingDocuments: int32(len(docs)),
		PendingEntries:   int32(summary.PendingCount),
		OpenTasks:        int32(len(tasks)),
		Summary:          toAPISummary(summary),
		UpcomingEvents:   toAPIEvents(events),
		Tasks:            toAPITasks(tasks),
	}), nil
}
