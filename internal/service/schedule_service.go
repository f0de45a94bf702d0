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

// ScheduleService implements the Connect ScheduleService.
type ScheduleService struct {
	engine *workflow.Engine
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(engine *workflow.Engine) *ScheduleService {
	return &ScheduleService{engine: engine}
}

// ListEvents returns the calendar ordered by start date.
func (s *ScheduleService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	slog.Info("ListEvents request received", "upcoming_only", req.Msg.UpcomingOnly)

	var (
		events []models.ScheduleEvent
		err    error
	)
	if req.Msg.UpcomingOnly {
		events, err = s.engine.UpcomingEvents(ctx)
	} else {
		events, err = s.engine.ListSchedule(ctx)
	}
	if err != nil {
		return nil, toConnectError("ListEvents", err)
	}

	return connect.NewResponse(&api.ListEventsResponse{Events: toAPIEvents(events)}), nil
}

// CreateEvent adds a calendar entry.
func (s *ScheduleService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	slog.Info("CreateEvent request received",
		"title", req.Msg.Title,
		"start", req.Msg.StartDate,
		"end", req.Msg.EndDate,
	)

	ev, err := s.engine.CreateEvent(ctx, middleware.IdentityFrom(ctx), workflow.EventInput{
		StartDate:   req.Msg.StartDate,
		EndDate:     req.Msg.EndDate,
		Title:       req.Msg.Title,
		Location:    req.Msg.Location,
		Description: req.Msg.Description,
	})
	if err != nil {
		return nil, toConnectError("CreateEvent", err)
	}

	return connect.NewResponse(&api.CreateEventResponse{Event: toAPIEvent(*ev)}), nil
}
