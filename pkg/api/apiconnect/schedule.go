package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/pkg/api"
)

// ScheduleServiceName is the fully-qualified name of the ScheduleService.
const ScheduleServiceName = "chancery.v1.ScheduleService"

// Procedure paths of the ScheduleService.
const (
	ScheduleServiceListEventsProcedure  = "/chancery.v1.ScheduleService/ListEvents"
	ScheduleServiceCreateEventProcedure = "/chancery.v1.ScheduleService/CreateEvent"
)

// ScheduleServiceHandler lists and adds calendar events.
type ScheduleServiceHandler interface {
	ListEvents(context.Context, *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
}

// NewScheduleServiceHandler builds an HTTP handler from svc. It returns the path
// to mount the handler on.
func NewScheduleServiceHandler(svc ScheduleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ScheduleServiceName + "/", routes{
		ScheduleServiceListEventsProcedure:  connect.NewUnaryHandler(ScheduleServiceListEventsProcedure, svc.ListEvents, opts...),
		ScheduleServiceCreateEventProcedure: connect.NewUnaryHandler(ScheduleServiceCreateEventProcedure, svc.CreateEvent, opts...),
	}
}

// ScheduleServiceClient is a client for the ScheduleService.
type ScheduleServiceClient interface {
	ListEvents(context.Context, *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error)
	CreateEvent(context.Context, *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error)
}

// NewScheduleServiceClient creates a client for the ScheduleService at baseURL
// (for example, http://localhost:8080).
func NewScheduleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ScheduleServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &scheduleServiceClient{
		listEvents:  connect.NewClient[api.ListEventsRequest, api.ListEventsResponse](httpClient, baseURL+ScheduleServiceListEventsProcedure, opts...),
		createEvent: connect.NewClient[api.CreateEventRequest, api.CreateEventResponse](httpClient, baseURL+ScheduleServiceCreateEventProcedure, opts...),
	}
}

type scheduleServiceClient struct {
	listEvents  *connect.Client[api.ListEventsRequest, api.ListEventsResponse]
	createEvent *connect.Client[api.CreateEventRequest, api.CreateEventResponse]
}

func (c *scheduleServiceClient) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	return c.listEvents.CallUnary(ctx, req)
}

func (c *scheduleServiceClient) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	return c.createEvent.CallUnary(ctx, req)
}
