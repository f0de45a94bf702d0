package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/pkg/api"
)

// DashboardServiceName is the fully-qualified name of the DashboardService.
const DashboardServiceName = "chancery.v1.DashboardService"

// Procedure paths of the DashboardService.
const (
	DashboardServiceGetDashboardProcedure = "/chancery.v1.DashboardService/GetDashboard"
)

// DashboardServiceHandler serves the landing page overview.
type DashboardServiceHandler interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewDashboardServiceHandler builds an HTTP handler from svc. It returns the path
// to mount the handler on.
func NewDashboardServiceHandler(svc DashboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + DashboardServiceName + "/", routes{
		DashboardServiceGetDashboardProcedure: connect.NewUnaryHandler(DashboardServiceGetDashboardProcedure, svc.GetDashboard, opts...),
	}
}

// DashboardServiceClient is a client for the DashboardService.
type DashboardServiceClient interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
}

// NewDashboardServiceClient creates a client for the DashboardService at baseURL
// (for example, http://localhost:8080).
func NewDashboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DashboardServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &dashboardServiceClient{
		getDashboard: connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+DashboardServiceGetDashboardProcedure, opts...),
	}
}

type dashboardServiceClient struct {
	getDashboard *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
}

func (c *dashboardServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}
