package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/pkg/api"
)

// GridServiceName is the fully-qualified name of the GridService.
const GridServiceName = "chancery.v1.GridService"

// Procedure paths of the GridService.
const (
	GridServiceLoadTableProcedure = "/chancery.v1.GridService/LoadTable"
	GridServiceSaveTableProcedure = "/chancery.v1.GridService/SaveTable"
)

// GridServiceHandler loads and saves whole worksheets for bulk editing.
type GridServiceHandler interface {
	LoadTable(context.Context, *connect.Request[api.LoadTableRequest]) (*connect.Response[api.LoadTableResponse], error)
	SaveTable(context.Context, *connect.Request[api.SaveTableRequest]) (*connect.Response[api.SaveTableResponse], error)
}

// NewGridServiceHandler builds an HTTP handler from svc. It returns the path
// to mount the handler on.
func NewGridServiceHandler(svc GridServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + GridServiceName + "/", routes{
		GridServiceLoadTableProcedure: connect.NewUnaryHandler(GridServiceLoadTableProcedure, svc.LoadTable, opts...),
		GridServiceSaveTableProcedure: connect.NewUnaryHandler(GridServiceSaveTableProcedure, svc.SaveTable, opts...),
	}
}

// GridServiceClient is a client for the GridService.
type GridServiceClient interface {
	LoadTable(context.Context, *connect.Request[api.LoadTableRequest]) (*connect.Response[api.LoadTableResponse], error)
	SaveTable(context.Context, *connect.Request[api.SaveTableRequest]) (*connect.Response[api.SaveTableResponse], error)
}

// NewGridServiceClient creates a client for the GridService at baseURL
// (for example, http://localhost:8080).
func NewGridServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GridServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &gridServiceClient{
		loadTable: connect.NewClient[api.LoadTableRequest, api.LoadTableResponse](httpClient, baseURL+GridServiceLoadTableProcedure, opts...),
		saveTable: connect.NewClient[api.SaveTableRequest, api.SaveTableResponse](httpClient, baseURL+GridServiceSaveTableProcedure, opts...),
	}
}

type gridServiceClient struct {
	loadTable *connect.Client[api.LoadTableRequest, api.LoadTableResponse]
	saveTable *connect.Client[api.SaveTableRequest, api.SaveTableResponse]
}

func (c *gridServiceClient) LoadTable(ctx context.Context, req *connect.Request[api.LoadTableRequest]) (*connect.Response[api.LoadTableResponse], error) {
	return c.loadTable.CallUnary(ctx, req)
}

func (c *gridServiceClient) SaveTable(ctx context.Context, req *connect.Request[api.SaveTableRequest]) (*connect.Response[api.SaveTableResponse], error) {
	return c.saveTable.CallUnary(ctx, req)
}
