package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/pkg/api"
)

// FinanceServiceName is the fully-qualified name of the FinanceService.
const FinanceServiceName = "chancery.v1.FinanceService"

// Procedure paths of the FinanceService.
const (
	FinanceServiceListEntriesProcedure        = "/chancery.v1.FinanceService/ListEntries"
	FinanceServiceListPendingEntriesProcedure = "/chancery.v1.FinanceService/ListPendingEntries"
	FinanceServiceCreateEntryProcedure        = "/chancery.v1.FinanceService/CreateEntry"
	FinanceServiceApproveEntryProcedure       = "/chancery.v1.FinanceService/ApproveEntry"
	FinanceServiceGetSummaryProcedure         = "/chancery.v1.FinanceService/GetSummary"
)

// FinanceServiceHandler records and approves ledger entries and summarises the balance.
type FinanceServiceHandler interface {
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	ListPendingEntries(context.Context, *connect.Request[api.ListPendingEntriesRequest]) (*connect.Response[api.ListPendingEntriesResponse], error)
	CreateEntry(context.Context, *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error)
	ApproveEntry(context.Context, *connect.Request[api.ApproveEntryRequest]) (*connect.Response[api.ApproveEntryResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewFinanceServiceHandler builds an HTTP handler from svc. It returns the path
// to mount the handler on.
func NewFinanceServiceHandler(svc FinanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + FinanceServiceName + "/", routes{
		FinanceServiceListEntriesProcedure:        connect.NewUnaryHandler(FinanceServiceListEntriesProcedure, svc.ListEntries, opts...),
		FinanceServiceListPendingEntriesProcedure: connect.NewUnaryHandler(FinanceServiceListPendingEntriesProcedure, svc.ListPendingEntries, opts...),
		FinanceServiceCreateEntryProcedure:        connect.NewUnaryHandler(FinanceServiceCreateEntryProcedure, svc.CreateEntry, opts...),
		FinanceServiceApproveEntryProcedure:       connect.NewUnaryHandler(FinanceServiceApproveEntryProcedure, svc.ApproveEntry, opts...),
		FinanceServiceGetSummaryProcedure:         connect.NewUnaryHandler(FinanceServiceGetSummaryProcedure, svc.GetSummary, opts...),
	}
}

// FinanceServiceClient is a client for the FinanceService.
type FinanceServiceClient interface {
	ListEntries(context.Context, *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error)
	ListPendingEntries(context.Context, *connect.Request[api.ListPendingEntriesRequest]) (*connect.Response[api.ListPendingEntriesResponse], error)
	CreateEntry(context.Context, *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error)
	ApproveEntry(context.Context, *connect.Request[api.ApproveEntryRequest]) (*connect.Response[api.ApproveEntryResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewFinanceServiceClient creates a client for the FinanceService at baseURL
// (for example, http://localhost:8080).
func NewFinanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FinanceServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &financeServiceClient{
		listEntries:        connect.NewClient[api.ListEntriesRequest, api.ListEntriesResponse](httpClient, baseURL+FinanceServiceListEntriesProcedure, opts...),
		listPendingEntries: connect.NewClient[api.ListPendingEntriesRequest, api.ListPendingEntriesResponse](httpClient, baseURL+FinanceServiceListPendingEntriesProcedure, opts...),
		createEntry:        connect.NewClient[api.CreateEntryRequest, api.CreateEntryResponse](httpClient, baseURL+FinanceServiceCreateEntryProcedure, opts...),
		approveEntry:       connect.NewClient[api.ApproveEntryRequest, api.ApproveEntryResponse](httpClient, baseURL+FinanceServiceApproveEntryProcedure, opts...),
		getSummary:         connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+FinanceServiceGetSummaryProcedure, opts...),
	}
}

type financeServiceClient struct {
	listEntries        *connect.Client[api.ListEntriesRequest, api.ListEntriesResponse]
	listPendingEntries *connect.Client[api.ListPendingEntriesRequest, api.ListPendingEntriesResponse]
	createEntry        *connect.Client[api.CreateEntryRequest, api.CreateEntryResponse]
	approveEntry       *connect.Client[api.ApproveEntryRequest, api.ApproveEntryResponse]
	getSummary         *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

func (c *financeServiceClient) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListPendingEntries(ctx context.Context, req *connect.Request[api.ListPendingEntriesRequest]) (*connect.Response[api.ListPendingEntriesResponse], error) {
	return c.listPendingEntries.CallUnary(ctx, req)
}

func (c *financeServiceClient) CreateEntry(ctx context.Context, req *connect.Request[api.CreateEntryRequest]) (*connect.Response[api.CreateEntryResponse], error) {
	return c.createEntry.CallUnary(ctx, req)
}

func (c *financeServiceClient) ApproveEntry(ctx context.Context, req *connect.Request[api.ApproveEntryRequest]) (*connect.Response[api.ApproveEntryResponse], error) {
	return c.approveEntry.CallUnary(ctx, req)
}

func (c *financeServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
