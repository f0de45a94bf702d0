package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/pkg/api"
)

// DocumentServiceName is the fully-qualified name of the DocumentService.
const DocumentServiceName = "chancery.v1.DocumentService"

// Procedure paths of the DocumentService.
const (
	DocumentServiceListDocumentsProcedure        = "/chancery.v1.DocumentService/ListDocuments"
	DocumentServiceListPendingDocumentsProcedure = "/chancery.v1.DocumentService/ListPendingDocuments"
	DocumentServiceCreateDocumentProcedure       = "/chancery.v1.DocumentService/CreateDocument"
	DocumentServiceApproveDocumentProcedure      = "/chancery.v1.DocumentService/ApproveDocument"
)

// DocumentServiceHandler lists, submits and approves documents.
type DocumentServiceHandler interface {
	ListDocuments(context.Context, *connect.Request[api.ListDocumentsRequest]) (*connect.Response[api.ListDocumentsResponse], error)
	ListPendingDocuments(context.Context, *connect.Request[api.ListPendingDocumentsRequest]) (*connect.Response[api.ListPendingDocumentsResponse], error)
	CreateDocument(context.Context, *connect.Request[api.CreateDocumentRequest]) (*connect.Response[api.CreateDocumentResponse], error)
	ApproveDocument(context.Context, *connect.Request[api.ApproveDocumentRequest]) (*connect.Response[api.ApproveDocumentResponse], error)
}

// NewDocumentServiceHandler builds an HTTP handler from svc. It returns the path
// to mount the handler on.
func NewDocumentServiceHandler(svc DocumentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + DocumentServiceName + "/", routes{
		DocumentServiceListDocumentsProcedure:        connect.NewUnaryHandler(DocumentServiceListDocumentsProcedure, svc.ListDocuments, opts...),
		DocumentServiceListPendingDocumentsProcedure: connect.NewUnaryHandler(DocumentServiceListPendingDocumentsProcedure, svc.ListPendingDocuments, opts...),
		DocumentServiceCreateDocumentProcedure:       connect.NewUnaryHandler(DocumentServiceCreateDocumentProcedure, svc.CreateDocument, opts...),
		DocumentServiceApproveDocumentProcedure:      connect.NewUnaryHandler(DocumentServiceApproveDocumentProcedure, svc.ApproveDocument, opts...),
	}
}

// DocumentServiceClient is a client for the DocumentService.
type DocumentServiceClient interface {
	ListDocuments(context.Context, *connect.Request[api.ListDocumentsRequest]) (*connect.Response[api.ListDocumentsResponse], error)
	ListPendingDocuments(context.Context, *connect.Request[api.ListPendingDocumentsRequest]) (*connect.Response[api.ListPendingDocumentsResponse], error)
	CreateDocument(context.Context, *connect.Request[api.CreateDocumentRequest]) (*connect.Response[api.CreateDocumentResponse], error)
	ApproveDocument(context.Context, *connect.Request[api.ApproveDocumentRequest]) (*connect.Response[api.ApproveDocumentResponse], error)
}

// NewDocumentServiceClient creates a client for the DocumentService at baseURL
// (for example, http://localhost:8080).
func NewDocumentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DocumentServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &documentServiceClient{
		listDocuments:        connect.NewClient[api.ListDocumentsRequest, api.ListDocumentsResponse](httpClient, baseURL+DocumentServiceListDocumentsProcedure, opts...),
		listPendingDocuments: connect.NewClient[api.ListPendingDocumentsRequest, api.ListPendingDocumentsResponse](httpClient, baseURL+DocumentServiceListPendingDocumentsProcedure, opts...),
		createDocument:       connect.NewClient[api.CreateDocumentRequest, api.CreateDocumentResponse](httpClient, baseURL+DocumentServiceCreateDocumentProcedure, opts...),
		approveDocument:      connect.NewClient[api.ApproveDocumentRequest, api.ApproveDocumentResponse](httpClient, baseURL+DocumentServiceApproveDocumentProcedure, opts...),
	}
}

type documentServiceClient struct {
	listDocuments        *connect.Client[api.ListDocumentsRequest, api.ListDocumentsResponse]
	listPendingDocuments *connect.Client[api.ListPendingDocumentsRequest, api.ListPendingDocumentsResponse]
	createDocument       *connect.Client[api.CreateDocumentRequest, api.CreateDocumentResponse]
	approveDocument      *connect.Client[api.ApproveDocumentRequest, api.ApproveDocumentResponse]
}

func (c *documentServiceClient) ListDocuments(ctx context.Context, req *connect.Request[api.ListDocumentsRequest]) (*connect.Response[api.ListDocumentsResponse], error) {
	return c.listDocuments.CallUnary(ctx, req)
}

func (c *documentServiceClient) ListPendingDocuments(ctx context.Context, req *connect.Request[api.ListPendingDocumentsRequest]) (*connect.Response[api.ListPendingDocumentsResponse], error) {
	return c.listPendingDocuments.CallUnary(ctx, req)
}

func (c *documentServiceClient) CreateDocument(ctx context.Context, req *connect.Request[api.CreateDocumentRequest]) (*connect.Response[api.CreateDocumentResponse], error) {
	return c.createDocument.CallUnary(ctx, req)
}

func (c *documentServiceClient) ApproveDocument(ctx context.Context, req *connect.Request[api.ApproveDocumentRequest]) (*connect.Response[api.ApproveDocumentResponse], error) {
	return c.approveDocument.CallUnary(ctx, req)
}
