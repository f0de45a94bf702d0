package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/pkg/api"
)

// TaskServiceName is the fully-qualified name of the TaskService.
const TaskServiceName = "chancery.v1.TaskService"

// Procedure paths of the TaskService.
const (
	TaskServiceListTasksProcedure   = "/chancery.v1.TaskService/ListTasks"
	TaskServiceCreateTaskProcedure  = "/chancery.v1.TaskService/CreateTask"
	TaskServiceAdvanceTaskProcedure = "/chancery.v1.TaskService/AdvanceTask"
)

// TaskServiceHandler runs the task board.
type TaskServiceHandler interface {
	ListTasks(context.Context, *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error)
	CreateTask(context.Context, *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error)
	AdvanceTask(context.Context, *connect.Request[api.AdvanceTaskRequest]) (*connect.Response[api.AdvanceTaskResponse], error)
}

// NewTaskServiceHandler builds an HTTP handler from svc. It returns the path
// to mount the handler on.
func NewTaskServiceHandler(svc TaskServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + TaskServiceName + "/", routes{
		TaskServiceListTasksProcedure:   connect.NewUnaryHandler(TaskServiceListTasksProcedure, svc.ListTasks, opts...),
		TaskServiceCreateTaskProcedure:  connect.NewUnaryHandler(TaskServiceCreateTaskProcedure, svc.CreateTask, opts...),
		TaskServiceAdvanceTaskProcedure: connect.NewUnaryHandler(TaskServiceAdvanceTaskProcedure, svc.AdvanceTask, opts...),
	}
}

// TaskServiceClient is a client for the TaskService.
type TaskServiceClient interface {
	ListTasks(context.Context, *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error)
	CreateTask(context.Context, *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error)
	AdvanceTask(context.Context, *connect.Request[api.AdvanceTaskRequest]) (*connect.Response[api.AdvanceTaskResponse], error)
}

// NewTaskServiceClient creates a client for the TaskService at baseURL
// (for example, http://localhost:8080).
func NewTaskServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TaskServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &taskServiceClient{
		listTasks:   connect.NewClient[api.ListTasksRequest, api.ListTasksResponse](httpClient, baseURL+TaskServiceListTasksProcedure, opts...),
		createTask:  connect.NewClient[api.CreateTaskRequest, api.CreateTaskResponse](httpClient, baseURL+TaskServiceCreateTaskProcedure, opts...),
		advanceTask: connect.NewClient[api.AdvanceTaskRequest, api.AdvanceTaskResponse](httpClient, baseURL+TaskServiceAdvanceTaskProcedure, opts...),
	}
}

type taskServiceClient struct {
	listTasks   *connect.Client[api.ListTasksRequest, api.ListTasksResponse]
	createTask  *connect.Client[api.CreateTaskRequest, api.CreateTaskResponse]
	advanceTask *connect.Client[api.AdvanceTaskRequest, api.AdvanceTaskResponse]
}

func (c *taskServiceClient) ListTasks(ctx context.Context, req *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

func (c *taskServiceClient) CreateTask(ctx context.Context, req *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	return c.createTask.CallUnary(ctx, req)
}

func (c *taskServiceClient) AdvanceTask(ctx context.Context, req *connect.Request[api.AdvanceTaskRequest]) (*connect.Response[api.AdvanceTaskResponse], error) {
	return c.advanceTask.CallUnary(ctx, req)
}
