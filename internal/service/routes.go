package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/metrics"
	"github.com/eudistrict/chancery/internal/middleware"
	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api/apiconnect"
)

// Deps is everything the Connect services need.
type Deps struct {
	Engine        *workflow.Engine
	Authenticator auth.Authenticator
	Sessions      *auth.Sessions
	JWT           *auth.JWTManager
	Uploader      Uploader         // nil disables attachments
	Metrics       *metrics.Metrics // nil disables RPC metrics
	Logger        *slog.Logger
}

// Mount registers every service on mux. All procedures except Login
// require a live session.
func Mount(mux *http.ServeMux, d Deps) {
	var interceptors []connect.Interceptor
	if d.Metrics != nil {
		interceptors = append(interceptors, middleware.MetricsInterceptor(d.Metrics))
	}
	interceptors = append(interceptors,
		middleware.RequireAuth(d.JWT, apiconnect.AuthServiceLoginProcedure),
		middleware.LoggingInterceptor(),
	)
	opts := connect.WithInterceptors(interceptors...)

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(d.Authenticator, d.Sessions, d.JWT, logger), opts))
	mux.Handle(apiconnect.NewDocumentServiceHandler(NewDocumentService(d.Engine, d.Uploader), opts))
	mux.Handle(apiconnect.NewFinanceServiceHandler(NewFinanceService(d.Engine, d.Uploader), opts))
	mux.Handle(apiconnect.NewScheduleServiceHandler(NewScheduleService(d.Engine), opts))
	mux.Handle(apiconnect.NewTaskServiceHandler(NewTaskService(d.Engine), opts))
	mux.Handle(apiconnect.NewGridServiceHandler(NewGridService(d.Engine), opts))
	mux.Handle(apiconnect.NewDashboardServiceHandler(NewDashboardService(d.Engine), opts))
}
