package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/middleware"
	"github.com/eudistrict/chancery/internal/workflow"
	"github.com/eudistrict/chancery/pkg/api"
)

// GridService implements the Connect GridService, the bulk editor behind
// the spreadsheet-style admin pages.
type GridService struct {
	engine *workflow.Engine
}

// NewGridService creates a GridService.
func NewGridService(engine *workflow.Engine) *GridService {
	return &GridService{engine: engine}
}

// LoadTable returns a whole worksheet with its version.
func (s *GridService) LoadTable(ctx context.Context, req *connect.Request[api.LoadTableRequest]) (*connect.Response[api.LoadTableResponse], error) {
	slog.Info("LoadTable request received", "table", req.Msg.Table)

	g, err := s.engine.LoadTable(ctx, middleware.IdentityFrom(ctx), req.Msg.Table)
	if err != nil {
		return nil, toConnectError("LoadTable", err)
	}

	return connect.NewResponse(&api.LoadTableResponse{
		Table:   g.Table,
		Header:  g.Header,
		Rows:    g.Rows,
		Version: g.Version,
	}), nil
}

// SaveTable rewrites a whole worksheet. A base version turns on conflict
// detection.
func (s *GridService) SaveTable(ctx context.Context, req *connect.Request[api.SaveTableRequest]) (*connect.Response[api.SaveTableResponse], error) {
	slog.Info("SaveTable request received",
		"table", req.Msg.Table,
		"rows", len(req.Msg.Rows),
		"checked", req.Msg.BaseVersion != "",
	)

	version, err := s.engine.SaveTable(ctx, middleware.IdentityFrom(ctx), &workflow.Grid{
		Table:  req.Msg.Table,
		Header: req.Msg.Header,
		Rows:   req.Msg.Rows,
	}, req.Msg.BaseVersion)
	if err != nil {
		return nil, toConnectError("SaveTable", err)
	}

	return connect.NewResponse(&api.SaveTableResponse{Version: version}), nil
}
