package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/middleware"
	"github.com/eudistrict/chancery/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	sessions      *auth.Sessions
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, sessions *auth.Sessions, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		sessions:      sessions,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login checks the credentials against the users worksheet, opens a
// session and returns a token for it.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("username and password are required"))
	}

	identity, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	sess := s.sessions.Create(identity)
	token, err := s.jwtManager.Generate(sess)
	if err != nil {
		s.sessions.Destroy(sess.ID)
		s.logger.Error("Failed to generate token", "user_id", identity.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in", "user_id", identity.UserID, "role", identity.Role)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt.Unix(),
		User:      toAPIUser(identity),
	}), nil
}

// Logout ends the caller's session. Its token stops working immediately.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	sess := middleware.SessionFrom(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	s.sessions.Destroy(sess.ID)
	s.logger.Info("User logged out", "user_id", sess.Identity.UserID)
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the signed-in officer.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	sess := middleware.SessionFrom(ctx)
	if sess == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{
		User:      toAPIUser(&sess.Identity),
		ExpiresAt: sess.ExpiresAt.Unix(),
	}), nil
}
