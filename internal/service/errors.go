package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/relay"
	"github.com/eudistrict/chancery/internal/storage"
	"github.com/eudistrict/chancery/internal/workflow"
)

// errUploadsDisabled is returned when a request carries an attachment but
// no relay is configured.
var errUploadsDisabled = errors.New("file uploads are not configured")

// codeOf maps a domain error to its Connect code.
func codeOf(err error) connect.Code {
	var (
		validationErr *workflow.ValidationError
		schemaErr     *records.SchemaError
		decodeErr     *records.DecodeError
		storeErr      *storage.Error
		relayErr      *relay.Error
	)

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.CodeUnauthenticated
	case errors.Is(err, auth.ErrForbidden):
		return connect.CodePermissionDenied
	case errors.As(err, &validationErr), errors.Is(err, relay.ErrInvalidUpload):
		return connect.CodeInvalidArgument
	case errors.Is(err, workflow.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, workflow.ErrConflict):
		return connect.CodeAborted
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, errUploadsDisabled),
		errors.As(err, &schemaErr),
		errors.As(err, &decodeErr):
		return connect.CodeFailedPrecondition
	case errors.As(err, &storeErr), errors.As(err, &relayErr):
		return connect.CodeUnavailable
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// toConnectError logs a failed call and translates err for the wire.
func toConnectError(method string, err error) error {
	code := codeOf(err)
	switch code {
	case connect.CodeUnavailable, connect.CodeInternal:
		slog.Error(method+" failed", "code", code, "error", err)
	default:
		slog.Warn(method+" rejected", "code", code, "error", err)
	}
	return connect.NewError(code, err)
}
