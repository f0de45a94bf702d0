package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
	"github.com/eudistrict/chancery/internal/storage"
)

// SheetAuthenticator checks credentials against the users worksheet.
type SheetAuthenticator struct {
	store  storage.Store
	logger *slog.Logger
}

// SheetOption configures a SheetAuthenticator.
type SheetOption func(*SheetAuthenticator)

// WithLogger sets the logger for skipped user rows. Defaults to slog.Default().
func WithLogger(l *slog.Logger) SheetOption {
	return func(a *SheetAuthenticator) { a.logger = l }
}

// NewSheetAuthenticator creates an authenticator reading from store.
func NewSheetAuthenticator(store storage.Store, opts ...SheetOption) *SheetAuthenticator {
	a := &SheetAuthenticator{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate reads the whole users worksheet and returns the first row
// whose username and password both match. Cells are compared exactly as
// stored, surrounding blanks included. Duplicate usernames are not
// detected; the earlier row wins.
func (a *SheetAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	ws, err := a.store.Worksheet(ctx, records.Users)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, storage.Wrap("open", records.Users, err))
	}
	_, rows, err := storage.ReadRecords(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	for _, row := range rows {
		if row.Cell("username") != username {
			continue
		}
		if !PasswordMatches(row.Cell("password"), password) {
			continue
		}
		user, err := records.DecodeUser(row)
		if err != nil {
			// A matching but malformed row cannot yield a role.
			a.logger.Warn("Skipping malformed user row", "row", row.Row, "error", err)
			continue
		}
		return user.Identity(), nil
	}

	return nil, ErrInvalidCredentials
}

// PasswordMatches compares a stored password cell with a submitted one.
// Cells holding a bcrypt hash are verified with bcrypt; anything else is
// compared as a plain string.
func PasswordMatches(stored, submitted string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil
	}
	return stored == submitted
}

// HashPassword returns a bcrypt hash suitable for the password cell.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
