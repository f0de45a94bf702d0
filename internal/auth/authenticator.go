package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/eudistrict/chancery/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("role not permitted for this operation")
)

// Authenticator defines the interface for authentication implementations.
// The service layer only needs to turn a credential pair into an identity.
type Authenticator interface {
	// Authenticate verifies the credentials and returns the identity if successful.
	// Every failure wraps ErrInvalidCredentials; when the user table could
	// not be read, the underlying cause is wrapped as well.
	Authenticate(ctx context.Context, username, password string) (*models.Identity, error)
}

// Authorize returns ErrForbidden unless who holds one of roles.
// A nil identity is never authorized.
func Authorize(who *models.Identity, roles ...models.Role) error {
	if who == nil {
		return fmt.Errorf("%w: not signed in", ErrForbidden)
	}
	if slices.Contains(roles, who.Role) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, who.Role)
}
