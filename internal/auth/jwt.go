package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eudistrict/chancery/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// JWTManager handles JWT token generation and validation. A token is only
// accepted while the session it names is alive in the registry, so logout
// takes effect immediately.
type JWTManager struct {
	secretKey []byte
	sessions  *Sessions
}

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWT manager with the given secret.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewJWTManager(secretKey string, sessions *Sessions) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		sessions:  sessions,
	}
}

// Generate creates a signed token for sess. The token expires with the session.
func (m *JWTManager) Generate(sess *Session) (string, error) {
	claims := &Claims{
		Username: sess.Identity.Username,
		Name:     sess.Identity.Name,
		Role:     sess.Identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.Identity.UserID,
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			NotBefore: jwt.NewNumericDate(sess.CreatedAt.Add(-time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses a token and resolves its live session.
func (m *JWTManager) Validate(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	sess, err := m.sessions.Get(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return sess, nil
}
