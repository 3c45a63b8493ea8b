package ports

import (
	"context"

	"github.com/corehr/employee-api/internal/core/domain"
)

// PasswordHasher hashes and checks plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
	Verify(plaintext, hash string) bool
}

// TokenService issues and verifies signed access tokens.
type TokenService interface {
	Issue(userID int64) (*domain.AccessToken, error)
	Verify(token string) (*domain.TokenClaims, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.AccessToken, error)
	// Authenticate resolves a bearer token to its user or returns domain.ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
