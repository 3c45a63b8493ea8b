package ports

import (
	"context"
	"time"

	"github.com/corehr/employee-api/internal/core/domain"
)

// UserRepository defines persistence for login accounts.
type UserRepository interface {
	// FindByUsername matches the username exactly. Missing users yield domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// TokenRevocationStore remembers access tokens that were logged out before expiry.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
