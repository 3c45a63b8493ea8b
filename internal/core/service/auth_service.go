package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

// AuthService implements login, bearer-token authentication and logout.
type AuthService struct {
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenService
	revocations ports.TokenRevocationStore
	clock       Clock
	log         zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the auth flow. revocations may be nil, in which case
// logout is a no-op and tokens stay valid until they expire.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	revocations ports.TokenRevocationStore,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		clock:       realClock{},
		log:         log,
	}
}

// Login checks the credentials and issues an access token. An unknown
// username and a wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AccessToken, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a bcrypt comparison so unknown users take as long as known ones.
			s.hasher.Verify(password, s.fallbackHash())
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Authenticate verifies token and loads its subject. Every token or lookup
// failure is reported as ErrUnauthenticated, wrapping the underlying cause.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	if s.isRevoked(ctx, claims.TokenID) {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// Logout revokes token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if s.revocations == nil || claims.TokenID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info().Int64("user_id", claims.UserID).Str("jti", claims.TokenID).Msg("token revoked")
	return nil
}

func (s *AuthService) isRevoked(ctx context.Context, tokenID string) bool {
	if s.revocations == nil || tokenID == "" {
		return false
	}
	revoked, err := s.revocations.IsRevoked(ctx, tokenID)
	if err != nil {
		s.log.Warn().Err(err).Str("jti", tokenID).Msg("revocation check failed, accepting token")
		return false
	}
	return revoked
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare fallback password hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
