package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/corehr/employee-api/internal/core/domain"
)

const defaultTokenTTL = 15 * time.Minute

// TokenConfig holds the signing parameters for access tokens.
type TokenConfig struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512
	TTL       time.Duration
}

// JWTTokenService issues and verifies HMAC-signed JWT access tokens.
type JWTTokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	clock  Clock
}

// NewJWTTokenService validates cfg and returns a token service. A nil clock
// uses the wall clock.
func NewJWTTokenService(cfg TokenConfig, clock Clock) (*JWTTokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token service: secret is required")
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("token service: unsupported algorithm %q", cfg.Algorithm)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if clock == nil {
		clock = realClock{}
	}
	return &JWTTokenService{secret: []byte(cfg.Secret), method: method, ttl: ttl, clock: clock}, nil
}

// Issue signs a token whose subject is userID and which expires after the configured TTL.
func (s *JWTTokenService) Issue(userID int64) (*domain.AccessToken, error) {
	now := s.clock.Now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.AccessToken{
		Token:     signed,
		TokenType: domain.TokenTypeBearer,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks signature, algorithm and expiry before returning any claim.
func (s *JWTTokenService) Verify(token string) (*domain.TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", domain.ErrInvalidToken, claims.Subject)
	}

	out := &domain.TokenClaims{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

func (s *JWTTokenService) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return s.secret, nil
}
