package domain

import "time"

const TokenTypeBearer = "bearer"

// AccessToken is a freshly issued bearer credential.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// TokenClaims are the verified contents of an access token.
type TokenClaims struct {
	UserID    int64
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
