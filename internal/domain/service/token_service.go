package service

import (
	"time"

	"github.com/google/uuid"
)

// Claims carries the decoded identity of a verified token.
type Claims struct {
	UserID uuid.UUID
	Email  string // Only present on access tokens.
}

// TokenService defines the interface for generating and validating JWTs.
// Access and refresh tokens are signed with independent secrets so that the
// compromise of one kind cannot forge the other.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, email string) (accessToken string, refreshToken string, err error)

	// GenerateAccessToken mints only a new access token, used by the refresh flow.
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)

	// ValidateAccessToken checks signature and expiry of an access token.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks signature and expiry of a refresh token.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken returns the SHA-256 hex digest of a raw token, the form in
	// which refresh tokens are persisted.
	HashToken(tokenString string) string

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
