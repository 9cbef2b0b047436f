package repository

import (
	"context"
	"errors"

	"basket/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for refresh token persistence.
var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokenRepository defines the operations for session persistence.
// Raw tokens never reach this layer; only SHA-256 hashes are stored.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a user session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its stored hash.
	// Expired records yield ErrRefreshTokenExpired.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes a refresh token by its hash, ending a session.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByUserID deletes all sessions of a user.
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error
}
