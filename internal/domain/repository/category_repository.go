package repository

import (
	"context"
	"errors"

	"basket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when no category matches the query.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the standard operations for category persistence.
// All queries are scoped by the owning user's ID; cross-user access is
// impossible by construction.
type CategoryRepository interface {
	// FindByID retrieves a single category owned by the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	// FindAllByUser retrieves every category owned by the given user.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsByName reports whether the user already owns a category with the
	// given name, compared case-insensitively.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Delete removes a category owned by the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
