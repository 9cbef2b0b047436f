package repository

import (
	"context"
	"errors"

	"basket/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for list persistence.
var (
	ErrListNotFound = errors.New("list not found")

	// ErrDuplicateItemName is returned when a save would persist two items
	// whose lowercase-trimmed names are equal. This is a hard failure, never
	// silently resolved.
	ErrDuplicateItemName = errors.New("duplicate item name within list")
)

// ListRepository defines the standard operations for list persistence.
// All queries are scoped by the owning user's ID. A list's item array is
// stored embedded, so SaveItems is a single atomic row write.
type ListRepository interface {
	// FindByID retrieves a single list owned by the given user.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.List, error)

	// FindByCategory retrieves every list of the user within one category.
	FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.List, error)

	// FindByItemID retrieves the list of the user containing the given item.
	FindByItemID(ctx context.Context, userID, itemID uuid.UUID) (*entity.List, error)

	// ExistsByName reports whether the user already owns a list with the given
	// name (exact match).
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Create persists a new list with its initial items.
	Create(ctx context.Context, list *entity.List) error

	// SaveItems replaces the item array of a list in one atomic write.
	// It fails with ErrDuplicateItemName if the array violates name uniqueness.
	SaveItems(ctx context.Context, userID, listID uuid.UUID, items []entity.Item) error

	// Delete removes a list owned by the given user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteByCategory removes every list of the user within one category and
	// returns the number of lists removed.
	DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}
