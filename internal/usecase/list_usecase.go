package usecase

import (
	"context"

	"basket/internal/domain/entity"
	"basket/internal/domain/reconcile"

	"github.com/google/uuid"
)

// CreateListInput defines the data required to create a list with its initial
// items. Items accept both the bare-name and the structured descriptor form.
type CreateListInput struct {
	Name  string                 `json:"name" validate:"required"`
	Items []reconcile.Descriptor `json:"items" validate:"required,min=1"`
}

// MergeItemsInput carries the descriptor batch of a merge call.
type MergeItemsInput struct {
	Items []reconcile.Descriptor `json:"items" validate:"required,min=1"`
}

// UpdateItemInput defines a direct single-item update. Unlike a merge there is
// no accumulation: the fields replace the item's current values.
type UpdateItemInput struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required"`
}

// ListUsecase defines the interface for list and item operations. Every
// operation is scoped to the authenticated user.
type ListUsecase interface {
	ListsByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.List, error)
	CreateList(ctx context.Context, userID, categoryID uuid.UUID, input *CreateListInput) (*entity.List, error)
	DeleteList(ctx context.Context, userID, listID uuid.UUID) error

	// MergeItems reconciles a descriptor batch into the list. Unit conflicts
	// abort the whole batch and surface as an error carrying the conflict list.
	MergeItems(ctx context.Context, userID, listID uuid.UUID, input *MergeItemsInput) (*entity.List, error)

	// UpdateItem renames/edits one item directly, rejecting case-insensitive
	// name collisions with any other item in the list.
	UpdateItem(ctx context.Context, userID, listID, itemID uuid.UUID, input *UpdateItemInput) (*entity.List, error)

	// ToggleItem flips the completion flag of the item, located in whichever
	// list of the user contains it.
	ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Item, error)

	// DeleteItem removes one item and returns the updated list.
	DeleteItem(ctx context.Context, userID, listID, itemID uuid.UUID) (*entity.List, error)

	// GetList retrieves one list owned by the user.
	GetList(ctx context.Context, userID, listID uuid.UUID) (*entity.List, error)
}
