package usecase

import (
	"context"

	"basket/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// CategoryUsecase defines the interface for category operations. Every
// operation is scoped to the authenticated user.
type CategoryUsecase interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, userID uuid.UUID, input *CreateCategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category and cascades to every list that
	// references it, atomically.
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}
