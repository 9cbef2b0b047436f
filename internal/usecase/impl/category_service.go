package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "basket/internal/delivery/context"
	"basket/internal/domain/entity"
	domainerrors "basket/internal/domain/errors"
	"basket/internal/domain/repository"
	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for categoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCategories returns every category owned by the user.
func (srv *categoryService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory creates a category after a case-insensitive duplicate check.
// The storage layer enforces the same invariant with a unique index, so a
// concurrent create still cannot slip a duplicate through.
func (srv *categoryService) CreateCategory(ctx context.Context, userID uuid.UUID, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "category name must not be empty")
	}

	exists, err := srv.categoryRepo.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check category name")
	}
	if exists {
		srv.log(ctx).Warn("Duplicate category rejected", slog.Any("userID", userID), slog.String("name", name))

		return nil, errors.Wrap(domainerrors.ErrCategoryExists, "create category rejected")
	}

	category := &entity.Category{
		UserID: userID,
		Name:   name,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Debug("Category created", slog.Any("userID", userID), slog.Any("categoryID", category.ID))

	return category, nil
}

// DeleteCategory removes a category and every list referencing it in one
// transaction, so a failed parent delete cannot leave orphaned state behind.
func (srv *categoryService) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	srv.log(ctx).Info("Deleting category", slog.Any("userID", userID), slog.Any("categoryID", categoryID))

	var removedLists int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()
		listRepo := repoFactory.ListRepo()

		if _, err := categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return errors.Wrap(domainerrors.ErrCategoryNotFound, "delete category rejected")
			}

			return errors.Wrap(err, "failed to load category for delete")
		}

		deleted, err := listRepo.DeleteByCategory(ctx, userID, categoryID)
		if err != nil {
			return errors.Wrap(err, "failed to cascade delete lists")
		}
		removedLists = deleted

		return categoryRepo.Delete(ctx, userID, categoryID)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to delete category", slog.Any("categoryID", categoryID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute category delete transaction")
	}

	srv.log(ctx).Debug("Category deleted", slog.Any("categoryID", categoryID), slog.Int64("removedLists", removedLists))

	return nil
}
