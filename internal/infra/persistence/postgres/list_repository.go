package postgres

import (
	"context"
	"fmt"

	"basket/internal/domain/entity"
	domainerrors "basket/internal/domain/errors"
	"basket/internal/domain/reconcile"
	"basket/internal/domain/repository"
	"basket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listRepository implements the domain.ListRepository interface using GORM.
// The item array is stored in a jsonb column, so every item mutation is a
// single row write and the list document can never be half-updated.
type listRepository struct {
	db *gorm.DB
}

// NewListRepository is the constructor for listRepository.
func NewListRepository(db *gorm.DB) repository.ListRepository {
	return &listRepository{db: db}
}

// FindByID retrieves a single list owned by the given user.
func (repo *listRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.List, error) {
	var listM model.ListModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&listM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListNotFound
		}

		return nil, errors.Wrap(err, "failed to find list by id")
	}

	return toListDomain(&listM), nil
}

// FindByCategory retrieves every list of the user within one category.
func (repo *listRepository) FindByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.List, error) {
	var listModels []model.ListModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Order("created_at ASC").
		Find(&listModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list lists by category")
	}

	lists := make([]*entity.List, 0, len(listModels))
	for i := range listModels {
		lists = append(lists, toListDomain(&listModels[i]))
	}

	return lists, nil
}

// FindByItemID retrieves the list of the user containing the given item,
// using a jsonb containment match on the items column.
func (repo *listRepository) FindByItemID(ctx context.Context, userID, itemID uuid.UUID) (*entity.List, error) {
	containment := fmt.Sprintf(`[{"id": %q}]`, itemID.String())

	var listM model.ListModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND items @> ?", userID, containment).
		First(&listM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListNotFound
		}

		return nil, errors.Wrap(err, "failed to find list by item id")
	}

	return toListDomain(&listM), nil
}

// ExistsByName reports whether the user already owns a list with the given
// name (exact match).
func (repo *listRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ListModel{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count lists by name")
	}

	return count > 0, nil
}

// Create persists a new list with its initial items.
func (repo *listRepository) Create(ctx context.Context, list *entity.List) error {
	if name, dup := reconcile.FindDuplicateName(list.Items); dup {
		return errors.Wrapf(repository.ErrDuplicateItemName, "item %q", name)
	}

	listM := fromListDomain(list)

	if err := repo.db.WithContext(ctx).Create(listM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrListExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create list")
	}

	list.ID = listM.ID
	list.CreatedAt = listM.CreatedAt
	list.UpdatedAt = listM.UpdatedAt

	return nil
}

// SaveItems replaces the item array of a list in one atomic write.
func (repo *listRepository) SaveItems(ctx context.Context, userID, listID uuid.UUID, items []entity.Item) error {
	if name, dup := reconcile.FindDuplicateName(items); dup {
		return errors.Wrapf(repository.ErrDuplicateItemName, "item %q", name)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ListModel{}).
		Where("user_id = ? AND id = ?", userID, listID).
		Update("items", fromItemsDomain(items))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save list items")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListNotFound
	}

	return nil
}

// Delete removes a list owned by the given user.
func (repo *listRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.ListModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete list")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListNotFound
	}

	return nil
}

// DeleteByCategory removes every list of the user within one category.
func (repo *listRepository) DeleteByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&model.ListModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete lists by category")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toListDomain(data *model.ListModel) *entity.List {
	if data == nil {
		return nil
	}

	items := make([]entity.Item, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.Item{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Completed: item.Completed,
		})
	}

	return &entity.List{
		ID:         data.ID,
		UserID:     data.UserID,
		CategoryID: data.CategoryID,
		Name:       data.Name,
		Items:      items,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromListDomain(data *entity.List) *model.ListModel {
	if data == nil {
		return nil
	}

	return &model.ListModel{
		ID:         data.ID,
		UserID:     data.UserID,
		CategoryID: data.CategoryID,
		Name:       data.Name,
		Items:      fromItemsDomain(data.Items),
	}
}

func fromItemsDomain(items []entity.Item) []model.ItemRecord {
	records := make([]model.ItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, model.ItemRecord{
			ID:        item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Completed: item.Completed,
		})
	}

	return records
}
