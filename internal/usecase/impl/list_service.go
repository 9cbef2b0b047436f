package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "basket/internal/delivery/context"
	"basket/internal/domain/entity"
	domainerrors "basket/internal/domain/errors"
	"basket/internal/domain/reconcile"
	"basket/internal/domain/repository"
	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// listService implements the ListUsecase interface. Item mutations are
// computed in memory via the reconcile package and persisted as one atomic
// item-array write, which gives merge batches their all-or-nothing semantics.
type listService struct {
	categoryRepo repository.CategoryRepository
	listRepo     repository.ListRepository
	logger       *slog.Logger
}

// ListServiceParams holds dependencies for listService, injected by Fx.
type ListServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ListRepo     repository.ListRepository
	Logger       *slog.Logger
}

// NewListService is the constructor for listService.
func NewListService(params ListServiceParams) usecase.ListUsecase {
	return &listService{
		categoryRepo: params.CategoryRepo,
		listRepo:     params.ListRepo,
		logger:       params.Logger,
	}
}

func (srv *listService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListsByCategory returns every list of the user within one category.
func (srv *listService) ListsByCategory(ctx context.Context, userID, categoryID uuid.UUID) ([]*entity.List, error) {
	lists, err := srv.listRepo.FindByCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list lists by category")
	}

	return lists, nil
}

// GetList retrieves one list owned by the user.
func (srv *listService) GetList(ctx context.Context, userID, listID uuid.UUID) (*entity.List, error) {
	list, err := srv.listRepo.FindByID(ctx, userID, listID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, errors.Wrap(domainerrors.ErrListNotFound, "list lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load list")
	}

	return list, nil
}

// CreateList creates a list with its initial items inside an existing
// category. The initial batch goes through the same reconciliation as a
// merge, so in-batch duplicates collapse and unit conflicts reject the call.
func (srv *listService) CreateList(ctx context.Context, userID, categoryID uuid.UUID, input *usecase.CreateListInput) (*entity.List, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "list name must not be empty")
	}

	if _, err := srv.categoryRepo.FindByID(ctx, userID, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "create list rejected")
		}

		return nil, errors.Wrap(err, "failed to load category for list create")
	}

	exists, err := srv.listRepo.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check list name")
	}
	if exists {
		return nil, errors.Wrap(domainerrors.ErrListExists, "create list rejected")
	}

	items, conflicts, err := reconcile.NormalizeAll(input.Items)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if len(conflicts) > 0 {
		return nil, errors.Wrap(domainerrors.ErrUnitConflict.WithDetails(conflicts), "create list rejected")
	}

	list := &entity.List{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       name,
		Items:      items,
	}
	if err := srv.listRepo.Create(ctx, list); err != nil {
		return nil, errors.Wrap(err, "failed to create list")
	}

	srv.log(ctx).Debug("List created", slog.Any("userID", userID), slog.Any("listID", list.ID), slog.Int("items", len(items)))

	return list, nil
}

// DeleteList removes a list owned by the user.
func (srv *listService) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	if err := srv.listRepo.Delete(ctx, userID, listID); err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return errors.Wrap(domainerrors.ErrListNotFound, "delete list rejected")
		}

		return errors.Wrap(err, "failed to delete list")
	}

	return nil
}

// MergeItems reconciles a descriptor batch into the list and persists the
// result as one write. Any unit conflict aborts the whole batch; the conflict
// list travels in the returned error's details.
func (srv *listService) MergeItems(ctx context.Context, userID, listID uuid.UUID, input *usecase.MergeItemsInput) (*entity.List, error) {
	list, err := srv.GetList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	merged, conflicts, err := reconcile.Merge(list.Items, input.Items)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if len(conflicts) > 0 {
		srv.log(ctx).Warn("Merge rejected on unit conflicts", slog.Any("listID", listID), slog.Int("conflicts", len(conflicts)))

		return nil, errors.Wrap(domainerrors.ErrUnitConflict.WithDetails(conflicts), "merge rejected")
	}

	if err := srv.saveItems(ctx, userID, list, merged); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Items merged", slog.Any("listID", listID), slog.Int("items", len(merged)))

	return list, nil
}

// UpdateItem edits one item directly. Renaming checks a case-insensitive
// collision against every other item in the list; there is no accumulation.
func (srv *listService) UpdateItem(ctx context.Context, userID, listID, itemID uuid.UUID, input *usecase.UpdateItemInput) (*entity.List, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "item update rejected")
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}

	list, err := srv.GetList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	idx := indexOfItem(list.Items, itemID)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrItemNotFound, "item update rejected")
	}

	if reconcile.NameTakenByOther(list.Items, itemID, name) {
		return nil, errors.Wrap(domainerrors.ErrItemNameTaken, "item update rejected")
	}

	items := make([]entity.Item, len(list.Items))
	copy(items, list.Items)
	items[idx].Name = name
	items[idx].Quantity = input.Quantity
	items[idx].Unit = unit

	if err := srv.saveItems(ctx, userID, list, items); err != nil {
		return nil, err
	}

	return list, nil
}

// ToggleItem flips the completion flag of an item, located in whichever list
// of the user contains it.
func (srv *listService) ToggleItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Item, error) {
	list, err := srv.listRepo.FindByItemID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, errors.Wrap(domainerrors.ErrItemNotFound, "toggle rejected")
		}

		return nil, errors.Wrap(err, "failed to locate item's list")
	}

	idx := indexOfItem(list.Items, itemID)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrItemNotFound, "toggle rejected")
	}

	items := make([]entity.Item, len(list.Items))
	copy(items, list.Items)
	items[idx].Completed = !items[idx].Completed

	if err := srv.saveItems(ctx, userID, list, items); err != nil {
		return nil, err
	}

	item := list.Items[idx]

	return &item, nil
}

// DeleteItem removes one item and returns the updated list.
func (srv *listService) DeleteItem(ctx context.Context, userID, listID, itemID uuid.UUID) (*entity.List, error) {
	list, err := srv.GetList(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	idx := indexOfItem(list.Items, itemID)
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrItemNotFound, "item delete rejected")
	}

	items := make([]entity.Item, 0, len(list.Items)-1)
	items = append(items, list.Items[:idx]...)
	items = append(items, list.Items[idx+1:]...)

	if err := srv.saveItems(ctx, userID, list, items); err != nil {
		return nil, err
	}

	return list, nil
}

// saveItems persists the new item array and reflects it on the entity.
func (srv *listService) saveItems(ctx context.Context, userID uuid.UUID, list *entity.List, items []entity.Item) error {
	if err := srv.listRepo.SaveItems(ctx, userID, list.ID, items); err != nil {
		if errors.Is(err, repository.ErrDuplicateItemName) {
			return errors.Wrap(domainerrors.ErrItemNameTaken, "item array rejected")
		}

		return errors.Wrap(err, "failed to save list items")
	}
	list.Items = items

	return nil
}

func indexOfItem(items []entity.Item, itemID uuid.UUID) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}

	return -1
}
