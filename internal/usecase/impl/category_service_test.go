package impl

import (
	"context"
	"testing"

	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService(factory *fakeRepoFactory) usecase.CategoryUsecase {
	return NewCategoryService(CategoryServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		CategoryRepo: factory.cats,
		Logger:       testLogger(),
	})
}

func TestCreateCategory_TrimsAndStores(t *testing.T) {
	svc := newCategoryService(newFakeRepoFactory())
	userID := uuid.New()

	category, err := svc.CreateCategory(context.Background(), userID, &usecase.CreateCategoryInput{
		Name: "  Groceries  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", category.Name)
	assert.NotZero(t, category.ID)

	categories, err := svc.ListCategories(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestCreateCategory_RejectsEmptyName(t *testing.T) {
	svc := newCategoryService(newFakeRepoFactory())

	_, err := svc.CreateCategory(context.Background(), uuid.New(), &usecase.CreateCategoryInput{
		Name: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", appErrorCode(t, err))
}

func TestCreateCategory_DuplicateNameIsCaseInsensitive(t *testing.T) {
	svc := newCategoryService(newFakeRepoFactory())
	userID := uuid.New()

	_, err := svc.CreateCategory(context.Background(), userID, &usecase.CreateCategoryInput{Name: "Groceries"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), userID, &usecase.CreateCategoryInput{Name: "gRoCeRiEs"})
	require.Error(t, err)
	assert.Equal(t, "CATEGORY_EXISTS", appErrorCode(t, err))

	// A different user may reuse the name.
	_, err = svc.CreateCategory(context.Background(), uuid.New(), &usecase.CreateCategoryInput{Name: "Groceries"})
	assert.NoError(t, err)
}

func TestDeleteCategory_CascadesToLists(t *testing.T) {
	factory := newFakeRepoFactory()
	catSvc := newCategoryService(factory)
	listSvc := newListService(factory)
	userID := uuid.New()

	category, err := catSvc.CreateCategory(context.Background(), userID, &usecase.CreateCategoryInput{Name: "Weekly"})
	require.NoError(t, err)

	_, err = listSvc.CreateList(context.Background(), userID, category.ID, &usecase.CreateListInput{
		Name:  "Saturday run",
		Items: descriptors("milk", "bread"),
	})
	require.NoError(t, err)

	require.NoError(t, catSvc.DeleteCategory(context.Background(), userID, category.ID))

	_, err = catSvc.ListCategories(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, factory.lists.lists, "lists in the category must be gone")
}

func TestDeleteCategory_NotFound(t *testing.T) {
	svc := newCategoryService(newFakeRepoFactory())

	err := svc.DeleteCategory(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "CATEGORY_NOT_FOUND", appErrorCode(t, err))
}
