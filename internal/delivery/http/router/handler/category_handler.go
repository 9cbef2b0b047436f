package handler

import (
	"net/http"
	"time"

	"basket/internal/delivery/http/middleware"
	"basket/internal/delivery/http/response"
	"basket/internal/domain/entity"
	domainerrors "basket/internal/domain/errors"
	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for category handlers.
type CategoryHandler struct {
	uc usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type categoryPayload struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCategoryPayload(category *entity.Category) *categoryPayload {
	if category == nil {
		return nil
	}

	return &categoryPayload{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}

// ListCategories returns every category of the authenticated user.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	categories, err := h.uc.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	payload := make([]*categoryPayload, 0, len(categories))
	for _, category := range categories {
		payload = append(payload, toCategoryPayload(category))
	}

	return response.Success(c, http.StatusOK, payload, "")
}

// CreateCategory adds a new category for the authenticated user.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var input *usecase.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCategoryPayload(category), "Category created successfully")
}

// DeleteCategory removes a category and every list inside it.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid category id")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), userID, categoryID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

func unauthenticated(c echo.Context) error {
	appErr := domainerrors.ErrUnauthenticated

	return response.Unauthorized(c, appErr.ErrorCode(), appErr.Message())
}
