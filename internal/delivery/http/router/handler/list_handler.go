package handler

import (
	"net/http"
	"time"

	"basket/internal/delivery/http/middleware"
	"basket/internal/delivery/http/response"
	"basket/internal/domain/entity"
	"basket/internal/domain/service"
	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListHandler holds dependencies for list and item handlers.
type ListHandler struct {
	uc    usecase.ListUsecase
	qrSvc service.QRCodeService
}

// NewListHandler is the constructor for ListHandler, injected by Fx.
func NewListHandler(uc usecase.ListUsecase, qrSvc service.QRCodeService) *ListHandler {
	return &ListHandler{
		uc:    uc,
		qrSvc: qrSvc,
	}
}

type listPayload struct {
	ID         uuid.UUID     `json:"id"`
	CategoryID uuid.UUID     `json:"categoryId"`
	Name       string        `json:"name"`
	Items      []entity.Item `json:"items"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func toListPayload(list *entity.List) *listPayload {
	if list == nil {
		return nil
	}

	items := list.Items
	if items == nil {
		items = []entity.Item{}
	}

	return &listPayload{
		ID:         list.ID,
		CategoryID: list.CategoryID,
		Name:       list.Name,
		Items:      items,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}
}

// ListsByCategory returns every list of the user within one category.
func (h *ListHandler) ListsByCategory(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid category id")
	}

	lists, err := h.uc.ListsByCategory(c.Request().Context(), userID, categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	payload := make([]*listPayload, 0, len(lists))
	for _, list := range lists {
		payload = append(payload, toListPayload(list))
	}

	return response.Success(c, http.StatusOK, payload, "")
}

// CreateList adds a new list with its initial items to a category.
func (h *ListHandler) CreateList(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid category id")
	}

	var input *usecase.CreateListInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.uc.CreateList(c.Request().Context(), userID, categoryID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toListPayload(list), "List created successfully")
}

// DeleteList removes a list and all its items.
func (h *ListHandler) DeleteList(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid list id")
	}

	if err := h.uc.DeleteList(c.Request().Context(), userID, listID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "List deleted successfully")
}

// MergeItems reconciles a batch of item descriptors into an existing list.
func (h *ListHandler) MergeItems(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	listID, err := uuid.Parse(c.Param("listID"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid list id")
	}

	var input *usecase.MergeItemsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid items input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.uc.MergeItems(c.Request().Context(), userID, listID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toListPayload(list), "List updated successfully")
}

// UpdateItem edits a single item in place.
func (h *ListHandler) UpdateItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	listID, err := uuid.Parse(c.Param("listID"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid list id")
	}
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid item id")
	}

	var input *usecase.UpdateItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.uc.UpdateItem(c.Request().Context(), userID, listID, itemID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toListPayload(list), "Item updated successfully")
}

// ToggleItem flips the completion flag of an item, located by ID alone.
func (h *ListHandler) ToggleItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid item id")
	}

	item, err := h.uc.ToggleItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Item toggled successfully")
}

// DeleteItem removes one item from a list.
func (h *ListHandler) DeleteItem(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid list id")
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid item id")
	}

	list, err := h.uc.DeleteItem(c.Request().Context(), userID, listID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toListPayload(list), "Item deleted successfully")
}

// ListQRCode renders a PNG QR code encoding the share URL of a list. The
// ownership check runs first so foreign lists stay invisible.
func (h *ListHandler) ListQRCode(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	listID, err := uuid.Parse(c.Param("listId"))
	if err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Invalid list id")
	}

	if _, err := h.uc.GetList(c.Request().Context(), userID, listID); err != nil {
		return errors.WithStack(err)
	}

	png, err := h.qrSvc.GenerateListQR(listID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
