package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"inventory-catalog/internal/domain"
	"inventory-catalog/internal/service"
	"inventory-catalog/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ItemHandler struct {
	logger  *zap.Logger
	service *service.ItemService
}

func NewItemHandler(logger *zap.Logger, svc *service.ItemService) *ItemHandler {
	return &ItemHandler{
		logger:  logger,
		service: svc,
	}
}

// RegisterRoutes mounts the item endpoints on a group such as /items or /api/items
func (h *ItemHandler) RegisterRoutes(items *gin.RouterGroup) {
	items.GET("", h.ListItems)
	items.GET("/search", h.SearchItems)
	items.GET("/:id", h.GetItem)
	items.POST("", h.CreateItem)
	items.PUT("/:id", h.UpdateItem)
	items.DELETE("/:id", h.DeleteItem)
}

// ListItems handles GET /items
// @Summary      List all items
// @Description  Returns every item ordered by id. An empty catalog answers 204 with no body.
// @Tags         items
// @Produce      json
// @Success      200  {array}   ItemResponse
// @Success      204  "No items stored"
// @Failure      500  {object}  ErrorResponse
// @Router       /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondList(c, items)
}

// SearchItems handles GET /items/search
// @Summary      Search items by name
// @Description  Case-insensitive substring match on the name. No matches answers 204.
// @Tags         items
// @Produce      json
// @Param        q    query     string  false  "Name fragment"
// @Success      200  {array}   ItemResponse
// @Success      204  "No matching items"
// @Failure      500  {object}  ErrorResponse
// @Router       /items/search [get]
func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.service.SearchByName(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondList(c, items)
}

// GetItem handles GET /items/:id
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  ItemResponse
// @Failure      400  {object}  ErrorResponse  "Non-numeric id"
// @Failure      404  {object}  ErrorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem handles POST /items
// @Summary      Create an item
// @Description  Names are unique. A name already in use answers 409 with the message as plain text.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      ItemRequest  true  "Item to create"
// @Success      201      {object}  ItemResponse
// @Failure      400      {object}  ErrorResponse  "Missing field or negative quantity/price"
// @Failure      409      {string}  string         "Item with name 'Widget' already exists!"
// @Failure      500      {object}  ErrorResponse
// @Router       /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /items/:id
// @Summary      Replace an item
// @Description  Overwrites name, description, quantity and price; the id never changes.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path      int          true  "Item ID"
// @Param        request  body      ItemRequest  true  "New field values"
// @Success      200      {object}  ItemResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {string}  string  "Item with name 'Widget' already exists!"
// @Failure      500      {object}  ErrorResponse
// @Router       /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id
// @Summary      Delete an item
// @Tags         items
// @Param        id   path  int  true  "Item ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  ErrorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) respondList(c *gin.Context, items []domain.Item) {
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = c.Error(errors.NewInvalidRequest("invalid item id", "ID: "+raw))
		return 0, false
	}
	return id, true
}

// bind decodes the body and runs both binding tags and domain validation, so
// nothing invalid reaches the service
func (h *ItemHandler) bind(c *gin.Context) (ItemRequest, bool) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		_ = c.Error(bindingError(err))
		return req, false
	}
	if err := req.toInput().Validate(); err != nil {
		_ = c.Error(h.toStandardError(err))
		return req, false
	}
	return req, true
}

func (h *ItemHandler) fail(c *gin.Context, err error) {
	_ = c.Error(h.toStandardError(err))
}

func (h *ItemHandler) toStandardError(err error) *errors.StandardError {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var duplicateErr *domain.DuplicateNameError

	switch {
	case stderrors.As(err, &validationErr):
		return errors.NewValidationError(validationErr.Message, validationErr.Field)
	case stderrors.As(err, &notFoundErr):
		return errors.NewItemNotFound(notFoundErr.ID)
	case stderrors.As(err, &duplicateErr):
		return errors.NewDuplicateName(duplicateErr.Name)
	default:
		h.logger.Error("Item operation failed", zap.Error(err))
		return errors.NewInternalError("internal server error", nil)
	}
}

func bindingError(err error) *errors.StandardError {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return errors.NewValidationError(field+" required", field)
		case "min":
			return errors.NewValidationError(field+" must be greater than or equal to "+fe.Param(), field)
		default:
			return errors.NewValidationError(field+" is invalid", field)
		}
	}
	return errors.NewInvalidRequest("malformed request body", err.Error())
}
