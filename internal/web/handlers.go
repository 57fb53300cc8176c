package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"inventory-catalog/internal/catalog"
	"inventory-catalog/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	itemsPath = "/web/items"

	msgFetchFailed = "Unable to fetch items from inventory service."
)

// InventoryAPI is the slice of the catalog client the pages use
type InventoryAPI interface {
	ListItems(ctx context.Context) catalog.Result[[]domain.Item]
	SearchItems(ctx context.Context, query string) catalog.Result[[]domain.Item]
	GetItem(ctx context.Context, id int64) catalog.Result[domain.Item]
	CreateItem(ctx context.Context, payload catalog.ItemPayload) catalog.Result[domain.Item]
	UpdateItem(ctx context.Context, id int64, payload catalog.ItemPayload) catalog.Result[domain.Item]
	DeleteItem(ctx context.Context, id int64) catalog.Result[struct{}]
}

// Server renders the catalog pages. It holds no item state of its own; every
// page reflects a fresh round-trip to the inventory API.
type Server struct {
	api       InventoryAPI
	templates *Templates
	logger    *zap.Logger
}

func NewServer(api InventoryAPI, templates *Templates, logger *zap.Logger) *Server {
	return &Server{api: api, templates: templates, logger: logger}
}

// RegisterRoutes mounts / and the /web/items pages
func (s *Server) RegisterRoutes(router gin.IRoutes) {
	router.GET("/", s.Index)
	router.GET(itemsPath, s.ListItems)
	router.GET(itemsPath+"/create", s.CreateForm)
	router.POST(itemsPath+"/create", s.CreateItem)
	router.GET(itemsPath+"/edit/:id", s.EditForm)
	router.POST(itemsPath+"/edit/:id", s.UpdateItem)
	router.GET(itemsPath+"/delete/:id", s.DeleteConfirm)
	router.POST(itemsPath+"/delete/:id", s.DeleteItem)
	router.GET(itemsPath+"/view", s.ViewForm)
	router.GET(itemsPath+"/view/search", s.ViewItem)
}

func (s *Server) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, itemsPath)
}

// ListItems handles GET /web/items, filtering by name when q is present
func (s *Server) ListItems(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var result catalog.Result[[]domain.Item]
	if query != "" {
		result = s.api.SearchItems(c.Request.Context(), query)
	} else {
		result = s.api.ListItems(c.Request.Context())
	}

	data := &pageData{Title: "Items", Query: query, Items: result.Value}
	if !result.OK() {
		data.Items = nil
		data.Error = msgFetchFailed
	}
	s.templates.Render(c, http.StatusOK, pageItems, data)
}

func (s *Server) CreateForm(c *gin.Context) {
	s.templates.Render(c, http.StatusOK, pageCreateItem, &pageData{Title: "New item"})
}

// CreateItem handles POST /web/items/create
func (s *Server) CreateItem(c *gin.Context) {
	form, payload, err := bindItemForm(c)
	if err != nil {
		s.templates.Render(c, http.StatusBadRequest, pageCreateItem, &pageData{Title: "New item", Error: err.Error(), Form: form})
		return
	}

	result := s.api.CreateItem(c.Request.Context(), payload)
	switch result.Outcome {
	case catalog.Success:
		c.Redirect(http.StatusSeeOther, itemsPath)
	case catalog.Conflict, catalog.Invalid:
		s.renderListWithMessage(c, result.Message)
	default:
		s.renderListWithMessage(c, "Unexpected error: "+result.Message)
	}
}

// EditForm handles GET /web/items/edit/:id
func (s *Server) EditForm(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	result := s.api.GetItem(c.Request.Context(), id)
	switch result.Outcome {
	case catalog.Success:
		s.templates.Render(c, http.StatusOK, pageEditItem, &pageData{
			Title:  "Edit item",
			ItemID: strconv.FormatInt(id, 10),
			Form:   formFromItem(result.Value),
		})
	case catalog.NotFound:
		s.renderListWithMessage(c, notFoundMessage(id))
	default:
		s.renderListWithMessage(c, msgFetchFailed)
	}
}

// UpdateItem handles POST /web/items/edit/:id. Rejections that the user can fix
// keep them on the form with what they typed.
func (s *Server) UpdateItem(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	editPage := func(status int, form itemForm, message string) {
		s.templates.Render(c, status, pageEditItem, &pageData{
			Title:  "Edit item",
			Error:  message,
			ItemID: strconv.FormatInt(id, 10),
			Form:   form,
		})
	}

	form, payload, err := bindItemForm(c)
	if err != nil {
		editPage(http.StatusBadRequest, form, err.Error())
		return
	}

	result := s.api.UpdateItem(c.Request.Context(), id, payload)
	switch result.Outcome {
	case catalog.Success:
		c.Redirect(http.StatusSeeOther, itemsPath)
	case catalog.NotFound:
		s.renderListWithMessage(c, notFoundMessage(id))
	case catalog.Conflict, catalog.Invalid:
		editPage(http.StatusOK, form, result.Message)
	default:
		editPage(http.StatusOK, form, "Unable to update item: inventory service unavailable.")
	}
}

// DeleteConfirm handles GET /web/items/delete/:id
func (s *Server) DeleteConfirm(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	result := s.api.GetItem(c.Request.Context(), id)
	switch result.Outcome {
	case catalog.Success:
		item := result.Value
		s.templates.Render(c, http.StatusOK, pageDeleteItem, &pageData{Title: "Delete item", Item: &item})
	case catalog.NotFound:
		s.renderListWithMessage(c, notFoundMessage(id))
	default:
		s.renderListWithMessage(c, msgFetchFailed)
	}
}

// DeleteItem handles POST /web/items/delete/:id
func (s *Server) DeleteItem(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}

	result := s.api.DeleteItem(c.Request.Context(), id)
	switch result.Outcome {
	case catalog.Success:
		c.Redirect(http.StatusSeeOther, itemsPath)
	case catalog.NotFound:
		s.renderListWithMessage(c, notFoundMessage(id))
	default:
		s.renderListWithMessage(c, "Unable to delete item: inventory service unavailable.")
	}
}

func (s *Server) ViewForm(c *gin.Context) {
	s.templates.Render(c, http.StatusOK, pageViewForm, &pageData{Title: "Find item"})
}

// ViewItem handles GET /web/items/view/search?id=
func (s *Server) ViewItem(c *gin.Context) {
	raw := c.Query("id")
	data := &pageData{Title: "Item"}

	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		data.Error = fmt.Sprintf("Invalid item ID: %s", raw)
		s.templates.Render(c, http.StatusBadRequest, pageViewItem, data)
		return
	}

	result := s.api.GetItem(c.Request.Context(), id)
	switch result.Outcome {
	case catalog.Success:
		item := result.Value
		data.Item = &item
	case catalog.NotFound:
		data.Error = notFoundMessage(id)
	default:
		data.Error = msgFetchFailed
	}
	s.templates.Render(c, http.StatusOK, pageViewItem, data)
}

// renderListWithMessage re-fetches the list so the message is shown next to
// the current state of the catalog
func (s *Server) renderListWithMessage(c *gin.Context, message string) {
	data := &pageData{Title: "Items", Error: message}

	result := s.api.ListItems(c.Request.Context())
	if result.OK() {
		data.Items = result.Value
	} else {
		s.logger.Warn("Could not reload item list", zap.String("outcome", result.Outcome.String()))
	}
	s.templates.Render(c, http.StatusOK, pageItems, data)
}

func (s *Server) pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.renderListWithMessage(c, fmt.Sprintf("Invalid item ID: %s", raw))
		return 0, false
	}
	return id, true
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("Item not found with ID: %d", id)
}

// bindItemForm parses the numeric fields locally; range checks stay with the API
func bindItemForm(c *gin.Context) (itemForm, catalog.ItemPayload, error) {
	var form itemForm
	if err := c.ShouldBind(&form); err != nil {
		return form, catalog.ItemPayload{}, fmt.Errorf("could not read form: %w", err)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if err != nil {
		return form, catalog.ItemPayload{}, errors.New("quantity must be a whole number")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil {
		return form, catalog.ItemPayload{}, errors.New("price must be a number")
	}

	return form, catalog.ItemPayload{
		Name:        form.Name,
		Description: form.Description,
		Quantity:    quantity,
		Price:       price,
	}, nil
}
