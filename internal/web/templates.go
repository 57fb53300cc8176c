package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"inventory-catalog/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageItems      = "items.html"
	pageCreateItem = "create-item.html"
	pageEditItem   = "edit-item.html"
	pageDeleteItem = "delete-item.html"
	pageViewForm   = "view-form.html"
	pageViewItem   = "view-item.html"
)

// Templates holds one parsed set per page, each sharing the layout
type Templates struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}
}

// LoadTemplates parses all page templates with the layout
func LoadTemplates(logger *zap.Logger) (*Templates, error) {
	pages := []string{pageItems, pageCreateItem, pageEditItem, pageDeleteItem, pageViewForm, pageViewItem}

	ts := &Templates{templates: make(map[string]*template.Template), logger: logger}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcMap()).ParseFS(templateFS,
			"templates/layout.html",
			"templates/item-form.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		ts.templates[page] = tmpl
	}
	return ts, nil
}

// Render writes the page wrapped in the layout
func (ts *Templates) Render(c *gin.Context, status int, name string, data *pageData) {
	tmpl, ok := ts.templates[name]
	if !ok {
		c.String(http.StatusInternalServerError, "template not found")
		return
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, "layout", data); err != nil {
		ts.logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
	}
}

// pageData is shared by every page; each template reads the fields it needs
type pageData struct {
	Title  string
	Error  string
	Query  string
	Items  []domain.Item
	Item   *domain.Item
	ItemID string
	Form   itemForm
}

// itemForm keeps the raw submitted strings so a rejected form re-renders as typed
type itemForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Quantity    string `form:"quantity"`
	Price       string `form:"price"`
}

func formFromItem(item domain.Item) itemForm {
	return itemForm{
		Name:        item.Name,
		Description: item.Description,
		Quantity:    fmt.Sprintf("%d", item.Quantity),
		Price:       item.Price.StringFixed(2),
	}
}
