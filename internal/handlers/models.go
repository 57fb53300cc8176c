package handlers

import (
	"inventory-catalog/internal/domain"

	"github.com/shopspring/decimal"
)

// ItemRequest is the body accepted by create and update
// @Description Client-supplied item fields; the id is always assigned by the server
type ItemRequest struct {
	// Item name, unique across the catalog
	Name string `json:"name" binding:"required" example:"Widget"`

	// Free-form description (optional)
	Description string `json:"description" example:"Blue widget, 10cm"`

	// Units in stock (must be >= 0)
	Quantity *int `json:"quantity" binding:"required,min=0" example:"5"`

	// Unit price (must be >= 0)
	Price *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"9.99"`
}

func (r ItemRequest) toInput() domain.ItemInput {
	return domain.ItemInput{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// ItemResponse mirrors domain.Item for the swagger docs
// @Description A stored catalog item
type ItemResponse struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"name" example:"Widget"`
	Description string  `json:"description" example:"Blue widget, 10cm"`
	Quantity    int     `json:"quantity" example:"5"`
	Price       float64 `json:"price" example:"9.99"`
}

// ErrorResponse represents an error response
// @Description Error body for 400, 404 and 500 responses
type ErrorResponse struct {
	Error   string `json:"error" example:"ValidationError"`
	Message string `json:"message" example:"quantity must be greater than or equal to 0"`
	Details string `json:"details" example:"Field: quantity"`
}
