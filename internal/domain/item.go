package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers (9.99), not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item represents a catalog record owned by the item store
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// ItemInput carries the client-supplied, mutable fields of an item.
// Quantity and Price are pointers so a missing field can be told apart from zero.
type ItemInput struct {
	Name        string
	Description string
	Quantity    *int
	Price       *decimal.Decimal
}

// Validate checks the input before any store interaction happens
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "name required")
	}
	if in.Quantity == nil {
		return NewValidationError("quantity", "quantity required")
	}
	if *in.Quantity < 0 {
		return NewValidationError("quantity", "quantity must be greater than or equal to 0")
	}
	if in.Price == nil {
		return NewValidationError("price", "price required")
	}
	if in.Price.IsNegative() {
		return NewValidationError("price", "price must be greater than or equal to 0")
	}
	return nil
}

// NewItem builds an unsaved item from validated input
func NewItem(in ItemInput) *Item {
	item := &Item{}
	item.Apply(in)
	return item
}

// Apply overwrites every mutable field; the id is left untouched
func (i *Item) Apply(in ItemInput) {
	i.Name = in.Name
	i.Description = in.Description
	if in.Quantity != nil {
		i.Quantity = *in.Quantity
	}
	if in.Price != nil {
		i.Price = *in.Price
	}
}

// IsNew reports whether the store has not assigned an id yet
func (i *Item) IsNew() bool {
	return i.ID == 0
}

// Clone returns a copy that shares no state with the receiver
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
