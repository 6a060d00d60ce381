package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is an item in the catalog. Stock is the number of units on hand as
// recorded by the inventory system; this service only reads it.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct creates a Product with a fresh ID and UTC timestamps.
func NewProduct(name, description string, priceCents int64, stock int) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		PriceCents:  priceCents,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if p.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyProductName)
	}

	if len(p.Name) > MaxNameLength {
		return NewValidationError("name", "is too long", ErrNameTooLong)
	}

	if p.PriceCents < 0 {
		return NewValidationError("price_cents", "cannot be negative", ErrNegativePrice)
	}

	if p.Stock < 0 {
		return NewValidationError("stock", "cannot be negative", ErrNegativeStock)
	}

	return nil
}

// CheckStock reports whether quantity units can be supplied from current
// stock. It returns a PRODUCT_OUT_OF_STOCK business error when they cannot.
// Stock is never modified.
func (p *Product) CheckStock(quantity int) error {
	if quantity <= 0 {
		return NewValidationError("quantity", "must be greater than zero", ErrInvalidQuantity)
	}

	if quantity > p.Stock {
		return NewProductOutOfStockErrorWithMessage(fmt.Sprintf(
			"product %s has %d units available, %d requested",
			p.ID, p.Stock, quantity,
		))
	}

	return nil
}
