package store

import (
	"context"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/google/uuid"
)

// ProductStore maps catalog products to and from persistent storage.
// Stock is read-only from this application's point of view; Create records
// the initial level supplied by the caller.
type ProductStore interface {
	// Create validates and saves a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID. Returns ErrProductNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// List returns up to limit products ordered by name, skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}
