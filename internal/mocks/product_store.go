package mocks

import (
	"context"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ProductStore is a mock of store.ProductStore.
type ProductStore struct {
	mock.Mock
}

var _ store.ProductStore = (*ProductStore)(nil)

// Create is a mock implementation of store.ProductStore.Create.
func (m *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ProductStore.GetByID.
func (m *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.ProductStore.List.
func (m *ProductStore) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if ps, ok := args.Get(0).([]*domain.Product); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}
