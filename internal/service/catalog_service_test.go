package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/mocks"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/cache"
	"github.com/ecommerce-system/ecommerce-api/internal/service"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogService(t *testing.T, products *mocks.ProductStore) *service.CatalogServiceImpl {
	t.Helper()
	svc, err := service.NewCatalogService(products,
		cache.NewLRU[uuid.UUID, *domain.Product](16, time.Minute), quietLogger())
	require.NoError(t, err)
	return svc
}

func TestCatalogService_GetProduct(t *testing.T) {
	id := uuid.New()
	product := &domain.Product{ID: id, Name: "Widget", PriceCents: 1999, Stock: 3}

	t.Run("cached after first read", func(t *testing.T) {
		products := new(mocks.ProductStore)
		products.On("GetByID", mock.Anything, id).Return(product, nil).Once()
		svc := newCatalogService(t, products)

		for i := 0; i < 3; i++ {
			got, err := svc.GetProduct(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, "Widget", got.Name)
		}
		products.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		products := new(mocks.ProductStore)
		products.On("GetByID", mock.Anything, id).Return(nil, store.ErrProductNotFound)
		svc := newCatalogService(t, products)

		_, err := svc.GetProduct(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Empty(t, domain.ErrorCodeOf(err))
	})
}

func TestCatalogService_ListProducts(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: service.DefaultPageSize, wantOffset: 0},
		{name: "negative limit", limit: -5, offset: 10, wantLimit: service.DefaultPageSize, wantOffset: 10},
		{name: "capped", limit: 1000, offset: 0, wantLimit: service.MaxPageSize, wantOffset: 0},
		{name: "negative offset", limit: 5, offset: -1, wantLimit: 5, wantOffset: 0},
		{name: "passthrough", limit: 50, offset: 100, wantLimit: 50, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(mocks.ProductStore)
			products.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).
				Return([]*domain.Product{{ID: uuid.New(), Name: "Widget"}}, nil)
			svc := newCatalogService(t, products)

			page, err := svc.ListProducts(context.Background(), tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
			assert.Len(t, page.Products, 1)
			products.AssertExpectations(t)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		products := new(mocks.ProductStore)
		boom := errors.New("boom")
		products.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)
		svc := newCatalogService(t, products)

		_, err := svc.ListProducts(context.Background(), 10, 0)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCatalogService_CreateProduct(t *testing.T) {
	products := new(mocks.ProductStore)
	products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	svc := newCatalogService(t, products)

	p, err := svc.CreateProduct(context.Background(), "Widget", "A widget", 1999, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Stock)

	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)

	_, err = svc.CreateProduct(context.Background(), "Widget", "", -1, 4)
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestCatalogService_CheckAvailability(t *testing.T) {
	id := uuid.New()

	t.Run("enough stock", func(t *testing.T) {
		products := new(mocks.ProductStore)
		products.On("GetByID", mock.Anything, id).
			Return(&domain.Product{ID: id, Name: "Widget", Stock: 5}, nil)
		svc := newCatalogService(t, products)

		a, err := svc.CheckAvailability(context.Background(), id, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, a.Requested)
		assert.Equal(t, 5, a.Available)
		assert.Equal(t, id, a.ProductID)
	})

	t.Run("out of stock", func(t *testing.T) {
		products := new(mocks.ProductStore)
		products.On("GetByID", mock.Anything, id).
			Return(&domain.Product{ID: id, Name: "Widget", Stock: 2}, nil)
		svc := newCatalogService(t, products)

		a, err := svc.CheckAvailability(context.Background(), id, 3)
		assert.Nil(t, a)
		assert.ErrorIs(t, err, domain.ErrProductOutOfStock)
		assert.Equal(t, domain.CodeProductOutOfStock, domain.ErrorCodeOf(err))
	})

	t.Run("always reads fresh stock", func(t *testing.T) {
		products := new(mocks.ProductStore)
		products.On("GetByID", mock.Anything, id).
			Return(&domain.Product{ID: id, Name: "Widget", Stock: 10}, nil).Once()
		products.On("GetByID", mock.Anything, id).
			Return(&domain.Product{ID: id, Name: "Widget", Stock: 0}, nil).Once()
		svc := newCatalogService(t, products)

		_, err := svc.GetProduct(context.Background(), id)
		require.NoError(t, err)

		_, err = svc.CheckAvailability(context.Background(), id, 1)
		assert.ErrorIs(t, err, domain.ErrProductOutOfStock)

		// The fresh read replaced the cached copy.
		got, err := svc.GetProduct(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)
		products.AssertExpectations(t)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		products := new(mocks.ProductStore)
		svc := newCatalogService(t, products)

		_, err := svc.CheckAvailability(context.Background(), id, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		products := new(mocks.ProductStore)
		products.On("GetByID", mock.Anything, id).Return(nil, store.ErrProductNotFound)
		svc := newCatalogService(t, products)

		_, err := svc.CheckAvailability(context.Background(), id, 1)
		assert.ErrorIs(t, err, store.ErrProductNotFound)
	})
}
