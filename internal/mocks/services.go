package mocks

import (
	"context"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/service"
	"github.com/ecommerce-system/ecommerce-api/internal/service/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserService is a mock of service.UserService.
type UserService struct {
	mock.Mock
}

var _ service.UserService = (*UserService)(nil)

func (m *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserService) CreateUser(ctx context.Context, email, name string) (*domain.User, error) {
	args := m.Called(ctx, email, name)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserService) RegisterUser(
	ctx context.Context,
	userID uuid.UUID,
	email, name string,
) (*domain.User, error) {
	args := m.Called(ctx, userID, email, name)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// CatalogService is a mock of service.CatalogService.
type CatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*CatalogService)(nil)

func (m *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, limit, offset int) (*service.ProductPage, error) {
	args := m.Called(ctx, limit, offset)
	if p, ok := args.Get(0).(*service.ProductPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogService) CreateProduct(
	ctx context.Context,
	name, description string,
	priceCents int64,
	stock int,
) (*domain.Product, error) {
	args := m.Called(ctx, name, description, priceCents, stock)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogService) CheckAvailability(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
) (*service.Availability, error) {
	args := m.Called(ctx, productID, quantity)
	if a, ok := args.Get(0).(*service.Availability); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

// TokenVerifier is a mock of auth.TokenVerifier.
type TokenVerifier struct {
	mock.Mock
}

var _ auth.TokenVerifier = (*TokenVerifier)(nil)

func (m *TokenVerifier) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if c, ok := args.Get(0).(*auth.Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
