package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/cache"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/ecommerce-system/ecommerce-api/internal/redact"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
)

// Page size bounds for ListProducts.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Availability is the result of a satisfiable stock check.
type Availability struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

// ProductPage is one page of the catalog, with the limit and offset actually
// applied after clamping.
type ProductPage struct {
	Products []*domain.Product
	Limit    int
	Offset   int
}

// CatalogService provides read access to the product catalog.
type CatalogService interface {
	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error)

	// ListProducts returns a page of products ordered by name.
	ListProducts(ctx context.Context, limit, offset int) (*ProductPage, error)

	// CreateProduct adds a product with its initial stock level.
	CreateProduct(ctx context.Context, name, description string, priceCents int64, stock int) (*domain.Product, error)

	// CheckAvailability reports whether quantity units can be supplied.
	// Returns a PRODUCT_OUT_OF_STOCK business error when they cannot.
	CheckAvailability(ctx context.Context, productID uuid.UUID, quantity int) (*Availability, error)
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	productStore store.ProductStore
	products     *cache.Loader[uuid.UUID, *domain.Product]
	logger       *slog.Logger
}

var _ CatalogService = (*CatalogServiceImpl)(nil)

// NewCatalogService creates a CatalogService. productCache may be nil to
// disable caching.
func NewCatalogService(
	productStore store.ProductStore,
	productCache cache.Cache[uuid.UUID, *domain.Product],
	logger *slog.Logger,
) (*CatalogServiceImpl, error) {
	if productStore == nil {
		return nil, fmt.Errorf("%w: productStore", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogServiceImpl{
		productStore: productStore,
		products:     cache.NewLoader(productCache),
		logger:       logger.With(slog.String("component", "catalog_service")),
	}, nil
}

// GetProduct implements CatalogService.GetProduct.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.products.Load(ctx, productID, s.productStore.GetByID)
	if err != nil {
		return nil, s.lookupError(ctx, "get_product", productID, err)
	}
	return copyProduct(product), nil
}

// ListProducts implements CatalogService.ListProducts. A non-positive limit
// selects DefaultPageSize, larger limits are capped at MaxPageSize and a
// negative offset is treated as zero.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context, limit, offset int) (*ProductPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit, offset = clampPage(limit, offset)

	products, err := s.productStore.List(ctx, limit, offset)
	if err != nil {
		log.Error("failed to list products",
			slog.String("error", redact.Error(err)),
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, NewServiceError("list_products", "failed to list products", err)
	}

	return &ProductPage{Products: products, Limit: limit, Offset: offset}, nil
}

// CreateProduct implements CatalogService.CreateProduct.
func (s *CatalogServiceImpl) CreateProduct(
	ctx context.Context,
	name, description string,
	priceCents int64,
	stock int,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := domain.NewProduct(name, description, priceCents, stock)
	if err != nil {
		log.Debug("invalid product data", slog.String("error", redact.Error(err)))
		return nil, err
	}

	if err := s.productStore.Create(ctx, product); err != nil {
		log.Error("failed to save product", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("create_product", "failed to save product", err)
	}

	s.products.Prime(product.ID, copyProduct(product))
	log.Info("product created", slog.String("product_id", product.ID.String()))
	return product, nil
}

// CheckAvailability implements CatalogService.CheckAvailability. Stock is
// always read from the store; the fresh record then replaces any cached copy.
func (s *CatalogServiceImpl) CheckAvailability(
	ctx context.Context,
	productID uuid.UUID,
	quantity int,
) (*Availability, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be greater than zero", domain.ErrInvalidQuantity)
	}

	product, err := s.productStore.GetByID(ctx, productID)
	if err != nil {
		return nil, s.lookupError(ctx, "check_availability", productID, err)
	}
	s.products.Prime(productID, copyProduct(product))

	if err := product.CheckStock(quantity); err != nil {
		log.Info("stock check failed",
			slog.String("product_id", productID.String()),
			slog.Int("requested", quantity),
			slog.Int("available", product.Stock))
		return nil, err
	}

	return &Availability{
		ProductID: productID,
		Requested: quantity,
		Available: product.Stock,
	}, nil
}

func (s *CatalogServiceImpl) lookupError(ctx context.Context, op string, productID uuid.UUID, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("product not found", slog.String("product_id", productID.String()))
		return fmt.Errorf("product %s: %w", productID, err)
	}
	log.Error("failed to retrieve product",
		slog.String("error", redact.Error(err)),
		slog.String("product_id", productID.String()))
	return NewServiceError(op, "failed to retrieve product", err)
}

func clampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func copyProduct(p *domain.Product) *domain.Product {
	c := *p
	return &c
}
