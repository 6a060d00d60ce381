package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/ecommerce-system/ecommerce-api/internal/redact"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
)

// PostgresProductStore implements store.ProductStore on PostgreSQL.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a PostgresProductStore over db. A nil
// logger uses slog.Default().
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

var _ store.ProductStore = (*PostgresProductStore)(nil)

// Create implements store.ProductStore.Create. A row rejected by the price
// or stock CHECK constraints yields store.ErrInvalidEntity.
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", redact.Error(err)),
			slog.String("product_id", product.ID.String()))
		return err
	}

	query := `
		INSERT INTO products (id, name, description, price_cents, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if IsCheckConstraintViolation(err) {
			log.Warn("product rejected by check constraint",
				slog.String("constraint", constraintName(err)),
				slog.String("product_id", product.ID.String()))
			return fmt.Errorf("%w: %s", store.ErrInvalidEntity, constraintName(err))
		}
		log.Error("failed to create product",
			slog.String("error", redact.Error(err)),
			slog.String("product_id", product.ID.String()))
		return fmt.Errorf("failed to create product: %w", MapError(err))
	}

	log.Info("product created successfully",
		slog.String("product_id", product.ID.String()),
		slog.Int("stock", product.Stock))
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving product by ID", slog.String("product_id", id.String()))

	query := `
		SELECT id, name, description, price_cents, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	var p domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", redact.Error(err)),
			slog.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to get product: %w", MapError(err))
	}

	return &p, nil
}

// List implements store.ProductStore.List.
func (s *PostgresProductStore) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing products", slog.Int("limit", limit), slog.Int("offset", offset))

	query := `
		SELECT id, name, description, price_cents, stock, created_at, updated_at
		FROM products
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list products", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list products: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", redact.Error(closeErr)))
		}
	}()

	products := []*domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.PriceCents,
			&p.Stock,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating product rows", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}
