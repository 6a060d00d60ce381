package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecommerce-system/ecommerce-api/internal/config"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/cache"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/postgres"
	"github.com/ecommerce-system/ecommerce-api/internal/redact"
	"github.com/ecommerce-system/ecommerce-api/internal/service"
	"github.com/ecommerce-system/ecommerce-api/internal/service/auth"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
)

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	productStore store.ProductStore

	verifier      auth.TokenVerifier
	closeVerifier func()

	userService    service.UserService
	catalogService service.CatalogService
}

// newApplication wires stores, caches, the token verifier and services.
// db must already be connected.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.verifier, app.closeVerifier, err = auth.NewTokenVerifier(ctx, cfg.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.productStore = postgres.NewPostgresProductStore(db, logger)

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	userCache := cache.New[uuid.UUID, *domain.User](cfg.Cache.Enabled, cfg.Cache.MaxEntries, ttl)
	productCache := cache.New[uuid.UUID, *domain.Product](cfg.Cache.Enabled, cfg.Cache.MaxEntries, ttl)

	app.userService, err = service.NewUserService(app.userStore, db, userCache, logger)
	if err != nil {
		app.closeVerifier()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.catalogService, err = service.NewCatalogService(app.productStore, productCache, logger)
	if err != nil {
		app.closeVerifier()
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	logger.Info("application initialized",
		slog.Bool("cache_enabled", cfg.Cache.Enabled),
		slog.Int("cache_max_entries", cfg.Cache.MaxEntries))
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and cleans up.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.closeVerifier != nil {
		app.closeVerifier()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", redact.Error(err)))
		}
	}

	app.logger.Info("application shutdown completed")
}
