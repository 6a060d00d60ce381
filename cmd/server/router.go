package main

import (
	"net/http"

	"github.com/ecommerce-system/ecommerce-api/internal/api"
	apiMiddleware "github.com/ecommerce-system/ecommerce-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter builds the chi router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	healthHandler := api.NewHealthHandler(app.db)
	userHandler := api.NewUserHandler(app.userService)
	productHandler := api.NewProductHandler(app.catalogService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.verifier)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/users/me", userHandler.GetMe)
		r.Post("/users/me", userHandler.RegisterMe)
		r.Get("/users/{id}", userHandler.GetUser)

		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)
		r.Get("/products/{id}/availability", productHandler.CheckAvailability)
	})

	return r
}
