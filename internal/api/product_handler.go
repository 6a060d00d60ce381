package api

import (
	"net/http"

	"github.com/ecommerce-system/ecommerce-api/internal/api/shared"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/service"
)

// ProductHandler handles catalog requests.
type ProductHandler struct {
	catalog service.CatalogService
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ListProducts handles GET /api/products?limit=&offset=.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := handleQueryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	offset, ok := handleQueryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	page, err := h.catalog.ListProducts(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(page))
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(product))
}

// CheckAvailability handles GET /api/products/{id}/availability?quantity=N.
// An unsatisfiable quantity is answered with 409 PRODUCT_OUT_OF_STOCK.
func (h *ProductHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	productID, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	if r.URL.Query().Get("quantity") == "" {
		HandleAPIError(w, r, domain.NewValidationError("quantity", "is required", domain.ErrInvalidQuantity), "")
		return
	}
	quantity, ok := handleQueryInt(w, r, "quantity", 0)
	if !ok {
		return
	}

	availability, err := h.catalog.CheckAvailability(r.Context(), productID, quantity)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, availabilityToResponse(availability))
}
