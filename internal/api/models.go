package api

import (
	"time"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/service"
)

// RegisterProfileRequest is the payload for creating the caller's profile.
// Email falls back to the token's email claim when omitted.
type RegisterProfileRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name"  validate:"max=100"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductResponse is the public representation of a product.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// AvailabilityResponse reports a satisfiable stock check.
type AvailabilityResponse struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	InStock   bool   `json:"in_stock"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func productToResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func pageToResponse(page *service.ProductPage) ProductListResponse {
	out := ProductListResponse{
		Products: make([]ProductResponse, 0, len(page.Products)),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	for _, p := range page.Products {
		out.Products = append(out.Products, productToResponse(p))
	}
	return out
}

func availabilityToResponse(a *service.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ProductID: a.ProductID.String(),
		Requested: a.Requested,
		Available: a.Available,
		InStock:   true,
	}
}
