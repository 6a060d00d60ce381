package store

import (
	"context"
	"database/sql"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore maps domain users to and from persistent storage.
type UserStore interface {
	// Create validates and saves a new user.
	// Returns ErrEmailExists if the email is already taken (ignoring case)
	// and ErrUserExists if the ID is.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
