package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength bounds user display names and product names.
const MaxNameLength = 100

// User is a customer account. Credentials live with the external identity
// provider; this record only holds profile data keyed by the token subject.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a User with a fresh ID and UTC timestamps.
// Returns an error if validation fails.
func NewUser(email, name string) (*User, error) {
	return NewUserWithID(uuid.New(), email, name)
}

// NewUserWithID creates a User keyed by an existing identity, typically the
// subject of a verified token.
func NewUserWithID(id uuid.UUID, email, name string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        id,
		Email:     strings.TrimSpace(email),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrEmptyEmail)
	}

	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}

	if len(u.Name) > MaxNameLength {
		return NewValidationError("name", "is too long", ErrNameTooLong)
	}

	return nil
}

// validateEmailFormat requires a non-empty local part, an @, and a domain
// with a dot that is neither leading nor trailing.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}

	domainPart := email[at+1:]
	if len(domainPart) < 3 || strings.ContainsAny(email, " \t\n") {
		return false
	}

	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && !strings.HasSuffix(domainPart, ".")
}
