package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/mocks"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const fixture = `
users:
  - id: 0b6f3c1e-6a43-4d59-9d0e-5d7f3f1b9c21
    email: ada@example.com
    name: Ada
  - email: grace@example.com
    name: Grace
products:
  - name: Keyboard
    description: Tenkeyless
    price_cents: 8999
    stock: 12
`

func TestDecodeSeedFile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f, err := decodeSeedFile(strings.NewReader(fixture))
		require.NoError(t, err)
		require.Len(t, f.Users, 2)
		require.Len(t, f.Products, 1)
		assert.Equal(t, "0b6f3c1e-6a43-4d59-9d0e-5d7f3f1b9c21", f.Users[0].ID)
		assert.Empty(t, f.Users[1].ID)
		assert.Equal(t, int64(8999), f.Products[0].PriceCents)
		assert.Equal(t, 12, f.Products[0].Stock)
	})

	t.Run("empty document", func(t *testing.T) {
		f, err := decodeSeedFile(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f.Users)
		assert.Empty(t, f.Products)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := decodeSeedFile(strings.NewReader("users:\n  - email: a@example.com\n    role: admin\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode seed file")
	})
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	f, err := loadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Users, 2)

	_, err = loadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	log, _ := logger.NewTestLogger(t)

	f, err := decodeSeedFile(strings.NewReader(fixture))
	require.NoError(t, err)
	adaID := uuid.MustParse(f.Users[0].ID)

	t.Run("creates and skips duplicates", func(t *testing.T) {
		users := new(mocks.UserService)
		catalog := new(mocks.CatalogService)

		users.On("RegisterUser", mock.Anything, adaID, "ada@example.com", "Ada").
			Return(nil, store.ErrEmailExists)
		users.On("CreateUser", mock.Anything, "grace@example.com", "Grace").
			Return(&domain.User{ID: uuid.New(), Email: "grace@example.com", Name: "Grace"}, nil)
		catalog.On("CreateProduct", mock.Anything, "Keyboard", "Tenkeyless", int64(8999), 12).
			Return(&domain.Product{ID: uuid.New(), Name: "Keyboard"}, nil)

		res, err := seed(ctx, f, users, catalog, log)
		require.NoError(t, err)
		assert.Equal(t, &seedResult{UsersCreated: 1, UsersSkipped: 1, ProductsCreated: 1}, res)

		users.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("invalid user id", func(t *testing.T) {
		bad := &seedFile{Users: []seedUser{{ID: "not-a-uuid", Email: "x@example.com", Name: "X"}}}

		_, err := seed(ctx, bad, new(mocks.UserService), new(mocks.CatalogService), log)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users[0]: invalid id")
	})

	t.Run("stops on product failure", func(t *testing.T) {
		catalog := new(mocks.CatalogService)
		failure := errors.New("insert failed")
		catalog.On("CreateProduct", mock.Anything, "Keyboard", "Tenkeyless", int64(8999), 12).
			Return(nil, failure)

		res, err := seed(ctx, &seedFile{Products: f.Products}, new(mocks.UserService), catalog, log)
		require.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "products[0]")
		assert.Equal(t, 0, res.ProductsCreated)
	})
}
