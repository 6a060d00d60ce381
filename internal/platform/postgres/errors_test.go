package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	other := errors.New("something else")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "unique", err: &pgconn.PgError{Code: uniqueViolationCode}, want: store.ErrDuplicate},
		{name: "check", err: &pgconn.PgError{Code: checkViolationCode}, want: store.ErrInvalidEntity},
		{name: "not null", err: &pgconn.PgError{Code: notNullViolationCode}, want: store.ErrInvalidEntity},
		{name: "wrapped unique", err: fmt.Errorf("ctx: %w", &pgconn.PgError{Code: uniqueViolationCode}), want: store.ErrDuplicate},
		{name: "unrelated", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usersEmailUniqueKey}
	check := &pgconn.PgError{Code: checkViolationCode, ConstraintName: "products_price_non_negative"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(check))
	assert.True(t, IsCheckConstraintViolation(check))
	assert.True(t, IsCheckConstraintViolation(fmt.Errorf("insert: %w", check)))
	assert.False(t, IsCheckConstraintViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))

	assert.Equal(t, usersEmailUniqueKey, constraintName(unique))
	assert.Equal(t, "products_price_non_negative", constraintName(fmt.Errorf("insert: %w", check)))
	assert.Empty(t, constraintName(errors.New("plain")))
}

func TestUsersMigration_EmailUniqueIgnoresCase(t *testing.T) {
	sqlText, err := Migrations.ReadFile(MigrationsDir + "/00001_create_users_table.sql")
	require.NoError(t, err)

	assert.Contains(t, string(sqlText), "CREATE UNIQUE INDEX "+usersEmailUniqueKey+" ON users (LOWER(email))")
	assert.Contains(t, string(sqlText), "CONSTRAINT "+usersPrimaryKey+" PRIMARY KEY (id)")
	assert.NotContains(t, string(sqlText), "UNIQUE (email)")
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := Migrations.ReadDir(MigrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		"00001_create_users_table.sql",
		"00002_create_products_table.sql",
	}, names)
}
