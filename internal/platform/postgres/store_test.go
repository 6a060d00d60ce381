package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userColumns    = []string{"id", "email", "name", "created_at", "updated_at"}
	productColumns = []string{"id", "name", "description", "price_cents", "stock", "created_at", "updated_at"}
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgresUserStore_Create(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO users (id, email, name, created_at, updated_at)")

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)
		user, err := domain.NewUser("ada@example.com", "Ada")
		require.NoError(t, err)

		mock.ExpectExec(insert).
			WithArgs(user.ID, user.Email, user.Name, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)
		user, err := domain.NewUser("ada@example.com", "Ada")
		require.NoError(t, err)

		mock.ExpectExec(insert).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usersEmailUniqueKey})

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)
		user, err := domain.NewUser("grace@example.com", "Grace")
		require.NoError(t, err)

		mock.ExpectExec(insert).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: usersPrimaryKey})

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUserExists)
		assert.NotErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)
		user, err := domain.NewUser("ada@example.com", "Ada")
		require.NoError(t, err)

		mock.ExpectExec(insert).WillReturnError(&pgconn.PgError{
			Code:           checkViolationCode,
			ConstraintName: "users_name_length",
		})

		err = s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "users_name_length")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid user never reaches the database", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		err := s.Create(context.Background(), &domain.User{ID: uuid.New(), Email: "not-an-email"})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	query := regexp.QuoteMeta("FROM users")
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(query).WithArgs(id).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(id.String(), "ada@example.com", "Ada", now, now))

		user, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Ada", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(query).WithArgs(id).WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := s.GetByID(context.Background(), id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("database failure", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresUserStore(db, nil)
		boom := errors.New("connection reset")

		mock.ExpectQuery(query).WithArgs(id).WillReturnError(boom)

		_, err := s.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, boom)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	query := regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")
	id := uuid.New()
	now := time.Now().UTC()

	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(query).WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Ada@Example.com", "Ada", now, now))
	mock.ExpectQuery(query).WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := s.GetByEmail(context.Background(), "  ada@example.com ")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = s.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_WithTx(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresUserStore(db, nil)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	_, err = s.WithTx(tx).GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductStore_Create(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO products")

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresProductStore(db, nil)
		p, err := domain.NewProduct("Widget", "A widget", 1999, 5)
		require.NoError(t, err)

		mock.ExpectExec(insert).
			WithArgs(p.ID, "Widget", "A widget", int64(1999), 5, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresProductStore(db, nil)
		p, err := domain.NewProduct("Widget", "", 100, 1)
		require.NoError(t, err)

		mock.ExpectExec(insert).WillReturnError(&pgconn.PgError{
			Code:           checkViolationCode,
			ConstraintName: "products_stock_non_negative",
		})

		err = s.Create(context.Background(), p)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "products_stock_non_negative")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative stock rejected before insert", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresProductStore(db, nil)

		err := s.Create(context.Background(), &domain.Product{ID: uuid.New(), Name: "Widget", Stock: -1})
		assert.ErrorIs(t, err, domain.ErrNegativeStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresProductStore_GetByID(t *testing.T) {
	query := regexp.QuoteMeta("FROM products")
	id := uuid.New()
	now := time.Now().UTC()

	db, mock := newMock(t)
	s := NewPostgresProductStore(db, nil)

	mock.ExpectQuery(query).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(id.String(), "Widget", "A widget", int64(1999), 3, now, now))
	mock.ExpectQuery(query).WithArgs(id).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, int64(1999), p.PriceCents)
	assert.Equal(t, 3, p.Stock)

	_, err = s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductStore_List(t *testing.T) {
	query := regexp.QuoteMeta("LIMIT $1 OFFSET $2")
	now := time.Now().UTC()

	t.Run("returns rows in order", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresProductStore(db, nil)
		a, b := uuid.New(), uuid.New()

		mock.ExpectQuery(query).WithArgs(2, 0).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(a.String(), "Anvil", "", int64(500), 1, now, now).
				AddRow(b.String(), "Bolt", "", int64(10), 0, now, now))

		products, err := s.List(context.Background(), 2, 0)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, a, products[0].ID)
		assert.Equal(t, "Bolt", products[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page is an empty slice", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresProductStore(db, nil)

		mock.ExpectQuery(query).WithArgs(20, 40).WillReturnRows(sqlmock.NewRows(productColumns))

		products, err := s.List(context.Background(), 20, 40)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("row error", func(t *testing.T) {
		db, mock := newMock(t)
		s := NewPostgresProductStore(db, nil)
		boom := errors.New("stream broken")

		mock.ExpectQuery(query).WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow(uuid.New().String(), "Anvil", "", int64(500), 1, now, now).
				RowError(0, boom))

		_, err := s.List(context.Background(), 20, 0)
		assert.ErrorIs(t, err, boom)
	})
}
