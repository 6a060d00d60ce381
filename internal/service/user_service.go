package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/cache"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/ecommerce-system/ecommerce-api/internal/redact"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
)

// UserService provides user profile operations.
type UserService interface {
	// GetUser retrieves a user by ID.
	// Returns a USER_NOT_FOUND business error if there is no such user.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	// Returns a USER_NOT_FOUND business error if there is no such user.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser registers a profile under a newly generated ID.
	CreateUser(ctx context.Context, email, name string) (*domain.User, error)

	// RegisterUser registers a profile under an existing identity, such as
	// the subject of a verified token. Returns store.ErrEmailExists or a
	// store duplicate error if the email or ID is already taken.
	RegisterUser(ctx context.Context, userID uuid.UUID, email, name string) (*domain.User, error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	users     *cache.Loader[uuid.UUID, *domain.User]
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService. userCache may be nil to disable
// caching.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	userCache cache.Cache[uuid.UUID, *domain.User],
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, fmt.Errorf("%w: userStore", ErrNilDependency)
	}
	if db == nil {
		return nil, fmt.Errorf("%w: db", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		users:     cache.NewLoader(userCache),
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.Load(ctx, userID, s.userStore.GetByID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found", slog.String("user_id", userID.String()))
			return nil, domain.NewUserNotFoundErrorWithMessage(
				fmt.Sprintf("user %s not found", userID)).WithCause(err)
		}
		log.Error("failed to retrieve user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}

	return copyUser(user), nil
}

// GetUserByEmail implements UserService.GetUserByEmail. Lookups by email
// bypass the cache.
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "cannot be empty", domain.ErrEmptyEmail)
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found by email")
			return nil, domain.NewUserNotFoundErrorWithMessage("no user with that email").WithCause(err)
		}
		log.Error("failed to retrieve user by email", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("get_user_by_email", "failed to retrieve user", err)
	}

	s.users.Prime(user.ID, copyUser(user))
	return user, nil
}

// CreateUser implements UserService.CreateUser.
func (s *UserServiceImpl) CreateUser(ctx context.Context, email, name string) (*domain.User, error) {
	return s.RegisterUser(ctx, uuid.New(), email, name)
}

// RegisterUser implements UserService.RegisterUser. The insert runs in its
// own transaction.
func (s *UserServiceImpl) RegisterUser(
	ctx context.Context,
	userID uuid.UUID,
	email, name string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUserWithID(userID, email, name)
	if err != nil {
		log.Debug("invalid user data", slog.String("error", redact.Error(err)))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to create user with existing email")
			return nil, err
		}
		log.Error("failed to save user", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("create_user", "failed to save user", err)
	}

	s.users.Prime(user.ID, copyUser(user))
	log.Info("user created", slog.String("user_id", user.ID.String()))
	return user, nil
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
