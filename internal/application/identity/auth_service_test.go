package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peeves/backend/internal/domain/identity"
	"github.com/peeves/backend/internal/domain/shared"
	"github.com/peeves/backend/internal/infrastructure/auth"
	"github.com/peeves/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		Issuer:                 "storefront-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		MaxRefreshCount:        3,
	})
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("should register and return tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), nil)

		repo.On("ExistsByEmail", ctx, "shopper@store.test").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := service.Register(ctx, RegisterRequest{
			Email:    "Shopper@Store.Test",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "shopper@store.test", resp.User.Email)
		assert.False(t, resp.User.Admin)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		repo.AssertExpectations(t)
	})

	t.Run("should reject duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWTService(), nil, nil)

		repo.On("ExistsByEmail", ctx, "taken@store.test").Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "taken@store.test",
			Password: "correct horse",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	user, err := identity.NewUser("admin@store.test", "correct horse")
	require.NoError(t, err)
	user.SetAdmin(true)

	t.Run("should log in and carry admin claim", func(t *testing.T) {
		repo := new(MockUserRepository)
		jwtService := newTestJWTService()
		service := NewAuthService(repo, jwtService, nil, nil)

		repo.On("FindByEmail", ctx, "admin@store.test").Return(user, nil)

		resp, err := service.Login(ctx, LoginRequest{
			Email:    "Admin@Store.Test",
			Password: "correct horse",
		})

		require.NoError(t, err)
		claims, err := jwtService.ValidateAccessToken(resp.Tokens.AccessToken)
		require.NoError(t, err)
		assert.True(t, claims.Admin)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("should reject wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWTService(), nil, nil)

		repo.On("FindByEmail", ctx, "admin@store.test").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{
			Email:    "admin@store.test",
			Password: "wrong horse",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("should give same error for unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAuthService(repo, newTestJWTService(), nil, nil)

		repo.On("FindByEmail", ctx, "nobody@store.test").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{
			Email:    "nobody@store.test",
			Password: "correct horse",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthServiceLogoutAndRefresh(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(repo, jwtService, blacklist, nil)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "shopper@store.test",
	})
	require.NoError(t, err)

	t.Run("should refresh a live token", func(t *testing.T) {
		refreshed, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("should block refresh after logout", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx, LogoutRequest{RefreshToken: pair.RefreshToken}))

		_, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("should treat invalid token logout as a no-op", func(t *testing.T) {
		assert.NoError(t, service.Logout(ctx, LogoutRequest{RefreshToken: "not.a.token"}))
	})
}

func TestAccountService(t *testing.T) {
	ctx := context.Background()

	t.Run("should update the profile without touching email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAccountService(repo, nil)

		user, err := identity.NewUser("shopper@store.test", "correct horse")
		require.NoError(t, err)

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		resp, err := service.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
			FirstName:  "Ada",
			Address:    "12 Rue des Baskets",
			PostalCode: "75011",
			City:       "Paris",
		})

		require.NoError(t, err)
		assert.Equal(t, "shopper@store.test", resp.Email)
		assert.Equal(t, "Ada", resp.FirstName)
		assert.Equal(t, "Paris", resp.City)
	})

	t.Run("should grant admin by email", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAccountService(repo, nil)

		user, err := identity.NewUser("new-admin@store.test", "correct horse")
		require.NoError(t, err)

		repo.On("FindByEmail", ctx, "new-admin@store.test").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		resp, err := service.SetAdminByEmail(ctx, SetAdminRequest{
			Email:   "New-Admin@Store.Test",
			Enabled: true,
		})

		require.NoError(t, err)
		assert.True(t, resp.Admin)
	})

	t.Run("should propagate missing account", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := NewAccountService(repo, nil)

		repo.On("FindByEmail", ctx, "nobody@store.test").Return(nil, shared.ErrNotFound)

		_, err := service.SetAdminByEmail(ctx, SetAdminRequest{Email: "nobody@store.test", Enabled: true})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
