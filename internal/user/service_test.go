package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, password string) (User, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, "Asha Rao", "asha@example.com", mock.AnythingOfType("string")).
			Return(User{ID: 7, Name: "Asha Rao", Email: "asha@example.com"}, nil).
			Run(func(args mock.Arguments) {
				// The repository must never see the plaintext password.
				hashed := args.String(3)
				assert.NotEqual(t, "sup3rsecret", hashed)
				assert.True(t, CheckPasswordHash("sup3rsecret", hashed))
			})

		svc := NewService(repo)
		token, u, err := svc.Register(context.Background(), "Asha Rao", "asha@example.com", "sup3rsecret")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(7), u.ID)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		svc := NewService(repo)
		_, _, err := svc.Register(context.Background(), "Asha Rao", "asha@example.com", "sup3rsecret")

		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(User{}, errors.New("db down"))

		svc := NewService(repo)
		_, _, err := svc.Register(context.Background(), "Asha Rao", "asha@example.com", "sup3rsecret")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	hash, err := HashPassword("sup3rsecret")
	require.NoError(t, err)

	stored := User{ID: 7, Name: "Asha Rao", Email: "asha@example.com", Password: hash}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "asha@example.com").Return(stored, nil)

		svc := NewService(repo)
		token, u, err := svc.Login(context.Background(), "asha@example.com", "sup3rsecret")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(7), u.ID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(User{}, ErrUserNotFound)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "sup3rsecret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("FindByEmail", mock.Anything, "asha@example.com").Return(stored, nil)

		svc := NewService(repo)
		_, _, err := svc.Login(context.Background(), "asha@example.com", "wrongpass")

		// Same error for both failure modes so callers can't probe for accounts.
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ListAndDelete(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]User{{ID: 1}, {ID: 2}}, nil)
	repo.On("Delete", mock.Anything, uint(2)).Return(nil)
	repo.On("Delete", mock.Anything, uint(99)).Return(ErrUserNotFound)

	svc := NewService(repo)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	assert.NoError(t, svc.Delete(context.Background(), 2))
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrUserNotFound)
}
