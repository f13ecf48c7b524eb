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

func (m *MockRepository) Create(ctx context.Context, email, password, name, role string) (User, error) {
	args := m.Called(ctx, email, password, name, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(id uint) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		created := User{ID: 1, Email: "new@example.com", Name: "New User", Role: RoleUser}
		repo.On("Create", ctx, "new@example.com", mock.AnythingOfType("string"), "New User", "USER").
			Return(created, nil)

		token, u, err := svc.Register(ctx, "new@example.com", "password123", "New User")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
		assert.Equal(t, "new@example.com", u.Email)
		repo.AssertExpectations(t)
	})

	t.Run("EmailAlreadyExists", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "dup@example.com", mock.AnythingOfType("string"), "Dup", "USER").
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, "dup@example.com", "password123", "Dup")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "boom@example.com", mock.AnythingOfType("string"), "Boom", "USER").
			Return(User{}, errors.New("connection refused"))

		_, _, err := svc.Register(ctx, "boom@example.com", "password123", "Boom")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	ctx := context.Background()

	hashed, err := HashPassword("password123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", "user@example.com").
			Return(User{ID: 2, Email: "user@example.com", Password: hashed, Role: RoleUser}, nil)

		token, u, err := svc.Login(ctx, "user@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(2), u.ID)
	})

	t.Run("EmailNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", "nobody@example.com").
			Return(User{}, errors.New("sql: no rows in result set"))

		_, _, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", "user@example.com").
			Return(User{ID: 2, Email: "user@example.com", Password: hashed, Role: RoleUser}, nil)

		_, _, err := svc.Login(ctx, "user@example.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByID", uint(3)).Return(User{ID: 3, Email: "me@example.com"}, nil)

		u, err := svc.GetUserByID(3)
		require.NoError(t, err)
		assert.Equal(t, "me@example.com", u.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByID", uint(99)).Return(User{}, errors.New("sql: no rows in result set"))

		_, err := svc.GetUserByID(99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
