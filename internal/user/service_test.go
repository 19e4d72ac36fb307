package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pricetide/pricetide/internal/domain"
)

// MockRepository implements repository.User
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = uuid.New()
	}).Return(nil)

	svc := NewService(repo)

	user, err := svc.Register(context.Background(), "  alice  ")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.StartingCredits, user.Credits)
}

func TestRegister_InvalidUsername(t *testing.T) {
	svc := NewService(new(MockRepository))

	for _, name := range []string{"", "ab", string(make([]byte, MaxUsernameLength+1))} {
		_, err := svc.Register(context.Background(), name)
		assert.Error(t, err, "username %q", name)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(domain.ErrUsernameTaken)

	svc := NewService(repo)

	_, err := svc.Register(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}
