package users

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 7
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockCache) SetUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestUserService_GetByID_CacheMiss(t *testing.T) {
	mockRepo := &MockUserRepository{}
	mockCache := &MockCache{}
	service := NewUserService(mockRepo, mockCache, zap.NewNop())
	ctx := context.Background()
	user := &domain.User{ID: 7, Name: "ann", Email: "ann@example.com"}

	mockCache.On("GetUser", ctx, int64(7)).Return(nil, nil).Once()
	mockRepo.On("GetByID", ctx, int64(7)).Return(user, nil).Once()
	mockCache.On("SetUser", ctx, user).Return(nil).Once()

	result, err := service.GetByID(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, user, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetByID_CacheHit(t *testing.T) {
	mockRepo := &MockUserRepository{}
	mockCache := &MockCache{}
	service := NewUserService(mockRepo, mockCache, zap.NewNop())
	ctx := context.Background()
	user := &domain.User{ID: 7, Name: "ann", Email: "ann@example.com"}

	mockCache.On("GetUser", ctx, int64(7)).Return(user, nil).Once()

	result, err := service.GetByID(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, user, result)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserService_GetByID_CacheErrorFallsBack(t *testing.T) {
	mockRepo := &MockUserRepository{}
	mockCache := &MockCache{}
	service := NewUserService(mockRepo, mockCache, zap.NewNop())
	ctx := context.Background()
	user := &domain.User{ID: 7, Name: "ann", Email: "ann@example.com"}

	mockCache.On("GetUser", ctx, int64(7)).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("GetByID", ctx, int64(7)).Return(user, nil).Once()
	mockCache.On("SetUser", ctx, user).Return(errors.New("redis down")).Once()

	result, err := service.GetByID(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, user, result)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo, nil, nil)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.NotFound("user 9 not found")).Once()

	_, err := service.GetByID(ctx, 9)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_Create(t *testing.T) {
	mockRepo := &MockUserRepository{}
	mockCache := &MockCache{}
	service := NewUserService(mockRepo, mockCache, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, &domain.User{Name: "ann", Email: "ann@example.com"}).Return(nil).Once()
	mockCache.On("SetUser", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := service.Create(ctx, CreateUserInput{Name: " ann ", Email: "ann@example.com"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "ann", user.Name)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestUserService_Create_Invalid(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo, nil, zap.NewNop())

	_, err := service.Create(context.Background(), CreateUserInput{Name: "", Email: "ann@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Create(context.Background(), CreateUserInput{Name: "ann", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
