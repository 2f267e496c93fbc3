package users

import (
	"context"
	"strings"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/Domenick1991/shareit/internal/repository"
	"go.uber.org/zap"
)

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type UserCache interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	SetUser(ctx context.Context, user *domain.User) error
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserService struct {
	repo   repository.UserRepository
	cache  UserCache
	logger *zap.Logger
}

// NewUserService builds the directory. cache may be nil.
func NewUserService(repo repository.UserRepository, cache UserCache, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, cache: cache, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return nil, domain.InvalidInput("name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.InvalidInput("email %q is not valid", input.Email)
	}

	user := &domain.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.remember(ctx, user)
	return user, nil
}

// GetByID reads through the cache. Cache failures fall back to the store.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, id)
		if err != nil {
			s.logger.Warn("user cache read failed", zap.Int64("user_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, user)
	return user, nil
}

func (s *UserService) remember(ctx context.Context, user *domain.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetUser(ctx, user); err != nil {
		s.logger.Warn("user cache write failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

var _ UserUseCase = (*UserService)(nil)
