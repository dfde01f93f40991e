package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	"github.com/bareera786/ai-trading-bot-sub001/internal/cache"
	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
	"github.com/bareera786/ai-trading-bot-sub001/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserUpdate carries the mutable fields of a user record. Nil means leave
// unchanged. Password, when set, is the new plaintext and is hashed before it
// reaches the store.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserService exposes user record operations behind the auth gate.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (int64, error)
	DeleteUser(ctx context.Context, id uint) (int64, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher auth.PasswordHasher
	cache  *cache.Client
}

// NewUserService builds a UserService with repository, hasher, and cache.
func NewUserService(repo repository.UserRepository, hasher auth.PasswordHasher, cache *cache.Client) UserService {
	return &userService{repo: repo, hasher: hasher, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser applies the non-nil fields and reports rows changed. Role values
// outside the known set are rejected before touching the store.
func (s *userService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (int64, error) {
	fields := map[string]interface{}{}
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return 0, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}
	if update.Role != nil {
		if *update.Role != model.RoleAdmin && *update.Role != model.RoleUser {
			return 0, apperrors.ErrValidation
		}
		fields["role"] = *update.Role
	}
	if len(fields) == 0 {
		return 0, apperrors.ErrValidation
	}

	changed, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return changed, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return deleted, nil
}
