package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
	"github.com/bareera786/ai-trading-bot-sub001/internal/repository"
)

// AuthService ties the credential store, password hasher, and token service
// together for registration, login, and token renewal.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	// Refresh mints a new access token from already-verified refresh claims.
	Refresh(claims *auth.Claims) (accessToken string, err error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.JWTService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user with a hashed password. The first registration on
// an empty store is granted the ADMIN role; every later one gets USER. The
// role is fixed at creation.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.ErrValidation
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Conflict surfaces as-is; anything else is a store failure.
		if errors.Is(err, apperrors.ErrUserConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues one access and one refresh token
// bound to {id, role}. Unknown username and wrong password produce the same
// error so a caller cannot tell which case occurred.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil, fmt.Errorf("find user: %w", err)
		}
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh issues a new access token for claims that already passed the
// refresh-class gate. No store lookup happens; the claims are trusted as
// verified.
func (s *authService) Refresh(claims *auth.Claims) (string, error) {
	accessToken, err := s.tokens.IssueAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}
