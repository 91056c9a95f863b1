package service

import (
	"context"
	"errors"
	"fmt"

	"juice-store/internal/domain"
	"juice-store/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
)

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *domain.User, err error)
	Refresh(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	List(ctx context.Context, nameFilter string) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id, name, email, password string) error
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository, tokens *TokenService) UserService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user account with a hashed password. The
// duplicate-email check is check-then-act; the store-level unique
// constraint closes the remaining race window, and both paths surface
// as repository.ErrUserAlreadyExists.
func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrUserAlreadyExists
	}

	hash, err := s.tokens.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and issues both session tokens. An
// unknown email returns repository.ErrUserNotFound, a wrong password
// ErrInvalidCredentials; the two are reported differently upstream.
func (s *userService) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return "", "", nil, err
		}
		return "", "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.tokens.CheckPassword(password, user.Password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh verifies a refresh token and mints a new access token for
// its owner. Verification is stateless; no token store is consulted.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	newAccessToken, err := s.tokens.IssueAccessToken(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return newAccessToken, nil
}

// List returns users, optionally filtered by name substring
func (s *userService) List(ctx context.Context, nameFilter string) ([]*domain.User, error) {
	return s.userRepo.FindAll(ctx, nameFilter)
}

// GetByID retrieves a user by identifier
func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Update replaces the user's name, email and password wholesale. The
// password is re-hashed from whatever string was sent, including the
// empty one; absent fields blank the stored record.
func (s *userService) Update(ctx context.Context, id, name, email, password string) error {
	hash, err := s.tokens.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: hash,
	}

	return s.userRepo.Update(ctx, user)
}

// Delete removes a user by identifier
func (s *userService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
