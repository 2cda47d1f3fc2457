package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stockfolio/internal/errors"
	"stockfolio/internal/model"
	"stockfolio/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// Register creates a new user with a hashed password. Username and email are
// each checked for uniqueness before the insert.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, errors.ErrDuplicateUsername
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errors.ErrDuplicateEmail
	} else if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, errors.ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword derives a one-way salted hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
