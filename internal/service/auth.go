// Package service provides authentication and inventory business logic,
// delegating persistence to repositories.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrUsernameTaken is returned when registering with a username that already exists.
var ErrUsernameTaken = errors.New("username already taken")

// ErrEmailTaken is returned when registering with an email that already exists.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned on login with an unknown username or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// UsernameExists returns true if a user with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser inserts a new user row and returns the stored record.
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	// FindByUsername returns the user with the given username, or sql.ErrNoRows.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByID returns the user with the given id, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthService implements registration, login, and principal rehydration by
// delegating to a UserRepository.
type AuthService struct {
	// repo performs the data-layer operations.
	repo UserRepository
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo UserRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password is never stored. Returns ErrUsernameTaken or ErrEmailTaken when
// the corresponding field is already in use.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.CreateUser(ctx, username, email, string(hash))
}

// Authenticate verifies the username/password pair and returns the user on
// success. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Load rehydrates the authenticated principal by id. An id that no longer
// exists returns (nil, nil), not an error.
func (s *AuthService) Load(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
