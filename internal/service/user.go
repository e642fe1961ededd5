// Package service implements the business rules for users, contacts and
// addresses, delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contactdesk/internal/models"
	"contactdesk/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations required by UserService.
type UserRepository interface {
	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Create inserts a new user record with a NULL token.
	Create(ctx context.Context, user *models.User) error
	// FindByUsername fetches a user by username, sql.ErrNoRows when absent.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByToken fetches the user holding the given session token,
	// sql.ErrNoRows when no user holds it.
	FindByToken(ctx context.Context, token string) (*models.User, error)
	// Update persists the user's name and password hash.
	Update(ctx context.Context, user *models.User) error
	// UpdateToken sets or clears the user's session token.
	UpdateToken(ctx context.Context, username string, token sql.NullString) error
}

// UserService implements registration, login/logout and profile management.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account. The password is stored as a bcrypt hash
// and the account starts without a session token.
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (models.UserResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.UserResponse{}, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return models.UserResponse{}, err
	}
	if exists {
		return models.UserResponse{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return models.UserResponse{}, err
	}

	return models.ToUserResponse(user), nil
}

// Login verifies the credentials and issues a fresh opaque session token,
// overwriting any previous one. An unknown username and a wrong password
// fail identically.
func (s *UserService) Login(ctx context.Context, req models.LoginUserRequest) (models.UserResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.UserResponse{}, err
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.UserResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.UserResponse{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.repo.UpdateToken(ctx, user.Username, sql.NullString{String: token, Valid: true}); err != nil {
		return models.UserResponse{}, err
	}

	resp := models.ToUserResponse(user)
	resp.Token = token
	return resp, nil
}

// ByToken resolves a bearer token to its user. It is the lookup behind the
// authentication middleware; a token held by no user yields
// ErrUnauthenticated.
func (s *UserService) ByToken(ctx context.Context, token string) (*models.User, error) {
	user, err := s.repo.FindByToken(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Current returns the profile of the already-authenticated user.
func (s *UserService) Current(user *models.User) models.UserResponse {
	return models.ToUserResponse(user)
}

// Update applies the provided profile fields. A nil field is left untouched;
// a provided password is re-hashed.
func (s *UserService) Update(ctx context.Context, user *models.User, req models.UpdateUserRequest) (models.UserResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return models.UserResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.UserResponse{}, fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return models.UserResponse{}, err
	}

	return models.ToUserResponse(user), nil
}

// Logout clears the user's session token, invalidating it immediately.
func (s *UserService) Logout(ctx context.Context, user *models.User) (models.UserResponse, error) {
	if err := s.repo.UpdateToken(ctx, user.Username, sql.NullString{}); err != nil {
		return models.UserResponse{}, err
	}
	return models.ToUserResponse(user), nil
}
