// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ticklist/ticklist/internal/auth"
	"github.com/ticklist/ticklist/internal/metrics"
	"github.com/ticklist/ticklist/internal/model"
	"github.com/ticklist/ticklist/internal/repository"
	"github.com/ticklist/ticklist/internal/validation"
)

// Service errors.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries field-level messages produced past the
// syntactic rules (uniqueness checks against the store).
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation error"
}

// UserStore is the persistence surface AuthService depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// TokenStore persists issued bearer tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token *model.Token) error
}

// AuthService handles registration, login, and token issuance.
type AuthService struct {
	users    UserStore
	tokens   TokenStore
	tokenEnv string
	metrics  metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenStore, tokenEnv string, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		tokenEnv: tokenEnv,
		metrics:  recorder,
	}
}

// RegisterInput defines input for registering a user.
// Syntactic validation has already run; only store-backed checks remain.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is a user plus the plaintext token minted for them.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new user and issues a bearer token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	taken, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, emailTakenError()
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// The unique constraint is the atomic backstop for the
		// pre-check race; report it as the same field error.
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUserRegistered()

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a bearer token.
// Unknown email and wrong password return the identical error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncLoginSuccess()

	return &AuthResult{User: user, Token: token}, nil
}

// issueToken mints an opaque bearer token and persists its hash.
func (s *AuthService) issueToken(ctx context.Context, userID int64) (string, error) {
	generated, err := auth.GenerateToken(s.tokenEnv)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.Token{
		ID:          ulid.Make().String(),
		UserID:      userID,
		TokenHash:   generated.Hash,
		TokenPrefix: generated.Prefix,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tokens.CreateToken(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return generated.Plaintext, nil
}

func emailTakenError() *ValidationError {
	errs := validation.Errors{}
	errs.Add("email", validation.Taken("email"))
	return &ValidationError{Fields: errs}
}
