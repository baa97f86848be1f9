package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendtrack/internal/auth"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// A missing account and a wrong password are deliberately the same error.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyUsed is returned when signing up with a taken email.
	ErrEmailAlreadyUsed = errors.New("email already in use")
)

// AuthService handles sign-up and sign-in. Successful calls return a session
// token alongside the user; the handler layer decides how to transport it.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*model.User, string, error)
	SignIn(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// SignUp creates a user with a hashed password and issues a session token.
func (s *authService) SignUp(ctx context.Context, email, password, name string) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", ErrEmailAlreadyUsed
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// SignIn verifies credentials and issues a session token.
func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
