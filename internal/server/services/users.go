// Package services contains the development server's business logic on top
// of the repositories: accounts and tokens, agents and conversations.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/auth"
	"github.com/dmitrijs2005/meggy/internal/server/models"
	"github.com/dmitrijs2005/meggy/internal/server/repositories/repomanager"
)

const minPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService handles registration, login and token refresh.
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.Issuer
	bcryptCost  int
	now         func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, tokens *auth.Issuer) *UserService {
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func (s *UserService) WithBcryptCost(cost int) *UserService {
	s.bcryptCost = cost
	return s
}

// Register creates an account and returns it with a fresh token pair.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, *TokenPair, error) {
	email = strings.TrimSpace(email)

	verr := &common.ValidationError{}
	if email == "" {
		verr.Add("email", "This field is required.")
	} else if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email", "Enter a valid email address.")
	}
	if len(password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	if !verr.Empty() {
		return nil, nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user, err := s.repomanager.Users().Create(ctx, &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, nil, common.Invalid("email", "user with this email already exists.")
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the password and returns the user with a fresh token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, &common.ValidationError{Message: "Email and password are required"}
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, &common.AuthError{Msg: "Invalid credentials"}
		}
		return nil, nil, fmt.Errorf("error searching user: %w", err)
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, nil, &common.AuthError{Msg: "Invalid credentials"}
	}
	if !user.IsActive {
		return nil, nil, &common.AuthError{Msg: "User account is disabled"}
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", &common.ValidationError{Message: "Refresh token is required"}
	}

	claims, err := s.tokens.Verify(refreshToken, auth.TypeRefresh)
	if err != nil {
		return "", &common.AuthError{Msg: "Invalid or expired refresh token"}
	}

	user, err := s.repomanager.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("user not found: %w", err)
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	return s.tokens.AccessToken(user.ID, user.Email)
}

// Authenticate resolves a bearer access token to an active user.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.tokens.Verify(accessToken, auth.TypeAccess)
	if err != nil {
		return nil, &common.AuthError{Msg: "Invalid or expired token"}
	}

	user, err := s.repomanager.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, &common.AuthError{Msg: "Invalid or expired token"}
	}
	if !user.IsActive {
		return nil, &common.AuthError{Msg: "User account is disabled"}
	}
	return user, nil
}

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.tokens.AccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.RefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
