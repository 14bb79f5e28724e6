// Package auth issues and verifies the HS256 tokens handed to API clients.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/meggy/internal/common"
)

// TokenType separates access tokens from refresh tokens; one cannot stand in
// for the other.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims is the token payload: user id, email (access tokens only) and type
// on top of the registered exp/iat/jti.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Type   TokenType `json:"type"`
}

// Issuer signs and verifies tokens with one secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for iat/exp; for tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) AccessToken(userID, email string) (string, error) {
	return i.generate(Claims{UserID: userID, Email: email, Type: TypeAccess}, i.accessTTL)
}

func (i *Issuer) RefreshToken(userID string) (string, error) {
	return i.generate(Claims{UserID: userID, Type: TypeRefresh}, i.refreshTTL)
}

func (i *Issuer) generate(claims Claims, ttl time.Duration) (string, error) {
	now := i.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, expiry and type, and returns the claims.
// Expired tokens yield common.ErrTokenExpired, everything else
// common.ErrInvalidToken.
func (i *Issuer) Verify(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.Type != want || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
