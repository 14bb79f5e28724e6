// Package services contains application services for the Meggy client.
// This file defines the authentication service: register, login, logout,
// token refresh and the session queries built on the token store.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/client/tokenstore"
	"github.com/dmitrijs2005/meggy/internal/logging"
)

const (
	registerPath = "/auth/register/"
	loginPath    = "/auth/login/"
	logoutPath   = "/auth/logout/"
	refreshPath  = "/auth/refresh/"
	mePath       = "/users/me/"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register/Login: authenticate against the server and persist both tokens
//     and the user profile before returning.
//   - Logout: best-effort server logout; local state is always cleared.
//   - RefreshAccessToken: exchange the stored refresh token for a new access
//     token, replacing only the access token.
//   - IsAuthenticated: an access token is present in the store.
//
// It is the only component that writes tokens.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	RefreshAccessToken(ctx context.Context) (string, error)
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (*models.User, error)
	CachedUser(ctx context.Context) (*models.User, error)
	AccessTokenExpiry(ctx context.Context) (time.Time, bool)
	Ping(ctx context.Context) error
}

type authService struct {
	client *client.Client
	store  tokenstore.Store
	log    logging.Logger
}

// NewAuthService binds the service to the API client and the token store and
// registers it as the client's refresher.
func NewAuthService(c *client.Client, store tokenstore.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	a := &authService{client: c, store: store, log: log}
	c.SetRefresher(a)
	return a
}

// NormalizeEmail trims and lower-cases an email before it is sent to login.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *authService) Register(ctx context.Context, email, name, password string) (*models.AuthResponse, error) {
	req := models.RegisterRequest{Email: email, Name: name, Password: password}
	resp, err := client.Post[models.AuthResponse](ctx, a.client, registerPath, req, client.WithoutRefresh())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.saveSession(ctx, &resp); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "registered", "user_id", resp.User.ID)
	return &resp, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	req := models.LoginRequest{Email: email, Password: password}
	resp, err := client.Post[models.AuthResponse](ctx, a.client, loginPath, req, client.WithoutRefresh())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.saveSession(ctx, &resp); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "logged in", "user_id", resp.User.ID)
	return &resp, nil
}

func (a *authService) saveSession(ctx context.Context, resp *models.AuthResponse) error {
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return fmt.Errorf("%w: auth response carries no tokens", client.ErrServer)
	}
	if err := a.store.Set(ctx, resp.Credentials()); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	if err := a.store.SetUser(ctx, &resp.User); err != nil {
		// a half-written session must not read as logged in
		if cerr := a.store.Clear(context.WithoutCancel(ctx)); cerr != nil {
			return errors.Join(fmt.Errorf("save user profile: %w", err), fmt.Errorf("clear session: %w", cerr))
		}
		return fmt.Errorf("save user profile: %w", err)
	}
	return nil
}

// Logout tells the server, then clears local state whatever the server said.
// Only a failure to clear local state is returned.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Do(ctx, client.Request{Method: http.MethodPost, Path: logoutPath, NoRefresh: true}, nil)
	if err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}

	if err := a.store.Clear(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) RefreshAccessToken(ctx context.Context) (string, error) {
	creds, err := a.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if creds == nil || creds.RefreshToken == "" {
		return "", client.ErrNoRefreshToken
	}

	req := models.RefreshRequest{RefreshToken: creds.RefreshToken}
	resp, err := client.Post[models.RefreshResponse](ctx, a.client, refreshPath, req, client.WithoutRefresh())
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: refresh response carries no access token", client.ErrServer)
	}

	if err := a.store.SetAccessToken(ctx, resp.AccessToken); err != nil {
		return "", fmt.Errorf("save access token: %w", err)
	}
	a.log.Debug(ctx, "access token refreshed")
	return resp.AccessToken, nil
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	creds, err := a.store.Get(ctx)
	if err != nil {
		a.log.Error(ctx, "read token store", "error", err)
		return false
	}
	return creds != nil && creds.AccessToken != ""
}

// CurrentUser fetches the profile from the server and refreshes the cached
// copy.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	u, err := client.Get[models.User](ctx, a.client, mePath, nil)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if err := a.store.SetUser(ctx, &u); err != nil {
		a.log.Warn(ctx, "cache user profile", "error", err)
	}
	return &u, nil
}

// CachedUser returns the profile saved at login, without a request.
func (a *authService) CachedUser(ctx context.Context) (*models.User, error) {
	return a.store.User(ctx)
}

// AccessTokenExpiry reads the exp claim of the stored access token without
// verifying it. For display only.
func (a *authService) AccessTokenExpiry(ctx context.Context) (time.Time, bool) {
	creds, err := a.store.Get(ctx)
	if err != nil || creds == nil || creds.AccessToken == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(creds.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
