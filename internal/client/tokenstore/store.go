// Package tokenstore persists the session: the access and refresh tokens
// and a cached copy of the user profile.
//
// Each token is written with a storage expiry. Once that window elapses the
// token reads as absent, the way an expired cookie disappears. Nothing here
// looks inside the tokens.
package tokenstore

import (
	"context"
	"time"

	"github.com/dmitrijs2005/meggy/internal/client/models"
)

const (
	KeyAccessToken           = "access_token"
	KeyAccessTokenExpiresAt  = "access_token_expires_at"
	KeyRefreshToken          = "refresh_token"
	KeyRefreshTokenExpiresAt = "refresh_token_expires_at"
	KeyUser                  = "user"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Store is the persistent session state. Reads always go to the backing
// medium. Implementations are safe for concurrent use.
type Store interface {
	// Set writes both tokens. An empty token removes that entry.
	Set(ctx context.Context, creds models.Credentials) error
	// Get returns the tokens still inside their storage window, or nil
	// when neither is.
	Get(ctx context.Context) (*models.Credentials, error)
	// SetAccessToken replaces only the access token.
	SetAccessToken(ctx context.Context, token string) error
	SetUser(ctx context.Context, u *models.User) error
	// User returns the cached profile, or nil.
	User(ctx context.Context) (*models.User, error)
	// Clear removes tokens and profile.
	Clear(ctx context.Context) error
}

type options struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*options)

// WithTTL overrides the storage windows. Non-positive values keep the
// defaults.
func WithTTL(access, refresh time.Duration) Option {
	return func(o *options) {
		if access > 0 {
			o.accessTTL = access
		}
		if refresh > 0 {
			o.refreshTTL = refresh
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		now:        time.Now,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// credentialsOrNil drops the empty result so callers can test for nil.
func credentialsOrNil(c models.Credentials) *models.Credentials {
	if c.AccessToken == "" && c.RefreshToken == "" {
		return nil
	}
	return &c
}
