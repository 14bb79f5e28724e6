package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/meggy/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of the local
// database. Expiry timestamps are stored next to each token as unix
// seconds.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
	opts options
}

func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	return &SQLiteStore{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		opts: buildOptions(opts),
	}
}

func (s *SQLiteStore) writeToken(ctx context.Context, repo metadata.Repository, key, expKey, token string, ttl time.Duration) error {
	if token == "" {
		return repo.Delete(ctx, key, expKey)
	}
	exp := s.opts.now().Add(ttl).Unix()
	if err := repo.Set(ctx, key, []byte(token)); err != nil {
		return err
	}
	return repo.Set(ctx, expKey, []byte(strconv.FormatInt(exp, 10)))
}

func (s *SQLiteStore) Set(ctx context.Context, creds models.Credentials) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := s.writeToken(ctx, repo, KeyAccessToken, KeyAccessTokenExpiresAt, creds.AccessToken, s.opts.accessTTL); err != nil {
			return err
		}
		return s.writeToken(ctx, repo, KeyRefreshToken, KeyRefreshTokenExpiresAt, creds.RefreshToken, s.opts.refreshTTL)
	})
}

func (s *SQLiteStore) SetAccessToken(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		return s.writeToken(ctx, repo, KeyAccessToken, KeyAccessTokenExpiresAt, token, s.opts.accessTTL)
	})
}

func (s *SQLiteStore) Get(ctx context.Context) (*models.Credentials, error) {
	values, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.opts.now()
	return credentialsOrNil(models.Credentials{
		AccessToken:  liveToken(values, KeyAccessToken, KeyAccessTokenExpiresAt, now),
		RefreshToken: liveToken(values, KeyRefreshToken, KeyRefreshTokenExpiresAt, now),
	}), nil
}

// liveToken returns the token under key if its expiry is still ahead.
// A missing or unreadable expiry counts as expired.
func liveToken(values map[string][]byte, key, expKey string, now time.Time) string {
	token := string(values[key])
	if token == "" {
		return ""
	}
	exp, err := strconv.ParseInt(string(values[expKey]), 10, 64)
	if err != nil || !now.Before(time.Unix(exp, 0)) {
		return ""
	}
	return token
}

func (s *SQLiteStore) SetUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return s.repo.Delete(ctx, KeyUser)
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.Set(ctx, KeyUser, b)
}

func (s *SQLiteStore) User(ctx context.Context) (*models.User, error) {
	b, err := s.repo.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}

// Clear removes the session keys only; other metadata rows stay.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx,
		KeyAccessToken, KeyAccessTokenExpiresAt,
		KeyRefreshToken, KeyRefreshTokenExpiresAt,
		KeyUser,
	)
}
