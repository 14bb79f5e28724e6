package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/meggy/internal/client/models"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps the session for the lifetime of the process.
type MemoryStore struct {
	opts options

	mu      sync.Mutex
	access  *entry
	refresh *entry
	user    *models.User
}

func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{opts: buildOptions(opts)}
}

func (s *MemoryStore) newEntry(token string, ttl time.Duration) *entry {
	if token == "" {
		return nil
	}
	return &entry{value: token, expiresAt: s.opts.now().Add(ttl)}
}

func (s *MemoryStore) read(e *entry) string {
	if e == nil || !s.opts.now().Before(e.expiresAt) {
		return ""
	}
	return e.value
}

func (s *MemoryStore) Set(ctx context.Context, creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = s.newEntry(creds.AccessToken, s.opts.accessTTL)
	s.refresh = s.newEntry(creds.RefreshToken, s.opts.refreshTTL)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context) (*models.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return credentialsOrNil(models.Credentials{
		AccessToken:  s.read(s.access),
		RefreshToken: s.read(s.refresh),
	}), nil
}

func (s *MemoryStore) SetAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = s.newEntry(token, s.opts.accessTTL)
	return nil
}

func (s *MemoryStore) SetUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return nil
	}
	cp := *u
	s.user = &cp
	return nil
}

func (s *MemoryStore) User(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	cp := *s.user
	return &cp, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh, s.user = nil, nil, nil
	return nil
}
