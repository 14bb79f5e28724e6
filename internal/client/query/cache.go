package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrDisabled is returned for a query whose key is not complete.
var ErrDisabled = errors.New("query disabled")

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
	stale     bool
}

// inflight tracks a running fetch so an invalidation that lands during it
// leaves the stored result stale.
type inflight struct {
	key         Key
	invalidated bool
}

// Cache holds query results. It is safe for concurrent use.
type Cache struct {
	staleTime time.Duration
	now       func() time.Time

	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*inflight
	group    singleflight.Group
}

type Option func(*Cache)

// WithStaleTime makes entries older than d read as stale. Zero, the default,
// keeps entries fresh until invalidated.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		now:      time.Now,
		entries:  make(map[string]*entry),
		inflight: make(map[string]*inflight),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) freshLocked(e *entry) bool {
	if e.stale {
		return false
	}
	if c.staleTime > 0 && c.now().Sub(e.fetchedAt) >= c.staleTime {
		return false
	}
	return true
}

// Peek returns the cached value for key, fresh or stale.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.id()]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// IsStale reports whether the next Fetch of key will call the server. A
// missing entry is stale.
func (c *Cache) IsStale(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.id()]
	return !ok || !c.freshLocked(e)
}

// Invalidate marks every entry under prefix stale. It never fetches; the
// next read does. Fetches of matching keys already in flight will store
// their result as stale.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
		}
	}
	for _, f := range c.inflight {
		if f.key.HasPrefix(prefix) {
			f.invalidated = true
		}
	}
}

func (c *Cache) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.id())
}

// Clear drops every entry, for example when the user changes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	for _, f := range c.inflight {
		f.invalidated = true
	}
}

func (c *Cache) lookup(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.id()]
	if !ok || !c.freshLocked(e) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) begin(key Key) *inflight {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &inflight{key: append(Key(nil), key...)}
	c.inflight[key.id()] = f
	return f
}

func (c *Cache) finish(key Key, f *inflight, value any, store bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key.id())
	if !store {
		return
	}
	c.entries[key.id()] = &entry{
		key:       f.key,
		value:     value,
		fetchedAt: c.now(),
		stale:     f.invalidated,
	}
}

// Fetch returns the fresh cached value for key or runs fn to load it.
// Concurrent fetches of one key share a single fn call. The shared call runs
// on a context detached from the caller that started it, so one caller
// leaving does not fail the others; fn is expected to carry its own timeout.
// Each caller still returns as soon as its own ctx is done. A failed fn
// leaves the cache untouched.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if !key.Enabled() {
		return zero, fmt.Errorf("%w: %s", ErrDisabled, key)
	}
	if v, ok := c.lookup(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	ch := c.group.DoChan(key.id(), func() (any, error) {
		f := c.begin(key)
		v, err := fn(context.WithoutCancel(ctx))
		c.finish(key, f, v, err == nil)
		return v, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		t, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("query %s: cached %T, want %T", key, res.Val, zero)
		}
		return t, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Mutate runs fn and, only once it has succeeded, invalidates the given
// keys. Nothing is updated optimistically.
func Mutate[T any](ctx context.Context, c *Cache, fn func(ctx context.Context) (T, error), invalidate ...Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, k := range invalidate {
		c.Invalidate(k)
	}
	return v, nil
}
