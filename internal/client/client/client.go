package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/logging"
)

const DefaultTimeout = 30 * time.Second

// TokenSource supplies the credentials attached to outgoing requests. It is
// consulted on every request, so a token written by one call is seen by
// the next.
type TokenSource interface {
	Get(ctx context.Context) (*models.Credentials, error)
}

// Refresher obtains a new access token and persists it, returning the token.
type Refresher interface {
	RefreshAccessToken(ctx context.Context) (string, error)
}

// Client is the single HTTP entry point to the REST API. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
	timeout time.Duration

	refreshOnUnauthorized bool

	mu        sync.RWMutex
	refresher Refresher
	refreshes singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTimeout bounds every round trip. Zero disables the per-request limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRefreshOnUnauthorized toggles the refresh-and-replay of requests
// rejected with 401. It is on by default.
func WithRefreshOnUnauthorized(enabled bool) Option {
	return func(c *Client) { c.refreshOnUnauthorized = enabled }
}

func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if tokens == nil {
		return nil, errors.New("token source is required")
	}

	c := &Client{
		baseURL:               strings.TrimRight(u.String(), "/"),
		http:                  &http.Client{},
		tokens:                tokens,
		log:                   logging.Discard(),
		timeout:               DefaultTimeout,
		refreshOnUnauthorized: true,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// SetRefresher registers the component that renews access tokens. Passing
// nil disables refresh-and-replay.
func (c *Client) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

func (c *Client) getRefresher() Refresher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refresher
}

// Request describes one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// NoRefresh keeps a 401 from triggering refresh-and-replay. Auth
	// endpoints set it: their 401 means bad credentials, not a stale token.
	NoRefresh bool
}

// Do sends req and decodes a JSON response into out (which may be nil).
// A 401 is retried once after a successful token refresh.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var body []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", req.Method, req.Path, err)
		}
		body = b
	}

	if logging.RequestID(ctx) == "" {
		ctx = logging.WithRequestID(ctx, logging.NewRequestID())
	}

	status, data, err := c.send(ctx, req, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && c.canRefresh(req) {
		if rerr := c.refresh(ctx); rerr != nil {
			c.log.Debug(ctx, "token refresh failed", "path", req.Path, "error", rerr)
		} else {
			status, data, err = c.send(ctx, req, body)
			if err != nil {
				return err
			}
		}
	}

	if status < 200 || status > 299 {
		return newAPIError(status, data)
	}

	if out == nil || status == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s response: %w", ErrServer, req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) canRefresh(req Request) bool {
	return c.refreshOnUnauthorized && !req.NoRefresh && c.getRefresher() != nil
}

// refresh shares one refresh call between every request that hit a 401 at
// the same time. The shared call outlives the cancellation of any single
// waiter.
func (c *Client) refresh(ctx context.Context) error {
	r := c.getRefresher()
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		return r.RefreshAccessToken(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) send(ctx context.Context, req Request, body []byte) (int, []byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s %s request: %w", req.Method, req.Path, err)
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set(logging.RequestIDHeader, logging.RequestID(ctx))
	if body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}

	creds, err := c.tokens.Get(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("read access token: %w", err)
	}
	if creds != nil && creds.AccessToken != "" {
		hr.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(hr)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", req.Method, "path", req.Path, "error", err)
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read %s %s response: %w", ErrNetwork, req.Method, req.Path, err)
	}

	c.log.Debug(ctx, "request finished",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp.StatusCode, data, nil
}

// Ping checks that the API root answers. Any HTTP response means the server
// is reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/", NoRefresh: true}, nil)
	if err == nil || errors.Is(err, ErrNetwork) {
		return err
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil
	}
	return err
}
