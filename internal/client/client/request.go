package client

import (
	"context"
	"net/http"
	"net/url"
)

// RequestOption adjusts a single call made through the typed helpers.
type RequestOption func(*Request)

// WithoutRefresh marks the call as exempt from refresh-and-replay.
func WithoutRefresh() RequestOption {
	return func(r *Request) { r.NoRefresh = true }
}

func build(method, path string, query url.Values, body any, opts []RequestOption) Request {
	r := Request{Method: method, Path: path, Query: query, Body: body}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func Get[T any](ctx context.Context, c *Client, path string, params url.Values, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, build(http.MethodGet, path, params, nil, opts), &out)
	return out, err
}

func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, build(http.MethodPost, path, nil, body, opts), &out)
	return out, err
}

func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, build(http.MethodPatch, path, nil, body, opts), &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.Do(ctx, build(http.MethodDelete, path, nil, nil, opts), nil)
}
