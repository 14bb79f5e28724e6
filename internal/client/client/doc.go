// Package client is the HTTP layer between the Meggy client and its REST API.
//
// # Overview
//
// A single Client talks to the API. Before each request it reads the current
// access token from a TokenSource and sends it as a bearer token; with no
// token the request goes out unauthenticated. Typed helpers (Get, Post,
// Patch, Delete) encode and decode JSON.
//
// # Refresh and replay
//
// When a request is rejected with 401 and a Refresher is registered, the
// client renews the access token once and replays the request once.
// Concurrent 401s share a single refresh. Calls made with WithoutRefresh
// (login, register, refresh itself) are never replayed.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which unwraps to one of the sentinels
// ErrValidation, ErrUnauthorized, ErrNotFound or ErrServer. Transport
// failures wrap ErrNetwork. UserMessage renders any of them for display.
//
// # Local database
//
// InitDatabase opens the SQLite file backing the token store and applies
// the embedded goose migrations.
package client
