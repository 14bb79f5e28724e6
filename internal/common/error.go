// Package common defines the sentinel errors shared by the development
// server layers. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// AuthError is a rejected credential or token. Its text is safe to show to
// the client; errors.Is matches ErrorUnauthorized.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

func (e *AuthError) Unwrap() error { return ErrorUnauthorized }

// ValidationError carries per-field messages in the shape REST clients
// expect: {"field": ["msg", ...]}. Message is used for errors that belong
// to no single field.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

// Invalid returns a ValidationError for a single field.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Add appends msg to field and returns e for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// Empty reports whether nothing was recorded.
func (e *ValidationError) Empty() bool {
	return e.Message == "" && len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], " "))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
