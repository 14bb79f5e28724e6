package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNoRefreshToken = errors.New("no refresh token available")
	ErrNetwork        = errors.New("network error")
	ErrNotFound       = errors.New("not found")
	ErrServer         = errors.New("server error")
)

// InputError is a validation failure caught before any request is sent.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return "invalid input: " + e.Msg }

func (e *InputError) Unwrap() error { return ErrValidation }

// Invalid builds an InputError; it matches ErrValidation.
func Invalid(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// APIError is a non-2xx response. It unwraps to the sentinel matching its
// status code, so callers branch with errors.Is.
type APIError struct {
	StatusCode int
	// Message is the server's "error" or "detail" text, if any.
	Message string
	// Fields holds per-field validation messages ("non_field_errors" included).
	Fields map[string][]string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api error %d", e.StatusCode)
	if msg := e.text(); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return sentinelFor(e.StatusCode)
}

func (e *APIError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		msg := strings.Join(e.Fields[name], " ")
		if name == "non_field_errors" {
			parts = append(parts, msg)
			continue
		}
		parts = append(parts, name+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func sentinelFor(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrValidation
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}

// newAPIError builds an APIError from a response body. The body is usually
// {"error": "..."}, {"detail": "..."} or a DRF map of field -> [messages];
// anything else is kept out of the message.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}

	for key, raw := range payload {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			switch key {
			case "error", "detail":
				if e.Message == "" || key == "error" {
					e.Message = s
				}
			default:
				e.addField(key, s)
			}
			continue
		}

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			e.addField(key, list...)
		}
	}
	return e
}

func (e *APIError) addField(name string, msgs ...string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[name] = append(e.Fields[name], msgs...)
}

// UserMessage returns the most specific text available for err: the
// server's own message or field errors first, then a generic line per kind.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Msg
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.text(); msg != "" {
			return msg
		}
	}

	switch {
	case errors.Is(err, ErrNoRefreshToken):
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrValidation):
		return "Please check the entered data."
	case errors.Is(err, ErrUnauthorized):
		return "Invalid credentials or session expired. Please log in again."
	case errors.Is(err, ErrNotFound):
		return "The requested item was not found."
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the server. Check your connection and try again."
	case errors.Is(err, ErrServer):
		return "The server could not process the request. Try again later."
	default:
		return err.Error()
	}
}
