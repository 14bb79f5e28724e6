package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageKind tells which shape a list response had on the wire.
type PageKind int

const (
	// PageRaw is a bare JSON array.
	PageRaw PageKind = iota
	// PagePaginated is an envelope {count, next, previous, results}.
	PagePaginated
)

func (k PageKind) String() string {
	if k == PagePaginated {
		return "paginated"
	}
	return "raw"
}

// Page is a list response in either of the two shapes the API may return.
// The shape is resolved once in UnmarshalJSON; callers use Items.
type Page[T any] struct {
	Kind     PageKind
	Count    *int
	Next     *string
	Previous *string
	Items    []T
}

type pageEnvelope[T any] struct {
	Count    *int            `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	*p = Page[T]{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '[':
		return json.Unmarshal(data, &p.Items)

	case '{':
		var env pageEnvelope[T]
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		if env.Results == nil {
			return fmt.Errorf("list envelope has no results field")
		}
		p.Kind = PagePaginated
		p.Count, p.Next, p.Previous = env.Count, env.Next, env.Previous
		if bytes.Equal(bytes.TrimSpace(env.Results), []byte("null")) {
			return nil
		}
		return json.Unmarshal(env.Results, &p.Items)

	default:
		return fmt.Errorf("unexpected list payload starting with %q", data[0])
	}
}

// List returns the items, never nil.
func (p Page[T]) List() []T {
	if p.Items == nil {
		return []T{}
	}
	return p.Items
}
