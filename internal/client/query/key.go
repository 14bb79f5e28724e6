// Package query is a small server-state cache: entries keyed by
// hierarchical keys, fetched on demand, deduplicated while in flight and
// marked stale by prefix after mutations.
package query

import (
	"strconv"
	"strings"
)

// Key identifies a cached query, from the general to the specific:
// {"agents"}, {"agents", id}, {"messages", conversationID}.
type Key []string

// String renders the key for logs and errors. It is not unique: a part that
// contains ':' reads like two parts.
func (k Key) String() string {
	return strings.Join(k, ":")
}

// id is the map key for k. Each part is quoted, so distinct keys never share
// an id whatever their parts contain.
func (k Key) id() string {
	var b strings.Builder
	for _, part := range k {
		b.WriteString(strconv.Quote(part))
	}
	return b.String()
}

// HasPrefix reports whether p is a leading part of k (or equal to it).
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// Enabled reports whether every part is set. A key with an empty part
// belongs to a query that is not ready to run, such as a detail read with no
// id yet.
func (k Key) Enabled() bool {
	if len(k) == 0 {
		return false
	}
	for _, part := range k {
		if part == "" {
			return false
		}
	}
	return true
}
