// Package metadata is a tiny key/value repository over the client's
// SQLite "metadata" table. The token store keeps its credentials here.
package metadata

import (
	"context"
)

// Repository reads and writes opaque values by key.
//
// Get returns (nil, nil) when the key does not exist.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
