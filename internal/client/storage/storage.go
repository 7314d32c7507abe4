// Package storage persists small pieces of client state — the bearer token
// and the preview-service API key — in a local sqlite database keyed by
// fixed names.
package storage

import "context"

// Repository is a durable key/value store. Get returns nil for a missing
// key; Delete of a missing key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
