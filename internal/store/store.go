// Package store defines the opaque get/set-by-key service the app persists into.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("key not found")

// Interface is a byte-valued key-value store.
// Set creates or overwrites the key; Get returns ErrNotFound for a missing key.
type Interface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
