package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore persists string values under string keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
