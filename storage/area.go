package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by an Area when a key holds no value.
var ErrNotFound = errors.New("key not found")

// Area is a string key-value store holding one copy of the credential pair.
// The console uses two: a durable one that survives restarts and a session-scoped one that
// lives only as long as the process.
type Area interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}
