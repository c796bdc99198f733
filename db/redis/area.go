package redis

import (
	"context"
	"errors"

	"github.com/octabyte/saveat-admin/storage"
	"github.com/redis/go-redis/v9"
)

// Area is the durable storage area. Keys are namespaced with a prefix and never expire, so a
// remembered login survives console restarts.
type Area struct {
	client *redis.Client
	prefix string
}

var _ storage.Area = (*Area)(nil)

func NewArea(client *redis.Client, prefix string) *Area {
	return &Area{client: client, prefix: prefix}
}

func (a *Area) Get(ctx context.Context, key string) (string, error) {
	value, err := Get(ctx, a.client, a.key(key))
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	return value, err
}

func (a *Area) Set(ctx context.Context, key, value string) error {
	return Set(ctx, a.client, a.key(key), value, 0)
}

func (a *Area) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = a.key(key)
	}
	return Del(ctx, a.client, prefixed...)
}

func (a *Area) key(key string) string {
	return a.prefix + key
}
