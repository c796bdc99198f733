package memory

import (
	"context"
	"sync"

	"github.com/octabyte/saveat-admin/storage"
)

// Area is the session-scoped storage area: values live in process memory and are lost on exit.
type Area struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ storage.Area = (*Area)(nil)

func NewArea() *Area {
	return &Area{values: make(map[string]string)}
}

func (a *Area) Get(_ context.Context, key string) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	value, ok := a.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (a *Area) Set(_ context.Context, key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.values[key] = value
	return nil
}

func (a *Area) Del(_ context.Context, keys ...string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, key := range keys {
		delete(a.values, key)
	}
	return nil
}
