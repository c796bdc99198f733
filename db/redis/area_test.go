package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/saveat-admin/storage"
)

func setupTestArea(t *testing.T) (*Area, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewArea(client, "saveat:"), mr
}

func TestArea_SetGet(t *testing.T) {
	area, mr := setupTestArea(t)
	ctx := context.Background()

	require.NoError(t, area.Set(ctx, "adminToken", "tok1"))

	value, err := area.Get(ctx, "adminToken")
	require.NoError(t, err)
	assert.Equal(t, "tok1", value)

	// Stored under the prefixed key, without expiry.
	raw, err := mr.Get("saveat:adminToken")
	require.NoError(t, err)
	assert.Equal(t, "tok1", raw)
	assert.Zero(t, mr.TTL("saveat:adminToken"))
}

func TestArea_GetMissing(t *testing.T) {
	area, _ := setupTestArea(t)

	_, err := area.Get(context.Background(), "adminUser")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArea_Del(t *testing.T) {
	area, mr := setupTestArea(t)
	ctx := context.Background()

	require.NoError(t, area.Set(ctx, "adminToken", "tok1"))
	require.NoError(t, area.Set(ctx, "adminUser", `{"id":"1"}`))
	require.NoError(t, area.Del(ctx, "adminToken", "adminUser"))
	require.NoError(t, area.Del(ctx))

	assert.False(t, mr.Exists("saveat:adminToken"))
	assert.False(t, mr.Exists("saveat:adminUser"))
}

func TestArea_ServerDown(t *testing.T) {
	area, mr := setupTestArea(t)
	mr.SetError("ERR server unavailable")

	_, err := area.Get(context.Background(), "adminToken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client := NewRedisClient(Config{Addr: mr.Addr()})
	defer client.Close()
	assert.NoError(t, Ping(ctx, client))

	mr.Close()
	err := Ping(ctx, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), mr.Addr())
}

func TestNewRedisClientDoesNotDial(t *testing.T) {
	client := NewRedisClient(Config{Addr: "127.0.0.1:1"})
	defer client.Close()

	area := NewArea(client, "saveat:")
	_, err := area.Get(context.Background(), "adminToken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}
