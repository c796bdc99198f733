package memory

import (
	"context"
	"testing"

	"github.com/octabyte/saveat-admin/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArea(t *testing.T) {
	ctx := context.Background()
	area := NewArea()

	_, err := area.Get(ctx, "adminToken")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, area.Set(ctx, "adminToken", "tok1"))
	require.NoError(t, area.Set(ctx, "adminUser", `{"id":"1"}`))

	value, err := area.Get(ctx, "adminToken")
	require.NoError(t, err)
	assert.Equal(t, "tok1", value)
	assert.Len(t, area.values, 2)

	require.NoError(t, area.Del(ctx, "adminToken", "adminUser", "missing"))
	assert.Empty(t, area.values)
}
