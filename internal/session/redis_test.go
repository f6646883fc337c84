package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvoronin/membergate/internal/model"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedisStore(context.Background(), client)
	require.NoError(t, err)
	return store, mr
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "sid-1", "payload-1", time.Hour))

	payload, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "payload-1", payload)

	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err = store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRedisStore_Get_Missing(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Set(ctx, "sid-1", "payload-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRedisStore_Delete_Missing(t *testing.T) {
	store, _ := newTestRedisStore(t)
	assert.NoError(t, store.Delete(context.Background(), "nope"))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedisStore(context.Background(), client)
	assert.Error(t, err)
}
