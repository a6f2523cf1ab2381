package rediskv

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRedisAddr = "redis://localhost:6379"
	testPrefix    = "backendlink_test"
)

func setupTestRedis(t *testing.T) (redis.UniversalClient, func()) {
	client, err := NewRedisUniversalClient(testRedisAddr)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis is not available at %s: %v", testRedisAddr, err)
	}

	keys, err := client.Keys(ctx, testPrefix+":*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}

	cleanup := func() {
		keys, _ := client.Keys(ctx, testPrefix+":*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	}
	return client, cleanup
}

func TestNewStore_Panics(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		assert.PanicsWithValue(t, "rediskv.store.go: client is required", func() {
			NewStore(nil, testPrefix)
		})
	})
	t.Run("empty prefix", func(t *testing.T) {
		client, err := NewRedisUniversalClient(testRedisAddr)
		require.NoError(t, err)
		defer client.Close()
		assert.PanicsWithValue(t, "rediskv.store.go: prefix is required", func() {
			NewStore(client, "")
		})
	})
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewStore(client, testPrefix)

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", "v1"))
		v, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v1", v)

		// keys are namespaced with the prefix
		raw, err := client.Get(ctx, testPrefix+":k").Result()
		require.NoError(t, err)
		assert.Equal(t, "v1", raw)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", "v2"))
		v, _, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", v)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "k"))
		_, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove absent key is not an error", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "never-set"))
	})
}
