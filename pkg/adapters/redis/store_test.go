package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/antoine/pkg/adapters/redis"
	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, opts ...redis.Option) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	cache := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestRedisCache_Contract(t *testing.T) {
	cache, _ := newCache(t)
	ports.RunResultCacheContract(t, cache)
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	cache, mr := newCache(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	// 1. Save
	require.NoError(t, cache.Set(ctx, "dash-1", []byte("{}")))

	// 2. Verify List (immediately)
	keys, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "dash-1")

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Get (should miss)
	_, err = cache.Get(ctx, "dash-1")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_PrefixAndPurge(t *testing.T) {
	cache, mr := newCache(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1")))
	require.NoError(t, cache.Set(ctx, "b", []byte("2")))
	assert.True(t, mr.Exists("test:a"))
	assert.True(t, mr.Exists("test:index"))

	n, err := cache.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:index"))

	keys, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisCache_Ping(t *testing.T) {
	cache, mr := newCache(t)
	assert.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
