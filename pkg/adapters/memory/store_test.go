package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/antoine/pkg/domain"
	"github.com/aretw0/antoine/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Contract(t *testing.T) {
	ports.RunResultCacheContract(t, NewCache())
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCache(WithTTL(time.Minute), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v")))
	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.Zero(t, cache.Len(), "expired entries are evicted lazily")
}
