package qualification

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResultCache(client, time.Minute)
	ctx := context.Background()

	res := testResult("loc-1", "contact-1", TemperatureWarm)
	require.NoError(t, cache.Set(ctx, res))

	got, err := cache.Get(ctx, "loc-1", "contact-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, res.Temperature, got.Temperature)
	assert.Equal(t, res.Scores, got.Scores)
}

func TestResultCacheMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResultCache(client, 0)

	got, err := cache.Get(context.Background(), "loc-1", "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResultCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResultCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testResult("loc-1", "contact-1", TemperatureHot)))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "loc-1", "contact-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
