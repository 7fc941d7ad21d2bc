package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshmittal0811/Royal-Commerce/internal/cart/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := &domain.Cart{
		UserID: 7,
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 24.99},
			{ProductID: 2, Quantity: 3, UnitPrice: 31.25},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(7), string(cartJSON))

	result, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.UserID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(1), result.Items[0].ProductID)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	result, err := cache.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)

	mr.Set(cacheKey(7), "not json")

	result, err := cache.Get(context.Background(), 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestSet_RoundTripAndTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := &domain.Cart{
		UserID: 7,
		Items:  []domain.CartItem{{ProductID: 1, Quantity: 2, UnitPrice: 24.99}},
		Total:  49.98,
	}

	require.NoError(t, cache.Set(ctx, 7, cart))

	got, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, cart.Total, got.Total)

	// TTL is base plus up to five minutes of jitter.
	ttl := mr.TTL(cacheKey(7))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	mr.Set(cacheKey(7), "{}")
	require.NoError(t, cache.Delete(ctx, 7))

	_, err := cache.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrCacheMiss)

	// Deleting a missing key is not an error.
	assert.NoError(t, cache.Delete(ctx, 7))
}
