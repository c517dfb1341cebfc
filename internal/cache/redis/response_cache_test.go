package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Claisenn/codemind/internal/cache/redis"
	"github.com/Claisenn/codemind/internal/domain"
)

func TestNewResponseCache_NilClient(t *testing.T) {
	cache, err := redis.NewResponseCache(nil)

	require.Nil(t, cache)
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis client cannot be nil")
}

func TestResponseCache_Unreachable(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	cache, err := redis.NewResponseCache(client)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cache.Get(ctx, "codemind:chat:test")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrCacheMiss)

	err = cache.Set(ctx, "codemind:chat:test", "content", time.Minute)
	require.Error(t, err)

	require.Error(t, cache.Ping(ctx))
}

// Runs against a live server when CODEMIND_TEST_REDIS_ADDR is set.
func TestResponseCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("CODEMIND_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CODEMIND_TEST_REDIS_ADDR not set")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	cache, err := redis.NewResponseCache(client)
	require.NoError(t, err)

	ctx := context.Background()
	key := domain.CacheKey("test", domain.Conversation{domain.UserMessage(t.Name())})
	t.Cleanup(func() { client.Del(ctx, key) })

	_, err = cache.Get(ctx, key)
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, key, "hello", time.Minute))

	content, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "hello", content)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	require.Positive(t, ttl)
}
