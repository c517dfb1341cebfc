package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
)

const (
	contentField  = "content"
	storedAtField = "stored_at"
)

// ResponseCache implements domain.ResponseCache on Redis hashes.
type ResponseCache struct {
	client redis.UniversalClient
}

// NewResponseCache creates a new Redis response cache adapter.
func NewResponseCache(client redis.UniversalClient) (*ResponseCache, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &ResponseCache{client: client}, nil
}

// Get returns the cached content under key or domain.ErrCacheMiss.
func (c *ResponseCache) Get(ctx context.Context, key string) (string, error) {
	logger := observability.FromContext(ctx)

	content, err := c.client.HGet(ctx, key, contentField).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("response cache miss", observability.String("key", key))
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to read cache entry: %w", err)
	}

	logger.Debug("response cache hit",
		observability.String("key", key),
		observability.Int("content_length", len(content)))
	return content, nil
}

// Set stores content under key. A non-positive ttl keeps the entry until
// evicted.
func (c *ResponseCache) Set(ctx context.Context, key string, content string, ttl time.Duration) error {
	logger := observability.FromContext(ctx)

	pipe := c.client.TxPipeline()

	pipe.HSet(ctx, key,
		contentField, content,
		storedAtField, time.Now().Unix(),
	)

	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("response cache store failed", observability.Error(err))
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	logger.Debug("response cache stored",
		observability.String("key", key),
		observability.Duration("ttl", ttl))
	return nil
}

// Ping checks connectivity to the Redis server.
func (c *ResponseCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
