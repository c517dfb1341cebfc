package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/Claisenn/codemind/internal/observability"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

const cacheKeyPrefix = "codemind:chat:"

// CacheKey derives the cache key of a conversation sent to a given
// provider/model namespace.
func CacheKey(namespace string, conversation Conversation) string {
	payload, _ := json.Marshal(conversation)

	hasher := sha256.New()
	hasher.Write([]byte(namespace))
	hasher.Write([]byte{0})
	hasher.Write(payload)

	return cacheKeyPrefix + hex.EncodeToString(hasher.Sum(nil))
}

// CachedClient decorates a ChatClient with a ResponseCache for Chat.
// Streaming calls bypass the cache.
type CachedClient struct {
	next      ChatClient
	cache     ResponseCache
	namespace string
	ttl       time.Duration
}

// NewCachedClient wraps next. namespace separates entries of different
// providers or models.
func NewCachedClient(next ChatClient, cache ResponseCache, namespace string, ttl time.Duration) *CachedClient {
	return &CachedClient{
		next:      next,
		cache:     cache,
		namespace: namespace,
		ttl:       ttl,
	}
}

// Chat returns a cached reply when present, otherwise calls the wrapped client
// and stores its reply.
func (c *CachedClient) Chat(ctx context.Context, conversation Conversation) (string, error) {
	logger := observability.FromContext(ctx)
	key := CacheKey(c.namespace, conversation)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		logger.Info("cache HIT - returning cached response")
		return cached, nil
	case errors.Is(err, ErrCacheMiss):
		logger.Info("cache MISS - calling provider")
	default:
		logger.Warn("cache get failed, continuing without cache", observability.Error(err))
	}

	content, err := c.next.Chat(ctx, conversation)
	if err != nil {
		return "", err
	}

	if setErr := c.cache.Set(ctx, key, content, c.ttl); setErr != nil {
		logger.Warn("failed to store in cache", observability.Error(setErr))
	}

	return content, nil
}

// StreamChat delegates to the wrapped client.
func (c *CachedClient) StreamChat(ctx context.Context, conversation Conversation, cb StreamCallback) {
	c.next.StreamChat(ctx, conversation, cb)
}

// SupportsStreaming delegates to the wrapped client.
func (c *CachedClient) SupportsStreaming() bool {
	return c.next.SupportsStreaming()
}
