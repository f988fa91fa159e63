// content.go provides a Valkey-backed cache for the public content
// responses. The public events and menu endpoints serve the same JSON to
// every visitor, so the encoded body is cached and invalidated whenever
// an admin mutation touches the underlying rows.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// contentKeyPrefix namespaces public content keys in Valkey.
	contentKeyPrefix = "public:"

	// DefaultContentTTL is how long a public response stays cached.
	DefaultContentTTL = 5 * time.Minute
)

// Well-known content cache keys.
const (
	EventsKey = "events"
	MenuKey   = "menu"
)

// ContentCache manages cached public JSON responses in Valkey.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Valkey client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss; cache
// errors are logged and treated as misses.
func (cc *ContentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, contentKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a response body for a key with the configured TTL.
func (cc *ContentCache) Set(ctx context.Context, key string, body []byte) {
	if err := cc.client.Set(ctx, contentKeyPrefix+key, body, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

// Invalidate removes the given keys from the cache. Called after every
// admin mutation so the public site never serves stale content past the
// next request.
func (cc *ContentCache) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := cc.client.Del(ctx, contentKeyPrefix+key).Err(); err != nil {
			slog.Warn("content cache invalidate error", "key", key, "error", err)
		}
	}
}
