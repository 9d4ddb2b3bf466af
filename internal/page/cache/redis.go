package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

const pagePrefix = "page:"

// RedisCache stores entries in Redis with the TTL handed to SET, so expiry
// is enforced server-side instead of on read.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, rawURL string) (*domain.FetchResult, error) {
	key := fmt.Sprintf("%s%s", pagePrefix, Key(rawURL))

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var result domain.FetchResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		// Corrupt entry, treat as absent.
		return nil, nil
	}

	return &result, nil
}

func (c *RedisCache) Set(ctx context.Context, rawURL string, result *domain.FetchResult) error {
	key := fmt.Sprintf("%s%s", pagePrefix, Key(rawURL))

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}
