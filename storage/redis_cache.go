package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"fairhuur/utils"
)

// CachedFetcher keeps the last fetched document in Redis for ttl, so that
// several page views share one upstream fetch.
type CachedFetcher struct {
	next   DocumentFetcher
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *utils.Logger
}

// NewCachedFetcher wraps next with a Redis cache entry named key.
func NewCachedFetcher(next DocumentFetcher, client *redis.Client, key string, ttl time.Duration, logger *utils.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, client: client, key: key, ttl: ttl, logger: logger}
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Fetch serves the cached document when present. Cache failures fall back to
// the upstream fetcher.
func (c *CachedFetcher) Fetch(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		c.logger.Debug("[cache] Hit %s (%d bytes)", c.key, len(data))
		return data, nil
	case errors.Is(err, redis.Nil):
		c.logger.Debug("[cache] Miss %s", c.key)
	default:
		c.logger.Warn("[cache] Redis get %s failed: %v", c.key, err)
	}

	data, err = c.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("[cache] Redis set %s failed: %v", c.key, err)
	}
	return data, nil
}

// Invalidate drops the cached document.
func (c *CachedFetcher) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
