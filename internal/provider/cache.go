package provider

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "provider:check:"

// Checker is satisfied by Client and CachedClient.
type Checker interface {
	CheckTransaction(ctx context.Context, tranID string) (*CheckResult, error)
}

// Cache is the subset of *redis.Client used for caching.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedClient remembers approved lookups. APPROVED is terminal at the
// provider, so only results carrying an approved entry are stored; pending
// and failed queries always go upstream.
type CachedClient struct {
	next  Checker
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedClient(next Checker, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{next: next, cache: cache, ttl: ttl, log: logger}
}

func (c *CachedClient) CheckTransaction(ctx context.Context, tranID string) (*CheckResult, error) {
	key := cacheKeyPrefix + tranID

	cached, err := c.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var result CheckResult
		if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
			return &result, nil
		}

		c.log.Warn("discarding unreadable cached check", "tran_id", tranID)
	case !errors.Is(err, redis.Nil):
		c.log.Warn("check cache read failed", "tran_id", tranID, "error", err)
	}

	result, err := c.next.CheckTransaction(ctx, tranID)
	if err != nil {
		return nil, err
	}

	if _, approved := result.Approved(); !approved || !result.OK() {
		return result, nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}

	if err := c.cache.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.log.Warn("check cache write failed", "tran_id", tranID, "error", err)
	}

	return result, nil
}
