package qualification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultResultTTL = 30 * time.Minute

// ResultCache keeps the latest qualification result per contact in
// Redis so webhook handlers can serve repeat lookups without hitting
// Postgres.
type ResultCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewResultCache wraps a redis client. A non-positive TTL uses the
// default.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if client == nil {
		panic("qualification: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	return &ResultCache{redis: client, ttl: ttl}
}

func resultKey(locationID, contactID string) string {
	return fmt.Sprintf("qualification:%s:%s", locationID, contactID)
}

// Set stores the result under the contact's key.
func (c *ResultCache) Set(ctx context.Context, res Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("qualification: failed to marshal result: %w", err)
	}
	if err := c.redis.Set(ctx, resultKey(res.LocationID, res.ContactID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("qualification: failed to cache result: %w", err)
	}
	return nil
}

// Get returns the cached result, or nil when no entry exists.
func (c *ResultCache) Get(ctx context.Context, locationID, contactID string) (*Result, error) {
	data, err := c.redis.Get(ctx, resultKey(locationID, contactID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("qualification: failed to load cached result: %w", err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("qualification: failed to decode cached result: %w", err)
	}
	return &res, nil
}
