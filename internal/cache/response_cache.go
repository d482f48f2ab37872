package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache stores validated response payloads for the
// parameterless operations under short TTLs. It holds no request
// state; a nil client turns every operation into a no-op.
type ResponseCache struct {
	client *redis.Client
}

func NewResponseCache(client *redis.Client) *ResponseCache {
	return &ResponseCache{client: client}
}

// GetJSON reports whether the key was present and, if so, unmarshals it
// into out. Cache errors are swallowed as misses so an unhealthy Redis
// never fails a request.
func (c *ResponseCache) GetJSON(ctx context.Context, key string, out any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

func (c *ResponseCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return errors.New("cache ttl must be positive")
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}
