package reporting

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps Redis based caching of rendered report payloads. A nil *Cache
// is valid and loads straight through.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// FetchJSON loads a cached value or populates it using the loader. Cache
// write failures are ignored; the loaded value is still returned.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return redis.Nil
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return reencode(value, dest)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if err := json.Unmarshal(raw, dest); err == nil {
			return nil
		}
		// Corrupt entry; fall through to reload.
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.client.Set(ctx, key, encoded, c.ttl).Err()
	return json.Unmarshal(encoded, dest)
}

func reencode(value, dest any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, dest)
}
