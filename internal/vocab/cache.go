package vocab

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPoolTTL = 10 * time.Minute

// Cache keeps entry pools in Redis so repeated session starts against
// the same quiz skip the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ PoolCache = (*Cache)(nil)

// NewCache builds a Redis-backed pool cache. A non-positive TTL falls
// back to the default.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultPoolTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(quizKey string) string {
	return "vocab:pool:" + quizKey
}

// Get returns the cached pool, or nil on a miss.
func (c *Cache) Get(ctx context.Context, quizKey string) ([]Entry, error) {
	data, err := c.client.Get(ctx, c.key(quizKey)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Set stores a pool with the configured TTL.
func (c *Cache) Set(ctx context.Context, quizKey string, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(quizKey), data, c.ttl).Err()
}
