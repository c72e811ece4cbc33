package trainer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultSessionTTL = 12 * time.Hour

// SessionStore persists attempts between requests. Get returns
// (nil, nil) for an unknown or expired id.
type SessionStore interface {
	Save(ctx context.Context, attempt *Attempt) error
	Get(ctx context.Context, id uuid.UUID) (*Attempt, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisStore keeps serialized attempts in Redis with a sliding TTL;
// an abandoned attempt simply expires.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

var _ SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store. A non-positive
// TTL falls back to the default.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{redis: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) key(id uuid.UUID) string {
	return "trainer:session:" + id.String()
}

// Save writes the attempt snapshot, refreshing its TTL.
func (s *RedisStore) Save(ctx context.Context, attempt *Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	return s.redis.Set(ctx, s.key(attempt.ID), data, s.ttl).Err()
}

// Get loads an attempt snapshot.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Attempt, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	var attempt Attempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return &attempt, nil
}

// Delete discards an attempt.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.redis.Del(ctx, s.key(id)).Err()
}
