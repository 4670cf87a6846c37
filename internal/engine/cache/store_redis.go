package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"transferguard/pkg/sentinel"
)

const snapshotKeyPrefix = "tg:"

// RedisStore shares last-known snapshots across instances. Snapshots carry a
// TTL so a long-dead upstream eventually degrades to empty rather than
// serving arbitrarily old data forever.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}
	if err := s.client.Set(ctx, snapshotKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string, out any) error {
	raw, err := s.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal snapshot %s: %w", key, err)
	}
	return nil
}
