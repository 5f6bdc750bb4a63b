package snapstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/chestboard/internal/domain/model"
)

// RedisStore implements Store on a single Redis string key. The TTL doubles
// as a coarse staleness guard: an expired key simply reads as "no snapshot".
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed snapshot store.
func NewRedisStore(client *redis.Client, opts ...Option) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    defaultKey,
		ttl:    defaultMaxAge,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save persists the snapshot under the configured key.
func (s *RedisStore) Save(ctx context.Context, snap *model.Snapshot) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return nil
}

// Load reads the persisted snapshot. A missing or expired key is not an
// error: it reports ok=false.
func (s *RedisStore) Load(ctx context.Context) (*model.Snapshot, bool, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	snap, err := decode(payload)
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

// Clear removes the persisted snapshot.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return nil
}
