package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"untis-notifier/core/reconcile"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each snapshot as a JSON string under <prefix>:<kind>.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a store on top of a Redis client.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(kind reconcile.Kind) string {
	if s.prefix == "" {
		return string(kind)
	}
	return s.prefix + ":" + string(kind)
}

// Load implements reconcile.Store.
func (s *RedisStore) Load(ctx context.Context, kind reconcile.Kind) (*reconcile.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, reconcile.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.key(kind), err)
	}

	var snap reconcile.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.key(kind), err)
	}
	return &snap, nil
}

// Save implements reconcile.Store. SET replaces the whole document atomically.
func (s *RedisStore) Save(ctx context.Context, snap *reconcile.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(snap.Kind), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key(snap.Kind), err)
	}
	return nil
}
