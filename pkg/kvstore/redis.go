package kvstore

import (
	"context"
	"fmt"

	"github.com/jlizarraga/healthybreads-backend/pkg/redis"
)

// RedisStore keeps records as namespaced string values.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the shared redis client.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.client.StorageKey(key))
	if redis.IsNil(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading record %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.client.StorageKey(key), string(value), 0); err != nil {
		return fmt.Errorf("writing record %q: %w", key, err)
	}
	return nil
}
