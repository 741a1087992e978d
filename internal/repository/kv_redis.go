package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKV is the subset of the go-redis client used by RedisKeyValueStore.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisKeyValueStore stores each value as a plain Redis string without expiry.
type RedisKeyValueStore struct {
	client redisKV
	closer func() error
	prefix string
}

// NewRedisKeyValueStore wraps client; prefix is prepended to every key.
func NewRedisKeyValueStore(client *redis.Client, prefix string) *RedisKeyValueStore {
	store := &RedisKeyValueStore{client: client, prefix: prefix}
	if client != nil {
		store.closer = client.Close
	}
	return store
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

func (s *RedisKeyValueStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
