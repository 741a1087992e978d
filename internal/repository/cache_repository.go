package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

const unlinkBatchSize = 100

// CacheRepository keeps JSON encoded statistics payloads in Redis.
// Without a client every lookup misses and every write is dropped.
type CacheRepository struct {
	client redis.UniversalClient
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(client redis.UniversalClient) *CacheRepository {
	return &CacheRepository{client: client}
}

// Get decodes the payload stored under key into dest.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return appErrors.ErrCacheMiss
	case err != nil:
		return fmt.Errorf("cache get %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		// A payload from an older layout is treated as absent.
		_ = r.client.Del(ctx, key).Err()
		return appErrors.ErrCacheMiss
	}
	return nil
}

// Set encodes value and stores it for ttl.
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache payload %q: %w", key, err)
	}
	return r.client.Set(ctx, key, payload, ttl).Err()
}

// DeleteByPattern unlinks every key matching pattern, in batches, while scanning.
func (r *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.client == nil {
		return nil
	}

	batch := make([]string, 0, unlinkBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := r.client.Unlink(ctx, batch...).Err()
		batch = batch[:0]
		return err
	}

	iter := r.client.Scan(ctx, 0, pattern, unlinkBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == unlinkBatchSize {
			if err := flush(); err != nil {
				return fmt.Errorf("cache unlink %q: %w", pattern, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %q: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return fmt.Errorf("cache unlink %q: %w", pattern, err)
	}
	return nil
}
