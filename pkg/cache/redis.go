package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/ppgee-dashboard-api/pkg/config"
)

const connectTimeout = 5 * time.Second

// Options derives client options from configuration. Snapshot writes are
// whole collections, so writes get more headroom than reads.
func Options(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  connectTimeout,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 4 * time.Second,
	}
}

// NewRedis connects to the server backing the redis snapshot driver and the
// statistics cache. A server that does not answer PING is an error.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", client.Options().Addr, err)
	}
	return client, nil
}
