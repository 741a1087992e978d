package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheOptions configures a CacheService.
type CacheOptions struct {
	Enabled    bool
	DefaultTTL time.Duration
	// Namespace prefixes every key so deployments sharing one Redis stay apart.
	Namespace string
}

// CacheService fronts a CacheRepository with metrics and key namespacing.
// Errors are reported but callers may always treat them as a miss.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	opts    CacheOptions
	logger  *zap.Logger
}

// NewCacheService constructs a cache service. A nil repo disables caching.
func NewCacheService(repo CacheRepository, metrics *MetricsService, opts CacheOptions, logger *zap.Logger) *CacheService {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, opts: opts, logger: logger}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.opts.Enabled && s.repo != nil
}

func (s *CacheService) key(k string) string {
	if s.opts.Namespace == "" {
		return k
	}
	return s.opts.Namespace + k
}

// Get reports true when dest was filled from the cache.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}

	start := time.Now()
	err := s.repo.Get(ctx, s.key(key), dest)
	hit := err == nil
	s.metrics.RecordCacheOperation(hit, time.Since(start))

	if err == nil || errors.Is(err, appErrors.ErrCacheMiss) {
		return hit, nil
	}
	s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	return false, err
}

// Set stores value; a non-positive ttl uses the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.opts.DefaultTTL
	}

	start := time.Now()
	err := s.repo.Set(ctx, s.key(key), value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes every cached value matching pattern within the namespace.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	err := s.repo.DeleteByPattern(ctx, s.key(pattern))
	if err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
	return err
}
