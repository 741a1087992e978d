package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	"github.com/noah-isme/ppgee-dashboard-api/internal/stats"
)

const statsCachePattern = "stats:*"

// statsSource is the RecordStore view the statistics depend on.
type statsSource interface {
	Snapshot() (state.State, uint64)
	Epoch() string
}

// StatsService computes graduate statistics with a version-keyed cache in front.
type StatsService struct {
	records statsSource
	cache   *CacheService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewStatsService constructs a StatsService. A nil cache disables caching.
func NewStatsService(records statsSource, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{records: records, cache: cache, ttl: ttl, logger: logger}
}

// DefaultFilter returns the filter applied when the client sends none.
func (s *StatsService) DefaultFilter(_ context.Context) models.StatsFilter {
	current, _ := s.records.Snapshot()
	return stats.DefaultFilter(current.Graduates)
}

// Summary computes the statistics under filter; nil means the default filter.
// The second result reports whether the summary came from the cache.
func (s *StatsService) Summary(ctx context.Context, filter *models.StatsFilter) (*models.GraduateStats, bool, error) {
	current, version := s.records.Snapshot()
	f := stats.DefaultFilter(current.Graduates)
	if filter != nil {
		f = *filter
	}

	key := statsCacheKey(s.records.Epoch(), version, f)
	var cached models.GraduateStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	summary := stats.Compute(current.Graduates, f)
	// Cache failures degrade to recomputation on the next request.
	_ = s.cache.Set(ctx, key, summary, s.ttl)
	return &summary, false, nil
}

// Invalidate drops every cached summary.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func statsCacheKey(epoch string, version uint64, f models.StatsFilter) string {
	sum := sha256.Sum256([]byte(stats.Encode(f).Encode()))
	return fmt.Sprintf("stats:graduates:%s:v%d:%s", epoch, version, hex.EncodeToString(sum[:8]))
}
