package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/repository"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	getErr  error
	deleted []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestStatsServiceCachesPerVersion(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, NewMetricsService(), CacheOptions{Enabled: true, DefaultTTL: time.Minute}, nil)
	svc := NewStatsService(store, cache, time.Minute, nil)
	ctx := context.Background()

	first, hit, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, first.Total)
	require.NotNil(t, first.Filter.StartYear)
	assert.Equal(t, 2020, *first.Filter.StartYear)

	again, hit, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.Total, again.Total)

	_, err = store.Dispatch(ctx, state.AddGraduate{Graduate: sampleGraduate("g-new")})
	require.NoError(t, err)

	fresh, hit, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	assert.False(t, hit, "a new data version misses the cache")
	assert.Equal(t, 3, fresh.Total)
}

func TestStatsServiceDegradesOnCacheFailure(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	repo := newMemoryCacheRepo()
	repo.getErr = errors.New("redis down")
	cache := NewCacheService(repo, nil, CacheOptions{Enabled: true, DefaultTTL: time.Minute}, nil)
	svc := NewStatsService(store, cache, time.Minute, nil)

	summary, hit, err := svc.Summary(context.Background(), &models.StatsFilter{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, summary.Total)
}

func TestStatsServiceWithoutCache(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewStatsService(store, nil, 0, nil)

	doctorate := models.CourseDoctorate
	summary, hit, err := svc.Summary(context.Background(), &models.StatsFilter{Course: &doctorate})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, []string{"Prof. X"}, summary.Advisors)

	svc.Invalidate(context.Background())
}

func TestStatsServiceInvalidateUsesNamespace(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, CacheOptions{Enabled: true, Namespace: "ppgee:"}, nil)
	svc := NewStatsService(store, cache, time.Minute, nil)
	ctx := context.Background()

	_, _, err := svc.Summary(ctx, nil)
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)
	for key := range repo.entries {
		assert.True(t, strings.HasPrefix(key, "ppgee:stats:graduates:"))
	}

	svc.Invalidate(ctx)
	assert.Equal(t, []string{"ppgee:stats:*"}, repo.deleted)
	assert.Empty(t, repo.entries)
}

func TestStatsServiceRestartDoesNotReuseEarlierSummaries(t *testing.T) {
	ctx := context.Background()
	snapshots := repository.NewSnapshotRepository(repository.NewMemoryKeyValueStore())
	repo := newMemoryCacheRepo()
	cacheOpts := CacheOptions{Enabled: true, DefaultTTL: time.Minute}

	first := NewRecordStore(snapshots, seedRoster, nil, nil)
	first.Load(ctx)
	firstStats := NewStatsService(first, NewCacheService(repo, nil, cacheOpts, nil), time.Minute, nil)
	_, err := first.Dispatch(ctx, state.AddGraduate{Graduate: sampleGraduate("g-new")})
	require.NoError(t, err)
	summary, _, err := firstStats.Summary(ctx, &models.StatsFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)

	// A fresh process reads the persisted roster while the shared cache still holds the earlier run.
	second := NewRecordStore(snapshots, seedRoster, nil, nil)
	second.Load(ctx)
	_, firstVersion := first.Snapshot()
	require.NotEqual(t, first.Epoch(), second.Epoch())

	_, err = second.Dispatch(ctx, state.DeleteGraduate{ID: "g-new"})
	require.NoError(t, err)
	_, secondVersion := second.Snapshot()
	require.Equal(t, firstVersion, secondVersion, "both processes reach the same version number")

	secondStats := NewStatsService(second, NewCacheService(repo, nil, cacheOpts, nil), time.Minute, nil)
	summary, hit, err := secondStats.Summary(ctx, &models.StatsFilter{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, summary.Total)
}

func TestStatsCacheKeyDependsOnFilterAndVersion(t *testing.T) {
	year := 2020
	a := statsCacheKey("e1", 1, models.StatsFilter{})
	b := statsCacheKey("e1", 1, models.StatsFilter{StartYear: &year})
	c := statsCacheKey("e1", 2, models.StatsFilter{})
	d := statsCacheKey("e2", 1, models.StatsFilter{})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Equal(t, a, statsCacheKey("e1", 1, models.StatsFilter{}))
	assert.True(t, strings.HasPrefix(a, "stats:graduates:e1:v1:"))
}
