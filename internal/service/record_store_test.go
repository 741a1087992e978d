package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/repository"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

type failingSnapshotStore struct {
	mu       sync.Mutex
	loadErr  error
	saveErr  error
	attempts []state.Collection
}

func (f *failingSnapshotStore) LoadGraduates(context.Context) ([]models.Graduate, error) {
	return nil, f.loadErr
}

func (f *failingSnapshotStore) LoadFaculty(context.Context) ([]models.Faculty, error) {
	return nil, f.loadErr
}

func (f *failingSnapshotStore) LoadProjects(context.Context) ([]models.Project, error) {
	return nil, f.loadErr
}

func (f *failingSnapshotStore) Save(_ context.Context, c state.Collection, _ state.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, c)
	return f.saveErr
}

func seedRoster() ([]models.Graduate, error) {
	return []models.Graduate{sampleGraduate("seed-1"), sampleGraduate("seed-2")}, nil
}

func sampleGraduate(id string) models.Graduate {
	year := 2020
	return models.Graduate{
		ID:        id,
		Name:      "Ana " + id,
		EntryYear: 2018, DefenseYear: &year,
		Advisor: "Prof. X", DefenseTitle: "T",
		Course: models.CourseMasters, Status: models.StatusDefended,
	}
}

func sampleFaculty(id string) models.Faculty {
	return models.Faculty{ID: id, Name: "Prof. " + id, Category: "Permanente", Year: 2023}
}

func sampleProject(id string) models.Project {
	return models.Project{ID: id, Title: "Projeto " + id, Coordinator: "Prof. X", Role: models.ProjectRoleCoordinator, StartYear: 2021}
}

func newMemoryRecordStore(t *testing.T) (*RecordStore, *repository.SnapshotRepository) {
	t.Helper()
	snapshots := repository.NewSnapshotRepository(repository.NewMemoryKeyValueStore())
	store := NewRecordStore(snapshots, seedRoster, NewMetricsService(), nil)
	store.Load(context.Background())
	return store, snapshots
}

func TestRecordStoreLoadFallsBackToSeedWhenNothingStored(t *testing.T) {
	store, _ := newMemoryRecordStore(t)

	current, version := store.Snapshot()
	assert.Len(t, current.Graduates, 2)
	assert.Empty(t, current.Faculty)
	assert.Empty(t, current.Projects)
	assert.Equal(t, uint64(1), version)
}

func TestRecordStoreLoadFallsBackOnReadFailure(t *testing.T) {
	store := NewRecordStore(&failingSnapshotStore{loadErr: errors.New("corrupt")}, seedRoster, nil, nil)
	store.Load(context.Background())

	current, _ := store.Snapshot()
	assert.Len(t, current.Graduates, 2)
	assert.NotNil(t, current.Faculty)
	assert.Empty(t, current.Faculty)
}

func TestRecordStorePersistsChangedCollections(t *testing.T) {
	store, snapshots := newMemoryRecordStore(t)
	ctx := context.Background()

	_, err := store.Dispatch(ctx, state.AddFaculty{Faculty: sampleFaculty("f-1")})
	require.NoError(t, err)
	_, err = store.Dispatch(ctx, state.AddProject{Project: sampleProject("p-1")})
	require.NoError(t, err)

	faculty, err := snapshots.LoadFaculty(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Faculty{sampleFaculty("f-1")}, faculty)

	projects, err := snapshots.LoadProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p-1", projects[0].ID)

	_, err = snapshots.LoadGraduates(ctx)
	assert.True(t, errors.Is(err, repository.ErrKeyNotFound), "untouched collection is not written")

	reloaded := NewRecordStore(snapshots, nil, nil, nil)
	reloaded.Load(ctx)
	current, _ := reloaded.Snapshot()
	assert.Empty(t, current.Graduates)
	assert.Len(t, current.Faculty, 1)
	assert.Len(t, current.Projects, 1)
}

func TestRecordStoreWriteFailureIsNotSurfaced(t *testing.T) {
	fake := &failingSnapshotStore{saveErr: errors.New("quota exceeded")}
	metrics := NewMetricsService()
	store := NewRecordStore(fake, nil, metrics, nil)
	store.Load(context.Background())

	next, err := store.Dispatch(context.Background(), state.AddGraduate{Graduate: sampleGraduate("g-1")})
	require.NoError(t, err)
	assert.Len(t, next.Graduates, 1)

	current, version := store.Snapshot()
	assert.Len(t, current.Graduates, 1)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, []state.Collection{state.Graduates}, fake.attempts)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.snapshotWrites.WithLabelValues(string(state.Graduates), OutcomeFailure)))
}

func TestRecordStoreDispatchMapsReducerErrors(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	ctx := context.Background()

	_, err := store.Dispatch(ctx, state.DeleteGraduate{ID: "missing"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = store.Dispatch(ctx, state.AddGraduate{Graduate: sampleGraduate("seed-1")})
	assert.True(t, errors.Is(err, appErrors.ErrConflict))

	_, version := store.Snapshot()
	assert.Equal(t, uint64(1), version, "rejected actions leave the version untouched")
}

func TestRecordStoreClearAllWritesEmptyCollections(t *testing.T) {
	store, snapshots := newMemoryRecordStore(t)
	ctx := context.Background()
	_, err := store.Dispatch(ctx, state.AddFaculty{Faculty: sampleFaculty("f-1")})
	require.NoError(t, err)

	_, err = store.Dispatch(ctx, state.ClearAll{})
	require.NoError(t, err)

	current, _ := store.Snapshot()
	assert.Empty(t, current.Graduates)
	assert.Empty(t, current.Faculty)
	assert.Empty(t, current.Projects)

	graduates, err := snapshots.LoadGraduates(ctx)
	require.NoError(t, err)
	assert.Empty(t, graduates)
	faculty, err := snapshots.LoadFaculty(ctx)
	require.NoError(t, err)
	assert.Empty(t, faculty)
}

func TestRecordStoreEmptyImportKeepsVersion(t *testing.T) {
	store, _ := newMemoryRecordStore(t)

	_, err := store.Dispatch(context.Background(), state.ImportProjects{})
	require.NoError(t, err)

	_, version := store.Snapshot()
	assert.Equal(t, uint64(1), version)
}
