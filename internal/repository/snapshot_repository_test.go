package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
)

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	repo := NewSnapshotRepository(kv)

	defense := 2020
	s := state.Empty()
	s.Graduates = []models.Graduate{{ID: "g1", Name: "Ana", EntryYear: 2018, DefenseYear: &defense, Course: models.CourseMasters, Status: models.StatusDefended}}
	s.Faculty = []models.Faculty{{ID: "f1", Name: "Dr. Silva", Category: "Permanente", Year: 2021}}

	for _, c := range state.AllCollections {
		require.NoError(t, repo.Save(ctx, c, s))
	}

	raw, err := kv.Get(ctx, KeyFaculty)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f1","nome":"Dr. Silva","categoria":"Permanente","ano":2021}]`, raw)

	graduates, err := repo.LoadGraduates(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Graduates, graduates)

	projects, err := repo.LoadProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestSnapshotRepositoryLoadErrors(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	repo := NewSnapshotRepository(kv)

	_, err := repo.LoadFaculty(ctx)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, KeyFaculty, "{not json"))
	_, err = repo.LoadFaculty(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}

func TestSnapshotKeyUnknownCollection(t *testing.T) {
	_, err := SnapshotKey(state.Collection("students"))
	assert.Error(t, err)
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	var dest map[string]int
	assert.Error(t, repo.Get(context.Background(), "stats:1", &dest))
	assert.NoError(t, repo.Set(context.Background(), "stats:1", map[string]int{"a": 1}, 0))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "stats:*"))
}
