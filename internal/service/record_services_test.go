package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestGraduateServiceLifecycle(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewGraduateService(store, nil, nil)
	ctx := context.Background()

	input := sampleGraduate("")
	input.Course = models.CourseDoctorate
	input.DefenseYear = intPtr(2022)
	created, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseDoctorate, got.Course)

	doctorate := models.CourseDoctorate
	listed := svc.List(ctx, models.StatsFilter{Course: &doctorate})
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	update := *created
	update.Status = models.StatusEnrolled
	update.DefenseYear = nil
	updated, err := svc.Update(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnrolled, updated.Status)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Len(t, svc.List(ctx, models.StatsFilter{}), 2)
}

func TestGraduateServiceRejectsInvalidPayload(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewGraduateService(store, nil, nil)

	invalid := sampleGraduate("")
	invalid.Course = "Especialização"
	_, err := svc.Create(context.Background(), invalid)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, version := store.Snapshot()
	assert.Equal(t, uint64(1), version)
}

func TestGraduateServiceUnknownIDs(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewGraduateService(store, nil, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", sampleGraduate(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, "graduate not found", appErrors.FromError(err).Message)

	assert.True(t, errors.Is(svc.Delete(ctx, "missing"), appErrors.ErrNotFound))
}

func TestFacultyServiceFilters(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewFacultyService(store, nil, nil)
	ctx := context.Background()

	for _, f := range []models.Faculty{
		{Name: "Ana Souza", Category: "Permanente", Year: 2023},
		{Name: "Bruno Lima", Category: "Colaborador", Year: 2023},
		{Name: "Ana Reis", Category: "Permanente", Year: 2022},
	} {
		_, err := svc.Create(ctx, f)
		require.NoError(t, err)
	}

	assert.Len(t, svc.List(ctx, models.FacultyFilter{}), 3)
	assert.Len(t, svc.List(ctx, models.FacultyFilter{Year: intPtr(2023)}), 2)
	assert.Len(t, svc.List(ctx, models.FacultyFilter{Category: "permanente"}), 2)
	assert.Len(t, svc.List(ctx, models.FacultyFilter{Search: "ana", Year: intPtr(2022)}), 1)

	_, err := svc.Create(ctx, models.Faculty{Name: "Sem ano", Category: "Permanente"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestProjectServiceFilters(t *testing.T) {
	store, _ := newMemoryRecordStore(t)
	svc := NewProjectService(store, nil, nil)
	ctx := context.Background()

	closed := sampleProject("")
	closed.EndYear = intPtr(2022)
	member := sampleProject("")
	member.Role = models.ProjectRoleMember
	member.StartYear = 2023

	_, err := svc.Create(ctx, closed)
	require.NoError(t, err)
	created, err := svc.Create(ctx, member)
	require.NoError(t, err)

	role := models.ProjectRoleMember
	ongoing := true
	assert.Len(t, svc.List(ctx, models.ProjectFilter{Role: &role}), 1)
	assert.Len(t, svc.List(ctx, models.ProjectFilter{Ongoing: &ongoing}), 1)
	assert.Len(t, svc.List(ctx, models.ProjectFilter{Year: intPtr(2021)}), 1)
	assert.Len(t, svc.List(ctx, models.ProjectFilter{Year: intPtr(2024)}), 1)

	backwards := *created
	backwards.EndYear = intPtr(2020)
	_, err = svc.Update(ctx, created.ID, backwards)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}
