package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
)

// Storage keys, one per collection. They match the keys the browser dashboard
// used in localStorage so exported snapshots stay interchangeable.
const (
	KeyGraduates = "ppgee-graduates-data"
	KeyFaculty   = "ppgee-docentes-data"
	KeyProjects  = "ppgee-projetos-data"
)

// SnapshotKey returns the storage key of a collection.
func SnapshotKey(c state.Collection) (string, error) {
	switch c {
	case state.Graduates:
		return KeyGraduates, nil
	case state.Faculty:
		return KeyFaculty, nil
	case state.Projects:
		return KeyProjects, nil
	}
	return "", fmt.Errorf("unknown collection %q", c)
}

// SnapshotRepository stores every collection as one JSON array.
type SnapshotRepository struct {
	store KeyValueStore
}

// NewSnapshotRepository constructs the repository over a key-value store.
func NewSnapshotRepository(store KeyValueStore) *SnapshotRepository {
	return &SnapshotRepository{store: store}
}

func (r *SnapshotRepository) LoadGraduates(ctx context.Context) ([]models.Graduate, error) {
	var out []models.Graduate
	return out, r.load(ctx, KeyGraduates, &out)
}

func (r *SnapshotRepository) LoadFaculty(ctx context.Context) ([]models.Faculty, error) {
	var out []models.Faculty
	return out, r.load(ctx, KeyFaculty, &out)
}

func (r *SnapshotRepository) LoadProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	return out, r.load(ctx, KeyProjects, &out)
}

// Save writes collection c of s in full.
func (r *SnapshotRepository) Save(ctx context.Context, c state.Collection, s state.State) error {
	key, err := SnapshotKey(c)
	if err != nil {
		return err
	}
	var payload interface{}
	switch c {
	case state.Graduates:
		payload = s.Graduates
	case state.Faculty:
		payload = s.Faculty
	case state.Projects:
		payload = s.Projects
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c, err)
	}
	return r.store.Set(ctx, key, string(raw))
}

// load returns ErrKeyNotFound untouched so callers can tell absence from corruption.
func (r *SnapshotRepository) load(ctx context.Context, key string, dest interface{}) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
