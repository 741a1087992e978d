// Package state holds the application records as an immutable value.
// Every transition goes through Apply, which returns a new State and never
// mutates its receiver, so callers can hand out snapshots without copying.
package state

import (
	"errors"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
)

// Collection names one of the three persisted record kinds.
type Collection string

const (
	Graduates Collection = "graduates"
	Faculty   Collection = "faculty"
	Projects  Collection = "projects"
)

// AllCollections lists every collection in persistence order.
var AllCollections = []Collection{Graduates, Faculty, Projects}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateID    = errors.New("record id already exists")
)

// State is the full set of records owned by the application.
type State struct {
	Graduates []models.Graduate
	Faculty   []models.Faculty
	Projects  []models.Project
}

// Empty returns a state with three empty, non-nil collections.
func Empty() State {
	return State{
		Graduates: []models.Graduate{},
		Faculty:   []models.Faculty{},
		Projects:  []models.Project{},
	}
}

// FromBackup builds a state from a backup document. Nil collections become empty.
func FromBackup(b models.Backup) State {
	s := State{
		Graduates: clone(b.Graduates),
		Faculty:   clone(b.Faculty),
		Projects:  clone(b.Projects),
	}
	return s.normalised()
}

// Backup returns the state as a backup document sharing no memory with s.
func (s State) Backup() models.Backup {
	n := s.normalised()
	return models.Backup{
		Graduates: clone(n.Graduates),
		Faculty:   clone(n.Faculty),
		Projects:  clone(n.Projects),
	}
}

// Apply runs action against s and reports which collections changed.
// On error the returned state is s and no collection is reported.
func (s State) Apply(action Action) (State, []Collection, error) {
	next, changed, err := action.apply(s)
	if err != nil {
		return s, nil, err
	}
	return next.normalised(), changed, nil
}

func (s State) normalised() State {
	if s.Graduates == nil {
		s.Graduates = []models.Graduate{}
	}
	if s.Faculty == nil {
		s.Faculty = []models.Faculty{}
	}
	if s.Projects == nil {
		s.Projects = []models.Project{}
	}
	return s
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func appendOne[T any](items []T, item T, idOf func(T) string) ([]T, error) {
	if indexOf(items, idOf(item), idOf) >= 0 {
		return nil, ErrDuplicateID
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item), nil
}

func appendBatch[T any](items, batch []T) []T {
	out := make([]T, 0, len(items)+len(batch))
	out = append(out, items...)
	return append(out, batch...)
}

func replace[T any](items []T, item T, idOf func(T) string) ([]T, error) {
	i := indexOf(items, idOf(item), idOf)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	out := clone(items)
	out[i] = item
	return out, nil
}

func remove[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	i := indexOf(items, id, idOf)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...), nil
}

func graduateID(g models.Graduate) string { return g.ID }
func facultyID(f models.Faculty) string   { return f.ID }
func projectID(p models.Project) string   { return p.ID }
