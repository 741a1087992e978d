package state

import "github.com/noah-isme/ppgee-dashboard-api/internal/models"

// Action is a state transition. Implementations are the types in this file.
type Action interface {
	apply(State) (State, []Collection, error)
}

type AddGraduate struct{ Graduate models.Graduate }

type UpdateGraduate struct{ Graduate models.Graduate }

type DeleteGraduate struct{ ID string }

// ImportGraduates appends an already validated batch.
type ImportGraduates struct{ Graduates []models.Graduate }

type AddFaculty struct{ Faculty models.Faculty }

type UpdateFaculty struct{ Faculty models.Faculty }

type DeleteFaculty struct{ ID string }

type ImportFaculty struct{ Faculty []models.Faculty }

type AddProject struct{ Project models.Project }

type UpdateProject struct{ Project models.Project }

type DeleteProject struct{ ID string }

type ImportProjects struct{ Projects []models.Project }

// ClearAll empties every collection.
type ClearAll struct{}

// Restore replaces every collection with the backup content.
type Restore struct{ Backup models.Backup }

func (a AddGraduate) apply(s State) (State, []Collection, error) {
	items, err := appendOne(s.Graduates, a.Graduate, graduateID)
	if err != nil {
		return s, nil, err
	}
	s.Graduates = items
	return s, []Collection{Graduates}, nil
}

func (a UpdateGraduate) apply(s State) (State, []Collection, error) {
	items, err := replace(s.Graduates, a.Graduate, graduateID)
	if err != nil {
		return s, nil, err
	}
	s.Graduates = items
	return s, []Collection{Graduates}, nil
}

func (a DeleteGraduate) apply(s State) (State, []Collection, error) {
	items, err := remove(s.Graduates, a.ID, graduateID)
	if err != nil {
		return s, nil, err
	}
	s.Graduates = items
	return s, []Collection{Graduates}, nil
}

func (a ImportGraduates) apply(s State) (State, []Collection, error) {
	if len(a.Graduates) == 0 {
		return s, nil, nil
	}
	s.Graduates = appendBatch(s.Graduates, a.Graduates)
	return s, []Collection{Graduates}, nil
}

func (a AddFaculty) apply(s State) (State, []Collection, error) {
	items, err := appendOne(s.Faculty, a.Faculty, facultyID)
	if err != nil {
		return s, nil, err
	}
	s.Faculty = items
	return s, []Collection{Faculty}, nil
}

func (a UpdateFaculty) apply(s State) (State, []Collection, error) {
	items, err := replace(s.Faculty, a.Faculty, facultyID)
	if err != nil {
		return s, nil, err
	}
	s.Faculty = items
	return s, []Collection{Faculty}, nil
}

func (a DeleteFaculty) apply(s State) (State, []Collection, error) {
	items, err := remove(s.Faculty, a.ID, facultyID)
	if err != nil {
		return s, nil, err
	}
	s.Faculty = items
	return s, []Collection{Faculty}, nil
}

func (a ImportFaculty) apply(s State) (State, []Collection, error) {
	if len(a.Faculty) == 0 {
		return s, nil, nil
	}
	s.Faculty = appendBatch(s.Faculty, a.Faculty)
	return s, []Collection{Faculty}, nil
}

func (a AddProject) apply(s State) (State, []Collection, error) {
	items, err := appendOne(s.Projects, a.Project, projectID)
	if err != nil {
		return s, nil, err
	}
	s.Projects = items
	return s, []Collection{Projects}, nil
}

func (a UpdateProject) apply(s State) (State, []Collection, error) {
	items, err := replace(s.Projects, a.Project, projectID)
	if err != nil {
		return s, nil, err
	}
	s.Projects = items
	return s, []Collection{Projects}, nil
}

func (a DeleteProject) apply(s State) (State, []Collection, error) {
	items, err := remove(s.Projects, a.ID, projectID)
	if err != nil {
		return s, nil, err
	}
	s.Projects = items
	return s, []Collection{Projects}, nil
}

func (a ImportProjects) apply(s State) (State, []Collection, error) {
	if len(a.Projects) == 0 {
		return s, nil, nil
	}
	s.Projects = appendBatch(s.Projects, a.Projects)
	return s, []Collection{Projects}, nil
}

func (ClearAll) apply(State) (State, []Collection, error) {
	return Empty(), clone(AllCollections), nil
}

func (a Restore) apply(State) (State, []Collection, error) {
	return FromBackup(a.Backup), clone(AllCollections), nil
}
