package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

// ProjectService handles research project records.
type ProjectService struct {
	records   RecordDispatcher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(records RecordDispatcher, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{records: records, validator: validate, logger: logger}
}

// List returns projects matching filter. Year selects projects active in that year.
func (s *ProjectService) List(_ context.Context, filter models.ProjectFilter) []models.Project {
	current, _ := s.records.Snapshot()
	out := make([]models.Project, 0, len(current.Projects))
	for _, p := range current.Projects {
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}
		if filter.Ongoing != nil && p.Ongoing() != *filter.Ongoing {
			continue
		}
		if filter.Year != nil && !activeIn(p, *filter.Year) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func activeIn(p models.Project, year int) bool {
	if year < p.StartYear {
		return false
	}
	return p.EndYear == nil || year <= *p.EndYear
}

func (s *ProjectService) Get(_ context.Context, id string) (*models.Project, error) {
	current, _ := s.records.Snapshot()
	for _, p := range current.Projects {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
}

func (s *ProjectService) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	p.ID = uuid.NewString()
	if err := s.validator.Struct(p); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid project payload")
	}
	if _, err := s.records.Dispatch(ctx, state.AddProject{Project: p}); err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.String("project_id", p.ID))
	return &p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, p models.Project) (*models.Project, error) {
	p.ID = id
	if err := s.validator.Struct(p); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid project payload")
	}
	if _, err := s.records.Dispatch(ctx, state.UpdateProject{Project: p}); err != nil {
		return nil, notFoundAs(err, "project not found")
	}
	return &p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.records.Dispatch(ctx, state.DeleteProject{ID: id}); err != nil {
		return notFoundAs(err, "project not found")
	}
	return nil
}
