package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

// FacultyService handles yearly faculty category records.
type FacultyService struct {
	records   RecordDispatcher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService constructs a FacultyService.
func NewFacultyService(records RecordDispatcher, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{records: records, validator: validate, logger: logger}
}

// List returns faculty records matching filter. Category matches ignore case; Search matches name substrings.
func (s *FacultyService) List(_ context.Context, filter models.FacultyFilter) []models.Faculty {
	current, _ := s.records.Snapshot()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Faculty, 0, len(current.Faculty))
	for _, f := range current.Faculty {
		if filter.Year != nil && f.Year != *filter.Year {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(f.Category, filter.Category) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(f.Name), search) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s *FacultyService) Get(_ context.Context, id string) (*models.Faculty, error) {
	current, _ := s.records.Snapshot()
	for _, f := range current.Faculty {
		if f.ID == id {
			out := f
			return &out, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty record not found")
}

func (s *FacultyService) Create(ctx context.Context, f models.Faculty) (*models.Faculty, error) {
	f.ID = uuid.NewString()
	if err := s.validator.Struct(f); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid faculty payload")
	}
	if _, err := s.records.Dispatch(ctx, state.AddFaculty{Faculty: f}); err != nil {
		return nil, err
	}
	s.logger.Info("faculty record created", zap.String("faculty_id", f.ID))
	return &f, nil
}

func (s *FacultyService) Update(ctx context.Context, id string, f models.Faculty) (*models.Faculty, error) {
	f.ID = id
	if err := s.validator.Struct(f); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid faculty payload")
	}
	if _, err := s.records.Dispatch(ctx, state.UpdateFaculty{Faculty: f}); err != nil {
		return nil, notFoundAs(err, "faculty record not found")
	}
	return &f, nil
}

func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if _, err := s.records.Dispatch(ctx, state.DeleteFaculty{ID: id}); err != nil {
		return notFoundAs(err, "faculty record not found")
	}
	return nil
}
