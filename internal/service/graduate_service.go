package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	"github.com/noah-isme/ppgee-dashboard-api/internal/stats"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

// GraduateService handles manual graduate records.
type GraduateService struct {
	records   RecordDispatcher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGraduateService constructs a GraduateService.
func NewGraduateService(records RecordDispatcher, validate *validator.Validate, logger *zap.Logger) *GraduateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraduateService{records: records, validator: validate, logger: logger}
}

// List returns graduates passing filter, in insertion order.
func (s *GraduateService) List(_ context.Context, filter models.StatsFilter) []models.Graduate {
	current, _ := s.records.Snapshot()
	return stats.Filter(current.Graduates, filter)
}

// Get returns one graduate by id.
func (s *GraduateService) Get(_ context.Context, id string) (*models.Graduate, error) {
	current, _ := s.records.Snapshot()
	for _, g := range current.Graduates {
		if g.ID == id {
			out := g
			return &out, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "graduate not found")
}

// Create validates and stores a graduate under a fresh id.
func (s *GraduateService) Create(ctx context.Context, g models.Graduate) (*models.Graduate, error) {
	g.ID = uuid.NewString()
	if err := s.validator.Struct(g); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid graduate payload")
	}
	if _, err := s.records.Dispatch(ctx, state.AddGraduate{Graduate: g}); err != nil {
		return nil, err
	}
	s.logger.Info("graduate created", zap.String("graduate_id", g.ID))
	return &g, nil
}

// Update replaces the graduate stored under id.
func (s *GraduateService) Update(ctx context.Context, id string, g models.Graduate) (*models.Graduate, error) {
	g.ID = id
	if err := s.validator.Struct(g); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid graduate payload")
	}
	if _, err := s.records.Dispatch(ctx, state.UpdateGraduate{Graduate: g}); err != nil {
		return nil, notFoundAs(err, "graduate not found")
	}
	return &g, nil
}

// Delete removes the graduate stored under id.
func (s *GraduateService) Delete(ctx context.Context, id string) error {
	if _, err := s.records.Dispatch(ctx, state.DeleteGraduate{ID: id}); err != nil {
		return notFoundAs(err, "graduate not found")
	}
	s.logger.Info("graduate deleted", zap.String("graduate_id", id))
	return nil
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, appErrors.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return err
}
