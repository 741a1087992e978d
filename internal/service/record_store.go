package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/repository"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

const snapshotWriteTimeout = 5 * time.Second

// SnapshotStore persists whole collections.
type SnapshotStore interface {
	LoadGraduates(ctx context.Context) ([]models.Graduate, error)
	LoadFaculty(ctx context.Context) ([]models.Faculty, error)
	LoadProjects(ctx context.Context) ([]models.Project, error)
	Save(ctx context.Context, c state.Collection, s state.State) error
}

// RecordDispatcher is the view of the RecordStore the domain services depend on.
type RecordDispatcher interface {
	Snapshot() (state.State, uint64)
	Dispatch(ctx context.Context, action state.Action) (state.State, error)
}

// RecordStore owns the application state. Every accepted action bumps the
// version and rewrites each changed collection; write failures are logged
// and counted but never returned to the caller.
type RecordStore struct {
	mu        sync.RWMutex
	current   state.State
	version   uint64
	epoch     string
	snapshots SnapshotStore
	seed      func() ([]models.Graduate, error)
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewRecordStore constructs an empty store. seed supplies the graduate
// roster used when no snapshot can be read; nil means an empty roster.
func NewRecordStore(snapshots SnapshotStore, seed func() ([]models.Graduate, error), metrics *MetricsService, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{
		current:   state.Empty(),
		epoch:     uuid.NewString(),
		snapshots: snapshots,
		seed:      seed,
		metrics:   metrics,
		logger:    logger,
	}
}

// Load reads every collection once. Absent or unreadable snapshots fall back
// to the seed roster for graduates and to empty lists otherwise.
func (s *RecordStore) Load(ctx context.Context) {
	graduates, err := s.snapshots.LoadGraduates(ctx)
	if err != nil {
		s.logLoadFailure(state.Graduates, err)
		graduates = s.seedGraduates()
	}
	faculty, err := s.snapshots.LoadFaculty(ctx)
	if err != nil {
		s.logLoadFailure(state.Faculty, err)
		faculty = nil
	}
	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		s.logLoadFailure(state.Projects, err)
		projects = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = state.FromBackup(models.Backup{Graduates: graduates, Faculty: faculty, Projects: projects})
	s.version++
	s.epoch = uuid.NewString()
	s.publish()
	s.logger.Info("records loaded",
		zap.Int("graduates", len(s.current.Graduates)),
		zap.Int("faculty", len(s.current.Faculty)),
		zap.Int("projects", len(s.current.Projects)),
	)
}

// Snapshot returns the current state and its version. The state must be treated as read-only.
func (s *RecordStore) Snapshot() (state.State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.version
}

// Epoch identifies this load of the records. Versions restart on every process,
// so anything shared across processes must be keyed by epoch and version together.
func (s *RecordStore) Epoch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Dispatch applies action and persists the collections it changed.
// Unknown ids map to ErrNotFound and duplicate ids to ErrConflict.
func (s *RecordStore) Dispatch(ctx context.Context, action state.Action) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := s.current.Apply(action)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrRecordNotFound):
			return s.current, appErrors.Clone(appErrors.ErrNotFound, "record not found")
		case errors.Is(err, state.ErrDuplicateID):
			return s.current, appErrors.Clone(appErrors.ErrConflict, "record id already exists")
		default:
			return s.current, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to apply change")
		}
	}
	if len(changed) == 0 {
		return s.current, nil
	}

	s.current = next
	s.version++
	s.persist(ctx, changed)
	s.publish()
	return s.current, nil
}

// persist runs with the lock held so writes reach storage in dispatch order.
// A cancelled request does not abort the write.
func (s *RecordStore) persist(ctx context.Context, changed []state.Collection) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotWriteTimeout)
	defer cancel()

	for _, c := range changed {
		start := time.Now()
		err := s.snapshots.Save(writeCtx, c, s.current)
		s.metrics.ObserveSnapshotWrite(string(c), err, time.Since(start))
		if err != nil {
			s.logger.Warn("snapshot write failed",
				zap.String("collection", string(c)),
				zap.Uint64("version", s.version),
				zap.Error(err),
			)
		}
	}
}

func (s *RecordStore) publish() {
	s.metrics.SetRecordCounts(s.version, map[string]int{
		string(state.Graduates): len(s.current.Graduates),
		string(state.Faculty):   len(s.current.Faculty),
		string(state.Projects):  len(s.current.Projects),
	})
}

func (s *RecordStore) seedGraduates() []models.Graduate {
	if s.seed == nil {
		return nil
	}
	graduates, err := s.seed()
	if err != nil {
		s.logger.Warn("seed roster unavailable", zap.Error(err))
		return nil
	}
	return graduates
}

func (s *RecordStore) logLoadFailure(c state.Collection, err error) {
	if errors.Is(err, repository.ErrKeyNotFound) {
		s.logger.Info("no stored snapshot, using defaults", zap.String("collection", string(c)))
		return
	}
	s.logger.Warn("snapshot read failed, using defaults", zap.String("collection", string(c)), zap.Error(err))
}
