package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/storage"
)

const backupDateLayout = "2006-01-02"

type backupFileStorage interface {
	Save(name string, data []byte) (string, error)
	ReadFile(name string) ([]byte, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type backupSigner interface {
	Generate(id, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (id, relPath string, expiresAt time.Time, err error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context)
}

// BackupServiceConfig configures archive links and retention.
type BackupServiceConfig struct {
	APIPrefix string
	// Retention is how long archived files are kept; zero keeps them forever.
	Retention time.Duration
}

// BackupDownload is a backup document ready to be sent as an attachment.
type BackupDownload struct {
	FileName string
	Data     []byte
}

// BackupService exports, archives, restores and wipes the whole record set.
type BackupService struct {
	records RecordDispatcher
	storage backupFileStorage
	signer  backupSigner
	stats   statsInvalidator
	logger  *zap.Logger
	cfg     BackupServiceConfig
	now     func() time.Time
}

// NewBackupService constructs a BackupService. storage and signer may be nil when archiving is unused.
func NewBackupService(records RecordDispatcher, files backupFileStorage, signer backupSigner, stats statsInvalidator, logger *zap.Logger, cfg BackupServiceConfig) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &BackupService{records: records, storage: files, signer: signer, stats: stats, logger: logger, cfg: cfg, now: time.Now}
}

// FileName is the attachment name for a backup taken at ts.
func FileName(ts time.Time) string {
	return "ppgee-backup-" + ts.UTC().Format(backupDateLayout) + ".json"
}

// Export returns the current records as an indented JSON backup document.
func (s *BackupService) Export(_ context.Context) (*BackupDownload, error) {
	current, _ := s.records.Snapshot()
	data, err := json.MarshalIndent(current.Backup(), "", "  ")
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to encode backup")
	}
	return &BackupDownload{FileName: FileName(s.now()), Data: data}, nil
}

// Archive stores a backup on disk and returns a signed download link for it.
func (s *BackupService) Archive(ctx context.Context) (*models.BackupArchive, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "backup archive storage not configured")
	}
	current, _ := s.records.Snapshot()
	download, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	relPath := fmt.Sprintf("%s/%s-%s.json", s.now().UTC().Format("2006/01"), strings.TrimSuffix(download.FileName, ".json"), id)
	if _, err := s.storage.Save(relPath, download.Data); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to store backup")
	}
	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to sign download link")
	}

	s.logger.Info("backup archived", zap.String("backup_id", id), zap.String("path", relPath))
	return &models.BackupArchive{
		ID:          id,
		FileName:    download.FileName,
		DownloadURL: s.cfg.APIPrefix + "/backup/download?token=" + url.QueryEscape(token),
		ExpiresAt:   expiresAt.UTC(),
		Graduates:   len(current.Graduates),
		Faculty:     len(current.Faculty),
		Projects:    len(current.Projects),
	}, nil
}

// Download resolves a signed token to the archived backup it points at.
func (s *BackupService) Download(_ context.Context, token string) (*BackupDownload, error) {
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "backup archive not available")
	}
	id, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.WrapAs(appErrors.ErrForbidden, err, "download link expired")
		}
		return nil, appErrors.WrapAs(appErrors.ErrUnauthorized, err, "invalid download token")
	}
	if !strings.Contains(relPath, id) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid download token")
	}

	data, err := s.storage.ReadFile(relPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "backup file no longer available")
		}
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to read backup")
	}
	name := relPath[strings.LastIndex(relPath, "/")+1:]
	return &BackupDownload{FileName: name, Data: data}, nil
}

// Restore replaces all three collections with the backup's contents.
func (s *BackupService) Restore(ctx context.Context, backup models.Backup) (*models.BackupArchive, error) {
	if err := validateBackupIDs(backup); err != nil {
		return nil, err
	}
	next, err := s.records.Dispatch(ctx, state.Restore{Backup: backup})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("backup restored",
		zap.Int("graduates", len(next.Graduates)),
		zap.Int("faculty", len(next.Faculty)),
		zap.Int("projects", len(next.Projects)),
	)
	return &models.BackupArchive{Graduates: len(next.Graduates), Faculty: len(next.Faculty), Projects: len(next.Projects)}, nil
}

// Clear empties every collection. Without confirmation nothing changes.
func (s *BackupService) Clear(ctx context.Context, req models.ClearRequest) error {
	if !req.Confirm {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "clearing all data requires confirmation")
	}
	if _, err := s.records.Dispatch(ctx, state.ClearAll{}); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Warn("all records cleared")
	return nil
}

// RunCleanup removes expired archives every interval until ctx is done.
func (s *BackupService) RunCleanup(ctx context.Context, interval time.Duration) {
	if s.storage == nil || s.cfg.Retention <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// Cleanup removes archives older than the retention period.
func (s *BackupService) Cleanup() {
	if s.storage == nil || s.cfg.Retention <= 0 {
		return
	}
	removed, err := s.storage.CleanupOlderThan(s.cfg.Retention)
	if err != nil {
		s.logger.Warn("backup cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("expired backups removed", zap.Int("count", len(removed)))
	}
}

func (s *BackupService) invalidate(ctx context.Context) {
	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
}

func validateBackupIDs(b models.Backup) error {
	if err := uniqueIDs("graduates", len(b.Graduates), func(i int) string { return b.Graduates[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("docentes", len(b.Faculty), func(i int) string { return b.Faculty[i].ID }); err != nil {
		return err
	}
	return uniqueIDs("projetos", len(b.Projects), func(i int) string { return b.Projects[i].ID })
}

func uniqueIDs(collection string, n int, idAt func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if id == "" {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s[%d] has no id", collection, i))
		}
		if _, dup := seen[id]; dup {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s contains duplicate id %q", collection, id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
