package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/importer"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/state"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

const defaultImportMaxBytes int64 = 10 * 1024 * 1024

// ImportService turns uploaded workbooks into one batch append per upload.
type ImportService struct {
	records  RecordDispatcher
	importer *importer.Importer
	metrics  *MetricsService
	logger   *zap.Logger
	maxBytes int64
}

// NewImportService constructs an ImportService. maxBytes <= 0 uses 10 MiB.
func NewImportService(records RecordDispatcher, imp *importer.Importer, metrics *MetricsService, logger *zap.Logger, maxBytes int64) *ImportService {
	if imp == nil {
		imp = importer.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = defaultImportMaxBytes
	}
	return &ImportService{records: records, importer: imp, metrics: metrics, logger: logger, maxBytes: maxBytes}
}

// MaxBytes is the largest accepted upload.
func (s *ImportService) MaxBytes() int64 {
	return s.maxBytes
}

// Import reads the first sheet of the workbook in r and appends every row
// that passes its gate. Rejected rows are skipped without failing the upload.
func (s *ImportService) Import(ctx context.Context, kind importer.Kind, r io.Reader) (*models.ImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrImportFileInvalid, err, "failed to read upload")
	}
	if int64(len(raw)) > s.maxBytes {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	sheet, err := importer.ReadWorkbook(bytes.NewReader(raw))
	if err != nil {
		s.metrics.RecordImportFailure(string(kind))
		s.logger.Warn("workbook rejected", zap.String("kind", string(kind)), zap.Error(err))
		return nil, appErrors.WrapAs(appErrors.ErrImportFileInvalid, err, appErrors.ErrImportFileInvalid.Message)
	}
	if missing := importer.MissingHeaders(kind, sheet.Headers); len(missing) > 0 {
		s.logger.Warn("workbook lacks required columns, every row will be skipped",
			zap.String("kind", string(kind)),
			zap.String("sheet", sheet.Name),
			zap.Strings("missing", missing),
		)
	}

	var (
		action            state.Action
		accepted, skipped int
	)
	switch kind {
	case importer.KindGraduates:
		res := s.importer.Graduates(sheet.Rows)
		action, accepted, skipped = state.ImportGraduates{Graduates: res.Records}, len(res.Records), res.Skipped
	case importer.KindFaculty:
		res := s.importer.Faculty(sheet.Rows)
		action, accepted, skipped = state.ImportFaculty{Faculty: res.Records}, len(res.Records), res.Skipped
	case importer.KindProjects:
		res := s.importer.Projects(sheet.Rows)
		action, accepted, skipped = state.ImportProjects{Projects: res.Records}, len(res.Records), res.Skipped
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown import kind %q", kind))
	}

	if _, err := s.records.Dispatch(ctx, action); err != nil {
		return nil, err
	}
	s.metrics.RecordImport(string(kind), accepted, skipped)
	s.logger.Info("workbook imported",
		zap.String("kind", string(kind)),
		zap.Int("imported", accepted),
		zap.Int("skipped", skipped),
	)
	return &models.ImportResult{Kind: string(kind), Imported: accepted}, nil
}
