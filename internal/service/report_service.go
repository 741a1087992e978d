package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/importer"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/stats"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/export"
)

// Report formats.
const (
	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

// rosterHeaders reuse the import column names so a CSV report reads like the source sheet.
var rosterHeaders = []string{
	importer.HeaderStudentName,
	importer.HeaderCourse,
	importer.HeaderStatus,
	importer.HeaderEntryYear,
	importer.HeaderDefenseYear,
	importer.HeaderAdvisor,
	importer.HeaderDefenseTitle,
	importer.HeaderEmployer,
}

// ReportFile is a rendered roster report.
type ReportFile struct {
	FileName    string
	ContentType string
	Data        []byte
	Rows        int
}

// ReportService renders the filtered graduate roster as CSV or PDF.
type ReportService struct {
	records RecordDispatcher
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(records RecordDispatcher, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	pdf := export.NewPDFExporter()
	pdf.Widths = map[string]float64{
		importer.HeaderStudentName:  2,
		importer.HeaderAdvisor:      1.6,
		importer.HeaderDefenseTitle: 3,
		importer.HeaderEmployer:     1.6,
	}
	return &ReportService{records: records, csv: export.NewCSVExporter(), pdf: pdf, logger: logger, now: time.Now}
}

// GraduateRoster renders the graduates matching filter; nil means the default filter.
func (s *ReportService) GraduateRoster(_ context.Context, format string, filter *models.StatsFilter) (*ReportFile, error) {
	current, _ := s.records.Snapshot()
	f := stats.DefaultFilter(current.Graduates)
	if filter != nil {
		f = *filter
	}
	graduates := stats.Filter(current.Graduates, f)
	data := rosterDataset(graduates)

	stamp := s.now().UTC().Format("2006-01-02")
	var (
		out *ReportFile
		err error
	)
	switch strings.ToLower(format) {
	case "", ReportFormatCSV:
		var raw []byte
		raw, err = s.csv.Render(data)
		out = &ReportFile{FileName: "ppgee-egressos-" + stamp + ".csv", ContentType: export.CSVContentType, Data: raw}
	case ReportFormatPDF:
		var raw []byte
		raw, err = s.pdf.Render(data, "PPGEE - Egressos", describeFilter(f))
		out = &ReportFile{FileName: "ppgee-egressos-" + stamp + ".pdf", ContentType: export.PDFContentType, Data: raw}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to render report")
	}
	out.Rows = len(graduates)
	s.logger.Info("roster report rendered", zap.String("format", format), zap.Int("rows", out.Rows))
	return out, nil
}

func rosterDataset(graduates []models.Graduate) export.Dataset {
	rows := make([]map[string]string, 0, len(graduates))
	for _, g := range graduates {
		defense := ""
		if g.DefenseYear != nil {
			defense = strconv.Itoa(*g.DefenseYear)
		}
		employer := ""
		if g.Employer != nil {
			employer = *g.Employer
		}
		rows = append(rows, map[string]string{
			importer.HeaderStudentName:  g.Name,
			importer.HeaderCourse:       string(g.Course),
			importer.HeaderStatus:       string(g.Status),
			importer.HeaderEntryYear:    strconv.Itoa(g.EntryYear),
			importer.HeaderDefenseYear:  defense,
			importer.HeaderAdvisor:      g.Advisor,
			importer.HeaderDefenseTitle: g.DefenseTitle,
			importer.HeaderEmployer:     employer,
		})
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}
}

func describeFilter(f models.StatsFilter) string {
	parts := make([]string, 0, 5)
	if f.StartYear != nil {
		parts = append(parts, fmt.Sprintf("de %d", *f.StartYear))
	}
	if f.EndYear != nil {
		parts = append(parts, fmt.Sprintf("até %d", *f.EndYear))
	}
	if f.Course != nil {
		parts = append(parts, string(*f.Course))
	}
	if f.Status != nil {
		parts = append(parts, string(*f.Status))
	}
	if f.Advisor != nil {
		parts = append(parts, "orientador "+*f.Advisor)
	}
	if len(parts) == 0 {
		return "Todos os registros"
	}
	return "Filtro: " + strings.Join(parts, ", ")
}
