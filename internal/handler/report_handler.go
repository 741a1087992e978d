package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/service"
	"github.com/noah-isme/ppgee-dashboard-api/internal/stats"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type reportService interface {
	GraduateRoster(ctx context.Context, format string, filter *models.StatsFilter) (*service.ReportFile, error)
}

// ReportHandler exposes roster reports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Graduates godoc
// @Summary Graduate roster report
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param startYear query int false "First defense year"
// @Param endYear query int false "Last defense year"
// @Param course query string false "Mestrado, Doutorado or all"
// @Param status query string false "Defendido, Cursando or all"
// @Param advisor query string false "Advisor name or all"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/graduates [get]
func (h *ReportHandler) Graduates(c *gin.Context) {
	var filter *models.StatsFilter
	query := c.Request.URL.Query()
	if stats.HasFilterParams(query) {
		parsed, err := stats.ParseFilter(query)
		if err != nil {
			response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, err.Error()))
			return
		}
		filter = &parsed
	}

	file, err := h.service.GraduateRoster(c.Request.Context(), c.Query("format"), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, file.ContentType, file.Data)
}
