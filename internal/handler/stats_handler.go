package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/middleware"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/stats"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type statsService interface {
	DefaultFilter(ctx context.Context) models.StatsFilter
	Summary(ctx context.Context, filter *models.StatsFilter) (*models.GraduateStats, bool, error)
}

// StatsHandler exposes graduate statistics.
type StatsHandler struct {
	service statsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(svc statsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// Graduates godoc
// @Summary Graduate statistics
// @Description Aggregates under the given filter. Without any filter parameter the default filter applies.
// @Tags Statistics
// @Produce json
// @Param startYear query int false "First defense year"
// @Param endYear query int false "Last defense year"
// @Param course query string false "Mestrado, Doutorado or all"
// @Param status query string false "Defendido, Cursando or all"
// @Param advisor query string false "Advisor name or all"
// @Success 200 {object} response.Envelope
// @Router /stats/graduates [get]
func (h *StatsHandler) Graduates(c *gin.Context) {
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

	summary, hit, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// DefaultFilter godoc
// @Summary Default statistics filter
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/filter-default [get]
func (h *StatsHandler) DefaultFilter(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.DefaultFilter(c.Request.Context()), nil)
}
