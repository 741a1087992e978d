package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/stats"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type graduateService interface {
	List(ctx context.Context, filter models.StatsFilter) []models.Graduate
	Get(ctx context.Context, id string) (*models.Graduate, error)
	Create(ctx context.Context, g models.Graduate) (*models.Graduate, error)
	Update(ctx context.Context, id string, g models.Graduate) (*models.Graduate, error)
	Delete(ctx context.Context, id string) error
}

// GraduateHandler manages graduate endpoints.
type GraduateHandler struct {
	service graduateService
}

// NewGraduateHandler constructs handler.
func NewGraduateHandler(svc graduateService) *GraduateHandler {
	return &GraduateHandler{service: svc}
}

// List godoc
// @Summary List graduates
// @Description Graduates matching the statistics filter, in insertion order
// @Tags Graduates
// @Produce json
// @Param startYear query int false "First defense year"
// @Param endYear query int false "Last defense year"
// @Param course query string false "Mestrado, Doutorado or all"
// @Param status query string false "Defendido, Cursando or all"
// @Param advisor query string false "Advisor name or all"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /graduates [get]
func (h *GraduateHandler) List(c *gin.Context) {
	filter, err := stats.ParseFilter(c.Request.URL.Query())
	if err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, err.Error()))
		return
	}
	page, err := parsePage(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination := paginate(h.service.List(c.Request.Context(), filter), page)
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get graduate
// @Tags Graduates
// @Produce json
// @Param id path string true "Graduate ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /graduates/{id} [get]
func (h *GraduateHandler) Get(c *gin.Context) {
	g, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, g, nil)
}

// Create godoc
// @Summary Add graduate
// @Tags Graduates
// @Accept json
// @Produce json
// @Param payload body models.Graduate true "Graduate"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /graduates [post]
func (h *GraduateHandler) Create(c *gin.Context) {
	var req models.Graduate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid graduate payload"))
		return
	}
	g, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, g)
}

// Update godoc
// @Summary Replace graduate
// @Tags Graduates
// @Accept json
// @Produce json
// @Param id path string true "Graduate ID"
// @Param payload body models.Graduate true "Graduate"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /graduates/{id} [put]
func (h *GraduateHandler) Update(c *gin.Context) {
	var req models.Graduate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid graduate payload"))
		return
	}
	g, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, g, nil)
}

// Delete godoc
// @Summary Delete graduate
// @Tags Graduates
// @Param id path string true "Graduate ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /graduates/{id} [delete]
func (h *GraduateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
