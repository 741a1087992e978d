package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type facultyService interface {
	List(ctx context.Context, filter models.FacultyFilter) []models.Faculty
	Get(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, f models.Faculty) (*models.Faculty, error)
	Update(ctx context.Context, id string, f models.Faculty) (*models.Faculty, error)
	Delete(ctx context.Context, id string) error
}

// FacultyHandler manages faculty endpoints.
type FacultyHandler struct {
	service facultyService
}

// NewFacultyHandler constructs handler.
func NewFacultyHandler(svc facultyService) *FacultyHandler {
	return &FacultyHandler{service: svc}
}

// List godoc
// @Summary List faculty records
// @Tags Faculty
// @Produce json
// @Param year query int false "Reference year"
// @Param category query string false "Category"
// @Param search query string false "Name substring"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	year, err := optionalIntQuery(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := parsePage(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.FacultyFilter{Year: year, Category: c.Query("category"), Search: c.Query("search")}
	items, pagination := paginate(h.service.List(c.Request.Context(), filter), page)
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get faculty record
// @Tags Faculty
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faculty/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	f, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, f, nil)
}

// Create godoc
// @Summary Add faculty record
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body models.Faculty true "Faculty"
// @Success 201 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req models.Faculty
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid faculty payload"))
		return
	}
	f, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, f)
}

// Update godoc
// @Summary Replace faculty record
// @Tags Faculty
// @Accept json
// @Produce json
// @Param id path string true "Faculty ID"
// @Param payload body models.Faculty true "Faculty"
// @Success 200 {object} response.Envelope
// @Router /faculty/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	var req models.Faculty
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid faculty payload"))
		return
	}
	f, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, f, nil)
}

// Delete godoc
// @Summary Delete faculty record
// @Tags Faculty
// @Param id path string true "Faculty ID"
// @Success 204
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
