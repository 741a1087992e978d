package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type projectService interface {
	List(ctx context.Context, filter models.ProjectFilter) []models.Project
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	Update(ctx context.Context, id string, p models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHandler manages research project endpoints.
type ProjectHandler struct {
	service projectService
}

// NewProjectHandler constructs handler.
func NewProjectHandler(svc projectService) *ProjectHandler {
	return &ProjectHandler{service: svc}
}

// List godoc
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param role query string false "Coordenador or Membro"
// @Param ongoing query bool false "Only projects without end year"
// @Param year query int false "Active in year"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var filter models.ProjectFilter
	if raw := c.Query("role"); raw != "" && raw != "all" {
		role := models.ProjectRole(raw)
		if role != models.ProjectRoleCoordinator && role != models.ProjectRoleMember {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "role must be Coordenador or Membro"))
			return
		}
		filter.Role = &role
	}
	var err error
	if filter.Ongoing, err = optionalBoolQuery(c, "ongoing"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Year, err = optionalIntQuery(c, "year"); err != nil {
		response.Error(c, err)
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
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p, nil)
}

// Create godoc
// @Summary Add project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body models.Project true "Project"
// @Success 201 {object} response.Envelope
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid project payload"))
		return
	}
	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, p)
}

// Update godoc
// @Summary Replace project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param payload body models.Project true "Project"
// @Success 200 {object} response.Envelope
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req models.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid project payload"))
		return
	}
	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p, nil)
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
