package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/service"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type backupService interface {
	Export(ctx context.Context) (*service.BackupDownload, error)
	Archive(ctx context.Context) (*models.BackupArchive, error)
	Download(ctx context.Context, token string) (*service.BackupDownload, error)
	Restore(ctx context.Context, backup models.Backup) (*models.BackupArchive, error)
	Clear(ctx context.Context, req models.ClearRequest) error
}

// BackupHandler exposes backup, restore and wipe endpoints.
type BackupHandler struct {
	service backupService
}

// NewBackupHandler constructs handler.
func NewBackupHandler(svc backupService) *BackupHandler {
	return &BackupHandler{service: svc}
}

// Export godoc
// @Summary Download backup
// @Description JSON document with graduates, docentes and projetos
// @Tags Backup
// @Produce json
// @Success 200 {object} models.Backup
// @Router /backup [get]
func (h *BackupHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, "application/json", file.Data)
}

// Archive godoc
// @Summary Archive backup
// @Description Stores a backup on the server and returns a signed download link
// @Tags Backup
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /backup/archive [post]
func (h *BackupHandler) Archive(c *gin.Context) {
	archive, err := h.service.Archive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, archive)
}

// Download godoc
// @Summary Download archived backup
// @Tags Backup
// @Produce json
// @Param token query string true "Signed token"
// @Success 200 {object} models.Backup
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /backup/download [get]
func (h *BackupHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token required"))
		return
	}
	file, err := h.service.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.FileName, "application/json", file.Data)
}

// Restore godoc
// @Summary Restore backup
// @Description Replaces every collection with the document's contents
// @Tags Backup
// @Accept json
// @Produce json
// @Param payload body models.Backup true "Backup document"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /backup/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	var req models.Backup
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid backup document"))
		return
	}
	counts, err := h.service.Restore(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts, nil)
}

// Clear godoc
// @Summary Clear all data
// @Description Empties every collection. Requires {"confirm": true}.
// @Tags Backup
// @Accept json
// @Param payload body models.ClearRequest true "Confirmation"
// @Success 204
// @Failure 412 {object} response.Envelope
// @Router /data/clear [post]
func (h *BackupHandler) Clear(c *gin.Context) {
	var req models.ClearRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid confirmation payload"))
			return
		}
	}
	if err := h.service.Clear(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
