package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppgee-dashboard-api/internal/importer"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/response"
)

type importService interface {
	Import(ctx context.Context, kind importer.Kind, r io.Reader) (*models.ImportResult, error)
	MaxBytes() int64
}

// ImportHandler accepts spreadsheet uploads.
type ImportHandler struct {
	service importService
}

// NewImportHandler constructs handler.
func NewImportHandler(svc importService) *ImportHandler {
	return &ImportHandler{service: svc}
}

// Upload godoc
// @Summary Import spreadsheet
// @Description Appends the rows of the first worksheet that pass validation. Rows failing the required columns are skipped.
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "graduates, faculty or projects"
// @Param file formData file true "Workbook (.xlsx)"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /imports/{kind} [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	kind, ok := importer.ParseKind(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown import kind %q", c.Param("kind"))))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrValidation, err, "file is required"))
		return
	}
	if fileHeader.Size > h.service.MaxBytes() {
		response.Error(c, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", h.service.MaxBytes())))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.WrapAs(appErrors.ErrImportFileInvalid, err, "failed to open upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	res, err := h.service.Import(c.Request.Context(), kind, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}
