package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

func TestErrorUsesTypedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Clone(appErrors.ErrPreconditionFailed, "confirmation required"))

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	var env struct {
		Error appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "PRECONDITION_FAILED", env.Error.Code)
	assert.Equal(t, "confirmation required", env.Error.Message)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestErrorRecordsUnknownFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}

func TestAttachmentSetsDisposition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "ppgee-backup-2024-01-02.json", "application/json", []byte(`{}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="ppgee-backup-2024-01-02.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "{}", w.Body.String())
}
