package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	rec := serve([]string{"https://dashboard.ppgee.ufam.edu.br/"}, http.MethodGet, "https://dashboard.ppgee.ufam.edu.br")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://dashboard.ppgee.ufam.edu.br", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	rec := serve([]string{"https://dashboard.ppgee.ufam.edu.br"}, http.MethodGet, "https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	rec := serve(nil, http.MethodOptions, "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
