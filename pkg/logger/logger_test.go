package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/ppgee-dashboard-api/pkg/config"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/middleware/requestid"
)

func TestNewHonoursLevel(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "warn", Format: "console"}}
	l, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfoOnBadLevel(t *testing.T) {
	cfg := &config.Config{Env: config.EnvDevelopment, Log: config.LogConfig{Level: "loud"}}
	l, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(requestid.Middleware(), GinMiddleware(zap.New(core)))
	r.GET("/graduates/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/graduates/42", nil)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "/graduates/:id", first["route"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.EqualValues(t, 200, first["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
