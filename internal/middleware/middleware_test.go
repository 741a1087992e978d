package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/ppgee-dashboard-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

type observation struct {
	method, path string
	status       int
}

type recordingObserver struct{ seen []observation }

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	r.seen = append(r.seen, observation{method, path, status})
}

func newProtectedRouter(role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v := stubValidator{claims: &models.JWTClaims{UserID: "user-1", Role: role}}
	r.DELETE("/graduates/:id", JWT(v), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestJWTAndRoles(t *testing.T) {
	cases := []struct {
		name   string
		role   models.UserRole
		header string
		status int
	}{
		{name: "missing header", role: models.RoleAdmin, header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", role: models.RoleAdmin, header: "Basic good", status: http.StatusUnauthorized},
		{name: "bad token", role: models.RoleAdmin, header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "viewer forbidden", role: models.RoleViewer, header: "Bearer good", status: http.StatusForbidden},
		{name: "admin allowed", role: models.RoleAdmin, header: "bearer good", status: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newProtectedRouter(tc.role)
			req := httptest.NewRequest(http.MethodDelete, "/graduates/g-1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequireRoles(models.RoleAdmin)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/graduates/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/graduates/abc", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []observation{
		{http.MethodGet, "/graduates/:id", http.StatusOK},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}, obs.seen)
}

func TestResponseMetaCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var meta map[string]interface{}
	r.GET("/stats", WithResponseMeta(), func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, true, meta["cache_hit"])
}
