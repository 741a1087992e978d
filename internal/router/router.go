// Package router assembles the HTTP surface of the API.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ppgee-dashboard-api/api/swagger"
	"github.com/noah-isme/ppgee-dashboard-api/internal/handler"
	"github.com/noah-isme/ppgee-dashboard-api/internal/middleware"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/service"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ppgee-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ppgee-dashboard-api/pkg/middleware/requestid"
)

// Config controls route registration.
type Config struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Readiness      map[string]handler.ReadinessCheck
}

// Services are the use cases the routes call into.
type Services struct {
	Auth      *service.AuthService
	Graduates *service.GraduateService
	Faculty   *service.FacultyService
	Projects  *service.ProjectService
	Imports   *service.ImportService
	Stats     *service.StatsService
	Backups   *service.BackupService
	Reports   *service.ReportService
	Metrics   *service.MetricsService
}

// New builds the gin engine with every route registered.
func New(cfg Config, svc Services, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	if svc.Metrics != nil {
		r.Use(middleware.Metrics(svc.Metrics))
	}

	var metricsHandler *handler.MetricsHandler
	if svc.Metrics != nil {
		metricsHandler = handler.NewMetricsHandler(svc.Metrics.Handler(), cfg.Readiness)
	} else {
		metricsHandler = handler.NewMetricsHandler(nil, cfg.Readiness)
	}
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	graduateHandler := handler.NewGraduateHandler(svc.Graduates)
	facultyHandler := handler.NewFacultyHandler(svc.Faculty)
	projectHandler := handler.NewProjectHandler(svc.Projects)
	importHandler := handler.NewImportHandler(svc.Imports)
	statsHandler := handler.NewStatsHandler(svc.Stats)
	backupHandler := handler.NewBackupHandler(svc.Backups)
	reportHandler := handler.NewReportHandler(svc.Reports)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.POST("/auth/login", authHandler.Login)
	api.GET("/backup/download", backupHandler.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(svc.Auth))
	admin := middleware.RequireRoles(models.RoleAdmin)

	secured.GET("/auth/me", authHandler.Me)

	graduates := secured.Group("/graduates")
	graduates.GET("", graduateHandler.List)
	graduates.GET("/:id", graduateHandler.Get)
	graduates.POST("", admin, graduateHandler.Create)
	graduates.PUT("/:id", admin, graduateHandler.Update)
	graduates.DELETE("/:id", admin, graduateHandler.Delete)

	faculty := secured.Group("/faculty")
	faculty.GET("", facultyHandler.List)
	faculty.GET("/:id", facultyHandler.Get)
	faculty.POST("", admin, facultyHandler.Create)
	faculty.PUT("/:id", admin, facultyHandler.Update)
	faculty.DELETE("/:id", admin, facultyHandler.Delete)

	projects := secured.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", admin, projectHandler.Create)
	projects.PUT("/:id", admin, projectHandler.Update)
	projects.DELETE("/:id", admin, projectHandler.Delete)

	secured.POST("/imports/:kind", admin, importHandler.Upload)

	secured.GET("/stats/graduates", statsHandler.Graduates)
	secured.GET("/stats/filter-default", statsHandler.DefaultFilter)

	secured.GET("/reports/graduates", reportHandler.Graduates)

	secured.GET("/backup", admin, backupHandler.Export)
	secured.POST("/backup/archive", admin, backupHandler.Archive)
	secured.POST("/backup/restore", admin, backupHandler.Restore)
	secured.POST("/data/clear", admin, backupHandler.Clear)

	return r
}
