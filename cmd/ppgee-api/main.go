package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/ppgee-dashboard-api/internal/handler"
	"github.com/noah-isme/ppgee-dashboard-api/internal/importer"
	"github.com/noah-isme/ppgee-dashboard-api/internal/models"
	"github.com/noah-isme/ppgee-dashboard-api/internal/repository"
	"github.com/noah-isme/ppgee-dashboard-api/internal/router"
	"github.com/noah-isme/ppgee-dashboard-api/internal/seed"
	"github.com/noah-isme/ppgee-dashboard-api/internal/service"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/cache"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/config"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/database"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/logger"
	"github.com/noah-isme/ppgee-dashboard-api/pkg/storage"
)

// @title PPGEE Dashboard API
// @version 1.0.0
// @description Graduate, faculty and research project records of the PPGEE graduate program.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	readiness := map[string]handler.ReadinessCheck{}

	kv, redisClient, err := openKeyValueStore(ctx, cfg, logr, readiness)
	if err != nil {
		return err
	}
	defer kv.Close() //nolint:errcheck

	if cfg.Stats.CacheEnabled && redisClient == nil {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("stats cache disabled, redis unavailable", zap.Error(err))
		} else {
			redisClient = client
			defer client.Close() //nolint:errcheck
			readiness["cache"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	var seedRoster func() ([]models.Graduate, error)
	if cfg.Storage.SeedGraduates {
		seedRoster = seed.Graduates
	}
	store := service.NewRecordStore(repository.NewSnapshotRepository(kv), seedRoster, metrics, logr)
	store.Load(ctx)

	authSvc, err := service.NewAuthService(service.DefaultCredentials, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "ppgee-dashboard-api",
	})
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, service.CacheOptions{
		Enabled:    cfg.Stats.CacheEnabled && redisClient != nil,
		DefaultTTL: cfg.Stats.CacheTTL,
		Namespace:  cfg.Storage.KeyPrefix,
	}, logr)
	statsSvc := service.NewStatsService(store, cacheSvc, cfg.Stats.CacheTTL, logr)
	// Summaries cached by an earlier run describe a roster this process may not have.
	statsSvc.Invalidate(ctx)

	files, err := storage.NewLocalStorage(cfg.Backups.StorageDir)
	if err != nil {
		return fmt.Errorf("init backup storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Backups.SignedURLSecret, cfg.Backups.SignedURLTTL)
	backupSvc := service.NewBackupService(store, files, signer, statsSvc, logr, service.BackupServiceConfig{
		APIPrefix: cfg.APIPrefix,
		Retention: cfg.Backups.SignedURLTTL,
	})
	go backupSvc.RunCleanup(ctx, cfg.Backups.CleanupInterval)

	engine := router.New(router.Config{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Readiness:      readiness,
	}, router.Services{
		Auth:      authSvc,
		Graduates: service.NewGraduateService(store, validate, logr),
		Faculty:   service.NewFacultyService(store, validate, logr),
		Projects:  service.NewProjectService(store, validate, logr),
		Imports:   service.NewImportService(store, importer.New(), metrics, logr, cfg.Imports.MaxFileSizeBytes),
		Stats:     statsSvc,
		Backups:   backupSvc,
		Reports:   service.NewReportService(store, logr),
		Metrics:   metrics,
	}, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openKeyValueStore connects the snapshot backend chosen by STORAGE_DRIVER.
// The redis driver also returns its client so the stats cache can share it.
func openKeyValueStore(ctx context.Context, cfg *config.Config, logr *zap.Logger, readiness map[string]handler.ReadinessCheck) (repository.KeyValueStore, *redis.Client, error) {
	switch cfg.Storage.Driver {
	case "", config.StorageMemory:
		logr.Warn("using in-memory storage, records are lost on restart")
		return repository.NewMemoryKeyValueStore(), nil, nil

	case config.StorageRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		readiness["storage"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return repository.NewRedisKeyValueStore(client, cfg.Storage.KeyPrefix), client, nil

	case config.StoragePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := repository.NewSQLKeyValueStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("prepare postgres schema: %w", err)
		}
		readiness["storage"] = db.PingContext
		return store, nil, nil

	case config.StorageSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		store := repository.NewSQLKeyValueStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("prepare sqlite schema: %w", err)
		}
		readiness["storage"] = db.PingContext
		return store, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
}
