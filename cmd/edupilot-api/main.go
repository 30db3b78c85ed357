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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ManithKumarpace/Edu-Pilot/api/swagger"
	"github.com/ManithKumarpace/Edu-Pilot/internal/handler"
	internalmiddleware "github.com/ManithKumarpace/Edu-Pilot/internal/middleware"
	"github.com/ManithKumarpace/Edu-Pilot/internal/repository"
	"github.com/ManithKumarpace/Edu-Pilot/internal/service"
	"github.com/ManithKumarpace/Edu-Pilot/internal/timetable"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/cache"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/config"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/export"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/logger"
	corsmiddleware "github.com/ManithKumarpace/Edu-Pilot/pkg/middleware/cors"
	reqidmiddleware "github.com/ManithKumarpace/Edu-Pilot/pkg/middleware/requestid"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/storage"
)

// @title Edu-Pilot Timetable API
// @version 1.0.0
// @description Generates exam and weekly school timetables and exports them as CSV or PDF.
// @BasePath /api/v1
// @schemes http

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

	extra, err := timetable.ParseCategories(cfg.Timetable.ExtraSubjects)
	if err != nil {
		logr.Fatal("invalid TIMETABLE_EXTRA_SUBJECTS", zap.Error(err))
	}
	catalog := timetable.DefaultCatalog().WithCategories(extra)

	metricsSvc := service.NewMetricsService()
	previewRepo, readiness := previewBackend(ctx, cfg, logr)
	previewSvc := service.NewPreviewService(previewRepo, metricsSvc, cfg.Timetable.PreviewTTL, logr)

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(fileStore, signer, service.ExportConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	}, metricsSvc, logr, export.NewCSVExporter(), export.NewPDFExporter())
	exportSvc.StartCleanup(ctx)

	timetableSvc := service.NewTimetableService(catalog, previewSvc, exportSvc, validator.New(), metricsSvc, logr, service.TimetableConfig{
		Sections:        cfg.Timetable.Sections,
		ElectiveSubject: cfg.Timetable.ElectiveSubject,
		MaxExamDays:     cfg.Timetable.MaxExamDays,
	})

	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics", "/health", "/ready"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/metrics/summary", metricsHandler.Summary)

	timetables := api.Group("/timetables")
	timetables.POST("/roster", timetableHandler.BuildRoster)
	timetables.POST("/exam", timetableHandler.GenerateExam)
	timetables.POST("/weekly", timetableHandler.GenerateWeekly)
	timetables.GET("/previews/:id", timetableHandler.GetPreview)
	timetables.DELETE("/previews/:id", timetableHandler.DeletePreview)
	timetables.POST("/previews/:id/export", timetableHandler.Export)
	timetables.GET("/downloads/:token", timetableHandler.Download)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// previewBackend picks Redis when preview caching is enabled and reachable, otherwise an
// in-process store that is purged on the preview TTL.
func previewBackend(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.PreviewRepository, map[string]handler.ReadinessCheck) {
	if cfg.Timetable.PreviewCache {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err == nil {
			repo := repository.NewPreviewRepository(client, logr)
			go func() {
				<-ctx.Done()
				_ = repo.Close()
			}()
			return repo, map[string]handler.ReadinessCheck{"previews": repo.Ping}
		}
		logr.Warn("redis unavailable, keeping previews in memory", zap.Error(err))
	}

	repo := repository.NewMemoryPreviewRepository()
	go func() {
		ticker := time.NewTicker(cfg.Timetable.PreviewTTL)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if purged := repo.Purge(); purged > 0 {
					logr.Debug("purged expired previews", zap.Int("count", purged))
				}
			}
		}
	}()
	return repo, nil
}
