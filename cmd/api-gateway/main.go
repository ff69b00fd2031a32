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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/teacher-evaluation-api/api/swagger"
	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/handler"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/internal/report"
	"github.com/noah-isme/teacher-evaluation-api/internal/repository"
	"github.com/noah-isme/teacher-evaluation-api/internal/service"
	"github.com/noah-isme/teacher-evaluation-api/pkg/cache"
	"github.com/noah-isme/teacher-evaluation-api/pkg/config"
	"github.com/noah-isme/teacher-evaluation-api/pkg/database"
	"github.com/noah-isme/teacher-evaluation-api/pkg/evidence"
	"github.com/noah-isme/teacher-evaluation-api/pkg/logger"
)

// @title Teacher Evaluation API
// @version 1.0.0
// @description Teacher records, classroom evaluations and generated evaluation documents.
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
		}
	}

	metrics := service.NewMetricsService()
	validate := dto.NewValidator()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		repo := repository.NewCacheRepository(redisClient, "teacher-eval", logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	teacherRepo := repository.NewTeacherRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	teacherSvc := service.NewTeacherService(teacherRepo, cacheSvc, validate, logr)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, teacherRepo, cacheSvc, validate, logr)

	box := evidence.Box{Width: cfg.Documents.EvidenceMaxWidth, Height: cfg.Documents.EvidenceMaxHeight}
	composer := report.NewComposer(report.BrandingFromConfig(cfg.Documents), box, logr)
	documentSvc := service.NewDocumentService(teacherRepo, evaluationRepo, composer, metrics, logr)

	readiness := map[string]handler.Pinger{"database": db}
	if cfg.Cache.Enabled {
		readiness["redis"] = nil
		if redisClient != nil {
			readiness["redis"] = handler.PingerFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
		}
	}

	handlers := routeHandlers{
		teachers:    handler.NewTeacherHandler(teacherSvc, evaluationSvc),
		evaluations: handler.NewEvaluationHandler(evaluationSvc),
		documents:   handler.NewDocumentHandler(documentSvc, models.ExportFormat(cfg.Documents.DefaultFormat), cfg.Documents.GenerationTimeout),
		rubric:      handler.NewRubricHandler(),
		metrics:     handler.NewMetricsHandler(metrics, readiness),
	}

	if cfg.Exports.Enabled {
		queue, exportHandler, err := setupExports(ctx, cfg, db, documentSvc, validate, metrics, logr)
		if err != nil {
			logr.Fatal("failed to set up export jobs", zap.Error(err))
		}
		defer queue.Stop()
		handlers.exports = exportHandler
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(cfg, logr, metrics, handlers)

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}
