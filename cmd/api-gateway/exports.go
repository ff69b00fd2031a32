package main

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/handler"
	"github.com/noah-isme/teacher-evaluation-api/internal/repository"
	"github.com/noah-isme/teacher-evaluation-api/internal/service"
	"github.com/noah-isme/teacher-evaluation-api/pkg/config"
	"github.com/noah-isme/teacher-evaluation-api/pkg/jobs"
	"github.com/noah-isme/teacher-evaluation-api/pkg/storage"
)

// setupExports wires the background batch export pipeline and starts its
// queue, recovery and cleanup loops under ctx.
func setupExports(
	ctx context.Context,
	cfg *config.Config,
	db *sqlx.DB,
	documents *service.DocumentService,
	validate *validator.Validate,
	metrics *service.MetricsService,
	logr *zap.Logger,
) (*jobs.Queue, *handler.ExportHandler, error) {
	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, nil, fmt.Errorf("export storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(store, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr)

	jobRepo := repository.NewExportJobRepository(db)
	worker := service.NewExportJobWorker(jobRepo, documents, exporter, metrics, cfg.Documents.GenerationTimeout, logr)
	queue := jobs.NewQueue(service.ExportJobType, worker.Handle, jobs.QueueConfig{
		Workers:     cfg.Exports.WorkerConcurrency,
		MaxRetries:  cfg.Exports.WorkerRetries,
		OnExhausted: worker.Fail,
		Logger:      logr,
	})
	queue.Start(ctx)

	jobSvc := service.NewExportJobService(jobRepo, queue, exporter, validate, logr, service.ExportJobServiceConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	jobSvc.RecoverPendingJobs(ctx)
	jobSvc.StartCleanup(ctx)

	return queue, handler.NewExportHandler(jobSvc), nil
}
