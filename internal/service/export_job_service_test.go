package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/internal/repository"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
	"github.com/noah-isme/teacher-evaluation-api/pkg/jobs"
)

type exportJobRepoStub struct {
	jobs     map[string]*models.ExportJob
	finished []models.ExportJob
}

func newExportJobRepoStub() *exportJobRepoStub {
	return &exportJobRepoStub{jobs: map[string]*models.ExportJob{}}
}

func (r *exportJobRepoStub) Create(ctx context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = time.Now().UTC()
	r.jobs[job.ID] = job
	return nil
}

func (r *exportJobRepoStub) GetByID(ctx context.Context, id string) (*models.ExportJob, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *job
	return &cp, nil
}

func (r *exportJobRepoStub) Update(ctx context.Context, id string, params repository.UpdateExportJobParams) error {
	job, ok := r.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.Filename != nil {
		job.Filename = params.Filename
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

func (r *exportJobRepoStub) ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error) {
	var queued []models.ExportJob
	for _, job := range r.jobs {
		if job.Status == models.ExportStatusQueued {
			queued = append(queued, *job)
		}
	}
	return queued, nil
}

func (r *exportJobRepoStub) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error) {
	return r.finished, nil
}

type queueStub struct {
	enqueued []jobs.Job
	err      error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, job)
	return nil
}

type batchStub struct {
	artifact *Artifact
	err      error
	gotIDs   []string
}

func (b *batchStub) Batch(ctx context.Context, ids []string, format models.ExportFormat) (*Artifact, error) {
	b.gotIDs = ids
	if b.err != nil {
		return nil, b.err
	}
	return b.artifact, nil
}

func TestExportJobServiceCreateJob(t *testing.T) {
	repo := newExportJobRepoStub()
	queue := &queueStub{}
	svc := NewExportJobService(repo, queue, newTestExportService(t), nil, zap.NewNop(), ExportJobServiceConfig{})

	resp, err := svc.CreateJob(context.Background(), dto.BatchExportRequest{EvaluationIDs: []string{"e-1", "e-2"}})
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusQueued, resp.Status)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, resp.ID, queue.enqueued[0].ID)
	assert.Equal(t, ExportJobType, queue.enqueued[0].Type)
	assert.Equal(t, models.ExportFormatDOCX, repo.jobs[resp.ID].Params.Format)

	_, err = svc.CreateJob(context.Background(), dto.BatchExportRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportJobServiceCreateJobEnqueueFailure(t *testing.T) {
	repo := newExportJobRepoStub()
	svc := NewExportJobService(repo, &queueStub{err: errors.New("stopped")}, newTestExportService(t), nil, zap.NewNop(), ExportJobServiceConfig{})

	_, err := svc.CreateJob(context.Background(), dto.BatchExportRequest{EvaluationIDs: []string{"e-1"}, Format: models.ExportFormatPDF})
	require.ErrorIs(t, err, appErrors.ErrInternal)
	for _, job := range repo.jobs {
		assert.Equal(t, models.ExportStatusFailed, job.Status)
	}
}

func TestExportJobWorkerLifecycle(t *testing.T) {
	repo := newExportJobRepoStub()
	exporter := newTestExportService(t)
	svc := NewExportJobService(repo, &queueStub{}, exporter, nil, zap.NewNop(), ExportJobServiceConfig{})
	resp, err := svc.CreateJob(context.Background(), dto.BatchExportRequest{EvaluationIDs: []string{"e-2", "e-1"}, Format: models.ExportFormatCSV})
	require.NoError(t, err)

	status, err := svc.GetStatus(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusQueued, status.Status)

	gen := &batchStub{artifact: &Artifact{Filename: "Reporte_Evaluaciones_20240320.csv", Data: []byte("N°,Docente\n")}}
	worker := NewExportJobWorker(repo, gen, exporter, NewMetricsService(), time.Second, zap.NewNop())
	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: resp.ID}))
	assert.Equal(t, []string{"e-2", "e-1"}, gen.gotIDs)

	status, err = svc.GetStatus(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusFinished, status.Status)
	assert.Equal(t, 100, status.Progress)
	require.NotNil(t, status.ResultURL)
	require.NotNil(t, status.Filename)
	assert.Equal(t, "Reporte_Evaluaciones_20240320.csv", *status.Filename)
	assert.Nil(t, status.Error)

	token := extractToken(*status.ResultURL)
	download, err := svc.ResolveDownload(context.Background(), token)
	require.NoError(t, err)
	body, err := io.ReadAll(download.Body)
	require.NoError(t, err)
	require.NoError(t, download.Body.Close())
	assert.Equal(t, "N°,Docente\n", string(body))
	assert.Equal(t, "Reporte_Evaluaciones_20240320.csv", download.Filename)
	assert.Equal(t, models.ExportFormatCSV, download.Format)

	_, err = svc.ResolveDownload(context.Background(), "bogus.token.value.sig")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestExportJobWorkerClientErrorFailsImmediately(t *testing.T) {
	repo := newExportJobRepoStub()
	job := &models.ExportJob{Params: models.ExportJobParams{EvaluationIDs: []string{"x"}, Format: models.ExportFormatDOCX}}
	require.NoError(t, repo.Create(context.Background(), job))

	gen := &batchStub{err: appErrors.Clone(appErrors.ErrNotFound, "evaluations not found: x")}
	worker := NewExportJobWorker(repo, gen, newTestExportService(t), nil, time.Second, zap.NewNop())

	require.NoError(t, worker.Handle(context.Background(), jobs.Job{ID: job.ID}))
	stored := repo.jobs[job.ID]
	assert.Equal(t, models.ExportStatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "evaluations not found")
	assert.NotNil(t, stored.FinishedAt)
}

func TestExportJobWorkerServerErrorRequeues(t *testing.T) {
	repo := newExportJobRepoStub()
	job := &models.ExportJob{Params: models.ExportJobParams{EvaluationIDs: []string{"e-1"}, Format: models.ExportFormatPDF}}
	require.NoError(t, repo.Create(context.Background(), job))

	gen := &batchStub{err: appErrors.GenerationFailed(errors.New("disk full"))}
	worker := NewExportJobWorker(repo, gen, newTestExportService(t), nil, time.Second, zap.NewNop())

	err := worker.Handle(context.Background(), jobs.Job{ID: job.ID})
	require.Error(t, err)
	assert.Equal(t, models.ExportStatusQueued, repo.jobs[job.ID].Status)

	worker.Fail(context.Background(), jobs.Job{ID: job.ID, Attempt: 3}, err)
	assert.Equal(t, models.ExportStatusFailed, repo.jobs[job.ID].Status)
}

func TestExportJobServiceRecoverAndCleanup(t *testing.T) {
	repo := newExportJobRepoStub()
	exporter := newTestExportService(t)
	queue := &queueStub{}
	svc := NewExportJobService(repo, queue, exporter, nil, zap.NewNop(), ExportJobServiceConfig{ResultTTL: time.Hour})

	queued := &models.ExportJob{Status: models.ExportStatusQueued}
	require.NoError(t, repo.Create(context.Background(), queued))
	svc.RecoverPendingJobs(context.Background())
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, queued.ID, queue.enqueued[0].ID)

	result, err := exporter.Store("old-job", &Artifact{Filename: "a.docx", Data: []byte("PK")})
	require.NoError(t, err)
	repo.finished = []models.ExportJob{{ID: "old-job", ResultURL: &result.URL}}

	svc.CleanupExpired(context.Background())
	_, err = exporter.Open(result.RelativePath)
	assert.Error(t, err)
}

func TestExportJobServiceGetStatusNotFound(t *testing.T) {
	svc := NewExportJobService(newExportJobRepoStub(), &queueStub{}, newTestExportService(t), nil, zap.NewNop(), ExportJobServiceConfig{})
	_, err := svc.GetStatus(context.Background(), "nope")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
