package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/internal/report"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
	"github.com/noah-isme/teacher-evaluation-api/pkg/evidence"
	"github.com/noah-isme/teacher-evaluation-api/pkg/export"
)

// Generation kinds used in metrics and logs.
const (
	KindSingle = "single"
	KindBatch  = "batch"
)

type documentTeacherStore interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Teacher, error)
}

type documentEvaluationStore interface {
	FindByID(ctx context.Context, id string) (*models.TeacherEvaluation, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.TeacherEvaluation, error)
}

// Artifact is a generated file ready for delivery.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Evidence    report.EvidenceStatus
}

// DocumentService runs the generation pipeline: fetch, decode evidence,
// compose and render. It keeps no state between calls. Cancellation is the
// caller's job; the context is only checked between stages.
type DocumentService struct {
	teachers    documentTeacherStore
	evaluations documentEvaluationStore
	composer    *report.Composer
	renderers   map[models.ExportFormat]export.Renderer
	sheets      map[models.ExportFormat]export.SheetExporter
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// DocumentServiceOption customises a DocumentService.
type DocumentServiceOption func(*DocumentService)

// WithClock overrides the clock used for batch filenames.
func WithClock(now func() time.Time) DocumentServiceOption {
	return func(s *DocumentService) { s.now = now }
}

// WithRenderer registers or replaces the renderer for a document format.
func WithRenderer(format models.ExportFormat, r export.Renderer) DocumentServiceOption {
	return func(s *DocumentService) { s.renderers[format] = r }
}

// WithSheetExporter registers or replaces the exporter for a summary format.
func WithSheetExporter(format models.ExportFormat, e export.SheetExporter) DocumentServiceOption {
	return func(s *DocumentService) { s.sheets[format] = e }
}

// NewDocumentService wires the pipeline with DOCX/PDF renderers and XLSX/CSV summary exporters.
func NewDocumentService(teachers documentTeacherStore, evaluations documentEvaluationStore, composer *report.Composer, metrics *MetricsService, logger *zap.Logger, opts ...DocumentServiceOption) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if composer == nil {
		composer = report.NewComposer(report.DefaultBranding(), evidence.DefaultBox, logger)
	}
	s := &DocumentService{
		teachers:    teachers,
		evaluations: evaluations,
		composer:    composer,
		renderers: map[models.ExportFormat]export.Renderer{
			models.ExportFormatDOCX: export.NewDOCXRenderer(),
			models.ExportFormatPDF:  export.NewPDFRenderer(),
		},
		sheets: map[models.ExportFormat]export.SheetExporter{
			models.ExportFormatXLSX: export.NewXLSXExporter(report.ColorPrimary),
			models.ExportFormatCSV:  export.NewCSVExporter(),
		},
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluation generates the full report of one evaluation as docx or pdf.
// A malformed evidence payload aborts generation; evidence that decodes but
// cannot be embedded is replaced by a notice.
func (s *DocumentService) Evaluation(ctx context.Context, id string, format models.ExportFormat) (*Artifact, error) {
	if format == "" {
		format = models.ExportFormatDOCX
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported document format %q", format))
	}

	start := time.Now()
	artifact, err := s.evaluation(ctx, id, renderer)
	s.observe(KindSingle, format, start, err)
	if err != nil {
		return nil, err
	}
	s.logger.Info("evaluation document generated",
		zap.String("evaluation_id", id),
		zap.String("format", string(format)),
		zap.String("evidence", string(artifact.Evidence)),
		zap.Int("bytes", len(artifact.Data)),
	)
	return artifact, nil
}

func (s *DocumentService) evaluation(ctx context.Context, id string, renderer export.Renderer) (*Artifact, error) {
	eval, err := s.evaluations.FindByID(ctx, id)
	if err != nil {
		return nil, missingOrInternal(err, evaluationNotFoundText)
	}
	teacher, err := s.teachers.FindByID(ctx, eval.TeacherID)
	if err != nil {
		return nil, missingOrInternal(err, teacherNotFoundText)
	}
	if err := ctx.Err(); err != nil {
		return nil, appErrors.GenerationFailed(err)
	}

	payload, err := evidence.Decode(eval.EvidenceData())
	if err != nil {
		return nil, appErrors.GenerationFailed(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, appErrors.GenerationFailed(err)
	}

	doc, status := s.composer.Evaluation(*teacher, *eval, payload)
	if status == report.EvidenceDegraded {
		s.metrics.RecordEvidenceDegraded()
	}
	if err := ctx.Err(); err != nil {
		return nil, appErrors.GenerationFailed(err)
	}

	data, err := render(renderer, doc)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    report.EvaluationFilename(*teacher, eval.Date, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
		Evidence:    status,
	}, nil
}

// Batch generates one consolidated artifact for the evaluations, in the
// given order. docx and pdf produce the paginated batch document; xlsx and
// csv produce the summary sheet.
func (s *DocumentService) Batch(ctx context.Context, ids []string, format models.ExportFormat) (*Artifact, error) {
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one evaluation is required")
	}
	if format == "" {
		format = models.ExportFormatDOCX
	}
	renderer, isDocument := s.renderers[format]
	sheet, isSheet := s.sheets[format]
	if !isDocument && !isSheet {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	start := time.Now()
	artifact, err := s.batch(ctx, ids, renderer, sheet)
	s.observe(KindBatch, format, start, err)
	if err != nil {
		return nil, err
	}
	s.logger.Info("batch export generated",
		zap.Int("evaluations", len(ids)),
		zap.String("format", string(format)),
		zap.Int("bytes", len(artifact.Data)),
	)
	return artifact, nil
}

func (s *DocumentService) batch(ctx context.Context, ids []string, renderer export.Renderer, sheet export.SheetExporter) (*Artifact, error) {
	subjects, err := s.subjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, appErrors.GenerationFailed(err)
	}
	generatedAt := s.now()

	if renderer != nil {
		doc := s.composer.Batch(subjects)
		if err := ctx.Err(); err != nil {
			return nil, appErrors.GenerationFailed(err)
		}
		data, err := render(renderer, doc)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    report.BatchFilename(generatedAt, renderer.Extension()),
			ContentType: renderer.ContentType(),
			Data:        data,
		}, nil
	}

	data, err := sheet.Render(report.SummarySheet(subjects))
	if err != nil {
		return nil, appErrors.GenerationFailed(appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, appErrors.ErrRender.Message))
	}
	return &Artifact{
		Filename:    report.BatchFilename(generatedAt, sheet.Extension()),
		ContentType: sheet.ContentType(),
		Data:        data,
	}, nil
}

// subjects resolves every id to its (teacher, evaluation) pair, preserving
// input order. Any missing record is reported as not found.
func (s *DocumentService) subjects(ctx context.Context, ids []string) ([]report.Subject, error) {
	evaluations, err := s.evaluations.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}
	missing := make([]string, 0)
	teacherIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		eval, ok := evaluations[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !seen[eval.TeacherID] {
			seen[eval.TeacherID] = true
			teacherIDs = append(teacherIDs, eval.TeacherID)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluations not found: "+strings.Join(missing, ", "))
	}

	teachers, err := s.teachers.FindByIDs(ctx, teacherIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	subjects := make([]report.Subject, 0, len(ids))
	for _, id := range ids {
		eval := evaluations[id]
		teacher, ok := teachers[eval.TeacherID]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("teacher %s of evaluation %s not found", eval.TeacherID, id))
		}
		subjects = append(subjects, report.Subject{Teacher: teacher, Evaluation: eval})
	}
	return subjects, nil
}

func (s *DocumentService) observe(kind string, format models.ExportFormat, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		s.logger.Warn("document generation failed", zap.String("kind", kind), zap.String("format", string(format)), zap.Error(err))
	}
	s.metrics.ObserveGeneration(kind, string(format), outcome, time.Since(start))
}

func render(renderer export.Renderer, doc *export.Document) ([]byte, error) {
	data, err := renderer.Render(doc)
	if err != nil {
		return nil, appErrors.GenerationFailed(appErrors.Wrap(err, appErrors.ErrRender.Code, appErrors.ErrRender.Status, appErrors.ErrRender.Message))
	}
	return data, nil
}

func missingOrInternal(err error, notFound string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+strings.TrimSuffix(notFound, " not found"))
}
