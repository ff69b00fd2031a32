package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

const evaluationNotFoundText = "evaluation not found"

type evaluationRepository interface {
	List(ctx context.Context, filter models.EvaluationFilter) ([]models.TeacherEvaluation, int, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherEvaluation, error)
	FindByID(ctx context.Context, id string) (*models.TeacherEvaluation, error)
	Create(ctx context.Context, evaluation *models.TeacherEvaluation) error
	Replace(ctx context.Context, evaluation *models.TeacherEvaluation) error
	Delete(ctx context.Context, id string) error
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// EvaluationService manages evaluation records. Every record it returns
// carries the derived summary; the summary is never stored.
type EvaluationService struct {
	repo      evaluationRepository
	teachers  teacherFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs an EvaluationService. cache may be nil.
func NewEvaluationService(repo evaluationRepository, teachers teacherFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{repo: repo, teachers: teachers, cache: cache, validator: validate, logger: logger}
}

// List returns evaluations newest-first.
func (s *EvaluationService) List(ctx context.Context, filter models.EvaluationFilter) ([]dto.EvaluationResponse, *models.Pagination, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluations")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	return dto.NewEvaluationResponses(items), &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListByTeacher returns a teacher's evaluations newest-first by monitoring date.
func (s *EvaluationService) ListByTeacher(ctx context.Context, teacherID string) ([]dto.EvaluationResponse, error) {
	key := evaluationCacheKey + "teacher:" + teacherID
	var cached []dto.EvaluationResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, teacherNotFoundText)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	items, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluations")
	}
	resp := dto.NewEvaluationResponses(items)
	_ = s.cache.Set(ctx, key, resp, 0)
	return resp, nil
}

// Get returns one evaluation.
func (s *EvaluationService) Get(ctx context.Context, id string) (*dto.EvaluationResponse, error) {
	key := evaluationCacheKey + id
	var cached dto.EvaluationResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}
	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEvaluationResponse(*evaluation)
	_ = s.cache.Set(ctx, key, resp, 0)
	return &resp, nil
}

// Save creates the evaluation when id is empty and otherwise replaces the
// stored record in full. Replacement keeps createdAt and refreshes updatedAt.
func (s *EvaluationService) Save(ctx context.Context, id string, req dto.EvaluationRequest) (*dto.EvaluationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
	}
	if req.Date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, teacherNotFoundText)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	var evaluation models.TeacherEvaluation
	if id == "" {
		req.Apply(&evaluation)
		if err := s.repo.Create(ctx, &evaluation); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create evaluation")
		}
		s.logger.Info("evaluation created", zap.String("evaluation_id", evaluation.ID), zap.String("teacher_id", evaluation.TeacherID))
	} else {
		existing, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		evaluation = models.TeacherEvaluation{ID: existing.ID, CreatedAt: existing.CreatedAt}
		req.Apply(&evaluation)
		if err := s.repo.Replace(ctx, &evaluation); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, evaluationNotFoundText)
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update evaluation")
		}
		s.invalidate(ctx, existing.TeacherID)
	}
	s.invalidate(ctx, evaluation.TeacherID, evaluation.ID)

	resp := dto.NewEvaluationResponse(evaluation)
	return &resp, nil
}

// Delete hard-removes an evaluation.
func (s *EvaluationService) Delete(ctx context.Context, id string) error {
	existing, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, evaluationNotFoundText)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete evaluation")
	}
	s.invalidate(ctx, existing.TeacherID, id)
	s.logger.Info("evaluation deleted", zap.String("evaluation_id", id))
	return nil
}

func (s *EvaluationService) load(ctx context.Context, id string) (*models.TeacherEvaluation, error) {
	evaluation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, evaluationNotFoundText)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}
	return evaluation, nil
}

func (s *EvaluationService) invalidate(ctx context.Context, teacherID string, ids ...string) {
	patterns := []string{evaluationCacheKey + "teacher:" + teacherID}
	for _, id := range ids {
		patterns = append(patterns, evaluationCacheKey+id)
	}
	_ = s.cache.Invalidate(ctx, patterns...)
}
