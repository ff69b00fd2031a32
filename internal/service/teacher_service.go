package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

const (
	teacherCacheKey      = "teachers:"
	evaluationCacheKey   = "evaluations:"
	defaultPageSize      = 20
	teacherNotFoundText  = "teacher not found"
	duplicateDNIConflict = "a teacher with this DNI already exists"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ExistsByDNI(ctx context.Context, dni string, excludeID string) (bool, error)
	ExistingDNIs(ctx context.Context, dnis []string) (map[string]bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	CreateBatch(ctx context.Context, teachers []models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo      teacherRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService. cache may be nil.
func NewTeacherService(repo teacherRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = dto.NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns teachers ordered by surname plus pagination data.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	return teachers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	var cached models.Teacher
	if hit, _ := s.cache.Get(ctx, teacherCacheKey+id, &cached); hit {
		return &cached, nil
	}
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, teacherNotFoundText)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	_ = s.cache.Set(ctx, teacherCacheKey+id, teacher, 0)
	return teacher, nil
}

// Create registers a new teacher. totalHoras is always derived from horasPorTurno.
func (s *TeacherService) Create(ctx context.Context, req dto.TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	teacher := teacherFromRequest(req)
	if err := s.ensureUniqueDNI(ctx, teacher.DNI, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	s.logger.Info("teacher created", zap.String("teacher_id", teacher.ID))
	return &teacher, nil
}

// Update replaces an existing teacher's fields.
func (s *TeacherService) Update(ctx context.Context, id string, req dto.TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, teacherNotFoundText)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	teacher := teacherFromRequest(req)
	if err := s.ensureUniqueDNI(ctx, teacher.DNI, id); err != nil {
		return nil, err
	}
	teacher.ID = id
	teacher.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, &teacher); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, teacherNotFoundText)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}
	_ = s.cache.Invalidate(ctx, teacherCacheKey+id)
	return &teacher, nil
}

// Delete removes a teacher. Evaluations referencing it are removed by the store.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, teacherNotFoundText)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher")
	}
	_ = s.cache.Invalidate(ctx, teacherCacheKey+id, evaluationCacheKey+"*")
	s.logger.Info("teacher deleted", zap.String("teacher_id", id))
	return nil
}

// Import creates teachers in bulk. Rows whose DNI already exists, in the
// store or earlier in the same payload, are skipped and reported.
func (s *TeacherService) Import(ctx context.Context, req dto.ImportTeachersRequest) (*dto.ImportTeachersResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher import payload")
	}
	dnis := make([]string, 0, len(req.Teachers))
	for _, item := range req.Teachers {
		dnis = append(dnis, strings.TrimSpace(item.DNI))
	}
	existing, err := s.repo.ExistingDNIs(ctx, dnis)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check DNI uniqueness")
	}

	result := &dto.ImportTeachersResult{Skipped: []string{}}
	fresh := make([]models.Teacher, 0, len(req.Teachers))
	seen := make(map[string]bool, len(req.Teachers))
	for _, item := range req.Teachers {
		teacher := teacherFromRequest(item)
		if existing[teacher.DNI] || seen[teacher.DNI] {
			result.Skipped = append(result.Skipped, teacher.DNI)
			continue
		}
		seen[teacher.DNI] = true
		fresh = append(fresh, teacher)
	}
	if len(fresh) > 0 {
		if err := s.repo.CreateBatch(ctx, fresh); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import teachers")
		}
	}
	result.Imported = len(fresh)
	s.logger.Info("teachers imported", zap.Int("imported", result.Imported), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *TeacherService) ensureUniqueDNI(ctx context.Context, dni, excludeID string) error {
	exists, err := s.repo.ExistsByDNI(ctx, dni, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check DNI uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, duplicateDNIConflict)
	}
	return nil
}

func teacherFromRequest(req dto.TeacherRequest) models.Teacher {
	hours := models.ShiftHours{}
	for shift, h := range req.HorasPorTurno {
		hours[strings.TrimSpace(shift)] = h
	}
	teacher := models.Teacher{
		DNI:                    strings.TrimSpace(req.DNI),
		Apellidos:              strings.TrimSpace(req.Apellidos),
		Nombres:                strings.TrimSpace(req.Nombres),
		Telefono:               strings.TrimSpace(req.Telefono),
		CorreoPersonal:         strings.TrimSpace(req.CorreoPersonal),
		CorreoInstitucional:    strings.TrimSpace(req.CorreoInstitucional),
		Curso:                  req.Curso,
		CondicionInstitucional: req.CondicionInstitucional,
		HorasPorTurno:          hours,
	}
	teacher.RecomputeTotalHours()
	return teacher
}
