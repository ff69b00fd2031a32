package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/dto"
	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

func teacherRequest(dni string) dto.TeacherRequest {
	return dto.TeacherRequest{
		DNI:                    dni,
		Apellidos:              " Quispe Mamani ",
		Nombres:                "Rosa",
		Curso:                  models.CourseFisica,
		CondicionInstitucional: models.WorkConditionPartTime,
		HorasPorTurno:          map[string]int{"turno 1": 8, "turno 3": 4},
	}
}

func TestTeacherServiceCreateRecomputesTotalHours(t *testing.T) {
	repo := newMemTeacherRepo()
	svc := NewTeacherService(repo, nil, nil, zap.NewNop())

	teacher, err := svc.Create(context.Background(), teacherRequest("12345678"))
	require.NoError(t, err)
	assert.NotEmpty(t, teacher.ID)
	assert.Equal(t, "Quispe Mamani", teacher.Apellidos)
	assert.Equal(t, 12, teacher.TotalHoras)
}

func TestTeacherServiceCreateRejectsDuplicateDNI(t *testing.T) {
	svc := NewTeacherService(newMemTeacherRepo(sampleTeacher()), nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), teacherRequest("40123456"))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestTeacherServiceCreateValidates(t *testing.T) {
	svc := NewTeacherService(newMemTeacherRepo(), nil, nil, zap.NewNop())
	req := teacherRequest("123")

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestTeacherServiceUpdate(t *testing.T) {
	existing := sampleTeacher()
	other := sampleTeacher()
	other.ID = "t-2"
	other.DNI = "99999999"
	repo := newMemTeacherRepo(existing, other)
	svc := NewTeacherService(repo, nil, nil, zap.NewNop())

	updated, err := svc.Update(context.Background(), "t-1", teacherRequest("40123456"))
	require.NoError(t, err)
	assert.Equal(t, "t-1", updated.ID)
	assert.Equal(t, 12, repo.items["t-1"].TotalHoras)

	_, err = svc.Update(context.Background(), "t-1", teacherRequest("99999999"))
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Update(context.Background(), "missing", teacherRequest("11111111"))
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTeacherServiceGetUsesCache(t *testing.T) {
	repo := newMemTeacherRepo(sampleTeacher())
	cacheRepo := newMemCacheRepo()
	cache := NewCacheService(cacheRepo, nil, 0, zap.NewNop(), true)
	svc := NewTeacherService(repo, cache, nil, zap.NewNop())

	first, err := svc.Get(context.Background(), "t-1")
	require.NoError(t, err)
	repo.findErr = errors.New("db down")

	second, err := svc.Get(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, first.DNI, second.DNI)
}

func TestTeacherServiceGetNotFound(t *testing.T) {
	svc := NewTeacherService(newMemTeacherRepo(), nil, nil, zap.NewNop())
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTeacherServiceDelete(t *testing.T) {
	repo := newMemTeacherRepo(sampleTeacher())
	cacheRepo := newMemCacheRepo()
	svc := NewTeacherService(repo, NewCacheService(cacheRepo, nil, 0, nil, true), nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "t-1"))
	assert.Empty(t, repo.items)
	assert.Contains(t, cacheRepo.invalidated, "evaluations:*")

	assert.ErrorIs(t, svc.Delete(context.Background(), "t-1"), appErrors.ErrNotFound)
}

func TestTeacherServiceImportSkipsDuplicates(t *testing.T) {
	repo := newMemTeacherRepo(sampleTeacher())
	svc := NewTeacherService(repo, nil, nil, zap.NewNop())

	result, err := svc.Import(context.Background(), dto.ImportTeachersRequest{Teachers: []dto.TeacherRequest{
		teacherRequest("40123456"),
		teacherRequest("22222222"),
		teacherRequest("22222222"),
		teacherRequest("33333333"),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"40123456", "22222222"}, result.Skipped)
	assert.Len(t, repo.items, 3)
}

func TestTeacherServiceImportFailure(t *testing.T) {
	repo := newMemTeacherRepo()
	repo.batchErr = errors.New("tx aborted")
	svc := NewTeacherService(repo, nil, nil, zap.NewNop())

	_, err := svc.Import(context.Background(), dto.ImportTeachersRequest{Teachers: []dto.TeacherRequest{teacherRequest("22222222")}})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
