package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

type memTeacherRepo struct {
	items    map[string]models.Teacher
	findErr  error
	created  int
	batchErr error
}

func newMemTeacherRepo(teachers ...models.Teacher) *memTeacherRepo {
	repo := &memTeacherRepo{items: map[string]models.Teacher{}}
	for _, t := range teachers {
		repo.items[t.ID] = t
	}
	return repo
}

func (m *memTeacherRepo) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	out := make([]models.Teacher, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (m *memTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	t, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (m *memTeacherRepo) FindByIDs(ctx context.Context, ids []string) (map[string]models.Teacher, error) {
	out := make(map[string]models.Teacher, len(ids))
	for _, id := range ids {
		if t, ok := m.items[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (m *memTeacherRepo) ExistsByDNI(ctx context.Context, dni string, excludeID string) (bool, error) {
	for id, t := range m.items {
		if t.DNI == dni && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTeacherRepo) ExistingDNIs(ctx context.Context, dnis []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, dni := range dnis {
		if ok, _ := m.ExistsByDNI(ctx, dni, ""); ok {
			out[dni] = true
		}
	}
	return out, nil
}

func (m *memTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	m.created++
	teacher.ID = fmt.Sprintf("t-%d", len(m.items)+1)
	teacher.CreatedAt = time.Now().UTC()
	teacher.UpdatedAt = teacher.CreatedAt
	m.items[teacher.ID] = *teacher
	return nil
}

func (m *memTeacherRepo) CreateBatch(ctx context.Context, teachers []models.Teacher) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range teachers {
		if err := m.Create(ctx, &teachers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if _, ok := m.items[teacher.ID]; !ok {
		return sql.ErrNoRows
	}
	teacher.UpdatedAt = time.Now().UTC()
	m.items[teacher.ID] = *teacher
	return nil
}

func (m *memTeacherRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type memEvaluationRepo struct {
	items   map[string]models.TeacherEvaluation
	order   []string
	nextID  int
	listErr error
}

func newMemEvaluationRepo(evals ...models.TeacherEvaluation) *memEvaluationRepo {
	repo := &memEvaluationRepo{items: map[string]models.TeacherEvaluation{}}
	for _, e := range evals {
		repo.items[e.ID] = e
		repo.order = append(repo.order, e.ID)
	}
	return repo
}

func (m *memEvaluationRepo) List(ctx context.Context, filter models.EvaluationFilter) ([]models.TeacherEvaluation, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]models.TeacherEvaluation, 0, len(m.order))
	for _, id := range m.order {
		if e, ok := m.items[id]; ok {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memEvaluationRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherEvaluation, error) {
	out := make([]models.TeacherEvaluation, 0)
	for _, id := range m.order {
		if e, ok := m.items[id]; ok && e.TeacherID == teacherID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvaluationRepo) FindByID(ctx context.Context, id string) (*models.TeacherEvaluation, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (m *memEvaluationRepo) FindByIDs(ctx context.Context, ids []string) (map[string]models.TeacherEvaluation, error) {
	out := make(map[string]models.TeacherEvaluation, len(ids))
	for _, id := range ids {
		if e, ok := m.items[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (m *memEvaluationRepo) Create(ctx context.Context, evaluation *models.TeacherEvaluation) error {
	m.nextID++
	evaluation.ID = fmt.Sprintf("new-%d", m.nextID)
	now := time.Now().UTC()
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now
	m.items[evaluation.ID] = *evaluation
	m.order = append(m.order, evaluation.ID)
	return nil
}

func (m *memEvaluationRepo) Replace(ctx context.Context, evaluation *models.TeacherEvaluation) error {
	if _, ok := m.items[evaluation.ID]; !ok {
		return sql.ErrNoRows
	}
	evaluation.UpdatedAt = time.Now().UTC()
	m.items[evaluation.ID] = *evaluation
	return nil
}

func (m *memEvaluationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type memCacheRepo struct {
	data        map[string][]byte
	invalidated []string
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{data: map[string][]byte{}}
}

func (m *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok || (!strings.Contains(pattern, "*") && key == pattern) {
			delete(m.data, key)
		}
	}
	return nil
}

func sampleTeacher() models.Teacher {
	return models.Teacher{
		ID:                     "t-1",
		DNI:                    "40123456",
		Apellidos:              "Núñez Flores",
		Nombres:                "Ana María",
		Curso:                  models.CourseMatematica,
		CondicionInstitucional: models.WorkConditionFullTime,
		HorasPorTurno:          models.ShiftHours{"turno 1": 12, "turno 2": 6},
		TotalHoras:             18,
	}
}

func sampleEvaluation(id, teacherID string) models.TeacherEvaluation {
	return models.TeacherEvaluation{
		ID:            id,
		TeacherID:     teacherID,
		EvaluatorID:   "ev-1",
		EvaluatorName: "Carlos Díaz",
		Date:          models.NewDate(2024, time.March, 15),
		Time:          "09:30",
		Performance1:  models.LevelIV,
		Performance2:  models.LevelIV,
		Performance3:  models.LevelIII,
		Performance4:  models.LevelIII,
		Performance5:  models.LevelII,
		Performance6:  models.LevelII,
		Observations:  "Clase bien estructurada.",
	}
}
