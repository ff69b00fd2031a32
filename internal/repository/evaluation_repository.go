package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

const evaluationColumns = `id, teacher_id, evaluator_id, evaluator_name, monitoring_date, monitoring_time,
reflective_dialogue_date, reflective_dialogue_time, evidence_image_url, evidence_image_base64,
performance_1, performance_2, performance_3, performance_4, performance_5, performance_6,
observations, strengths, improvement_areas, commitments, created_at, updated_at`

// newestFirst orders evaluations by monitoring date then time, newest first.
const newestFirst = "ORDER BY monitoring_date DESC, monitoring_time DESC, created_at DESC"

// EvaluationRepository manages persistence for teacher evaluations.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs an EvaluationRepository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// List returns evaluations newest first along with the total count.
func (r *EvaluationRepository) List(ctx context.Context, filter models.EvaluationFilter) ([]models.TeacherEvaluation, int, error) {
	base := "FROM teacher_evaluations WHERE 1=1"
	var args []interface{}
	if filter.TeacherID != "" {
		base += " AND teacher_id = $1"
		args = append(args, filter.TeacherID)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s %s LIMIT %d OFFSET %d", evaluationColumns, base, newestFirst, size, offset)
	var evaluations []models.TeacherEvaluation
	if err := r.db.SelectContext(ctx, &evaluations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list evaluations: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count evaluations: %w", err)
	}
	return evaluations, total, nil
}

// ListByTeacher returns every evaluation of a teacher, newest first.
func (r *EvaluationRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherEvaluation, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_evaluations WHERE teacher_id = $1 %s", evaluationColumns, newestFirst)
	var evaluations []models.TeacherEvaluation
	if err := r.db.SelectContext(ctx, &evaluations, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher evaluations: %w", err)
	}
	return evaluations, nil
}

// FindByID fetches an evaluation. Missing rows return sql.ErrNoRows.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*models.TeacherEvaluation, error) {
	query := "SELECT " + evaluationColumns + " FROM teacher_evaluations WHERE id = $1"
	var evaluation models.TeacherEvaluation
	if err := r.db.GetContext(ctx, &evaluation, query, id); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// FindByIDs fetches evaluations keyed by id. Unknown ids are absent from the result.
func (r *EvaluationRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.TeacherEvaluation, error) {
	result := make(map[string]models.TeacherEvaluation, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In("SELECT "+evaluationColumns+" FROM teacher_evaluations WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build evaluation lookup: %w", err)
	}
	var evaluations []models.TeacherEvaluation
	if err := r.db.SelectContext(ctx, &evaluations, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find evaluations: %w", err)
	}
	for _, e := range evaluations {
		result[e.ID] = e
	}
	return result, nil
}

// Create inserts an evaluation, assigning its id and timestamps.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.TeacherEvaluation) error {
	if evaluation.ID == "" {
		evaluation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now
	const query = `INSERT INTO teacher_evaluations (id, teacher_id, evaluator_id, evaluator_name, monitoring_date, monitoring_time,
reflective_dialogue_date, reflective_dialogue_time, evidence_image_url, evidence_image_base64,
performance_1, performance_2, performance_3, performance_4, performance_5, performance_6,
observations, strengths, improvement_areas, commitments, created_at, updated_at)
VALUES (:id, :teacher_id, :evaluator_id, :evaluator_name, :monitoring_date, :monitoring_time,
:reflective_dialogue_date, :reflective_dialogue_time, :evidence_image_url, :evidence_image_base64,
:performance_1, :performance_2, :performance_3, :performance_4, :performance_5, :performance_6,
:observations, :strengths, :improvement_areas, :commitments, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evaluation); err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	return nil
}

// Replace overwrites every mutable column of an evaluation. created_at is
// never written. Missing rows return sql.ErrNoRows.
func (r *EvaluationRepository) Replace(ctx context.Context, evaluation *models.TeacherEvaluation) error {
	evaluation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teacher_evaluations SET teacher_id = :teacher_id, evaluator_id = :evaluator_id, evaluator_name = :evaluator_name,
monitoring_date = :monitoring_date, monitoring_time = :monitoring_time,
reflective_dialogue_date = :reflective_dialogue_date, reflective_dialogue_time = :reflective_dialogue_time,
evidence_image_url = :evidence_image_url, evidence_image_base64 = :evidence_image_base64,
performance_1 = :performance_1, performance_2 = :performance_2, performance_3 = :performance_3,
performance_4 = :performance_4, performance_5 = :performance_5, performance_6 = :performance_6,
observations = :observations, strengths = :strengths, improvement_areas = :improvement_areas, commitments = :commitments,
updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, evaluation)
	if err != nil {
		return fmt.Errorf("replace evaluation: %w", err)
	}
	return expectAffected(res)
}

// Delete removes an evaluation. Missing rows return sql.ErrNoRows.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teacher_evaluations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	return expectAffected(res)
}
