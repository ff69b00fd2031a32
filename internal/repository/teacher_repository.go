package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

const teacherColumns = "id, dni, apellidos, nombres, telefono, correo_personal, correo_institucional, curso, condicion_institucional, horas_por_turno, total_horas, created_at, updated_at"

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns teachers ordered by surname along with the total count.
func (r *TeacherRepository) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	base := "FROM teachers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Curso != "" {
		conditions = append(conditions, fmt.Sprintf("curso = $%d", len(args)+1))
		args = append(args, filter.Curso)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(apellidos) LIKE $%d OR LOWER(nombres) LIKE $%d OR dni LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, search)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY apellidos ASC, nombres ASC LIMIT %d OFFSET %d", teacherColumns, base, size, offset)
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	return teachers, total, nil
}

// FindByID fetches a teacher by ID. Missing rows return sql.ErrNoRows.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE id = $1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByIDs fetches the teachers with the given ids keyed by id.
func (r *TeacherRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Teacher, error) {
	result := make(map[string]models.Teacher, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In("SELECT "+teacherColumns+" FROM teachers WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("build teacher lookup: %w", err)
	}
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find teachers: %w", err)
	}
	for _, t := range teachers {
		result[t.ID] = t
	}
	return result, nil
}

// ExistsByDNI checks if another teacher uses the same DNI.
func (r *TeacherRepository) ExistsByDNI(ctx context.Context, dni string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE dni = $1"
	args := []interface{}{dni}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher dni: %w", err)
	}
	return true, nil
}

// ExistingDNIs returns which of the given DNIs are already registered.
func (r *TeacherRepository) ExistingDNIs(ctx context.Context, dnis []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(dnis) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In("SELECT dni FROM teachers WHERE dni IN (?)", dnis)
	if err != nil {
		return nil, fmt.Errorf("build dni lookup: %w", err)
	}
	var found []string
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find teacher dnis: %w", err)
	}
	for _, dni := range found {
		result[dni] = true
	}
	return result, nil
}

const insertTeacher = `INSERT INTO teachers (id, dni, apellidos, nombres, telefono, correo_personal, correo_institucional, curso, condicion_institucional, horas_por_turno, total_horas, created_at, updated_at)
VALUES (:id, :dni, :apellidos, :nombres, :telefono, :correo_personal, :correo_institucional, :curso, :condicion_institucional, :horas_por_turno, :total_horas, :created_at, :updated_at)`

func stampNewTeacher(teacher *models.Teacher, now time.Time) {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	teacher.RecomputeTotalHours()
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	stampNewTeacher(teacher, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertTeacher, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// CreateBatch inserts teachers in a single transaction.
func (r *TeacherRepository) CreateBatch(ctx context.Context, teachers []models.Teacher) error {
	if len(teachers) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin teacher import: %w", err)
	}
	now := time.Now().UTC()
	for i := range teachers {
		stampNewTeacher(&teachers[i], now)
		if _, err := tx.NamedExecContext(ctx, insertTeacher, &teachers[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import teacher %s: %w", teachers[i].DNI, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit teacher import: %w", err)
	}
	return nil
}

// Update replaces a teacher record. Missing rows return sql.ErrNoRows.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	teacher.RecomputeTotalHours()
	const query = `UPDATE teachers SET dni = :dni, apellidos = :apellidos, nombres = :nombres, telefono = :telefono,
correo_personal = :correo_personal, correo_institucional = :correo_institucional, curso = :curso,
condicion_institucional = :condicion_institucional, horas_por_turno = :horas_por_turno, total_horas = :total_horas,
updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, teacher)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a teacher. Missing rows return sql.ErrNoRows.
func (r *TeacherRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
