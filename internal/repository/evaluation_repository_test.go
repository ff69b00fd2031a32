package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

var evaluationRowColumns = []string{
	"id", "teacher_id", "evaluator_id", "evaluator_name", "monitoring_date", "monitoring_time",
	"reflective_dialogue_date", "reflective_dialogue_time", "evidence_image_url", "evidence_image_base64",
	"performance_1", "performance_2", "performance_3", "performance_4", "performance_5", "performance_6",
	"observations", "strengths", "improvement_areas", "commitments", "created_at", "updated_at",
}

func evaluationRow(rows *sqlmock.Rows, id string, date time.Time) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "t1", "u1", "Luis Quispe", date, "09:30",
		nil, nil, nil, "data:image/png;base64,AAAA",
		"IV", "IV", "III", "III", "II", "II",
		"", "Buen manejo", "", "", now, now)
}

func TestEvaluationRepositoryListByTeacherNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	rows := sqlmock.NewRows(evaluationRowColumns)
	evaluationRow(rows, "e2", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	evaluationRow(rows, "e1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`FROM teacher_evaluations WHERE teacher_id = \$1 ORDER BY monitoring_date DESC, monitoring_time DESC, created_at DESC`).
		WithArgs("t1").
		WillReturnRows(rows)

	list, err := repo.ListByTeacher(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e2", list[0].ID)
	assert.Equal(t, "2024-05-01", list[0].Date.String())
	assert.Nil(t, list[0].ReflectiveDialogueDate)
	assert.Equal(t, "data:image/png;base64,AAAA", list[0].EvidenceData())
	assert.Equal(t, models.LevelIII, list[0].Performance3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	rows := sqlmock.NewRows(evaluationRowColumns)
	evaluationRow(rows, "e1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`FROM teacher_evaluations WHERE 1=1 ORDER BY monitoring_date DESC, monitoring_time DESC, created_at DESC LIMIT 10 OFFSET 10`).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teacher_evaluations WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	list, total, err := repo.List(context.Background(), models.EvaluationFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectQuery(`FROM teacher_evaluations WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(evaluationRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryCreateAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectExec("INSERT INTO teacher_evaluations").WillReturnResult(sqlmock.NewResult(1, 1))

	eval := &models.TeacherEvaluation{TeacherID: "t1", Date: models.NewDate(2024, time.March, 15)}
	require.NoError(t, repo.Create(context.Background(), eval))
	assert.NotEmpty(t, eval.ID)
	assert.False(t, eval.CreatedAt.IsZero())
	assert.Equal(t, eval.CreatedAt, eval.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryReplaceKeepsCreatedAt(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectExec(`(?s)UPDATE teacher_evaluations SET teacher_id = .*updated_at = \? WHERE id = \?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	eval := &models.TeacherEvaluation{ID: "e1", CreatedAt: created}
	require.NoError(t, repo.Replace(context.Background(), eval))
	assert.Equal(t, created, eval.CreatedAt)
	assert.True(t, eval.UpdatedAt.After(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryFindByIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	rows := sqlmock.NewRows(evaluationRowColumns)
	evaluationRow(rows, "e1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`FROM teacher_evaluations WHERE id IN \(\?, \?\)`).
		WithArgs("e1", "e9").
		WillReturnRows(rows)

	found, err := repo.FindByIDs(context.Background(), []string{"e1", "e9"})
	require.NoError(t, err)
	assert.Contains(t, found, "e1")
	assert.NotContains(t, found, "e9")
	assert.NoError(t, mock.ExpectationsWereMet())
}
