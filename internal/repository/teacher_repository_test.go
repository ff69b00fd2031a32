package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var teacherRowColumns = []string{"id", "dni", "apellidos", "nombres", "telefono", "correo_personal", "correo_institucional", "curso", "condicion_institucional", "horas_por_turno", "total_horas", "created_at", "updated_at"}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(teacherRowColumns).
		AddRow("t1", "12345678", "Núñez", "Ana", "999", "a@mail.com", "a@unsa.edu.pe", "matemática", "tiempo completo", []byte(`{"turno 1":6}`), 6, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + teacherColumns + " FROM teachers WHERE 1=1 AND curso = $1 ORDER BY apellidos ASC, nombres ASC LIMIT 20 OFFSET 0")).
		WithArgs(models.Course("matemática")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1 AND curso = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TeacherFilter{Curso: "matemática"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 6, list[0].HorasPorTurno["turno 1"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateRecomputesTotal(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs(sqlmock.AnyArg(), "12345678", "Núñez", "Ana", "", "", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 10, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacher := &models.Teacher{DNI: "12345678", Apellidos: "Núñez", Nombres: "Ana", HorasPorTurno: models.ShiftHours{"turno 1": 6, "turno 2": 4}, TotalHoras: 1}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.NotEmpty(t, teacher.ID)
	assert.Equal(t, 10, teacher.TotalHoras)
	assert.Equal(t, teacher.CreatedAt, teacher.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateBatchRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO teachers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO teachers").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.CreateBatch(context.Background(), []models.Teacher{{DNI: "11111111"}, {DNI: "22222222"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "22222222")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryExistsByDNI(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM teachers WHERE dni = $1 AND id <> $2 LIMIT 1")).
		WithArgs("12345678", "t1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByDNI(context.Background(), "12345678", "t1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryExistingDNIs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT dni FROM teachers WHERE dni IN (?, ?)")).
		WithArgs("11111111", "22222222").
		WillReturnRows(sqlmock.NewRows([]string{"dni"}).AddRow("22222222"))

	existing, err := repo.ExistingDNIs(context.Background(), []string{"11111111", "22222222"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"22222222": true}, existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teachers WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
