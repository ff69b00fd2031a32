package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

func validTeacher() TeacherRequest {
	return TeacherRequest{
		DNI:                    "12345678",
		Apellidos:              "Quispe Mamani",
		Nombres:                "Rosa",
		Curso:                  models.CourseMatematica,
		CondicionInstitucional: models.WorkConditionFullTime,
		HorasPorTurno:          map[string]int{"turno 1": 10},
	}
}

func validEvaluation() EvaluationRequest {
	return EvaluationRequest{
		TeacherID:     "t-1",
		EvaluatorID:   "ev-1",
		EvaluatorName: "Carlos Díaz",
		Date:          models.NewDate(2024, 3, 15),
		Time:          "09:30",
		Performance1:  models.LevelIV,
		Performance2:  models.LevelIII,
		Performance3:  models.LevelII,
		Performance4:  models.LevelI,
		Performance5:  models.LevelIV,
		Performance6:  models.LevelIII,
	}
}

func TestValidatorTeacherRequest(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Struct(validTeacher()))

	bad := validTeacher()
	bad.DNI = "12a45678"
	assert.Error(t, v.Struct(bad))

	bad = validTeacher()
	bad.Curso = "astronomía"
	assert.Error(t, v.Struct(bad))

	bad = validTeacher()
	bad.CondicionInstitucional = "eventual"
	assert.Error(t, v.Struct(bad))

	bad = validTeacher()
	bad.HorasPorTurno = map[string]int{"turno 1": -2}
	assert.Error(t, v.Struct(bad))
}

func TestValidatorEvaluationRequest(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Struct(validEvaluation()))

	bad := validEvaluation()
	bad.Performance3 = "V"
	assert.Error(t, v.Struct(bad))

	bad = validEvaluation()
	bad.Time = "25:00"
	assert.Error(t, v.Struct(bad))

	bad = validEvaluation()
	bad.Performance6 = ""
	assert.Error(t, v.Struct(bad))
}

func TestValidatorBatchExportRequest(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Struct(BatchExportRequest{EvaluationIDs: []string{"a"}, Format: models.ExportFormatXLSX}))
	require.NoError(t, v.Struct(BatchExportRequest{EvaluationIDs: []string{"a"}}))
	assert.Error(t, v.Struct(BatchExportRequest{}))
	assert.Error(t, v.Struct(BatchExportRequest{EvaluationIDs: []string{"a"}, Format: "odt"}))
}

func TestEvaluationResponseCarriesSummary(t *testing.T) {
	resp := NewEvaluationResponse(models.TeacherEvaluation{
		Performance1: models.LevelIV, Performance2: models.LevelIV, Performance3: models.LevelIII,
		Performance4: models.LevelIII, Performance5: models.LevelII, Performance6: models.LevelII,
	})
	assert.InDelta(t, 3.0, resp.Summary.AverageLevel, 1e-9)
	assert.Equal(t, models.LevelIII, resp.Summary.Band)
}
