package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

func TestEvaluationFilename(t *testing.T) {
	teacher := models.Teacher{Apellidos: "Núñez  Paredes", Nombres: "Ana María"}
	got := EvaluationFilename(teacher, models.NewDate(2024, time.March, 15), "docx")
	assert.Equal(t, "Evaluacion_Núñez_Paredes_Ana_María_20240315.docx", got)
}

func TestEvaluationFilenameReplacesUnsafeCharacters(t *testing.T) {
	teacher := models.Teacher{Apellidos: `O'Neil/Díaz`, Nombres: `"Jo" <x>`}
	got := EvaluationFilename(teacher, models.NewDate(2024, time.January, 2), "pdf")
	assert.Equal(t, `Evaluacion_O'Neil-Díaz_-Jo-_-x-_20240102.pdf`, got)
}

func TestBatchFilenameUsesUTCGenerationDate(t *testing.T) {
	lima := time.FixedZone("PET", -5*3600)
	generatedAt := time.Date(2024, time.June, 30, 21, 0, 0, 0, lima)
	assert.Equal(t, "Reporte_Evaluaciones_20240701.docx", BatchFilename(generatedAt, "docx"))
}
