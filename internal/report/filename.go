package report

import (
	"regexp"
	"strings"
	"time"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// Characters that are unsafe in file names on common filesystems.
var unsafeFilename = strings.NewReplacer(
	"/", "-", `\`, "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// EvaluationFilename returns Evaluacion_<apellidos>_<nombres>_<YYYYMMDD>.<ext>
// using the monitoring date of the evaluation.
func EvaluationFilename(teacher models.Teacher, date models.Date, ext string) string {
	return "Evaluacion_" + filenamePart(teacher.Apellidos) + "_" + filenamePart(teacher.Nombres) + "_" + date.Compact() + "." + ext
}

// BatchFilename returns Reporte_Evaluaciones_<YYYYMMDD>.<ext> for the UTC
// generation date.
func BatchFilename(generatedAt time.Time, ext string) string {
	return "Reporte_Evaluaciones_" + generatedAt.UTC().Format("20060102") + "." + ext
}

func filenamePart(raw string) string {
	return unsafeFilename.Replace(whitespace.ReplaceAllString(strings.TrimSpace(raw), "_"))
}
