package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/pkg/export"
)

// Subject pairs an evaluation with the teacher it belongs to.
type Subject struct {
	Teacher    models.Teacher
	Evaluation models.TeacherEvaluation
}

// BatchTitle names the consolidated document.
const BatchTitle = "Reporte de Evaluaciones"

// Batch builds one document with a condensed section per subject, in input
// order, separated by page breaks.
func (c *Composer) Batch(subjects []Subject) *export.Document {
	blocks := make([]export.Block, 0, len(subjects)*3)
	for i, s := range subjects {
		if i > 0 {
			blocks = append(blocks, export.PageBreak{})
		}
		before := 0
		if i > 0 {
			before = 600
		}
		title := fmt.Sprintf("EVALUACIÓN %d - %s", i+1, s.Teacher.FullName())
		blocks = append(blocks,
			export.Heading{
				Paragraph: export.Text(export.Run{Text: title, Bold: true, Size: 24, Color: ColorPrimary}, export.AlignCenter, before, 400),
				Level:     1,
			},
			condensedTable(s),
		)
	}
	return &export.Document{
		Title:   BatchTitle,
		Author:  c.branding.ProductSubtitle,
		Margins: BatchMargins,
		Header:  c.branding.header(),
		Footer:  c.branding.footer(),
		Blocks:  blocks,
	}
}

func condensedTable(s Subject) export.Table {
	summary := s.Evaluation.Summary()
	score := fmt.Sprintf("%s - %s", summary.AverageText(), summary.BandText())
	return export.Table{
		Widths:      []float64{20, 30, 20, 30},
		BorderColor: ColorPrimary,
		Rows: []export.Row{
			{Cells: []export.Cell{
				labelCell("Curso:"), valueCell(strings.ToUpper(string(s.Teacher.Curso)), false),
				labelCell("Evaluador:"), valueCell(s.Evaluation.EvaluatorName, false),
			}},
			{Cells: []export.Cell{
				labelCell("Fecha:"), valueCell(s.Evaluation.Date.LongSpanish(), false),
				labelCell("Promedio:"), valueCell(score, true),
			}},
		},
	}
}

// SummarySheet flattens subjects into one spreadsheet row each.
func SummarySheet(subjects []Subject) export.Sheet {
	sheet := export.Sheet{
		Name:    "Evaluaciones",
		Headers: []string{"N°", "Docente", "DNI", "Curso", "Evaluador", "Fecha", "Promedio", "Nivel"},
	}
	for i, s := range subjects {
		summary := s.Evaluation.Summary()
		sheet.Rows = append(sheet.Rows, []string{
			strconv.Itoa(i + 1),
			s.Teacher.FullName(),
			s.Teacher.DNI,
			strings.ToUpper(string(s.Teacher.Curso)),
			s.Evaluation.EvaluatorName,
			s.Evaluation.Date.String(),
			summary.AverageText(),
			summary.BandText(),
		})
	}
	return sheet
}
