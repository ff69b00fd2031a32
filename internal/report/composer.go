package report

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-evaluation-api/internal/models"
	"github.com/noah-isme/teacher-evaluation-api/pkg/evidence"
	"github.com/noah-isme/teacher-evaluation-api/pkg/export"
)

// Fixed texts of the evidence section.
const (
	EvidenceMissingText  = "No se adjuntó imagen de evidencia para esta evaluación"
	EvidenceFailedText   = "Error al cargar la imagen de evidencia"
	evidenceCaptionFmt   = "Imagen de evidencia (%dx%dpx)"
	observationsHeading  = "OBSERVACIONES Y COMENTARIOS"
	evidenceHeading      = "EVIDENCIA FOTOGRÁFICA"
	summaryRowLabel      = "PROMEDIO GENERAL"
	performanceLevelText = "Nivel %s"
)

// EvidenceStatus reports how the evidence section was built.
type EvidenceStatus string

const (
	EvidenceAbsent   EvidenceStatus = "absent"
	EvidenceEmbedded EvidenceStatus = "embedded"
	EvidenceDegraded EvidenceStatus = "degraded"
)

type narrative struct {
	label       string
	placeholder string
	value       func(models.TeacherEvaluation) string
}

var narratives = []narrative{
	{"Observaciones Generales:", "No se registraron observaciones.", func(e models.TeacherEvaluation) string { return e.Observations }},
	{"Fortalezas Identificadas:", "No se registraron fortalezas.", func(e models.TeacherEvaluation) string { return e.Strengths }},
	{"Áreas de Mejora:", "No se registraron áreas de mejora.", func(e models.TeacherEvaluation) string { return e.ImprovementAreas }},
	{"Compromisos:", "No se registraron compromisos.", func(e models.TeacherEvaluation) string { return e.Commitments }},
}

// Composer builds evaluation documents. It holds no per-call state and is
// safe for concurrent use.
type Composer struct {
	branding Branding
	box      evidence.Box
	logger   *zap.Logger
}

// NewComposer constructs a Composer.
func NewComposer(branding Branding, box evidence.Box, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if box.Width <= 0 || box.Height <= 0 {
		box = evidence.DefaultBox
	}
	return &Composer{branding: branding, box: box, logger: logger}
}

// Evaluation builds the full report of one evaluation. payload is the decoded
// evidence photo or nil when none is attached. Evidence that cannot be
// prepared is replaced by an inline notice instead of failing the document.
func (c *Composer) Evaluation(teacher models.Teacher, eval models.TeacherEvaluation, payload *evidence.Payload) (*export.Document, EvidenceStatus) {
	summary := eval.Summary()

	blocks := []export.Block{
		export.Text(export.Run{Text: c.branding.InstitutionTitle, Bold: true, Size: 28}, export.AlignCenter, 0, 200),
		export.Text(export.Run{Text: c.branding.UniversityTitle, Bold: true, Size: 24}, export.AlignCenter, 0, 400),
		export.Heading{
			Paragraph: export.Text(export.Run{Text: c.branding.DocumentTitle, Bold: true, Size: 32, Color: ColorPrimary}, export.AlignCenter, 0, 600),
			Level:     1,
		},
		infoTable(teacher, eval),
		export.Paragraph{SpaceAfter: 400},
		performanceTable(eval, summary),
		sectionHeading(observationsHeading),
	}

	for i, n := range narratives {
		before, after := 0, 200
		if i == 0 {
			before = 200
		}
		if i == len(narratives)-1 {
			after = 400
		}
		text := n.value(eval)
		if strings.TrimSpace(text) == "" {
			text = n.placeholder
		}
		blocks = append(blocks,
			export.Text(export.Run{Text: n.label, Bold: true, Size: 24}, export.AlignLeft, before, 100),
			export.Text(export.Run{Text: text, Size: 22}, export.AlignLeft, 0, after),
		)
	}

	blocks = append(blocks, sectionHeading(evidenceHeading))
	evidenceBlocks, status := c.evidenceSection(eval, payload)
	blocks = append(blocks, evidenceBlocks...)

	return &export.Document{
		Title:   fmt.Sprintf("%s - %s", c.branding.DocumentTitle, teacher.FullName()),
		Author:  c.branding.ProductSubtitle,
		Margins: SingleMargins,
		Header:  c.branding.header(),
		Footer:  c.branding.footer(),
		Blocks:  blocks,
	}, status
}

func (c *Composer) evidenceSection(eval models.TeacherEvaluation, payload *evidence.Payload) ([]export.Block, EvidenceStatus) {
	if payload == nil {
		return []export.Block{
			export.Text(export.Run{Text: EvidenceMissingText, Italic: true, Size: 22, Color: ColorMuted}, export.AlignCenter, 0, 400),
		}, EvidenceAbsent
	}

	prepared, err := evidence.Prepare(payload, c.box)
	if err != nil {
		c.logger.Warn("evidence image could not be embedded",
			zap.String("evaluation_id", eval.ID),
			zap.String("subtype", payload.Subtype),
			zap.Error(err),
		)
		return []export.Block{
			export.Text(export.Run{Text: EvidenceFailedText, Size: 22, Color: ColorError}, export.AlignCenter, 0, 400),
		}, EvidenceDegraded
	}

	width, height := prepared.Fitted.Rounded()
	return []export.Block{
		export.Image{
			Data:   prepared.Data,
			Format: prepared.Format,
			Width:  width,
			Height: height,
			Align:  export.AlignCenter,
			Name:   "evidencia." + prepared.Format,
		},
		export.Text(export.Run{Text: fmt.Sprintf(evidenceCaptionFmt, width, height), Italic: true, Size: 20}, export.AlignCenter, 200, 400),
	}, EvidenceEmbedded
}

func infoTable(teacher models.Teacher, eval models.TeacherEvaluation) export.Table {
	rows := [][2]string{
		{"Docente:", teacher.FullName()},
		{"DNI:", teacher.DNI},
		{"Curso:", strings.ToUpper(string(teacher.Curso))},
		{"Evaluador:", eval.EvaluatorName},
		{"Fecha:", eval.Date.LongSpanishAt(eval.Time)},
	}
	table := export.Table{Widths: []float64{25, 75}, BorderColor: ColorPrimary}
	for _, r := range rows {
		table.Rows = append(table.Rows, export.Row{Cells: []export.Cell{labelCell(r[0]), valueCell(r[1], false)}})
	}
	return table
}

func performanceTable(eval models.TeacherEvaluation, summary models.EvaluationSummary) export.Table {
	table := export.Table{Widths: []float64{50, 15, 35}, BorderColor: ColorPrimary}
	table.Rows = append(table.Rows, export.Row{Cells: []export.Cell{
		filledCell("DESEMPEÑO", ColorPrimary, 22),
		filledCell("NIVEL", ColorPrimary, 22),
		filledCell("DESCRIPCIÓN", ColorPrimary, 22),
	}})

	for _, slot := range models.PerformanceSlots {
		level := eval.Rating(slot)
		table.Rows = append(table.Rows, export.Row{Cells: []export.Cell{
			{Paragraph: export.Text(export.Run{Text: slot.Title(), Size: 20}, export.AlignLeft, 0, 0)},
			filledCell(fmt.Sprintf(performanceLevelText, level), models.LevelColor(level), 20),
			{Paragraph: export.Text(export.Run{Text: models.PerformanceDescription(slot, level), Size: 20}, export.AlignLeft, 0, 0)},
		}})
	}

	table.Rows = append(table.Rows, export.Row{Cells: []export.Cell{
		filledCell(summaryRowLabel, ColorSummary, 22),
		filledCell(summary.AverageText(), ColorSummary, 22),
		filledCell(summary.BandText(), ColorSummary, 22),
	}})
	return table
}

func sectionHeading(text string) export.Heading {
	return export.Heading{
		Paragraph: export.Text(export.Run{Text: text, Bold: true, Size: 28, Color: ColorPrimary}, export.AlignCenter, 400, 200),
		Level:     2,
	}
}

func labelCell(text string) export.Cell {
	return export.Cell{
		Paragraph: export.Text(export.Run{Text: text, Bold: true}, export.AlignLeft, 0, 0),
		Fill:      ColorLabelFill,
	}
}

func valueCell(text string, bold bool) export.Cell {
	return export.Cell{Paragraph: export.Text(export.Run{Text: text, Bold: bold}, export.AlignLeft, 0, 0)}
}

// filledCell is a centered bold white label on a colored background.
func filledCell(text, fill string, size int) export.Cell {
	return export.Cell{
		Paragraph: export.Text(export.Run{Text: text, Bold: true, Size: size, Color: ColorOnDark}, export.AlignCenter, 0, 0),
		Fill:      fill,
	}
}
