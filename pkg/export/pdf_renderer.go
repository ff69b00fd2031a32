package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	mmPerInch     = 25.4
	mmPerPoint    = mmPerInch / 72
	pxPerInch     = 96
	pdfCellPad    = 1.5
	pdfEdgeOffset = 12.5
	pdfFont       = "Arial"
)

var pdfImageTypes = map[string]string{
	"png": "PNG",
	"jpg": "JPG",
	"gif": "GIF",
}

// PDFRenderer lays Documents out on A4 pages with gofpdf core fonts.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Extension implements Renderer.
func (r *PDFRenderer) Extension() string { return "pdf" }

// ContentType implements Renderer.
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	left   float64
	right  float64
	bottom float64
	width  float64
	height float64
	images int
}

// Render implements Renderer.
func (r *PDFRenderer) Render(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: document is nil")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	w := &pdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		left:   doc.Margins.Left * mmPerInch,
		right:  doc.Margins.Right * mmPerInch,
		bottom: doc.Margins.Bottom * mmPerInch,
	}
	w.width, w.height = pdf.GetPageSize()

	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetMargins(w.left, doc.Margins.Top*mmPerInch, w.right)
	pdf.SetAutoPageBreak(true, w.bottom)
	pdf.AliasNbPages("")
	pdf.SetHeaderFunc(func() {
		pdf.SetY(pdfEdgeOffset)
		for _, p := range doc.Header {
			w.paragraph(p)
		}
		pdf.SetY(doc.Margins.Top * mmPerInch)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(w.height - pdfEdgeOffset - w.paragraphsHeight(doc.Footer))
		for _, p := range doc.Footer {
			w.paragraph(p)
		}
	})
	pdf.AddPage()

	for i, block := range doc.Blocks {
		var err error
		switch b := block.(type) {
		case Paragraph:
			w.paragraph(b)
		case Heading:
			w.paragraph(b.Paragraph)
		case Table:
			err = w.table(b)
		case Image:
			err = w.image(b)
		case PageBreak:
			pdf.AddPage()
		default:
			err = fmt.Errorf("unsupported type %T", block)
		}
		if err != nil {
			return nil, fmt.Errorf("pdf: block %d: %w", i, err)
		}
		if pdf.Err() {
			return nil, fmt.Errorf("pdf: block %d: %w", i, pdf.Error())
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) contentWidth() float64 {
	return w.width - w.left - w.right
}

func (w *pdfWriter) paragraph(p Paragraph) {
	pdf := w.pdf
	if p.RuleAbove != "" {
		w.rule(p.RuleAbove)
	}
	pdf.Ln(twipsToMM(p.SpaceBefore))

	lineHeight := w.lineHeight(p.Runs)
	if w.fitsOneLine(p.Runs) {
		total := 0.0
		for _, run := range p.Runs {
			w.useRun(run)
			total += pdf.GetStringWidth(w.runText(run))
		}
		pdf.SetX(w.left + alignOffset(p.Align, w.contentWidth(), total))
		for _, run := range p.Runs {
			w.useRun(run)
			text := w.runText(run)
			pdf.CellFormat(pdf.GetStringWidth(text), lineHeight, text, "", 0, "L", false, 0, "")
		}
		pdf.Ln(lineHeight)
	} else {
		w.useRun(p.Runs[0])
		pdf.SetX(w.left)
		pdf.MultiCell(w.contentWidth(), lineHeight, w.joined(p.Runs), "", pdfAlign(p.Align), false)
	}

	pdf.Ln(twipsToMM(p.SpaceAfter))
	if p.RuleBelow != "" {
		w.rule(p.RuleBelow)
	}
}

func (w *pdfWriter) paragraphsHeight(paragraphs []Paragraph) float64 {
	total := 0.0
	for _, p := range paragraphs {
		total += w.lineHeight(p.Runs) + twipsToMM(p.SpaceBefore) + twipsToMM(p.SpaceAfter)
		if p.RuleAbove != "" {
			total += 1
		}
		if p.RuleBelow != "" {
			total += 1
		}
	}
	return total
}

func (w *pdfWriter) rule(hex string) {
	pdf := w.pdf
	r, g, b := rgb(hex)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY() + 0.5
	pdf.Line(w.left, y, w.width-w.right, y)
	pdf.SetY(y + 0.5)
}

func (w *pdfWriter) table(t Table) error {
	if len(t.Widths) == 0 {
		return fmt.Errorf("table has no columns")
	}
	pdf := w.pdf
	widths := make([]float64, len(t.Widths))
	for i, pct := range t.Widths {
		widths[i] = w.contentWidth() * pct / 100
	}
	br, bg, bb := rgb(t.BorderColor)
	limit := w.height - w.bottom

	for ri, row := range t.Rows {
		if len(row.Cells) != len(widths) {
			return fmt.Errorf("row %d has %d cells, want %d", ri, len(row.Cells), len(widths))
		}
		rowHeight := 0.0
		for ci, cell := range row.Cells {
			w.useRun(firstRun(cell.Runs))
			lines := pdf.SplitLines([]byte(w.joined(cell.Runs)), widths[ci]-2*pdfCellPad)
			h := float64(max(len(lines), 1))*w.lineHeight(cell.Runs) + 2*pdfCellPad
			if h > rowHeight {
				rowHeight = h
			}
		}
		if pdf.GetY()+rowHeight > limit {
			pdf.AddPage()
		}

		y := pdf.GetY()
		x := w.left
		for ci, cell := range row.Cells {
			pdf.SetDrawColor(br, bg, bb)
			pdf.SetLineWidth(0.2)
			style := "D"
			if cell.Fill != "" {
				fr, fg, fb := rgb(cell.Fill)
				pdf.SetFillColor(fr, fg, fb)
				style = "FD"
			}
			pdf.Rect(x, y, widths[ci], rowHeight, style)

			w.useRun(firstRun(cell.Runs))
			pdf.SetXY(x+pdfCellPad, y+pdfCellPad)
			pdf.MultiCell(widths[ci]-2*pdfCellPad, w.lineHeight(cell.Runs), w.joined(cell.Runs), "", pdfAlign(cell.Align), false)
			x += widths[ci]
		}
		pdf.SetXY(w.left, y+rowHeight)
	}
	return nil
}

func (w *pdfWriter) image(img Image) error {
	imageType, ok := pdfImageTypes[img.Format]
	if !ok {
		return fmt.Errorf("unsupported image format %q", img.Format)
	}
	if len(img.Data) == 0 || img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("image is empty")
	}
	pdf := w.pdf
	w.images++
	name := "evidence-" + strconv.Itoa(w.images)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if pdf.Err() {
		return pdf.Error()
	}

	width := float64(img.Width) * mmPerInch / pxPerInch
	height := float64(img.Height) * mmPerInch / pxPerInch
	if width > w.contentWidth() {
		height *= w.contentWidth() / width
		width = w.contentWidth()
	}
	if pdf.GetY()+height > w.height-w.bottom {
		pdf.AddPage()
	}
	x := w.left + alignOffset(img.Align, w.contentWidth(), width)
	pdf.ImageOptions(name, x, pdf.GetY(), width, height, true, opts, 0, "")
	return nil
}

func (w *pdfWriter) fitsOneLine(runs []Run) bool {
	if len(runs) == 0 {
		return true
	}
	total := 0.0
	for _, run := range runs {
		w.useRun(run)
		total += w.pdf.GetStringWidth(w.runText(run))
	}
	return total <= w.contentWidth()
}

func (w *pdfWriter) useRun(run Run) {
	style := ""
	if run.Bold {
		style += "B"
	}
	if run.Italic {
		style += "I"
	}
	w.pdf.SetFont(pdfFont, style, float64(runSize(run))/2)
	r, g, b := rgb(run.Color)
	w.pdf.SetTextColor(r, g, b)
}

func (w *pdfWriter) runText(run Run) string {
	switch run.Field {
	case FieldPage:
		return strconv.Itoa(w.pdf.PageNo())
	case FieldPageCount:
		return "{nb}"
	}
	return w.tr(run.Text)
}

func (w *pdfWriter) joined(runs []Run) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, w.runText(run))
	}
	return strings.Join(parts, "")
}

func (w *pdfWriter) lineHeight(runs []Run) float64 {
	if len(runs) == 0 {
		return float64(DefaultRunSize) / 2 * mmPerPoint * 1.25
	}
	size := 0
	for _, run := range runs {
		if s := runSize(run); s > size {
			size = s
		}
	}
	return float64(size) / 2 * mmPerPoint * 1.25
}

func firstRun(runs []Run) Run {
	if len(runs) == 0 {
		return Run{}
	}
	return runs[0]
}

func alignOffset(align Align, available, used float64) float64 {
	switch align {
	case AlignCenter:
		return (available - used) / 2
	case AlignRight:
		return available - used
	default:
		return 0
	}
}

func pdfAlign(align Align) string {
	switch align {
	case AlignCenter:
		return "C"
	case AlignRight:
		return "R"
	default:
		return "L"
	}
}

func twipsToMM(twips int) float64 {
	return float64(twips) / 20 * mmPerPoint
}

// rgb parses a hex color, falling back to black.
func rgb(hex string) (int, int, int) {
	if hex == "" {
		return 0, 0, 0
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return 0, 0, 0
	}
	r, g, b := c.RGB255()
	return int(r), int(g), int(b)
}
