package export

// Align is the horizontal alignment of a paragraph.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Field is a value the renderer fills in per page.
type Field string

const (
	FieldNone      Field = ""
	FieldPage      Field = "PAGE"
	FieldPageCount Field = "NUMPAGES"
)

// DefaultRunSize is the body text size in half-points (11pt).
const DefaultRunSize = 22

// Run is a span of uniformly formatted text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// Color is a hex RGB value such as "1565C0"; empty means automatic.
	Color string
	// Size is in half-points; zero means DefaultRunSize.
	Size  int
	Field Field
}

// Margins are page margins in inches.
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Block is a top-level element of a document body.
type Block interface {
	block()
}

// Paragraph is a line of runs. Spacing is in twentieths of a point.
type Paragraph struct {
	Runs        []Run
	Align       Align
	SpaceBefore int
	SpaceAfter  int
	// RuleAbove and RuleBelow draw a horizontal line in the given color.
	RuleAbove string
	RuleBelow string
}

// Heading is a section title.
type Heading struct {
	Paragraph
	Level int
}

// Cell is a table cell holding a single paragraph.
type Cell struct {
	Paragraph
	// Fill is a hex RGB background; empty leaves the cell unshaded.
	Fill string
}

// Row is a table row.
type Row struct {
	Cells []Cell
}

// Table is a full-width grid. Widths are column percentages and must sum to 100.
type Table struct {
	Widths      []float64
	Rows        []Row
	BorderColor string
}

// Image embeds raster data at a fixed size in pixels.
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
	Align  Align
	Name   string
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Paragraph) block() {}
func (Heading) block()   {}
func (Table) block()     {}
func (Image) block()     {}
func (PageBreak) block() {}

// Document is a renderer-independent page layout.
type Document struct {
	Title   string
	Author  string
	Margins Margins
	// Header and Footer repeat on every page.
	Header []Paragraph
	Footer []Paragraph
	Blocks []Block
}

// Renderer serializes a Document to a binary artifact.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	Extension() string
	ContentType() string
}

// Text builds a paragraph holding a single run.
func Text(run Run, align Align, before, after int) Paragraph {
	return Paragraph{Runs: []Run{run}, Align: align, SpaceBefore: before, SpaceAfter: after}
}

func runSize(r Run) int {
	if r.Size <= 0 {
		return DefaultRunSize
	}
	return r.Size
}
