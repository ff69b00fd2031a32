package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
)

// A4 page size and unit conversions used by WordprocessingML.
const (
	docxPageWidth  = 11906
	docxPageHeight = 16838
	twipsPerInch   = 1440
	emuPerPixel    = 9525
	headerDistance = 708
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRel = "http://schemas.openxmlformats.org/package/2006/relationships"

	relStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relHeader = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relFooter = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	relImage  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

var imageContentTypes = map[string]string{
	"png": "image/png",
	"jpg": "image/jpeg",
	"gif": "image/gif",
}

// DOCXRenderer writes Documents as Office Open XML word processing files.
type DOCXRenderer struct{}

// NewDOCXRenderer constructs a DOCX renderer.
func NewDOCXRenderer() *DOCXRenderer {
	return &DOCXRenderer{}
}

// Extension implements Renderer.
func (r *DOCXRenderer) Extension() string { return "docx" }

// ContentType implements Renderer.
func (r *DOCXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

type docxPart struct {
	name    string
	content []byte
}

type docxMedia struct {
	relID string
	path  string
	data  []byte
}

// docxWriter accumulates the parts of one package.
type docxWriter struct {
	doc          *Document
	contentWidth int
	media        []docxMedia
}

// Render implements Renderer.
func (r *DOCXRenderer) Render(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("docx: document is nil")
	}
	w := &docxWriter{
		doc:          doc,
		contentWidth: docxPageWidth - inchesToTwips(doc.Margins.Left) - inchesToTwips(doc.Margins.Right),
	}

	body, err := w.body()
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	parts := []docxPart{
		{"[Content_Types].xml", []byte(w.contentTypes())},
		{"_rels/.rels", []byte(packageRels)},
		{"docProps/core.xml", []byte(w.coreProperties())},
		{"word/document.xml", []byte(body)},
		{"word/_rels/document.xml.rels", []byte(w.documentRels())},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/header1.xml", []byte(w.headerFooter("hdr", doc.Header))},
		{"word/footer1.xml", []byte(w.headerFooter("ftr", doc.Footer))},
	}
	for _, m := range w.media {
		parts = append(parts, docxPart{"word/" + m.path, m.data})
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("docx: create %s: %w", part.name, err)
		}
		if _, err := f.Write(part.content); err != nil {
			return nil, fmt.Errorf("docx: write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: close package: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *docxWriter) body() (string, error) {
	var sb strings.Builder
	sb.WriteString(xmlProlog)
	fmt.Fprintf(&sb, `<w:document xmlns:w="%s" xmlns:r="%s" xmlns:wp="%s" xmlns:a="%s" xmlns:pic="%s"><w:body>`, nsW, nsR, nsWP, nsA, nsPic)

	for i, block := range w.doc.Blocks {
		switch b := block.(type) {
		case Paragraph:
			writeParagraph(&sb, b, "")
		case Heading:
			writeParagraph(&sb, b.Paragraph, headingStyle(b.Level))
		case Table:
			if err := w.writeTable(&sb, b); err != nil {
				return "", fmt.Errorf("docx: block %d: %w", i, err)
			}
			if i == len(w.doc.Blocks)-1 {
				sb.WriteString("<w:p/>")
			}
		case Image:
			if err := w.writeImage(&sb, b); err != nil {
				return "", fmt.Errorf("docx: block %d: %w", i, err)
			}
		case PageBreak:
			sb.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		default:
			return "", fmt.Errorf("docx: block %d: unsupported type %T", i, block)
		}
	}

	m := w.doc.Margins
	fmt.Fprintf(&sb, `<w:sectPr><w:headerReference w:type="default" r:id="rIdHeader"/><w:footerReference w:type="default" r:id="rIdFooter"/>`+
		`<w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="%d" w:footer="%d" w:gutter="0"/></w:sectPr>`,
		docxPageWidth, docxPageHeight,
		inchesToTwips(m.Top), inchesToTwips(m.Right), inchesToTwips(m.Bottom), inchesToTwips(m.Left),
		headerDistance, headerDistance)
	sb.WriteString(`</w:body></w:document>`)
	return sb.String(), nil
}

func (w *docxWriter) writeTable(sb *strings.Builder, t Table) error {
	if len(t.Widths) == 0 {
		return fmt.Errorf("table has no columns")
	}
	border := t.BorderColor
	if border == "" {
		border = "auto"
	}
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(sb, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="%s"/>`, side, border)
	}
	sb.WriteString(`</w:tblBorders><w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`)
	for _, pct := range t.Widths {
		fmt.Fprintf(sb, `<w:gridCol w:w="%d"/>`, int(math.Round(float64(w.contentWidth)*pct/100)))
	}
	sb.WriteString(`</w:tblGrid>`)

	for ri, row := range t.Rows {
		if len(row.Cells) != len(t.Widths) {
			return fmt.Errorf("row %d has %d cells, want %d", ri, len(row.Cells), len(t.Widths))
		}
		sb.WriteString(`<w:tr>`)
		for ci, cell := range row.Cells {
			fmt.Fprintf(sb, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="pct"/>`, int(math.Round(t.Widths[ci]*50)))
			if cell.Fill != "" {
				fmt.Fprintf(sb, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, cell.Fill)
			}
			sb.WriteString(`<w:vAlign w:val="center"/></w:tcPr>`)
			writeParagraph(sb, cell.Paragraph, "")
			sb.WriteString(`</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return nil
}

func (w *docxWriter) writeImage(sb *strings.Builder, img Image) error {
	if _, ok := imageContentTypes[img.Format]; !ok {
		return fmt.Errorf("unsupported image format %q", img.Format)
	}
	if len(img.Data) == 0 || img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("image is empty")
	}
	n := len(w.media) + 1
	m := docxMedia{
		relID: fmt.Sprintf("rIdImage%d", n),
		path:  fmt.Sprintf("media/image%d.%s", n, img.Format),
		data:  img.Data,
	}
	w.media = append(w.media, m)

	name := img.Name
	if name == "" {
		name = fmt.Sprintf("image%d.%s", n, img.Format)
	}
	cx, cy := img.Width*emuPerPixel, img.Height*emuPerPixel

	sb.WriteString(`<w:p><w:pPr>`)
	writeJustification(sb, img.Align)
	sb.WriteString(`</w:pPr><w:r><w:drawing>`)
	fmt.Fprintf(sb, `<wp:inline distT="0" distB="0" distL="0" distR="0"><wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="%s"/>`, cx, cy, n, escape(name))
	sb.WriteString(`<wp:cNvGraphicFramePr><a:graphicFrameLocks noChangeAspect="1"/></wp:cNvGraphicFramePr>`)
	fmt.Fprintf(sb, `<a:graphic><a:graphicData uri="%s"><pic:pic><pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`, nsPic, n, escape(name))
	fmt.Fprintf(sb, `<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`, m.relID)
	fmt.Fprintf(sb, `<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`, cx, cy)
	sb.WriteString(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)
	return nil
}

func writeParagraph(sb *strings.Builder, p Paragraph, style string) {
	sb.WriteString(`<w:p><w:pPr>`)
	if style != "" {
		fmt.Fprintf(sb, `<w:pStyle w:val="%s"/>`, style)
	}
	if p.RuleAbove != "" || p.RuleBelow != "" {
		sb.WriteString(`<w:pBdr>`)
		if p.RuleAbove != "" {
			fmt.Fprintf(sb, `<w:top w:val="single" w:sz="6" w:space="4" w:color="%s"/>`, p.RuleAbove)
		}
		if p.RuleBelow != "" {
			fmt.Fprintf(sb, `<w:bottom w:val="single" w:sz="6" w:space="4" w:color="%s"/>`, p.RuleBelow)
		}
		sb.WriteString(`</w:pBdr>`)
	}
	if p.SpaceBefore > 0 || p.SpaceAfter > 0 {
		fmt.Fprintf(sb, `<w:spacing w:before="%d" w:after="%d"/>`, p.SpaceBefore, p.SpaceAfter)
	}
	writeJustification(sb, p.Align)
	sb.WriteString(`</w:pPr>`)
	for _, run := range p.Runs {
		writeRun(sb, run)
	}
	sb.WriteString(`</w:p>`)
}

func writeJustification(sb *strings.Builder, align Align) {
	switch align {
	case AlignCenter:
		sb.WriteString(`<w:jc w:val="center"/>`)
	case AlignRight:
		sb.WriteString(`<w:jc w:val="right"/>`)
	}
}

func writeRun(sb *strings.Builder, run Run) {
	if run.Field != FieldNone {
		fmt.Fprintf(sb, `<w:fldSimple w:instr=" %s ">`, run.Field)
		writeRun(sb, Run{Text: "1", Bold: run.Bold, Italic: run.Italic, Color: run.Color, Size: run.Size})
		sb.WriteString(`</w:fldSimple>`)
		return
	}
	sb.WriteString(`<w:r><w:rPr>`)
	if run.Bold {
		sb.WriteString(`<w:b/><w:bCs/>`)
	}
	if run.Italic {
		sb.WriteString(`<w:i/><w:iCs/>`)
	}
	if run.Color != "" {
		fmt.Fprintf(sb, `<w:color w:val="%s"/>`, run.Color)
	}
	size := runSize(run)
	fmt.Fprintf(sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/></w:rPr>`, size, size)
	fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t></w:r>`, escape(run.Text))
}

func (w *docxWriter) headerFooter(root string, paragraphs []Paragraph) string {
	var sb strings.Builder
	sb.WriteString(xmlProlog)
	fmt.Fprintf(&sb, `<w:%s xmlns:w="%s" xmlns:r="%s">`, root, nsW, nsR)
	if len(paragraphs) == 0 {
		sb.WriteString(`<w:p/>`)
	}
	for _, p := range paragraphs {
		writeParagraph(&sb, p, "")
	}
	fmt.Fprintf(&sb, `</w:%s>`, root)
	return sb.String()
}

func (w *docxWriter) contentTypes() string {
	var sb strings.Builder
	sb.WriteString(xmlProlog)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	sb.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	sb.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, ext := range []string{"png", "jpg", "gif"} {
		fmt.Fprintf(&sb, `<Default Extension="%s" ContentType="%s"/>`, ext, imageContentTypes[ext])
	}
	sb.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	sb.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	sb.WriteString(`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>`)
	sb.WriteString(`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`)
	sb.WriteString(`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>`)
	sb.WriteString(`</Types>`)
	return sb.String()
}

func (w *docxWriter) documentRels() string {
	var sb strings.Builder
	sb.WriteString(xmlProlog)
	fmt.Fprintf(&sb, `<Relationships xmlns="%s">`, nsRel)
	fmt.Fprintf(&sb, `<Relationship Id="rIdStyles" Type="%s" Target="styles.xml"/>`, relStyles)
	fmt.Fprintf(&sb, `<Relationship Id="rIdHeader" Type="%s" Target="header1.xml"/>`, relHeader)
	fmt.Fprintf(&sb, `<Relationship Id="rIdFooter" Type="%s" Target="footer1.xml"/>`, relFooter)
	for _, m := range w.media {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"/>`, m.relID, relImage, m.path)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

func (w *docxWriter) coreProperties() string {
	var sb strings.Builder
	sb.WriteString(xmlProlog)
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	fmt.Fprintf(&sb, `<dc:title>%s</dc:title><dc:creator>%s</dc:creator>`, escape(w.doc.Title), escape(w.doc.Author))
	sb.WriteString(`</cp:coreProperties>`)
	return sb.String()
}

func headingStyle(level int) string {
	if level <= 1 {
		return "Heading1"
	}
	return "Heading2"
}

func inchesToTwips(in float64) int {
	return int(math.Round(in * twipsPerInch))
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const packageRels = xmlProlog + `<Relationships xmlns="` + nsRel + `">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const stylesXML = xmlProlog + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="es-PE"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:outlineLvl w:val="0"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/><w:pPr><w:keepNext/><w:outlineLvl w:val="1"/></w:pPr></w:style>` +
	`</w:styles>`
