package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM lets spreadsheet tools detect UTF-8 in accented Spanish text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sheet is a tabular summary with one header row.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// SheetExporter serializes a Sheet.
type SheetExporter interface {
	Render(sheet Sheet) ([]byte, error)
	Extension() string
	ContentType() string
}

// CSVExporter renders sheets into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Extension implements SheetExporter.
func (e *CSVExporter) Extension() string { return "csv" }

// ContentType implements SheetExporter.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Render produces CSV encoded bytes for the sheet. Short rows are padded.
func (e *CSVExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := bytes.NewBuffer(append([]byte(nil), utf8BOM...))
	writer := csv.NewWriter(buf)
	if err := writer.Write(sheet.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for i, row := range sheet.Rows {
		if len(row) > len(sheet.Headers) {
			return nil, fmt.Errorf("csv row %d has %d values, want at most %d", i, len(row), len(sheet.Headers))
		}
		record := make([]string, len(sheet.Headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
