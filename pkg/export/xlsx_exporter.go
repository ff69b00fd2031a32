package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxDefaultSheet = "Sheet1"
	xlsxMaxSheetName = 31
	xlsxColumnWidth  = 24
)

// XLSXExporter renders sheets as Excel workbooks with a styled header row.
type XLSXExporter struct {
	// HeaderFill is the hex background of the header row.
	HeaderFill string
}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter(headerFill string) *XLSXExporter {
	return &XLSXExporter{HeaderFill: headerFill}
}

// Extension implements SheetExporter.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// ContentType implements SheetExporter.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes the sheet into a single-sheet workbook.
func (e *XLSXExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer f.Close()

	name := sheet.Name
	if name == "" {
		name = xlsxDefaultSheet
	}
	if runes := []rune(name); len(runes) > xlsxMaxSheetName {
		name = string(runes[:xlsxMaxSheetName])
	}
	if name != xlsxDefaultSheet {
		if err := f.SetSheetName(xlsxDefaultSheet, name); err != nil {
			return nil, fmt.Errorf("name sheet: %w", err)
		}
	}

	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx headers: %w", err)
	}
	for i, row := range sheet.Rows {
		if len(row) > len(sheet.Headers) {
			return nil, fmt.Errorf("xlsx row %d has %d values, want at most %d", i, len(row), len(sheet.Headers))
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
	if err != nil {
		return nil, err
	}
	style := &excelize.Style{Font: &excelize.Font{Bold: true}}
	if e.HeaderFill != "" {
		style.Font.Color = "FFFFFF"
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{e.HeaderFill}, Pattern: 1}
	}
	styleID, err := f.NewStyle(style)
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", styleID); err != nil {
		return nil, fmt.Errorf("style xlsx headers: %w", err)
	}
	if err := f.SetColWidth(name, "A", lastCol, xlsxColumnWidth); err != nil {
		return nil, fmt.Errorf("size xlsx columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
