package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter exports a BatchReport to XLSX, one row per page plus a
// header row and a bold-highlighted totals row.
//
// Grounded on the teacher's export.ExcelExporter (export/excel_exporter.go):
// same NewFile/NewSheet/NewStyle/SetCellValue/SetColWidth sequence and
// header-style idiom, applied to report rows instead of table cells.
type ExcelExporter struct {
	SheetName string
}

// NewExcelExporter returns an ExcelExporter writing to a sheet named
// "Redaction Report".
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{SheetName: "Redaction Report"}
}

// Export writes report to w as an XLSX workbook.
func (e *ExcelExporter) Export(report BatchReport, w io.Writer) error {
	sheet := e.SheetName
	if sheet == "" {
		sheet = "Redaction Report"
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("report: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return fmt.Errorf("report: create header style: %w", err)
	}
	totalsStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Italic: true},
	})
	if err != nil {
		return fmt.Errorf("report: create totals style: %w", err)
	}

	for col, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for _, p := range report.Pages {
		values := []any{
			p.PageIndex, p.GlyphsRemoved, p.RunsEmitted, p.PathsRemoved,
			p.ImagesRemoved, strings.Join(p.RemovedXObjects, ";"),
			p.WarningCount(), p.ErrorCount(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("report: set cell %s: %w", cell, err)
			}
		}
		row++
	}

	totalsCell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetCellValue(sheet, totalsCell, "TOTAL")
	glyphsCell, _ := excelize.CoordinatesToCellName(2, row)
	_ = f.SetCellValue(sheet, glyphsCell, report.TotalGlyphsRemoved())
	imagesCell, _ := excelize.CoordinatesToCellName(5, row)
	_ = f.SetCellValue(sheet, imagesCell, report.TotalImagesRemoved())
	endCell, _ := excelize.CoordinatesToCellName(len(csvHeader), row)
	_ = f.SetCellStyle(sheet, totalsCell, endCell, totalsStyle)

	for col, h := range csvHeader {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		width := float64(len(h)) * 1.4
		if width < 10 {
			width = 10
		}
		_ = f.SetColWidth(sheet, colName, colName, width)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: write xlsx: %w", err)
	}
	return nil
}

// ExportToBytes renders report as an XLSX workbook and returns its bytes.
func (e *ExcelExporter) ExportToBytes(report BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Export(report, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME content type for XLSX.
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the file extension for XLSX.
func (e *ExcelExporter) FileExtension() string { return ".xlsx" }
