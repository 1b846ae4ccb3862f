package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVExporter exports a BatchReport as one row per page.
//
// Grounded on the teacher's export.CSVExporter (export/csv_exporter.go):
// same encoding/csv-backed approach and Delimiter option, applied to
// report rows instead of table cells.
type CSVExporter struct {
	Delimiter string
}

// NewCSVExporter returns a CSVExporter using a comma delimiter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{Delimiter: ","}
}

var csvHeader = []string{
	"page", "glyphs_removed", "runs_emitted", "paths_removed",
	"images_removed", "removed_xobjects", "warnings", "errors",
}

// Export writes report as CSV to w.
func (e *CSVExporter) Export(report BatchReport, w io.Writer) error {
	cw := csv.NewWriter(w)
	if e.Delimiter != "" {
		cw.Comma = rune(e.Delimiter[0])
	}

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	for _, p := range report.Pages {
		row := []string{
			strconv.Itoa(p.PageIndex),
			strconv.Itoa(p.GlyphsRemoved),
			strconv.Itoa(p.RunsEmitted),
			strconv.Itoa(p.PathsRemoved),
			strconv.Itoa(p.ImagesRemoved),
			strings.Join(p.RemovedXObjects, ";"),
			strconv.Itoa(p.WarningCount()),
			strconv.Itoa(p.ErrorCount()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row for page %d: %w", p.PageIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportToString renders report as a CSV string.
func (e *CSVExporter) ExportToString(report BatchReport) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(report, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentType returns the MIME content type for CSV.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// FileExtension returns the file extension for CSV.
func (e *CSVExporter) FileExtension() string { return ".csv" }
