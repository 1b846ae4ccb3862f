// Package report summarizes a batch redaction run — one or more pages put
// through internal/redact.Redact — into a document-level report exportable
// as CSV, JSON, or XLSX.
//
// Grounded on the teacher's export package (export/exporter.go): the same
// TableExporter-shaped interface, options struct, and per-format
// implementations, repurposed from table export to redaction summaries.
package report

import (
	"io"

	"github.com/coregx/redactpdf/internal/diag"
	"github.com/coregx/redactpdf/internal/redact"
)

// PageReport summarizes one page's redaction pass.
type PageReport struct {
	PageIndex int
	// GlyphsRemoved is the number of glyphs present in the interpreted
	// operation sequence before redaction but absent afterward.
	GlyphsRemoved int
	// RunsEmitted is the number of TextShow operations (Tj/'/"/TJ) in the
	// redacted output, including any synthetic runs a glyph-level split
	// produced.
	RunsEmitted   int
	PathsRemoved  int
	ImagesRemoved int
	RemovedXObjects redact.RemovedResourceNames
	Diagnostics     diag.Diagnostics
}

// ErrorCount returns the number of Error or Fatal severity diagnostics on
// this page.
func (p PageReport) ErrorCount() int {
	n := 0
	for _, d := range p.Diagnostics {
		if d.Severity == diag.SeverityError || d.Severity == diag.SeverityFatal {
			n++
		}
	}
	return n
}

// WarningCount returns the number of Warning severity diagnostics on this
// page.
func (p PageReport) WarningCount() int {
	n := 0
	for _, d := range p.Diagnostics {
		if d.Severity == diag.SeverityWarning {
			n++
		}
	}
	return n
}

// BatchReport is the document-level summary of a redaction run across all
// of its pages, in page order.
type BatchReport struct {
	Pages []PageReport
}

// TotalGlyphsRemoved sums GlyphsRemoved across every page.
func (b BatchReport) TotalGlyphsRemoved() int {
	n := 0
	for _, p := range b.Pages {
		n += p.GlyphsRemoved
	}
	return n
}

// TotalImagesRemoved sums ImagesRemoved across every page.
func (b BatchReport) TotalImagesRemoved() int {
	n := 0
	for _, p := range b.Pages {
		n += p.ImagesRemoved
	}
	return n
}

// Exporter is the interface implemented by each report output format.
//
// Mirrors the teacher's export.TableExporter shape (Export/ContentType/
// FileExtension), applied to a BatchReport instead of a table; string
// helpers are methods of the individual exporters, not of this interface.
type Exporter interface {
	// Export writes report to w in the format this Exporter implements.
	Export(report BatchReport, w io.Writer) error

	// ContentType returns the MIME content type of the exported format.
	ContentType() string

	// FileExtension returns the recommended file extension for the format.
	FileExtension() string
}
