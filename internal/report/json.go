package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONExporter exports a BatchReport as structured JSON, including each
// page's diagnostics.
//
// Grounded on the teacher's export.JSONExporter (export/json_exporter.go):
// same encoding/json-backed, PrettyPrint-optioned approach, applied to
// report data instead of table data.
type JSONExporter struct {
	PrettyPrint bool
}

// NewJSONExporter returns a JSONExporter with pretty-printing enabled.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{PrettyPrint: true}
}

type jsonDiagnostic struct {
	Severity   string `json:"severity"`
	Kind       string `json:"kind"`
	ByteOffset int    `json:"byte_offset"`
	Message    string `json:"message"`
}

type jsonPage struct {
	Page            int              `json:"page"`
	GlyphsRemoved   int              `json:"glyphs_removed"`
	RunsEmitted     int              `json:"runs_emitted"`
	PathsRemoved    int              `json:"paths_removed"`
	ImagesRemoved   int              `json:"images_removed"`
	RemovedXObjects []string         `json:"removed_xobjects"`
	Diagnostics     []jsonDiagnostic `json:"diagnostics"`
}

type jsonReport struct {
	Pages              []jsonPage `json:"pages"`
	TotalGlyphsRemoved int        `json:"total_glyphs_removed"`
	TotalImagesRemoved int        `json:"total_images_removed"`
}

// Export writes report as JSON to w.
func (e *JSONExporter) Export(report BatchReport, w io.Writer) error {
	out := jsonReport{
		TotalGlyphsRemoved: report.TotalGlyphsRemoved(),
		TotalImagesRemoved: report.TotalImagesRemoved(),
	}
	for _, p := range report.Pages {
		jp := jsonPage{
			Page:            p.PageIndex,
			GlyphsRemoved:   p.GlyphsRemoved,
			RunsEmitted:     p.RunsEmitted,
			PathsRemoved:    p.PathsRemoved,
			ImagesRemoved:   p.ImagesRemoved,
			RemovedXObjects: []string(p.RemovedXObjects),
		}
		for _, d := range p.Diagnostics {
			jp.Diagnostics = append(jp.Diagnostics, jsonDiagnostic{
				Severity:   d.Severity.String(),
				Kind:       d.Kind.String(),
				ByteOffset: d.ByteOffset,
				Message:    d.Message,
			})
		}
		out.Pages = append(out.Pages, jp)
	}

	enc := json.NewEncoder(w)
	if e.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// ExportToString renders report as a JSON string.
func (e *JSONExporter) ExportToString(report BatchReport) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(report, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ContentType returns the MIME content type for JSON.
func (e *JSONExporter) ContentType() string { return "application/json" }

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string { return ".json" }
