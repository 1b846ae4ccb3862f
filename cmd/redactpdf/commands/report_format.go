package commands

import (
	"fmt"

	"github.com/coregx/redactpdf/internal/report"
)

// reportExporter resolves the --format flag to a report.Exporter. "text"
// (the global default) behaves as "csv" for this command, since a report
// is inherently tabular.
func reportExporter(format string) (report.Exporter, error) {
	switch format {
	case "", "text", "csv":
		return report.NewCSVExporter(), nil
	case "json":
		return report.NewJSONExporter(), nil
	case "xlsx":
		return report.NewExcelExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q: want csv, json, or xlsx", format)
	}
}
