// Package main provides the redactpdf command-line interface.
//
// redactpdf removes text, vector paths, and images from a decoded PDF
// content stream wherever they intersect a caller-supplied rectangle,
// operating at the content-stream level rather than drawing an opaque box
// over recoverable content.
//
// Usage:
//
//	redactpdf [command] [flags]
//
// Available Commands:
//
//	redact      Redact rectangles out of a page content stream
//	inspect     List the operations and bounding boxes on a content stream
//	report      Summarize a batch redaction run as CSV/JSON/XLSX
//	version     Print version information
//
// Use "redactpdf [command] --help" for more information about a command.
package main

import (
	"os"

	"github.com/coregx/redactpdf/cmd/redactpdf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
