// Package commands implements the redactpdf CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/coregx/redactpdf/internal/diag"
)

var (
	// Version is the application version (set at build time).
	Version = "dev"
	// GitCommit is the git commit hash (set at build time).
	GitCommit = "unknown"
	// BuildDate is the build date (set at build time).
	BuildDate = "unknown"

	// Global flags.
	outputFormat string
	verbose      bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "redactpdf",
	Short: "redactpdf - content-level PDF page redaction tool",
	Long: `redactpdf removes text, vector paths, and images from a decoded PDF
page content stream wherever they intersect a redaction rectangle, instead
of drawing an opaque box over content that remains extractable underneath.

Examples:
  redactpdf inspect page.bin
  redactpdf redact page.bin --rect 72,700,300,720 -o redacted.bin
  redactpdf report page1.bin page2.bin --rect 72,700,300,720 --format xlsx -o report.xlsx

redactpdf operates on raw, already Filter-decoded content-stream bytes, not
whole PDF files; pulling a page's content stream out of a PDF and splicing
the result back in is left to the caller's PDF file library.

Documentation: https://github.com/coregx/redactpdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, csv, xlsx")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(redactCmd)
	rootCmd.AddCommand(reportCmd)
}

// logger returns the diag.Logger commands report diagnostics through:
// DummyLogger unless --verbose is set, in which case a ConsoleLogger at
// debug level prints everything.
func logger() diag.Logger {
	if !verbose {
		return diag.DummyLogger{}
	}
	return diag.NewConsoleLogger(diag.LogLevelDebug)
}

// printVerbosef prints a one-off message if verbose mode is enabled.
func printVerbosef(format string, args ...any) {
	logger().Debug(format, args...)
}
