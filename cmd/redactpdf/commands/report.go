package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/coregx/redactpdf"
	"github.com/coregx/redactpdf/internal/fonts"
	"github.com/coregx/redactpdf/internal/interp"
	"github.com/coregx/redactpdf/internal/redact"
	"github.com/coregx/redactpdf/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportRects    []string
	reportOutput   string
	reportRotation int
	reportMediaBox string
)

var reportCmd = &cobra.Command{
	Use:   "report CONTENT_FILE...",
	Short: "Summarize a batch redaction run as CSV/JSON/XLSX",
	Long: `Report runs the redaction pipeline over each given content-stream file,
treating each as one page in document order, and writes a summary of what
was removed per page (glyphs, paths, images, XObject resource names, and
any diagnostics raised) in the format selected by --format (csv, json,
xlsx).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringArrayVar(&reportRects, "rect", nil, "redaction rectangle left,bottom,right,top (repeatable, applied to every page)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file (default stdout)")
	reportCmd.Flags().IntVar(&reportRotation, "rotation", 0, "page rotation in degrees, applied to every page")
	reportCmd.Flags().StringVar(&reportMediaBox, "mediabox", "0,0,612,792", "unrotated page MediaBox, applied to every page")
}

func runReport(_ *cobra.Command, args []string) error {
	rects, err := parseRects(reportRects)
	if err != nil {
		return err
	}
	mediaBox, err := parseRect(reportMediaBox)
	if err != nil {
		return fmt.Errorf("--mediabox: %w", err)
	}

	cfg := redactpdf.DefaultConfig()
	resolver := fonts.NewStandardResolver()

	var batch report.BatchReport
	for i, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		pr, err := redactAndSummarize(i, content, resolver, mediaBox, reportRotation, rects, cfg)
		if err != nil {
			return fmt.Errorf("redact failed on %s: %w", path, err)
		}
		pr.Diagnostics.LogAll(logger())
		batch.Pages = append(batch.Pages, pr)
	}

	exporter, err := reportExporter(outputFormat)
	if err != nil {
		return err
	}

	if reportOutput == "" {
		return exporter.Export(batch, os.Stdout)
	}
	f, err := os.Create(reportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reportOutput, err)
	}
	defer func() { _ = f.Close() }()
	return exporter.Export(batch, f)
}

// redactAndSummarize runs Interpret+Redact directly (rather than through
// redactpdf.RedactPage) so it can diff the before/after operation
// sequences for per-kind removal counts that RedactPage's return values
// (bytes, removed resource names, diagnostics, error) do not expose.
func redactAndSummarize(pageIndex int, content []byte, resolver interp.FontResolver, mediaBox redact.Rectangle, rotation int, rects []redact.Rectangle, cfg redact.Config) (report.PageReport, error) {
	ops, diags, err := interp.Interpret(context.Background(), content, resolver, rotation, mediaBox)
	if err != nil {
		return report.PageReport{}, err
	}

	redacted, removed, redactDiags := redact.Redact(ops, rects, cfg)
	diags = append(diags, redactDiags...)

	return report.PageReport{
		PageIndex:       pageIndex,
		GlyphsRemoved:   countGlyphs(ops) - countGlyphs(redacted),
		RunsEmitted:     countKind(redacted, interp.KindTextShow),
		PathsRemoved:    countReplacedPaints(ops, redacted),
		ImagesRemoved:   countKind(ops, interp.KindXObject) + countKind(ops, interp.KindInlineImage) - countKind(redacted, interp.KindXObject) - countKind(redacted, interp.KindInlineImage),
		RemovedXObjects: removed,
		Diagnostics:     diags,
	}, nil
}

func countGlyphs(seq *interp.OperationSeq) int {
	n := 0
	for _, op := range seq.Ops {
		if op.Text != nil {
			n += len(op.Text.Glyphs)
		}
	}
	return n
}

func countKind(seq *interp.OperationSeq, kind interp.Kind) int {
	n := 0
	for _, op := range seq.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// countReplacedPaints counts PathPaint operations that Redact turned into
// a no-op "n". Path-paint operations are never removed from the sequence
// (only their operator is replaced), so the n-th PathPaint in after is
// compared with the n-th PathPaint in before; other operations, whose
// count can change, are skipped.
func countReplacedPaints(before, after *interp.OperationSeq) int {
	n := 0
	bi := 0
	for _, op := range after.Ops {
		if op.Kind != interp.KindPathPaint {
			continue
		}
		for bi < len(before.Ops) && before.Ops[bi].Kind != interp.KindPathPaint {
			bi++
		}
		if bi >= len(before.Ops) {
			break
		}
		if op.Operator == "n" && before.Ops[bi].Operator != "n" {
			n++
		}
		bi++
	}
	return n
}
