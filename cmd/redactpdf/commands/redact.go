package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/coregx/redactpdf"
	"github.com/coregx/redactpdf/internal/fonts"
	"github.com/coregx/redactpdf/internal/redact"
	"github.com/coregx/redactpdf/internal/writer"
	"github.com/spf13/cobra"
)

var (
	redactRects        []string
	redactOutput       string
	redactRotation     int
	redactMediaBox     string
	redactNoText       bool
	redactNoPaths      bool
	redactNoImages     bool
	redactMinRatio     float64
	redactNoInjectFont bool
	redactFlateIn      bool
	redactFlateOut     bool
)

var redactCmd = &cobra.Command{
	Use:   "redact CONTENT_FILE",
	Short: "Redact rectangles out of a page content stream",
	Long: `Redact reads a decoded PDF page content stream, removes or glyph-splits
any text, path, or image operation that intersects one of the given
rectangles, and writes the rewritten content stream.

Rectangles are given in content-stream user space as left,bottom,right,top
points. Pass --rotation (and --mediabox, if it differs from the default
612x792) when your rectangles were instead picked in rotated display
space; they are mapped into content-stream space with the same rotation
table the core Redactor uses before anything is filtered.

Examples:
  redactpdf redact page.bin --rect 72,700,300,720 -o redacted.bin
  redactpdf redact page.bin --rect 72,700,300,720 --rect 72,600,540,620
  redactpdf redact page.bin --rotation 90 --rect 492,121,509,217`,
	Args: cobra.ExactArgs(1),
	RunE: runRedact,
}

func init() {
	redactCmd.Flags().StringArrayVar(&redactRects, "rect", nil, "redaction rectangle left,bottom,right,top (repeatable)")
	redactCmd.Flags().StringVarP(&redactOutput, "output", "o", "", "output file (default stdout)")
	redactCmd.Flags().IntVar(&redactRotation, "rotation", 0, "page rotation in degrees (0, 90, 180, 270)")
	redactCmd.Flags().StringVar(&redactMediaBox, "mediabox", "0,0,612,792", "unrotated page MediaBox left,bottom,right,top")
	redactCmd.Flags().BoolVar(&redactNoText, "no-text", false, "do not redact text")
	redactCmd.Flags().BoolVar(&redactNoPaths, "no-paths", false, "do not redact vector paths")
	redactCmd.Flags().BoolVar(&redactNoImages, "no-images", false, "do not redact images")
	redactCmd.Flags().Float64Var(&redactMinRatio, "min-ratio", 0.2, "minimum intersection height ratio to count as a hit")
	redactCmd.Flags().BoolVar(&redactNoInjectFont, "no-inject-font", false, "do not repair a missing Tf ahead of a split text run")
	redactCmd.Flags().BoolVar(&redactFlateIn, "flate-decode", false, "the input file is FlateDecode-compressed; decompress before redacting")
	redactCmd.Flags().BoolVar(&redactFlateOut, "flate-encode", false, "FlateDecode-compress the output before writing it")
}

func runRedact(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read content stream: %w", err)
	}
	if redactFlateIn {
		content, err = writer.DecompressStream(content)
		if err != nil {
			return fmt.Errorf("failed to inflate input: %w", err)
		}
	}

	rects, err := parseRects(redactRects)
	if err != nil {
		return err
	}
	mediaBox, err := parseRect(redactMediaBox)
	if err != nil {
		return fmt.Errorf("--mediabox: %w", err)
	}
	if redactRotation != 0 {
		w, h := mediaBox.Width(), mediaBox.Height()
		for i, r := range rects {
			rects[i] = redact.VisualToContent(r, redactRotation, w, h)
		}
	}

	cfg := redactpdf.DefaultConfig()
	cfg.RemoveText = !redactNoText
	cfg.RemovePaths = !redactNoPaths
	cfg.RemoveImages = !redactNoImages
	cfg.MinIntersectionHeightRatio = redactMinRatio
	cfg.InjectMissingTf = !redactNoInjectFont

	page := redactpdf.Page{
		Content:  content,
		Res:      fonts.NewStandardResolver(),
		MediaBox: mediaBox,
		Rotation: redactRotation,
	}

	out, removed, diags, err := redactpdf.RedactPage(context.Background(), page, rects, cfg)
	if err != nil {
		return fmt.Errorf("redact failed: %w", err)
	}

	diags.LogAll(logger())
	if len(removed) > 0 {
		printVerbosef("removed XObject resources: %v", []string(removed))
	}

	if redactFlateOut {
		out, err = writer.CompressStream(out, writer.DefaultCompression)
		if err != nil {
			return fmt.Errorf("failed to deflate output: %w", err)
		}
	}

	if redactOutput == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(redactOutput, out, 0o644)
}
