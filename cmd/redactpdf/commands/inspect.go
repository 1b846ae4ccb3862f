package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/coregx/redactpdf"
	"github.com/coregx/redactpdf/internal/fonts"
	"github.com/coregx/redactpdf/internal/interp"
	"github.com/coregx/redactpdf/internal/redact"
	"github.com/coregx/redactpdf/internal/writer"
	"github.com/spf13/cobra"
)

var inspectMediaBox string
var inspectRotation int
var inspectFlateIn bool

var inspectCmd = &cobra.Command{
	Use:   "inspect CONTENT_FILE",
	Short: "List the operations and bounding boxes on a content stream",
	Long: `Inspect runs the Tokenizer and Interpreter over a decoded PDF page
content stream and prints each operation's kind, operator, and bounding
box, without redacting anything. Useful for a caller building a
rectangle-picking UI who needs the page's geometry.

Bounding boxes are printed in content-stream user space by default. Pass
--rotation (a page's /Rotate value) and --mediabox to instead have them
mapped into rotated display space, the frame a rectangle-picking UI and
its user actually work in.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectMediaBox, "mediabox", "0,0,612,792", "unrotated page MediaBox left,bottom,right,top")
	inspectCmd.Flags().IntVar(&inspectRotation, "rotation", 0, "page rotation in degrees (0, 90, 180, 270)")
	inspectCmd.Flags().BoolVar(&inspectFlateIn, "flate-decode", false, "the input file is FlateDecode-compressed; decompress before inspecting")
}

type inspectedOp struct {
	Kind     string  `json:"kind"`
	Operator string  `json:"operator"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Left     float64 `json:"left,omitempty"`
	Bottom   float64 `json:"bottom,omitempty"`
	Right    float64 `json:"right,omitempty"`
	Top      float64 `json:"top,omitempty"`
	Text     string  `json:"text,omitempty"`
}

func runInspect(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read content stream: %w", err)
	}
	if inspectFlateIn {
		content, err = writer.DecompressStream(content)
		if err != nil {
			return fmt.Errorf("failed to inflate input: %w", err)
		}
	}
	mediaBox, err := parseRect(inspectMediaBox)
	if err != nil {
		return fmt.Errorf("--mediabox: %w", err)
	}

	page := redactpdf.Page{
		Content:  content,
		Res:      fonts.NewStandardResolver(),
		MediaBox: mediaBox,
		Rotation: inspectRotation,
	}

	ops, diags, err := redactpdf.ListOperations(context.Background(), page)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}
	diags.LogAll(logger())

	rows := make([]inspectedOp, 0, len(ops.Ops))
	for _, op := range ops.Ops {
		rows = append(rows, toInspectedOp(op, inspectRotation, mediaBox))
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	for _, row := range rows {
		fmt.Printf("[%6d-%6d] %-16s %-4s bbox=(%.2f,%.2f,%.2f,%.2f) %s\n",
			row.Start, row.End, row.Kind, row.Operator, row.Left, row.Bottom, row.Right, row.Top, row.Text)
	}
	return nil
}

func toInspectedOp(op interp.Operation, rotation int, mediaBox redact.Rectangle) inspectedOp {
	row := inspectedOp{
		Kind:     kindName(op.Kind),
		Operator: op.Operator,
		Start:    op.Start,
		End:      op.End,
	}
	switch {
	case op.Text != nil:
		row.setBBox(op.Text.BBox, rotation, mediaBox)
		row.Text = op.Text.DecodedText
	case op.Path != nil:
		row.setBBox(op.Path.BBox, rotation, mediaBox)
	case op.InlineImage != nil:
		row.setBBox(op.InlineImage.BBox, rotation, mediaBox)
	}
	return row
}

// setBBox records bbox's corners, mapped from content-stream user space
// into display space when rotation is non-zero, per spec §4.3.2's
// rotation table (the inverse direction, since inspect reports geometry
// to a caller rather than consuming caller-picked rectangles).
func (row *inspectedOp) setBBox(bbox redact.Rectangle, rotation int, mediaBox redact.Rectangle) {
	if rotation != 0 {
		bbox = redact.ContentToVisual(bbox, rotation, mediaBox.Width(), mediaBox.Height())
	}
	row.Left, row.Bottom = bbox.LowerLeft()
	row.Right, row.Top = bbox.UpperRight()
}

func kindName(k interp.Kind) string {
	switch k {
	case interp.KindState:
		return "State"
	case interp.KindTextObject:
		return "TextObject"
	case interp.KindTextState:
		return "TextState"
	case interp.KindTextPosition:
		return "TextPosition"
	case interp.KindTextShow:
		return "TextShow"
	case interp.KindPathConstruct:
		return "PathConstruct"
	case interp.KindPathPaint:
		return "PathPaint"
	case interp.KindXObject:
		return "XObject"
	case interp.KindInlineImage:
		return "InlineImage"
	case interp.KindMarkedContent:
		return "MarkedContent"
	case interp.KindCompatibility:
		return "Compatibility"
	default:
		return "Unknown"
	}
}
