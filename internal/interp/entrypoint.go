package interp

import (
	"context"

	"github.com/coregx/redactpdf/internal/diag"
	"github.com/coregx/redactpdf/internal/geom"
)

// Interpret runs the Tokenizer+Interpreter stage over content and returns
// the decoded Operation sequence.
//
// rotation and mediaBox are accepted here, not used internally, and
// threaded through only so callers driving the full pipeline (Interpret ->
// Redact -> Serialize) from a single call site can pass a page's display
// metadata once. The Interpreter's own bounding-box math runs entirely in
// content-stream user space via the CTM, which is independent of a page's
// /Rotate display convention; rotation only matters once a caller maps a
// visually-picked rectangle into that user space, which is
// internal/redact.VisualToContent's job, not the Interpreter's.
func Interpret(ctx context.Context, content []byte, res FontResolver, rotation int, mediaBox geom.Rectangle) (*OperationSeq, diag.Diagnostics, error) {
	_ = rotation
	_ = mediaBox
	return New(ctx, content, res).Run()
}
