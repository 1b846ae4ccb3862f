// Package redactpdf implements true content-level redaction of PDF page
// content streams: it tokenizes, interprets, redacts, and re-serializes
// the operators that actually paint a page, rather than drawing an opaque
// box on top of text and images that remain extractable underneath.
//
// # Quick Start
//
// Redact a decoded page content stream against a set of rectangles:
//
//	page := redactpdf.Page{
//	    Content:  contentBytes,
//	    Res:      myResolver,
//	    MediaBox: redactpdf.NewRectangle(0, 0, 612, 792),
//	    Rotation: 0,
//	}
//	out, removed, diags, err := redactpdf.RedactPage(ctx, page, rects, redactpdf.DefaultConfig())
//
// # Architecture
//
// The library follows a four-stage pipeline:
//   - internal/contentstream: Tokenizer — byte-exact lexing of the content
//     stream, including inline image data.
//   - internal/interp: Interpreter — builds a sequence of typed Operations
//     (text shows with per-glyph bounding boxes, path paints, XObject
//     invocations, ...) tracking the graphics and text state that gives
//     each operation its page-space geometry.
//   - internal/redact: Redactor — drops or glyph-splits operations that
//     intersect a redaction rectangle, preserving everything else
//     byte-for-byte in meaning.
//   - internal/cswriter: Writer — serializes the resulting Operation
//     sequence back into a content stream.
//
// RedactPage wires all three core entry points (Interpret, Redact,
// Serialize) behind one call. Parsing a PDF file's page/resources/MediaBox
// and splicing the redacted stream back into the file are caller
// responsibilities; this module never reads or writes a PDF container,
// only the decoded content-stream bytes within one.
//
// # Thread Safety
//
// RedactPage and ListOperations hold no package-level mutable state; a
// caller may redact multiple pages concurrently from separate goroutines,
// one call per page.
package redactpdf

import (
	"context"
	"fmt"

	"github.com/coregx/redactpdf/internal/cswriter"
	"github.com/coregx/redactpdf/internal/diag"
	"github.com/coregx/redactpdf/internal/interp"
	"github.com/coregx/redactpdf/internal/redact"
)

// Version is the current version of the redactpdf library.
const Version = "0.1.0-alpha"

// Page is the lightweight, caller-populated view of one PDF page this
// module operates on: a decoded content stream plus the page metadata the
// Interpreter and Redactor need. It is not a parsed PDF object graph — a
// caller obtains Content/Res/MediaBox/Rotation from whatever PDF file
// reader it already has, and is responsible for splicing Content back into
// the page object and applying RemovedResourceNames to the page's
// Resources dictionary afterward.
type Page struct {
	// Content is the page's decoded (already Filter-decompressed) content
	// stream bytes.
	Content []byte

	// Res resolves glyph codes to advance widths and decoded runes for
	// every font name this page's content stream references.
	Res interp.FontResolver

	// MediaBox is the page's unrotated MediaBox. RedactPage and
	// ListOperations pass it and Rotation through to the Interpreter; they
	// do not map rectangles between display space and content-stream user
	// space (see redact.VisualToContent for that).
	MediaBox redact.Rectangle

	// Rotation is the page's /Rotate value (a multiple of 90).
	Rotation int
}

// RedactPage runs the full Tokenizer -> Interpreter -> Redactor -> Writer
// pipeline over page, removing or glyph-splitting any content that
// intersects a rectangle in rects, and returns the rewritten content
// stream bytes, the names of any XObject resources no longer referenced,
// and diagnostics accumulated along the way.
//
// rects must already be in content-stream user space; a caller holding
// display-space (rotation-aware) rectangles should map them first with
// redact.VisualToContent.
func RedactPage(ctx context.Context, page Page, rects []redact.Rectangle, cfg redact.Config) ([]byte, redact.RemovedResourceNames, diag.Diagnostics, error) {
	if len(page.Content) == 0 {
		return nil, nil, nil, ErrNoContent
	}

	ops, diags, err := interp.Interpret(ctx, page.Content, page.Res, page.Rotation, page.MediaBox)
	if err != nil {
		return nil, nil, diags, fmt.Errorf("redactpdf: interpret: %w", err)
	}

	redacted, removed, redactDiags := redact.Redact(ops, rects, cfg)
	diags = append(diags, redactDiags...)

	out := cswriter.Serialize(redacted)
	return out, removed, diags, nil
}

// ListOperations runs only the Tokenizer+Interpreter stage over page and
// returns its decoded Operation sequence without redacting anything. It
// exists for callers building a rectangle-picking UI that needs the page's
// text/path/image geometry but not a rewritten content stream; building
// and presenting that UI is itself out of this module's scope.
func ListOperations(ctx context.Context, page Page) (*interp.OperationSeq, diag.Diagnostics, error) {
	if len(page.Content) == 0 {
		return nil, nil, ErrNoContent
	}

	ops, diags, err := interp.Interpret(ctx, page.Content, page.Res, page.Rotation, page.MediaBox)
	if err != nil {
		return nil, diags, fmt.Errorf("redactpdf: interpret: %w", err)
	}
	return ops, diags, nil
}
