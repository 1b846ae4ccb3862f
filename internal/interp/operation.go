package interp

import (
	"github.com/coregx/redactpdf/internal/geom"
	"github.com/coregx/redactpdf/internal/parser"
)

// Kind identifies which of the content-stream operator families an
// Operation belongs to, per spec's Operation sum-type data model.
type Kind int

// Operation kinds. Grounded on internal/parser.IsContentStreamOperator's
// catalogue, grouped the way PDF 1.7's operator summary (Appendix A) groups
// them.
const (
	KindState          Kind = iota // q Q cm w J j M d ri i gs W W* color ops sh
	KindTextObject                  // BT ET
	KindTextState                   // Tc Tw Tz TL Tf Tr Ts
	KindTextPosition                // Td TD Tm T*
	KindTextShow                    // Tj TJ ' "
	KindPathConstruct               // m l c v y h re
	KindPathPaint                   // S s f F f* B B* b b* n
	KindXObject                     // Do
	KindInlineImage                 // BI ... ID ... EI
	KindMarkedContent               // MP DP BMC BDC EMC
	KindCompatibility               // BX EX
	KindUnknown
)

// Glyph is one shown character code within a TextShow operation, positioned
// in content-stream (unscaled text) space at the moment it was shown.
type Glyph struct {
	Code  byte
	Rune  rune    // decoded via the active FontResolver; 0 if undecodable
	Width float64 // advance width in unscaled text space units (glyph space / 1000 * FontSize * Th)
	Rect  geom.Rectangle

	// Origin is the text matrix Tm in effect immediately before this
	// glyph's own advance was applied. The redactor reuses it verbatim as
	// the Tm of a repositioning operator when a TextShow is split, since
	// it already carries exactly the user-space placement spec 4.3 asks
	// for "transformed back into text space".
	Origin geom.Matrix

	// SourceArrayIndex is the index of this glyph's source string within
	// a TJ array (0 for Tj/'/" which show a single string), matching the
	// data model's per-glyph "source-array-index" field.
	SourceArrayIndex int

	// Index is this glyph's 0-based position in the original shown-byte
	// sequence (byte order), independent of TextShowData.Glyphs' own
	// ordering. The data model requires Glyphs be ordered by visual x
	// position after transform, which may differ from byte order; the
	// redactor uses Index to recover byte order for run partitioning and
	// the glyph-order-stability invariant.
	Index int
}

// TextShowData carries everything the redactor needs to decide whether, and
// how, to drop glyphs from a Tj/TJ/'/" operation.
type TextShowData struct {
	Glyphs            []Glyph
	DecodedText       string // Unicode text decoded via the active FontResolver
	FontName          string
	FontSize          float64 // raw size from the most recent Tf in this text object
	EffectiveFontSize float64
	RenderMode        int
	BBox              geom.Rectangle // union of all glyph bboxes
	// HadPrecedingTf is false when no Tf operator appeared between BT and
	// this show operation, meaning a redacted-and-rewritten show needs a
	// synthetic Tf injected ahead of it (spec §4.3.1).
	HadPrecedingTf bool
}

// PathPaintData carries the bounding box of the path a painting operator
// (S, f, B, ...) would have painted, in page space.
type PathPaintData struct {
	BBox geom.Rectangle
}

// XObjectData names the XObject a Do operator invokes.
type XObjectData struct {
	Name string
}

// InlineImageData carries an inline image's dictionary operands, raw data
// bytes, and the page-space rectangle it occupies (the unit square mapped
// through the current CTM).
type InlineImageData struct {
	Dict *parser.Dictionary
	Data []byte
	BBox geom.Rectangle
}

// Operation is one interpreted content-stream instruction: an operator
// together with its operands, its Kind-specific decoded data, its byte span
// in the source stream, and a snapshot of the graphics/text state at the
// moment it executed.
type Operation struct {
	Kind     Kind
	Operator string
	Operands []parser.PdfObject

	// Start and End are byte offsets into the original content stream
	// spanning this operation's operand tokens through its operator,
	// letting the writer either re-emit the original bytes verbatim or
	// splice in a replacement.
	Start, End int

	Text        *TextShowData
	Path        *PathPaintData
	XObject     *XObjectData
	InlineImage *InlineImageData

	GState GraphicsState
	TState TextState
}

// OperationSeq is the full interpreted operation list for one page's
// content stream, the hand-off point between the Interpreter and Redactor.
type OperationSeq struct {
	Ops []Operation
}
