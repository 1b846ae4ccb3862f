// Package interp implements the content-stream interpreter: it consumes the
// Tokens produced by internal/contentstream and turns them into a sequence
// of typed Operations, tracking the graphics and text state PDF's operator
// model requires to know where on the page each operation acts.
package interp

import (
	"math"

	"github.com/coregx/redactpdf/internal/geom"
)

// GraphicsState holds the subset of the PDF graphics state the redactor
// needs to compute where operations land on the page: the current
// transformation matrix. Color, line and clipping state are carried as
// opaque handles (their own operand lists) since redaction never inspects
// them, only relocates or drops the operations that set them.
//
// Grounded on internal/extractor.GraphicsParser's q/Q handling, generalized
// from a single mutable struct to an explicit push/pop stack of CTM
// snapshots, since the read-only extractor never needed save/restore.
type GraphicsState struct {
	CTM geom.Matrix
}

// NewGraphicsState returns the initial graphics state: CTM is the identity
// matrix (the interpreter's caller is responsible for pre-multiplying in a
// page's rotation, handled separately by internal/redact's rotation table).
func NewGraphicsState() GraphicsState {
	return GraphicsState{CTM: geom.Identity()}
}

// GraphicsStack is a stack of GraphicsState snapshots, pushed by q and
// popped by Q. GraphicsState has value semantics, so push/pop are plain
// slice operations with no aliasing hazards.
type GraphicsStack struct {
	frames []GraphicsState
}

// NewGraphicsStack returns a stack seeded with the initial graphics state.
func NewGraphicsStack() *GraphicsStack {
	return &GraphicsStack{frames: []GraphicsState{NewGraphicsState()}}
}

// Current returns the graphics state at the top of the stack.
func (s *GraphicsStack) Current() GraphicsState {
	return s.frames[len(s.frames)-1]
}

// SetCurrent replaces the graphics state at the top of the stack, used by
// operators (like cm) that mutate the current frame in place.
func (s *GraphicsStack) SetCurrent(gs GraphicsState) {
	s.frames[len(s.frames)-1] = gs
}

// Push duplicates the current graphics state onto the stack (operator q).
func (s *GraphicsStack) Push() {
	s.frames = append(s.frames, s.Current())
}

// Pop removes the top graphics state (operator Q). Popping past the initial
// frame is a no-op: an unbalanced Q is reported by the interpreter as a
// diagnostic, not a panic, per the page-isolation error policy.
func (s *GraphicsStack) Pop() (ok bool) {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

// TextState holds the text-positioning and text-formatting parameters PDF
// tracks between BT and ET. Unlike GraphicsState, TextState is never pushed
// onto the q/Q stack: it is reset at BT and discarded at ET.
//
// Grounded on internal/extractor.TextState, generalized with Th (Tz, stored
// as a fraction rather than a percentage), Tr (render mode) and Ts (rise),
// which the read-only extractor did not track.
type TextState struct {
	Tm, Tlm   geom.Matrix
	FontName  string
	FontSize  float64 // raw size most recently set by Tf, never multiplied by Th/CTM
	CharSpace float64 // Tc
	WordSpace float64 // Tw
	Th        float64 // Tz, as a fraction (100 Tz == 1.0)
	Leading   float64 // TL
	Rise      float64 // Ts
	RenderMode int    // Tr
}

// NewTextState returns the state PDF specifies at the start of a text
// object: identity matrices, Th = 1 (100%), everything else zero.
func NewTextState() TextState {
	return TextState{Tm: geom.Identity(), Tlm: geom.Identity(), Th: 1}
}

// SetTextMatrix sets both Tm and Tlm to m, as the Tm operator does.
func (s *TextState) SetTextMatrix(m geom.Matrix) {
	s.Tm = m
	s.Tlm = m
}

// Translate applies a Td-style line offset: Tlm' = translate(tx,ty) × Tlm,
// and Tm is reset to the same value.
func (s *TextState) Translate(tx, ty float64) {
	m := geom.Translation(tx, ty).Multiply(s.Tlm)
	s.Tm = m
	s.Tlm = m
}

// MoveToNextLine applies the T* line-advance rule (also used by ' and "):
// move down by the current leading.
func (s *TextState) MoveToNextLine() {
	s.Translate(0, -s.Leading)
}

// EffectiveFontSize returns the font size actually used to scale glyph
// metrics: FontSize * |det(Tm x CTM)|^(1/2), per spec. This is needed
// because some producers encode the actual visual size in Tm (with a
// nominal "1 Tf") rather than in the Tf size itself; the determinant of the
// combined matrix captures the area-scale factor regardless of how it was
// split between Tf and Tm.
func (s TextState) EffectiveFontSize(ctm geom.Matrix) float64 {
	combined := s.Tm.Multiply(ctm)
	det := combined.A*combined.D - combined.B*combined.C
	if det < 0 {
		det = -det
	}
	return s.FontSize * math.Sqrt(det)
}
