package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/redactpdf/internal/geom"
	"github.com/coregx/redactpdf/internal/interp"
)

func glyph(index int, code byte, x0, y0, x1, y1 float64) interp.Glyph {
	return interp.Glyph{
		Code:             code,
		Index:            index,
		SourceArrayIndex: index,
		Rect:             geom.NewRectangle(x0, y0, x1, y1),
		Origin:           geom.Translation(x0, y0),
	}
}

func textShow(glyphs []interp.Glyph, fontName string, hadTf bool) interp.Operation {
	return interp.Operation{
		Kind:     interp.KindTextShow,
		Operator: "Tj",
		Text: &interp.TextShowData{
			Glyphs:         glyphs,
			FontName:       fontName,
			FontSize:       12,
			HadPrecedingTf: hadTf,
		},
	}
}

func TestRedact_TextShow_NoIntersection_KeptVerbatim(t *testing.T) {
	op := textShow([]interp.Glyph{
		glyph(0, 'A', 0, 0, 10, 10),
		glyph(1, 'B', 10, 0, 20, 10),
	}, "F1", true)
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	out, removed, diags := Redact(seq, nil, DefaultConfig())
	require.Len(t, out.Ops, 1)
	assert.Same(t, op.Text, out.Ops[0].Text)
	assert.Empty(t, removed)
	assert.Empty(t, diags)
}

func TestRedact_TextShow_FullyRemoved(t *testing.T) {
	op := textShow([]interp.Glyph{
		glyph(0, 'A', 0, 0, 10, 10),
		glyph(1, 'B', 10, 0, 20, 10),
	}, "F1", true)
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	rect := NewRectangle(0, 0, 20, 10)
	out, _, _ := Redact(seq, []Rectangle{rect}, DefaultConfig())
	assert.Empty(t, out.Ops)
}

func TestRedact_TextShow_KernedSplitPreservesSurvivors(t *testing.T) {
	// "ABCD" where B and C fall inside the redacted rectangle; A and D
	// survive as two separate non-contiguous runs.
	op := textShow([]interp.Glyph{
		glyph(0, 'A', 0, 0, 10, 10),
		glyph(1, 'B', 10, 0, 20, 10),
		glyph(2, 'C', 20, 0, 30, 10),
		glyph(3, 'D', 30, 0, 40, 10),
	}, "F1", true)
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	rect := NewRectangle(10, 0, 30, 10)
	out, _, _ := Redact(seq, []Rectangle{rect}, DefaultConfig())

	// Two surviving runs, each emitted as Tm + Tj.
	require.Len(t, out.Ops, 4)
	assert.Equal(t, "Tm", out.Ops[0].Operator)
	assert.Equal(t, "Tj", out.Ops[1].Operator)
	assert.Equal(t, "Tm", out.Ops[2].Operator)
	assert.Equal(t, "Tj", out.Ops[3].Operator)

	require.Len(t, out.Ops[1].Text.Glyphs, 1)
	assert.Equal(t, byte('A'), out.Ops[1].Text.Glyphs[0].Code)
	require.Len(t, out.Ops[3].Text.Glyphs, 1)
	assert.Equal(t, byte('D'), out.Ops[3].Text.Glyphs[0].Code)
}

func TestRedact_TfInjectedWhenMissing(t *testing.T) {
	op := textShow([]interp.Glyph{
		glyph(0, 'A', 0, 0, 10, 10),
		glyph(1, 'B', 10, 0, 20, 10),
		glyph(2, 'C', 20, 0, 30, 10),
	}, "F1", false)
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	rect := NewRectangle(10, 0, 20, 10)
	out, _, _ := Redact(seq, []Rectangle{rect}, DefaultConfig())

	// Two surviving runs (A, then C); Tf must be injected once, ahead of
	// the first run only.
	require.Len(t, out.Ops, 5)
	assert.Equal(t, "Tf", out.Ops[0].Operator)
	assert.Equal(t, "Tm", out.Ops[1].Operator)
	assert.Equal(t, "Tj", out.Ops[2].Operator)
	assert.Equal(t, "Tm", out.Ops[3].Operator)
	assert.Equal(t, "Tj", out.Ops[4].Operator)
}

func TestRedact_TfInjectionDisabled(t *testing.T) {
	op := textShow([]interp.Glyph{
		glyph(0, 'A', 0, 0, 10, 10),
		glyph(1, 'B', 10, 0, 20, 10),
	}, "F1", false)
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	rect := NewRectangle(15, 0, 16, 10)
	cfg := DefaultConfig()
	cfg.InjectMissingTf = false
	out, _, _ := Redact(seq, []Rectangle{rect}, cfg)

	for _, o := range out.Ops {
		assert.NotEqual(t, "Tf", o.Operator)
	}
}

func TestRedact_PathPaint_ReplacedWithNoOp(t *testing.T) {
	op := interp.Operation{
		Kind:     interp.KindPathPaint,
		Operator: "f",
		Path:     &interp.PathPaintData{BBox: geom.NewRectangle(0, 0, 100, 50)},
	}
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	rect := NewRectangle(0, 0, 100, 50)
	out, _, _ := Redact(seq, []Rectangle{rect}, DefaultConfig())
	require.Len(t, out.Ops, 1)
	assert.Equal(t, "n", out.Ops[0].Operator)
}

func TestRedact_XObject_RemovedAndReported(t *testing.T) {
	op := interp.Operation{
		Kind:    interp.KindXObject,
		XObject: &interp.XObjectData{Name: "Im1"},
		Path:    &interp.PathPaintData{BBox: geom.NewRectangle(0, 0, 50, 50)},
	}
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	rect := NewRectangle(0, 0, 50, 50)
	out, removed, diags := Redact(seq, []Rectangle{rect}, DefaultConfig())
	assert.Empty(t, out.Ops)
	assert.Equal(t, RemovedResourceNames{"Im1"}, removed)
	assert.NotEmpty(t, diags)
}

func TestRedact_XObject_KeepAndOverlayPolicy(t *testing.T) {
	op := interp.Operation{
		Kind:    interp.KindXObject,
		XObject: &interp.XObjectData{Name: "Im1"},
		Path:    &interp.PathPaintData{BBox: geom.NewRectangle(0, 0, 50, 50)},
	}
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	cfg := DefaultConfig()
	cfg.PartialImagePolicy = PolicyKeepAndOverlayBlackBox
	rect := NewRectangle(0, 0, 50, 50)
	out, removed, diags := Redact(seq, []Rectangle{rect}, cfg)
	require.Len(t, out.Ops, 1)
	assert.Empty(t, removed)
	assert.NotEmpty(t, diags)
}

func TestRedact_StateOperationsNeverDropped(t *testing.T) {
	op := interp.Operation{Kind: interp.KindState, Operator: "q"}
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	out, _, _ := Redact(seq, []Rectangle{NewRectangle(0, 0, 1000, 1000)}, DefaultConfig())
	require.Len(t, out.Ops, 1)
	assert.Equal(t, "q", out.Ops[0].Operator)
}

func TestRedact_MinIntersectionHeightRatio_IgnoresSliver(t *testing.T) {
	op := textShow([]interp.Glyph{
		glyph(0, 'A', 0, 0, 10, 10),
	}, "F1", true)
	seq := &interp.OperationSeq{Ops: []interp.Operation{op}}

	// Rectangle only grazes the very bottom edge of the glyph (1 out of
	// 10 units, a 0.1 ratio), below the default 0.2 threshold.
	rect := NewRectangle(0, 0, 10, 1)
	out, _, _ := Redact(seq, []Rectangle{rect}, DefaultConfig())
	require.Len(t, out.Ops, 1)
	assert.Equal(t, op.Text, out.Ops[0].Text)
}
