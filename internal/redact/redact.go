package redact

import (
	"github.com/coregx/redactpdf/internal/diag"
	"github.com/coregx/redactpdf/internal/geom"
	"github.com/coregx/redactpdf/internal/interp"
	"github.com/coregx/redactpdf/internal/parser"
)

// defaultRawTfSize is the raw Tf size used for an injected Tf when no
// surviving Tf anywhere in the output sequence can supply one, per spec
// §4.3.1: "defaulting to 1 if none exists".
const defaultRawTfSize = 1.0

// Redact implements the R stage of the pipeline: given ops and a set of
// redaction rectangles in content-stream user space, it returns a new
// OperationSeq with redacted content dropped or glyph-split, the set of
// XObject resource names no longer referenced, and any diagnostics raised
// along the way.
//
// Redact never mutates ops; it builds a fresh sequence, preserving input
// order for every operation it keeps (spec §5's ordering guarantee).
func Redact(ops *interp.OperationSeq, rects []Rectangle, cfg Config) (*interp.OperationSeq, RemovedResourceNames, diag.Diagnostics) {
	out := &interp.OperationSeq{}
	var removed RemovedResourceNames
	var diags diag.Diagnostics
	lastRawTfSize := defaultRawTfSize

	for _, op := range ops.Ops {
		switch op.Kind {
		case interp.KindTextState:
			out.Ops = append(out.Ops, op)
			if op.Operator == "Tf" && len(op.Operands) >= 2 {
				if sz, ok := realOperand(op.Operands[len(op.Operands)-1]); ok {
					lastRawTfSize = sz
				}
			}

		case interp.KindTextShow:
			emitted := redactTextShow(op, rects, cfg, lastRawTfSize)
			out.Ops = append(out.Ops, emitted...)

		case interp.KindPathPaint:
			out.Ops = append(out.Ops, redactPathPaint(op, rects, cfg)...)

		case interp.KindXObject:
			if cfg.RemoveImages && op.Path != nil && intersects(op.Path.BBox, rects, cfg.MinIntersectionHeightRatio) {
				if cfg.PartialImagePolicy == PolicyKeepAndOverlayBlackBox {
					diags = diags.Add(diag.SeverityInfo, diag.KindInvariantViolated, op.Start,
						"Do /%s intersects a redaction rectangle; caller must overlay a black box over its bbox", nameOf(op.XObject))
					out.Ops = append(out.Ops, op)
					continue
				}
				if op.XObject != nil && op.XObject.Name != "" {
					removed = append(removed, op.XObject.Name)
				}
				diags = diags.Add(diag.SeverityInfo, diag.KindInvariantViolated, op.Start, "dropped Do /%s intersecting redaction rectangle", nameOf(op.XObject))
				continue
			}
			out.Ops = append(out.Ops, op)

		case interp.KindInlineImage:
			if cfg.RemoveImages && op.InlineImage != nil && intersects(op.InlineImage.BBox, rects, cfg.MinIntersectionHeightRatio) {
				if cfg.PartialImagePolicy == PolicyKeepAndOverlayBlackBox {
					diags = diags.Add(diag.SeverityInfo, diag.KindInvariantViolated, op.Start,
						"inline image intersects a redaction rectangle; caller must overlay a black box over its bbox")
					out.Ops = append(out.Ops, op)
					continue
				}
				diags = diags.Add(diag.SeverityInfo, diag.KindInvariantViolated, op.Start, "dropped inline image intersecting redaction rectangle")
				continue
			}
			out.Ops = append(out.Ops, op)

		default:
			// Opaque state/text-object/text-position/marked-content/
			// compatibility operators are never deleted, per spec §4.3
			// rule 1.
			out.Ops = append(out.Ops, op)
		}
	}

	return out, removed, diags
}

func nameOf(x *interp.XObjectData) string {
	if x == nil {
		return ""
	}
	return x.Name
}

func realOperand(o parser.PdfObject) (float64, bool) {
	switch v := o.(type) {
	case *parser.Integer:
		return float64(v.Value()), true
	case *parser.Real:
		return v.Value(), true
	default:
		return 0, false
	}
}

func redactPathPaint(op interp.Operation, rects []Rectangle, cfg Config) []interp.Operation {
	if !cfg.RemovePaths || op.Path == nil || !intersects(op.Path.BBox, rects, cfg.MinIntersectionHeightRatio) {
		return []interp.Operation{op}
	}
	return []interp.Operation{{
		Kind:     interp.KindPathPaint,
		Operator: "n",
		Start:    op.Start,
		End:      op.End,
		GState:   op.GState,
		TState:   op.TState,
		Path:     &interp.PathPaintData{BBox: op.Path.BBox},
	}}
}

// redactTextShow implements spec §4.3 rule 2 (keep/drop/glyph-split) plus
// §4.3.1's Tf-injection repair, for one TextShow operation.
func redactTextShow(op interp.Operation, rects []Rectangle, cfg Config, lastRawTfSize float64) []interp.Operation {
	if !cfg.RemoveText || op.Text == nil || len(op.Text.Glyphs) == 0 {
		return []interp.Operation{op}
	}

	kept := make([]interp.Glyph, 0, len(op.Text.Glyphs))
	anyRemoved := false
	for _, g := range op.Text.Glyphs {
		if intersects(g.Rect, rects, cfg.MinIntersectionHeightRatio) {
			anyRemoved = true
			continue
		}
		kept = append(kept, g)
	}

	if !anyRemoved {
		return []interp.Operation{op}
	}
	if len(kept) == 0 {
		return nil
	}

	// Recover byte order (Glyphs is sorted by visual x per the data
	// model's invariant) and partition surviving glyphs into maximal
	// contiguous runs by that original byte order.
	byByteOrder := make([]interp.Glyph, len(kept))
	copy(byByteOrder, kept)
	sortByIndex(byByteOrder)

	runs := partitionContiguous(byByteOrder)

	needInject := cfg.InjectMissingTf && !op.Text.HadPrecedingTf
	injected := false

	var out []interp.Operation
	for _, run := range runs {
		if needInject && !injected {
			out = append(out, tfOperation(op, lastRawTfSize))
			injected = true
		}
		out = append(out, tmOperation(op, run[0].Origin))
		out = append(out, tjOperation(op, run))
	}
	return out
}

// sortByIndex restores byte order using Glyph.Index, which
// finalizeTextShow's visual-x sort in the interpreter otherwise discards.
func sortByIndex(glyphs []interp.Glyph) {
	for i := 1; i < len(glyphs); i++ {
		for j := i; j > 0 && glyphs[j-1].Index > glyphs[j].Index; j-- {
			glyphs[j-1], glyphs[j] = glyphs[j], glyphs[j-1]
		}
	}
}

// partitionContiguous splits glyphs (already in byte order) into maximal
// runs of consecutive Index values, per spec §4.3 rule 2.
func partitionContiguous(glyphs []interp.Glyph) [][]interp.Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	var runs [][]interp.Glyph
	start := 0
	for i := 1; i <= len(glyphs); i++ {
		if i == len(glyphs) || glyphs[i].Index != glyphs[i-1].Index+1 {
			runs = append(runs, glyphs[start:i])
			start = i
		}
	}
	return runs
}

func tfOperation(op interp.Operation, rawSize float64) interp.Operation {
	operands := []parser.PdfObject{
		parser.NewName(op.Text.FontName),
		parser.NewReal(rawSize),
	}
	return interp.Operation{
		Kind:     interp.KindTextState,
		Operator: "Tf",
		Operands: operands,
		GState:   op.GState,
		TState:   op.TState,
	}
}

func tmOperation(op interp.Operation, m geom.Matrix) interp.Operation {
	operands := []parser.PdfObject{
		parser.NewReal(m.A), parser.NewReal(m.B), parser.NewReal(m.C),
		parser.NewReal(m.D), parser.NewReal(m.E), parser.NewReal(m.F),
	}
	return interp.Operation{
		Kind:     interp.KindTextPosition,
		Operator: "Tm",
		Operands: operands,
		GState:   op.GState,
		TState:   op.TState,
	}
}

func tjOperation(op interp.Operation, run []interp.Glyph) interp.Operation {
	bytes := make([]byte, len(run))
	for i, g := range run {
		bytes[i] = g.Code
	}
	return interp.Operation{
		Kind:     interp.KindTextShow,
		Operator: "Tj",
		Operands: []parser.PdfObject{parser.NewStringBytes(bytes)},
		GState:   op.GState,
		TState:   op.TState,
		Text: &interp.TextShowData{
			Glyphs:         run,
			FontName:       op.Text.FontName,
			FontSize:       op.Text.FontSize,
			RenderMode:     op.Text.RenderMode,
			HadPrecedingTf: true,
		},
	}
}
