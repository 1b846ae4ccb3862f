package interp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/coregx/redactpdf/internal/contentstream"
	"github.com/coregx/redactpdf/internal/diag"
	"github.com/coregx/redactpdf/internal/fonts"
	"github.com/coregx/redactpdf/internal/geom"
	"github.com/coregx/redactpdf/internal/parser"
)

// Sentinel errors for the fatal conditions the Interpreter can surface.
// Recoverable problems never return an error; they are accumulated as
// Diagnostics instead, per the page-level isolation policy (spec §7).
var (
	// ErrTokenizer wraps a content-stream lexical error that could not be
	// resynchronized. Fatal: the page is returned untouched to the caller.
	ErrTokenizer = errors.New("interp: tokenizer error")

	// ErrUnbalancedState is returned only when Q outnumbers q (or ET
	// outnumbers BT) by a margin large enough to indicate the stream is
	// not merely sloppy but structurally broken.
	ErrUnbalancedState = errors.New("interp: catastrophic q/Q or BT/ET imbalance")

	// ErrCancelled is returned when the caller's context is done.
	ErrCancelled = errors.New("interp: cancelled")
)

// catastrophicImbalance is the unmatched-Q (or unmatched-ET) count above
// which the interpreter gives up instead of merely logging a warning per
// occurrence, per spec §7's "catastrophic" qualifier.
const catastrophicImbalance = 64

// cancellationCheckInterval is how often (in tokens) the Interpreter polls
// ctx for cancellation outside of BT/ET, per spec §5.
const cancellationCheckInterval = 1024

// FontResolver is the capability interface the Interpreter uses to turn a
// glyph byte code into an advance width and, optionally, a decoded rune.
// internal/fonts.Resolver implementations satisfy this interface
// structurally; the Interpreter never imports a font-file-embedding
// package (out of scope per spec §1).
type FontResolver interface {
	Width(fontName string, code byte) (width float64, ok bool)
	Decode(fontName string, code byte) (r rune, ok bool)
}

// Interpreter consumes Tokens from a Tokenizer and produces an OperationSeq,
// tracking the graphics/text state PDF's operator model requires.
type Interpreter struct {
	tok       *contentstream.Tokenizer
	resources FontResolver
	ctx       context.Context

	gstack *GraphicsStack
	tstate TextState
	inText bool // between BT and ET

	// hadTf is true once a Tf operator has been seen since the most
	// recent BT; mirrors TextShowData.HadPrecedingTf.
	hadTf bool

	// path accumulates the current path's bbox in page space, across
	// path-construction operators, cleared by the next painter.
	pathBBox    geom.Rectangle
	pathHasAny  bool
	curX, curY  float64 // current point, in user (pre-CTM) space
	subStartX   float64
	subStartY   float64

	qDepth, qUnderflow int
	btDepth, etOrphans int

	diags diag.Diagnostics
}

// New creates an Interpreter over content, using resources to resolve font
// widths and decode glyph codes. ctx may be nil, in which case no
// cancellation checks are performed.
func New(ctx context.Context, content []byte, resources FontResolver) *Interpreter {
	if resources == nil {
		resources = fonts.NewStandardResolver()
	}
	return &Interpreter{
		tok:       contentstream.NewTokenizer(content),
		resources: resources,
		ctx:       ctx,
		gstack:    NewGraphicsStack(),
	}
}

// Run executes the full T->I pipeline stage: lex the content stream and
// emit the interpreted Operation sequence. A non-nil error means a fatal,
// unrecoverable condition (tokenizer desync, a catastrophic q/Q or BT/ET
// imbalance, or cancellation); the returned
// Diagnostics are still populated in that case but OperationSeq is nil, per
// spec §7's "page returned untouched" policy.
func (ip *Interpreter) Run() (*OperationSeq, diag.Diagnostics, error) {
	seq := &OperationSeq{}
	var operands []parser.PdfObject
	operandStart := -1
	tokenCount := 0

	for {
		tok, err := ip.tok.Next()
		if err != nil {
			ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindTokenizerError, tok.Offset, "%v", err)
			return nil, ip.diags, fmt.Errorf("%w: %v", ErrTokenizer, err)
		}
		if tok.Kind == contentstream.KindEOF {
			break
		}

		tokenCount++
		if ip.ctx != nil && (tok.IsOperator("BT") || tok.IsOperator("ET") || tokenCount%cancellationCheckInterval == 0) {
			if ip.ctx.Err() != nil {
				ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindCancelled, tok.Offset, "cancelled")
				return nil, ip.diags, ErrCancelled
			}
		}

		if tok.Kind != contentstream.KindOperator {
			if operandStart < 0 {
				operandStart = tok.Offset
			}
			val, err := ip.readValue(tok)
			if err != nil {
				ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindTokenizerError, tok.Offset, "%v", err)
				return nil, ip.diags, fmt.Errorf("%w: %v", ErrTokenizer, err)
			}
			operands = append(operands, val)
			continue
		}

		start := operandStart
		if start < 0 {
			start = tok.Offset
		}
		op, end, err := ip.dispatch(tok, operands)
		if err != nil {
			return nil, ip.diags, err
		}
		if end < 0 {
			end = tok.Offset + len(tok.Value)
		}
		op.Operator = tok.Value
		op.Operands = operands
		op.Start = start
		op.End = end
		op.GState = ip.gstack.Current()
		op.TState = ip.tstate
		seq.Ops = append(seq.Ops, op)

		operands = nil
		operandStart = -1
	}

	if ip.qUnderflow > catastrophicImbalance || ip.etOrphans > catastrophicImbalance {
		ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindUnbalancedState, ip.tok.Offset(), "catastrophic q/Q or BT/ET imbalance")
		return nil, ip.diags, ErrUnbalancedState
	}

	return seq, ip.diags, nil
}

// readValue converts a non-operator token into its PdfObject operand form,
// recursing for arrays and dictionaries since those tokens only mark the
// start of a nested structure.
func (ip *Interpreter) readValue(tok contentstream.Token) (parser.PdfObject, error) {
	switch tok.Kind {
	case contentstream.KindInteger:
		n, _ := strconv.ParseInt(tok.Value, 10, 64)
		return parser.NewInteger(n), nil
	case contentstream.KindReal:
		f, _ := strconv.ParseFloat(tok.Value, 64)
		return parser.NewReal(f), nil
	case contentstream.KindString:
		return parser.NewStringBytes([]byte(tok.Value)), nil
	case contentstream.KindHexString:
		return parser.NewHexString(tok.Value), nil
	case contentstream.KindName:
		return parser.NewName(tok.Value), nil
	case contentstream.KindBoolean:
		return parser.NewBoolean(tok.Value == "true"), nil
	case contentstream.KindNull:
		return parser.NewNull(), nil
	case contentstream.KindArrayStart:
		arr := parser.NewArray()
		for {
			t, err := ip.tok.Next()
			if err != nil {
				return nil, err
			}
			if t.Kind == contentstream.KindArrayEnd {
				return arr, nil
			}
			if t.Kind == contentstream.KindEOF {
				return nil, fmt.Errorf("contentstream: unterminated array at offset %d", tok.Offset)
			}
			v, err := ip.readValue(t)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
	case contentstream.KindDictStart:
		dict := parser.NewDictionary()
		for {
			kt, err := ip.tok.Next()
			if err != nil {
				return nil, err
			}
			if kt.Kind == contentstream.KindDictEnd {
				return dict, nil
			}
			if kt.Kind == contentstream.KindEOF {
				return nil, fmt.Errorf("contentstream: unterminated dictionary at offset %d", tok.Offset)
			}
			if kt.Kind != contentstream.KindName {
				return nil, fmt.Errorf("contentstream: dictionary key must be a name at offset %d", kt.Offset)
			}
			vt, err := ip.tok.Next()
			if err != nil {
				return nil, err
			}
			v, err := ip.readValue(vt)
			if err != nil {
				return nil, err
			}
			dict.Set(kt.Value, v)
		}
	default:
		return nil, fmt.Errorf("contentstream: unexpected token %s as operand", tok)
	}
}

func num(o parser.PdfObject) (float64, bool) {
	switch v := o.(type) {
	case *parser.Integer:
		return float64(v.Value()), true
	case *parser.Real:
		return v.Value(), true
	default:
		return 0, false
	}
}

func (ip *Interpreter) nums(operands []parser.PdfObject, offset int, n int) ([]float64, bool) {
	if len(operands) < n {
		ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, offset,
			"expected %d numeric operands, got %d", n, len(operands))
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := num(operands[len(operands)-n+i])
		if !ok {
			ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, offset,
				"operand %d is not numeric", i)
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// dispatch handles one operator, updating graphics/text state and
// returning the Operation to emit (Start/End/Operator/Operands/GState/
// TState are filled in by the caller). end may be -1 to mean "operator's
// own span"; only inline images need to report a different end (the
// payload and EI keyword extend past the BI token itself).
//
//nolint:cyclop,funlen // one branch per content-stream operator, per spec's dispatch table.
func (ip *Interpreter) dispatch(tok contentstream.Token, operands []parser.PdfObject) (Operation, int, error) {
	switch tok.Value {
	case "q":
		ip.gstack.Push()
		ip.qDepth++
		return Operation{Kind: KindState}, -1, nil

	case "Q":
		if !ip.gstack.Pop() {
			ip.qUnderflow++
			ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindUnbalancedState, tok.Offset, "Q with no matching q")
		} else {
			ip.qDepth--
		}
		return Operation{Kind: KindState}, -1, nil

	case "cm":
		vals, ok := ip.nums(operands, tok.Offset, 6)
		if !ok {
			return Operation{Kind: KindState}, -1, nil
		}
		m := geom.NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
		gs := ip.gstack.Current()
		gs.CTM = m.Multiply(gs.CTM)
		ip.gstack.SetCurrent(gs)
		return Operation{Kind: KindState}, -1, nil

	case "BT":
		ip.tstate = NewTextState()
		ip.hadTf = false
		ip.inText = true
		ip.btDepth++
		return Operation{Kind: KindTextObject}, -1, nil

	case "ET":
		if !ip.inText {
			ip.etOrphans++
			ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindUnbalancedState, tok.Offset, "ET with no matching BT")
		} else {
			ip.btDepth--
		}
		ip.inText = false
		return Operation{Kind: KindTextObject}, -1, nil

	case "Tf":
		if len(operands) >= 2 {
			if name, ok := operands[len(operands)-2].(*parser.Name); ok {
				ip.tstate.FontName = name.Value()
			} else {
				ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, tok.Offset, "Tf font operand is not a name")
			}
			if sz, ok := num(operands[len(operands)-1]); ok {
				ip.tstate.FontSize = sz
			}
		} else {
			ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, tok.Offset, "Tf requires 2 operands")
		}
		ip.hadTf = true
		return Operation{Kind: KindTextState}, -1, nil

	case "Tc":
		if v, ok := ip.nums(operands, tok.Offset, 1); ok {
			ip.tstate.CharSpace = v[0]
		}
		return Operation{Kind: KindTextState}, -1, nil

	case "Tw":
		if v, ok := ip.nums(operands, tok.Offset, 1); ok {
			ip.tstate.WordSpace = v[0]
		}
		return Operation{Kind: KindTextState}, -1, nil

	case "Tz":
		if v, ok := ip.nums(operands, tok.Offset, 1); ok {
			ip.tstate.Th = v[0] / 100
		}
		return Operation{Kind: KindTextState}, -1, nil

	case "TL":
		if v, ok := ip.nums(operands, tok.Offset, 1); ok {
			ip.tstate.Leading = v[0]
		}
		return Operation{Kind: KindTextState}, -1, nil

	case "Ts":
		if v, ok := ip.nums(operands, tok.Offset, 1); ok {
			ip.tstate.Rise = v[0]
		}
		return Operation{Kind: KindTextState}, -1, nil

	case "Tr":
		if v, ok := ip.nums(operands, tok.Offset, 1); ok {
			mode := int(v[0])
			if mode < 0 || mode > 7 {
				ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, tok.Offset, "Tr mode %d out of range 0..7", mode)
			} else {
				ip.tstate.RenderMode = mode
			}
		}
		return Operation{Kind: KindTextState}, -1, nil

	case "Td":
		if v, ok := ip.nums(operands, tok.Offset, 2); ok {
			ip.tstate.Translate(v[0], v[1])
		}
		return Operation{Kind: KindTextPosition}, -1, nil

	case "TD":
		if v, ok := ip.nums(operands, tok.Offset, 2); ok {
			ip.tstate.Leading = -v[1]
			ip.tstate.Translate(v[0], v[1])
		}
		return Operation{Kind: KindTextPosition}, -1, nil

	case "Tm":
		if v, ok := ip.nums(operands, tok.Offset, 6); ok {
			ip.tstate.SetTextMatrix(geom.NewMatrix(v[0], v[1], v[2], v[3], v[4], v[5]))
		}
		return Operation{Kind: KindTextPosition}, -1, nil

	case "T*":
		ip.tstate.MoveToNextLine()
		return Operation{Kind: KindTextPosition}, -1, nil

	case "Tj":
		return ip.handleShow(tok, lastString(operands))

	case "'":
		ip.tstate.MoveToNextLine()
		return ip.handleShow(tok, lastString(operands))

	case "\"":
		if len(operands) >= 3 {
			if aw, ok := num(operands[len(operands)-3]); ok {
				ip.tstate.WordSpace = aw
			}
			if ac, ok := num(operands[len(operands)-2]); ok {
				ip.tstate.CharSpace = ac
			}
		}
		ip.tstate.MoveToNextLine()
		return ip.handleShow(tok, lastString(operands))

	case "TJ":
		return ip.handleShowArray(tok, operands)

	case "m":
		if v, ok := ip.nums(operands, tok.Offset, 2); ok {
			ip.moveTo(v[0], v[1])
		}
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "l":
		if v, ok := ip.nums(operands, tok.Offset, 2); ok {
			ip.lineTo(v[0], v[1])
		}
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "c":
		if v, ok := ip.nums(operands, tok.Offset, 6); ok {
			ip.addPoint(v[0], v[1])
			ip.addPoint(v[2], v[3])
			ip.lineTo(v[4], v[5])
		}
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "v":
		if v, ok := ip.nums(operands, tok.Offset, 4); ok {
			ip.addPoint(ip.curX, ip.curY)
			ip.addPoint(v[0], v[1])
			ip.lineTo(v[2], v[3])
		}
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "y":
		if v, ok := ip.nums(operands, tok.Offset, 4); ok {
			ip.addPoint(v[0], v[1])
			ip.lineTo(v[2], v[3])
		}
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "re":
		if v, ok := ip.nums(operands, tok.Offset, 4); ok {
			x, y, w, h := v[0], v[1], v[2], v[3]
			ip.addPoint(x, y)
			ip.addPoint(x+w, y)
			ip.addPoint(x, y+h)
			ip.addPoint(x+w, y+h)
			ip.curX, ip.curY = x, y
			ip.subStartX, ip.subStartY = x, y
		}
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "h":
		ip.curX, ip.curY = ip.subStartX, ip.subStartY
		return Operation{Kind: KindPathConstruct}, -1, nil

	case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*", "n":
		bbox := ip.pathBBox
		ip.pathHasAny = false
		ip.pathBBox = geom.Rectangle{}
		return Operation{Kind: KindPathPaint, Path: &PathPaintData{BBox: bbox}}, -1, nil

	case "Do":
		name := ""
		if len(operands) >= 1 {
			if n, ok := operands[len(operands)-1].(*parser.Name); ok {
				name = n.Value()
			}
		}
		bbox := ip.unitSquareBBox()
		return Operation{Kind: KindXObject, XObject: &XObjectData{Name: name}, Path: &PathPaintData{BBox: bbox}}, -1, nil

	case "BI":
		return ip.handleInlineImage(tok)

	case "W", "W*", "w", "J", "j", "M", "d", "ri", "i", "gs",
		"CS", "cs", "SC", "SCN", "sc", "scn", "G", "g", "RG", "rg", "K", "k", "sh":
		return Operation{Kind: KindState}, -1, nil

	case "MP", "DP", "BMC", "BDC", "EMC":
		return Operation{Kind: KindMarkedContent}, -1, nil

	case "BX", "EX":
		return Operation{Kind: KindCompatibility}, -1, nil

	default:
		ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindUnknownOperator, tok.Offset, "unknown operator %q", tok.Value)
		return Operation{Kind: KindUnknown}, -1, nil
	}
}

func lastString(operands []parser.PdfObject) *parser.String {
	if len(operands) == 0 {
		return nil
	}
	s, _ := operands[len(operands)-1].(*parser.String)
	return s
}

// unitSquareBBox returns the bbox of [0,0]-[1,1] under the current CTM,
// used by both Do (XObject) and inline images per spec §4.2.
func (ip *Interpreter) unitSquareBBox() geom.Rectangle {
	ctm := ip.gstack.Current().CTM
	x0, y0 := ctm.Transform(0, 0)
	x1, y1 := ctm.Transform(1, 0)
	x2, y2 := ctm.Transform(0, 1)
	x3, y3 := ctm.Transform(1, 1)
	return bboxOf(x0, y0, x1, y1, x2, y2, x3, y3)
}

func bboxOf(coords ...float64) geom.Rectangle {
	if len(coords) < 2 {
		return geom.Rectangle{}
	}
	minX, minY := coords[0], coords[1]
	maxX, maxY := coords[0], coords[1]
	for i := 2; i < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return geom.NewRectangle(minX, minY, maxX, maxY)
}

func (ip *Interpreter) moveTo(x, y float64) {
	ip.curX, ip.curY = x, y
	ip.subStartX, ip.subStartY = x, y
	ip.addPoint(x, y)
}

func (ip *Interpreter) lineTo(x, y float64) {
	ip.curX, ip.curY = x, y
	ip.addPoint(x, y)
}

// addPoint transforms (x, y) through the current CTM and extends the
// in-progress path bbox, per spec §4.2's "transformed through CTM" rule.
func (ip *Interpreter) addPoint(x, y float64) {
	tx, ty := ip.gstack.Current().CTM.Transform(x, y)
	pt := geom.NewRectangle(tx, ty, tx, ty)
	if !ip.pathHasAny {
		ip.pathBBox = pt
		ip.pathHasAny = true
		return
	}
	ip.pathBBox = union(ip.pathBBox, pt)
}

func union(a, b geom.Rectangle) geom.Rectangle {
	ax0, ay0 := a.LowerLeft()
	ax1, ay1 := a.UpperRight()
	bx0, by0 := b.LowerLeft()
	bx1, by1 := b.UpperRight()
	return bboxOf(ax0, ay0, ax1, ay1, bx0, by0, bx1, by1)
}

// handleShow implements spec §4.2's text-showing semantics (steps 1-5) for
// a single shown string.
func (ip *Interpreter) handleShow(tok contentstream.Token, s *parser.String) (Operation, int, error) {
	data := &TextShowData{
		FontName:       ip.tstate.FontName,
		FontSize:       ip.tstate.FontSize,
		RenderMode:     ip.tstate.RenderMode,
		HadPrecedingTf: ip.hadTf,
	}
	if s != nil {
		ip.showBytes(s.Bytes(), 0, data)
	}
	ctm := ip.gstack.Current().CTM
	data.EffectiveFontSize = ip.tstate.EffectiveFontSize(ctm)
	finalizeTextShow(data)
	return Operation{Kind: KindTextShow, Text: data}, -1, nil
}

// finalizeTextShow computes the overall bbox and re-sorts Glyphs by visual
// x position after transform, per the data model's ordering invariant
// (glyphs are appended in byte order by showBytes; Glyph.Index preserves
// that order for the redactor's run-partitioning and byte-order-stability
// needs).
func finalizeTextShow(data *TextShowData) {
	if len(data.Glyphs) == 0 {
		return
	}
	bbox := data.Glyphs[0].Rect
	for _, g := range data.Glyphs[1:] {
		bbox = union(bbox, g.Rect)
	}
	data.BBox = bbox
	sort.SliceStable(data.Glyphs, func(i, j int) bool {
		xi, _ := data.Glyphs[i].Rect.LowerLeft()
		xj, _ := data.Glyphs[j].Rect.LowerLeft()
		return xi < xj
	})
}

// handleShowArray implements TJ: a mix of shown strings and kerning
// adjustments applied as a horizontal Tm translation, per spec §4.2.
func (ip *Interpreter) handleShowArray(tok contentstream.Token, operands []parser.PdfObject) (Operation, int, error) {
	data := &TextShowData{
		FontName:       ip.tstate.FontName,
		FontSize:       ip.tstate.FontSize,
		RenderMode:     ip.tstate.RenderMode,
		HadPrecedingTf: ip.hadTf,
	}
	arr := lastArray(operands)
	if arr == nil {
		ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, tok.Offset, "TJ requires an array operand")
		return Operation{Kind: KindTextShow, Text: data}, -1, nil
	}
	for i := 0; i < arr.Len(); i++ {
		switch el := arr.Get(i).(type) {
		case *parser.String:
			ip.showBytes(el.Bytes(), i, data)
		case *parser.Integer, *parser.Real:
			n, _ := num(el)
			adv := -n / 1000 * ip.tstate.FontSize * ip.tstate.Th
			ip.tstate.Tm = geom.Translation(adv, 0).Multiply(ip.tstate.Tm)
		}
	}
	ctm := ip.gstack.Current().CTM
	data.EffectiveFontSize = ip.tstate.EffectiveFontSize(ctm)
	finalizeTextShow(data)
	return Operation{Kind: KindTextShow, Text: data}, -1, nil
}

func lastArray(operands []parser.PdfObject) *parser.Array {
	if len(operands) == 0 {
		return nil
	}
	a, _ := operands[len(operands)-1].(*parser.Array)
	return a
}

// showBytes places each byte of a shown string per spec §4.2 steps 1-5,
// appending a Glyph to data and advancing the text matrix.
func (ip *Interpreter) showBytes(bs []byte, sourceArrayIndex int, data *TextShowData) {
	ctm := ip.gstack.Current().CTM
	var text []rune
	for _, code := range bs {
		r, ok := ip.resources.Decode(ip.tstate.FontName, code)
		if ok {
			text = append(text, r)
		} else {
			text = append(text, rune(code))
		}

		charWidth, ok := ip.resources.Width(ip.tstate.FontName, code)
		if !ok {
			ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindResourceNotFound, -1,
				"no width for font %q code %d, using default", ip.tstate.FontName, code)
			charWidth = fonts.DefaultWidth
		}

		w := (charWidth / 1000) * ip.tstate.FontSize * ip.tstate.Th

		combined := ip.tstate.Tm.Multiply(ctm)
		x0, y0 := combined.Transform(0, 0)
		x1, y1 := combined.Transform(w, 0)
		x2, y2 := combined.Transform(0, ip.tstate.FontSize)
		x3, y3 := combined.Transform(w, ip.tstate.FontSize)

		data.Glyphs = append(data.Glyphs, Glyph{
			Code:             code,
			Rune:             r,
			Width:            w,
			Rect:             bboxOf(x0, y0, x1, y1, x2, y2, x3, y3),
			Origin:           ip.tstate.Tm,
			SourceArrayIndex: sourceArrayIndex,
			Index:            len(data.Glyphs),
		})

		isSpace := code == ' '
		adv := w + ip.tstate.CharSpace
		if isSpace {
			adv += ip.tstate.WordSpace
		}
		ip.tstate.Tm = geom.Translation(adv, 0).Multiply(ip.tstate.Tm)
	}
	data.DecodedText += string(text)
}

// handleInlineImage implements BI ... ID ... EI per spec §4.1 and §4.2: the
// dict-like parameter list up to ID, the raw payload up to (but not
// including) a whitespace-delimited EI, and the bbox of the unit square
// under the current CTM.
func (ip *Interpreter) handleInlineImage(tok contentstream.Token) (Operation, int, error) {
	dict := parser.NewDictionary()
	for {
		kt, err := ip.tok.Next()
		if err != nil {
			ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindTokenizerError, kt.Offset, "%v", err)
			return Operation{}, -1, fmt.Errorf("%w: %v", ErrTokenizer, err)
		}
		if kt.IsOperator("ID") {
			break
		}
		if kt.Kind == contentstream.KindEOF {
			ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindTokenizerError, tok.Offset, "unterminated inline image dictionary")
			return Operation{}, -1, fmt.Errorf("%w: unterminated inline image dictionary at offset %d", ErrTokenizer, tok.Offset)
		}
		if kt.Kind != contentstream.KindName {
			ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, kt.Offset, "inline image parameter key must be a name")
			continue
		}
		vt, err := ip.tok.Next()
		if err != nil {
			return Operation{}, -1, fmt.Errorf("%w: %v", ErrTokenizer, err)
		}
		v, err := ip.readValue(vt)
		if err != nil {
			return Operation{}, -1, fmt.Errorf("%w: %v", ErrTokenizer, err)
		}
		dict.Set(kt.Value, v)
	}

	data, err := ip.tok.ReadInlineImageData()
	if err != nil {
		ip.diags = ip.diags.Add(diag.SeverityFatal, diag.KindTokenizerError, tok.Offset, "%v", err)
		return Operation{}, -1, fmt.Errorf("%w: %v", ErrTokenizer, err)
	}

	eiTok, err := ip.tok.Next()
	if err != nil {
		return Operation{}, -1, fmt.Errorf("%w: %v", ErrTokenizer, err)
	}
	if !eiTok.IsOperator("EI") {
		ip.diags = ip.diags.Add(diag.SeverityWarning, diag.KindMalformedOperand, eiTok.Offset, "expected EI after inline image data")
	}

	bbox := ip.unitSquareBBox()
	end := ip.tok.Offset()
	return Operation{
		Kind: KindInlineImage,
		InlineImage: &InlineImageData{
			Dict: dict,
			Data: data,
			BBox: bbox,
		},
	}, end, nil
}
