// Package cswriter implements the Writer stage (W) of the content-stream
// pipeline: it serializes a (possibly redacted) Operation sequence back
// into a content-stream byte buffer, with deterministic number formatting
// and correct operator syntax, satisfying the idempotence property spec
// §4.4 requires (parse -> write -> parse reproduces the same operations).
package cswriter

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/coregx/redactpdf/internal/interp"
	"github.com/coregx/redactpdf/internal/parser"
)

// nearIntegerEpsilon is the tolerance within which a real number is
// snapped to its nearest integer and written without a decimal point, per
// spec §4.4.
const nearIntegerEpsilon = 1e-4

// Serialize writes ops to a content-stream byte buffer, one operator per
// line with operands preceding the operator keyword, per spec §4.4's
// conventional (debug-friendly, not PDF-required) layout.
func Serialize(ops *interp.OperationSeq) []byte {
	var buf bytes.Buffer
	for _, op := range ops.Ops {
		writeOperation(&buf, op)
	}
	return buf.Bytes()
}

func writeOperation(buf *bytes.Buffer, op interp.Operation) {
	if op.Kind == interp.KindInlineImage {
		writeInlineImage(buf, op)
		return
	}

	for _, operand := range op.Operands {
		writeOperand(buf, operand)
		buf.WriteByte(' ')
	}
	buf.WriteString(op.Operator)
	buf.WriteByte('\n')
}

func writeInlineImage(buf *bytes.Buffer, op interp.Operation) {
	buf.WriteString("BI\n")
	if op.InlineImage != nil && op.InlineImage.Dict != nil {
		for _, key := range op.InlineImage.Dict.Keys() {
			buf.WriteByte('/')
			buf.WriteString(escapeName(key))
			buf.WriteByte(' ')
			writeOperand(buf, op.InlineImage.Dict.Get(key))
			buf.WriteByte(' ')
		}
	}
	buf.WriteString("\nID\n")
	if op.InlineImage != nil {
		buf.Write(op.InlineImage.Data)
	}
	buf.WriteString("\nEI\n")
}

//nolint:cyclop // one branch per PdfObject operand kind, mirroring the tokenizer's own dispatch.
func writeOperand(buf *bytes.Buffer, obj parser.PdfObject) {
	switch v := obj.(type) {
	case *parser.Integer:
		buf.WriteString(strconv.FormatInt(v.Value(), 10))
	case *parser.Real:
		buf.WriteString(FormatNumber(v.Value()))
	case *parser.String:
		if v.IsHex() {
			buf.WriteByte('<')
			fmt.Fprintf(buf, "%X", v.Bytes())
			buf.WriteByte('>')
		} else {
			buf.WriteByte('(')
			buf.Write(escapeLiteralString(v.Bytes()))
			buf.WriteByte(')')
		}
	case *parser.Name:
		buf.WriteByte('/')
		buf.WriteString(escapeName(v.Value()))
	case *parser.Boolean:
		if v.Value() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case *parser.Null:
		buf.WriteString("null")
	case *parser.Array:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeOperand(buf, v.Get(i))
		}
		buf.WriteByte(']')
	case *parser.Dictionary:
		buf.WriteString("<<")
		for _, key := range v.Keys() {
			buf.WriteByte(' ')
			buf.WriteByte('/')
			buf.WriteString(escapeName(key))
			buf.WriteByte(' ')
			writeOperand(buf, v.Get(key))
		}
		buf.WriteString(" >>")
	default:
		// Unreachable for operands the Interpreter produces; a nil or
		// unrecognized operand is a programmer error, not a data error,
		// per spec §7's Writer InvariantViolated class.
		panic(fmt.Sprintf("cswriter: unwritable operand %#v", obj))
	}
}

// FormatNumber renders v per spec §4.4: integers with no decimal point;
// reals with up to 6 decimals, trailing zeros trimmed, a terminal ".0"
// suppressed, and a value within 1e-4 of an integer snapped to that
// integer. Grounded on internal/parser.Real.String's trim-trailing-zeros
// approach, extended with the near-integer snap the spec requires and the
// teacher's Real type does not implement.
func FormatNumber(v float64) string {
	rounded := math.Round(v)
	if math.Abs(v-rounded) < nearIntegerEpsilon {
		return strconv.FormatInt(int64(rounded), 10)
	}
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// escapeLiteralString renders b as the body of a PDF literal string per
// spec §4.4's stricter rule: backslash and parentheses get a backslash
// escape; every other control or non-ASCII byte is emitted as a 3-digit
// octal escape, never raw, to avoid line-ending heuristics in downstream
// tools from breaking the stream. Grounded on internal/writer.
// EscapePDFString, generalized from named escapes (\n \r \t \b \f) for
// control characters only to octal escapes for control AND non-ASCII
// bytes.
func escapeLiteralString(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		switch c {
		case '\\':
			out = append(out, '\\', '\\')
		case '(':
			out = append(out, '\\', '(')
		case ')':
			out = append(out, '\\', ')')
		default:
			if c < 0x20 || c > 0x7E {
				out = append(out, '\\')
				out = append(out, byte('0'+(c>>6)&7), byte('0'+(c>>3)&7), byte('0'+c&7))
			} else {
				out = append(out, c)
			}
		}
	}
	return out
}

// escapeName re-escapes a name's unescaped value per spec §4.1: any byte
// outside the printable range 33-126, or one of the PDF delimiter bytes,
// is written as a #XX hex escape.
func escapeName(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 33 || c > 126 || strings.IndexByte("()<>[]{}/%#", c) >= 0 {
			fmt.Fprintf(&buf, "#%02X", c)
		} else {
			buf.WriteByte(c)
		}
	}
	return buf.String()
}
