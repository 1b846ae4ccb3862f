package cswriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/redactpdf/internal/interp"
	"github.com/coregx/redactpdf/internal/parser"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{-5, "-5"},
		{12.00001, "12"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{100.25, "100.25"},
		{-0.00005, "0"},
		{1.0 / 3.0, "0.333333"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatNumber(c.in), "FormatNumber(%v)", c.in)
	}
}

func TestSerialize_SimpleOperator(t *testing.T) {
	seq := &interp.OperationSeq{Ops: []interp.Operation{
		{
			Kind:     interp.KindTextState,
			Operator: "Tf",
			Operands: []parser.PdfObject{parser.NewName("F1"), parser.NewReal(12)},
		},
	}}
	out := Serialize(seq)
	assert.Equal(t, "/F1 12 Tf\n", string(out))
}

func TestSerialize_LiteralStringEscaping(t *testing.T) {
	seq := &interp.OperationSeq{Ops: []interp.Operation{
		{
			Kind:     interp.KindTextShow,
			Operator: "Tj",
			Operands: []parser.PdfObject{parser.NewStringBytes([]byte("a(b)c\\d"))},
		},
	}}
	out := Serialize(seq)
	assert.Equal(t, "(a\\(b\\)c\\\\d) Tj\n", string(out))
}

func TestSerialize_ControlByteOctalEscape(t *testing.T) {
	seq := &interp.OperationSeq{Ops: []interp.Operation{
		{
			Kind:     interp.KindTextShow,
			Operator: "Tj",
			Operands: []parser.PdfObject{parser.NewStringBytes([]byte{0x01})},
		},
	}}
	out := Serialize(seq)
	assert.Equal(t, "(\\001) Tj\n", string(out))
}

func TestSerialize_NameEscaping(t *testing.T) {
	seq := &interp.OperationSeq{Ops: []interp.Operation{
		{
			Kind:     interp.KindXObject,
			Operator: "Do",
			Operands: []parser.PdfObject{parser.NewName("My Image#1")},
		},
	}}
	out := Serialize(seq)
	require.Equal(t, "/My#20Image#231 Do\n", string(out))
}

func TestSerialize_Array(t *testing.T) {
	seq := &interp.OperationSeq{Ops: []interp.Operation{
		{
			Kind:     interp.KindTextShow,
			Operator: "TJ",
			Operands: []parser.PdfObject{parser.NewArrayFromSlice([]parser.PdfObject{
				parser.NewStringBytes([]byte("AB")),
				parser.NewInteger(-250),
				parser.NewStringBytes([]byte("CD")),
			})},
		},
	}}
	out := Serialize(seq)
	assert.Equal(t, "[(AB) -250 (CD)] TJ\n", string(out))
}

func TestSerialize_InlineImage(t *testing.T) {
	dict := parser.NewDictionary()
	dict.Set("W", parser.NewInteger(2))
	seq := &interp.OperationSeq{Ops: []interp.Operation{
		{
			Kind: interp.KindInlineImage,
			InlineImage: &interp.InlineImageData{
				Dict: dict,
				Data: []byte{0xFF, 0x00},
			},
		},
	}}
	out := Serialize(seq)
	assert.Contains(t, string(out), "BI\n")
	assert.Contains(t, string(out), "/W 2")
	assert.Contains(t, string(out), "\nID\n")
	assert.Contains(t, string(out), "\nEI\n")
}
