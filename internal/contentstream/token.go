// Package contentstream implements lexical analysis of decoded PDF content
// streams according to PDF 1.7 specification, Section 7.2 (Lexical
// Conventions) and Section 8.2 (Content Streams).
//
// Unlike a full file-level lexer, the Tokenizer here operates directly on an
// in-memory []byte (the already-decoded content stream) and reports byte
// offsets instead of line/column pairs, so a caller can restart tokenization
// at an arbitrary offset and so diagnostics can point at exact byte spans.
package contentstream

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds recognized in a content stream.
const (
	KindError Kind = iota
	KindEOF

	KindInteger
	KindReal
	KindString    // (literal string), decoded value in Token.Value
	KindHexString // <hex string>, decoded value in Token.Value
	KindName      // /Name, decoded (unescaped) value in Token.Value
	KindBoolean
	KindNull

	KindOperator // any content-stream operator, e.g. Tj, re, cm, BI

	KindArrayStart
	KindArrayEnd
	KindDictStart
	KindDictEnd

	// KindInlineImageData is never produced by Next directly; it is
	// produced by ReadInlineImageData after an ID operator token, since
	// the bytes that follow ID are raw image data, not further tokens.
	KindInlineImageData
)

// String returns a human-readable name for the Kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "ERROR"
	case KindEOF:
		return "EOF"
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindString:
		return "STRING"
	case KindHexString:
		return "HEX_STRING"
	case KindName:
		return "NAME"
	case KindBoolean:
		return "BOOLEAN"
	case KindNull:
		return "NULL"
	case KindOperator:
		return "OPERATOR"
	case KindArrayStart:
		return "ARRAY_START"
	case KindArrayEnd:
		return "ARRAY_END"
	case KindDictStart:
		return "DICT_START"
	case KindDictEnd:
		return "DICT_END"
	case KindInlineImageData:
		return "INLINE_IMAGE_DATA"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
}

// Token is a single lexical unit read from a content stream.
type Token struct {
	Kind Kind

	// Value is the token's decoded textual value: for strings and hex
	// strings, the decoded byte content as a string (escapes resolved);
	// for names, the unescaped name without the leading '/'; for
	// operators, keywords, numbers and booleans, the raw word.
	Value string

	// Offset is the byte offset of the token's first byte in the original
	// buffer, used for diagnostics and for restarting tokenization.
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Value, t.Offset)
}

// IsOperator reports whether the token is an operator equal to name.
func (t Token) IsOperator(name string) bool {
	return t.Kind == KindOperator && t.Value == name
}
