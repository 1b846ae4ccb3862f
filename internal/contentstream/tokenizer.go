package contentstream

import (
	"fmt"
	"strconv"
	"strings"
)

// Tokenizer lexes a decoded content-stream byte buffer into Tokens.
//
// Grounded on internal/parser.Lexer: the whitespace set, comment handling,
// literal/hex string escaping and name #xx escaping rules are unchanged.
// Two things are generalized beyond what the file-level lexer needed: the
// Tokenizer tracks byte offsets (not line/column) so it can be restarted
// mid-stream with NewTokenizerAt, and it exposes ReadInlineImageData to
// consume the raw bytes of a BI...ID...EI inline image, which a content
// stream can contain but a file-level object lexer never sees.
type Tokenizer struct {
	buf []byte
	pos int
}

// NewTokenizer creates a Tokenizer over the full content stream buf.
func NewTokenizer(buf []byte) *Tokenizer {
	return &Tokenizer{buf: buf}
}

// NewTokenizerAt creates a Tokenizer over buf starting at byte offset.
// Used to resume tokenization after an operation the caller handled
// out-of-band, such as inline image data.
func NewTokenizerAt(buf []byte, offset int) *Tokenizer {
	return &Tokenizer{buf: buf, pos: offset}
}

// Offset returns the tokenizer's current byte position.
func (t *Tokenizer) Offset() int {
	return t.pos
}

func (t *Tokenizer) eof() bool {
	return t.pos >= len(t.buf)
}

func (t *Tokenizer) peekByte() (byte, bool) {
	if t.eof() {
		return 0, false
	}
	return t.buf[t.pos], true
}

func (t *Tokenizer) peekByteAt(offset int) (byte, bool) {
	p := t.pos + offset
	if p >= len(t.buf) {
		return 0, false
	}
	return t.buf[p], true
}

func (t *Tokenizer) advance() byte {
	b := t.buf[t.pos]
	t.pos++
	return b
}

// Next returns the next Token in the stream, or a KindEOF token when the
// buffer is exhausted.
//
//nolint:cyclop // lexing requires one branch per leading-character class.
func (t *Tokenizer) Next() (Token, error) {
	t.skipWhitespaceAndComments()

	if t.eof() {
		return Token{Kind: KindEOF, Offset: t.pos}, nil
	}

	start := t.pos
	ch, _ := t.peekByte()

	switch {
	case ch == '[':
		t.advance()
		return Token{Kind: KindArrayStart, Value: "[", Offset: start}, nil

	case ch == ']':
		t.advance()
		return Token{Kind: KindArrayEnd, Value: "]", Offset: start}, nil

	case ch == '<':
		t.advance()
		if next, ok := t.peekByte(); ok && next == '<' {
			t.advance()
			return Token{Kind: KindDictStart, Value: "<<", Offset: start}, nil
		}
		return t.readHexString(start)

	case ch == '>':
		t.advance()
		if next, ok := t.peekByte(); ok && next == '>' {
			t.advance()
			return Token{Kind: KindDictEnd, Value: ">>", Offset: start}, nil
		}
		return Token{Kind: KindError, Value: "unexpected '>'", Offset: start},
			fmt.Errorf("contentstream: unexpected '>' at byte %d", start)

	case ch == '(':
		return t.readString(start)

	case ch == '/':
		return t.readName(start)

	case ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9'):
		return t.readNumber(start)

	case isRegular(ch):
		return t.readKeywordOrOperator(start)

	default:
		t.advance()
		return Token{Kind: KindError, Value: fmt.Sprintf("unexpected byte %q", ch), Offset: start},
			fmt.Errorf("contentstream: unexpected byte %q at offset %d", ch, start)
	}
}

func (t *Tokenizer) skipWhitespaceAndComments() {
	for {
		ch, ok := t.peekByte()
		if !ok {
			return
		}
		if isWhitespace(ch) {
			t.advance()
			continue
		}
		if ch == '%' {
			for {
				ch, ok := t.peekByte()
				if !ok || ch == '\r' || ch == '\n' {
					break
				}
				t.advance()
			}
			continue
		}
		return
	}
}

func (t *Tokenizer) readString(start int) (Token, error) {
	t.advance() // consume '('

	var buf []byte
	depth := 1

	for depth > 0 {
		if t.eof() {
			return Token{Kind: KindError, Value: "unterminated string", Offset: start},
				fmt.Errorf("contentstream: unterminated string at offset %d", start)
		}
		ch := t.advance()

		switch ch {
		case '(':
			depth++
			buf = append(buf, ch)
		case ')':
			depth--
			if depth > 0 {
				buf = append(buf, ch)
			}
		case '\\':
			if t.eof() {
				return Token{Kind: KindError, Value: "incomplete escape", Offset: start},
					fmt.Errorf("contentstream: incomplete escape sequence at offset %d", start)
			}
			next := t.advance()
			switch next {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '(', ')', '\\':
				buf = append(buf, next)
			case '\r':
				if p, ok := t.peekByte(); ok && p == '\n' {
					t.advance()
				}
			case '\n':
				// line continuation, nothing emitted
			case '0', '1', '2', '3', '4', '5', '6', '7':
				octal := []byte{next}
				for i := 0; i < 2; i++ {
					p, ok := t.peekByte()
					if !ok || p < '0' || p > '7' {
						break
					}
					octal = append(octal, t.advance())
				}
				val, _ := strconv.ParseInt(string(octal), 8, 32)
				buf = append(buf, byte(val))
			default:
				buf = append(buf, next)
			}
		default:
			buf = append(buf, ch)
		}
	}

	return Token{Kind: KindString, Value: string(buf), Offset: start}, nil
}

func (t *Tokenizer) readHexString(start int) (Token, error) {
	var hex []byte

	for {
		if t.eof() {
			return Token{Kind: KindError, Value: "unterminated hex string", Offset: start},
				fmt.Errorf("contentstream: unterminated hex string at offset %d", start)
		}
		ch := t.advance()
		if ch == '>' {
			break
		}
		if isWhitespace(ch) {
			continue
		}
		if !isHexDigit(ch) {
			return Token{Kind: KindError, Value: fmt.Sprintf("invalid hex digit %q", ch), Offset: start},
				fmt.Errorf("contentstream: invalid hex digit %q at offset %d", ch, start)
		}
		hex = append(hex, ch)
	}

	if len(hex)%2 == 1 {
		hex = append(hex, '0')
	}

	decoded := make([]byte, len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		val, _ := strconv.ParseUint(string(hex[i:i+2]), 16, 8)
		decoded[i/2] = byte(val)
	}

	return Token{Kind: KindHexString, Value: string(decoded), Offset: start}, nil
}

func (t *Tokenizer) readName(start int) (Token, error) {
	t.advance() // consume '/'

	var buf []byte
	for {
		ch, ok := t.peekByte()
		if !ok || isDelimiter(ch) || isWhitespace(ch) {
			break
		}
		t.advance()
		if ch == '#' {
			h1, ok1 := t.peekByte()
			if ok1 && isHexDigit(h1) {
				if h2, ok2 := t.peekByteAt(1); ok2 && isHexDigit(h2) {
					t.advance()
					t.advance()
					val, _ := strconv.ParseUint(string([]byte{h1, h2}), 16, 8)
					buf = append(buf, byte(val))
					continue
				}
			}
			buf = append(buf, ch)
			continue
		}
		buf = append(buf, ch)
	}

	return Token{Kind: KindName, Value: string(buf), Offset: start}, nil
}

func (t *Tokenizer) readNumber(start int) (Token, error) {
	var buf []byte

	if ch, ok := t.peekByte(); ok && (ch == '+' || ch == '-') {
		buf = append(buf, t.advance())
	}

	hasDigit := false
	hasDot := false

	for {
		ch, ok := t.peekByte()
		if !ok {
			break
		}
		switch {
		case ch >= '0' && ch <= '9':
			buf = append(buf, t.advance())
			hasDigit = true
		case ch == '.' && !hasDot:
			buf = append(buf, t.advance())
			hasDot = true
		default:
			goto done
		}
	}
done:

	numStr := string(buf)
	if !hasDigit && numStr != "." && numStr != "+." && numStr != "-." {
		return Token{Kind: KindError, Value: "invalid number", Offset: start},
			fmt.Errorf("contentstream: invalid number at offset %d", start)
	}

	if hasDot {
		return Token{Kind: KindReal, Value: numStr, Offset: start}, nil
	}
	return Token{Kind: KindInteger, Value: numStr, Offset: start}, nil
}

func (t *Tokenizer) readKeywordOrOperator(start int) (Token, error) {
	var buf []byte
	for {
		ch, ok := t.peekByte()
		if !ok || !isRegular(ch) {
			break
		}
		buf = append(buf, t.advance())
	}

	word := string(buf)
	switch word {
	case "true", "false":
		return Token{Kind: KindBoolean, Value: word, Offset: start}, nil
	case "null":
		return Token{Kind: KindNull, Value: word, Offset: start}, nil
	}

	// Recognized operators and unrecognized keywords alike are returned as
	// operator tokens; the Interpreter reports an unrecognized one as a
	// KindUnknownOperator diagnostic rather than failing the stream.
	return Token{Kind: KindOperator, Value: word, Offset: start}, nil
}

// ReadInlineImageData consumes the raw bytes following an ID operator up to
// (but not including) the terminating EI operator, per PDF 1.7 Section 8.9.7.
// The caller must invoke this immediately after receiving the ID token.
//
// Inline image data has no delimiter of its own; per common practice (and
// absent a trustworthy /L length key, which most producers omit) the scan
// looks for whitespace followed by "EI" followed by whitespace, a delimiter
// or EOF. This
// mirrors how real-world PDF content streams are recovered by tools that
// don't have access to a filter-aware decoder at the tokenizer layer.
func (t *Tokenizer) ReadInlineImageData() ([]byte, error) {
	// A single whitespace byte separates ID from the image data.
	if ch, ok := t.peekByte(); ok && isWhitespace(ch) {
		t.advance()
	}

	dataStart := t.pos
	buf := t.buf

	for i := t.pos; i < len(buf)-1; i++ {
		if isWhitespace(buf[i]) && buf[i+1] == 'E' {
			if i+2 < len(buf) && buf[i+2] == 'I' {
				after := i + 3
				if after >= len(buf) || isWhitespace(buf[after]) || isDelimiter(buf[after]) {
					data := buf[dataStart:i]
					t.pos = after
					return data, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("contentstream: unterminated inline image data starting at offset %d", dataStart)
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == 0x00 || ch == 0x0C
}

func isDelimiter(ch byte) bool {
	return ch == '(' || ch == ')' || ch == '<' || ch == '>' ||
		ch == '[' || ch == ']' || ch == '{' || ch == '}' ||
		ch == '/' || ch == '%'
}

func isRegular(ch byte) bool {
	return !isWhitespace(ch) && !isDelimiter(ch) && ch >= 33 && ch <= 126
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F') || (ch >= 'a' && ch <= 'f')
}

// ScanOperatorSubstrings is a diagnostic-only utility that scans raw content
// bytes for byte sequences that look like a given operator, WITHOUT lexing
// strings, names or comments. It exists for log/debug tooling that wants a
// cheap approximate count (e.g. "roughly how many Tj calls does this stream
// have") and must never be used to drive redaction decisions: an operator
// name appearing inside a literal string or a comment will produce a false
// positive here that the real Tokenizer correctly ignores.
func ScanOperatorSubstrings(content []byte, operator string) []int {
	var offsets []int
	s := string(content)
	op := operator
	from := 0
	for {
		idx := strings.Index(s[from:], op)
		if idx < 0 {
			break
		}
		pos := from + idx
		offsets = append(offsets, pos)
		from = pos + len(op)
	}
	return offsets
}
