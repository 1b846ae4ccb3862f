package fonts

// Resolver is the capability interface the interpreter uses to turn a glyph
// byte code into an advance width and (optionally) a decoded rune, without
// the core needing to know anything about font file formats or embedding.
//
// Reference: PDF 1.7 specification, Section 9.2 (Organization and Use of
// Fonts) and Section 9.6.6 (Character Encoding).
type Resolver interface {
	// Width returns the glyph width for code in 1/1000 em units, and
	// whether the font/code pair was recognized. Callers fall back to the
	// default width (600) when ok is false.
	Width(fontName string, code byte) (width float64, ok bool)

	// Decode returns the Unicode rune for code under fontName's encoding,
	// and whether the mapping succeeded. Redaction does not require this
	// (it operates on glyph position, not character identity) but callers
	// building diagnostics or previews can use it.
	Decode(fontName string, code byte) (r rune, ok bool)
}

// DefaultWidth is used when no resolver is configured, or when the
// configured resolver does not recognize the font/code pair.
//
// Reference: spec §4.2 text showing semantics, step 3.
const DefaultWidth = 600.0

// StandardResolver resolves widths from the Standard-14 metrics tables and
// decodes using a WinAnsi-like Latin-1 identity mapping. It is the default
// Resolver used when a caller does not supply one backed by the document's
// actual embedded font widths.
type StandardResolver struct{}

// NewStandardResolver creates a Resolver backed by the built-in Standard-14
// font metrics.
func NewStandardResolver() *StandardResolver {
	return &StandardResolver{}
}

// Width implements Resolver.
func (StandardResolver) Width(fontName string, code byte) (float64, bool) {
	m := GetMetrics(fontName)
	if m == nil {
		return DefaultWidth, false
	}
	w, ok := m.CharWidths[rune(code)]
	if !ok {
		return float64(m.DefaultWidth), true
	}
	return float64(w), true
}

// Decode implements Resolver using a Latin-1 identity mapping, which is
// correct for the WinAnsiEncoding code points the Standard-14 fonts assume.
func (StandardResolver) Decode(_ string, code byte) (rune, bool) {
	return rune(code), true
}

// MapResolver is a Resolver backed by caller-supplied per-font width maps,
// for documents whose fonts carry an explicit /Widths array. Fonts absent
// from Widths fall back to DefaultWidth.
type MapResolver struct {
	Widths  map[string]map[byte]float64
	Decoder map[string]map[byte]rune
}

// NewMapResolver creates an empty MapResolver ready to be populated by a
// caller resolving /Widths and /Encoding /Differences from a page's
// Resources dictionary.
func NewMapResolver() *MapResolver {
	return &MapResolver{
		Widths:  make(map[string]map[byte]float64),
		Decoder: make(map[string]map[byte]rune),
	}
}

// Width implements Resolver.
func (m *MapResolver) Width(fontName string, code byte) (float64, bool) {
	if widths, ok := m.Widths[fontName]; ok {
		if w, ok := widths[code]; ok {
			return w, true
		}
	}
	return DefaultWidth, false
}

// Decode implements Resolver.
func (m *MapResolver) Decode(fontName string, code byte) (rune, bool) {
	if dec, ok := m.Decoder[fontName]; ok {
		if r, ok := dec[code]; ok {
			return r, true
		}
	}
	return rune(code), false
}
