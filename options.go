package redactpdf

import "github.com/coregx/redactpdf/internal/redact"

// Rectangle is a redaction rectangle (or a page's MediaBox) in PDF user
// space. It re-exports redact.Rectangle so callers building a Page or a
// rects slice never need to import an internal package directly.
type Rectangle = redact.Rectangle

// NewRectangle creates a Rectangle from (left, bottom, right, top),
// normalizing reversed arguments rather than rejecting them.
func NewRectangle(left, bottom, right, top float64) Rectangle {
	return redact.NewRectangle(left, bottom, right, top)
}

// Config configures how RedactPage treats content that intersects a
// redaction rectangle. It re-exports redact.Config so callers need not
// import the internal package directly, matching the teacher's pattern of
// a root-level options type (options.go's ExtractionOptions) backed by a
// Default constructor.
type Config = redact.Config

// DefaultConfig returns the default redaction configuration: text, paths,
// and images are all removed when they intersect a rectangle, missing Tf
// operators are repaired ahead of split text runs, and a rectangle must
// cover at least 20% of a text line's height to count as a hit.
func DefaultConfig() Config {
	return redact.DefaultConfig()
}

// PartialImagePolicy controls how RedactPage handles an image whose
// bounding box intersects a redaction rectangle, partly or wholly.
type PartialImagePolicy = redact.PartialImagePolicy

// Policy values for Config.PartialImagePolicy.
const (
	// PolicyRemoveWhole drops the entire Do or inline-image operation when
	// any part of it intersects a redaction rectangle. This is the
	// default: pixels under a redaction box must never survive in a
	// recoverable form, even if most of the image lies outside the box.
	PolicyRemoveWhole = redact.PolicyRemoveWhole

	// PolicyKeepAndOverlayBlackBox keeps the image operation in the output
	// stream and instead raises an informational Diagnostic asking the
	// caller to paint an opaque rectangle over the image's bounding box.
	// Useful when a caller wants to preserve image layout and apply
	// pixel-level redaction itself with a rendering library this module
	// does not depend on.
	PolicyKeepAndOverlayBlackBox = redact.PolicyKeepAndOverlayBlackBox
)
