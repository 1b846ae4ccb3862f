// Package redact implements the Redactor stage (R) of the content-stream
// pipeline: given an interpreted Operation sequence and a set of redaction
// rectangles, it decides per operation whether to keep, drop or glyph-level
// split it, repairing PDF state-preservation invariants (balanced q/Q and
// BT/ET, no dangling font references) along the way.
package redact

// PartialImagePolicy controls what happens to an image operation whose
// bbox intersects a redaction rectangle, whether partly or wholly covered.
type PartialImagePolicy int

const (
	// PolicyRemoveWhole drops the entire image operation on any
	// intersection, regardless of how small. This is the default: the
	// core does not attempt pixel-level image redaction (spec §1
	// Non-goals), so a partial overlap is treated the same as a full one.
	PolicyRemoveWhole PartialImagePolicy = iota

	// PolicyKeepAndOverlayBlackBox keeps the image operation but marks it
	// for a caller-side black-box overlay instead of removing it from the
	// stream. The core itself does not draw the overlay (that belongs to
	// the file-level writer, which has access to the page's full
	// resource and annotation model); it only flags the decision.
	PolicyKeepAndOverlayBlackBox
)

// Config carries the redaction options named in spec §6.
type Config struct {
	// RemoveText controls whether TextShow operations are subject to
	// redaction at all. Default true.
	RemoveText bool

	// RemovePaths controls whether PathPaint operations are subject to
	// redaction. Default true.
	RemovePaths bool

	// RemoveImages controls whether XObjectInvoke and InlineImage
	// operations are subject to redaction. Default true.
	RemoveImages bool

	// PartialImagePolicy decides what happens to an image whose bbox
	// intersects a redaction rectangle, partly or wholly. Default
	// PolicyRemoveWhole.
	PartialImagePolicy PartialImagePolicy

	// InjectMissingTf enables the §4.3.1 Tf-injection repair: when a
	// surviving TextShow had no preceding Tf in its original text object,
	// a synthetic Tf is emitted ahead of it using the show's own
	// font-resource-name and the most recent surviving raw Tf size (or 1
	// if none exists). Default true.
	InjectMissingTf bool

	// MinIntersectionHeightRatio is the fraction of a glyph's height that
	// must overlap a redaction rectangle for the glyph to count as
	// intersecting, preventing adjacent-line bleed when a rectangle's
	// edge grazes the top or bottom of a line. Default 0.2.
	MinIntersectionHeightRatio float64
}

// DefaultConfig returns the Config with the defaults spec §6 specifies.
func DefaultConfig() Config {
	return Config{
		RemoveText:                 true,
		RemovePaths:                true,
		RemoveImages:               true,
		PartialImagePolicy:         PolicyRemoveWhole,
		InjectMissingTf:            true,
		MinIntersectionHeightRatio: 0.2,
	}
}
