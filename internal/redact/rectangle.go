package redact

import "github.com/coregx/redactpdf/internal/geom"

// Rectangle is a redaction rectangle in PDF user space. It is the same
// value object internal/geom and internal/interp use for bounding boxes
// (left<=right, bottom<=top, normalized by the constructor); the redact
// package re-exports it under the spec's own naming so callers never need
// to import internal/geom directly.
type Rectangle = geom.Rectangle

// NewRectangle creates a Rectangle from (left, bottom, right, top), per
// spec §3's Rectangle data model. Arguments are normalized, not rejected,
// if given in reversed order.
func NewRectangle(left, bottom, right, top float64) Rectangle {
	return geom.NewRectangle(left, bottom, right, top)
}

// RemovedResourceNames is the side-output of a redaction pass: the names
// of XObject resources that no longer appear in the rewritten content
// stream because every Do invoking them was dropped. The Redactor never
// mutates a caller's Resources dictionary (spec §5); it only reports which
// entries the caller may now safely remove.
type RemovedResourceNames []string

// intersects reports whether r overlaps any of rects, applying the
// min-height-ratio heuristic: r must overlap by at least ratio of its own
// height (or have non-positive height, e.g. a path rectangle, in which
// case any overlap counts).
func intersects(r Rectangle, rects []Rectangle, ratio float64) bool {
	for _, rect := range rects {
		if !r.Intersects(rect) {
			continue
		}
		if r.Height() <= 0 {
			return true
		}
		if r.IntersectionHeightRatio(rect) >= ratio {
			return true
		}
	}
	return false
}
