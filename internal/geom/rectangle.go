package geom

import (
	"fmt"
	"math"
)

// Rectangle is an immutable axis-aligned rectangle in PDF user space,
// defined by its lower-left and upper-right corners.
//
// Grounded on internal/models/types.Rectangle: same private-field, value-
// object shape and constructor-validated invariant. Generalized in two ways
// the read-only page-geometry original did not need: NewRectangle
// normalizes its arguments instead of rejecting degenerate/reversed input
// (content-stream geometry routinely produces reversed or zero-area
// rectangles, e.g. a single zero-width glyph, that are still meaningful),
// and Intersect/IntersectionHeightRatio support the redaction overlap test.
type Rectangle struct {
	llx, lly, urx, ury float64
}

// NewRectangle creates a Rectangle from two corners in any order, sorting
// them into (llx,lly)-(urx,ury) form. Unlike a page MediaBox, content-stream
// derived rectangles are never rejected for being degenerate.
func NewRectangle(x0, y0, x1, y1 float64) Rectangle {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rectangle{llx: x0, lly: y0, urx: x1, ury: y1}
}

// Width returns the rectangle's width.
func (r Rectangle) Width() float64 { return r.urx - r.llx }

// Height returns the rectangle's height.
func (r Rectangle) Height() float64 { return r.ury - r.lly }

// LowerLeft returns the lower-left corner.
func (r Rectangle) LowerLeft() (x, y float64) { return r.llx, r.lly }

// UpperRight returns the upper-right corner.
func (r Rectangle) UpperRight() (x, y float64) { return r.urx, r.ury }

// Contains reports whether the point (x, y) lies within the rectangle,
// inclusive of the boundary.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.llx && x <= r.urx && y >= r.lly && y <= r.ury
}

// IsEmpty reports whether the rectangle has zero area.
func (r Rectangle) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Intersects reports whether r and other overlap (touching at an edge does
// not count as overlap).
func (r Rectangle) Intersects(other Rectangle) bool {
	return r.llx < other.urx && other.llx < r.urx && r.lly < other.ury && other.lly < r.ury
}

// Intersect returns the overlapping region of r and other, and whether they
// overlap at all.
func (r Rectangle) Intersect(other Rectangle) (Rectangle, bool) {
	if !r.Intersects(other) {
		return Rectangle{}, false
	}
	x0 := math.Max(r.llx, other.llx)
	y0 := math.Max(r.lly, other.lly)
	x1 := math.Min(r.urx, other.urx)
	y1 := math.Min(r.ury, other.ury)
	return Rectangle{llx: x0, lly: y0, urx: x1, ury: y1}, true
}

// IntersectionHeightRatio returns the fraction of r's height that overlaps
// with other, in [0, 1]. Used by the redactor's intersection heuristic to
// decide whether a glyph is "enough" inside a redaction rectangle to count,
// rather than requiring full containment.
func (r Rectangle) IntersectionHeightRatio(other Rectangle) float64 {
	if r.Height() <= 0 {
		return 0
	}
	inter, ok := r.Intersect(other)
	if !ok {
		return 0
	}
	return inter.Height() / r.Height()
}

// Translate returns a new Rectangle offset by (dx, dy).
func (r Rectangle) Translate(dx, dy float64) Rectangle {
	return Rectangle{llx: r.llx + dx, lly: r.lly + dy, urx: r.urx + dx, ury: r.ury + dy}
}

// String returns a debug representation of the rectangle.
func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle[(%g, %g), (%g, %g)]", r.llx, r.lly, r.urx, r.ury)
}

// Equals reports whether r and other describe the same rectangle.
func (r Rectangle) Equals(other Rectangle) bool {
	return r.llx == other.llx && r.lly == other.lly && r.urx == other.urx && r.ury == other.ury
}
