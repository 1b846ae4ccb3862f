package redact

// VisualToContent maps a rectangle supplied in display (rotated) space
// into content-stream user space, per spec §4.3.2's rotation table. W and H
// are the page's unrotated MediaBox width and height.
//
// Grounded on spec §9's "table-driven rotation helpers... no trigonometric
// approximations for the four canonical rotations": each of the four cases
// is an exact integer-coefficient affine remap, not a call through
// geom.Rotation.
func VisualToContent(r Rectangle, rotation int, w, h float64) Rectangle {
	x, y := r.LowerLeft()
	ww, hh := r.Width(), r.Height()

	var cx, cy, cw, ch float64
	switch normalizeRotation(rotation) {
	case 0:
		cx, cy, cw, ch = x, y, ww, hh
	case 90:
		cx, cy, cw, ch = h-y-hh, x, hh, ww
	case 180:
		cx, cy, cw, ch = w-x-ww, h-y-hh, ww, hh
	case 270:
		cx, cy, cw, ch = y, w-x-ww, hh, ww
	default:
		cx, cy, cw, ch = x, y, ww, hh
	}
	return NewRectangle(cx, cy, cx+cw, cy+ch)
}

// ContentToVisual is the inverse of VisualToContent: it maps a rectangle in
// content-stream user space (e.g. an Operation's bbox) back to display
// space, for a caller building a rectangle-picking UI. It is the exact
// algebraic inverse, not a re-derivation through the opposite rotation.
func ContentToVisual(r Rectangle, rotation int, w, h float64) Rectangle {
	cx, cy := r.LowerLeft()
	cw, ch := r.Width(), r.Height()

	var x, y, ww, hh float64
	switch normalizeRotation(rotation) {
	case 0:
		x, y, ww, hh = cx, cy, cw, ch
	case 90:
		x, y, ww, hh = cy, h-cw-cx, ch, cw
	case 180:
		x, y, ww, hh = w-cw-cx, h-ch-cy, cw, ch
	case 270:
		x, y, ww, hh = w-ch-cy, cx, ch, cw
	default:
		x, y, ww, hh = cx, cy, cw, ch
	}
	return NewRectangle(x, y, x+ww, y+hh)
}

// normalizeRotation folds any rotation value onto {0, 90, 180, 270}, the
// only values PDF's /Rotate key permits (a multiple of 90).
func normalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	return (r / 90 % 4) * 90
}
