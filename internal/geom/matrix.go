// Package geom provides the coordinate-geometry primitives shared by the
// content-stream interpreter and the redactor: affine transformation
// matrices and axis-aligned rectangles. Keeping these dependency-free of the
// PDF object model lets both internal/interp and internal/redact depend on
// geom without depending on each other.
package geom

// Matrix is a PDF affine transformation matrix, written in row-vector form
// as used throughout the PDF content stream operators:
//
//	[x' y' 1] = [x y 1] * | a b 0 |
//	                      | c d 0 |
//	                      | e f 1 |
//
// Grounded on internal/extractor.Matrix (text_state.go), generalized with
// the PDF-order left-multiplication Multiply needs for the cm operator.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// NewMatrix builds a matrix from its six components, in the same order PDF
// operators list them: a b c d e f.
func NewMatrix(a, b, c, d, e, f float64) Matrix {
	return Matrix{A: a, B: b, C: c, D: d, E: e, F: f}
}

// Translation returns a matrix that translates by (tx, ty).
func Translation(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// IsIdentity reports whether m is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Transform applies m to the point (x, y) and returns the transformed point.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return x*m.A + y*m.C + m.E, x*m.B + y*m.D + m.F
}

// Multiply returns m × other, i.e. the matrix that applies m first and then
// other: for a point p, p.Multiply(m.Multiply(other)) == (p.m).other.
//
// This is the PDF concatenation order used by the cm operator: the operand
// matrix is prepended to the CTM, so CTM' = operand.Multiply(CTM).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
		E: m.E*other.A + m.F*other.C + other.E,
		F: m.E*other.B + m.F*other.D + other.F,
	}
}
