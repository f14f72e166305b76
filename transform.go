package redraw

import "math"

// Matrix is a 2D affine transform laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translation returns a matrix translating by (x, y).
func Translation(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotation returns a matrix rotating by theta radians (clockwise on screen,
// since Y points down).
func Rotation(theta float64) Matrix {
	sin, cos := math.Sincos(theta)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Mul returns m * other: other is applied first, then m.
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ~ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// IsAxisAligned reports whether m has no rotation or skew.
func (m Matrix) IsAxisAligned() bool {
	return m[1] == 0 && m[2] == 0
}

// transformStack is the save/restore state shared by the surface backends.
type transformStack struct {
	matrix Matrix
	alpha  float64
	saved  []savedState
	debug  bool
}

type savedState struct {
	matrix Matrix
	alpha  float64
}

func newTransformStack() transformStack {
	return transformStack{matrix: Identity, alpha: 1}
}

func (t *transformStack) Save() {
	t.saved = append(t.saved, savedState{matrix: t.matrix, alpha: t.alpha})
}

// Restore pops the last Save. An unbalanced Restore is a no-op, except in
// debug mode where it panics.
func (t *transformStack) Restore() {
	if len(t.saved) == 0 {
		if t.debug {
			panic("redraw debug: Restore without matching Save")
		}
		return
	}
	st := t.saved[len(t.saved)-1]
	t.saved = t.saved[:len(t.saved)-1]
	t.matrix = st.matrix
	t.alpha = st.alpha
}

func (t *transformStack) Translate(x, y float64) {
	t.matrix = t.matrix.Mul(Translation(x, y))
}

func (t *transformStack) Rotate(theta float64) {
	t.matrix = t.matrix.Mul(Rotation(theta))
}

func (t *transformStack) Transform() Matrix {
	return t.matrix
}

func (t *transformStack) SetAlpha(a float64) {
	t.alpha = clamp01(a)
}

func (t *transformStack) setDebug(enabled bool) {
	t.debug = enabled
}

// depth returns the number of unmatched Save calls.
func (t *transformStack) depth() int {
	return len(t.saved)
}
