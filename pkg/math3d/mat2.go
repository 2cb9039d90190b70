package math3d

// Mat2 is a 2x2 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  2 |
// | 1  3 |
type Mat2 [4]float64

// Mat2FromCols builds a matrix from two column vectors.
func Mat2FromCols(a, b Vec2) Mat2 {
	return Mat2{a.X, a.Y, b.X, b.Y}
}

// Determinant returns the determinant of the matrix.
func (m Mat2) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Inverse returns the inverse of the matrix and whether it exists.
// A singular matrix (det=0) has no inverse; callers must check ok
// before using the result.
func (m Mat2) Inverse() (inv Mat2, ok bool) {
	det := m.Determinant()
	if det == 0 {
		return Mat2{}, false
	}
	invDet := 1.0 / det
	return Mat2{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
	}, true
}

// MulVec2 transforms a Vec2.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[2]*v.Y,
		m[1]*v.X + m[3]*v.Y,
	}
}
