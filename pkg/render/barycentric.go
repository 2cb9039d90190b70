package render

import (
	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// BarycentricSolver computes interpolation weights over one screen-space
// triangle. The 2x2 edge matrix T = [A-C | B-C] is inverted once at
// construction; each query is then a single matrix-vector multiply.
type BarycentricSolver struct {
	c   math3d.Vec2
	inv math3d.Mat2
}

// NewBarycentricSolver builds a solver for the triangle (a, b, c).
// ok is false when the triangle is degenerate (collinear points, singular
// edge matrix); the caller must skip the primitive rather than use the
// zero solver.
func NewBarycentricSolver(a, b, c math3d.Vec2) (BarycentricSolver, bool) {
	inv, ok := math3d.Mat2FromCols(a.Sub(c), b.Sub(c)).Inverse()
	if !ok {
		return BarycentricSolver{}, false
	}
	return BarycentricSolver{c: c, inv: inv}, true
}

// Weights returns the barycentric weights (wa, wb, wc) of point p with
// respect to the solver's triangle. The weights sum to 1 by construction:
// wc is derived as 1-wa-wb.
func (s BarycentricSolver) Weights(p math3d.Vec2) math3d.Vec3 {
	w := s.inv.MulVec2(p.Sub(s.c))
	return math3d.V3(w.X, w.Y, 1-w.X-w.Y)
}

// Inside reports whether p lies inside the triangle: all three weights in
// [0, 1] inclusive, so edges and vertices count as inside.
func (s BarycentricSolver) Inside(p math3d.Vec2) bool {
	return insideWeights(s.Weights(p))
}

func insideWeights(w math3d.Vec3) bool {
	return w.X >= 0 && w.X <= 1 &&
		w.Y >= 0 && w.Y <= 1 &&
		w.Z >= 0 && w.Z <= 1
}
