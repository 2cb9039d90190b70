package render

import (
	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// CoverageEstimator measures how much of a pixel a triangle covers by
// testing a Samples x Samples grid of sub-pixel points. Boundary pixels
// get fractional coverage, which softens stair-stepping along edges.
type CoverageEstimator struct {
	// Samples is the grid resolution per axis. 1 disables anti-aliasing:
	// the single sample sits at the pixel center and coverage is 0 or 1.
	Samples int
}

// Estimate returns the fraction of pixel (x, y) covered by the solver's
// triangle, in [0, 1]. The pixel spans [x-0.5, x+0.5] x [y-0.5, y+0.5]
// around its sample point; sub-sample i of n sits at offset (i+0.5)/n so
// the grid is centered within the pixel, and n=1 degenerates to the
// sample point itself.
func (e CoverageEstimator) Estimate(s BarycentricSolver, x, y int) float64 {
	n := e.Samples
	if n <= 1 {
		if s.Inside(math3d.V2(float64(x), float64(y))) {
			return 1
		}
		return 0
	}
	hits := 0
	for sy := 0; sy < n; sy++ {
		py := float64(y) - 0.5 + (float64(sy)+0.5)/float64(n)
		for sx := 0; sx < n; sx++ {
			px := float64(x) - 0.5 + (float64(sx)+0.5)/float64(n)
			if s.Inside(math3d.V2(px, py)) {
				hits++
			}
		}
	}
	return float64(hits) / float64(n*n)
}
