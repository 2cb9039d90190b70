package render

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// ParallelRasterizer fills triangles concurrently, one goroutine per
// primitive, each sweeping its own region of interest. Pixel writes go
// through the framebuffer's locked depth test, so overlapping primitives
// composite to the same nearest-wins result as the sequential path no
// matter how the goroutines are scheduled.
type ParallelRasterizer struct {
	// Workers caps the number of concurrently running primitives.
	// Zero means GOMAXPROCS.
	Workers int

	// AASamples is the sub-pixel grid resolution for edge anti-aliasing.
	// Values <= 1 disable it.
	AASamples int
}

// DrawTriangles rasterizes every triangle in tris into fb and returns the
// number of primitives skipped as degenerate.
func (r *ParallelRasterizer) DrawTriangles(fb *Framebuffer, tris [][3]ScreenVertex) int {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)

	degenerate := make([]bool, len(tris))
	for i := range tris {
		g.Go(func() error {
			t := &tris[i]
			if !r.drawOne(fb, t[0], t[1], t[2]) {
				degenerate[i] = true
			}
			return nil
		})
	}
	// Rasterization lanes never fail; the group is used for fan-out and
	// the limit only.
	_ = g.Wait()

	skipped := 0
	for _, d := range degenerate {
		if d {
			skipped++
		}
	}
	return skipped
}

func (r *ParallelRasterizer) drawOne(fb *Framebuffer, a, b, c ScreenVertex) bool {
	solver, ok := NewBarycentricSolver(a.point(), b.point(), c.point())
	if !ok {
		return false
	}
	roi := ComputeROI(a, b, c).clip(fb.Width(), fb.Height())
	if roi.Empty() {
		return true
	}

	est := CoverageEstimator{Samples: r.AASamples}
	aa := r.AASamples > 1

	for y := roi.Y; y < roi.Y+roi.Height; y++ {
		for x := roi.X; x < roi.X+roi.Width; x++ {
			p := math3d.V2(float64(x), float64(y))
			w := solver.Weights(p)
			if !insideWeights(w) {
				continue
			}
			z := w.X*a.Z + w.Y*b.Z + w.Z*c.Z
			col := shadeWeights(a, b, c, w)
			if aa && onEdge(solver, x, y) {
				cov := est.Estimate(solver, x, y)
				if cov == 0 {
					continue
				}
				col = col.Scale(cov)
			}
			fb.TestAndSetLocked(x, y, float32(z), RGBFloat(col))
		}
	}
	return true
}

// onEdge reports whether the triangle boundary passes through pixel
// (x, y), detected by testing the pixel's four corners. Interior pixels
// skip the coverage grid entirely.
func onEdge(s BarycentricSolver, x, y int) bool {
	fx, fy := float64(x), float64(y)
	in := s.Inside(math3d.V2(fx-0.5, fy-0.5))
	return in != s.Inside(math3d.V2(fx+0.5, fy-0.5)) ||
		in != s.Inside(math3d.V2(fx-0.5, fy+0.5)) ||
		in != s.Inside(math3d.V2(fx+0.5, fy+0.5))
}
