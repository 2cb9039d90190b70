package render

import (
	"sort"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// ScanlineRasterizer fills triangles one horizontal span at a time.
// Deterministic and single-threaded; the reference against which the
// parallel kernel is checked.
type ScanlineRasterizer struct {
	// AASamples is the sub-pixel grid resolution for edge anti-aliasing.
	// Values <= 1 disable it.
	AASamples int
}

// DrawTriangle scan-converts the triangle (a, b, c) into fb, depth-testing
// every pixel. Color is interpolated barycentrically across the face.
// Degenerate triangles (collinear screen vertices) are skipped and
// reported via the return value.
func (r *ScanlineRasterizer) DrawTriangle(fb *Framebuffer, a, b, c ScreenVertex) bool {
	solver, ok := NewBarycentricSolver(a.point(), b.point(), c.point())
	if !ok {
		return false
	}

	vs := [3]ScreenVertex{a, b, c}
	sort.Slice(vs[:], func(i, j int) bool { return vs[i].Y < vs[j].Y })

	est := CoverageEstimator{Samples: r.AASamples}
	aa := r.AASamples > 1

	for y := vs[0].Y; y <= vs[2].Y; y++ {
		// The long edge spans the full height; the two-segment chain
		// covers the same rows through the middle vertex.
		xLong := interpolateX(y, vs[0], vs[2])
		xChain := interpolateX(y, vs[0], vs[1], vs[2])
		left, right := xLong, xChain
		if left > right {
			left, right = right, left
		}
		for x := left; x <= right; x++ {
			// Screen vertices and pixel samples share the same lattice,
			// so a pixel landing exactly on a vertex reproduces that
			// vertex's color.
			p := math3d.V2(float64(x), float64(y))
			w := solver.Weights(p)
			if !insideWeights(w) {
				continue
			}
			z := w.X*a.Z + w.Y*b.Z + w.Z*c.Z
			col := shadeWeights(a, b, c, w)
			// Coverage applies to the span's two boundary pixels only;
			// interior pixels are always fully opaque.
			if aa && (x == left || x == right) {
				cov := est.Estimate(solver, x, y)
				if cov == 0 {
					continue
				}
				col = col.Scale(cov)
			}
			fb.TestAndSet(x, y, float32(z), RGBFloat(col))
		}
	}
	return true
}

// shadeWeights blends the three vertex colors by the barycentric weights.
func shadeWeights(a, b, c ScreenVertex, w math3d.Vec3) math3d.Vec3 {
	return a.Color.Scale(w.X).
		Add(b.Color.Scale(w.Y)).
		Add(c.Color.Scale(w.Z))
}

// interpolateX returns the x coordinate of the polyline through vs at
// scanline y. With two vertices it walks a single edge; with three it
// walks the chain through the middle vertex. Vertices must be sorted by
// ascending y.
//
// The segment chosen is the last one whose start y is <= y, so at a
// shared vertex the lower segment takes over. A horizontal segment
// contributes its start x.
func interpolateX(y int, vs ...ScreenVertex) int {
	seg := 0
	for i := 1; i < len(vs)-1; i++ {
		if vs[i].Y <= y {
			seg = i
		}
	}
	p0, p1 := vs[seg], vs[seg+1]
	if p1.Y == p0.Y {
		return p0.X
	}
	t := float64(y-p0.Y) / float64(p1.Y-p0.Y)
	return p0.X + int(t*float64(p1.X-p0.X))
}
