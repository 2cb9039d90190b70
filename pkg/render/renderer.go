package render

import (
	"errors"
	"fmt"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// ErrUnsupportedPrimitive reports a draw call with a primitive kind the
// renderer does not implement.
var ErrUnsupportedPrimitive = errors.New("render: unsupported primitive kind")

// PrimitiveKind selects how an index stream is grouped into primitives.
type PrimitiveKind int

const (
	// Triangles groups indices three at a time into filled triangles.
	Triangles PrimitiveKind = iota
	// Lines groups indices two at a time into depth-tested segments.
	Lines
	// Points draws each indexed vertex as a single pixel.
	Points
)

// VertexCount returns how many indices one primitive of this kind
// consumes, or 0 for unknown kinds.
func (k PrimitiveKind) VertexCount() int {
	switch k {
	case Triangles:
		return 3
	case Lines:
		return 2
	case Points:
		return 1
	default:
		return 0
	}
}

func (k PrimitiveKind) String() string {
	switch k {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	case Points:
		return "points"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// Stats accumulates per-frame draw counters. Read them after Render,
// reset them with Reset.
type Stats struct {
	// Primitives is the number of primitives submitted.
	Primitives int
	// Degenerate is the number of primitives skipped: zero-w vertices or
	// collinear screen triangles.
	Degenerate int
}

// Reset zeroes the counters.
func (s *Stats) Reset() { *s = Stats{} }

// Renderer drives the full pipeline for one framebuffer: vertex
// transform, viewport mapping, then per-primitive rasterization through
// either the sequential scanline path or the primitive-parallel path.
//
// A Renderer reuses its vertex scratch buffers across draw calls and must
// not be shared between goroutines. The framebuffer it draws into may be
// shared; pixel writes are synchronized there.
type Renderer struct {
	// Parallel selects the primitive-parallel kernel instead of the
	// sequential scanline sweep for triangles.
	Parallel bool

	// Workers caps parallel lanes; zero means GOMAXPROCS.
	Workers int

	// AASamples is the sub-pixel grid resolution for edge anti-aliasing,
	// applied by both paths. Values <= 1 disable it.
	AASamples int

	// Stats holds counters for the draw calls since the last Reset.
	Stats Stats

	scratch   []ScreenVertex
	discarded []bool
	tris      [][3]ScreenVertex
}

// Render transforms the vertices by transform, maps them to fb's pixel
// grid and rasterizes the indexed primitives with depth testing.
//
// Vertices whose transform yields w = 0 are discarded along with every
// primitive that references them; this is counted, not an error. A
// trailing partial primitive in the index stream is ignored.
func (r *Renderer) Render(fb *Framebuffer, kind PrimitiveKind, vertices []Vertex, indices []uint32, transform math3d.Mat4) error {
	n := kind.VertexCount()
	if n == 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedPrimitive, kind)
	}

	r.transformAll(fb, vertices, transform)

	switch kind {
	case Triangles:
		if r.Parallel {
			r.renderTrianglesParallel(fb, indices)
		} else {
			r.renderTrianglesScanline(fb, indices)
		}
	case Lines:
		for i := 0; i+2 <= len(indices); i += 2 {
			r.Stats.Primitives++
			a, b := indices[i], indices[i+1]
			if r.discarded[a] || r.discarded[b] {
				r.Stats.Degenerate++
				continue
			}
			drawLine(fb, r.scratch[a], r.scratch[b])
		}
	case Points:
		for _, idx := range indices {
			r.Stats.Primitives++
			if r.discarded[idx] {
				r.Stats.Degenerate++
				continue
			}
			v := r.scratch[idx]
			fb.TestAndSet(v.X, v.Y, float32(v.Z), RGBFloat(v.Color))
		}
	}
	return nil
}

// transformAll runs the vertex stage into the reusable scratch buffers.
func (r *Renderer) transformAll(fb *Framebuffer, vertices []Vertex, transform math3d.Mat4) {
	if cap(r.scratch) < len(vertices) {
		r.scratch = make([]ScreenVertex, len(vertices))
		r.discarded = make([]bool, len(vertices))
	}
	r.scratch = r.scratch[:len(vertices)]
	r.discarded = r.discarded[:len(vertices)]

	w, h := fb.Width(), fb.Height()
	for i, v := range vertices {
		tv, err := TransformVertex(v, transform)
		if err != nil {
			r.discarded[i] = true
			continue
		}
		r.discarded[i] = false
		r.scratch[i] = tv.ToScreen(w, h)
	}
}

func (r *Renderer) renderTrianglesScanline(fb *Framebuffer, indices []uint32) {
	ras := ScanlineRasterizer{AASamples: r.AASamples}
	for i := 0; i+3 <= len(indices); i += 3 {
		r.Stats.Primitives++
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if r.discarded[a] || r.discarded[b] || r.discarded[c] {
			r.Stats.Degenerate++
			continue
		}
		if !ras.DrawTriangle(fb, r.scratch[a], r.scratch[b], r.scratch[c]) {
			r.Stats.Degenerate++
		}
	}
}

func (r *Renderer) renderTrianglesParallel(fb *Framebuffer, indices []uint32) {
	r.tris = r.tris[:0]
	for i := 0; i+3 <= len(indices); i += 3 {
		r.Stats.Primitives++
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if r.discarded[a] || r.discarded[b] || r.discarded[c] {
			r.Stats.Degenerate++
			continue
		}
		r.tris = append(r.tris, [3]ScreenVertex{r.scratch[a], r.scratch[b], r.scratch[c]})
	}
	ras := ParallelRasterizer{Workers: r.Workers, AASamples: r.AASamples}
	r.Stats.Degenerate += ras.DrawTriangles(fb, r.tris)
}

// drawLine draws a depth-tested segment between two screen vertices with
// Bresenham stepping, interpolating depth and color along the run.
func drawLine(fb *Framebuffer, a, b ScreenVertex) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	steps := max(dx, -dy)
	x, y := a.X, a.Y
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		z := a.Z + (b.Z-a.Z)*t
		col := a.Color.Lerp(b.Color, t)
		fb.TestAndSet(x, y, float32(z), RGBFloat(col))
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
