package render

import (
	"errors"
	"testing"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// testVertices spans a right triangle over the upper-left quadrant of a
// 64x64 buffer: screen (16,16), (48,16), (16,48).
func testVertices() []Vertex {
	return []Vertex{
		{Position: math3d.V3(-0.5, 0.5, 0.5), Color: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0.5, 0.5, 0.5), Color: math3d.V3(0, 1, 0)},
		{Position: math3d.V3(-0.5, -0.5, 0.5), Color: math3d.V3(0, 0, 1)},
	}
}

func TestRenderTriangles(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "scanline"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			fb := NewFramebuffer(64, 64)
			fb.Clear(ColorBlack)

			r := Renderer{Parallel: parallel}
			err := r.Render(fb, Triangles, testVertices(), []uint32{0, 1, 2}, math3d.Identity())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}

			if r.Stats.Primitives != 1 || r.Stats.Degenerate != 0 {
				t.Errorf("stats = %+v, want 1 primitive, 0 degenerate", r.Stats)
			}
			// Vertex pixel reproduces the vertex color exactly.
			if got := fb.Color.GetPixel(16, 16); got != ColorRed {
				t.Errorf("pixel (16,16) = %v, want %v", got, ColorRed)
			}
			if got := fb.Color.GetPixel(20, 20); got == ColorBlack {
				t.Error("interior pixel (20,20) not written")
			}
			if got := fb.Color.GetPixel(60, 60); got != ColorBlack {
				t.Errorf("pixel (60,60) = %v, want untouched clear color", got)
			}
		})
	}
}

func TestRenderUnsupportedKind(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	var r Renderer
	err := r.Render(fb, PrimitiveKind(99), testVertices(), []uint32{0, 1, 2}, math3d.Identity())
	if !errors.Is(err, ErrUnsupportedPrimitive) {
		t.Errorf("err = %v, want ErrUnsupportedPrimitive", err)
	}
}

func TestRenderDegenerateW(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	var r Renderer
	var zero math3d.Mat4
	if err := r.Render(fb, Triangles, testVertices(), []uint32{0, 1, 2}, zero); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.Stats.Degenerate != 1 {
		t.Errorf("Degenerate = %d, want 1", r.Stats.Degenerate)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if fb.Color.GetPixel(x, y) != ColorBlack {
				t.Fatalf("pixel (%d, %d) written despite discarded vertices", x, y)
			}
		}
	}
}

func TestRenderPartialPrimitiveIgnored(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	var r Renderer
	// Two trailing indices do not form a triangle.
	err := r.Render(fb, Triangles, testVertices(), []uint32{0, 1, 2, 0, 1}, math3d.Identity())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.Stats.Primitives != 1 {
		t.Errorf("Primitives = %d, want 1", r.Stats.Primitives)
	}
}

func TestRenderLines(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	vertices := []Vertex{
		{Position: math3d.V3(-0.5, 0, 0.5), Color: math3d.V3(1, 1, 1)},
		{Position: math3d.V3(0.5, 0, 0.5), Color: math3d.V3(1, 1, 1)},
	}
	var r Renderer
	if err := r.Render(fb, Lines, vertices, []uint32{0, 1}, math3d.Identity()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Horizontal run from (16,32) to (48,32).
	for x := 16; x <= 48; x++ {
		if got := fb.Color.GetPixel(x, 32); got != ColorWhite {
			t.Fatalf("pixel (%d, 32) = %v, want %v", x, got, ColorWhite)
		}
	}
	if got := fb.Color.GetPixel(32, 31); got != ColorBlack {
		t.Errorf("pixel (32,31) = %v, want untouched clear color", got)
	}
}

func TestRenderPoints(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	vertices := []Vertex{
		{Position: math3d.V3(0, 0, 0.5), Color: math3d.V3(1, 0, 1)},
	}
	var r Renderer
	if err := r.Render(fb, Points, vertices, []uint32{0}, math3d.Identity()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := fb.Color.GetPixel(32, 32); got != ColorMagenta {
		t.Errorf("pixel (32,32) = %v, want %v", got, ColorMagenta)
	}
}

func TestRenderScratchReuse(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	var r Renderer
	if err := r.Render(fb, Triangles, testVertices(), []uint32{0, 1, 2}, math3d.Identity()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	first := &r.scratch[0]

	// Same vertex count reuses the scratch allocation.
	if err := r.Render(fb, Triangles, testVertices(), []uint32{0, 1, 2}, math3d.Identity()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if &r.scratch[0] != first {
		t.Error("scratch buffer reallocated for an unchanged vertex count")
	}
}

func TestPrimitiveKindVertexCount(t *testing.T) {
	tests := []struct {
		kind PrimitiveKind
		n    int
	}{
		{Triangles, 3},
		{Lines, 2},
		{Points, 1},
		{PrimitiveKind(42), 0},
	}
	for _, tc := range tests {
		if got := tc.kind.VertexCount(); got != tc.n {
			t.Errorf("%v.VertexCount() = %d, want %d", tc.kind, got, tc.n)
		}
	}
}

func BenchmarkRender(b *testing.B) {
	for _, parallel := range []bool{false, true} {
		name := "scanline"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			fb := NewFramebuffer(256, 256)
			r := Renderer{Parallel: parallel}
			vertices := testVertices()
			indices := []uint32{0, 1, 2}

			for b.Loop() {
				fb.Clear(ColorBlack)
				if err := r.Render(fb, Triangles, vertices, indices, math3d.Identity()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
