package render

import (
	"testing"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

func colorTriangle() (a, b, c ScreenVertex) {
	a = ScreenVertex{X: 10, Y: 10, Z: 0.5, Color: math3d.V3(1, 0, 0)}
	b = ScreenVertex{X: 50, Y: 10, Z: 0.5, Color: math3d.V3(0, 1, 0)}
	c = ScreenVertex{X: 10, Y: 50, Z: 0.5, Color: math3d.V3(0, 0, 1)}
	return a, b, c
}

func TestScanlineTriangleFill(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	var ras ScanlineRasterizer
	a, b, c := colorTriangle()
	if !ras.DrawTriangle(fb, a, b, c) {
		t.Fatal("DrawTriangle rejected a proper triangle")
	}

	// Near the red vertex the red weight dominates.
	near := fb.Color.GetPixel(12, 12)
	if near.R <= near.G || near.R <= near.B || near.R < 200 {
		t.Errorf("pixel (12,12) = %v, want red-dominated blend", near)
	}

	// A pixel landing exactly on a vertex reproduces its color.
	if got := fb.Color.GetPixel(50, 10); got != ColorGreen {
		t.Errorf("pixel (50,10) = %v, want %v", got, ColorGreen)
	}

	// Outside the triangle the clear color survives.
	if got := fb.Color.GetPixel(0, 0); got != ColorBlack {
		t.Errorf("pixel (0,0) = %v, want untouched clear color", got)
	}

	// Depth written only where color was.
	if z := fb.Depth.At(12, 12); z != 0.5 {
		t.Errorf("depth (12,12) = %v, want 0.5", z)
	}
	if z := fb.Depth.At(0, 0); !(z > 1) {
		t.Errorf("depth (0,0) = %v, want +Inf", z)
	}
}

func TestScanlineDegenerateTriangle(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	v := ScreenVertex{X: 5, Y: 5, Z: 0.5, Color: math3d.V3(1, 1, 1)}
	var ras ScanlineRasterizer
	if ras.DrawTriangle(fb, v, v, v) {
		t.Error("DrawTriangle accepted a degenerate triangle")
	}

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if fb.Color.GetPixel(x, y) != ColorBlack {
				t.Fatalf("pixel (%d, %d) written by a degenerate triangle", x, y)
			}
		}
	}
}

func TestScanlineDepthOrdering(t *testing.T) {
	fb := NewFramebuffer(64, 64)
	fb.Clear(ColorBlack)

	var ras ScanlineRasterizer
	near := [3]ScreenVertex{
		{X: 10, Y: 10, Z: 0.3, Color: math3d.V3(1, 0, 0)},
		{X: 50, Y: 10, Z: 0.3, Color: math3d.V3(1, 0, 0)},
		{X: 10, Y: 50, Z: 0.3, Color: math3d.V3(1, 0, 0)},
	}
	far := [3]ScreenVertex{
		{X: 10, Y: 10, Z: 0.7, Color: math3d.V3(0, 0, 1)},
		{X: 50, Y: 10, Z: 0.7, Color: math3d.V3(0, 0, 1)},
		{X: 10, Y: 50, Z: 0.7, Color: math3d.V3(0, 0, 1)},
	}

	// Far triangle drawn last must not overwrite the near one.
	ras.DrawTriangle(fb, near[0], near[1], near[2])
	ras.DrawTriangle(fb, far[0], far[1], far[2])

	if got := fb.Color.GetPixel(20, 20); got != ColorRed {
		t.Errorf("pixel (20,20) = %v, want near triangle's %v", got, ColorRed)
	}
	if z := fb.Depth.At(20, 20); z != 0.3 {
		t.Errorf("depth (20,20) = %v, want 0.3", z)
	}
}

func TestInterpolateX(t *testing.T) {
	tests := []struct {
		name     string
		y        int
		vs       []ScreenVertex
		expected int
	}{
		{"vertical edge", 5, []ScreenVertex{{X: 3, Y: 0}, {X: 3, Y: 10}}, 3},
		{"slanted edge midpoint", 5, []ScreenVertex{{X: 0, Y: 0}, {X: 10, Y: 10}}, 5},
		{"horizontal segment returns start x", 4, []ScreenVertex{{X: 2, Y: 4}, {X: 9, Y: 4}}, 2},
		{"chain first segment", 2, []ScreenVertex{{X: 0, Y: 0}, {X: 8, Y: 4}, {X: 0, Y: 8}}, 4},
		{"chain second segment", 6, []ScreenVertex{{X: 0, Y: 0}, {X: 8, Y: 4}, {X: 0, Y: 8}}, 4},
		{"shared vertex takes lower segment", 4, []ScreenVertex{{X: 0, Y: 0}, {X: 8, Y: 4}, {X: 0, Y: 8}}, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := interpolateX(tc.y, tc.vs...); got != tc.expected {
				t.Errorf("interpolateX(%d) = %d, want %d", tc.y, got, tc.expected)
			}
		})
	}
}

func BenchmarkScanlineTriangle(b *testing.B) {
	fb := NewFramebuffer(256, 256)
	fb.Clear(ColorBlack)
	var ras ScanlineRasterizer
	ta := ScreenVertex{X: 10, Y: 10, Z: 0.5, Color: math3d.V3(1, 0, 0)}
	tb := ScreenVertex{X: 240, Y: 30, Z: 0.5, Color: math3d.V3(0, 1, 0)}
	tc := ScreenVertex{X: 50, Y: 230, Z: 0.5, Color: math3d.V3(0, 0, 1)}

	for b.Loop() {
		fb.Clear(ColorBlack)
		ras.DrawTriangle(fb, ta, tb, tc)
	}
}
