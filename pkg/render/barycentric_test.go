package render

import (
	"math"
	"testing"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

func TestBarycentricWeights(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(1, 0)
	c := math3d.V2(0, 1)
	solver, ok := NewBarycentricSolver(a, b, c)
	if !ok {
		t.Fatal("solver construction failed for a proper triangle")
	}

	tests := []struct {
		name     string
		px, py   float64
		expected math3d.Vec3
	}{
		{"vertex a", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex b", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex c", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
		{"edge midpoint ab", 0.5, 0, math3d.V3(0.5, 0.5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := solver.Weights(math3d.V2(tc.px, tc.py))

			if math.Abs(w.X-tc.expected.X) > 1e-9 ||
				math.Abs(w.Y-tc.expected.Y) > 1e-9 ||
				math.Abs(w.Z-tc.expected.Z) > 1e-9 {
				t.Errorf("Weights(%v, %v) = %v, want %v", tc.px, tc.py, w, tc.expected)
			}
			if sum := w.X + w.Y + w.Z; math.Abs(sum-1) > 1e-9 {
				t.Errorf("weights sum to %v, want 1", sum)
			}
		})
	}
}

func TestBarycentricInside(t *testing.T) {
	solver, ok := NewBarycentricSolver(math3d.V2(0, 0), math3d.V2(4, 0), math3d.V2(0, 4))
	if !ok {
		t.Fatal("solver construction failed for a proper triangle")
	}

	tests := []struct {
		name   string
		px, py float64
		inside bool
	}{
		{"interior", 1, 1, true},
		{"vertex", 0, 0, true},
		{"edge", 2, 0, true},
		{"hypotenuse", 2, 2, true},
		{"outside left", -1, 1, false},
		{"outside below", 1, -0.5, false},
		{"outside far", 10, 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := solver.Inside(math3d.V2(tc.px, tc.py)); got != tc.inside {
				t.Errorf("Inside(%v, %v) = %v, want %v", tc.px, tc.py, got, tc.inside)
			}
		})
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c math3d.Vec2
	}{
		{"all equal", math3d.V2(3, 3), math3d.V2(3, 3), math3d.V2(3, 3)},
		{"collinear", math3d.V2(0, 0), math3d.V2(1, 1), math3d.V2(2, 2)},
		{"two equal", math3d.V2(0, 0), math3d.V2(0, 0), math3d.V2(5, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := NewBarycentricSolver(tc.a, tc.b, tc.c); ok {
				t.Error("expected solver construction to fail for a degenerate triangle")
			}
		})
	}
}
