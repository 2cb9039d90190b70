package render

import "testing"

func TestComputeROI(t *testing.T) {
	tests := []struct {
		name     string
		vs       []ScreenVertex
		expected ROI
	}{
		{
			"axis triangle",
			[]ScreenVertex{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 10, Y: 50}},
			ROI{X: 10, Y: 10, Width: 41, Height: 41},
		},
		{
			"single pixel",
			[]ScreenVertex{{X: 7, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 3}},
			ROI{X: 7, Y: 3, Width: 1, Height: 1},
		},
		{
			"negative corner",
			[]ScreenVertex{{X: -5, Y: -2}, {X: 3, Y: 4}},
			ROI{X: -5, Y: -2, Width: 9, Height: 7},
		},
		{
			"none",
			nil,
			ROI{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeROI(tc.vs...); got != tc.expected {
				t.Errorf("ComputeROI = %+v, want %+v", got, tc.expected)
			}
		})
	}
}

func TestROIEmptyAndClip(t *testing.T) {
	if !(ROI{}).Empty() {
		t.Error("zero ROI should be empty")
	}
	if (ROI{X: 1, Y: 1, Width: 1, Height: 1}).Empty() {
		t.Error("1x1 ROI should not be empty")
	}

	r := ROI{X: -5, Y: -2, Width: 9, Height: 7}
	clipped := r.clip(6, 4)
	want := ROI{X: 0, Y: 0, Width: 4, Height: 4}
	if clipped != want {
		t.Errorf("clip = %+v, want %+v", clipped, want)
	}

	// Fully off screen clips to an empty region.
	off := ROI{X: 100, Y: 100, Width: 10, Height: 10}.clip(50, 50)
	if !off.Empty() {
		t.Errorf("off-screen clip = %+v, want empty", off)
	}
}
