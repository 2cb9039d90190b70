package render

// ROI is the axis-aligned screen-space bounding rectangle of a primitive.
// It is the unit of parallel work: pixels inside one primitive's ROI can
// be processed independently of every other primitive. An ROI lives for
// exactly one primitive's rasterization pass.
type ROI struct {
	X, Y          int
	Width, Height int
}

// ComputeROI returns the bounding rectangle of the given screen vertices,
// inclusive of the extreme pixels. The zero ROI is returned for an empty
// vertex list.
func ComputeROI(vs ...ScreenVertex) ROI {
	if len(vs) == 0 {
		return ROI{}
	}
	minX, maxX := vs[0].X, vs[0].X
	minY, maxY := vs[0].Y, vs[0].Y
	for _, v := range vs[1:] {
		minX = min(minX, v.X)
		maxX = max(maxX, v.X)
		minY = min(minY, v.Y)
		maxY = max(maxY, v.Y)
	}
	return ROI{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}

// Empty reports whether the ROI covers no pixels; callers skip dispatch
// for empty regions.
func (r ROI) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// clip intersects the ROI with a width x height buffer, so kernels never
// iterate pixels that are guaranteed out of bounds.
func (r ROI) clip(width, height int) ROI {
	x0 := max(r.X, 0)
	y0 := max(r.Y, 0)
	x1 := min(r.X+r.Width, width)
	y1 := min(r.Y+r.Height, height)
	return ROI{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
