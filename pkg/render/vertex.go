package render

import (
	"errors"
	"math"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
)

// ErrDegenerateW reports a vertex whose transform produced w = 0; the
// perspective divide is undefined and the vertex is discarded.
var ErrDegenerateW = errors.New("render: vertex transform produced w = 0")

// Vertex is a point of the scene with a position and an RGB color
// attribute in [0, 1] per channel. After the vertex stage the position is
// in normalized device coordinates: x/y in [-1, 1], z in [0, 1].
//
// Vertices are immutable values; transforms derive new vertices rather
// than mutating in place.
type Vertex struct {
	Position math3d.Vec3
	Color    math3d.Vec3
}

// TransformVertex applies a 4x4 homogeneous transform to the vertex
// position and performs the perspective divide back to normalized device
// coordinates. The color attribute passes through unchanged.
//
// Returns ErrDegenerateW when the transformed w is zero; callers must
// discard the vertex (and any primitive referencing it).
func TransformVertex(v Vertex, m math3d.Mat4) (Vertex, error) {
	clip := m.MulVec4(math3d.V4FromV3(v.Position, 1))
	if clip.W == 0 {
		return Vertex{}, ErrDegenerateW
	}
	return Vertex{
		Position: clip.PerspectiveDivide(),
		Color:    v.Color,
	}, nil
}

// ScreenVertex is a vertex mapped to integer pixel coordinates with its
// depth retained. Derived per draw call, never persisted.
type ScreenVertex struct {
	X, Y  int
	Z     float64
	Color math3d.Vec3
}

// ToScreen maps the vertex from normalized device coordinates to pixel
// coordinates. NDC x/y in [-1, 1] map to [0, width] and [0, height], with
// y flipped because pixel y grows downward while NDC y grows upward.
// Coordinates round to the nearest integer, ties away from zero.
func (v Vertex) ToScreen(width, height int) ScreenVertex {
	sx := (v.Position.X + 1) * 0.5 * float64(width)
	sy := (1 - v.Position.Y) * 0.5 * float64(height) // Y flipped
	return ScreenVertex{
		X:     int(math.Round(sx)),
		Y:     int(math.Round(sy)),
		Z:     v.Position.Z,
		Color: v.Color,
	}
}

// point returns the vertex position as a 2D screen point.
func (v ScreenVertex) point() math3d.Vec2 {
	return math3d.V2(float64(v.X), float64(v.Y))
}
