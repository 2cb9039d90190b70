package scene

import (
	"github.com/zhvrnkov/software-renderer/pkg/math3d"
	"github.com/zhvrnkov/software-renderer/pkg/render"
)

// Cube builds a unit cube centered at the origin with one color per
// corner, so every face shows a visible gradient.
func Cube() *Mesh {
	m := NewMesh("cube")

	corners := []math3d.Vec3{
		{X: -0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: 0.5},
	}
	for _, p := range corners {
		m.Vertices = append(m.Vertices, render.Vertex{
			Position: p,
			// Corner position mapped into color space.
			Color: p.Add(math3d.V3(0.5, 0.5, 0.5)),
		})
	}

	m.Indices = []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 7, 3, 0, 4, 7, // left
		1, 2, 6, 1, 6, 5, // right
		3, 7, 6, 3, 6, 2, // top
		0, 1, 5, 0, 5, 4, // bottom
	}

	m.CalculateBounds()
	return m
}
