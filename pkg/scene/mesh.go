// Package scene provides geometry containers and model loading for the
// software renderer.
package scene

import (
	"github.com/zhvrnkov/software-renderer/pkg/math3d"
	"github.com/zhvrnkov/software-renderer/pkg/render"
)

// Mesh is an indexed set of colored vertices ready for rasterization.
type Mesh struct {
	Name     string
	Vertices []render.Vertex
	Indices  []uint32
	Kind     render.PrimitiveKind

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty triangle mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name: name,
		Kind: render.Triangles,
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// PrimitiveCount returns the number of complete primitives in the index
// stream.
func (m *Mesh) PrimitiveCount() int {
	n := m.Kind.VertexCount()
	if n == 0 {
		return 0
	}
	return len(m.Indices) / n
}

// Transform applies a transformation matrix to all vertex positions and
// recomputes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// FitUnit returns the transform that centers the mesh at the origin and
// scales its largest dimension to the given size. Identity for an empty
// or flat mesh.
func (m *Mesh) FitUnit(size float64) math3d.Mat4 {
	s := m.Size()
	maxDim := max(s.X, max(s.Y, s.Z))
	if maxDim <= 0 {
		return math3d.Identity()
	}
	return math3d.ScaleUniform(size / maxDim).Mul(math3d.Translate(m.Center().Negate()))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]render.Vertex, len(m.Vertices)),
		Indices:   make([]uint32, len(m.Indices)),
		Kind:      m.Kind,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Indices, m.Indices)
	return clone
}

// Edges derives a line mesh from a triangle mesh, one segment per unique
// triangle edge. Returns a clone unchanged for non-triangle meshes.
func (m *Mesh) Edges() *Mesh {
	if m.Kind != render.Triangles {
		return m.Clone()
	}

	type edge struct{ a, b uint32 }
	seen := make(map[edge]bool, len(m.Indices))
	out := &Mesh{
		Name:      m.Name,
		Vertices:  m.Vertices,
		Kind:      render.Lines,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}

	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		e := edge{a, b}
		if seen[e] {
			return
		}
		seen[e] = true
		out.Indices = append(out.Indices, a, b)
	}

	for i := 0; i+3 <= len(m.Indices); i += 3 {
		add(m.Indices[i], m.Indices[i+1])
		add(m.Indices[i+1], m.Indices[i+2])
		add(m.Indices[i+2], m.Indices[i])
	}
	return out
}
