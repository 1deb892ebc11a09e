package scene

import (
	"ecoscene/core"
	"ecoscene/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Geometry holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend, which attaches a release
// hook so Dispose can free the buffers it created.
type Geometry struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	Bounds   AABB

	// GPUData is set by the renderer backend.
	GPUData any

	release  func()
	disposed bool
}

// NewGeometry builds a Geometry and pre-computes its bounds.
func NewGeometry(name string, vertices []core.Vertex, indices []uint32) *Geometry {
	g := &Geometry{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		g.Bounds = computeBounds(vertices)
	}
	return g
}

func computeBounds(vertices []core.Vertex) AABB {
	lo, hi := vertices[0].Position, vertices[0].Position
	for _, v := range vertices[1:] {
		p := v.Position
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	return AABB{Min: lo, Max: hi}
}

// SetReleaser installs the hook run once on Dispose.
func (g *Geometry) SetReleaser(fn func()) {
	g.release = fn
}

// Dispose frees GPU buffers attached to the geometry. Safe to call repeatedly.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	if g.release != nil {
		g.release()
		g.release = nil
	}
	g.GPUData = nil
}

func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Mesh pairs a geometry with a material. Both may be shared between meshes.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}

func NewMesh(geometry *Geometry, material *Material) *Mesh {
	return &Mesh{Geometry: geometry, Material: material}
}

// Dispose releases the geometry and the material.
func (m *Mesh) Dispose() {
	if m.Geometry != nil {
		m.Geometry.Dispose()
	}
	if m.Material != nil {
		m.Material.Dispose()
	}
}

// DisposeTree disposes every geometry and material reachable from root and
// returns how many meshes it visited.
func DisposeTree(root *Node) int {
	if root == nil {
		return 0
	}
	count := 0
	root.Traverse(func(n *Node) {
		if n.Mesh != nil {
			n.Mesh.Dispose()
			count++
		}
	})
	return count
}
