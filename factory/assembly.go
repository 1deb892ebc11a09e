package factory

import (
	"math/rand"

	"ecoscene/math"
	"ecoscene/scene"
)

// assembly accumulates meshes under one group node while a recipe runs.
type assembly struct {
	root *scene.Node
	rng  *rand.Rand
}

// part adds a shadow-casting mesh at the given local position.
func (a *assembly) part(name string, geo *scene.Geometry, mat *scene.Material, x, y, z float32) *scene.Node {
	n := scene.NewMeshNode(name, scene.NewMesh(geo, mat))
	n.SetPosition(math.NewVec3(x, y, z))
	a.root.AddChild(n)
	return n
}

// sub starts a nested group at the given offset.
func (a *assembly) sub(name string, x, y, z float32) *assembly {
	g := scene.NewNode(name)
	g.SetPosition(math.NewVec3(x, y, z))
	a.root.AddChild(g)
	return &assembly{root: g, rng: a.rng}
}

// jitter is uniform in [-span/2, span/2).
func (a *assembly) jitter(span float32) float32 {
	return (a.rng.Float32() - 0.5) * span
}

// between is uniform in [lo, hi).
func (a *assembly) between(lo, hi float32) float32 {
	return lo + a.rng.Float32()*(hi-lo)
}

// angle is uniform in [0, maxAngle).
func (a *assembly) angle(maxAngle float32) float32 {
	return a.rng.Float32() * maxAngle
}

// ring returns the position of the i-th of n points spaced evenly on a circle.
func ring(i, n int, radius float32) (x, z, angle float32) {
	angle = float32(i) / float32(n) * math.Tau
	return math.Cos(angle) * radius, math.Sin(angle) * radius, angle
}

func mat(hex uint32, roughness, metalness float32) *scene.Material {
	return scene.NewStandardMaterial(hex, roughness, metalness)
}

func doubleSided(m *scene.Material) *scene.Material {
	m.DoubleSide = true
	return m
}

func glowing(m *scene.Material, hex uint32) *scene.Material {
	m.SetEmissive(hex)
	return m
}

func cyl(radiusTop, radiusBottom, height float32, segments int) *scene.Geometry {
	return scene.NewCylinderGeometry(radiusTop, radiusBottom, height, segments)
}

func cone(radius, height float32, segments int) *scene.Geometry {
	return scene.NewConeGeometry(radius, height, segments)
}

func sphere(radius float32, w, h int) *scene.Geometry {
	return scene.NewSphereGeometry(radius, w, h)
}

func dome(radius float32, w, h int) *scene.Geometry {
	return scene.NewSphereSegmentGeometry(radius, w, h, 0, math.Pi/2)
}

func box(w, h, d float32) *scene.Geometry {
	return scene.NewBoxGeometry(w, h, d)
}

func capsule(radius, length float32) *scene.Geometry {
	return scene.NewCapsuleGeometry(radius, length, 4, 8)
}

func ico(radius float32, detail int) *scene.Geometry {
	return scene.NewIcosahedronGeometry(radius, detail)
}

func plane(w, h float32) *scene.Geometry {
	return scene.NewPlaneGeometry(w, h)
}
