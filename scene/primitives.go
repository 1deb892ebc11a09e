package scene

import (
	"ecoscene/core"
	"ecoscene/math"
)

// All generators produce geometry centered on the origin with +Y up, using the
// same parameter conventions as common web 3D toolkits so recipes translate
// directly. Flat shapes (plane, circle, ring) lie in the XY plane facing +Z.

type geometryBuilder struct {
	vertices []core.Vertex
	indices  []uint32
}

func (b *geometryBuilder) vertex(p, n math.Vec3, u, v float32) uint32 {
	b.vertices = append(b.vertices, core.Vertex{
		Position: p,
		Normal:   n,
		UV:       math.Vec2{X: u, Y: v},
		Color:    core.ColorWhite,
	})
	return uint32(len(b.vertices) - 1)
}

func (b *geometryBuilder) tri(i0, i1, i2 uint32) {
	b.indices = append(b.indices, i0, i1, i2)
}

func (b *geometryBuilder) quad(i0, i1, i2, i3 uint32) {
	b.tri(i0, i1, i2)
	b.tri(i0, i2, i3)
}

func (b *geometryBuilder) build(name string) *Geometry {
	return NewGeometry(name, b.vertices, b.indices)
}

// ── Box ───────────────────────────────────────────────────────────────────────

func NewBoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	faces := []struct {
		n, u, v math.Vec3
		h       float32
		hu, hv  float32
	}{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}, hx, hz, hy},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}, hx, hz, hy},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}, hy, hx, hz},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}, hy, hx, hz},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}, hz, hx, hy},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}, hz, hx, hy},
	}
	var b geometryBuilder
	for _, f := range faces {
		c := f.n.Mul(f.h)
		u := f.u.Mul(f.hu)
		v := f.v.Mul(f.hv)
		i0 := b.vertex(c.Sub(u).Sub(v), f.n, 0, 0)
		i1 := b.vertex(c.Add(u).Sub(v), f.n, 1, 0)
		i2 := b.vertex(c.Add(u).Add(v), f.n, 1, 1)
		i3 := b.vertex(c.Sub(u).Add(v), f.n, 0, 1)
		b.quad(i0, i1, i2, i3)
	}
	return b.build("Box")
}

// ── Surfaces of revolution ───────────────────────────────────────────────────

// ring is one latitude of a lathe: radius r at height y, with the normal's
// radial and vertical components.
type ring struct {
	r, y   float32
	nr, ny float32
}

// lathe sweeps the rings, ordered top to bottom, around the Y axis.
func (b *geometryBuilder) lathe(rings []ring, segments int) {
	base := uint32(len(b.vertices))
	for i, rg := range rings {
		for j := 0; j <= segments; j++ {
			phi := float32(j) / float32(segments) * math.Tau
			s, c := math.Sin(phi), math.Cos(phi)
			p := math.Vec3{X: rg.r * s, Y: rg.y, Z: rg.r * c}
			n := math.Vec3{X: rg.nr * s, Y: rg.ny, Z: rg.nr * c}.Normalize()
			b.vertex(p, n, float32(j)/float32(segments), 1-float32(i)/float32(len(rings)-1))
		}
	}
	stride := uint32(segments + 1)
	for i := 0; i < len(rings)-1; i++ {
		for j := 0; j < segments; j++ {
			a := base + uint32(i)*stride + uint32(j)
			c := a + stride
			b.tri(a, c, a+1)
			b.tri(a+1, c, c+1)
		}
	}
}

// disc adds a flat cap at height y; up selects the +Y facing side.
func (b *geometryBuilder) disc(radius, y float32, segments int, up bool) {
	n := math.Vec3{Y: -1}
	if up {
		n = math.Vec3{Y: 1}
	}
	center := b.vertex(math.Vec3{Y: y}, n, 0.5, 0.5)
	first := uint32(len(b.vertices))
	for j := 0; j <= segments; j++ {
		phi := float32(j) / float32(segments) * math.Tau
		s, c := math.Sin(phi), math.Cos(phi)
		b.vertex(math.Vec3{X: radius * s, Y: y, Z: radius * c}, n, 0.5+0.5*s, 0.5+0.5*c)
	}
	for j := uint32(0); j < uint32(segments); j++ {
		if up {
			b.tri(center, first+j, first+j+1)
		} else {
			b.tri(center, first+j+1, first+j)
		}
	}
}

// NewSphereGeometry builds a full UV sphere.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	return NewSphereSegmentGeometry(radius, widthSegments, heightSegments, 0, math.Pi)
}

// NewSphereSegmentGeometry sweeps the polar angle from thetaStart over
// thetaLength radians (0 is the north pole). thetaLength π/2 is a dome.
func NewSphereSegmentGeometry(radius float32, widthSegments, heightSegments int, thetaStart, thetaLength float32) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	rings := make([]ring, heightSegments+1)
	for i := range rings {
		theta := thetaStart + float32(i)/float32(heightSegments)*thetaLength
		s, c := math.Sin(theta), math.Cos(theta)
		rings[i] = ring{r: radius * s, y: radius * c, nr: s, ny: c}
	}
	var b geometryBuilder
	b.lathe(rings, widthSegments)
	return b.build("Sphere")
}

// NewCylinderGeometry builds a closed, optionally tapered cylinder.
func NewCylinderGeometry(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	h := height / 2
	slope := (radiusBottom - radiusTop) / height
	var b geometryBuilder
	b.lathe([]ring{
		{r: radiusTop, y: h, nr: 1, ny: slope},
		{r: radiusBottom, y: -h, nr: 1, ny: slope},
	}, radialSegments)
	if radiusTop > 0 {
		b.disc(radiusTop, h, radialSegments, true)
	}
	if radiusBottom > 0 {
		b.disc(radiusBottom, -h, radialSegments, false)
	}
	return b.build("Cylinder")
}

func NewConeGeometry(radius, height float32, radialSegments int) *Geometry {
	g := NewCylinderGeometry(0, radius, height, radialSegments)
	g.Name = "Cone"
	return g
}

// NewCapsuleGeometry builds a cylinder of the given length capped by two
// hemispheres of radius; total height is length + 2*radius.
func NewCapsuleGeometry(radius, length float32, capSegments, radialSegments int) *Geometry {
	capSegments = max(capSegments, 1)
	radialSegments = max(radialSegments, 3)
	h := length / 2
	rings := make([]ring, 0, 2*(capSegments+1))
	for i := 0; i <= capSegments; i++ {
		theta := float32(i) / float32(capSegments) * math.Pi / 2
		s, c := math.Sin(theta), math.Cos(theta)
		rings = append(rings, ring{r: radius * s, y: h + radius*c, nr: s, ny: c})
	}
	for i := 0; i <= capSegments; i++ {
		theta := math.Pi/2 + float32(i)/float32(capSegments)*math.Pi/2
		s, c := math.Sin(theta), math.Cos(theta)
		rings = append(rings, ring{r: radius * s, y: -h + radius*c, nr: s, ny: c})
	}
	var b geometryBuilder
	b.lathe(rings, radialSegments)
	return b.build("Capsule")
}

// ── Flat shapes ──────────────────────────────────────────────────────────────

func NewPlaneGeometry(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	n := math.Vec3{Z: 1}
	var b geometryBuilder
	i0 := b.vertex(math.Vec3{X: -hw, Y: -hh}, n, 0, 0)
	i1 := b.vertex(math.Vec3{X: hw, Y: -hh}, n, 1, 0)
	i2 := b.vertex(math.Vec3{X: hw, Y: hh}, n, 1, 1)
	i3 := b.vertex(math.Vec3{X: -hw, Y: hh}, n, 0, 1)
	b.quad(i0, i1, i2, i3)
	return b.build("Plane")
}

func NewCircleGeometry(radius float32, segments int) *Geometry {
	return NewRingGeometry(0, radius, segments)
}

// NewRingGeometry builds an annulus; innerRadius 0 gives a filled circle.
func NewRingGeometry(innerRadius, outerRadius float32, segments int) *Geometry {
	segments = max(segments, 3)
	n := math.Vec3{Z: 1}
	var b geometryBuilder
	if innerRadius <= 0 {
		center := b.vertex(math.Vec3Zero, n, 0.5, 0.5)
		for j := 0; j <= segments; j++ {
			phi := float32(j) / float32(segments) * math.Tau
			c, s := math.Cos(phi), math.Sin(phi)
			b.vertex(math.Vec3{X: outerRadius * c, Y: outerRadius * s}, n, 0.5+0.5*c, 0.5+0.5*s)
		}
		for j := uint32(1); j <= uint32(segments); j++ {
			b.tri(center, j, j+1)
		}
		return b.build("Circle")
	}
	for j := 0; j <= segments; j++ {
		phi := float32(j) / float32(segments) * math.Tau
		c, s := math.Cos(phi), math.Sin(phi)
		k := innerRadius / outerRadius
		b.vertex(math.Vec3{X: innerRadius * c, Y: innerRadius * s}, n, 0.5+0.5*k*c, 0.5+0.5*k*s)
		b.vertex(math.Vec3{X: outerRadius * c, Y: outerRadius * s}, n, 0.5+0.5*c, 0.5+0.5*s)
	}
	for j := uint32(0); j < uint32(segments); j++ {
		in0, out0 := 2*j, 2*j+1
		in1, out1 := 2*j+2, 2*j+3
		b.quad(in0, out0, out1, in1)
	}
	return b.build("Ring")
}

// ── Polyhedra ────────────────────────────────────────────────────────────────

var goldenRatio = (1 + math.Sqrt(5)) / 2

var icosahedronVertices = []math.Vec3{
	{X: -1, Y: goldenRatio}, {X: 1, Y: goldenRatio}, {X: -1, Y: -goldenRatio}, {X: 1, Y: -goldenRatio},
	{Y: -1, Z: goldenRatio}, {Y: 1, Z: goldenRatio}, {Y: -1, Z: -goldenRatio}, {Y: 1, Z: -goldenRatio},
	{X: goldenRatio, Z: -1}, {X: goldenRatio, Z: 1}, {X: -goldenRatio, Z: -1}, {X: -goldenRatio, Z: 1},
}

var icosahedronFaces = []uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

var dodecahedronVertices = func() []math.Vec3 {
	t, r := goldenRatio, 1/goldenRatio
	return []math.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1},
		{Y: -r, Z: -t}, {Y: -r, Z: t}, {Y: r, Z: -t}, {Y: r, Z: t},
		{X: -r, Y: -t}, {X: -r, Y: t}, {X: r, Y: -t}, {X: r, Y: t},
		{X: -t, Z: -r}, {X: t, Z: -r}, {X: -t, Z: r}, {X: t, Z: r},
	}
}()

var dodecahedronFaces = []uint32{
	3, 11, 7, 3, 7, 15, 3, 15, 13,
	7, 19, 17, 7, 17, 6, 7, 6, 15,
	17, 4, 8, 17, 8, 10, 17, 10, 6,
	8, 0, 16, 8, 16, 2, 8, 2, 10,
	0, 12, 1, 0, 1, 18, 0, 18, 16,
	6, 10, 2, 6, 2, 13, 6, 13, 15,
	2, 16, 18, 2, 18, 3, 2, 3, 13,
	18, 1, 9, 18, 9, 11, 18, 11, 3,
	4, 14, 12, 4, 12, 0, 4, 0, 8,
	11, 9, 5, 11, 5, 19, 11, 19, 7,
	19, 5, 14, 19, 14, 4, 19, 4, 17,
	1, 12, 14, 1, 14, 5, 1, 5, 9,
}

// NewIcosahedronGeometry subdivides each face detail times and projects onto
// the sphere. Detail 0 is faceted, higher details shade smoothly.
func NewIcosahedronGeometry(radius float32, detail int) *Geometry {
	g := polyhedron(icosahedronVertices, icosahedronFaces, radius, detail)
	g.Name = "Icosahedron"
	return g
}

func NewDodecahedronGeometry(radius float32, detail int) *Geometry {
	g := polyhedron(dodecahedronVertices, dodecahedronFaces, radius, detail)
	g.Name = "Dodecahedron"
	return g
}

func polyhedron(verts []math.Vec3, faces []uint32, radius float32, detail int) *Geometry {
	detail = max(detail, 0)
	var b geometryBuilder
	emit := func(a, c, d math.Vec3) {
		a = a.Normalize().Mul(radius)
		c = c.Normalize().Mul(radius)
		d = d.Normalize().Mul(radius)
		n := c.Sub(a).Cross(d.Sub(a)).Normalize()
		centroid := a.Add(c).Add(d)
		if n.Dot(centroid) < 0 {
			c, d = d, c
			n = n.Negate()
		}
		na, nc, nd := n, n, n
		if detail > 0 {
			na, nc, nd = a.Normalize(), c.Normalize(), d.Normalize()
		}
		i0 := b.vertex(a, na, 0, 0)
		i1 := b.vertex(c, nc, 1, 0)
		i2 := b.vertex(d, nd, 0.5, 1)
		b.tri(i0, i1, i2)
	}
	cols := detail + 1
	for f := 0; f+2 < len(faces); f += 3 {
		a, bv, c := verts[faces[f]], verts[faces[f+1]], verts[faces[f+2]]
		// grid[i][j] spans from edge a-b toward apex c
		grid := make([][]math.Vec3, cols+1)
		for i := 0; i <= cols; i++ {
			ai := a.Lerp(c, float32(i)/float32(cols))
			bi := bv.Lerp(c, float32(i)/float32(cols))
			rows := cols - i
			grid[i] = make([]math.Vec3, rows+1)
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i][j] = ai
				} else {
					grid[i][j] = ai.Lerp(bi, float32(j)/float32(rows))
				}
			}
		}
		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					emit(grid[i][k+1], grid[i+1][k], grid[i][k])
				} else {
					emit(grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
				}
			}
		}
	}
	return b.build("Polyhedron")
}
