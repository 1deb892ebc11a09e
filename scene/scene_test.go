package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/math"
	"ecoscene/scene"
)

func TestNode(t *testing.T) {
	t.Run("should reparent on AddChild", func(t *testing.T) {
		a, b, c := scene.NewNode("a"), scene.NewNode("b"), scene.NewNode("c")
		a.AddChild(c)
		b.AddChild(c)
		assert.Empty(t, a.Children)
		assert.Equal(t, b, c.Parent)
	})
	t.Run("should compose world position through parents", func(t *testing.T) {
		parent := scene.NewNode("parent")
		parent.SetPosition(math.NewVec3(0, 2, 0))
		parent.SetUniformScale(0.5)
		child := scene.NewNode("child")
		child.SetPosition(math.NewVec3(4, 0, 0))
		parent.AddChild(child)
		assert.InDelta(t, 2, child.WorldPosition().X, 1e-5)
		assert.InDelta(t, 2, child.WorldPosition().Y, 1e-5)

		parent.SetPosition(math.NewVec3(10, 0, 0))
		assert.InDelta(t, 12, child.WorldPosition().X, 1e-5)
	})
	t.Run("should detach from parent", func(t *testing.T) {
		p, c := scene.NewNode("p"), scene.NewNode("c")
		p.AddChild(c)
		c.RemoveFromParent()
		assert.Nil(t, c.Parent)
		assert.Empty(t, p.Children)
		c.RemoveFromParent()
	})
	t.Run("should set shadows only on mesh nodes", func(t *testing.T) {
		g := scene.NewNode("g")
		m := scene.NewMeshNode("m", scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), scene.NewStandardMaterial(0xffffff, 1, 0)))
		g.AddChild(m)
		g.SetShadows(true, false)
		assert.True(t, m.CastShadow)
		assert.False(t, m.ReceiveShadow)
		assert.False(t, g.CastShadow)
	})
}

func TestDisposeTree(t *testing.T) {
	t.Run("should release each geometry once even when shared", func(t *testing.T) {
		geo := scene.NewSphereGeometry(1, 8, 8)
		mat := scene.NewStandardMaterial(0xff0000, 0.5, 0)
		released := 0
		geo.SetReleaser(func() { released++ })

		root := scene.NewNode("root")
		root.AddChild(scene.NewMeshNode("a", scene.NewMesh(geo, mat)))
		root.AddChild(scene.NewMeshNode("b", scene.NewMesh(geo, mat)))

		assert.Equal(t, 2, scene.DisposeTree(root))
		assert.Equal(t, 1, released)
		assert.True(t, geo.Disposed())
		assert.True(t, mat.Disposed())

		scene.DisposeTree(root)
		assert.Equal(t, 1, released)
	})
	t.Run("should accept nil root", func(t *testing.T) {
		assert.Zero(t, scene.DisposeTree(nil))
	})
}

func TestVisibleMeshes(t *testing.T) {
	s := scene.NewScene()
	hidden := scene.NewNode("hidden")
	hidden.Visible = false
	hidden.AddChild(scene.NewMeshNode("inner", scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), nil)))
	shown := scene.NewMeshNode("shown", scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), nil))
	s.AddNode(hidden)
	s.AddNode(shown)

	got := s.VisibleMeshes()
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0].Name)
}

func TestPrimitives(t *testing.T) {
	cases := map[string]*scene.Geometry{
		"box":          scene.NewBoxGeometry(1, 2, 3),
		"sphere":       scene.NewSphereGeometry(1, 16, 12),
		"dome":         scene.NewSphereSegmentGeometry(1.2, 16, 16, 0, math.Pi/2),
		"cylinder":     scene.NewCylinderGeometry(0.2, 0.4, 1.2, 8),
		"cone":         scene.NewConeGeometry(1.5, 1.2, 8),
		"capsule":      scene.NewCapsuleGeometry(0.2, 0.3, 4, 8),
		"plane":        scene.NewPlaneGeometry(0.15, 0.15),
		"circle":       scene.NewCircleGeometry(89.5, 32),
		"ring":         scene.NewRingGeometry(0.15, 0.18, 16),
		"icosahedron":  scene.NewIcosahedronGeometry(0.3, 3),
		"dodecahedron": scene.NewDodecahedronGeometry(0.4, 0),
	}
	for name, g := range cases {
		t.Run(name+" should have valid indices and unit normals", func(t *testing.T) {
			require.NotEmpty(t, g.Vertices)
			require.NotEmpty(t, g.Indices)
			assert.Zero(t, len(g.Indices)%3)
			for _, i := range g.Indices {
				require.Less(t, int(i), len(g.Vertices))
			}
			for _, v := range g.Vertices {
				assert.InDelta(t, 1, v.Normal.Length(), 1e-3)
			}
		})
	}

	t.Run("box bounds should match its size", func(t *testing.T) {
		b := cases["box"].Bounds.Size()
		assert.InDelta(t, 1, b.X, 1e-5)
		assert.InDelta(t, 2, b.Y, 1e-5)
		assert.InDelta(t, 3, b.Z, 1e-5)
	})
	t.Run("capsule height should include both caps", func(t *testing.T) {
		assert.InDelta(t, 0.7, cases["capsule"].Bounds.Size().Y, 1e-4)
	})
	t.Run("dome should stay above its equator", func(t *testing.T) {
		assert.InDelta(t, 0, cases["dome"].Bounds.Min.Y, 1e-4)
	})
	t.Run("icosahedron should sit on its sphere", func(t *testing.T) {
		for _, v := range cases["icosahedron"].Vertices {
			assert.InDelta(t, 0.3, v.Position.Length(), 1e-4)
		}
	})
	t.Run("icosahedron detail should multiply faces", func(t *testing.T) {
		assert.Len(t, scene.NewIcosahedronGeometry(1, 0).Indices, 20*3)
		assert.Len(t, scene.NewIcosahedronGeometry(1, 1).Indices, 20*4*3)
	})
	t.Run("dodecahedron should have twelve pentagons", func(t *testing.T) {
		assert.Len(t, cases["dodecahedron"].Indices, 36*3)
	})
}

func TestCamera(t *testing.T) {
	c := scene.NewCamera(math.Radians(45), 2, 0.1, 1000)
	c.UpdateAspectRatio(0, 0)
	assert.Equal(t, float32(2), c.AspectRatio)
	c.UpdateAspectRatio(800, 400)
	assert.Equal(t, float32(2), c.AspectRatio)
	c.UpdateAspectRatio(400, 400)
	assert.Equal(t, float32(1), c.AspectRatio)
}
