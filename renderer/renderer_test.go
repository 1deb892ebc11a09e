package renderer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/core"
	"ecoscene/math"
	"ecoscene/renderer"
	"ecoscene/scene"
)

type fakeBackend struct {
	viewports [][2]int
	frames    []*renderer.Frame
	err       error
	destroyed int
}

func (b *fakeBackend) SetViewport(w, h int) { b.viewports = append(b.viewports, [2]int{w, h}) }
func (b *fakeBackend) Destroy()             { b.destroyed++ }
func (b *fakeBackend) Draw(f *renderer.Frame) error {
	if b.err != nil {
		return b.err
	}
	b.frames = append(b.frames, f)
	return nil
}

func newScene() (*scene.Scene, *scene.Camera) {
	s := scene.NewScene()
	s.AddLight(&scene.Light{Type: scene.LightAmbient, Color: core.ColorWhite, Intensity: 0.5})
	s.AddLight(&scene.Light{
		Type: scene.LightDirectional, Position: math.NewVec3(50, 80, 50), Color: core.ColorWhite,
		Intensity: 0.8, CastShadow: true,
		Shadow: scene.ShadowCamera{MapSize: 2048, Left: -150, Right: 150, Top: 150, Bottom: -150, Near: 0.5, Far: 200, Bias: -0.0005},
	})
	s.AddLight(&scene.Light{Type: scene.LightHemisphere, Color: core.ColorWhite, GroundColor: core.ColorHex(0x8d6e63), Intensity: 0.8})
	cam := scene.NewCamera(math.Radians(45), 1, 0.1, 1000)
	cam.SetPosition(math.NewVec3(0, 60, 120))
	return s, cam
}

func meshNode(name string, hex uint32) *scene.Node {
	return scene.NewMeshNode(name, scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), scene.NewStandardMaterial(hex, 1, 0)))
}

func TestRender(t *testing.T) {
	s, cam := newScene()
	casting := meshNode("casting", 0xff0000)
	receiving := meshNode("receiving", 0x00ff00)
	receiving.CastShadow = false
	hidden := meshNode("hidden", 0x0000ff)
	hidden.Visible = false
	glass := meshNode("glass", 0xffffff)
	glass.Mesh.Material.Transparent = true
	late := meshNode("late", 0xffffff)
	late.RenderOrder = 1000
	for _, n := range []*scene.Node{late, casting, receiving, hidden, glass} {
		s.AddNode(n)
	}

	b := &fakeBackend{}
	r := renderer.New(b)
	r.Render(s, cam)
	require.Len(t, b.frames, 1)
	f := b.frames[0]

	t.Run("should split opaque and blended draws", func(t *testing.T) {
		assert.Len(t, f.Opaque, 3)
		assert.Len(t, f.Blended, 1)
		assert.Same(t, late.Mesh.Material, f.Opaque[2].Material, "render order")
	})
	t.Run("should collect shadow casters", func(t *testing.T) {
		assert.False(t, f.Shadow.Disabled)
		assert.Equal(t, 2048, f.Shadow.MapSize)
		assert.Len(t, f.Shadow.Casters, 3)
	})
	t.Run("should reduce lights", func(t *testing.T) {
		assert.InDelta(t, 0.5, f.Lighting.Ambient.R, 1e-6)
		require.Len(t, f.Lighting.Directional, 1)
		assert.InDelta(t, 0.8, f.Lighting.Directional[0].Color.G, 1e-6)
		assert.Less(t, f.Lighting.Directional[0].Direction.Y, float32(0))
		assert.InDelta(t, 0.8, f.Lighting.Sky.B, 1e-6)
	})
	t.Run("should clear to the scene background", func(t *testing.T) {
		assert.Equal(t, s.Background, f.Clear)
	})
	t.Run("should count stats", func(t *testing.T) {
		st := r.Stats()
		assert.Equal(t, uint64(1), st.Frames)
		assert.Equal(t, 4, st.Objects)
		assert.Equal(t, 4*12, st.Triangles)
	})
}

func TestRenderSkipsDisposed(t *testing.T) {
	s, cam := newScene()
	n := meshNode("gone", 0xffffff)
	s.AddNode(n)
	n.Mesh.Dispose()

	b := &fakeBackend{}
	renderer.New(b).Render(s, cam)
	assert.Empty(t, b.frames[0].Opaque)
}

func TestRenderWithoutShadows(t *testing.T) {
	s, cam := newScene()
	s.AddNode(meshNode("box", 0xffffff))
	b := &fakeBackend{}
	renderer.New(b, renderer.WithShadows(false)).Render(s, cam)
	f := b.frames[0]
	assert.True(t, f.Shadow.Disabled)
	assert.Empty(t, f.Shadow.Casters)
	assert.False(t, f.Opaque[0].ReceiveShadow)
}

func TestViewport(t *testing.T) {
	b := &fakeBackend{}
	r := renderer.New(b)
	r.SetPixelRatio(2)
	assert.Empty(t, b.viewports, "no size yet")
	r.SetSize(800, 600)
	r.SetSize(0, 600)
	assert.Equal(t, [][2]int{{1600, 1200}}, b.viewports)
	r.SetPixelRatio(0)
	w, h := r.DrawingBufferSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestRenderErrorAndDispose(t *testing.T) {
	s, cam := newScene()
	b := &fakeBackend{err: errors.New("lost context")}
	r := renderer.New(b)
	r.Render(s, cam)
	assert.Zero(t, r.Stats().Frames)

	r.Dispose()
	r.Dispose()
	assert.Equal(t, 1, b.destroyed)
	b.err = nil
	r.Render(s, cam)
	assert.Empty(t, b.frames)
	r.SetClearColor(core.ColorBlack)
	assert.Equal(t, core.ColorBlack, r.ClearColor())
}
