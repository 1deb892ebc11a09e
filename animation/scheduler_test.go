package animation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ecoscene/animation"
	"ecoscene/lod"
	"ecoscene/math"
	"ecoscene/scene"
)

func newCamera() *scene.Camera {
	return scene.NewCamera(math.Radians(45), 1, 0.1, 1000)
}

type fakePopulation struct {
	elapsed []float64
	roots   []*scene.Node
}

func (p *fakePopulation) Animate(elapsed float64) { p.elapsed = append(p.elapsed, elapsed) }
func (p *fakePopulation) Roots() []*scene.Node    { return p.roots }

type fakeControls struct {
	active  bool
	updates int
	timers  int
}

func (c *fakeControls) ProcessTimers(time.Time) { c.timers++ }
func (c *fakeControls) NeedsUpdate() bool       { return c.active }
func (c *fakeControls) Update()                 { c.updates++ }

type fakeRenderer struct{ renders int }

func (r *fakeRenderer) Render(*scene.Scene, *scene.Camera) { r.renders++ }

type panicPopulation struct{}

func (panicPopulation) Animate(float64)        { panic("boom") }
func (panicPopulation) Roots() []*scene.Node { return nil }

func TestFrameThrottle(t *testing.T) {
	pop := &fakePopulation{}
	r := &fakeRenderer{}
	targets := animation.Targets{Population: pop, Renderer: r, Scene: scene.NewScene(), Camera: newCamera()}
	s := animation.NewScheduler(func() animation.Targets { return targets })

	t0 := time.Unix(1000, 0)
	assert.False(t, s.Frame(t0), "not started")

	s.Start()
	assert.True(t, s.Frame(t0))
	assert.False(t, s.Frame(t0.Add(16*time.Millisecond)))
	assert.False(t, s.Frame(t0.Add(49*time.Millisecond)))
	assert.True(t, s.Frame(t0.Add(50*time.Millisecond)))
	assert.True(t, s.Frame(t0.Add(120*time.Millisecond)))

	assert.Equal(t, []float64{0, 0.05, 0.12}, pop.elapsed)
	assert.Equal(t, 3, r.renders)
	assert.Equal(t, uint64(3), s.Ticks())

	s.Stop()
	assert.False(t, s.Frame(t0.Add(time.Second)))
	assert.Equal(t, 3, r.renders)
}

func TestFrameControls(t *testing.T) {
	c := &fakeControls{}
	s := animation.NewScheduler(func() animation.Targets { return animation.Targets{Controls: c} },
		animation.WithInterval(time.Millisecond))
	s.Start()
	now := time.Unix(0, 0)
	s.Frame(now)
	assert.Equal(t, 1, c.timers)
	assert.Zero(t, c.updates)

	c.active = true
	s.Frame(now.Add(time.Second))
	assert.Equal(t, 1, c.updates)
}

func TestFrameAppliesLOD(t *testing.T) {
	part := scene.NewMeshNode("body", scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), scene.NewStandardMaterial(0, 1, 0)))
	root := scene.NewNode("entity")
	root.SetPosition(math.NewVec3(0, 0, 500))
	root.AddChild(part)
	cam := newCamera()
	s := animation.NewScheduler(func() animation.Targets {
		return animation.Targets{Population: &fakePopulation{roots: []*scene.Node{root}}, LOD: lod.NewManager(lod.DefaultDistances()), Camera: cam}
	})
	s.Start()
	s.Frame(time.Now())
	assert.False(t, part.CastShadow)
}

func TestFrameNilTargets(t *testing.T) {
	s := animation.NewScheduler(func() animation.Targets { return animation.Targets{} })
	s.Start()
	assert.NotPanics(t, func() { assert.True(t, s.Frame(time.Now())) })

	nilSource := animation.NewScheduler(nil)
	nilSource.Start()
	assert.False(t, nilSource.Frame(time.Now()))
}

func TestFrameRecoversPanics(t *testing.T) {
	r := &fakeRenderer{}
	s := animation.NewScheduler(func() animation.Targets {
		return animation.Targets{Population: panicPopulation{}, Renderer: r, Scene: scene.NewScene(), Camera: newCamera()}
	})
	s.Start()
	now := time.Now()
	assert.NotPanics(t, func() { s.Frame(now) })
	assert.NotPanics(t, func() { s.Frame(now.Add(time.Second)) })
	assert.Equal(t, uint64(2), s.Ticks())
	assert.Zero(t, r.renders)
}
