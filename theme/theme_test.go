package theme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoscene/core"
	"ecoscene/math"
	"ecoscene/scene"
	"ecoscene/theme"
)

type fakeRenderer struct {
	clear core.Color
	calls int
}

func (r *fakeRenderer) SetClearColor(c core.Color) {
	r.clear = c
	r.calls++
}

func newTargets() (theme.Targets, *fakeRenderer, map[string]*scene.Light) {
	s := scene.NewScene()
	lights := map[string]*scene.Light{
		"ambient": {Type: scene.LightAmbient},
		"sun":     {Type: scene.LightDirectional, Position: math.NewVec3(50, 80, 50)},
		"fill":    {Type: scene.LightDirectional, Position: math.NewVec3(-40, 30, -40)},
		"hemi":    {Type: scene.LightHemisphere},
	}
	for _, name := range []string{"ambient", "sun", "fill", "hemi"} {
		s.AddLight(lights[name])
	}
	r := &fakeRenderer{}
	orb := scene.NewNode("orb")
	orb.Visible = false
	return theme.Targets{
		Scene:    s,
		Renderer: r,
		Ground:   scene.NewStandardMaterial(0, 1, 0),
		Grass:    scene.NewStandardMaterial(0, 1, 0),
		FocusOrb: orb,
	}, r, lights
}

func TestColorsFor(t *testing.T) {
	assert.Equal(t, uint32(theme.LightBackground), theme.ColorsFor("light").Background)
	assert.Equal(t, uint32(theme.DarkBackground), theme.ColorsFor("dark").Background)
	assert.Equal(t, uint32(theme.DarkBackground), theme.ColorsFor("forest-dark").Background)
	assert.Equal(t, uint32(theme.LightBackground), theme.ColorsFor("").Background)
	assert.Equal(t, uint32(theme.Grass), theme.ColorsFor("dark").Grass)

	t.Run("should pair the neutral backdrop with the theme", func(t *testing.T) {
		assert.Equal(t, uint32(theme.LightBackground), theme.ColorsFor("light").NeutralBackground)
		assert.Equal(t, uint32(theme.DarkBackground), theme.ColorsFor("forest-dark").NeutralBackground)
	})
}

func TestUpdateTheme(t *testing.T) {
	t.Run("should apply the day palette", func(t *testing.T) {
		targets, r, lights := newTargets()
		c := theme.NewController(targets, nil)
		c.UpdateTheme("light", false, false)

		assert.Equal(t, uint32(theme.LightBackground), targets.Scene.Background.Hex())
		assert.Equal(t, uint32(theme.LightBackground), r.clear.Hex())
		assert.Equal(t, uint32(theme.Ground), targets.Ground.Color.Hex())
		assert.Equal(t, uint32(theme.Grass), targets.Grass.Color.Hex())
		assert.InDelta(t, 0.6, lights["ambient"].Intensity, 1e-6)
		assert.InDelta(t, 1.0, lights["sun"].Intensity, 1e-6)
		assert.InDelta(t, 0.8, lights["fill"].Intensity, 1e-6)
		assert.InDelta(t, 0.8, lights["hemi"].Intensity, 1e-6)
		assert.Equal(t, uint32(0x8d6e63), lights["hemi"].GroundColor.Hex())
		assert.False(t, targets.FocusOrb.Visible)
	})
	t.Run("should apply the night palette", func(t *testing.T) {
		targets, _, lights := newTargets()
		c := theme.NewController(targets, nil)
		c.UpdateTheme("dark", false, false)

		assert.Equal(t, uint32(theme.DarkBackground), targets.Scene.Background.Hex())
		assert.Equal(t, uint32(0x444466), lights["ambient"].Color.Hex())
		assert.Equal(t, uint32(0x666688), lights["sun"].Color.Hex())
		assert.InDelta(t, 0.5, lights["sun"].Intensity, 1e-6)
		assert.Equal(t, uint32(0x444455), lights["fill"].Color.Hex())
		assert.Equal(t, uint32(0x222244), lights["hemi"].Color.Hex())
		assert.Equal(t, uint32(0x111122), lights["hemi"].GroundColor.Hex())
		assert.True(t, c.State().Night)
	})
	t.Run("should use the focus background only while not paused", func(t *testing.T) {
		targets, _, _ := newTargets()
		c := theme.NewController(targets, nil)

		c.UpdateTheme("light", true, false)
		assert.Equal(t, uint32(theme.FocusBackground), c.State().Background)
		assert.True(t, targets.FocusOrb.Visible)

		c.UpdateTheme("light", true, true)
		assert.Equal(t, uint32(theme.LightBackground), c.State().Background)
		assert.False(t, targets.FocusOrb.Visible)
	})
	t.Run("should be idempotent and never add lights", func(t *testing.T) {
		targets, _, _ := newTargets()
		c := theme.NewController(targets, nil)
		c.UpdateTheme("dark", false, false)
		first := c.State()
		c.UpdateTheme("dark", false, false)
		assert.Equal(t, first, c.State())
		assert.Len(t, targets.Scene.Lights, 4)
	})
	t.Run("should tolerate missing targets", func(t *testing.T) {
		c := theme.NewController(theme.Targets{}, nil)
		assert.NotPanics(t, func() { c.UpdateTheme("dark", true, false) })
	})
}
