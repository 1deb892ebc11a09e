// Package theme maps the host's visual theme onto scene colors and light
// intensities. Lights are mutated in place; the controller never adds any.
package theme

import (
	"log/slog"
	"strings"

	"ecoscene/core"
	"ecoscene/scene"
)

const (
	LightBackground = 0xF5F5F5
	DarkBackground  = 0x1B5E20
	FocusBackground = 0x1A1A2E
	Ground          = 0x8D6E63
	Grass           = 0x4CAF50
)

// sunHeight separates the key light from fill lights: directional lights
// placed above it are treated as the sun.
const sunHeight = 50

// Colors is the palette for one theme. NeutralBackground is the backdrop the
// scene returns to when no focus session is running.
type Colors struct {
	Background        uint32
	Ground            uint32
	Grass             uint32
	NeutralBackground uint32
}

// IsDark reports whether the theme name selects the night palette.
func IsDark(theme string) bool {
	return strings.Contains(theme, "dark")
}

func ColorsFor(theme string) Colors {
	c := Colors{Background: LightBackground, Ground: Ground, Grass: Grass, NeutralBackground: LightBackground}
	if IsDark(theme) {
		c.Background = DarkBackground
		c.NeutralBackground = DarkBackground
	}
	return c
}

// lightBand is the color and intensity of one light role.
type lightBand struct {
	color     uint32
	ground    uint32 // hemisphere only
	intensity float32
}

// palette holds the light state for one side of the day/night split.
type palette struct {
	ambient    lightBand
	sun        lightBand
	fill       lightBand
	hemisphere lightBand
}

var (
	day = palette{
		ambient:    lightBand{color: 0xffffff, intensity: 0.6},
		sun:        lightBand{color: 0xffffff, intensity: 1.0},
		fill:       lightBand{color: 0xffffff, intensity: 0.8},
		hemisphere: lightBand{color: 0xffffff, ground: 0x8d6e63, intensity: 0.8},
	}
	night = palette{
		ambient:    lightBand{color: 0x444466, intensity: 0.3},
		sun:        lightBand{color: 0x666688, intensity: 0.5},
		fill:       lightBand{color: 0x444455, intensity: 0.3},
		hemisphere: lightBand{color: 0x222244, ground: 0x111122, intensity: 0.3},
	}
)

// ClearColorSetter is the part of the renderer the theme drives.
type ClearColorSetter interface {
	SetClearColor(c core.Color)
}

// Targets are the objects a theme change recolors. Any of them may be nil.
type Targets struct {
	Scene    *scene.Scene
	Renderer ClearColorSetter
	Ground   *scene.Material
	Grass    *scene.Material
	FocusOrb *scene.Node
}

// State is a snapshot of the last applied theme.
type State struct {
	Theme      string
	Background uint32
	Night      bool
	OrbVisible bool
}

type Controller struct {
	targets Targets
	state   State
	logger  *slog.Logger
}

func NewController(t Targets, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{targets: t, logger: logger}
}

func (c *Controller) SetTargets(t Targets) { c.targets = t }

func (c *Controller) State() State { return c.state }

// UpdateTheme applies the theme, replacing the background with the focus
// color while a focus session is running.
func (c *Controller) UpdateTheme(theme string, isFocusing, isPaused bool) {
	colors := ColorsFor(theme)
	focused := isFocusing && !isPaused
	bg := colors.NeutralBackground
	if focused {
		bg = FocusBackground
	}
	background := core.ColorHex(bg)

	t := c.targets
	if t.Scene != nil {
		t.Scene.Background = background
	}
	if t.Renderer != nil {
		t.Renderer.SetClearColor(background)
	}
	if t.Ground != nil {
		t.Ground.SetColor(colors.Ground)
	}
	if t.Grass != nil {
		t.Grass.SetColor(colors.Grass)
	}
	if t.FocusOrb != nil {
		t.FocusOrb.Visible = focused
	}

	p := day
	if IsDark(theme) {
		p = night
	}
	if t.Scene != nil {
		t.Scene.EachLight(func(l *scene.Light) { p.apply(l) })
	}

	next := State{Theme: theme, Background: bg, Night: IsDark(theme), OrbVisible: focused}
	if next != c.state {
		c.logger.Debug("theme applied", "theme", theme, "background", bg, "night", next.Night, "focus", focused)
	}
	c.state = next
}

func (p palette) apply(l *scene.Light) {
	var b lightBand
	switch l.Type {
	case scene.LightAmbient:
		b = p.ambient
	case scene.LightDirectional:
		b = p.fill
		if l.Position.Y > sunHeight {
			b = p.sun
		}
	case scene.LightHemisphere:
		b = p.hemisphere
		l.GroundColor = core.ColorHex(b.ground)
	default:
		return
	}
	l.Color = core.ColorHex(b.color)
	l.Intensity = b.intensity
}
