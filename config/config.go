// Package config provides configuration loading with embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	stdmath "math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ecoscene/controls"
	"ecoscene/lod"
	"ecoscene/math"
	"ecoscene/placement"
	"ecoscene/scene"
	"ecoscene/terrain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters of the scene.
type Config struct {
	Seed      int64            `yaml:"seed"`
	Window    WindowSection    `yaml:"window"`
	Terrain   TerrainSection   `yaml:"terrain"`
	Placement PlacementSection `yaml:"placement"`
	Animation AnimationSection `yaml:"animation"`
	LOD       LODSection       `yaml:"lod"`
	Camera    CameraSection    `yaml:"camera"`
	Controls  ControlsSection  `yaml:"controls"`
	Renderer  RendererSection  `yaml:"renderer"`
}

type WindowSection struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
	Samples   int    `yaml:"samples"`
}

type TerrainSection struct {
	Radius   float32        `yaml:"radius"`
	Depth    float32        `yaml:"depth"`
	Segments int            `yaml:"segments"`
	Rocks    int            `yaml:"rocks"`
	Scatter  float64        `yaml:"scatter"`
	Clumps   []ClumpSection `yaml:"clumps"`
}

type ClumpSection struct {
	Radius    float32 `yaml:"radius"`
	TopRadius float32 `yaml:"top_radius"`
	Height    float32 `yaml:"height"`
	Segments  int     `yaml:"segments"`
	Color     uint32  `yaml:"color"`
	Count     int     `yaml:"count"`
}

// PlacementConfig bounds the spawn annulus. The outer limit is always the
// terrain radius.
type PlacementSection struct {
	MinRadius   float32 `yaml:"min_radius"`
	MaxRadius   float32 `yaml:"max_radius"`
	MaxAttempts int     `yaml:"max_attempts"`
	Spacing     float32 `yaml:"spacing"`
}

type AnimationSection struct {
	Interval time.Duration `yaml:"interval"`
}

type LODSection struct {
	High    float32 `yaml:"high"`
	Medium  float32 `yaml:"medium"`
	Low     float32 `yaml:"low"`
	VeryLow float32 `yaml:"very_low"`
}

type CameraSection struct {
	FOV      float32    `yaml:"fov"` // degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

type ControlsSection struct {
	Damping         float32       `yaml:"damping"`
	AutoRotate      bool          `yaml:"auto_rotate"`
	AutoRotateSpeed float32       `yaml:"auto_rotate_speed"`
	EnablePan       bool          `yaml:"enable_pan"`
	ZoomSpeed       float32       `yaml:"zoom_speed"`
	MinDistance     float32       `yaml:"min_distance"`
	MaxDistance     float32       `yaml:"max_distance"`
	MinPolarDeg     float32       `yaml:"min_polar_deg"`
	MaxPolarDeg     float32       `yaml:"max_polar_deg"`
	ResumeDelay     time.Duration `yaml:"resume_delay"`
	WheelDebounce   time.Duration `yaml:"wheel_debounce"`
	SpeedStep       float32       `yaml:"speed_step"`
	MinSpeed        float32       `yaml:"min_speed"`
	MaxSpeed        float32       `yaml:"max_speed"`
}

type RendererSection struct {
	Shadows       bool    `yaml:"shadows"`
	ShadowMapSize int     `yaml:"shadow_map_size"`
	ShadowExtent  float32 `yaml:"shadow_extent"`
	ShadowNear    float32 `yaml:"shadow_near"`
	ShadowFar     float32 `yaml:"shadow_far"`
	ShadowBias    float32 `yaml:"shadow_bias"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := cfg.merge(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays YAML onto the current values. A user file that lists
// clumps replaces the whole default list.
func (c *Config) merge(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)

	check(c.Terrain.Radius > 0, "terrain: radius must be positive, got %v", c.Terrain.Radius)
	check(c.Terrain.Depth > 0, "terrain: depth must be positive, got %v", c.Terrain.Depth)
	check(c.Terrain.Segments >= 3, "terrain: segments must be at least 3, got %d", c.Terrain.Segments)
	check(c.Terrain.Rocks >= 0, "terrain: rocks must not be negative, got %d", c.Terrain.Rocks)
	check(c.Terrain.Scatter >= 0 && c.Terrain.Scatter <= 1, "terrain: scatter must be in [0, 1], got %v", c.Terrain.Scatter)
	for i, cl := range c.Terrain.Clumps {
		check(cl.Radius > 0 && cl.Height > 0, "terrain: clump %d needs a positive radius and height", i)
		check(cl.Segments >= 3, "terrain: clump %d segments must be at least 3, got %d", i, cl.Segments)
		check(cl.Count >= 0, "terrain: clump %d count must not be negative, got %d", i, cl.Count)
	}

	p := c.Placement
	check(p.MinRadius >= 0 && p.MinRadius < p.MaxRadius, "placement: need 0 <= min_radius < max_radius, got %v and %v", p.MinRadius, p.MaxRadius)
	check(p.MaxAttempts > 0, "placement: max_attempts must be positive, got %d", p.MaxAttempts)
	check(p.Spacing >= 0, "placement: spacing must not be negative, got %v", p.Spacing)

	check(c.Animation.Interval >= 0, "animation: interval must not be negative, got %v", c.Animation.Interval)

	l := c.LOD
	check(0 < l.High && l.High <= l.Medium && l.Medium <= l.Low && l.Low <= l.VeryLow,
		"lod: distances must be positive and ascending, got %v/%v/%v/%v", l.High, l.Medium, l.Low, l.VeryLow)

	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera: fov must be in (0, 180), got %v", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far, "camera: need 0 < near < far, got %v and %v", c.Camera.Near, c.Camera.Far)

	k := c.Controls
	check(k.Damping > 0 && k.Damping <= 1, "controls: damping must be in (0, 1], got %v", k.Damping)
	check(k.ZoomSpeed > 0, "controls: zoom_speed must be positive, got %v", k.ZoomSpeed)
	check(k.MinDistance > 0 && k.MinDistance <= k.MaxDistance, "controls: need 0 < min_distance <= max_distance, got %v and %v", k.MinDistance, k.MaxDistance)
	check(k.MinPolarDeg >= 0 && k.MinPolarDeg <= k.MaxPolarDeg && k.MaxPolarDeg <= 180,
		"controls: polar range must lie in [0, 180] and ascend, got %v and %v", k.MinPolarDeg, k.MaxPolarDeg)
	check(k.MinSpeed > 0 && k.MinSpeed <= k.MaxSpeed, "controls: need 0 < min_speed <= max_speed, got %v and %v", k.MinSpeed, k.MaxSpeed)
	check(k.ResumeDelay >= 0 && k.WheelDebounce >= 0, "controls: delays must not be negative")

	r := c.Renderer
	check(r.ShadowMapSize > 0, "renderer: shadow_map_size must be positive, got %d", r.ShadowMapSize)
	check(r.ShadowExtent > 0, "renderer: shadow_extent must be positive, got %v", r.ShadowExtent)
	check(r.ShadowNear >= 0 && r.ShadowNear < r.ShadowFar, "renderer: need 0 <= shadow_near < shadow_far, got %v and %v", r.ShadowNear, r.ShadowFar)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// EncodeYAML writes the configuration as YAML to w.
func (c *Config) EncodeYAML(w io.Writer) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := c.EncodeYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *Config) TerrainConfig() terrain.Config {
	t := terrain.Config{
		Radius:   c.Terrain.Radius,
		Depth:    c.Terrain.Depth,
		Segments: c.Terrain.Segments,
		Rocks:    c.Terrain.Rocks,
		Scatter:  c.Terrain.Scatter,
		Seed:     c.Seed,
	}
	for _, cl := range c.Terrain.Clumps {
		t.Clumps = append(t.Clumps, terrain.ClumpType{
			Radius:    cl.Radius,
			TopRadius: cl.TopRadius,
			Height:    cl.Height,
			Segments:  cl.Segments,
			Color:     cl.Color,
			Count:     cl.Count,
		})
	}
	return t
}

func (c *Config) PlacementConfig() placement.Config {
	return placement.Config{
		TerrainRadius: c.Terrain.Radius,
		MinRadius:     c.Placement.MinRadius,
		MaxRadius:     c.Placement.MaxRadius,
		MaxAttempts:   c.Placement.MaxAttempts,
		Spacing:       c.Placement.Spacing,
	}
}

func (c *Config) LODDistances() lod.Distances {
	return lod.Distances{High: c.LOD.High, Medium: c.LOD.Medium, Low: c.LOD.Low, VeryLow: c.LOD.VeryLow}
}

func (c *Config) ControlsConfig() controls.Config {
	base := controls.DefaultConfig()
	k := c.Controls
	base.Damping = k.Damping
	base.AutoRotate = k.AutoRotate
	base.AutoRotateSpeed = k.AutoRotateSpeed
	base.EnablePan = k.EnablePan
	base.ZoomSpeed = k.ZoomSpeed
	base.MinDistance = k.MinDistance
	base.MaxDistance = k.MaxDistance
	base.MinPolarAngle = degToRad(k.MinPolarDeg)
	base.MaxPolarAngle = degToRad(k.MaxPolarDeg)
	base.ResumeDelay = k.ResumeDelay
	base.WheelDebounce = k.WheelDebounce
	base.SpeedStep = k.SpeedStep
	base.MinSpeed = k.MinSpeed
	base.MaxSpeed = k.MaxSpeed
	return base
}

// FOVRadians is the vertical field of view the camera constructor expects.
func (c *Config) FOVRadians() float32 { return degToRad(c.Camera.FOV) }

func (c *Config) CameraPosition() math.Vec3 {
	p := c.Camera.Position
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// ShadowCamera is the orthographic volume of the sun's shadow map.
func (c *Config) ShadowCamera() scene.ShadowCamera {
	r := c.Renderer
	return scene.ShadowCamera{
		MapSize: r.ShadowMapSize,
		Left:    -r.ShadowExtent,
		Right:   r.ShadowExtent,
		Top:     r.ShadowExtent,
		Bottom:  -r.ShadowExtent,
		Near:    r.ShadowNear,
		Far:     r.ShadowFar,
		Bias:    r.ShadowBias,
	}
}

func degToRad(d float32) float32 {
	return float32(float64(d) * stdmath.Pi / 180)
}
