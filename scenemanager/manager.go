// Package scenemanager owns every scene resource and wires the ecosystem,
// theme, camera controls and animation loop to a host window.
package scenemanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"ecoscene/animation"
	"ecoscene/config"
	"ecoscene/controls"
	"ecoscene/core"
	"ecoscene/ecosystem"
	"ecoscene/factory"
	"ecoscene/lod"
	"ecoscene/math"
	"ecoscene/placement"
	"ecoscene/scene"
	"ecoscene/terrain"
	"ecoscene/theme"
)

var (
	ErrAlreadyInitialized = errors.New("scene manager already initialized")
	ErrDisposed           = errors.New("scene manager disposed")
	ErrNoRenderer         = errors.New("no renderer factory configured")
	ErrNoHost             = errors.New("canvas cannot drive a frame loop")
)

// Canvas is the drawing surface. It delivers input and resize events.
type Canvas interface {
	SetInputHandler(h controls.InputHandler)
	SetResizeHandler(fn func(width, height int))
}

// Container reports the laid-out size of the area hosting the canvas.
type Container interface {
	ClientSize() (width, height int)
}

// Display describes the screen, used when the container has no size yet.
type Display interface {
	ScreenSize() (width, height int)
	PixelRatio() float32
}

// Host is a canvas that can also pump events and present frames.
type Host interface {
	ShouldClose() bool
	PollEvents()
	WaitEvents(timeout time.Duration)
	SwapBuffers()
}

type Renderer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
	SetClearColor(c core.Color)
	Render(s *scene.Scene, cam *scene.Camera)
	Dispose()
}

// RendererFactory creates the renderer once the canvas exists.
type RendererFactory func(canvas Canvas) (Renderer, error)

const (
	OrbName   = "tomatoMesh"
	orbColor  = 0xff5722
	orbRadius = 2
	orbHeight = 2
	groupName = "ecosystem"
	idleWait  = 5 * time.Millisecond
)

type Manager struct {
	cfg         *config.Config
	logger      *slog.Logger
	newRenderer RendererFactory
	display     Display
	clock       func() time.Time
	onFrame     func(now time.Time)

	canvas    Canvas
	container Container

	scene      *scene.Scene
	camera     *scene.Camera
	renderer   Renderer
	terrain    *terrain.Terrain
	orb        *scene.Node
	group      *scene.Node
	controls   *controls.Orbit
	theme      *theme.Controller
	factory    *factory.Factory
	population *ecosystem.Controller
	lod        *lod.Manager
	scheduler  *animation.Scheduler
	preview    *preview

	initialized bool
	disposed    bool
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithRendererFactory(f RendererFactory) Option {
	return func(m *Manager) { m.newRenderer = f }
}

// WithDisplay sets the fallback screen. Without it a canvas that also
// implements Display is used.
func WithDisplay(d Display) Option {
	return func(m *Manager) { m.display = d }
}

// WithClock replaces time.Now for input timestamps and Run.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.clock = now }
}

// WithFrameHook registers fn to run after Run presents a frame.
func WithFrameHook(fn func(now time.Time)) Option {
	return func(m *Manager) { m.onFrame = fn }
}

// New returns an uninitialized manager. A nil cfg uses the embedded defaults.
func New(cfg *config.Config, opts ...Option) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Manager{
		cfg:    cfg,
		logger: slog.Default(),
		clock:  time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// recover logs a panic escaping a public entry point.
func (m *Manager) recover(op string) {
	if r := recover(); r != nil {
		m.logger.Error("scene manager", "op", op, "panic", r)
	}
}

// Init builds the scene, renderer, lights, terrain, focus orb, controls and
// animation loop, then starts the loop. On failure the partially built state
// stays in place for Dispose.
func (m *Manager) Init(canvas Canvas, container Container) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("scene manager", "op", "init", "panic", r)
			err = fmt.Errorf("init: %v", r)
		}
	}()
	if m.disposed {
		return ErrDisposed
	}
	if m.initialized {
		return ErrAlreadyInitialized
	}
	if m.newRenderer == nil {
		return ErrNoRenderer
	}
	m.initialized = true
	m.canvas = canvas
	m.container = container
	if m.display == nil {
		if d, ok := canvas.(Display); ok {
			m.display = d
		}
	}

	cfg := m.cfg
	width, height := m.viewportSize()

	m.scene = scene.NewScene()
	m.camera = scene.NewCamera(cfg.FOVRadians(), float32(width)/float32(height), cfg.Camera.Near, cfg.Camera.Far)
	m.camera.SetPosition(cfg.CameraPosition())
	m.camera.LookAt(math.Vec3Zero)

	r, err := m.newRenderer(canvas)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	m.renderer = r
	m.renderer.SetSize(width, height)
	m.renderer.SetPixelRatio(m.pixelRatio())
	m.renderer.SetClearColor(core.ColorWhite)

	m.addLights()

	seed := cfg.Seed
	m.terrain = terrain.Build(cfg.TerrainConfig(), rand.New(rand.NewSource(seed)))
	m.scene.AddNode(m.terrain.Ground)

	m.orb = scene.NewMeshNode(OrbName, scene.NewMesh(
		scene.NewSphereGeometry(orbRadius, 32, 32),
		scene.NewStandardMaterial(orbColor, 0.5, 0.1),
	))
	m.orb.SetPosition(math.NewVec3(0, orbHeight, 0))
	m.orb.Visible = false
	m.scene.AddNode(m.orb)

	m.group = scene.NewNode(groupName)
	m.scene.AddNode(m.group)

	m.theme = theme.NewController(theme.Targets{
		Scene:    m.scene,
		Renderer: m.renderer,
		Ground:   m.terrain.GroundMaterial(),
		Grass:    m.terrain.GrassMaterial(),
		FocusOrb: m.orb,
	}, m.logger)

	m.factory = factory.New(rand.New(rand.NewSource(seed+1)), factory.WithLogger(m.logger))
	m.population = ecosystem.NewController(
		m.group,
		m.factory,
		placement.NewEngine(cfg.PlacementConfig(), rand.New(rand.NewSource(seed+2))),
		rand.New(rand.NewSource(seed+3)),
		ecosystem.WithLogger(m.logger),
		ecosystem.WithTerrainRadius(cfg.Terrain.Radius),
	)
	m.lod = lod.NewManager(cfg.LODDistances(), lod.WithLogger(m.logger))

	m.controls = controls.New(m.camera, cfg.ControlsConfig(), controls.WithClock(m.clock))
	m.controls.SetViewport(width, height)
	canvas.SetInputHandler(input{m})
	canvas.SetResizeHandler(func(int, int) { m.Resize() })

	m.scheduler = animation.NewScheduler(m.targets,
		animation.WithInterval(cfg.Animation.Interval),
		animation.WithLogger(m.logger),
	)
	m.scheduler.Start()

	m.logger.Info("scene initialized", "width", width, "height", height, "seed", seed)
	return nil
}

func (m *Manager) addLights() {
	m.scene.AddLight(&scene.Light{
		Name:      "ambient",
		Type:      scene.LightAmbient,
		Color:     core.ColorWhite,
		Intensity: 0.5,
	})
	m.scene.AddLight(&scene.Light{
		Name:       "sun",
		Type:       scene.LightDirectional,
		Position:   math.NewVec3(50, 80, 50),
		Color:      core.ColorWhite,
		Intensity:  0.8,
		CastShadow: true,
		Shadow:     m.cfg.ShadowCamera(),
	})
	m.scene.AddLight(&scene.Light{
		Name:      "fill",
		Type:      scene.LightDirectional,
		Position:  math.NewVec3(-40, 30, -40),
		Color:     core.ColorWhite,
		Intensity: 0.3,
	})
	m.scene.AddLight(&scene.Light{
		Name:        "hemisphere",
		Type:        scene.LightHemisphere,
		Color:       core.ColorWhite,
		GroundColor: core.ColorHex(terrain.GroundColor),
		Intensity:   0.4,
	})
}

// viewportSize is the container size, or the display size while the
// container has not been laid out.
func (m *Manager) viewportSize() (int, int) {
	if m.container != nil {
		if w, h := m.container.ClientSize(); w > 0 && h > 0 {
			return w, h
		}
	}
	if m.display != nil {
		if w, h := m.display.ScreenSize(); w > 0 && h > 0 {
			m.logger.Debug("container has no size, using display", "width", w, "height", h)
			return w, h
		}
	}
	return m.cfg.Window.Width, m.cfg.Window.Height
}

func (m *Manager) pixelRatio() float32 {
	if m.display == nil {
		return 1
	}
	return m.display.PixelRatio()
}

// targets is read by the scheduler on every executed tick, so a disposed
// manager hands it nothing.
func (m *Manager) targets() animation.Targets {
	var t animation.Targets
	if m.disposed {
		return t
	}
	if m.population != nil {
		t.Population = m.population
	}
	if m.preview != nil {
		t.Preview = m.preview
	}
	if m.controls != nil {
		t.Controls = m.controls
	}
	if m.renderer != nil {
		t.Renderer = m.renderer
	}
	t.LOD = m.lod
	t.Scene = m.scene
	t.Camera = m.camera
	return t
}

// UpdateScene applies the UI state: theme first, then the population
// count, then the preview, which depends on the focus orb's visibility.
func (m *Manager) UpdateScene(themeName string, count int, previewID string, isFocusing, isPaused bool) {
	defer m.recover("update scene")
	if !m.ready("update scene") {
		return
	}
	m.theme.UpdateTheme(themeName, isFocusing, isPaused)
	if err := m.population.Reconcile(count); err != nil {
		m.logger.Error("update ecosystem", "count", count, "error", err)
	}
	m.UpdatePreview(previewID)
}

// UpdatePreview swaps the highlighted model. An empty id removes it. The
// model is rebuilt only when the id or the focus mode changed.
func (m *Manager) UpdatePreview(id string) {
	defer m.recover("update preview")
	if !m.ready("update preview") {
		return
	}
	focused := m.orb.Visible
	if p := m.preview; p != nil {
		if p.id == id && p.focused == focused {
			return
		}
		p.dispose()
		m.preview = nil
	}
	if id == "" {
		return
	}

	node, _ := m.factory.Create(id)
	node.Name = PreviewName
	p := &preview{id: id, focused: focused, node: node}
	if focused {
		for len(m.orb.Children) > 0 {
			child := m.orb.Children[0]
			child.RemoveFromParent()
			scene.DisposeTree(child)
		}
		node.SetPosition(math.Vec3Zero)
		node.SetUniformScale(previewFocusScale)
		m.orb.AddChild(node)
	} else {
		node.SetPosition(math.NewVec3(0, previewHeight, 0))
		node.SetUniformScale(0)
		node.SetShadows(true, true)
		node.Traverse(func(n *scene.Node) { n.RenderOrder = previewRenderOrder })
		p.growing = true
		m.scene.AddNode(node)
	}
	m.preview = p
}

// Resize follows the container. Degenerate sizes are ignored.
func (m *Manager) Resize() {
	defer m.recover("resize")
	if m.disposed || m.camera == nil || m.renderer == nil || m.container == nil {
		return
	}
	w, h := m.container.ClientSize()
	if w <= 0 || h <= 0 {
		return
	}
	m.camera.UpdateAspectRatio(float32(w), float32(h))
	m.renderer.SetSize(w, h)
	if m.controls != nil {
		m.controls.SetViewport(w, h)
	}
}

// Frame runs one animation tick if the throttle allows and reports whether
// a frame was rendered.
func (m *Manager) Frame(now time.Time) (rendered bool) {
	defer m.recover("frame")
	if m.disposed || m.scheduler == nil {
		return false
	}
	return m.scheduler.Frame(now)
}

// Run drives frames until the host window closes or ctx is cancelled. The
// canvas must implement Host.
func (m *Manager) Run(ctx context.Context) error {
	if m.disposed {
		return ErrDisposed
	}
	host, ok := m.canvas.(Host)
	if !ok {
		return ErrNoHost
	}
	for {
		if m.disposed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		host.PollEvents()
		if host.ShouldClose() {
			return nil
		}
		now := m.clock()
		if m.Frame(now) {
			host.SwapBuffers()
			if m.onFrame != nil {
				m.onFrame(now)
			}
		} else {
			host.WaitEvents(idleWait)
		}
	}
}

// Dispose stops the loop and releases every GPU resource the scene holds.
// It is safe to call more than once and after a failed Init.
func (m *Manager) Dispose() {
	defer m.recover("dispose")
	if m.disposed {
		return
	}
	m.disposed = true

	if m.scheduler != nil {
		m.scheduler.Stop()
	}
	if m.canvas != nil {
		m.canvas.SetInputHandler(nil)
		m.canvas.SetResizeHandler(nil)
	}
	if m.controls != nil {
		m.controls.Dispose()
	}
	if m.renderer != nil {
		m.renderer.Dispose()
	}
	meshes := 0
	if m.scene != nil {
		meshes = scene.DisposeTree(m.scene.Root)
	}
	m.logger.Info("scene disposed", "meshes", meshes)

	m.scheduler = nil
	m.controls = nil
	m.renderer = nil
	m.scene = nil
	m.camera = nil
	m.terrain = nil
	m.orb = nil
	m.group = nil
	m.theme = nil
	m.population = nil
	m.lod = nil
	m.preview = nil
	m.canvas = nil
	m.container = nil
}

func (m *Manager) ready(op string) bool {
	if m.disposed || !m.initialized || m.scene == nil || m.population == nil {
		m.logger.Warn("scene manager not ready", "op", op)
		return false
	}
	return true
}

func (m *Manager) Initialized() bool { return m.initialized && !m.disposed }

func (m *Manager) Disposed() bool { return m.disposed }

func (m *Manager) Scene() *scene.Scene { return m.scene }

func (m *Manager) Camera() *scene.Camera { return m.camera }

func (m *Manager) Controls() *controls.Orbit { return m.controls }

func (m *Manager) FocusOrb() *scene.Node { return m.orb }

// Preview returns the current preview model, or nil.
func (m *Manager) Preview() *scene.Node {
	if m.preview == nil {
		return nil
	}
	return m.preview.node
}

// Entities returns the tracked population in insertion order.
func (m *Manager) Entities() []*ecosystem.Entity {
	if m.population == nil {
		return nil
	}
	return m.population.Entities()
}

func (m *Manager) ThemeState() theme.State {
	if m.theme == nil {
		return theme.State{}
	}
	return m.theme.State()
}

// input forwards canvas events to the camera controls, dropping them once
// the manager is disposed.
type input struct{ m *Manager }

func (in input) PointerDown(button int, x, y float64) {
	defer in.m.recover("pointer down")
	if c := in.m.controls; c != nil {
		c.PointerDown(button, x, y)
	}
}

func (in input) PointerMove(x, y float64) {
	defer in.m.recover("pointer move")
	if c := in.m.controls; c != nil {
		c.PointerMove(x, y)
	}
}

func (in input) PointerUp(button int) {
	defer in.m.recover("pointer up")
	if c := in.m.controls; c != nil {
		c.PointerUp(button)
	}
}

func (in input) Wheel(deltaY float64, modifier bool) {
	defer in.m.recover("wheel")
	if c := in.m.controls; c != nil {
		c.Wheel(deltaY, modifier)
	}
}
