// Package animation runs the per-frame update of the scene at a throttled rate.
package animation

import (
	"log/slog"
	"time"

	"ecoscene/lod"
	"ecoscene/scene"
)

const DefaultInterval = 50 * time.Millisecond

type Population interface {
	Animate(elapsed float64)
	Roots() []*scene.Node
}

// Stepper advances a frame-counted animation such as the preview grow.
type Stepper interface {
	Step()
}

type Controls interface {
	ProcessTimers(now time.Time)
	NeedsUpdate() bool
	Update()
}

type Renderer interface {
	Render(s *scene.Scene, c *scene.Camera)
}

// Targets is what one tick touches. Nil fields are skipped.
type Targets struct {
	Population Population
	Preview    Stepper
	LOD        *lod.Manager
	Controls   Controls
	Scene      *scene.Scene
	Camera     *scene.Camera
	Renderer   Renderer
}

// Scheduler runs a tick at most once per interval. Targets are fetched from
// the source on every tick so owners can swap or drop them between frames.
type Scheduler struct {
	source   func() Targets
	interval time.Duration
	logger   *slog.Logger

	running bool
	start   time.Time
	lastRun time.Time
	ticks   uint64
}

type Option func(*Scheduler)

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

func NewScheduler(source func() Targets, opts ...Option) *Scheduler {
	s := &Scheduler{source: source, interval: DefaultInterval, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start arms the scheduler. The first Frame after Start always runs.
func (s *Scheduler) Start() {
	s.running = true
	s.start = time.Time{}
	s.lastRun = time.Time{}
}

func (s *Scheduler) Stop() { s.running = false }

func (s *Scheduler) Running() bool { return s.running }

// Ticks is the number of executed ticks since construction.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Frame is called once per host frame and reports whether a tick ran.
func (s *Scheduler) Frame(now time.Time) bool {
	if !s.running || s.source == nil {
		return false
	}
	if s.start.IsZero() {
		s.start = now
	} else if now.Sub(s.lastRun) < s.interval {
		return false
	}
	s.lastRun = now
	s.ticks++
	s.tick(now, now.Sub(s.start).Seconds())
	return true
}

func (s *Scheduler) tick(now time.Time, elapsed float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("animation tick", "panic", r)
		}
	}()
	t := s.source()
	if t.Population != nil {
		t.Population.Animate(elapsed)
	}
	if t.Preview != nil {
		t.Preview.Step()
	}
	if t.LOD != nil && t.Population != nil && t.Camera != nil {
		t.LOD.Apply(t.Camera.Position, t.Population.Roots())
	}
	if t.Controls != nil {
		t.Controls.ProcessTimers(now)
		if t.Controls.NeedsUpdate() {
			t.Controls.Update()
		}
	}
	if t.Renderer != nil && t.Scene != nil && t.Camera != nil {
		t.Renderer.Render(t.Scene, t.Camera)
	}
}
