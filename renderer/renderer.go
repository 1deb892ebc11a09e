// Package renderer turns a scene and camera into backend draw passes: an
// optional shadow pass from the scene's shadow-casting light, then an opaque
// pass and a blended pass.
package renderer

import (
	"log/slog"

	"ecoscene/core"
	"ecoscene/scene"
)

// Backend draws planned frames on a graphics API.
type Backend interface {
	SetViewport(width, height int)
	Draw(f *Frame) error
	Destroy()
}

type Stats struct {
	Frames    uint64
	Objects   int
	Casters   int
	Triangles int
}

type Renderer struct {
	backend    Backend
	logger     *slog.Logger
	clear      core.Color
	shadows    bool
	width      int
	height     int
	pixelRatio float32
	stats      Stats
	disposed   bool
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithShadows toggles the shadow pass. It is on by default.
func WithShadows(enabled bool) Option {
	return func(r *Renderer) { r.shadows = enabled }
}

func New(b Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend:    b,
		logger:     slog.Default(),
		clear:      core.ColorWhite,
		shadows:    true,
		pixelRatio: 1,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// SetSize sets the viewport in logical pixels.
func (r *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.applyViewport()
}

// SetPixelRatio scales the drawing buffer relative to the logical size.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
	r.applyViewport()
}

func (r *Renderer) applyViewport() {
	if r.disposed || r.backend == nil || r.width == 0 {
		return
	}
	w, h := r.DrawingBufferSize()
	r.backend.SetViewport(w, h)
}

// DrawingBufferSize is the viewport in device pixels.
func (r *Renderer) DrawingBufferSize() (int, int) {
	return int(float32(r.width) * r.pixelRatio), int(float32(r.height) * r.pixelRatio)
}

func (r *Renderer) SetClearColor(c core.Color) { r.clear = c }

func (r *Renderer) ClearColor() core.Color { return r.clear }

func (r *Renderer) Stats() Stats { return r.stats }

// Render draws one frame. The scene background takes precedence over the
// clear color.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera) {
	if r.disposed || r.backend == nil || s == nil || cam == nil {
		return
	}
	clear := r.clear
	if s.Background != (core.Color{}) {
		clear = s.Background
	}
	f := plan(s, cam, clear, r.shadows)
	if err := r.backend.Draw(f); err != nil {
		r.logger.Error("render frame", "error", err)
		return
	}
	r.stats.Frames++
	r.stats.Objects = len(f.Opaque) + len(f.Blended)
	r.stats.Casters = len(f.Shadow.Casters)
	r.stats.Triangles = 0
	for _, items := range [][]DrawItem{f.Opaque, f.Blended} {
		for _, it := range items {
			r.stats.Triangles += len(it.Geometry.Indices) / 3
		}
	}
}

// Dispose destroys the backend. Safe to call repeatedly.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if r.backend != nil {
		r.backend.Destroy()
	}
}
