// Package controls orbits the camera around a target with damping, bounded
// zoom and tilt, panning, and an auto-rotate that pauses while the user is
// interacting.
package controls

import (
	stdmath "math"
	"time"

	"ecoscene/math"
	"ecoscene/scene"
)

const (
	ButtonRotate = 0
	ButtonPan    = 1
	ButtonPan2   = 2
)

// InputHandler receives pointer and wheel events from the host window.
// Wheel deltas follow the browser convention: positive scrolls away from
// the user (zoom out).
type InputHandler interface {
	PointerDown(button int, x, y float64)
	PointerMove(x, y float64)
	PointerUp(button int)
	Wheel(deltaY float64, modifier bool)
}

var _ InputHandler = (*Orbit)(nil)

type Config struct {
	Damping         float32
	AutoRotate      bool
	AutoRotateSpeed float32
	EnablePan       bool
	RotateSpeed     float32
	PanSpeed        float32
	ZoomSpeed       float32
	MinDistance     float32
	MaxDistance     float32
	MinPolarAngle   float32
	MaxPolarAngle   float32
	ResumeDelay     time.Duration
	WheelDebounce   time.Duration
	SpeedStep       float32
	MinSpeed        float32
	MaxSpeed        float32
}

func DefaultConfig() Config {
	return Config{
		Damping:         0.15,
		AutoRotate:      true,
		AutoRotateSpeed: 0.1,
		EnablePan:       true,
		RotateSpeed:     1,
		PanSpeed:        1,
		ZoomSpeed:       1.5,
		MinDistance:     30,
		MaxDistance:     200,
		MinPolarAngle:   math.Pi / 6,
		MaxPolarAngle:   math.Pi / 2.2,
		ResumeDelay:     3 * time.Second,
		WheelDebounce:   50 * time.Millisecond,
		SpeedStep:       0.3,
		MinSpeed:        0.05,
		MaxSpeed:        3,
	}
}

type State int

const (
	IdleAutorotating State = iota
	UserControlled
	IdleCooldown
	Idle // auto-rotate switched off and no resume pending
)

func (s State) String() string {
	switch s {
	case IdleAutorotating:
		return "idle-autorotating"
	case UserControlled:
		return "user-controlled"
	case IdleCooldown:
		return "idle-cooldown"
	}
	return "idle"
}

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// settle is the residual motion below which damping counts as finished.
const settle = 1e-5

// Orbit drives a camera around Target. Angles follow three.js: theta is the
// azimuth about +Y, phi the polar angle from +Y.
type Orbit struct {
	Target math.Vec3

	config Config
	camera *scene.Camera
	clock  func() time.Time

	autoRotate      bool
	autoRotateSpeed float32

	radius, theta, phi float32
	deltaTheta         float32
	deltaPhi           float32
	scale              float32
	panOffset          math.Vec3

	drag           dragMode
	lastX, lastY   float64
	viewportHeight float32

	resumeAt     time.Time
	speedAt      time.Time
	speedPending float32

	disposed bool
}

type Option func(*Orbit)

// WithClock replaces time.Now for pointer events.
func WithClock(now func() time.Time) Option {
	return func(o *Orbit) { o.clock = now }
}

func New(camera *scene.Camera, cfg Config, opts ...Option) *Orbit {
	o := &Orbit{
		Target:          camera.Target,
		config:          cfg,
		camera:          camera,
		clock:           time.Now,
		autoRotate:      cfg.AutoRotate,
		autoRotateSpeed: cfg.AutoRotateSpeed,
		scale:           1,
		viewportHeight:  720,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.syncFromCamera()
	return o
}

func (o *Orbit) syncFromCamera() {
	offset := o.camera.Position.Sub(o.Target)
	o.radius = offset.Length()
	if o.radius == 0 {
		o.phi = 0
		return
	}
	o.theta = float32(stdmath.Atan2(float64(offset.X), float64(offset.Z)))
	o.phi = float32(stdmath.Acos(float64(math.Clamp(offset.Y/o.radius, -1, 1))))
}

func (o *Orbit) AutoRotate() bool         { return o.autoRotate }
func (o *Orbit) AutoRotateSpeed() float32 { return o.autoRotateSpeed }
func (o *Orbit) Distance() float32        { return o.radius }
func (o *Orbit) Polar() float32           { return o.phi }
func (o *Orbit) Azimuth() float32         { return o.theta }
func (o *Orbit) Dragging() bool           { return o.drag != dragNone }

func (o *Orbit) State() State {
	switch {
	case o.drag != dragNone:
		return UserControlled
	case !o.resumeAt.IsZero():
		return IdleCooldown
	case o.autoRotate:
		return IdleAutorotating
	}
	return Idle
}

// SetViewport sets the pixel height used to scale drag gestures.
func (o *Orbit) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		o.viewportHeight = float32(height)
	}
}

// begin marks the start of an interaction: auto-rotate stops and any pending
// resume is cancelled.
func (o *Orbit) begin() {
	o.resumeAt = time.Time{}
	o.autoRotate = false
}

// end schedules auto-rotate to resume after the cooldown. Nothing resumes
// while a drag is still held or when auto-rotate is configured off.
func (o *Orbit) end(now time.Time) {
	if o.drag != dragNone || !o.config.AutoRotate {
		return
	}
	o.resumeAt = now.Add(o.config.ResumeDelay)
}

func (o *Orbit) PointerDown(button int, x, y float64) {
	if o.disposed || o.drag != dragNone {
		return
	}
	switch button {
	case ButtonRotate:
		o.drag = dragRotate
	case ButtonPan, ButtonPan2:
		if !o.config.EnablePan {
			return
		}
		o.drag = dragPan
	default:
		return
	}
	o.lastX, o.lastY = x, y
	o.begin()
}

func (o *Orbit) PointerMove(x, y float64) {
	if o.disposed || o.drag == dragNone {
		return
	}
	dx, dy := float32(x-o.lastX), float32(y-o.lastY)
	o.lastX, o.lastY = x, y
	switch o.drag {
	case dragRotate:
		o.rotateLeft(math.Tau * dx / o.viewportHeight * o.config.RotateSpeed)
		o.rotateUp(math.Tau * dy / o.viewportHeight * o.config.RotateSpeed)
	case dragPan:
		o.pan(dx, dy)
	}
}

func (o *Orbit) PointerUp(button int) {
	if o.disposed || o.drag == dragNone {
		return
	}
	o.drag = dragNone
	o.end(o.clock())
}

// Wheel zooms, or with modifier held, schedules an auto-rotate speed change.
// deltaY follows the browser convention: negative scrolls up.
func (o *Orbit) Wheel(deltaY float64, modifier bool) {
	if o.disposed || deltaY == 0 {
		return
	}
	now := o.clock()
	if modifier {
		step := o.config.SpeedStep
		if deltaY > 0 {
			step = -step
		}
		o.speedPending = step
		o.speedAt = now.Add(o.config.WheelDebounce)
		return
	}
	zoom := float32(stdmath.Pow(0.95, float64(o.config.ZoomSpeed)))
	if deltaY < 0 {
		o.scale *= zoom
	} else {
		o.scale /= zoom
	}
	o.begin()
	o.end(now)
}

// ProcessTimers fires the resume and wheel-debounce deadlines that are due.
func (o *Orbit) ProcessTimers(now time.Time) {
	if o.disposed {
		return
	}
	if !o.resumeAt.IsZero() && !now.Before(o.resumeAt) && o.drag == dragNone {
		o.resumeAt = time.Time{}
		o.autoRotate = true
	}
	if !o.speedAt.IsZero() && !now.Before(o.speedAt) {
		o.speedAt = time.Time{}
		o.autoRotateSpeed = math.Clamp(o.autoRotateSpeed+o.speedPending, o.config.MinSpeed, o.config.MaxSpeed)
		o.speedPending = 0
	}
}

// NeedsUpdate reports whether Update would move the camera.
func (o *Orbit) NeedsUpdate() bool {
	if o.disposed {
		return false
	}
	return o.autoRotate || o.drag != dragNone || o.moving()
}

func (o *Orbit) moving() bool {
	return math.Max(math.Abs(o.deltaTheta), math.Abs(o.deltaPhi)) > settle ||
		math.Abs(o.scale-1) > settle || o.panOffset.Length() > settle
}

// Update applies pending motion to the camera, decaying it by the damping
// factor.
func (o *Orbit) Update() {
	if o.disposed {
		return
	}
	if o.autoRotate && o.drag == dragNone {
		o.rotateLeft(math.Tau / 60 / 60 * o.autoRotateSpeed)
	}
	d := o.config.Damping
	if d <= 0 {
		d = 1
	}
	o.theta += o.deltaTheta * d
	o.phi = math.Clamp(o.phi+o.deltaPhi*d, o.config.MinPolarAngle, o.config.MaxPolarAngle)
	o.radius = math.Clamp(o.radius*o.scale, o.config.MinDistance, o.config.MaxDistance)
	o.Target = o.Target.Add(o.panOffset.Mul(d))

	sinPhi := math.Sin(o.phi)
	offset := math.Vec3{
		X: o.radius * sinPhi * math.Sin(o.theta),
		Y: o.radius * math.Cos(o.phi),
		Z: o.radius * sinPhi * math.Cos(o.theta),
	}
	o.camera.SetPosition(o.Target.Add(offset))
	o.camera.LookAt(o.Target)

	o.deltaTheta *= 1 - d
	o.deltaPhi *= 1 - d
	o.panOffset = o.panOffset.Mul(1 - d)
	o.scale = 1
}

func (o *Orbit) rotateLeft(angle float32) { o.deltaTheta -= angle }
func (o *Orbit) rotateUp(angle float32)   { o.deltaPhi -= angle }

// pan moves the target in screen space, scaled so the point under the cursor
// tracks the pointer.
func (o *Orbit) pan(dx, dy float32) {
	fov := o.camera.FOV
	dist := o.radius * math.Tan(fov/2)
	forward := o.Target.Sub(o.camera.Position).Normalize()
	right := forward.Cross(o.camera.Up).Normalize()
	up := right.Cross(forward).Normalize()
	k := 2 * dist / o.viewportHeight * o.config.PanSpeed
	o.panOffset = o.panOffset.Add(right.Mul(-dx * k)).Add(up.Mul(dy * k))
}

// Dispose detaches the controls; later calls are ignored.
func (o *Orbit) Dispose() {
	o.disposed = true
	o.drag = dragNone
	o.resumeAt = time.Time{}
	o.speedAt = time.Time{}
}
