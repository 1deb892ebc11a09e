// Package window hosts the scene in a GLFW window and forwards its input.
package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"ecoscene/controls"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	input    controls.InputHandler
	onResize func(width, height int)
	onKey    func(key int, mods int)
}

type Config struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
	Samples   int
}

func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Title:     "Ecosystem",
		Resizable: true,
		VSync:     true,
		Samples:   4,
	}
}

// New creates a window with a current OpenGL 4.1 core context.
func New(config Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	if config.Samples > 0 {
		glfw.WindowHint(glfw.Samples, config.Samples)
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}
	w.installCallbacks()
	return w, nil
}

func (w *Window) installCallbacks() {
	w.Handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	w.Handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if w.input == nil {
			return
		}
		switch action {
		case glfw.Press:
			x, y := win.GetCursorPos()
			w.input.PointerDown(int(button), x, y)
		case glfw.Release:
			w.input.PointerUp(int(button))
		}
	})
	w.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.input != nil {
			w.input.PointerMove(x, y)
		}
	})
	w.Handle.SetScrollCallback(func(win *glfw.Window, _, yoff float64) {
		if w.input == nil {
			return
		}
		modifier := win.GetKey(glfw.KeyLeftControl) == glfw.Press ||
			win.GetKey(glfw.KeyRightControl) == glfw.Press ||
			win.GetKey(glfw.KeyLeftSuper) == glfw.Press ||
			win.GetKey(glfw.KeyRightSuper) == glfw.Press
		w.input.Wheel(-yoff, modifier)
	})
	w.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press && w.onKey != nil {
			w.onKey(int(key), int(mods))
		}
	})
}

func (w *Window) SetInputHandler(h controls.InputHandler) {
	w.input = h
}

func (w *Window) SetResizeHandler(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) SetKeyHandler(fn func(key int, mods int)) {
	w.onKey = fn
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// WaitEvents blocks until an event arrives or the timeout passes.
func (w *Window) WaitEvents(timeout time.Duration) {
	glfw.WaitEventsTimeout(timeout.Seconds())
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// ClientSize is the window size in screen coordinates.
func (w *Window) ClientSize() (int, int) {
	return w.Handle.GetSize()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// ScreenSize reports the primary monitor's current video mode.
func (w *Window) ScreenSize() (int, int) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return w.Width, w.Height
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return w.Width, w.Height
	}
	return mode.Width, mode.Height
}

// PixelRatio is the framebuffer to window size ratio (2 on HiDPI displays).
func (w *Window) PixelRatio() float32 {
	fw, _ := w.Handle.GetFramebufferSize()
	ww, _ := w.Handle.GetSize()
	if fw <= 0 || ww <= 0 {
		return 1
	}
	return float32(fw) / float32(ww)
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	ModShift   = int(glfw.ModShift)
	ModControl = int(glfw.ModControl)
)

const (
	MouseButtonLeft   = int(glfw.MouseButtonLeft)
	MouseButtonRight  = int(glfw.MouseButtonRight)
	MouseButtonMiddle = int(glfw.MouseButtonMiddle)
)

const (
	KeyEscape = int(glfw.KeyEscape)
	KeySpace  = int(glfw.KeySpace)
	KeyEqual  = int(glfw.KeyEqual)
	KeyMinus  = int(glfw.KeyMinus)
	KeyF      = int(glfw.KeyF)
	KeyP      = int(glfw.KeyP)
	KeyT      = int(glfw.KeyT)
	KeyN      = int(glfw.KeyN)
	KeyB      = int(glfw.KeyB)
	Key0      = int(glfw.Key0)
)
