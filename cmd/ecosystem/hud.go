package main

import (
	"fmt"
	"time"
)

// hud reports the UI state and frame rate in the window title.
type hud struct {
	title  string
	frames int
	since  time.Time
	fps    float64
}

func newHUD(title string, now time.Time) *hud {
	return &hud{title: title, since: now}
}

// frame counts one presented frame and reports whether the rate was
// refreshed.
func (h *hud) frame(now time.Time) bool {
	h.frames++
	d := now.Sub(h.since)
	if d < time.Second {
		return false
	}
	h.fps = float64(h.frames) / d.Seconds()
	h.frames = 0
	h.since = now
	return true
}

func (h *hud) text(state fmt.Stringer) string {
	return fmt.Sprintf("%s | %s | %.0f fps", h.title, state, h.fps)
}
