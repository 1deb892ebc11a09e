package main

import (
	"fmt"

	"ecoscene/species"
	"ecoscene/window"
)

const (
	countStep = 10
	maxCount  = 300
)

// uiState stands in for the host UI: it holds the inputs the scene manager
// is driven with and maps key presses onto them.
type uiState struct {
	count      int
	dark       bool
	focusing   bool
	paused     bool
	previewIdx int // -1 hides the preview
	quit       bool
}

func newUIState(count int) *uiState {
	return &uiState{count: count, previewIdx: -1}
}

func (s *uiState) theme() string {
	if s.dark {
		return "dark"
	}
	return "light"
}

func (s *uiState) previewID() string {
	if s.previewIdx < 0 {
		return ""
	}
	return species.At(s.previewIdx).ID
}

// handleKey applies one key press and reports whether the scene inputs
// changed.
func (s *uiState) handleKey(key, mods int) bool {
	step := countStep
	if mods&window.ModShift != 0 {
		step = 1
	}
	switch key {
	case window.KeyEscape:
		s.quit = true
		return false
	case window.KeyEqual:
		s.count = min(s.count+step, maxCount)
	case window.KeyMinus:
		s.count = max(s.count-step, 0)
	case window.Key0:
		s.count = 0
	case window.KeyT:
		s.dark = !s.dark
	case window.KeyF:
		s.focusing = !s.focusing
		s.paused = false
	case window.KeyP:
		if !s.focusing {
			return false
		}
		s.paused = !s.paused
	case window.KeyN:
		s.previewIdx = (s.previewIdx + 1) % species.Len()
	case window.KeyB:
		s.previewIdx = -1
	default:
		return false
	}
	return true
}

func (s *uiState) String() string {
	mode := "idle"
	switch {
	case s.focusing && s.paused:
		mode = "paused"
	case s.focusing:
		mode = "focus"
	}
	preview := s.previewID()
	if preview == "" {
		preview = "none"
	}
	return fmt.Sprintf("%d entities | %s | %s | preview %s", s.count, s.theme(), mode, preview)
}
