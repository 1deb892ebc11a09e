package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/species"
	"ecoscene/window"
)

func TestUIState(t *testing.T) {
	t.Run("count keys are clamped", func(t *testing.T) {
		s := newUIState(5)
		assert.True(t, s.handleKey(window.KeyMinus, 0))
		assert.Equal(t, 0, s.count)
		s.handleKey(window.KeyEqual, 0)
		s.handleKey(window.KeyEqual, window.ModShift)
		assert.Equal(t, 11, s.count)
		s.count = maxCount
		s.handleKey(window.KeyEqual, 0)
		assert.Equal(t, maxCount, s.count)
		s.handleKey(window.Key0, 0)
		assert.Equal(t, 0, s.count)
	})

	t.Run("theme and focus", func(t *testing.T) {
		s := newUIState(0)
		assert.Equal(t, "light", s.theme())
		s.handleKey(window.KeyT, 0)
		assert.Equal(t, "dark", s.theme())

		assert.False(t, s.handleKey(window.KeyP, 0), "pause needs focus")
		s.handleKey(window.KeyF, 0)
		s.handleKey(window.KeyP, 0)
		assert.True(t, s.focusing)
		assert.True(t, s.paused)
		s.handleKey(window.KeyF, 0)
		assert.False(t, s.paused)
	})

	t.Run("preview cycles the catalog", func(t *testing.T) {
		s := newUIState(0)
		assert.Equal(t, "", s.previewID())
		s.handleKey(window.KeyN, 0)
		assert.Equal(t, species.At(0).ID, s.previewID())
		for i := 0; i < species.Len(); i++ {
			s.handleKey(window.KeyN, 0)
		}
		assert.Equal(t, species.At(0).ID, s.previewID())
		s.handleKey(window.KeyB, 0)
		assert.Equal(t, "", s.previewID())
	})

	t.Run("escape quits without an update", func(t *testing.T) {
		s := newUIState(0)
		assert.False(t, s.handleKey(window.KeyEscape, 0))
		assert.True(t, s.quit)
	})
}

func TestLogLevelFlag(t *testing.T) {
	var f logLevelFlag
	require.NoError(t, f.Set("debug"))
	assert.Equal(t, slog.LevelDebug, f.value)
	assert.Equal(t, "DEBUG", f.String())
	assert.Error(t, f.Set("loud"))
}

func TestHUD(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := newHUD("Ecosystem", start)
	for i := 1; i < 20; i++ {
		assert.False(t, h.frame(start.Add(time.Duration(i)*50*time.Millisecond)))
	}
	assert.True(t, h.frame(start.Add(time.Second)))
	assert.InDelta(t, 20, h.fps, 1e-9)
	assert.Contains(t, h.text(newUIState(3)), "3 entities | light | idle | preview none | 20 fps")
}
