package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/config"
	"ecoscene/controls"
	"ecoscene/lod"
	"ecoscene/placement"
	"ecoscene/terrain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("embedded defaults match package defaults", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)

		assert.Equal(t, terrain.DefaultConfig(), cfg.TerrainConfig())
		assert.Equal(t, placement.DefaultConfig(), cfg.PlacementConfig())
		assert.Equal(t, lod.DefaultDistances(), cfg.LODDistances())
		assert.Equal(t, 50*time.Millisecond, cfg.Animation.Interval)
		assert.EqualValues(t, 1, cfg.Seed)
		assert.Equal(t, 1280, cfg.Window.Width)
		assert.True(t, cfg.Renderer.Shadows)
	})

	t.Run("controls defaults survive the degree conversion", func(t *testing.T) {
		got := config.Default().ControlsConfig()
		want := controls.DefaultConfig()
		assert.InDelta(t, want.MinPolarAngle, got.MinPolarAngle, 1e-4)
		assert.InDelta(t, want.MaxPolarAngle, got.MaxPolarAngle, 1e-4)
		assert.Equal(t, want.ResumeDelay, got.ResumeDelay)
		assert.Equal(t, want.WheelDebounce, got.WheelDebounce)
		assert.Equal(t, want.Damping, got.Damping)
		assert.Equal(t, want.MinDistance, got.MinDistance)
		assert.Equal(t, want.MaxDistance, got.MaxDistance)
	})

	t.Run("camera and shadow camera", func(t *testing.T) {
		cfg := config.Default()
		assert.InDelta(t, 0.7854, cfg.FOVRadians(), 1e-4)
		pos := cfg.CameraPosition()
		assert.Equal(t, float32(60), pos.Y)
		assert.Equal(t, float32(120), pos.Z)

		sc := cfg.ShadowCamera()
		assert.Equal(t, 2048, sc.MapSize)
		assert.Equal(t, float32(-150), sc.Left)
		assert.Equal(t, float32(150), sc.Top)
		assert.Equal(t, float32(0.5), sc.Near)
		assert.Equal(t, float32(200), sc.Far)
		assert.Equal(t, float32(-0.0005), sc.Bias)
	})

	t.Run("user file overlays defaults", func(t *testing.T) {
		path := writeFile(t, `
seed: 7
terrain:
  rocks: 5
controls:
  resume_delay: 1500ms
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.EqualValues(t, 7, cfg.Seed)
		assert.Equal(t, 5, cfg.Terrain.Rocks)
		assert.Equal(t, float32(90), cfg.Terrain.Radius)
		assert.Len(t, cfg.Terrain.Clumps, 4)
		assert.Equal(t, 1500*time.Millisecond, cfg.Controls.ResumeDelay)
		assert.EqualValues(t, 7, cfg.TerrainConfig().Seed)
	})

	t.Run("clump list replaces defaults", func(t *testing.T) {
		path := writeFile(t, `
terrain:
  clumps:
    - { radius: 0.3, height: 0.6, segments: 5, color: 0x00ff00, count: 3 }
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Len(t, cfg.Terrain.Clumps, 1)
		assert.Equal(t, uint32(0x00ff00), cfg.Terrain.Clumps[0].Color)
	})

	t.Run("terrain radius bounds placement", func(t *testing.T) {
		path := writeFile(t, "terrain:\n  radius: 60\nplacement:\n  max_radius: 60\n")
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, float32(60), cfg.PlacementConfig().TerrainRadius)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "terrain: [1, 2"))
		assert.ErrorContains(t, err, "parsing config file")
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"window size", func(c *config.Config) { c.Window.Width = 0 }, "window"},
		{"terrain radius", func(c *config.Config) { c.Terrain.Radius = -1 }, "terrain: radius"},
		{"scatter range", func(c *config.Config) { c.Terrain.Scatter = 2 }, "scatter"},
		{"placement annulus", func(c *config.Config) { c.Placement.MinRadius = 95 }, "placement"},
		{"lod order", func(c *config.Config) { c.LOD.Medium = 5 }, "lod"},
		{"camera planes", func(c *config.Config) { c.Camera.Near = 2000 }, "camera"},
		{"zoom bounds", func(c *config.Config) { c.Controls.MinDistance = 300 }, "min_distance"},
		{"speed bounds", func(c *config.Config) { c.Controls.MinSpeed = 0 }, "min_speed"},
		{"shadow map", func(c *config.Config) { c.Renderer.ShadowMapSize = 0 }, "shadow_map_size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := config.Default()
		cfg.Window.Height = 0
		cfg.Renderer.ShadowExtent = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "window")
		assert.Contains(t, err.Error(), "shadow_extent")
	})
}

func TestWriteYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 99
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	t.Run("should encode the same document to a writer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfg.EncodeYAML(&buf))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(data), buf.String())
		assert.Contains(t, buf.String(), "seed: 99")
	})
}
