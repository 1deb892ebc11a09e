package placement_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoscene/math"
	"ecoscene/placement"
)

func TestIsValid(t *testing.T) {
	e := placement.NewEngine(placement.DefaultConfig(), nil)
	cases := []struct {
		name     string
		x, z     float32
		occupied []math.Vec3
		want     bool
	}{
		{"inside empty terrain", 30, 0, nil, true},
		{"exactly on the inner bound", 88.5, 0, nil, true},
		{"past the edge", 89, 0, nil, false},
		{"too close to a neighbour", 30, 0, []math.Vec3{{X: 31, Y: 2.5, Z: 1}}, false},
		{"clear of a neighbour", 30, 0, []math.Vec3{{X: 33, Y: 2.5, Z: 0}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.IsValid(tc.x, tc.z, 1.5, tc.occupied))
		})
	}
}

func TestGenerateValidPosition(t *testing.T) {
	t.Run("should return spread out positions in the spawn ring", func(t *testing.T) {
		e := placement.NewEngine(placement.DefaultConfig(), rand.New(rand.NewSource(5)))
		var occupied []math.Vec3
		for i := 0; i < 50; i++ {
			x, z, ok := e.GenerateValidPosition(1.5, occupied)
			assert.True(t, ok)
			r := math.NewVec3(x, 0, z).LengthXZ()
			assert.GreaterOrEqual(t, r, float32(20))
			assert.LessOrEqual(t, r, float32(88.5))
			for _, p := range occupied {
				assert.GreaterOrEqual(t, math.NewVec3(x-p.X, 0, z-p.Z).LengthXZ(), float32(2.25))
			}
			occupied = append(occupied, math.NewVec3(x, 2.5, z))
		}
	})
	t.Run("should keep best effort results on the terrain", func(t *testing.T) {
		cfg := placement.DefaultConfig()
		cfg.MaxAttempts = 3
		e := placement.NewEngine(cfg, rand.New(rand.NewSource(1)))
		huge := float32(40)
		for i := 0; i < 20; i++ {
			x, z, ok := e.GenerateValidPosition(huge, nil)
			r := math.NewVec3(x, 0, z).LengthXZ()
			assert.LessOrEqual(t, r, cfg.TerrainRadius-huge+1e-3)
			if !ok {
				assert.InDelta(t, cfg.TerrainRadius-huge, r, 1e-3)
			}
		}
	})
	t.Run("should report failure on a crowded terrain", func(t *testing.T) {
		e := placement.NewEngine(placement.DefaultConfig(), rand.New(rand.NewSource(2)))
		var wall []math.Vec3
		for x := float32(-90); x <= 90; x += 1 {
			for z := float32(-90); z <= 90; z += 1 {
				wall = append(wall, math.NewVec3(x, 0, z))
			}
		}
		_, _, ok := e.GenerateValidPosition(1.5, wall)
		assert.False(t, ok)
	})
}
