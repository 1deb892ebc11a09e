package terrain_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/math"
	"ecoscene/scene"
	"ecoscene/terrain"
)

func TestBuild(t *testing.T) {
	cfg := terrain.DefaultConfig()
	tr := terrain.Build(cfg, rand.New(rand.NewSource(3)))

	t.Run("should put the grass disc first under the ground", func(t *testing.T) {
		require.NotEmpty(t, tr.Ground.Children)
		assert.Same(t, tr.Grass, tr.Ground.Children[0])
		assert.InDelta(t, 2.51, tr.Grass.WorldPosition().Y, 1e-4)
	})
	t.Run("should use the soil and grass colors", func(t *testing.T) {
		assert.Equal(t, uint32(terrain.GroundColor), tr.GroundMaterial().Color.Hex())
		assert.Equal(t, uint32(terrain.GrassColor), tr.GrassMaterial().Color.Hex())
		assert.True(t, tr.GroundMaterial().DoubleSide)
	})
	t.Run("should receive shadows on the ground", func(t *testing.T) {
		assert.True(t, tr.Ground.ReceiveShadow)
		assert.True(t, tr.Grass.ReceiveShadow)
	})
	t.Run("should scatter every clump and rock inside the disc", func(t *testing.T) {
		want := cfg.Rocks
		for _, c := range cfg.Clumps {
			want += c.Count
		}
		assert.Len(t, tr.Detail.Children, want)
		for _, n := range tr.Detail.Children {
			p := n.WorldPosition()
			assert.Less(t, p.LengthXZ(), tr.Radius())
			assert.InDelta(t, tr.Surface(), p.Y, 1e-4)
		}
	})
	t.Run("should lay the grass flat", func(t *testing.T) {
		up := tr.Grass.Transform.Rotation.RotateVector(math.NewVec3(0, 0, 1))
		assert.InDelta(t, 1, up.Y, 1e-5)
	})
}

func TestBuildDeterministic(t *testing.T) {
	positions := func() []math.Vec3 {
		tr := terrain.Build(terrain.DefaultConfig(), rand.New(rand.NewSource(9)))
		var out []math.Vec3
		for _, n := range tr.Detail.Children {
			out = append(out, n.Transform.Position)
		}
		return out
	}
	assert.Equal(t, positions(), positions())
}

func TestBuildUniformScatter(t *testing.T) {
	cfg := terrain.DefaultConfig()
	cfg.Scatter = 0
	cfg.Rocks = 5
	cfg.Clumps = nil
	tr := terrain.Build(cfg, nil)
	assert.Len(t, tr.Detail.Children, 5)
	assert.Equal(t, 7, scene.DisposeTree(tr.Ground))
}
