package factory_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscene/factory"
	"ecoscene/math"
	"ecoscene/scene"
	"ecoscene/species"
)

func meshCount(n *scene.Node) int {
	count := 0
	n.Traverse(func(c *scene.Node) {
		if c.Mesh != nil {
			count++
		}
	})
	return count
}

func TestCreate(t *testing.T) {
	f := factory.New(rand.New(rand.NewSource(7)))

	t.Run("should build a non-empty model for every catalog id", func(t *testing.T) {
		for _, d := range species.All() {
			node, kind := f.Create(d.ID)
			require.NotNil(t, node, d.ID)
			assert.Equal(t, d.Kind, kind, d.ID)
			assert.Positive(t, meshCount(node), d.ID)
		}
	})
	t.Run("should return groups at the origin with identity transform", func(t *testing.T) {
		node := f.CreateAnimal("fox")
		assert.Equal(t, math.Vec3Zero, node.Transform.Position)
		assert.Equal(t, math.Vec3One, node.Transform.Scale)
		assert.Nil(t, node.Parent)
	})
	t.Run("should enable shadows on every mesh", func(t *testing.T) {
		node := f.CreatePlant("willow2")
		node.Traverse(func(n *scene.Node) {
			if n.Mesh != nil {
				assert.True(t, n.CastShadow)
				assert.True(t, n.ReceiveShadow)
			}
		})
	})
	t.Run("should fall back to the default plant for unknown ids", func(t *testing.T) {
		want := meshCount(f.CreatePlant(factory.DefaultPlant))
		node, kind := f.Create("dragonfruit")
		require.NotNil(t, node)
		assert.Equal(t, species.Plant, kind)
		assert.Equal(t, want, meshCount(node))
	})
	t.Run("should fall back to the base species", func(t *testing.T) {
		assert.Equal(t, meshCount(f.CreateAnimal("penguin")), meshCount(f.CreateAnimal("penguin7")))
	})
	t.Run("should build oak as a pine", func(t *testing.T) {
		assert.Equal(t, meshCount(f.CreatePlant("pine")), meshCount(f.CreatePlant("oak")))
	})
	t.Run("should build the default animal for unknown animals", func(t *testing.T) {
		assert.Equal(t, meshCount(f.CreateAnimal(factory.DefaultAnimal)), meshCount(f.CreateAnimal("unicorn")))
	})
	t.Run("should distinguish variants", func(t *testing.T) {
		assert.NotEqual(t, meshCount(f.CreateAnimal("pig")), meshCount(f.CreateAnimal("pig2")))
		assert.NotEqual(t, meshCount(f.CreateAnimal("sheep")), meshCount(f.CreateAnimal("sheep2")))
	})
}

func TestDeterminism(t *testing.T) {
	positions := func(seed int64) []math.Vec3 {
		f := factory.New(rand.New(rand.NewSource(seed)))
		var out []math.Vec3
		f.CreateAnimal("frog2").Traverse(func(n *scene.Node) {
			out = append(out, n.Transform.Position)
		})
		return out
	}
	assert.Equal(t, positions(42), positions(42))
	assert.NotEqual(t, positions(42), positions(43))
}

func TestHas(t *testing.T) {
	f := factory.New(nil)
	assert.True(t, f.Has("bee2"))
	assert.True(t, f.Has("oak"))
	assert.True(t, f.Has("bamboo9"))
	assert.False(t, f.Has("unicorn"))
}
