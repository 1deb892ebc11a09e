package species_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoscene/species"
)

func TestCatalog(t *testing.T) {
	t.Run("should carry two variants per base species", func(t *testing.T) {
		assert.Len(t, species.Plants(), 20)
		assert.Len(t, species.Animals(), 20)
		assert.Equal(t, 40, species.Len())
	})
	t.Run("should list plants before animals", func(t *testing.T) {
		assert.Equal(t, "pine", species.At(0).ID)
		assert.Equal(t, "rabbit", species.At(20).ID)
	})
	t.Run("should name special variants", func(t *testing.T) {
		d, ok := species.Lookup("bee2")
		assert.True(t, ok)
		assert.Equal(t, "Bumblebee", d.DisplayName)
		d, _ = species.Lookup("bear2")
		assert.Equal(t, "Polar bear", d.DisplayName)
		d, _ = species.Lookup("fox2")
		assert.Equal(t, "Red fox 2", d.DisplayName)
	})
	t.Run("should not let callers mutate the catalog", func(t *testing.T) {
		p := species.Plants()
		p[0].ID = "changed"
		assert.Equal(t, "pine", species.Plants()[0].ID)
	})
}

func TestBaseID(t *testing.T) {
	assert.Equal(t, "fox", species.BaseID("fox2"))
	assert.Equal(t, "fox", species.BaseID("fox"))
	assert.Equal(t, "", species.BaseID("12"))
}

func TestKindOf(t *testing.T) {
	assert.True(t, species.IsAnimal("panda2"))
	assert.True(t, species.IsAnimal("panda7"))
	assert.False(t, species.IsAnimal("oak2"))
	_, ok := species.KindOf("dragon")
	assert.False(t, ok)
}
