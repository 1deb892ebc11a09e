package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoscene/core"
	"ecoscene/math"
)

func TestColorHex(t *testing.T) {
	t.Run("should unpack channels", func(t *testing.T) {
		c := core.ColorHex(0xff8000)
		assert.InDelta(t, 1.0, c.R, 1e-6)
		assert.InDelta(t, 128.0/255, c.G, 1e-6)
		assert.InDelta(t, 0.0, c.B, 1e-6)
		assert.Equal(t, float32(1), c.A)
	})
	t.Run("should round trip", func(t *testing.T) {
		for _, v := range []uint32{0x8D6E63, 0x1B5E20, 0xF5F5F5, 0x000000, 0xffffff} {
			assert.Equal(t, v, core.ColorHex(v).Hex())
		}
	})
}

func TestTransform(t *testing.T) {
	tr := core.NewTransform()
	assert.Equal(t, math.Mat4Identity(), tr.GetMatrix())

	tr.Position = math.NewVec3(1, 2, 3)
	assert.Equal(t, math.NewVec3(1, 2, 3), tr.GetMatrix().Translation())
}
