package math_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecoscene/math"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestVec3(t *testing.T) {
	t.Run("should add and subtract", func(t *testing.T) {
		a := math.NewVec3(1, 2, 3)
		b := math.NewVec3(4, 5, 6)
		assert.Equal(t, math.NewVec3(5, 7, 9), a.Add(b))
		assert.Equal(t, math.NewVec3(3, 3, 3), b.Sub(a))
		assert.Equal(t, float32(32), a.Dot(b))
	})
	t.Run("should follow right handed cross product", func(t *testing.T) {
		assert.Equal(t, math.Vec3Front, math.Vec3Right.Cross(math.Vec3Up))
	})
	t.Run("should ignore height in ground plane length", func(t *testing.T) {
		assert.InDelta(t, 5, math.NewVec3(3, 100, 4).LengthXZ(), eps)
	})
	t.Run("should leave zero vector unchanged when normalizing", func(t *testing.T) {
		assert.Equal(t, math.Vec3Zero, math.Vec3Zero.Normalize())
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), math.Clamp(-3, 1, 2))
	assert.Equal(t, float32(2), math.Clamp(9, 1, 2))
	assert.Equal(t, float32(1.5), math.Clamp(1.5, 1, 2))
}

func TestQuaternion(t *testing.T) {
	t.Run("yaw should turn front into right after a quarter turn", func(t *testing.T) {
		q := math.QuaternionFromYaw(math.Pi / 2)
		assertVec(t, math.NewVec3(1, 0, 0), q.RotateVector(math.Vec3Front))
	})
	t.Run("euler with only y should equal yaw", func(t *testing.T) {
		a := math.QuaternionFromEuler(0, 0.7, 0)
		b := math.QuaternionFromYaw(0.7)
		assert.InDelta(t, b.Y, a.Y, eps)
		assert.InDelta(t, b.W, a.W, eps)
	})
	t.Run("matrix should agree with direct rotation", func(t *testing.T) {
		q := math.QuaternionFromAxisAngle(math.NewVec3(1, 1, 0), 1.1)
		v := math.NewVec3(0.3, -2, 5)
		assertVec(t, q.RotateVector(v), q.ToMat4().TransformPoint(v))
	})
}

func TestMat4(t *testing.T) {
	t.Run("TRS should scale then rotate then translate", func(t *testing.T) {
		m := math.Mat4TRS(math.NewVec3(10, 0, 0), math.QuaternionFromYaw(math.Pi/2), math.Splat(2))
		// (0,0,1) scaled to (0,0,2), yawed to (2,0,0), moved to (12,0,0)
		assertVec(t, math.NewVec3(12, 0, 0), m.TransformPoint(math.Vec3Front))
	})
	t.Run("composition should apply left operand first", func(t *testing.T) {
		local := math.Mat4Translation(math.NewVec3(1, 0, 0))
		parent := math.Mat4Scale(math.Splat(3))
		assertVec(t, math.NewVec3(3, 0, 0), local.Mul(parent).TransformPoint(math.Vec3Zero))
	})
	t.Run("look at should move the eye to the origin", func(t *testing.T) {
		eye := math.NewVec3(0, 60, 120)
		view := math.Mat4LookAt(eye, math.Vec3Zero, math.Vec3Up)
		assertVec(t, math.Vec3Zero, view.TransformPoint(eye))
		// target sits straight ahead on -Z
		p := view.TransformPoint(math.Vec3Zero)
		assert.InDelta(t, 0, p.X, eps)
		assert.Less(t, p.Z, float32(0))
	})
	t.Run("normal matrix should undo non uniform scale", func(t *testing.T) {
		m := math.Mat4Scale(math.NewVec3(2, 1, 1))
		n := m.NormalMatrix().TransformPoint(math.NewVec3(1, 0, 0))
		assertVec(t, math.NewVec3(0.5, 0, 0), n)
	})
}
