package ecosystem

import (
	stdmath "math"
	"math/rand"

	"ecoscene/math"
	"ecoscene/scene"
	"ecoscene/species"
)

// Entity is one placed plant or animal. Its position, rotation and scale live
// on the node's transform.
type Entity struct {
	ID         int
	Node       *scene.Node
	SpeciesID  string
	IsAnimal   bool
	Locomotion *Locomotion // nil for plants
}

// Locomotion drives an animal around a circle centred on where it spawned,
// bobbing as it goes. OriginalPosition never changes after spawn.
type Locomotion struct {
	OriginalPosition math.Vec3
	Speed            float32 // radians per executed tick
	Angle            float32
	MovementRadius   float32
	JumpHeight       float32
	WaveOffset       float32
}

const defaultMovementRadius = 3

// gait is the locomotion range of one animal archetype.
type gait struct {
	speedMin, speedSpan   float32
	radiusMin, radiusSpan float32
	jump                  float32
}

var (
	smallGait = gait{speedMin: 0.008, speedSpan: 0.01, radiusMin: 2, radiusSpan: 2, jump: 0.15}
	foxGait   = gait{speedMin: 0.015, speedSpan: 0.02, radiusMin: 4, radiusSpan: 3, jump: 0.15}
	baseGait  = gait{speedMin: 0.015, speedSpan: 0.02, radiusMin: 4, radiusSpan: 3, jump: 0.2}
)

func gaitFor(speciesID string) gait {
	switch species.BaseID(speciesID) {
	case "rabbit":
		return smallGait
	case "fox":
		return foxGait
	}
	return baseGait
}

// NewLocomotion draws locomotion parameters for an animal spawned at origin.
func NewLocomotion(speciesID string, origin math.Vec3, rng *rand.Rand) *Locomotion {
	g := gaitFor(speciesID)
	return &Locomotion{
		OriginalPosition: origin,
		Speed:            g.speedMin + rng.Float32()*g.speedSpan,
		Angle:            rng.Float32() * math.Tau,
		MovementRadius:   g.radiusMin + rng.Float32()*g.radiusSpan,
		JumpHeight:       g.jump,
		WaveOffset:       rng.Float32() * math.Tau,
	}
}

// Step advances the walk by one tick and returns the new position and yaw.
// elapsed is the clock time in seconds and only drives the bob.
func (l *Locomotion) Step(elapsed float64) (math.Vec3, float32) {
	l.Angle += l.Speed
	radius := l.MovementRadius
	if radius == 0 {
		radius = defaultMovementRadius
	}
	o := l.OriginalPosition
	bob := float32(stdmath.Sin(elapsed+float64(l.WaveOffset))) * l.JumpHeight
	pos := math.Vec3{
		X: o.X + math.Cos(l.Angle)*radius,
		Y: math.Max(SurfaceHeight, o.Y) + bob,
		Z: o.Z + math.Sin(l.Angle)*radius,
	}
	return pos, l.Angle + math.Pi/2
}
