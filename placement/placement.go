// Package placement finds spawn points on the terrain disc by rejection
// sampling against the positions already occupied.
package placement

import (
	"math/rand"

	"ecoscene/math"
)

type Config struct {
	TerrainRadius float32
	MinRadius     float32 // keeps spawns out of the central focus area
	MaxRadius     float32
	MaxAttempts   int
	Spacing       float32 // minimum gap as a multiple of the entity size
}

func DefaultConfig() Config {
	return Config{
		TerrainRadius: 90,
		MinRadius:     20,
		MaxRadius:     90,
		MaxAttempts:   100,
		Spacing:       1.5,
	}
}

type Engine struct {
	config Config
	rng    *rand.Rand
}

func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Engine{config: cfg, rng: rng}
}

func (e *Engine) Config() Config { return e.config }

// GenerateValidPosition samples up to MaxAttempts candidates. When none is
// valid it returns the last candidate with ok set to false, pulled inside the
// terrain bounds.
func (e *Engine) GenerateValidPosition(entitySize float32, occupied []math.Vec3) (x, z float32, ok bool) {
	for i := 0; i < e.config.MaxAttempts; i++ {
		x, z = e.sample()
		if e.IsValid(x, z, entitySize, occupied) {
			return x, z, true
		}
	}
	x, z = e.clamp(x, z, entitySize)
	return x, z, false
}

// IsValid reports whether (x, z) keeps the entity on the terrain and clear of
// every occupied position.
func (e *Engine) IsValid(x, z, entitySize float32, occupied []math.Vec3) bool {
	if math.NewVec3(x, 0, z).LengthXZ() > e.config.TerrainRadius-entitySize {
		return false
	}
	gap := entitySize * e.config.Spacing
	for _, p := range occupied {
		if math.NewVec3(x-p.X, 0, z-p.Z).LengthXZ() < gap {
			return false
		}
	}
	return true
}

func (e *Engine) sample() (x, z float32) {
	angle := e.rng.Float32() * math.Tau
	r := e.config.MinRadius + e.rng.Float32()*(e.config.MaxRadius-e.config.MinRadius)
	return math.Cos(angle) * r, math.Sin(angle) * r
}

func (e *Engine) clamp(x, z, entitySize float32) (float32, float32) {
	limit := math.Max(0, e.config.TerrainRadius-entitySize)
	d := math.NewVec3(x, 0, z).LengthXZ()
	if d <= limit || d == 0 {
		return x, z
	}
	k := limit / d
	return x * k, z * k
}
