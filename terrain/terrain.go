// Package terrain builds the circular ground the ecosystem stands on: a soil
// cylinder, a grass disc on top, and scattered grass clumps and rocks.
package terrain

import (
	stdmath "math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"ecoscene/math"
	"ecoscene/scene"
)

const (
	GroundColor = 0x8D6E63
	GrassColor  = 0x4CAF50
)

type Config struct {
	Radius   float32 // disc radius, half the ground size
	Depth    float32 // soil cylinder height
	Segments int
	Rocks    int
	Clumps   []ClumpType
	// Scatter weights clump placement by noise; 0 scatters uniformly.
	Scatter float64
	Seed    int64
}

// ClumpType is one kind of grass tuft. Radius and Height shape a cone, or a
// tapered cylinder when TopRadius is non-zero.
type ClumpType struct {
	Radius    float32
	TopRadius float32
	Height    float32
	Segments  int
	Color     uint32
	Count     int
}

func DefaultConfig() Config {
	return Config{
		Radius:   90,
		Depth:    5,
		Segments: 32,
		Rocks:    30,
		Clumps: []ClumpType{
			{Radius: 0.2, Height: 0.4, Segments: 8, Color: 0x689f38, Count: 100},
			{Radius: 0.15, Height: 0.3, Segments: 6, Color: 0x558b2f, Count: 80},
			{Radius: 0.25, Height: 0.5, Segments: 10, Color: 0x7cb342, Count: 60},
			{Radius: 0.15, TopRadius: 0.1, Height: 0.3, Segments: 4, Color: 0x43a047, Count: 50},
		},
		Scatter: 0.6,
		Seed:    1,
	}
}

// Surface is the height of the grass disc.
func (c Config) Surface() float32 { return c.Depth / 2 }

type Terrain struct {
	Ground *scene.Node // first child is always the grass disc
	Grass  *scene.Node
	Detail *scene.Node
	config Config
}

func (t *Terrain) Radius() float32  { return t.config.Radius }
func (t *Terrain) Surface() float32 { return t.config.Surface() }

func (t *Terrain) GroundMaterial() *scene.Material { return t.Ground.Mesh.Material }
func (t *Terrain) GrassMaterial() *scene.Material  { return t.Grass.Mesh.Material }

// Build creates the ground and its details. Detail placement draws from rng.
func Build(cfg Config, rng *rand.Rand) *Terrain {
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	surface := cfg.Surface()

	soil := scene.NewStandardMaterial(GroundColor, 0.95, 0)
	soil.DoubleSide = true
	ground := scene.NewMeshNode("ground", scene.NewMesh(
		scene.NewCylinderGeometry(cfg.Radius, cfg.Radius, cfg.Depth, cfg.Segments), soil))
	ground.CastShadow = false

	turf := scene.NewStandardMaterial(GrassColor, 0.9, 0)
	turf.DoubleSide = true
	grass := scene.NewMeshNode("grass", scene.NewMesh(
		scene.NewCircleGeometry(cfg.Radius-0.5, cfg.Segments), turf))
	grass.CastShadow = false
	grass.SetPosition(math.NewVec3(0, surface+0.01, 0))
	grass.SetEuler(-math.Pi/2, 0, 0)
	ground.AddChild(grass)

	detail := scene.NewNode("ground-detail")
	ground.AddChild(detail)

	s := scatter{rng: rng, noise: opensimplex.NewNormalized(cfg.Seed), weight: cfg.Scatter}
	for _, ct := range cfg.Clumps {
		addClumps(detail, ct, &s, cfg.Radius-1, surface)
	}
	addRocks(detail, cfg.Rocks, &s, cfg.Radius-2, surface)

	return &Terrain{Ground: ground, Grass: grass, Detail: detail, config: cfg}
}

func addClumps(parent *scene.Node, ct ClumpType, s *scatter, radius, surface float32) {
	var geo *scene.Geometry
	if ct.TopRadius > 0 {
		geo = scene.NewCylinderGeometry(ct.TopRadius, ct.Radius, ct.Height, ct.Segments)
	} else {
		geo = scene.NewConeGeometry(ct.Radius, ct.Height, ct.Segments)
	}
	m := scene.NewStandardMaterial(ct.Color, 0.8, 0)
	for i := 0; i < ct.Count; i++ {
		x, z := s.point(radius)
		n := scene.NewMeshNode("grass-clump", scene.NewMesh(geo, m))
		n.SetPosition(math.NewVec3(x, surface, z))
		n.SetEuler((s.rng.Float32()-0.5)*0.2, s.rng.Float32()*math.Tau, 0)
		parent.AddChild(n)
	}
}

func addRocks(parent *scene.Node, count int, s *scatter, radius, surface float32) {
	m := scene.NewStandardMaterial(0x616161, 0.95, 0.1)
	for i := 0; i < count; i++ {
		x, z := s.point(radius)
		size := 0.3 + s.rng.Float32()*0.2
		n := scene.NewMeshNode("rock", scene.NewMesh(scene.NewDodecahedronGeometry(size, 0), m))
		n.SetPosition(math.NewVec3(x, surface, z))
		n.SetEuler(s.rng.Float32()*math.Pi, s.rng.Float32()*math.Pi, s.rng.Float32()*math.Pi)
		parent.AddChild(n)
	}
}

// scatter samples points on a disc, preferring areas where layered simplex
// noise is high so details gather into patches.
type scatter struct {
	rng    *rand.Rand
	noise  opensimplex.Noise
	weight float64
}

const scatterTries = 8

func (s *scatter) point(radius float32) (x, z float32) {
	for try := 0; ; try++ {
		r := s.rng.Float32() * radius
		a := s.rng.Float32() * math.Tau
		x, z = math.Cos(a)*r, math.Sin(a)*r
		if s.weight <= 0 || try == scatterTries-1 {
			return x, z
		}
		density := octaveNoise(s.noise, float64(x), float64(z), 3, 0.04, 0.5)
		if s.rng.Float64() < (1-s.weight)+s.weight*density {
			return x, z
		}
	}
}

// octaveNoise layers several frequencies of normalized noise into [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return stdmath.Max(0, stdmath.Min(1, total/maxVal))
}
