// Package lod trades shadow quality for distance from the camera.
package lod

import (
	"log/slog"

	"ecoscene/math"
	"ecoscene/scene"
)

type Level int

const (
	High Level = iota
	Medium
	Low
	VeryLow
)

func (l Level) String() string {
	switch l {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	}
	return "very-low"
}

// Distances are the upper bounds of the High, Medium and Low levels.
type Distances struct {
	High, Medium, Low, VeryLow float32
}

func DefaultDistances() Distances {
	return Distances{High: 10, Medium: 25, Low: 50, VeryLow: 100}
}

// Band is the shadow participation of one entity.
type Band int

const (
	Full     Band = iota // cast and receive
	CastOnly             // cast, no receive
	NoShadow
)

// Stats counts the entities at each level after the last Apply.
type Stats [VeryLow + 1]int

type Manager struct {
	distances Distances
	bands     map[*scene.Node]Band
	stats     Stats
	logger    *slog.Logger
}

type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func NewManager(d Distances, opts ...Option) *Manager {
	m := &Manager{distances: d, bands: make(map[*scene.Node]Band), logger: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Stats() Stats { return m.stats }

func (m *Manager) LevelFor(distance float32) Level {
	switch {
	case distance <= m.distances.High:
		return High
	case distance <= m.distances.Medium:
		return Medium
	case distance <= m.distances.Low:
		return Low
	}
	return VeryLow
}

func (m *Manager) BandFor(distance float32) Band {
	switch {
	case distance > m.distances.VeryLow:
		return NoShadow
	case distance > m.distances.Low:
		return CastOnly
	}
	return Full
}

// Apply sets the shadow flags of each root's meshes from its distance to the
// camera. Subtrees are only walked when a root changes band.
func (m *Manager) Apply(camera math.Vec3, roots []*scene.Node) {
	seen := make(map[*scene.Node]struct{}, len(roots))
	var stats Stats
	changed := 0
	for _, n := range roots {
		if n == nil {
			continue
		}
		seen[n] = struct{}{}
		d := camera.Distance(n.WorldPosition())
		stats[m.LevelFor(d)]++
		band := m.BandFor(d)
		if prev, ok := m.bands[n]; ok && prev == band {
			continue
		}
		m.bands[n] = band
		n.SetShadows(band != NoShadow, band == Full)
		changed++
	}
	m.stats = stats
	if changed > 0 {
		m.logger.Debug("lod bands changed", "changed", changed,
			High.String(), stats[High], Medium.String(), stats[Medium],
			Low.String(), stats[Low], VeryLow.String(), stats[VeryLow])
	}
	for n := range m.bands {
		if _, ok := seen[n]; !ok {
			delete(m.bands, n)
		}
	}
}

// Reset forgets the cached bands so the next Apply rewrites every subtree.
func (m *Manager) Reset() {
	clear(m.bands)
}
