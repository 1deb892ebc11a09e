// Package ecosystem keeps the number of live plants and animals in step with
// a target count and walks the animals around their spawn points.
package ecosystem

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"ecoscene/math"
	"ecoscene/scene"
	"ecoscene/species"
)

// SurfaceHeight is the y coordinate entities stand at.
const SurfaceHeight = 2.5

// EntitySize is the footprint radius used for spacing and bounds checks.
const EntitySize = 1.5

// DefaultTerrainRadius bounds animal walks when no radius is configured.
const DefaultTerrainRadius = 90

// FallbackSpecies stands in for a species whose model failed to build.
const FallbackSpecies = "pine"

var ErrNoParent = errors.New("ecosystem: no parent node")

// Builder creates the model for a species id.
type Builder interface {
	Create(id string) (*scene.Node, species.Kind)
}

// Placer finds a free spot on the terrain.
type Placer interface {
	GenerateValidPosition(entitySize float32, occupied []math.Vec3) (x, z float32, ok bool)
}

type Controller struct {
	parent   *scene.Node
	builder  Builder
	placer   Placer
	rng      *rand.Rand
	logger   *slog.Logger
	entities []*Entity
	nextID   int
	catalog  []species.Descriptor
	radius   float32
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithCatalog restricts which species are spawned.
func WithCatalog(ds []species.Descriptor) Option {
	return func(c *Controller) { c.catalog = ds }
}

// WithTerrainRadius sets the disc that animal walks must stay inside.
func WithTerrainRadius(r float32) Option {
	return func(c *Controller) { c.radius = r }
}

// NewController spawns entities under parent.
func NewController(parent *scene.Node, b Builder, p Placer, rng *rand.Rand, opts ...Option) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	c := &Controller{
		parent:  parent,
		builder: b,
		placer:  p,
		rng:     rng,
		logger:  slog.Default(),
		catalog: species.All(),
		radius:  DefaultTerrainRadius,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Reconcile grows or shrinks the population to target. Growth appends new
// entities; shrinking removes from the tail and disposes what it removes.
func (c *Controller) Reconcile(target int) error {
	if c.parent == nil {
		return ErrNoParent
	}
	if target < 0 {
		target = 0
	}
	current := len(c.entities)
	switch {
	case target > current:
		occupied := c.Positions()
		for i := current; i < target; i++ {
			e, err := c.spawn(occupied)
			if err != nil {
				return fmt.Errorf("reconcile to %d: %w", target, err)
			}
			occupied = append(occupied, e.Node.Transform.Position)
		}
		c.logger.Debug("ecosystem grown", "from", current, "to", target)
	case target < current:
		for i := current - 1; i >= target; i-- {
			c.remove(c.entities[i])
			c.entities[i] = nil
		}
		c.entities = c.entities[:target]
		c.logger.Debug("ecosystem shrunk", "from", current, "to", target)
	}
	return nil
}

func (c *Controller) spawn(occupied []math.Vec3) (*Entity, error) {
	if len(c.catalog) == 0 {
		return nil, errors.New("empty species catalog")
	}
	id := c.catalog[c.rng.Intn(len(c.catalog))].ID
	x, z, ok := c.placer.GenerateValidPosition(EntitySize, occupied)
	if !ok {
		c.logger.Debug("no free position, using best effort", "species", id, "x", x, "z", z)
	}
	node, kind := c.build(id)
	pos := math.NewVec3(x, SurfaceHeight, z)

	c.nextID++
	e := &Entity{ID: c.nextID, Node: node, SpeciesID: id, IsAnimal: kind == species.Animal}
	if e.IsAnimal {
		e.Locomotion = NewLocomotion(id, pos, c.rng)
		pos = c.inward(pos, EntitySize+e.Locomotion.MovementRadius)
		e.Locomotion.OriginalPosition = pos
	}
	node.SetPosition(pos)
	node.SetUniformScale(1)
	node.Visible = true
	c.parent.AddChild(node)
	c.entities = append(c.entities, e)
	return e, nil
}

// inward pulls p toward the centre until a circle of radius reach around it
// fits inside the terrain disc.
func (c *Controller) inward(p math.Vec3, reach float32) math.Vec3 {
	limit := math.Max(c.radius-reach, 0)
	d := p.LengthXZ()
	if d <= limit || d == 0 {
		return p
	}
	k := limit / d
	return math.Vec3{X: p.X * k, Y: p.Y, Z: p.Z * k}
}

// build guards the builder so one bad model cannot break the count. A failed
// build is replaced by the fallback species, then by an empty group.
func (c *Controller) build(id string) (*scene.Node, species.Kind) {
	if node, kind, ok := c.tryBuild(id); ok {
		return node, kind
	}
	if node, kind, ok := c.tryBuild(FallbackSpecies); ok {
		return node, kind
	}
	return scene.NewNode(id), species.Plant
}

func (c *Controller) tryBuild(id string) (node *scene.Node, kind species.Kind, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("build entity", "species", id, "panic", r)
			node, kind, ok = nil, species.Plant, false
		}
	}()
	node, kind = c.builder.Create(id)
	return node, kind, node != nil
}

func (c *Controller) remove(e *Entity) {
	e.Node.RemoveFromParent()
	scene.DisposeTree(e.Node)
}

// Animate advances every animal by one tick. elapsed is seconds on the
// scheduler clock.
func (c *Controller) Animate(elapsed float64) {
	for _, e := range c.entities {
		if e.Locomotion == nil || e.Node == nil {
			continue
		}
		pos, yaw := e.Locomotion.Step(elapsed)
		e.Node.SetPosition(pos)
		e.Node.SetYaw(yaw)
	}
}

// Entities returns a copy of the tracking list in insertion order.
func (c *Controller) Entities() []*Entity {
	return append([]*Entity(nil), c.entities...)
}

func (c *Controller) Len() int { return len(c.entities) }

// Positions returns the current node positions in insertion order.
func (c *Controller) Positions() []math.Vec3 {
	out := make([]math.Vec3, 0, len(c.entities))
	for _, e := range c.entities {
		out = append(out, e.Node.Transform.Position)
	}
	return out
}

// DisposeAll detaches and releases every entity.
func (c *Controller) DisposeAll() {
	for _, e := range c.entities {
		c.remove(e)
	}
	c.entities = nil
}

// Roots returns the entity nodes in insertion order.
func (c *Controller) Roots() []*scene.Node {
	out := make([]*scene.Node, 0, len(c.entities))
	for _, e := range c.entities {
		out = append(out, e.Node)
	}
	return out
}
