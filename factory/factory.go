// Package factory builds the procedural plant and animal models. Each species id
// maps to a recipe that assembles a group of primitive meshes; the returned
// group sits at the origin so callers place and scale it.
package factory

import (
	"fmt"
	"log/slog"
	"math/rand"

	"ecoscene/scene"
	"ecoscene/species"
)

type recipe func(*assembly)

const (
	DefaultPlant  = "pine"
	DefaultAnimal = "rabbit"
)

// Factory owns the recipe registry and the random source used for jitter.
type Factory struct {
	rng     *rand.Rand
	logger  *slog.Logger
	plants  map[string]recipe
	animals map[string]recipe
}

type Option func(*Factory)

func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// New returns a factory drawing jitter from rng. A nil rng gets a source
// seeded with 1.
func New(rng *rand.Rand, opts ...Option) *Factory {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	f := &Factory{
		rng:     rng,
		logger:  slog.Default(),
		plants:  make(map[string]recipe, len(plantRecipes)+2),
		animals: make(map[string]recipe, len(animalRecipes)),
	}
	for id, r := range plantRecipes {
		f.plants[id] = r
	}
	// oak has no model of its own.
	f.plants["oak"] = pine
	f.plants["oak2"] = pine
	for id, r := range animalRecipes {
		f.animals[id] = r
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// CreatePlant builds the plant model for id, falling back to the base species
// and then to the default plant.
func (f *Factory) CreatePlant(id string) *scene.Node {
	return f.build(id, "plant", f.plants, DefaultPlant)
}

// CreateAnimal builds the animal model for id, falling back to the base species
// and then to the default animal.
func (f *Factory) CreateAnimal(id string) *scene.Node {
	return f.build(id, "animal", f.animals, DefaultAnimal)
}

// Create dispatches on the catalog kind of id. Unknown ids build the default plant.
func (f *Factory) Create(id string) (*scene.Node, species.Kind) {
	if species.IsAnimal(id) {
		return f.CreateAnimal(id), species.Animal
	}
	return f.CreatePlant(id), species.Plant
}

// Has reports whether id resolves to a dedicated recipe without falling back
// to a kind default.
func (f *Factory) Has(id string) bool {
	_, ok := f.resolve(id, f.plants)
	if ok {
		return true
	}
	_, ok = f.resolve(id, f.animals)
	return ok
}

func (f *Factory) resolve(id string, registry map[string]recipe) (recipe, bool) {
	if r, ok := registry[id]; ok {
		return r, true
	}
	if r, ok := registry[species.BaseID(id)]; ok {
		return r, true
	}
	return nil, false
}

func (f *Factory) build(id, kind string, registry map[string]recipe, fallback string) *scene.Node {
	r, ok := f.resolve(id, registry)
	if !ok {
		f.logger.Debug("unknown species, using default", "kind", kind, "id", id, "default", fallback)
		r = registry[fallback]
	}
	node, err := f.run(id, r)
	if err != nil {
		f.logger.Error("build species model", "kind", kind, "id", id, "error", err)
		node, _ = f.run(fallback, registry[fallback])
	}
	return node
}

// run executes a recipe into a fresh group, converting a panic into an error.
func (f *Factory) run(id string, r recipe) (node *scene.Node, err error) {
	a := &assembly{root: scene.NewNode(id), rng: f.rng}
	defer func() {
		if p := recover(); p != nil {
			scene.DisposeTree(a.root)
			node, err = nil, fmt.Errorf("recipe %q: %v", id, p)
		}
	}()
	r(a)
	return a.root, nil
}
