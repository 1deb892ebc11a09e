// Package species is the static catalog of plants and animals the scene can
// populate. Every base species comes in two visual variants: the base id and
// the base id with a "2" suffix.
package species

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Plant Kind = iota
	Animal
)

func (k Kind) String() string {
	if k == Animal {
		return "animal"
	}
	return "plant"
}

// Descriptor describes one selectable variant.
type Descriptor struct {
	ID          string
	DisplayName string
	Icon        string
	Kind        Kind
}

type base struct {
	id, name, icon string
	// names override the generated "<name> 1" / "<name> 2" pair
	names [2]string
}

var plantBases = []base{
	{id: "pine", name: "Pine", icon: "🌲"},
	{id: "oak", name: "Oak", icon: "🌳"},
	{id: "cherry", name: "Cherry blossom", icon: "🌸"},
	{id: "willow", name: "Weeping willow", icon: "🌿"},
	{id: "bamboo", name: "Bamboo", icon: "🎋"},
	{id: "palm", name: "Coconut palm", icon: "🌴"},
	{id: "cactus", name: "Cactus", icon: "🌵"},
	{id: "mushroom", name: "Giant mushroom", icon: "🍄"},
	{id: "sunflower", name: "Sunflower", icon: "🌻"},
	{id: "birch", name: "Birch", icon: "🪵"},
}

var animalBases = []base{
	{id: "rabbit", name: "White rabbit", icon: "🐰"},
	{id: "fox", name: "Red fox", icon: "🦊"},
	{id: "panda", name: "Panda", icon: "🐼"},
	{id: "pig", name: "Piglet", icon: "🐷"},
	{id: "chick", name: "Chick", icon: "🐤"},
	{id: "penguin", name: "Penguin", icon: "🐧"},
	{id: "frog", name: "Frog", icon: "🐸"},
	{id: "sheep", name: "Sheep", icon: "🐑"},
	{id: "bear", name: "Bear", icon: "🐻", names: [2]string{"Brown bear", "Polar bear"}},
	{id: "bee", name: "Bee", icon: "🐝", names: [2]string{"Worker bee", "Bumblebee"}},
}

var (
	plants  = expand(plantBases, Plant)
	animals = expand(animalBases, Animal)
	all     = append(append([]Descriptor{}, plants...), animals...)
	byID    = index(all)
)

func expand(bases []base, kind Kind) []Descriptor {
	out := make([]Descriptor, 0, 2*len(bases))
	for _, b := range bases {
		names := b.names
		if names[0] == "" {
			names = [2]string{fmt.Sprintf("%s 1", b.name), fmt.Sprintf("%s 2", b.name)}
		}
		out = append(out,
			Descriptor{ID: b.id, DisplayName: names[0], Icon: b.icon, Kind: kind},
			Descriptor{ID: b.id + "2", DisplayName: names[1], Icon: b.icon, Kind: kind},
		)
	}
	return out
}

func index(ds []Descriptor) map[string]Descriptor {
	m := make(map[string]Descriptor, len(ds))
	for _, d := range ds {
		m[d.ID] = d
	}
	return m
}

// Plants returns the plant variants in catalog order.
func Plants() []Descriptor { return append([]Descriptor(nil), plants...) }

// Animals returns the animal variants in catalog order.
func Animals() []Descriptor { return append([]Descriptor(nil), animals...) }

// All returns plants followed by animals.
func All() []Descriptor { return append([]Descriptor(nil), all...) }

func Len() int { return len(all) }

// At returns the i-th entry of All without copying the catalog.
func At(i int) Descriptor { return all[i] }

func Lookup(id string) (Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// BaseID strips trailing digits, so "fox2" becomes "fox".
func BaseID(id string) string {
	return strings.TrimRight(id, "0123456789")
}

// KindOf resolves the kind of id or of its base species.
func KindOf(id string) (Kind, bool) {
	if d, ok := byID[id]; ok {
		return d.Kind, true
	}
	if d, ok := byID[BaseID(id)]; ok {
		return d.Kind, true
	}
	return Plant, false
}

// IsAnimal reports whether id names an animal variant or base.
func IsAnimal(id string) bool {
	k, ok := KindOf(id)
	return ok && k == Animal
}
