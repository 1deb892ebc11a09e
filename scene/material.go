package scene

import "ecoscene/core"

// Material describes surface appearance for the standard lit shader.
type Material struct {
	Name      string
	Color     core.Color
	Emissive  core.Color
	Roughness float32
	Metalness float32

	// Opacity is used only when Transparent is set.
	Opacity     float32
	Transparent bool
	DoubleSide  bool

	disposed bool
}

// NewStandardMaterial returns an opaque material with the given color.
func NewStandardMaterial(color uint32, roughness, metalness float32) *Material {
	return &Material{
		Color:     core.ColorHex(color),
		Emissive:  core.ColorBlack,
		Roughness: roughness,
		Metalness: metalness,
		Opacity:   1,
	}
}

// SetColor replaces the base color in place.
func (m *Material) SetColor(hex uint32) {
	m.Color = core.ColorHex(hex)
}

// Dispose marks the material released. Safe to call repeatedly.
func (m *Material) Dispose() {
	m.disposed = true
}

func (m *Material) Disposed() bool {
	return m.disposed
}

func (m *Material) SetEmissive(hex uint32) {
	m.Emissive = core.ColorHex(hex)
}
