package scene

import (
	"ecoscene/core"
	"ecoscene/math"
)

// Scene manages a collection of nodes and the lights that illuminate them.
type Scene struct {
	Root       *Node
	Lights     []*Light
	Background core.Color
}

type LightType int

const (
	LightAmbient LightType = iota
	LightDirectional
	LightHemisphere
)

func (t LightType) String() string {
	switch t {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	case LightHemisphere:
		return "hemisphere"
	}
	return "unknown"
}

// ShadowCamera is the orthographic volume a directional light renders its
// shadow map from.
type ShadowCamera struct {
	MapSize                  int
	Left, Right, Top, Bottom float32
	Near, Far                float32
	Bias                     float32
}

// Light represents a light source. Directional lights shine from Position
// toward Target. Hemisphere lights blend Color (sky) and GroundColor by the
// surface normal's vertical component.
type Light struct {
	Name        string
	Type        LightType
	Position    math.Vec3
	Target      math.Vec3
	Color       core.Color
	GroundColor core.Color
	Intensity   float32
	CastShadow  bool
	Shadow      ShadowCamera
}

// Direction is the normalized direction the light travels.
func (l *Light) Direction() math.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Background: core.ColorWhite,
	}
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

// EachLight visits the registered lights in insertion order.
func (s *Scene) EachLight(fn func(*Light)) {
	for _, l := range s.Lights {
		fn(l)
	}
}

// ShadowCaster returns the first directional light with shadows enabled.
func (s *Scene) ShadowCaster() *Light {
	for _, l := range s.Lights {
		if l.Type == LightDirectional && l.CastShadow {
			return l
		}
	}
	return nil
}

// VisibleMeshes collects mesh nodes whose whole ancestor chain is visible.
func (s *Scene) VisibleMeshes() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Mesh != nil && n.Mesh.Geometry != nil {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.Root)
	return out
}
