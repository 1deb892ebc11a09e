package renderer

import (
	"sort"

	"ecoscene/core"
	"ecoscene/math"
	"ecoscene/scene"
)

// MaxDirectional is how many directional lights the lit shader evaluates.
const MaxDirectional = 2

type DirectionalLight struct {
	Direction math.Vec3 // direction the light travels
	Color     core.Color
}

// Lighting is the scene's lights reduced to shader inputs. Colors are
// premultiplied by intensity.
type Lighting struct {
	Ambient     core.Color
	Sky         core.Color
	Ground      core.Color
	Directional []DirectionalLight
}

// DrawItem is one mesh draw with its matrices resolved.
type DrawItem struct {
	Geometry      *scene.Geometry
	Material      *scene.Material
	Model         math.Mat4
	MVP           math.Mat4
	Normal        math.Mat4
	ReceiveShadow bool
	order         int
	depth         float32
}

type ShadowPass struct {
	LightVP  math.Mat4
	MapSize  int
	Bias     float32
	Casters  []DrawItem // MVP holds the light-space transform
	Disabled bool
}

// Frame is everything the backend needs to draw one image.
type Frame struct {
	Clear     core.Color
	CameraPos math.Vec3
	Lighting  Lighting
	Shadow    ShadowPass
	Opaque    []DrawItem
	Blended   []DrawItem // drawn after Opaque, back to front
}

func add(a, b core.Color) core.Color {
	return core.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B, A: 1}
}

// collectLighting sums ambient and hemisphere terms and picks the directional
// lights. The shadow caster, if any, is always Directional[0].
func collectLighting(s *scene.Scene) Lighting {
	var l Lighting
	caster := s.ShadowCaster()
	if caster != nil {
		l.Directional = append(l.Directional, DirectionalLight{
			Direction: caster.Direction(),
			Color:     caster.Color.Scale(caster.Intensity),
		})
	}
	s.EachLight(func(light *scene.Light) {
		switch light.Type {
		case scene.LightAmbient:
			l.Ambient = add(l.Ambient, light.Color.Scale(light.Intensity))
		case scene.LightHemisphere:
			l.Sky = add(l.Sky, light.Color.Scale(light.Intensity))
			l.Ground = add(l.Ground, light.GroundColor.Scale(light.Intensity))
		case scene.LightDirectional:
			if light != caster && len(l.Directional) < MaxDirectional {
				l.Directional = append(l.Directional, DirectionalLight{
					Direction: light.Direction(),
					Color:     light.Color.Scale(light.Intensity),
				})
			}
		}
	})
	return l
}

// lightViewProj builds the orthographic shadow volume of a directional light.
func lightViewProj(l *scene.Light) (math.Mat4, bool) {
	dir := l.Direction()
	if dir.Length() < 0.5 {
		return math.Mat4Identity(), false
	}
	up := math.Vec3Up
	if math.Abs(dir.Dot(up)) > 0.999 {
		up = math.Vec3Front
	}
	sc := l.Shadow
	view := math.Mat4LookAt(l.Position, l.Target, up)
	proj := math.Mat4Orthographic(sc.Left, sc.Right, sc.Bottom, sc.Top, sc.Near, sc.Far)
	return view.Mul(proj), true
}

// plan walks the visible meshes and sorts them into passes.
func plan(s *scene.Scene, cam *scene.Camera, clear core.Color, shadows bool) *Frame {
	f := &Frame{Clear: clear, CameraPos: cam.Position, Lighting: collectLighting(s)}

	caster := s.ShadowCaster()
	f.Shadow.Disabled = !shadows || caster == nil
	if !f.Shadow.Disabled {
		vp, ok := lightViewProj(caster)
		f.Shadow.LightVP = vp
		f.Shadow.MapSize = caster.Shadow.MapSize
		f.Shadow.Bias = caster.Shadow.Bias
		f.Shadow.Disabled = !ok
	}

	vp := cam.GetViewProjectionMatrix()
	for _, n := range s.VisibleMeshes() {
		mat := n.Mesh.Material
		if mat == nil || mat.Disposed() || n.Mesh.Geometry.Disposed() {
			continue
		}
		model := n.GetWorldMatrix()
		item := DrawItem{
			Geometry:      n.Mesh.Geometry,
			Material:      mat,
			Model:         model,
			MVP:           model.Mul(vp),
			Normal:        model.NormalMatrix(),
			ReceiveShadow: n.ReceiveShadow && !f.Shadow.Disabled,
			order:         n.RenderOrder,
			depth:         cam.Position.Distance(model.Translation()),
		}
		if n.CastShadow && !f.Shadow.Disabled {
			c := item
			c.MVP = model.Mul(f.Shadow.LightVP)
			f.Shadow.Casters = append(f.Shadow.Casters, c)
		}
		if mat.Transparent {
			f.Blended = append(f.Blended, item)
		} else {
			f.Opaque = append(f.Opaque, item)
		}
	}

	sort.SliceStable(f.Opaque, func(i, j int) bool { return f.Opaque[i].order < f.Opaque[j].order })
	sort.SliceStable(f.Blended, func(i, j int) bool {
		a, b := f.Blended[i], f.Blended[j]
		if a.order != b.order {
			return a.order < b.order
		}
		return a.depth > b.depth
	})
	return f
}
