package scenemanager

import (
	"ecoscene/scene"
)

const (
	PreviewName        = "previewMesh"
	previewRenderOrder = 1000
	previewGrowStep    = 0.05
	previewFullScale   = 2.5
	previewFocusScale  = 0.5
	previewHeight      = 2.5
)

// preview is the single highlighted species model. Outside focus mode it
// grows from nothing at the centre of the terrain, one step per executed tick.
type preview struct {
	id      string
	focused bool
	node    *scene.Node
	scale   float32
	growing bool
}

// Step advances the grow animation.
func (p *preview) Step() {
	if !p.growing {
		return
	}
	p.scale += previewGrowStep
	if p.scale > previewFullScale {
		p.scale = previewFullScale
		p.growing = false
	}
	p.node.SetUniformScale(p.scale)
}

func (p *preview) dispose() {
	p.node.RemoveFromParent()
	scene.DisposeTree(p.node)
	p.growing = false
}
