// Package opengl is the OpenGL 4.1 core backend that draws planned frames.
package opengl

import (
	"fmt"
	"log/slog"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"ecoscene/math"
	"ecoscene/renderer"
	"ecoscene/scene"
)

const maxDirectional = renderer.MaxDirectional

// Backend implements renderer.Backend. It must be created and used on the
// thread that owns the GL context.
type Backend struct {
	program    uint32
	lit        *uniforms
	shadowProg uint32
	depth      *uniforms
	shadowMap  *ShadowMap

	viewportW, viewportH int32
	gpuMeshes            map[*scene.Geometry]*GPUMesh
	logger               *slog.Logger
}

// NewBackend initialises OpenGL. The GLFW context must be current.
func NewBackend(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	prog, err := newProgram(litVertSrc, litFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	shadowProg, err := newProgram(depthVertSrc, depthFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	b := &Backend{
		program:    prog,
		lit:        newUniforms(prog),
		shadowProg: shadowProg,
		depth:      newUniforms(shadowProg),
		gpuMeshes:  make(map[*scene.Geometry]*GPUMesh),
		logger:     logger,
	}
	gl.UseProgram(prog)
	b.lit.integer("shadowMap", 0)
	b.lit.mat4("lightViewProj", math.Mat4Identity())
	return b, nil
}

func (b *Backend) SetViewport(width, height int) {
	b.viewportW, b.viewportH = int32(width), int32(height)
	gl.Viewport(0, 0, b.viewportW, b.viewportH)
}

func (b *Backend) Draw(f *renderer.Frame) error {
	shadows := !f.Shadow.Disabled
	if shadows {
		if err := b.ensureShadowMap(f.Shadow.MapSize); err != nil {
			return fmt.Errorf("shadows: %w", err)
		}
		b.shadowPass(&f.Shadow)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, b.viewportW, b.viewportH)
	gl.ClearColor(f.Clear.R, f.Clear.G, f.Clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(b.program)
	b.frameUniforms(f, shadows)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for i := range f.Opaque {
		b.drawItem(&f.Opaque[i])
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for i := range f.Blended {
		b.drawItem(&f.Blended[i])
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	return nil
}

func (b *Backend) ensureShadowMap(size int) error {
	if b.shadowMap != nil && int(b.shadowMap.Size) == size {
		return nil
	}
	if b.shadowMap != nil {
		b.shadowMap.Destroy()
		b.shadowMap = nil
	}
	sm, err := NewShadowMap(size)
	if err != nil {
		return err
	}
	b.shadowMap = sm
	return nil
}

func (b *Backend) shadowPass(sp *renderer.ShadowPass) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.shadowMap.FBO)
	gl.Viewport(0, 0, b.shadowMap.Size, b.shadowMap.Size)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(b.shadowProg)
	gl.Disable(gl.CULL_FACE)
	for i := range sp.Casters {
		c := &sp.Casters[i]
		gpu := b.ensureUploaded(c.Geometry)
		if gpu == nil {
			continue
		}
		b.depth.mat4("lightMVP", c.MVP)
		gpu.draw(len(c.Geometry.Vertices))
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (b *Backend) frameUniforms(f *renderer.Frame, shadows bool) {
	l := f.Lighting
	b.lit.color("ambientColor", l.Ambient)
	b.lit.color("skyColor", l.Sky)
	b.lit.color("groundColor", l.Ground)
	b.lit.integer("dirCount", int32(len(l.Directional)))
	for i, d := range l.Directional {
		b.lit.vec3(fmt.Sprintf("dirDirection[%d]", i), d.Direction)
		b.lit.color(fmt.Sprintf("dirColor[%d]", i), d.Color)
	}
	b.lit.vec3("cameraPos", f.CameraPos)

	if shadows {
		b.lit.mat4("lightViewProj", f.Shadow.LightVP)
		b.lit.scalar("shadowBias", f.Shadow.Bias)
		b.lit.scalar("shadowTexel", 1/float32(b.shadowMap.Size))
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, b.shadowMap.DepthTex)
	}
}

func (b *Backend) drawItem(it *renderer.DrawItem) {
	gpu := b.ensureUploaded(it.Geometry)
	if gpu == nil {
		return
	}
	m := it.Material
	if m.DoubleSide {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	b.lit.mat4("mvp", it.MVP)
	b.lit.mat4("model", it.Model)
	b.lit.mat4("normalMatrix", it.Normal)
	b.lit.flag("receiveShadow", it.ReceiveShadow)
	b.lit.color("matColor", m.Color)
	b.lit.color("matEmissive", m.Emissive)
	b.lit.scalar("matRoughness", m.Roughness)
	b.lit.scalar("matMetalness", m.Metalness)
	b.lit.flag("doubleSided", m.DoubleSide)
	opacity := float32(1)
	if m.Transparent {
		opacity = m.Opacity
	}
	b.lit.scalar("matOpacity", opacity)
	gpu.draw(len(it.Geometry.Vertices))
}

// Destroy releases all GPU resources.
func (b *Backend) Destroy() {
	for geo := range b.gpuMeshes {
		b.release(geo)
		geo.SetReleaser(nil)
	}
	if b.shadowMap != nil {
		b.shadowMap.Destroy()
		b.shadowMap = nil
	}
	if b.shadowProg != 0 {
		gl.DeleteProgram(b.shadowProg)
		b.shadowProg = 0
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}

var _ renderer.Backend = (*Backend)(nil)
