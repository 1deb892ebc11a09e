package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"ecoscene/core"
	"ecoscene/math"
)

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

// uniforms resolves and caches uniform locations of one program.
type uniforms struct {
	prog uint32
	locs map[string]int32
}

func newUniforms(prog uint32) *uniforms {
	return &uniforms{prog: prog, locs: make(map[string]int32)}
}

func (u *uniforms) loc(name string) int32 {
	if l, ok := u.locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(u.prog, gl.Str(name+"\x00"))
	u.locs[name] = l
	return l
}

// Mat4 memory order matches what GL expects with transpose=false.
func (u *uniforms) mat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(u.loc(name), 1, false, (*float32)(unsafe.Pointer(&m[0][0])))
}

func (u *uniforms) vec3(name string, v math.Vec3) {
	gl.Uniform3f(u.loc(name), v.X, v.Y, v.Z)
}

func (u *uniforms) color(name string, c core.Color) {
	gl.Uniform3f(u.loc(name), c.R, c.G, c.B)
}

func (u *uniforms) scalar(name string, f float32) {
	gl.Uniform1f(u.loc(name), f)
}

func (u *uniforms) integer(name string, i int32) {
	gl.Uniform1i(u.loc(name), i)
}

func (u *uniforms) flag(name string, b bool) {
	if b {
		gl.Uniform1i(u.loc(name), 1)
	} else {
		gl.Uniform1i(u.loc(name), 0)
	}
}
