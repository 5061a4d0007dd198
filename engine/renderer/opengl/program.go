package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

const (
	attribVertex   = 0
	attribTexCoord = 1
	attribNormal   = 2
)

type program struct {
	id        uint32
	locations map[string]int32
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader compilation failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func newProgram(vertexSource, fragmentSource string) (*program, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.BindAttribLocation(id, attribVertex, gl.Str("p3d_Vertex\x00"))
	gl.BindAttribLocation(id, attribTexCoord, gl.Str("p3d_MultiTexCoord0\x00"))
	gl.BindAttribLocation(id, attribNormal, gl.Str("p3d_Normal\x00"))
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("shader program linking failed: %v", strings.TrimRight(log, "\x00"))
	}
	return &program{id: id, locations: make(map[string]int32)}, nil
}

// location caches uniform locations. Unknown names map to -1, which GL
// ignores on upload.
func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *program) setMat4(name string, m math.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// apply uploads the inputs, binding textures to consecutive units.
func (p *program) apply(inputs metadata.Inputs) {
	unit := int32(0)
	for _, name := range inputs.Names() {
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		b := inputs[name]
		switch b.Kind {
		case metadata.BindingTexture:
			id, ok := textureID(b.Texture)
			if !ok {
				continue
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, id)
			gl.Uniform1i(loc, unit)
			unit++
		case metadata.BindingScalar:
			gl.Uniform1f(loc, b.Scalar)
		case metadata.BindingVec2:
			gl.Uniform2fv(loc, 1, &b.Vec2[0])
		case metadata.BindingVec3:
			gl.Uniform3fv(loc, 1, &b.Vec3[0])
		case metadata.BindingVec4:
			gl.Uniform4fv(loc, 1, &b.Vec4[0])
		case metadata.BindingMat4:
			gl.UniformMatrix4fv(loc, 1, false, &b.Mat4[0])
		case metadata.BindingVec3Array:
			if len(b.Vec3s) > 0 {
				gl.Uniform3fv(loc, int32(len(b.Vec3s)), &b.Vec3s[0][0])
			}
		}
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (p *program) delete() {
	gl.DeleteProgram(p.id)
}
