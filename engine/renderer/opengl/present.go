package opengl

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const blitVertexSource = `
#version 410 core
in vec4 p3d_Vertex;
in vec2 p3d_MultiTexCoord0;
out vec2 texCoord;
void main() {
    texCoord = p3d_MultiTexCoord0;
    gl_Position = vec4(p3d_Vertex.xy, 0.0, 1.0);
}
`

const blitFragmentSource = `
#version 410 core
uniform sampler2D card;
in vec2 texCoord;
out vec4 fragColor;
void main() {
    fragColor = texture(card, texCoord);
}
`

// The unit quad as x, y, z, w, u, v.
var quadVertices = []float32{
	-1, -1, 0, 1, 0, 0,
	1, -1, 0, 1, 1, 0,
	-1, 1, 0, 1, 0, 1,
	1, 1, 0, 1, 1, 1,
}

type quad struct {
	vao, vbo uint32
}

func newQuad() *quad {
	q := &quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(attribVertex)
	gl.VertexAttribPointerWithOffset(attribVertex, 4, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(attribTexCoord)
	gl.VertexAttribPointerWithOffset(attribTexCoord, 2, gl.FLOAT, false, 6*4, 4*4)
	gl.BindVertexArray(0)
	return q
}

func (q *quad) draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (q *quad) delete() {
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteVertexArrays(1, &q.vao)
}

// uploadRGBA creates or refreshes an RGBA8 texture from an image.
func uploadRGBA(id *uint32, pixels *image.RGBA, flip bool) {
	if *id == 0 {
		gl.GenTextures(1, id)
	}
	b := pixels.Bounds()
	w, h := b.Dx(), b.Dy()
	data := pixels.Pix
	if pixels.Stride != w*4 || flip {
		data = make([]uint8, w*h*4)
		for y := 0; y < h; y++ {
			row := y
			if flip {
				row = h - 1 - y
			}
			src := pixels.Pix[pixels.PixOffset(b.Min.X, b.Min.Y+row):]
			copy(data[y*w*4:(y+1)*w*4], src[:w*4])
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, *id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (h *Host) blit(id uint32, blend bool) {
	if blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	gl.UseProgram(h.blitProgram.id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.Uniform1i(h.blitProgram.location("card"), 0)
	h.quad.draw()
	if blend {
		gl.Disable(gl.BLEND)
	}
}
