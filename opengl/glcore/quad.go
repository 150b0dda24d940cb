package glcore

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Quad draws whatever texture is bound on a unit across the whole viewport.
// Vertices come from gl_VertexID, so the VAO carries no buffers; core
// profile still requires one to be bound.
type Quad struct {
	vao    uint32
	prog   uint32
	texLoc int32
}

// quadVertSrc maps vertex IDs 0..3 to a screen-covering triangle strip.
// Texture row 0 lands at the top of the window.
const quadVertSrc = `
#version 410 core
out vec2 fragUV;

void main() {
    vec2 pos = vec2(float(gl_VertexID & 1), float(gl_VertexID >> 1)) * 2.0 - 1.0;
    fragUV = vec2(pos.x * 0.5 + 0.5, 0.5 - pos.y * 0.5);
    gl_Position = vec4(pos, 0.0, 1.0);
}
` + "\x00"

const quadFragSrc = `
#version 410 core
in vec2 fragUV;
uniform sampler2D tex;
out vec4 outColor;

void main() {
    outColor = texture(tex, fragUV);
}
` + "\x00"

// NewQuad compiles the blit program. The GL context must be current.
func NewQuad() (*Quad, error) {
	prog, err := newProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, fmt.Errorf("quad shader: %w", err)
	}
	q := &Quad{
		prog:   prog,
		texLoc: gl.GetUniformLocation(prog, gl.Str("tex\x00")),
	}
	gl.GenVertexArrays(1, &q.vao)
	return q, nil
}

// SetViewport resizes the GL viewport.
func (q *Quad) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear fills the framebuffer with a solid colour.
func (q *Quad) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw samples texture unit (an index, not a TEXTURE0 enum).
func (q *Quad) Draw(unit uint32) {
	gl.UseProgram(q.prog)
	gl.Uniform1i(q.texLoc, int32(unit))
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Destroy releases the program and vertex array.
func (q *Quad) Destroy() {
	gl.DeleteVertexArrays(1, &q.vao)
	gl.DeleteProgram(q.prog)
}
