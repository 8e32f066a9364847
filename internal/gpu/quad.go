package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Rect is a screen rectangle in window pixels, origin at the top left.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the window point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Local converts a window point to coordinates relative to r.
func (r Rect) Local(x, y int) (float64, float64) {
	return float64(x - r.X), float64(y - r.Y)
}

// ndc returns the rectangle's bottom-left corner and size in normalized
// device coordinates for a viewport of vw by vh.
func (r Rect) ndc(vw, vh int) [4]float32 {
	if vw <= 0 || vh <= 0 {
		return [4]float32{}
	}
	w := 2 * float32(r.W) / float32(vw)
	h := 2 * float32(r.H) / float32(vh)
	x := 2*float32(r.X)/float32(vw) - 1
	y := 1 - 2*float32(r.Y+r.H)/float32(vh)
	return [4]float32{x, y, w, h}
}

// QuadRenderer draws a texture into a screen rectangle.
type QuadRenderer struct {
	program    uint32
	locRect    int32
	locTexture int32
	vao        uint32
	vbo        uint32
}

// NewQuadRenderer compiles the quad shader and uploads the unit quad.
func NewQuadRenderer() (*QuadRenderer, error) {
	program, err := CompileProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("quad shader: %w", err)
	}
	qr := &QuadRenderer{
		program:    program,
		locRect:    uniform(program, "uRect"),
		locTexture: uniform(program, "uTexture"),
	}

	// Unit quad as a triangle strip: position (x, y) + uv. Image row 0 is
	// the top edge, so v runs down.
	vertices := []float32{
		0, 0, 0, 1,
		1, 0, 1, 1,
		0, 1, 0, 0,
		1, 1, 1, 0,
	}
	gl.GenVertexArrays(1, &qr.vao)
	gl.BindVertexArray(qr.vao)
	gl.GenBuffers(1, &qr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, qr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return qr, nil
}

// Render draws tex into r on a viewport of vw by vh pixels.
func (qr *QuadRenderer) Render(tex uint32, r Rect, vw, vh int) {
	if tex == 0 {
		return
	}
	rect := r.ndc(vw, vh)

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	gl.UseProgram(qr.program)
	gl.Uniform4f(qr.locRect, rect[0], rect[1], rect[2], rect[3])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(qr.locTexture, 0)

	gl.BindVertexArray(qr.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (qr *QuadRenderer) Destroy() {
	if qr.vao != 0 {
		gl.DeleteVertexArrays(1, &qr.vao)
		qr.vao = 0
	}
	if qr.vbo != 0 {
		gl.DeleteBuffers(1, &qr.vbo)
	}
	if qr.program != 0 {
		gl.DeleteProgram(qr.program)
		qr.program = 0
	}
}
