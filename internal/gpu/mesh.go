package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/merchkit/internal/mesh"
	"github.com/Faultbox/merchkit/pkg/math"
)

// MeshRenderer draws one textured garment mesh with a single directional
// light.
type MeshRenderer struct {
	program uint32

	locMVP      int32
	locModel    int32
	locTexture  int32
	locLightDir int32
	locAmbient  int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	// LightDir points from the light toward the scene.
	LightDir [3]float32
	Ambient  float32
}

// NewMeshRenderer compiles the garment shader and uploads m.
func NewMeshRenderer(m *mesh.Mesh) (*MeshRenderer, error) {
	if m == nil || len(m.Indices) == 0 {
		return nil, fmt.Errorf("mesh renderer: empty mesh")
	}

	program, err := CompileProgram(garmentVertexShader, garmentFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("garment shader: %w", err)
	}

	mr := &MeshRenderer{
		program:     program,
		locMVP:      uniform(program, "uMVP"),
		locModel:    uniform(program, "uModel"),
		locTexture:  uniform(program, "uTexture"),
		locLightDir: uniform(program, "uLightDir"),
		locAmbient:  uniform(program, "uAmbient"),
		LightDir:    [3]float32{-0.3, -0.5, -1},
		Ambient:     0.55,
	}
	mr.upload(m)
	return mr, nil
}

func (mr *MeshRenderer) upload(m *mesh.Mesh) {
	gl.GenVertexArrays(1, &mr.vao)
	gl.BindVertexArray(mr.vao)

	gl.GenBuffers(1, &mr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mr.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &mr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	mr.indexCount = int32(len(m.Indices))
	gl.BindVertexArray(0)
}

// Render draws the mesh with texture tex. A zero texture draws nothing.
func (mr *MeshRenderer) Render(viewProj, model math.Mat4, tex uint32) {
	if tex == 0 || mr.vao == 0 {
		return
	}

	gl.UseProgram(mr.program)
	mvp := viewProj.Mul(model)
	gl.UniformMatrix4fv(mr.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(mr.locModel, 1, false, model.Ptr())
	gl.Uniform3f(mr.locLightDir, mr.LightDir[0], mr.LightDir[1], mr.LightDir[2])
	gl.Uniform1f(mr.locAmbient, mr.Ambient)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.Uniform1i(mr.locTexture, 0)

	gl.BindVertexArray(mr.vao)
	gl.DrawElements(gl.TRIANGLES, mr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (mr *MeshRenderer) Destroy() {
	if mr.vao != 0 {
		gl.DeleteVertexArrays(1, &mr.vao)
		mr.vao = 0
	}
	if mr.vbo != 0 {
		gl.DeleteBuffers(1, &mr.vbo)
	}
	if mr.ebo != 0 {
		gl.DeleteBuffers(1, &mr.ebo)
	}
	if mr.program != 0 {
		gl.DeleteProgram(mr.program)
		mr.program = 0
	}
}
