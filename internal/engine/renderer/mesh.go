package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/stockbars/internal/engine/texture"
	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// Attribute locations shared with shaders/toon.vert.
const (
	attribPosition = 0
	attribTexCoord = 1
	attribNormal   = 2
)

// glTexture is implemented by texture handles that can be bound.
type glTexture interface {
	GLName() (uint32, bool)
}

// mesh is an entity uploaded to GPU buffers.
type mesh struct {
	entity *wavefront.Entity

	vao uint32
	vbo [3]uint32 // positions, texcoords, normals
	ebo uint32

	components []wavefront.Component
	count      int32
}

func newMesh(e *wavefront.Entity) *mesh {
	m := &mesh{
		entity:     e,
		components: e.Components(),
		count:      int32(e.VertexCount()),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(3, &m.vbo[0])
	uploadAttribute(m.vbo[0], attribPosition, 3, e.Positions())
	uploadAttribute(m.vbo[1], attribTexCoord, 2, e.TexCoords())
	uploadAttribute(m.vbo[2], attribNormal, 3, e.Normals())

	indices := e.Indices()
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func uploadAttribute(vbo, location uint32, size int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(location)
}

// draw issues one DrawElements per component. bind is called before each
// component with its material so the caller can set color and texture.
func (m *mesh) draw(bind func(*wavefront.Material)) {
	gl.BindVertexArray(m.vao)
	if len(m.components) == 0 {
		bind(nil)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	}
	for _, c := range m.components {
		if c.Count == 0 {
			continue
		}
		bind(c.Material)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(c.Count), gl.UNSIGNED_INT, uintptr(c.Start*4))
	}
	gl.BindVertexArray(0)
}

// delete frees the buffers and the material textures of the entity.
func (m *mesh) delete() int {
	released := texture.ReleaseEntity(m.entity)
	gl.DeleteBuffers(3, &m.vbo[0])
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
	return released
}
