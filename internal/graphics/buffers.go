package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// VBO is a vertex buffer holding float32 vertex data.
type VBO struct {
	ID    uint32
	Count int
}

// NewVBO creates a vertex buffer and uploads vertices once.
func NewVBO(ctx *Context, vertices []float32) *VBO {
	b := &VBO{Count: len(vertices)}
	gl.GenBuffers(1, &b.ID)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	ctx.track(b)
	return b
}

func (b *VBO) Bind()   { gl.BindBuffer(gl.ARRAY_BUFFER, b.ID) }
func (b *VBO) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

// Delete releases the buffer. Calling it again is a no-op.
func (b *VBO) Delete() error {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
		b.ID = 0
	}
	return nil
}

// EBO is an element buffer holding uint32 indices.
type EBO struct {
	ID    uint32
	Count int
}

// NewEBO creates an element buffer and uploads indices once. The element
// binding is recorded in whichever VAO is bound at the time.
func NewEBO(ctx *Context, indices []uint32) *EBO {
	b := &EBO{Count: len(indices)}
	gl.GenBuffers(1, &b.ID)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ID)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	ctx.track(b)
	return b
}

func (b *EBO) Bind()   { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ID) }
func (b *EBO) Unbind() { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }

// Delete releases the buffer. Calling it again is a no-op.
func (b *EBO) Delete() error {
	if b.ID != 0 {
		gl.DeleteBuffers(1, &b.ID)
		b.ID = 0
	}
	return nil
}

// VAO is a vertex array object recording attribute layout and the element
// buffer binding.
type VAO struct {
	ID uint32
}

// NewVAO creates a vertex array object.
func NewVAO(ctx *Context) *VAO {
	a := &VAO{}
	gl.GenVertexArrays(1, &a.ID)
	ctx.track(a)
	return a
}

// LinkAttrib describes attribute layout as numComponents values of xtype read
// from vbo every stride bytes starting at offset, and enables it. The VAO
// must be bound.
func (a *VAO) LinkAttrib(vbo *VBO, layout uint32, numComponents int32, xtype uint32, stride int32, offset uintptr) {
	vbo.Bind()
	gl.VertexAttribPointerWithOffset(layout, numComponents, xtype, false, stride, offset)
	gl.EnableVertexAttribArray(layout)
	vbo.Unbind()
}

func (a *VAO) Bind()   { gl.BindVertexArray(a.ID) }
func (a *VAO) Unbind() { gl.BindVertexArray(0) }

// Delete releases the vertex array. Calling it again is a no-op.
func (a *VAO) Delete() error {
	if a.ID != 0 {
		gl.DeleteVertexArrays(1, &a.ID)
		a.ID = 0
	}
	return nil
}
