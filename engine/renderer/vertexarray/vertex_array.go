package vertexarray

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/handle"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
)

// Attribute describes one vertex attribute read from a vertex buffer binding.
type Attribute struct {
	// Index is the attribute location in the vertex shader.
	Index uint32
	// Size is the number of components.
	Size int32
	// Type is the component type in the buffer (e.g. backend.Float).
	Type backend.Enum
	// Offset is the byte offset of the attribute within one vertex.
	Offset uint32
	// Normalized maps integer components to [0, 1] or [-1, 1].
	Normalized bool
	// Integer keeps integer components as integers in the shader.
	Integer bool
}

// BindingPoint is a vertex buffer binding of a vertex array. Assigning a buffer to it with Set
// attaches the buffer's vertices to every attribute declared on the binding.
type BindingPoint struct {
	Binding uint32
	VAO     uint32
	Stride  int32

	backend backend.Backend
}

// Set attaches buf to the binding starting at byte offset 0.
//
// Parameters:
//   - buf: the vertex buffer
func (bp BindingPoint) Set(buf buffer.Buffer) {
	bp.SetOffset(buf, 0)
}

// SetOffset attaches buf to the binding starting at byte offset.
//
// Parameters:
//   - buf: the vertex buffer
//   - offset: the byte offset of the first vertex
func (bp BindingPoint) SetOffset(buf buffer.Buffer, offset int) {
	bp.backend.VertexArrayVertexBuffer(bp.VAO, bp.Binding, buf.ID(), offset, bp.Stride)
}

// vertexArray is the implementation of the VertexArray interface.
type vertexArray struct {
	backend          backend.Backend
	handle           *handle.Handle
	nextBindingPoint uint32
}

// VertexArray records vertex attribute layout, vertex buffer bindings and the index buffer.
type VertexArray interface {
	// ID returns the native vertex array id.
	//
	// Returns:
	//   - uint32: the vertex array id, 0 once released
	ID() uint32

	// Bind makes this vertex array current.
	Bind()

	// Unbind clears the current vertex array.
	Unbind()

	// SetIndexBuffer attaches an element buffer.
	//
	// Parameters:
	//   - ibo: the index buffer
	SetIndexBuffer(ibo buffer.Buffer)

	// VertexBufferBinding declares attributes sourced from a new binding point. Binding points
	// are numbered in call order starting at 0.
	//
	// Parameters:
	//   - attributes: the attributes read from the binding
	//   - stride: the byte distance between vertices
	//
	// Returns:
	//   - BindingPoint: the binding to assign a vertex buffer to
	VertexBufferBinding(attributes []Attribute, stride int32) BindingPoint

	// Release deletes the vertex array object. It is safe to call more than once.
	Release()
}

var _ VertexArray = &vertexArray{}

// NewVertexArray creates an empty vertex array.
//
// Parameters:
//   - b: the backend bound to the current context
//
// Returns:
//   - VertexArray: the new vertex array
func NewVertexArray(b backend.Backend) VertexArray {
	return &vertexArray{
		backend: b,
		handle:  handle.Create(b, handle.KindVertexArray),
	}
}

func (v *vertexArray) ID() uint32 {
	return v.handle.ID()
}

func (v *vertexArray) Bind() {
	v.backend.BindVertexArray(v.ID())
}

func (v *vertexArray) Unbind() {
	v.backend.BindVertexArray(0)
}

func (v *vertexArray) SetIndexBuffer(ibo buffer.Buffer) {
	v.backend.VertexArrayElementBuffer(v.ID(), ibo.ID())
}

func (v *vertexArray) VertexBufferBinding(attributes []Attribute, stride int32) BindingPoint {
	bp := v.nextBindingPoint
	v.nextBindingPoint++
	for _, attr := range attributes {
		v.backend.EnableVertexArrayAttrib(v.ID(), attr.Index)
		if attr.Integer {
			v.backend.VertexArrayAttribIFormat(v.ID(), attr.Index, attr.Size, attr.Type, attr.Offset)
		} else {
			v.backend.VertexArrayAttribFormat(v.ID(), attr.Index, attr.Size, attr.Type, attr.Normalized, attr.Offset)
		}
		v.backend.VertexArrayAttribBinding(v.ID(), attr.Index, bp)
	}
	return BindingPoint{Binding: bp, VAO: v.ID(), Stride: stride, backend: v.backend}
}

func (v *vertexArray) Release() {
	v.handle.Release()
}
