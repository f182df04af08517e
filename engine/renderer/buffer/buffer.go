package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/handle"
)

// buffer is the implementation of the Buffer interface.
type buffer struct {
	backend backend.Backend
	handle  *handle.Handle

	size      int
	usage     backend.Enum
	allocated bool
}

// Buffer is a fixed-size data store on the GPU used for vertices, indices and shader storage.
type Buffer interface {
	// ID returns the native buffer id.
	//
	// Returns:
	//   - uint32: the buffer id, 0 once released
	ID() uint32

	// Size returns the byte size of the buffer.
	Size() int

	// Usage returns the usage hint the storage was allocated with.
	Usage() backend.Enum

	// SetData replaces the whole contents of the buffer. The first call allocates the storage;
	// data shorter than Size leaves the rest zero on that first call and untouched afterwards.
	//
	// Parameters:
	//   - data: the new contents, at most Size bytes
	SetData(data []byte)

	// GetData reads back the contents of the buffer into out, up to len(out) bytes.
	// Nothing is read before the storage has been allocated.
	//
	// Parameters:
	//   - out: the destination
	GetData(out []byte)

	// ClearToZero sets every byte of the buffer to zero.
	ClearToZero()

	// Backend returns the backend the buffer was created on.
	Backend() backend.Backend

	// Release deletes the buffer object. It is safe to call more than once.
	Release()
}

var _ Buffer = &buffer{}

// NewBuffer creates a buffer of size bytes. When data is non-nil the storage is allocated
// immediately with it as initial contents.
//
// Parameters:
//   - b: the backend bound to the current context
//   - size: the byte size of the buffer
//   - usage: the usage hint (e.g. backend.StaticDraw)
//   - data: optional initial contents
//
// Returns:
//   - Buffer: the new buffer
func NewBuffer(b backend.Backend, size int, usage backend.Enum, data []byte) Buffer {
	buf := &buffer{
		backend: b,
		handle:  handle.Create(b, handle.KindBuffer),
		size:    size,
		usage:   usage,
	}
	if data != nil {
		buf.SetData(data)
	}
	return buf
}

// FromSlice creates a buffer sized and filled from a typed slice.
//
// Parameters:
//   - b: the backend bound to the current context
//   - data: the initial contents
//   - usage: the usage hint
//
// Returns:
//   - Buffer: the new buffer
func FromSlice[T any](b backend.Backend, data []T, usage backend.Enum) Buffer {
	raw := common.SliceToBytes(data)
	return NewBuffer(b, len(raw), usage, raw)
}

// Write replaces the contents of buf with a typed slice.
func Write[T any](buf Buffer, data []T) {
	buf.SetData(common.SliceToBytes(data))
}

// WriteStruct replaces the leading bytes of buf with the memory of *v, as for a std140 or
// std430 block whose Go layout matches the shader's.
func WriteStruct[T any](buf Buffer, v *T) {
	buf.SetData(common.StructToBytes(v))
}

// Read returns the whole contents of buf as a typed slice.
func Read[T any](buf Buffer) []T {
	out := make([]byte, buf.Size())
	buf.GetData(out)
	return common.BytesToSlice[T](out)
}

func (b *buffer) ID() uint32 {
	return b.handle.ID()
}

func (b *buffer) Size() int {
	return b.size
}

func (b *buffer) Usage() backend.Enum {
	return b.usage
}

func (b *buffer) SetData(data []byte) {
	if len(data) > b.size {
		panic(fmt.Sprintf("buffer: %d bytes do not fit a %d byte buffer", len(data), b.size))
	}
	if !b.allocated {
		b.backend.NamedBufferData(b.ID(), b.size, data, b.usage)
		b.allocated = true
		return
	}
	b.backend.NamedBufferSubData(b.ID(), 0, data)
}

func (b *buffer) GetData(out []byte) {
	if !b.allocated {
		return
	}
	if len(out) > b.size {
		out = out[:b.size]
	}
	b.backend.GetNamedBufferSubData(b.ID(), 0, out)
}

func (b *buffer) ClearToZero() {
	b.SetData(make([]byte, b.size))
}

func (b *buffer) Backend() backend.Backend {
	return b.backend
}

func (b *buffer) Release() {
	b.handle.Release()
}
