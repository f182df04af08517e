package vertexarray

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBufferBindingNumbersBindings(t *testing.T) {
	rec := backendtest.New(8, 8)
	vao := NewVertexArray(rec)

	first := vao.VertexBufferBinding([]Attribute{
		{Index: 0, Size: 2, Type: backend.Float},
		{Index: 1, Size: 4, Type: backend.UnsignedByte, Offset: 8, Normalized: true},
	}, 12)
	second := vao.VertexBufferBinding([]Attribute{{Index: 2, Size: 1, Type: backend.Int, Integer: true}}, 4)
	assert.Equal(t, uint32(0), first.Binding)
	assert.Equal(t, uint32(1), second.Binding)

	vbo := buffer.FromSlice(rec, []float32{0, 0, 1, 1}, backend.StaticDraw)
	first.Set(vbo)

	state, ok := rec.VertexArray(vao.ID())
	require.True(t, ok)
	assert.Equal(t, vbo.ID(), state.VertexBuffers[0])
	assert.Equal(t, &backendtest.VertexAttrib{Enabled: true, Size: 4, Type: backend.UnsignedByte, Normalized: true, RelativeOffset: 8}, state.Attribs[1])
	assert.True(t, state.Attribs[2].Integer)
	assert.Equal(t, uint32(1), state.Attribs[2].Binding)

	ibo := buffer.FromSlice(rec, []uint32{0, 1, 2}, backend.StaticDraw)
	vao.SetIndexBuffer(ibo)
	assert.Equal(t, ibo.ID(), state.ElementBuffer)
}

func TestBindAndUnbind(t *testing.T) {
	rec := backendtest.New(8, 8)
	vao := NewVertexArray(rec)
	vao.Bind()
	_, _, bound := rec.Bound()
	assert.Equal(t, vao.ID(), bound)
	vao.Unbind()
	_, _, bound = rec.Bound()
	assert.Zero(t, bound)
}

func TestAttributeFormat(t *testing.T) {
	tests := []struct {
		in     backend.Enum
		size   int32
		scalar backend.Enum
	}{
		{backend.FloatVec3, 3, backend.Float},
		{backend.IntVec2, 2, backend.Int},
		{backend.UnsignedInt, 1, backend.UnsignedInt},
		{backend.FloatMat4, 16, backend.Float},
		{backend.DoubleMat2x3, 6, backend.Double},
	}
	for _, tt := range tests {
		size, scalar, ok := AttributeFormat(tt.in)
		assert.True(t, ok)
		assert.Equal(t, tt.size, size)
		assert.Equal(t, tt.scalar, scalar)
	}
	_, _, ok := AttributeFormat(backend.Sampler2D)
	assert.False(t, ok)

	attr, ok := AttributeFor(3, backend.UnsignedVec2, 4)
	require.True(t, ok)
	assert.Equal(t, Attribute{Index: 3, Size: 2, Type: backend.UnsignedInt, Offset: 4, Integer: true}, attr)
}
