package buffer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/stretchr/testify/assert"
)

func TestFirstSetDataAllocates(t *testing.T) {
	rec := backendtest.New(8, 8)
	buf := NewBuffer(rec, 16, backend.DynamicDraw, nil)
	assert.Zero(t, rec.Count("NamedBufferData"))

	buf.SetData([]byte{1, 2, 3, 4})
	buf.SetData([]byte{9})
	assert.Equal(t, 1, rec.Count("NamedBufferData"))
	assert.Equal(t, 1, rec.Count("NamedBufferSubData"))

	got := make([]byte, 4)
	buf.GetData(got)
	assert.Equal(t, []byte{9, 2, 3, 4}, got)
}

func TestTypedRoundTrip(t *testing.T) {
	rec := backendtest.New(8, 8)
	buf := FromSlice(rec, []uint32{7, 8, 9}, backend.StaticDraw)
	assert.Equal(t, 12, buf.Size())
	assert.Equal(t, []uint32{7, 8, 9}, Read[uint32](buf))

	Write(buf, []uint32{1, 1, 1})
	assert.Equal(t, []uint32{1, 1, 1}, Read[uint32](buf))

	buf.ClearToZero()
	assert.Equal(t, []uint32{0, 0, 0}, Read[uint32](buf))
}

func TestGetDataBeforeAllocationReadsNothing(t *testing.T) {
	rec := backendtest.New(8, 8)
	buf := NewBuffer(rec, 4, backend.StaticDraw, nil)
	out := []byte{5, 5, 5, 5}
	buf.GetData(out)
	assert.Equal(t, []byte{5, 5, 5, 5}, out)
	assert.Zero(t, rec.Count("GetNamedBufferSubData"))
}

func TestOversizedDataPanics(t *testing.T) {
	rec := backendtest.New(8, 8)
	buf := NewBuffer(rec, 2, backend.StaticDraw, nil)
	assert.Panics(t, func() { buf.SetData([]byte{1, 2, 3}) })
}

func TestReleaseDeletesOnce(t *testing.T) {
	rec := backendtest.New(8, 8)
	buf := NewBuffer(rec, 4, backend.StaticDraw, []byte{1})
	buf.Release()
	buf.Release()
	assert.Equal(t, 1, rec.Count("DeleteBuffer"))
	assert.Zero(t, buf.ID())
}

func TestWriteStruct(t *testing.T) {
	type params struct {
		Scale  float32
		Offset [2]float32
		Count  uint32
	}
	rec := backendtest.New(8, 8)
	buf := NewBuffer(rec, 16, backend.DynamicDraw, nil)

	want := params{Scale: 2, Offset: [2]float32{0.5, -1}, Count: 7}
	WriteStruct(buf, &want)

	assert.Equal(t, []params{want}, Read[params](buf))
	assert.Equal(t, 1, rec.Count("NamedBufferData"))
}
