package handle

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndReleaseEachKind(t *testing.T) {
	tests := []struct {
		kind       Kind
		create     func(b backend.Backend) *Handle
		deleteCall string
	}{
		{KindBuffer, func(b backend.Backend) *Handle { return Create(b, KindBuffer) }, "DeleteBuffer"},
		{KindFramebuffer, func(b backend.Backend) *Handle { return Create(b, KindFramebuffer) }, "DeleteFramebuffer"},
		{KindVertexArray, func(b backend.Backend) *Handle { return Create(b, KindVertexArray) }, "DeleteVertexArray"},
		{KindProgram, func(b backend.Backend) *Handle { return Create(b, KindProgram) }, "DeleteProgram"},
		{KindPipeline, func(b backend.Backend) *Handle { return Create(b, KindPipeline) }, "DeleteProgramPipeline"},
		{KindTexture, func(b backend.Backend) *Handle { return CreateTexture(b, backend.Texture2D) }, "DeleteTexture"},
		{KindShader, func(b backend.Backend) *Handle { return CreateShader(b, backend.VertexShader) }, "DeleteShader"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			rec := backendtest.New(8, 8)
			h := tt.create(rec)
			require.True(t, h.Valid())
			assert.Equal(t, tt.kind, h.Kind())
			id := h.ID()
			assert.True(t, rec.Live(id))

			h.Release()
			assert.False(t, h.Valid())
			assert.Zero(t, h.ID())
			assert.False(t, rec.Live(id))

			h.Release()
			assert.Equal(t, 1, rec.Count(tt.deleteCall))
		})
	}
}

func TestCreateRejectsParameterizedKinds(t *testing.T) {
	rec := backendtest.New(8, 8)
	assert.Panics(t, func() { Create(rec, KindTexture) })
	assert.Panics(t, func() { Create(rec, KindShader) })
}

func TestZeroIDIsNeverReleased(t *testing.T) {
	rec := backendtest.New(8, 8)
	Wrap(rec, KindFramebuffer, 0).Release()

	var nilHandle *Handle
	nilHandle.Release()
	assert.Zero(t, nilHandle.ID())
	assert.Empty(t, rec.Calls())
}
