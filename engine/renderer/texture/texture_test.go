package texture

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionsSelectTarget(t *testing.T) {
	rec := backendtest.New(8, 8)

	tex1 := R32F(rec, 16)
	tex2 := RGBA32F(rec, 16, 8)
	tex3 := RG32F(rec, 4, 4, 4)
	assert.Equal(t, backend.Texture1D, tex1.Target())
	assert.Equal(t, backend.Texture2D, tex2.Target())
	assert.Equal(t, backend.Texture3D, tex3.Target())

	state, ok := rec.Texture(tex2.ID())
	require.True(t, ok)
	assert.Equal(t, backend.RGBA32F, state.InternalFormat)
	assert.Equal(t, int32(16), state.Width)
	assert.Equal(t, int32(8), state.Height)
	assert.Equal(t, int32(backend.Linear), state.Params[backend.TextureMinFilter])
	assert.Equal(t, int32(backend.ClampToEdge), state.Params[backend.TextureWrapR])

	assert.Panics(t, func() { NewTexture(rec, backend.RGBA, backend.RGBA8, nil) })
}

func TestBuilderOptions(t *testing.T) {
	rec := backendtest.New(8, 8)
	tex := NewTexture(rec, backend.RGBA, backend.RGBA8, []int32{32, 32},
		WithLevels(4),
		WithFilter(backend.Nearest, backend.Nearest),
		WithWrapMode([3]backend.Enum{backend.Repeat, backend.Repeat, backend.Repeat}),
	)
	state, _ := rec.Texture(tex.ID())
	assert.Equal(t, int32(4), state.Levels)
	assert.Equal(t, int32(backend.Nearest), state.Params[backend.TextureMagFilter])
	assert.Equal(t, int32(backend.Repeat), state.Params[backend.TextureWrapS])

	tex.SetMaxLevel(1)
	assert.Equal(t, int32(1), state.Params[backend.TextureMaxLevel])
	tex.ResetMaxLevel()
	assert.Equal(t, int32(3), state.Params[backend.TextureMaxLevel])

	w, h, d := tex.Size(2)
	assert.Equal(t, [3]int32{8, 8, 1}, [3]int32{w, h, d})
	w, _, _ = tex.Size(10)
	assert.Equal(t, int32(1), w)
}

func TestUploadDownload(t *testing.T) {
	rec := backendtest.New(8, 8)
	tex := RG32F(rec, 2, 1)
	Upload(tex, []float32{1, 2, 3, 4})
	assert.Equal(t, []float32{1, 2, 3, 4}, Download[float32](tex, 0))

	call := rec.CallsNamed("TextureSubImage")[0]
	assert.Equal(t, backend.Float, call.Args[6])
	assert.Equal(t, backend.UnsignedInt, PixelType[uint32]())
	assert.Equal(t, backend.Short, PixelType[int16]())
}

func TestFromImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "px.png")
	require.NoError(t, common.WritePNG(path, []byte{10, 20, 30, 255}, 1, 1, false))

	rec := backendtest.New(8, 8)
	tex, err := FromImageFile(rec, path)
	require.NoError(t, err)
	assert.Equal(t, backend.RGBA8, tex.InternalFormat())
	assert.Equal(t, []uint8{10, 20, 30, 255}, Download[uint8](tex, 0))

	_, err = FromImageFile(rec, filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRelease(t *testing.T) {
	rec := backendtest.New(8, 8)
	tex := RGBA8(rec, 1, 1)
	id := tex.ID()
	tex.Release()
	tex.Release()
	assert.False(t, rec.Live(id))
	assert.Equal(t, 1, rec.Count("DeleteTexture"))
}
