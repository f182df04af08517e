package texture

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

// Pixel is a component type that can be transferred to and from texture storage.
type Pixel interface {
	float32 | uint8 | int8 | uint16 | int16 | uint32 | int32
}

// PixelType returns the transfer type matching T.
func PixelType[T Pixel]() backend.Enum {
	var zero T
	switch any(zero).(type) {
	case float32:
		return backend.Float
	case uint8:
		return backend.UnsignedByte
	case int8:
		return backend.Byte
	case uint16:
		return backend.UnsignedShort
	case int16:
		return backend.Short
	case uint32:
		return backend.UnsignedInt
	}
	return backend.Int
}

// Upload writes the whole of level 0. An empty data slice is ignored.
//
// Parameters:
//   - t: the destination texture
//   - data: tightly packed components in the texture's transfer format
func Upload[T Pixel](t Texture, data []T) {
	if len(data) == 0 {
		return
	}
	t.Backend().TextureSubImage(t.ID(), 0, t.Width(), t.Height(), t.Depth(), t.Format(), PixelType[T](), common.SliceToBytes(data))
}

// Download reads back a whole mip level.
//
// Parameters:
//   - t: the source texture
//   - level: the mip level to read
//
// Returns:
//   - []T: the level's components in the texture's transfer format
func Download[T Pixel](t Texture, level int32) []T {
	w, h, d := t.Size(level)
	count := int(w) * int(h) * int(d) * t.ChannelCount()
	out := make([]T, count)
	t.Backend().GetTextureImage(t.ID(), level, t.Format(), PixelType[T](), common.SliceToBytes(out))
	return out
}
