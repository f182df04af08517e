package texture

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/handle"
)

// texture is the implementation of the Texture interface.
type texture struct {
	backend backend.Backend
	handle  *handle.Handle

	target         backend.Enum
	format         backend.Enum
	internalFormat backend.Enum
	levels         int32

	// width, height and depth are 0 for dimensions the texture does not have
	width, height, depth int32

	minFilter, magFilter backend.Enum
	wrap                 [3]backend.Enum
}

// Texture is immutable-storage texture object of one, two or three dimensions.
type Texture interface {
	// ID returns the native texture id.
	//
	// Returns:
	//   - uint32: the texture id, 0 once released
	ID() uint32

	// Target returns the texture target (backend.Texture1D, Texture2D or Texture3D).
	Target() backend.Enum

	// Format returns the pixel transfer format used for uploads and downloads.
	Format() backend.Enum

	// InternalFormat returns the sized storage format.
	InternalFormat() backend.Enum

	// Levels returns the number of allocated mip levels.
	Levels() int32

	// Width returns the width of level 0.
	Width() int32

	// Height returns the height of level 0, or 0 for 1D textures.
	Height() int32

	// Depth returns the depth of level 0, or 0 for 1D and 2D textures.
	Depth() int32

	// Size returns the dimensions of a mip level. Missing dimensions are reported as 1.
	//
	// Parameters:
	//   - level: the mip level
	//
	// Returns:
	//   - int32: width of the level
	//   - int32: height of the level
	//   - int32: depth of the level
	Size(level int32) (int32, int32, int32)

	// ChannelCount returns the number of components per pixel of the transfer format.
	ChannelCount() int

	// SetFilter sets the minification and magnification filters.
	//
	// Parameters:
	//   - minFilter: the minification filter (e.g. backend.Linear)
	//   - magFilter: the magnification filter
	SetFilter(minFilter, magFilter backend.Enum)

	// SetWrapMode sets the S, T and R wrap modes.
	//
	// Parameters:
	//   - wrap: the wrap modes in S, T, R order
	SetWrapMode(wrap [3]backend.Enum)

	// SetMaxLevel limits sampling to levels up to maxLevel.
	SetMaxLevel(maxLevel int32)

	// ResetMaxLevel restores sampling of every allocated level.
	ResetMaxLevel()

	// GenerateMipmap fills levels 1..n from level 0.
	GenerateMipmap()

	// Backend returns the backend the texture was created on.
	Backend() backend.Backend

	// Release deletes the texture object. It is safe to call more than once.
	Release()
}

var _ Texture = &texture{}

// NewTexture allocates immutable storage for a texture. The number of dims selects the target:
// one for 1D, two for 2D and three for 3D.
//
// Parameters:
//   - b: the backend bound to the current context
//   - format: the pixel transfer format (e.g. backend.RGBA)
//   - internalFormat: the sized storage format (e.g. backend.RGBA32F)
//   - dims: the level 0 dimensions
//   - opts: a variadic list of TextureBuilderOption functions to configure the texture
//
// Returns:
//   - Texture: the new texture
func NewTexture(b backend.Backend, format, internalFormat backend.Enum, dims []int32, opts ...TextureBuilderOption) Texture {
	t := &texture{
		backend:        b,
		format:         format,
		internalFormat: internalFormat,
		levels:         1,
		minFilter:      backend.Linear,
		magFilter:      backend.Linear,
		wrap:           [3]backend.Enum{backend.ClampToEdge, backend.ClampToEdge, backend.ClampToEdge},
	}
	for _, opt := range opts {
		opt(t)
	}

	switch len(dims) {
	case 1:
		t.target, t.width = backend.Texture1D, dims[0]
		t.handle = handle.CreateTexture(b, t.target)
		b.TextureStorage1D(t.handle.ID(), t.levels, internalFormat, t.width)
	case 2:
		t.target, t.width, t.height = backend.Texture2D, dims[0], dims[1]
		t.handle = handle.CreateTexture(b, t.target)
		b.TextureStorage2D(t.handle.ID(), t.levels, internalFormat, t.width, t.height)
	case 3:
		t.target, t.width, t.height, t.depth = backend.Texture3D, dims[0], dims[1], dims[2]
		t.handle = handle.CreateTexture(b, t.target)
		b.TextureStorage3D(t.handle.ID(), t.levels, internalFormat, t.width, t.height, t.depth)
	default:
		panic(fmt.Sprintf("texture: expected 1 to 3 dimensions, got %d", len(dims)))
	}

	t.SetFilter(t.minFilter, t.magFilter)
	t.SetWrapMode(t.wrap)
	return t
}

// R32F creates a single channel float texture.
func R32F(b backend.Backend, dims ...int32) Texture {
	return NewTexture(b, backend.Red, backend.R32F, dims)
}

// RG32F creates a two channel float texture.
func RG32F(b backend.Backend, dims ...int32) Texture {
	return NewTexture(b, backend.RG, backend.RG32F, dims)
}

// RGB32F creates a three channel float texture.
func RGB32F(b backend.Backend, dims ...int32) Texture {
	return NewTexture(b, backend.RGB, backend.RGB32F, dims)
}

// RGBA32F creates a four channel float texture.
func RGBA32F(b backend.Backend, dims ...int32) Texture {
	return NewTexture(b, backend.RGBA, backend.RGBA32F, dims)
}

// RGBA8 creates a four channel normalized byte texture.
func RGBA8(b backend.Backend, dims ...int32) Texture {
	return NewTexture(b, backend.RGBA, backend.RGBA8, dims)
}

// Depth32F creates a float depth texture.
func Depth32F(b backend.Backend, dims ...int32) Texture {
	return NewTexture(b, backend.DepthComponent, backend.DepthComponent32F, dims)
}

// FromImageFile decodes a PNG or JPEG file into a new RGBA8 2D texture.
//
// Parameters:
//   - b: the backend bound to the current context
//   - path: the image file path
//   - opts: a variadic list of TextureBuilderOption functions to configure the texture
//
// Returns:
//   - Texture: the new texture holding the image in level 0
//   - error: an error if the file could not be decoded
func FromImageFile(b backend.Backend, path string, opts ...TextureBuilderOption) (Texture, error) {
	img := &common.ImageData{Path: path}
	pixels, width, height, err := img.Decode()
	if err != nil {
		return nil, err
	}
	t := NewTexture(b, backend.RGBA, backend.RGBA8, []int32{int32(width), int32(height)}, opts...)
	Upload(t, pixels)
	return t, nil
}

func (t *texture) ID() uint32 {
	return t.handle.ID()
}

func (t *texture) Target() backend.Enum {
	return t.target
}

func (t *texture) Format() backend.Enum {
	return t.format
}

func (t *texture) InternalFormat() backend.Enum {
	return t.internalFormat
}

func (t *texture) Levels() int32 {
	return t.levels
}

func (t *texture) Width() int32 {
	return t.width
}

func (t *texture) Height() int32 {
	return t.height
}

func (t *texture) Depth() int32 {
	return t.depth
}

func (t *texture) Size(level int32) (int32, int32, int32) {
	return levelDim(t.width, level), levelDim(t.height, level), levelDim(t.depth, level)
}

func levelDim(d, level int32) int32 {
	return max(d>>level, 1)
}

func (t *texture) ChannelCount() int {
	switch t.format {
	case backend.Red, backend.DepthComponent:
		return 1
	case backend.RG:
		return 2
	case backend.RGB:
		return 3
	case backend.RGBA, backend.RGBAInteger:
		return 4
	}
	return 1
}

func (t *texture) SetFilter(minFilter, magFilter backend.Enum) {
	t.minFilter, t.magFilter = minFilter, magFilter
	t.backend.TextureParameteri(t.ID(), backend.TextureMinFilter, int32(minFilter))
	t.backend.TextureParameteri(t.ID(), backend.TextureMagFilter, int32(magFilter))
}

func (t *texture) SetWrapMode(wrap [3]backend.Enum) {
	t.wrap = wrap
	t.backend.TextureParameteri(t.ID(), backend.TextureWrapS, int32(wrap[0]))
	t.backend.TextureParameteri(t.ID(), backend.TextureWrapT, int32(wrap[1]))
	t.backend.TextureParameteri(t.ID(), backend.TextureWrapR, int32(wrap[2]))
}

func (t *texture) SetMaxLevel(maxLevel int32) {
	t.backend.TextureParameteri(t.ID(), backend.TextureMaxLevel, maxLevel)
}

func (t *texture) ResetMaxLevel() {
	t.SetMaxLevel(t.levels - 1)
}

func (t *texture) GenerateMipmap() {
	t.backend.GenerateTextureMipmap(t.ID())
}

func (t *texture) Backend() backend.Backend {
	return t.backend
}

func (t *texture) Release() {
	t.handle.Release()
}
