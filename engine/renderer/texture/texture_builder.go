package texture

import "github.com/Carmen-Shannon/oxy-gl/engine/backend"

// TextureBuilderOption is a functional option used to configure a Texture during construction.
type TextureBuilderOption func(*texture)

// WithLevels sets the number of mip levels allocated for the texture.
//
// Parameters:
//   - levels: the level count, at least 1
//
// Returns:
//   - TextureBuilderOption: a function that sets the level count
func WithLevels(levels int32) TextureBuilderOption {
	return func(t *texture) {
		t.levels = max(levels, 1)
	}
}

// WithFilter sets the minification and magnification filters applied at creation.
//
// Parameters:
//   - minFilter: the minification filter
//   - magFilter: the magnification filter
//
// Returns:
//   - TextureBuilderOption: a function that sets the filters
func WithFilter(minFilter, magFilter backend.Enum) TextureBuilderOption {
	return func(t *texture) {
		t.minFilter, t.magFilter = minFilter, magFilter
	}
}

// WithWrapMode sets the S, T and R wrap modes applied at creation.
//
// Parameters:
//   - wrap: the wrap modes
//
// Returns:
//   - TextureBuilderOption: a function that sets the wrap modes
func WithWrapMode(wrap [3]backend.Enum) TextureBuilderOption {
	return func(t *texture) {
		t.wrap = wrap
	}
}
