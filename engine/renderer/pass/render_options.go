package pass

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

// BlendMode is a blend factor applied to the source or destination color.
type BlendMode int

const (
	BlendZero BlendMode = iota
	BlendOne
	BlendSrcColor
	BlendDstColor
	BlendSrcAlpha
	BlendDstAlpha
	BlendConstantColor
	BlendConstantAlpha
	BlendOneMinusSrcColor
	BlendOneMinusDstColor
	BlendOneMinusSrcAlpha
	BlendOneMinusDstAlpha
	BlendOneMinusConstantColor
	BlendOneMinusConstantAlpha
)

var blendFactors = [...]backend.Enum{
	BlendZero:                  backend.Zero,
	BlendOne:                   backend.One,
	BlendSrcColor:              backend.SrcColor,
	BlendDstColor:              backend.DstColor,
	BlendSrcAlpha:              backend.SrcAlpha,
	BlendDstAlpha:              backend.DstAlpha,
	BlendConstantColor:         backend.ConstantColor,
	BlendConstantAlpha:         backend.ConstantAlpha,
	BlendOneMinusSrcColor:      backend.OneMinusSrcColor,
	BlendOneMinusDstColor:      backend.OneMinusDstColor,
	BlendOneMinusSrcAlpha:      backend.OneMinusSrcAlpha,
	BlendOneMinusDstAlpha:      backend.OneMinusDstAlpha,
	BlendOneMinusConstantColor: backend.OneMinusConstantColor,
	BlendOneMinusConstantAlpha: backend.OneMinusConstantAlpha,
}

// Factor returns the native blend factor.
func (m BlendMode) Factor() backend.Enum {
	if m < 0 || int(m) >= len(blendFactors) {
		panic(fmt.Sprintf("pass: unknown blend mode %d", int(m)))
	}
	return blendFactors[m]
}

// BlendPair is a source and destination blend factor.
type BlendPair struct {
	Src, Dst BlendMode
}

// InputBinding assigns a texture to a named sampler.
type InputBinding struct {
	Name    string
	Texture texture.Texture
}

// OutputBinding assigns a texture level to a named fragment output.
type OutputBinding struct {
	Name    string
	Texture texture.Texture
	Level   int32
}

// RenderOptions is the per-draw configuration handed to RenderPass.Render. Build it with
// NewRenderOptions; the pass reads it and does not keep it.
type RenderOptions struct {
	inputs          []InputBinding
	outputs         []OutputBinding
	depthAttachment texture.Texture

	depthTest  bool
	depthWrite bool
	cullFace   bool
	colorWrite [4]bool

	clearDepth *float32
	clearColor *[4]float32
	blend      *BlendPair
	viewport   *backend.Rect
}

// NewRenderOptions builds render options. Unless overridden, depth test and depth writes are on,
// face culling is off, every color channel is written, nothing is cleared and blending and the
// viewport are left as they are.
//
// Parameters:
//   - opts: a variadic list of RenderOption functions
//
// Returns:
//   - RenderOptions: the options
func NewRenderOptions(opts ...RenderOption) RenderOptions {
	o := RenderOptions{
		depthTest:  true,
		depthWrite: true,
		colorWrite: [4]bool{true, true, true, true},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Inputs returns the sampler bindings in the order they were added.
func (o RenderOptions) Inputs() []InputBinding { return append([]InputBinding(nil), o.inputs...) }

// Outputs returns the output bindings in the order they were added.
func (o RenderOptions) Outputs() []OutputBinding { return append([]OutputBinding(nil), o.outputs...) }

func (o RenderOptions) DepthAttachment() texture.Texture { return o.depthAttachment }
func (o RenderOptions) DepthTest() bool                  { return o.depthTest }
func (o RenderOptions) DepthWrite() bool                 { return o.depthWrite }
func (o RenderOptions) CullFace() bool                   { return o.cullFace }
func (o RenderOptions) ColorWrite() [4]bool              { return o.colorWrite }

// ClearDepth returns the depth to clear to before drawing, if any.
func (o RenderOptions) ClearDepth() (float32, bool) {
	if o.clearDepth == nil {
		return 0, false
	}
	return *o.clearDepth, true
}

// ClearColor returns the color to clear every draw buffer to before drawing, if any.
func (o RenderOptions) ClearColor() ([4]float32, bool) {
	if o.clearColor == nil {
		return [4]float32{}, false
	}
	return *o.clearColor, true
}

// Blend returns the blend factors to draw with, if blending was requested.
func (o RenderOptions) Blend() (BlendPair, bool) {
	if o.blend == nil {
		return BlendPair{}, false
	}
	return *o.blend, true
}

// Viewport returns the explicitly requested viewport, if any.
func (o RenderOptions) Viewport() (backend.Rect, bool) {
	if o.viewport == nil {
		return backend.Rect{}, false
	}
	return *o.viewport, true
}

// RenderOption is a functional option used to configure RenderOptions.
type RenderOption func(*RenderOptions)

// WithInput binds tex to the sampler named name.
func WithInput(name string, tex texture.Texture) RenderOption {
	return func(o *RenderOptions) {
		o.inputs = append(o.inputs, InputBinding{Name: name, Texture: tex})
	}
}

// WithOutput attaches level 0 of tex to the output named name.
func WithOutput(name string, tex texture.Texture) RenderOption {
	return WithOutputLevel(name, tex, 0)
}

// WithOutputLevel attaches a mip level of tex to the output named name.
//
// Parameters:
//   - name: the fragment output name
//   - tex: the color target
//   - level: the mip level to render into
//
// Returns:
//   - RenderOption: a function that adds the output binding
func WithOutputLevel(name string, tex texture.Texture, level int32) RenderOption {
	return func(o *RenderOptions) {
		o.outputs = append(o.outputs, OutputBinding{Name: name, Texture: tex, Level: level})
	}
}

// WithDepthAttachment attaches tex as the depth target.
func WithDepthAttachment(tex texture.Texture) RenderOption {
	return func(o *RenderOptions) {
		o.depthAttachment = tex
	}
}

// WithDepthTest enables or disables the depth test.
func WithDepthTest(enabled bool) RenderOption {
	return func(o *RenderOptions) {
		o.depthTest = enabled
	}
}

// WithDepthWrite enables or disables depth writes.
func WithDepthWrite(enabled bool) RenderOption {
	return func(o *RenderOptions) {
		o.depthWrite = enabled
	}
}

// WithCullFace enables or disables face culling.
func WithCullFace(enabled bool) RenderOption {
	return func(o *RenderOptions) {
		o.cullFace = enabled
	}
}

// WithColorWrite sets which color channels are written.
func WithColorWrite(r, g, b, a bool) RenderOption {
	return func(o *RenderOptions) {
		o.colorWrite = [4]bool{r, g, b, a}
	}
}

// WithClearDepth clears the depth attachment to depth before drawing.
func WithClearDepth(depth float32) RenderOption {
	return func(o *RenderOptions) {
		o.clearDepth = &depth
	}
}

// WithClearColor clears every draw buffer to rgba before drawing.
func WithClearColor(rgba [4]float32) RenderOption {
	return func(o *RenderOptions) {
		o.clearColor = &rgba
	}
}

// WithBlend enables blending with the given source and destination factors.
func WithBlend(src, dst BlendMode) RenderOption {
	return func(o *RenderOptions) {
		o.blend = &BlendPair{Src: src, Dst: dst}
	}
}

// WithViewport draws into rect instead of the full size of the first output.
func WithViewport(rect backend.Rect) RenderOption {
	return func(o *RenderOptions) {
		o.viewport = &rect
	}
}
