// Package pass composes programs, render targets and fixed-function state into single draw or
// dispatch invocations. A RenderPass applies a RenderOptions record around a caller supplied draw
// callback and puts the ambient state back afterwards; FullscreenPass and ComputePass are the two
// specialised forms.
package pass

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

// renderPass is the implementation of the RenderPass interface.
type renderPass struct {
	backend  backend.Backend
	pipeline pipeline.Pipeline
	fragment shader.Program
}

// RenderPass draws with a vertex and fragment program into the fragment program's render target.
type RenderPass interface {
	// Pipeline returns the program pipeline the pass binds before drawing.
	Pipeline() pipeline.Pipeline

	// Fragment returns the fragment program whose outputs the pass renders into.
	Fragment() shader.Program

	// Render binds the inputs and outputs named in opts, applies its fixed-function state, binds the
	// render target and the pipeline, clears and then invokes draw. Depth test, depth writes, the
	// viewport, face culling, blending and the color mask are restored to the values they had on
	// entry before Render returns, including when draw fails or panics.
	//
	// Looking up an input or output name that no program of the pass declares panics with a
	// *shader.ResourceNotFoundError.
	//
	// Parameters:
	//   - opts: the per-draw configuration
	//   - draw: issues the draw calls against the configured state
	//
	// Returns:
	//   - error: an error if the render target is incomplete, or the error returned by draw
	Render(opts RenderOptions, draw func() error) error

	// Release deletes the program pipeline. The programs are owned by the caller and stay valid.
	Release()
}

var _ RenderPass = &renderPass{}

// NewRenderPass creates a render pass drawing with vs and fs.
//
// Parameters:
//   - b: the backend to issue calls on
//   - vs: the vertex program
//   - fs: the fragment program; its outputs decide the render target
//   - opts: a variadic list of RenderPassBuilderOption functions
//
// Returns:
//   - RenderPass: the render pass
func NewRenderPass(b backend.Backend, vs, fs shader.Program, opts ...RenderPassBuilderOption) RenderPass {
	cfg := &renderPassConfig{key: vs.Label() + "+" + fs.Label()}
	for _, opt := range opts {
		opt(cfg)
	}

	stages := []pipeline.PipelineBuilderOption{pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs)}
	if cfg.geometry != nil {
		stages = append(stages, pipeline.WithGeometryShader(cfg.geometry))
	}

	return &renderPass{
		backend:  b,
		pipeline: pipeline.NewPipeline(b, cfg.key, stages...),
		fragment: fs,
	}
}

func (r *renderPass) Pipeline() pipeline.Pipeline {
	return r.pipeline
}

func (r *renderPass) Fragment() shader.Program {
	return r.fragment
}

func (r *renderPass) Render(opts RenderOptions, draw func() error) error {
	r.bindInputs(opts.inputs)
	for _, out := range opts.outputs {
		r.fragment.Output(out.Name).SetLevel(out.Texture, out.Level)
	}
	if opts.depthAttachment != nil {
		r.fragment.AttachDepth(opts.depthAttachment)
	}

	saved := snapshot(r.backend)
	defer saved.restore(r.backend)

	r.apply(opts)

	fbo := r.fragment.CurrentFramebuffer()
	fbo.Bind()
	if !fbo.Check() {
		return fmt.Errorf("pass: %s: render target %d is incomplete", r.pipeline.PipelineKey(), fbo.ID())
	}

	if rgba, ok := opts.ClearColor(); ok {
		buffers := len(fbo.DrawBuffers())
		if fbo.IsDefault() {
			buffers = 1
		}
		for i := range buffers {
			fbo.ClearColor(rgba, int32(i))
		}
	}
	if depth, ok := opts.ClearDepth(); ok {
		fbo.ClearDepth(depth)
	}

	r.pipeline.Bind()
	if err := draw(); err != nil {
		return fmt.Errorf("pass: %s: %w", r.pipeline.PipelineKey(), err)
	}
	return nil
}

func (r *renderPass) Release() {
	r.pipeline.Release()
}

// bindInputs writes each input to the first program declaring a sampler of that name, falling back
// to an image of that name.
func (r *renderPass) bindInputs(inputs []InputBinding) {
	programs := r.pipeline.Shaders()
	for _, in := range inputs {
		if !bindInput(programs, in) {
			panic(&shader.ResourceNotFoundError{Interface: "sampler", Name: in.Name, Label: r.pipeline.PipelineKey()})
		}
	}
}

func bindInput(programs []shader.Program, in InputBinding) bool {
	for _, p := range programs {
		if s, ok := p.FindSampler(in.Name); ok {
			s.Set(in.Texture)
			return true
		}
	}
	for _, p := range programs {
		if img, ok := p.FindImage(in.Name); ok {
			img.Set(in.Texture)
			return true
		}
	}
	return false
}

func (r *renderPass) apply(opts RenderOptions) {
	b := r.backend
	backend.SetEnabled(b, backend.DepthTest, opts.depthTest)
	b.DepthMask(opts.depthWrite)
	backend.SetEnabled(b, backend.CullFace, opts.cullFace)
	b.ColorMask(opts.colorWrite[0], opts.colorWrite[1], opts.colorWrite[2], opts.colorWrite[3])

	if blend, ok := opts.Blend(); ok {
		b.Enable(backend.Blend)
		b.BlendFunc(blend.Src.Factor(), blend.Dst.Factor())
	}

	if rect, ok := drawRegion(opts); ok && rect != b.CurrentViewport() {
		logger.Logger().Debug("changing viewport", "pass", r.pipeline.PipelineKey(), "width", rect.Width, "height", rect.Height)
		b.Viewport(rect)
	}
}

// drawRegion returns the explicit viewport, or the size of the first output at its level.
func drawRegion(opts RenderOptions) (backend.Rect, bool) {
	if rect, ok := opts.Viewport(); ok {
		return rect, true
	}
	if len(opts.outputs) == 0 {
		return backend.Rect{}, false
	}
	return levelRect(opts.outputs[0].Texture, opts.outputs[0].Level), true
}

func levelRect(tex texture.Texture, level int32) backend.Rect {
	w, h, _ := tex.Size(level)
	return backend.Rect{Width: w, Height: max(h, 1)}
}

// renderState is the fixed-function state a pass touches.
type renderState struct {
	depthTest  bool
	depthWrite bool
	cullFace   bool
	blend      bool
	blendSrc   backend.Enum
	blendDst   backend.Enum
	alphaSrc   backend.Enum
	alphaDst   backend.Enum
	colorWrite [4]bool
	viewport   backend.Rect
}

func snapshot(b backend.Backend) renderState {
	src, dst := b.BlendFactors()
	alphaSrc, alphaDst := b.BlendAlphaFactors()
	return renderState{
		depthTest:  b.IsEnabled(backend.DepthTest),
		depthWrite: b.DepthWriteMask(),
		cullFace:   b.IsEnabled(backend.CullFace),
		blend:      b.IsEnabled(backend.Blend),
		blendSrc:   src,
		blendDst:   dst,
		alphaSrc:   alphaSrc,
		alphaDst:   alphaDst,
		colorWrite: b.ColorWriteMask(),
		viewport:   b.CurrentViewport(),
	}
}

func (s renderState) restore(b backend.Backend) {
	backend.SetEnabled(b, backend.DepthTest, s.depthTest)
	b.DepthMask(s.depthWrite)
	backend.SetEnabled(b, backend.CullFace, s.cullFace)
	backend.SetEnabled(b, backend.Blend, s.blend)
	b.BlendFuncSeparate(s.blendSrc, s.blendDst, s.alphaSrc, s.alphaDst)
	b.ColorMask(s.colorWrite[0], s.colorWrite[1], s.colorWrite[2], s.colorWrite[3])
	if b.CurrentViewport() != s.viewport {
		b.Viewport(s.viewport)
	}
}
