package pass

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertexarray"
)

// fullscreenVertexSource passes the quad through and derives uv in [0, 1] from the position.
const fullscreenVertexSource = `#version 460 core

layout(location = 0) in vec2 pos;

out gl_PerVertex {
    vec4 gl_Position;
};

layout(location = 0) out vec2 uv;

void main() {
    gl_Position = vec4(pos, 0.0, 1.0);
    uv = 0.5 * (pos.xy + vec2(1.0));
}
`

var (
	quadVertices = []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, 1,
	}
	quadIndices = []uint32{0, 1, 2, 2, 3, 0}
)

// UniformValue is a value written to a named uniform of the fragment program before a fullscreen
// draw.
type UniformValue struct {
	Name  string
	Value any
}

// Uniform pairs a uniform name with the value to write to it.
func Uniform(name string, value any) UniformValue {
	return UniformValue{Name: name, Value: value}
}

// fullscreenPass is the implementation of the FullscreenPass interface.
type fullscreenPass struct {
	backend backend.Backend
	pass    RenderPass
	vertex  shader.Program
	vbo     buffer.Buffer
	ibo     buffer.Buffer
	vao     vertexarray.VertexArray
}

// FullscreenPass runs a fragment program once for every pixel of its render target by drawing a
// quad covering clip space. The fragment program receives the quad's texture coordinates as a vec2
// input named uv at location 0.
type FullscreenPass interface {
	// Render writes uniforms to the fragment program and draws the quad under opts.
	//
	// Parameters:
	//   - opts: the per-draw configuration
	//   - uniforms: values for uniforms of the fragment program, written in order
	//
	// Returns:
	//   - error: an error if the render target is incomplete
	Render(opts RenderOptions, uniforms ...UniformValue) error

	// Fragment returns the caller's fragment program.
	Fragment() shader.Program

	// Vertex returns the built-in vertex program.
	Vertex() shader.Program

	// Release deletes the quad geometry, the built-in vertex program and the pipeline. The
	// fragment program stays valid.
	Release()
}

var _ FullscreenPass = &fullscreenPass{}

// NewFullscreenPass builds the quad geometry and vertex program and pairs them with fs.
//
// Parameters:
//   - b: the backend to issue calls on
//   - fs: the fragment program to run
//   - opts: a variadic list of RenderPassBuilderOption functions for the underlying RenderPass
//
// Returns:
//   - FullscreenPass: the pass
func NewFullscreenPass(b backend.Backend, fs shader.Program, opts ...RenderPassBuilderOption) FullscreenPass {
	vs, err := shader.FromSource(b, fullscreenVertexSource, shader.ShaderTypeVertex, shader.WithLabel("fullscreen.vert"))
	if err != nil {
		panic(err)
	}

	f := &fullscreenPass{
		backend: b,
		vertex:  vs,
		vbo:     buffer.FromSlice(b, quadVertices, backend.StaticDraw),
		ibo:     buffer.FromSlice(b, quadIndices, backend.StaticDraw),
		vao:     vertexarray.NewVertexArray(b),
	}
	f.vao.SetIndexBuffer(f.ibo)
	vs.BufferBinding(f.vao, shader.Field("pos")).Set(f.vbo)

	f.pass = NewRenderPass(b, vs, fs, append([]RenderPassBuilderOption{WithKey("fullscreen+" + fs.Label())}, opts...)...)
	return f
}

func (f *fullscreenPass) Render(opts RenderOptions, uniforms ...UniformValue) error {
	fs := f.pass.Fragment()
	for _, u := range uniforms {
		fs.Uniform(u.Name).Set(u.Value)
	}
	return f.pass.Render(opts, func() error {
		f.vao.Bind()
		defer f.vao.Unbind()
		f.backend.DrawElements(backend.Triangles, int32(len(quadIndices)), backend.UnsignedInt, 0)
		return nil
	})
}

func (f *fullscreenPass) Fragment() shader.Program {
	return f.pass.Fragment()
}

func (f *fullscreenPass) Vertex() shader.Program {
	return f.vertex
}

func (f *fullscreenPass) Release() {
	f.pass.Release()
	f.vao.Release()
	f.ibo.Release()
	f.vbo.Release()
	f.vertex.Release()
}
