package shader

import (
	"errors"
	"runtime"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertexarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compositeFragment = `#version 460 core
layout(location = 0) in vec2 uv;
layout(location = 0) out vec4 color;
layout(location = 2) out vec4 normal;
uniform sampler2D albedo;
uniform float exposure;
uniform sampler2D roughness;
uniform mat4 view;
layout(rgba32f, binding = 0) uniform image2D accum;
uniform ivec2 tile;
uniform sampler3D volume;
uniform vec4 weights[2];
layout(binding = 4, offset = 0) uniform atomic_uint hits;
uniform uint frame;
uniform bool debug;
layout(std430, binding = 5) buffer Lights {
	vec4 lights[];
};
void main() {
	color = texture(albedo, uv);
}
`

const vertexSource = `#version 460 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec2 texcoord;
layout(location = 2) in ivec4 joints;
out vec2 uv;
void main() {
	gl_Position = vec4(position, 1.0);
}
`

const computeSource = `#version 460 core
layout(local_size_x = 8, local_size_y = 4) in;
layout(r32f, binding = 0) uniform writeonly image3D dst;
void main() {
}
`

func compile(t *testing.T, rec *backendtest.Recorder, source string, shaderType ShaderType) Program {
	t.Helper()
	p, err := FromSource(rec, source, shaderType)
	require.NoError(t, err)
	require.True(t, p.Valid())
	return p
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = name(item)
	}
	return out
}

func TestReflectionDiscoversDeclaredResources(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)

	assert.Equal(t, []string{"uv"}, names(p.Inputs(), func(in Input) string { return in.Name }))
	assert.Equal(t, []string{"color", "normal"}, names(p.Outputs(), func(o Output) string { return o.Name }))
	assert.Equal(t, []string{"albedo", "roughness", "volume"}, names(p.Samplers(), func(s Sampler) string { return s.Name }))
	assert.Equal(t, []string{"accum"}, names(p.Images(), func(i Image) string { return i.Name }))
	assert.Equal(t, []string{"exposure", "view", "accum", "tile", "weights", "hits", "frame", "debug"},
		names(p.Uniforms(), func(u Uniform) string { return u.Name }))
	assert.Equal(t, []string{"Lights"}, names(p.StorageBuffers(), func(s StorageBuffer) string { return s.Name }))

	assert.Equal(t, int32(2), p.Output("normal").Location)
	assert.Equal(t, int32(2), p.Uniform("weights").Count)
	assert.Equal(t, uint32(4), p.Uniform("hits").BindingPoint)
	assert.Equal(t, backend.ReadWrite, p.Uniform("accum").ImageAccess)
	assert.Equal(t, backend.None, p.Uniform("exposure").ImageAccess)
	assert.Equal(t, uint32(5), p.StorageBuffer("Lights").Binding)
	assert.Equal(t, [3]uint32{}, p.WorkgroupSize())

	_, ok := p.FindUniform("albedo")
	assert.False(t, ok, "samplers are not plain uniforms")
}

func TestSamplerUnitsIncreaseFromZero(t *testing.T) {
	rec := backendtest.New(64, 64)
	first := compile(t, rec, compositeFragment, ShaderTypeFragment)
	second := compile(t, rec, compositeFragment, ShaderTypeFragment)

	for i, s := range first.Samplers() {
		assert.Equal(t, uint32(i), s.Unit, s.Name)
		assert.Equal(t, s.Unit, second.Sampler(s.Name).Unit, "identical source gets identical units")
	}
	assert.Equal(t, uint32(0), first.Image("accum").Unit)
}

func TestLookupOfMissingNamePanics(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)

	lookups := map[string]func(){
		"input":          func() { p.Input("missing") },
		"output":         func() { p.Output("missing") },
		"uniform":        func() { p.Uniform("missing") },
		"sampler":        func() { p.Sampler("missing") },
		"image":          func() { p.Image("missing") },
		"storage buffer": func() { p.StorageBuffer("missing") },
	}
	for iface, lookup := range lookups {
		t.Run(iface, func(t *testing.T) {
			defer func() {
				err, ok := recover().(*ResourceNotFoundError)
				require.True(t, ok)
				assert.Equal(t, iface, err.Interface)
				assert.Equal(t, "missing", err.Name)
			}()
			lookup()
		})
	}
}

func TestSamplerSetBindsUnit(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)
	tex := texture.RGBA32F(rec, 4, 4)

	s := p.Sampler("roughness")
	s.Set(tex)
	assert.Equal(t, tex.ID(), rec.TextureUnit(1))
	assert.Equal(t, []int32{1}, rec.UniformValue(p.ProgramID(), s.Location))
}

func TestImageSetBindsUnit(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, computeSource, ShaderTypeCompute)
	vol := texture.R32F(rec, 4, 4, 4)

	p.Image("dst").SetLevel(vol, 0)
	binding := rec.ImageUnit(0)
	assert.Equal(t, vol.ID(), binding.Texture)
	assert.True(t, binding.Layered)
	assert.Equal(t, backend.ReadWrite, binding.Access)
	assert.Equal(t, backend.R32F, binding.Format)

	flat := texture.RGBA32F(rec, 4, 4)
	p.Uniform("dst").Set(flat)
	assert.Equal(t, flat.ID(), rec.ImageUnit(0).Texture)
	assert.False(t, rec.ImageUnit(0).Layered)
}

func TestOutputPromotesFramebufferOnce(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)
	require.True(t, p.CurrentFramebuffer().IsDefault())

	color := texture.RGBA32F(rec, 16, 16)
	normal := texture.RGBA32F(rec, 16, 16)
	p.Output("color").Set(color)
	fb := p.CurrentFramebuffer()
	require.False(t, fb.IsDefault())

	p.Output("normal").SetLevel(normal, 0)
	p.AttachDepth(texture.Depth32F(rec, 16, 16))
	assert.Equal(t, 1, rec.Count("CreateFramebuffer"))
	assert.Same(t, fb, p.CurrentFramebuffer())

	state, ok := rec.Framebuffer(fb.ID())
	require.True(t, ok)
	assert.Equal(t, []backend.Enum{backend.ColorAttachment(0), backend.ColorAttachment(2)}, state.DrawBuffers)
	assert.Equal(t, normal.ID(), state.Attachments[backend.ColorAttachment(2)].Texture)
	assert.Contains(t, state.Attachments, backend.DepthAttachment)
}

func TestOutputIgnoredOutsideFragmentPrograms(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, vertexSource, ShaderTypeVertex)

	p.Output("uv").Set(texture.RG32F(rec, 4, 4))
	assert.True(t, p.CurrentFramebuffer().IsDefault())
	assert.Zero(t, rec.Count("CreateFramebuffer"))
}

func TestStorageAndAtomicBuffers(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)
	lights := buffer.NewBuffer(rec, 64, backend.DynamicDraw, nil)
	counter := buffer.NewBuffer(rec, 4, backend.DynamicDraw, nil)

	p.StorageBuffer("Lights").Set(lights)
	p.Uniform("hits").Set(counter)
	assert.Equal(t, lights.ID(), rec.BufferBinding(backend.ShaderStorageBuffer, 5))
	assert.Equal(t, counter.ID(), rec.BufferBinding(backend.AtomicCounterBuffer, 4))
}

func TestUniformSet(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)

	tests := []struct {
		name   string
		value  any
		expect any
		call   string
	}{
		{"exposure", float32(1.5), []float32{1.5}, "ProgramUniformFloats"},
		{"view", [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}, "ProgramUniformMatrix"},
		{"tile", [2]int32{3, 4}, []int32{3, 4}, "ProgramUniformInts"},
		{"weights", []float32{1, 2, 3, 4, 5, 6, 7, 8}, []float32{1, 2, 3, 4, 5, 6, 7, 8}, "ProgramUniformFloats"},
		{"frame", uint32(9), []uint32{9}, "ProgramUniformUints"},
		{"debug", true, []int32{1}, "ProgramUniformInts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := p.Uniform(tt.name)
			before := rec.Count(tt.call)
			u.Set(tt.value)
			assert.Equal(t, before+1, rec.Count(tt.call))
			assert.Equal(t, tt.expect, rec.UniformValue(p.ProgramID(), u.Location))
		})
	}
}

func TestUniformSetRejectsMismatchedValues(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)

	assert.Panics(t, func() { p.Uniform("exposure").Set(int32(1)) })
	assert.Panics(t, func() { p.Uniform("tile").Set(float32(1)) })
	assert.Panics(t, func() { p.Uniform("weights").Set([3]float32{1, 2, 3}) })
	assert.Panics(t, func() { p.Uniform("frame").Set("nine") })
	assert.Panics(t, func() { p.Uniform("hits").Set(float32(1)) })
}

func TestCompileFailureReturnsInertProgram(t *testing.T) {
	rec := backendtest.New(64, 64)
	p, err := FromSource(rec, "uniform widget w;\n", ShaderTypeFragment, WithLabel("broken"))

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Log, "'widget'")
	assert.Equal(t, "broken", compileErr.Label)
	require.NotNil(t, p)
	assert.False(t, p.Valid())
	assert.Empty(t, p.Uniforms())
	assert.Zero(t, rec.Count("LinkProgram"))
	p.Release()
}

func TestLinkFailureReturnsInertProgram(t *testing.T) {
	rec := backendtest.New(64, 64)
	rec.FailNextLink("error: unresolved symbol")
	p, err := FromSource(rec, vertexSource, ShaderTypeVertex)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, "error: unresolved symbol", linkErr.Log)
	assert.False(t, p.Valid())
	assert.Panics(t, func() { p.Input("position") })
}

func TestProgramIsSeparable(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, vertexSource, ShaderTypeVertex)

	params := rec.CallsNamed("ProgramParameteri")
	require.Len(t, params, 1)
	assert.Equal(t, []any{p.ProgramID(), backend.ProgramSeparable, int32(1)}, params[0].Args)
	assert.Equal(t, 1, rec.Count("DetachShader"))
}

func TestFromBinary(t *testing.T) {
	rec := backendtest.New(64, 64)
	spirv := backendtest.SPIRV(computeSource)

	p, err := FromBinary(rec, spirv, ShaderTypeCompute, "main")
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, [3]uint32{8, 4, 1}, p.WorkgroupSize())

	_, err = FromBinary(rec, spirv, ShaderTypeCompute, "trace")
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Log, `"trace"`)
}

func TestReleasedProgramSlotsPanic(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, compositeFragment, ShaderTypeFragment)
	sampler := p.Sampler("albedo")
	output := p.Output("color")
	program := p.ProgramID()

	p.Output("color").Set(texture.RGBA32F(rec, 4, 4))
	fbo := p.CurrentFramebuffer().ID()
	p.Release()
	assert.False(t, rec.Live(program))
	assert.False(t, rec.Live(fbo))

	for _, write := range []func(){
		func() { sampler.Set(texture.RGBA32F(rec, 4, 4)) },
		func() { output.Set(texture.RGBA32F(rec, 4, 4)) },
	} {
		func() {
			defer func() {
				err, ok := recover().(error)
				require.True(t, ok)
				assert.ErrorIs(t, err, ErrProgramReleased)
			}()
			write()
		}()
	}
}

func TestCollectedProgramSlotsPanic(t *testing.T) {
	rec := backendtest.New(64, 64)
	sampler := func() Sampler {
		p := compile(t, rec, compositeFragment, ShaderTypeFragment)
		return p.Sampler("albedo")
	}()
	runtime.GC()
	runtime.GC()

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrProgramReleased))
	}()
	sampler.Set(texture.RGBA32F(rec, 4, 4))
}

func TestBufferBindingLaysOutFields(t *testing.T) {
	rec := backendtest.New(64, 64)
	p := compile(t, rec, vertexSource, ShaderTypeVertex)
	vao := vertexarray.NewVertexArray(rec)

	bp := p.BufferBinding(vao, Field("position"), Padding(4), Normalized("texcoord"), Field("joints"))
	assert.Equal(t, int32(12+4+8+16), bp.Stride)

	state, ok := rec.VertexArray(vao.ID())
	require.True(t, ok)
	assert.Equal(t, uint32(0), state.Attribs[0].RelativeOffset)
	assert.Equal(t, int32(3), state.Attribs[0].Size)
	assert.Equal(t, uint32(16), state.Attribs[1].RelativeOffset)
	assert.True(t, state.Attribs[1].Normalized)
	assert.Equal(t, uint32(24), state.Attribs[2].RelativeOffset)
	assert.True(t, state.Attribs[2].Integer)

	vbo := buffer.NewBuffer(rec, 40*3, backend.StaticDraw, nil)
	bp.Set(vbo)
	state, _ = rec.VertexArray(vao.ID())
	assert.Equal(t, vbo.ID(), state.VertexBuffers[bp.Binding])

	single := p.Input("texcoord").Bind(vao, vbo)
	assert.Equal(t, int32(8), single.Stride)
	assert.Equal(t, uint32(1), single.Binding)
}

func TestShaderTypeStage(t *testing.T) {
	assert.Equal(t, backend.ComputeShader, ShaderTypeCompute.Stage())
	assert.Equal(t, backend.TessEvaluationShader, ShaderTypeTessEvaluation.Stage())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "tess_control", ShaderTypeTessControl.String())
	assert.Equal(t, "ShaderType(42)", ShaderType(42).String())
	assert.Panics(t, func() { ShaderType(42).Stage() })
}

func TestEmptyLabelKeepsDefault(t *testing.T) {
	rec := backendtest.New(8, 8)
	p, err := FromSource(rec, "void main() {\n}\n", ShaderTypeFragment, WithLabel(""))
	require.NoError(t, err)
	assert.Equal(t, "fragment", p.Label())
}
