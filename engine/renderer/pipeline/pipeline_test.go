package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 460 core
layout(location = 0) in vec2 pos;
void main() {
}
`

const fragmentSource = `#version 460 core
layout(location = 0) out vec4 color;
void main() {
}
`

const computeSource = `#version 460 core
layout(local_size_x = 16) in;
void main() {
}
`

func program(t *testing.T, rec *backendtest.Recorder, source string, shaderType shader.ShaderType) shader.Program {
	t.Helper()
	p, err := shader.FromSource(rec, source, shaderType)
	require.NoError(t, err)
	return p
}

func TestRenderPipelineStages(t *testing.T) {
	rec := backendtest.New(64, 64)
	vs := program(t, rec, vertexSource, shader.ShaderTypeVertex)
	fs := program(t, rec, fragmentSource, shader.ShaderTypeFragment)

	p := NewPipeline(rec, "blit", WithFragmentShader(fs), WithVertexShader(vs))
	assert.Equal(t, PipelineTypeRender, p.Type())
	assert.Equal(t, "blit", p.PipelineKey())
	assert.True(t, p.Valid())
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Nil(t, p.Shader(shader.ShaderTypeGeometry))
	assert.Equal(t, []shader.Program{vs, fs}, p.Shaders())

	stages := rec.PipelineStages(p.ID())
	assert.Equal(t, vs.ProgramID(), stages[backend.VertexShaderBit])
	assert.Equal(t, fs.ProgramID(), stages[backend.FragmentShaderBit])

	p.Bind()
	_, bound, _ := rec.Bound()
	assert.Equal(t, p.ID(), bound)
	p.Unbind()
	_, bound, _ = rec.Bound()
	assert.Zero(t, bound)
}

func TestComputePipeline(t *testing.T) {
	rec := backendtest.New(64, 64)
	cs := program(t, rec, computeSource, shader.ShaderTypeCompute)

	p := NewPipeline(rec, "reduce", WithComputeShader(cs))
	assert.Equal(t, PipelineTypeCompute, p.Type())
	assert.Equal(t, cs.ProgramID(), rec.PipelineStages(p.ID())[backend.ComputeShaderBit])

	assert.Panics(t, func() { p.AddStage(program(t, rec, vertexSource, shader.ShaderTypeVertex)) })
	p.AddStage(program(t, rec, computeSource, shader.ShaderTypeCompute))
	assert.Len(t, p.Shaders(), 1)
}

func TestBuilderRejectsWrongStage(t *testing.T) {
	rec := backendtest.New(64, 64)
	vs := program(t, rec, vertexSource, shader.ShaderTypeVertex)
	assert.Panics(t, func() { WithFragmentShader(vs) })
}

func TestInvalidProgramsMakeInvalidPipeline(t *testing.T) {
	rec := backendtest.New(64, 64)
	assert.False(t, NewPipeline(rec, "empty").Valid())

	rec.FailNextCompile("0:1: error")
	broken, err := shader.FromSource(rec, fragmentSource, shader.ShaderTypeFragment)
	require.Error(t, err)
	p := NewPipeline(rec, "broken", WithStages(program(t, rec, vertexSource, shader.ShaderTypeVertex), broken))
	assert.False(t, p.Valid())
}

func TestReleaseKeepsPrograms(t *testing.T) {
	rec := backendtest.New(64, 64)
	vs := program(t, rec, vertexSource, shader.ShaderTypeVertex)
	p := NewPipeline(rec, "release", WithVertexShader(vs))

	id := p.ID()
	p.Release()
	assert.False(t, rec.Live(id))
	assert.True(t, rec.Live(vs.ProgramID()))
	assert.False(t, p.Valid())
}
