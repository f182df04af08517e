package pipeline

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

// pipelineConfig collects the programs passed to NewPipeline before the pipeline object exists.
type pipelineConfig struct {
	programs []shader.Program
}

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipelineConfig)

// WithVertexShader sets the vertex program for this pipeline.
//
// Parameters:
//   - s: the vertex program to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the vertex program for this pipeline
func WithVertexShader(s shader.Program) PipelineBuilderOption {
	return withStage(shader.ShaderTypeVertex, s)
}

// WithFragmentShader sets the fragment program for this pipeline.
//
// Parameters:
//   - s: the fragment program to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the fragment program for this pipeline
func WithFragmentShader(s shader.Program) PipelineBuilderOption {
	return withStage(shader.ShaderTypeFragment, s)
}

// WithComputeShader sets the compute program for this pipeline.
//
// Parameters:
//   - s: the compute program to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the compute program for this pipeline
func WithComputeShader(s shader.Program) PipelineBuilderOption {
	return withStage(shader.ShaderTypeCompute, s)
}

// WithGeometryShader sets the geometry program for this pipeline.
//
// Parameters:
//   - s: the geometry program to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the geometry program for this pipeline
func WithGeometryShader(s shader.Program) PipelineBuilderOption {
	return withStage(shader.ShaderTypeGeometry, s)
}

// WithStages adds programs of any stage. Each is bound to the stage of its own shader type.
//
// Parameters:
//   - programs: the programs to bind
//
// Returns:
//   - PipelineBuilderOption: a function that adds the programs to this pipeline
func WithStages(programs ...shader.Program) PipelineBuilderOption {
	return func(c *pipelineConfig) {
		c.programs = append(c.programs, programs...)
	}
}

func withStage(expected shader.ShaderType, s shader.Program) PipelineBuilderOption {
	if s.ShaderType() != expected {
		panic("pipeline: expected a " + expected.String() + " program, got " + s.ShaderType().String())
	}
	return WithStages(s)
}
