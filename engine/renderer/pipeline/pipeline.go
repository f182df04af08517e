package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/handle"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// PipelineType identifies whether a pipeline is a compute pipeline or a render pipeline.
type PipelineType int

const (
	// PipelineTypeCompute indicates a pipeline holding a single compute program.
	PipelineTypeCompute PipelineType = iota

	// PipelineTypeRender indicates a pipeline of graphics stages (vertex, fragment, ...).
	PipelineTypeRender
)

func (t PipelineType) String() string {
	switch t {
	case PipelineTypeCompute:
		return "compute"
	case PipelineTypeRender:
		return "render"
	default:
		return fmt.Sprintf("PipelineType(%d)", int(t))
	}
}

// stageOrder is the order stages are attached in and reported by Shaders.
var stageOrder = []shader.ShaderType{
	shader.ShaderTypeVertex,
	shader.ShaderTypeTessControl,
	shader.ShaderTypeTessEvaluation,
	shader.ShaderTypeGeometry,
	shader.ShaderTypeFragment,
	shader.ShaderTypeCompute,
}

// pipeline is the implementation of the Pipeline interface.
// It owns a program pipeline object and borrows the separable programs bound to its stages.
type pipeline struct {
	backend backend.Backend
	handle  *handle.Handle

	// pipelineType is render until a compute program is attached
	pipelineType PipelineType
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	stages map[shader.ShaderType]shader.Program
}

// Pipeline composes separately linked programs into one executable program pipeline. The
// pipeline does not own its programs; releasing it leaves them intact.
type Pipeline interface {
	// Type returns the type of the pipeline
	//
	// Returns:
	//   - PipelineType: the type of the pipeline (render or compute)
	Type() PipelineType

	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// ID returns the native program pipeline id.
	ID() uint32

	// Shader retrieves the program bound to the given stage.
	//
	// Parameters:
	//   - shaderType: the stage
	//
	// Returns:
	//   - shader.Program: the program bound to the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Program

	// Shaders returns every bound program in pipeline stage order.
	Shaders() []shader.Program

	// AddStage binds program to the stage matching its shader type, replacing any program
	// already bound there. Mixing compute and graphics stages panics.
	//
	// Parameters:
	//   - program: a valid separable program
	AddStage(program shader.Program)

	// Valid reports whether the pipeline has at least one stage and every bound program is valid.
	Valid() bool

	// Bind makes the pipeline current.
	Bind()

	// Unbind clears the current program pipeline.
	Unbind()

	// Release deletes the program pipeline object.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a program pipeline and binds the programs configured by opts.
//
// Parameters:
//   - b: the backend bound to the current context
//   - key: a unique identifier for the pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the new pipeline
func NewPipeline(b backend.Backend, key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		backend:      b,
		handle:       handle.Create(b, handle.KindPipeline),
		pipelineType: PipelineTypeRender,
		pipelineKey:  key,
		stages:       make(map[shader.ShaderType]shader.Program),
	}

	cfg := &pipelineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	for _, program := range cfg.programs {
		p.AddStage(program)
	}
	return p
}

func (p *pipeline) Type() PipelineType {
	return p.pipelineType
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) ID() uint32 {
	return p.handle.ID()
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Program {
	return p.stages[shaderType]
}

func (p *pipeline) Shaders() []shader.Program {
	out := make([]shader.Program, 0, len(p.stages))
	for _, st := range stageOrder {
		if program, ok := p.stages[st]; ok {
			out = append(out, program)
		}
	}
	return out
}

func (p *pipeline) AddStage(program shader.Program) {
	st := program.ShaderType()
	isCompute := st == shader.ShaderTypeCompute
	for bound := range p.stages {
		if (bound == shader.ShaderTypeCompute) != isCompute {
			panic(fmt.Sprintf("pipeline: %s cannot mix compute and graphics stages (adding %s to %s)", p.pipelineKey, st, bound))
		}
	}
	if isCompute {
		p.pipelineType = PipelineTypeCompute
	} else {
		p.pipelineType = PipelineTypeRender
	}
	p.stages[st] = program
	p.backend.UseProgramStages(p.ID(), backend.StageBit(st.Stage()), program.ProgramID())
}

func (p *pipeline) Valid() bool {
	if len(p.stages) == 0 || !p.handle.Valid() {
		return false
	}
	for _, program := range p.stages {
		if !program.Valid() {
			return false
		}
	}
	return true
}

func (p *pipeline) Bind() {
	p.backend.BindProgramPipeline(p.ID())
}

func (p *pipeline) Unbind() {
	p.backend.BindProgramPipeline(0)
}

func (p *pipeline) Release() {
	p.handle.Release()
}
