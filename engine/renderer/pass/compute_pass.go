package pass

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
)

// computePass is the implementation of the ComputePass interface.
type computePass struct {
	backend  backend.Backend
	program  shader.Program
	pipeline pipeline.Pipeline
}

// ComputePass dispatches a compute program. Inputs and outputs are bound through the program's
// image, sampler and storage buffer slots before dispatching.
type ComputePass interface {
	// Program returns the compute program.
	Program() shader.Program

	// Pipeline returns the program pipeline bound for each dispatch.
	Pipeline() pipeline.Pipeline

	// Execute binds the pipeline and dispatches x * y * z work groups.
	//
	// Parameters:
	//   - x: work groups along the first axis
	//   - y: work groups along the second axis
	//   - z: work groups along the third axis
	Execute(x, y, z uint32)

	// Dispatch is Execute with the group counts as an array.
	Dispatch(groups [3]uint32)

	// Cover dispatches enough work groups for the program's local size to cover an invocation grid
	// of the given extent.
	//
	// Parameters:
	//   - extent: the number of invocations needed along each axis
	//
	// Returns:
	//   - [3]uint32: the dispatched group counts
	Cover(extent [3]uint32) [3]uint32

	// Release deletes the pipeline. The program stays valid.
	Release()
}

var _ ComputePass = &computePass{}

// NewComputePass creates a compute pass around cs. It panics if cs is not a compute program.
//
// Parameters:
//   - b: the backend to issue calls on
//   - cs: the compute program
//
// Returns:
//   - ComputePass: the pass
func NewComputePass(b backend.Backend, cs shader.Program) ComputePass {
	return &computePass{
		backend:  b,
		program:  cs,
		pipeline: pipeline.NewPipeline(b, cs.Label(), pipeline.WithComputeShader(cs)),
	}
}

func (c *computePass) Program() shader.Program {
	return c.program
}

func (c *computePass) Pipeline() pipeline.Pipeline {
	return c.pipeline
}

func (c *computePass) Execute(x, y, z uint32) {
	c.pipeline.Bind()
	c.backend.DispatchCompute(x, y, z)
}

func (c *computePass) Dispatch(groups [3]uint32) {
	c.Execute(groups[0], groups[1], groups[2])
}

func (c *computePass) Cover(extent [3]uint32) [3]uint32 {
	local := c.program.WorkgroupSize()
	var groups [3]uint32
	for i := range groups {
		size := max(local[i], 1)
		groups[i] = (max(extent[i], 1) + size - 1) / size
	}
	c.Dispatch(groups)
	return groups
}

func (c *computePass) Release() {
	c.pipeline.Release()
}
