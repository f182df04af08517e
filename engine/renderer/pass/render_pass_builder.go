package pass

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"

type renderPassConfig struct {
	key      string
	geometry shader.Program
}

// RenderPassBuilderOption is a functional option used to configure a RenderPass during construction.
type RenderPassBuilderOption func(*renderPassConfig)

// WithKey names the pass's pipeline. The default key joins the labels of the two programs.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - RenderPassBuilderOption: a function that sets the pipeline key
func WithKey(key string) RenderPassBuilderOption {
	return func(c *renderPassConfig) {
		c.key = key
	}
}

// WithGeometryStage adds a geometry program between the vertex and fragment stages.
func WithGeometryStage(gs shader.Program) RenderPassBuilderOption {
	return func(c *renderPassConfig) {
		c.geometry = gs
	}
}
