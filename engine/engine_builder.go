package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// ContextBuilderOption is a functional option for configuring a Context.
// Use the With* functions to create options that are applied directly to the context instance.
type ContextBuilderOption func(*offscreenContext)

// WithConfig replaces the context configuration.
//
// Parameters:
//   - cfg: the configuration, usually from LoadConfig
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithConfig(cfg Config) ContextBuilderOption {
	return func(c *offscreenContext) {
		c.config = cfg
	}
}

// WithWindowFactory sets the function that creates the window on the worker.
//
// Parameters:
//   - factory: the window factory
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithWindowFactory(factory window.Factory) ContextBuilderOption {
	return func(c *offscreenContext) {
		c.windowFactory = factory
	}
}

// WithBackendFactory sets the function that creates the backend once the window's context is
// current.
//
// Parameters:
//   - factory: the backend factory
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithBackendFactory(factory BackendFactory) ContextBuilderOption {
	return func(c *offscreenContext) {
		c.backendFactory = factory
	}
}

// WithWindowOptions adds window options applied after the ones derived from the configuration.
//
// Parameters:
//   - options: the window options
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) ContextBuilderOption {
	return func(c *offscreenContext) {
		c.windowOptions = append(c.windowOptions, options...)
	}
}

// WithFatalHandler replaces the handler for FatalContextError, which by default logs the error
// and exits the process with status 1. The handler runs on the worker.
//
// Parameters:
//   - handler: receives a *FatalContextError
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithFatalHandler(handler func(error)) ContextBuilderOption {
	return func(c *offscreenContext) {
		c.fatalHandler = handler
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithProfiling(enabled bool) ContextBuilderOption {
	return func(c *offscreenContext) {
		c.config.Profiling = enabled
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) ContextBuilderOption {
	return func(c *offscreenContext) {
		if fps <= 0 {
			c.renderFrameLimit = 0
			return
		}
		c.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
