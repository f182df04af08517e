// Package native wires the GLFW window and the OpenGL backend into the offscreen context.
package native

import (
	"github.com/Carmen-Shannon/oxy-gl/engine"
	"github.com/Carmen-Shannon/oxy-gl/engine/backend/opengl"
	"github.com/Carmen-Shannon/oxy-gl/engine/window/glfwwindow"
)

// NewOffscreenContext creates an engine.Context backed by a hidden GLFW window and OpenGL 4.6.
// Options are applied after the native factories, so they can still replace either one.
//
// Parameters:
//   - oneshot: render exactly one frame
//   - options: functional options for context configuration
//
// Returns:
//   - engine.Context: the running context
func NewOffscreenContext(oneshot bool, options ...engine.ContextBuilderOption) engine.Context {
	return engine.NewOffscreenContext(oneshot, append(Defaults(), options...)...)
}

// Defaults returns the options selecting the native window and backend factories.
func Defaults() []engine.ContextBuilderOption {
	return []engine.ContextBuilderOption{
		engine.WithWindowFactory(glfwwindow.New),
		engine.WithBackendFactory(opengl.New),
	}
}
