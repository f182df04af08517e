// Package glfwwindow implements window.Window with GLFW. The window is hidden unless requested
// otherwise and carries a forward-compatible core profile context.
package glfwwindow

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW window and its tracked framebuffer size.
type glfwWindow struct {
	window   *glfw.Window
	width    int
	height   int
	running  bool
	onResize func(width, height int)
}

var _ window.Window = &glfwWindow{}

// New initializes GLFW, creates the window described by settings and makes its context current on
// the calling thread. The caller must keep the goroutine locked to its OS thread for the lifetime
// of the window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
//
// Parameters:
//   - settings: the window and context configuration
//
// Returns:
//   - window.Window: the window with a current context
//   - error: error if GLFW or the window could not be initialized
func New(settings window.Settings) (window.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, settings.VersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, settings.VersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, hint(settings.DebugContext))
	glfw.WindowHint(glfw.Visible, hint(settings.Visible))

	win, err := glfw.CreateWindow(settings.Width, settings.Height, settings.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	gw := &glfwWindow{
		window:  win,
		running: true,
	}
	win.MakeContextCurrent()

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
		}
	})

	// On high-DPI displays the framebuffer size differs from the window size, and rendering
	// needs pixel dimensions.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gw.width = width
		gw.height = height
		if gw.onResize != nil {
			gw.onResize(width, height)
		}
	})
	gw.width, gw.height = win.GetFramebufferSize()

	return gw, nil
}

func hint(enabled bool) int {
	if enabled {
		return glfw.True
	}
	return glfw.False
}

func (w *glfwWindow) MakeContextCurrent() {
	w.window.MakeContextCurrent()
}

// PollEvents is the GLFW equivalent of a non-blocking message pump.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (w *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *glfwWindow) IsRunning() bool {
	if w.window == nil {
		return false
	}
	return w.running && !w.window.ShouldClose()
}

func (w *glfwWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *glfwWindow) Width() int {
	return w.width
}

func (w *glfwWindow) Height() int {
	return w.height
}

// Close destroys the GLFW window and terminates the GLFW library.
func (w *glfwWindow) Close() error {
	if w.window == nil {
		return errors.New("window is not initialized")
	}
	w.running = false
	w.window.SetShouldClose(true)
	w.window.Destroy()
	w.window = nil
	glfw.Terminate()
	return nil
}
