// Package window describes the native window that owns a graphics context. The offscreen context
// creates one through a Factory on its worker thread and drives it from there; the GLFW
// implementation lives in the glfwwindow subpackage so this package stays free of cgo.
package window

// Window is a native window with a current graphics context. Every method must be called from the
// thread that created the window.
type Window interface {
	// MakeContextCurrent binds the window's graphics context to the calling thread.
	MakeContextCurrent()

	// PollEvents processes pending window-system events without blocking.
	PollEvents()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// Close destroys the window and its graphics context.
	//
	// Returns:
	//   - error: error if the window was already closed
	Close() error
}

// Factory creates a window and its context on the calling thread.
type Factory func(settings Settings) (Window, error)

// Settings configures the window a Factory creates.
type Settings struct {
	// Title is the window title displayed in the title bar when the window is visible.
	Title string

	// Width is the requested framebuffer width in pixels.
	Width int

	// Height is the requested framebuffer height in pixels.
	Height int

	// Visible shows the window. Offscreen rendering keeps it hidden.
	Visible bool

	// DebugContext requests a context with debug output support.
	DebugContext bool

	// VersionMajor and VersionMinor select the core profile version requested.
	VersionMajor int
	VersionMinor int
}

// NewSettings returns window settings with the given options applied over the defaults: a hidden
// 800x600 window with an OpenGL 4.6 core context.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Settings: the settings
func NewSettings(options ...WindowBuilderOption) Settings {
	s := Settings{
		Title:        "oxy-gl",
		Width:        800,
		Height:       600,
		VersionMajor: 4,
		VersionMinor: 6,
	}
	for _, opt := range options {
		opt(&s)
	}
	return s
}
