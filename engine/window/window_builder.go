package window

// WindowBuilderOption is a functional option for configuring window Settings.
// Use the With* functions to create options.
type WindowBuilderOption func(s *Settings)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(s *Settings) {
		s.Title = title
	}
}

// WithWidth sets the initial framebuffer width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(s *Settings) {
		s.Width = width
	}
}

// WithHeight sets the initial framebuffer height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(s *Settings) {
		s.Height = height
	}
}

// WithVisible shows or hides the window.
//
// Parameters:
//   - visible: true to show the window
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithVisible(visible bool) WindowBuilderOption {
	return func(s *Settings) {
		s.Visible = visible
	}
}

// WithDebugContext requests a debug context.
//
// Parameters:
//   - debug: true to request debug output support
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDebugContext(debug bool) WindowBuilderOption {
	return func(s *Settings) {
		s.DebugContext = debug
	}
}

// WithContextVersion sets the requested core profile version.
//
// Parameters:
//   - major: the major version
//   - minor: the minor version
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithContextVersion(major, minor int) WindowBuilderOption {
	return func(s *Settings) {
		s.VersionMajor = major
		s.VersionMinor = minor
	}
}
