package framebuffer

import "github.com/Carmen-Shannon/oxy-gl/engine/backend"

// FramebufferBuilderOption is a functional option used to configure a Framebuffer during construction.
type FramebufferBuilderOption func(*framebuffer)

// WithTarget sets the binding target used by Bind and Check.
//
// Parameters:
//   - target: backend.Framebuffer, or a draw/read framebuffer target
//
// Returns:
//   - FramebufferBuilderOption: a function that sets the target
func WithTarget(target backend.Enum) FramebufferBuilderOption {
	return func(f *framebuffer) {
		f.target = target
	}
}
