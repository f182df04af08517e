package framebuffer

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/handle"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

// AttachmentStateError reports an attach or detach that does not match the framebuffer's
// current attachments.
type AttachmentStateError struct {
	Framebuffer uint32
	Point       backend.Enum
	Reason      string
}

func (e *AttachmentStateError) Error() string {
	return fmt.Sprintf("framebuffer %d: attachment 0x%04X: %s", e.Framebuffer, uint32(e.Point), e.Reason)
}

// framebuffer is the implementation of the Framebuffer interface. A nil handle marks the default
// target.
type framebuffer struct {
	backend backend.Backend
	handle  *handle.Handle
	target  backend.Enum

	// colors holds attached color points in attach order
	colors   []backend.Enum
	attached map[backend.Enum]texture.Texture
}

// Framebuffer is a render target. It is either the default target of the window (id 0, always
// complete, never created or deleted) or an explicit framebuffer object.
type Framebuffer interface {
	// ID returns the native framebuffer id.
	//
	// Returns:
	//   - uint32: the framebuffer id, 0 for the default target
	ID() uint32

	// IsDefault reports whether this is the default target sentinel.
	IsDefault() bool

	// Attach binds a texture level to an attachment point. Color points are appended to the
	// draw-buffer list, which is re-declared in full.
	//
	// Parameters:
	//   - point: the attachment point (backend.ColorAttachment(n), DepthAttachment, ...)
	//   - tex: the texture to attach
	//   - level: the mip level to attach
	Attach(point backend.Enum, tex texture.Texture, level int32)

	// Detach removes the texture bound to point. Detaching a point that is not attached panics
	// with an *AttachmentStateError.
	//
	// Parameters:
	//   - point: the attachment point
	Detach(point backend.Enum)

	// Attachment returns the texture attached at point.
	//
	// Parameters:
	//   - point: the attachment point
	//
	// Returns:
	//   - texture.Texture: the attached texture
	//   - bool: false if nothing is attached there
	Attachment(point backend.Enum) (texture.Texture, bool)

	// DrawBuffers returns the active draw-buffer list, which is the attached color points in
	// attach order.
	DrawBuffers() []backend.Enum

	// Check reports whether the framebuffer is complete. The default target always is.
	Check() bool

	// Bind makes the framebuffer the current render target.
	Bind()

	// DrawInto restricts drawing to a single buffer.
	//
	// Parameters:
	//   - buf: the draw buffer (a color point, or backend.None)
	DrawInto(buf backend.Enum)

	// ClearColor clears one draw buffer.
	//
	// Parameters:
	//   - rgba: the clear color
	//   - drawBuffer: the index into the draw-buffer list
	ClearColor(rgba [4]float32, drawBuffer int32)

	// ClearDepth clears the depth attachment.
	//
	// Parameters:
	//   - depth: the clear depth
	ClearDepth(depth float32)

	// Release deletes an explicit framebuffer object. It does nothing for the default target.
	Release()
}

var _ Framebuffer = &framebuffer{}

// Default returns the default target sentinel.
//
// Parameters:
//   - b: the backend bound to the current context
//
// Returns:
//   - Framebuffer: the default target
func Default(b backend.Backend) Framebuffer {
	return &framebuffer{backend: b, target: backend.Framebuffer}
}

// New creates an explicit framebuffer object with no attachments.
//
// Parameters:
//   - b: the backend bound to the current context
//   - opts: a variadic list of FramebufferBuilderOption functions to configure the framebuffer
//
// Returns:
//   - Framebuffer: the new framebuffer
func New(b backend.Backend, opts ...FramebufferBuilderOption) Framebuffer {
	fb := &framebuffer{
		backend:  b,
		target:   backend.Framebuffer,
		attached: make(map[backend.Enum]texture.Texture),
	}
	for _, opt := range opts {
		opt(fb)
	}
	fb.handle = handle.Create(b, handle.KindFramebuffer)
	return fb
}

func (f *framebuffer) ID() uint32 {
	return f.handle.ID()
}

func (f *framebuffer) IsDefault() bool {
	return f.handle == nil
}

func (f *framebuffer) Attach(point backend.Enum, tex texture.Texture, level int32) {
	if f.IsDefault() {
		panic(&AttachmentStateError{Point: point, Reason: "cannot attach to the default target"})
	}
	f.backend.NamedFramebufferTexture(f.ID(), point, tex.ID(), level)
	f.attached[point] = tex
	if !isColor(point) {
		return
	}
	if !slices.Contains(f.colors, point) {
		f.colors = append(f.colors, point)
	}
	f.declareDrawBuffers()
}

func (f *framebuffer) Detach(point backend.Enum) {
	if _, ok := f.attached[point]; !ok {
		panic(&AttachmentStateError{Framebuffer: f.ID(), Point: point, Reason: "detaching a point that was not attached"})
	}
	f.backend.NamedFramebufferTexture(f.ID(), point, 0, 0)
	delete(f.attached, point)
	if !isColor(point) {
		return
	}
	f.colors = slices.DeleteFunc(f.colors, func(p backend.Enum) bool { return p == point })
	f.declareDrawBuffers()
}

func (f *framebuffer) Attachment(point backend.Enum) (texture.Texture, bool) {
	tex, ok := f.attached[point]
	return tex, ok
}

func (f *framebuffer) DrawBuffers() []backend.Enum {
	return slices.Clone(f.colors)
}

func (f *framebuffer) Check() bool {
	if f.IsDefault() {
		return true
	}
	status := f.backend.CheckNamedFramebufferStatus(f.ID(), f.target)
	if status != backend.FramebufferComplete {
		logger.Logger().Warn("framebuffer incomplete", "framebuffer", f.ID(), "status", fmt.Sprintf("0x%04X", uint32(status)))
		return false
	}
	return true
}

func (f *framebuffer) Bind() {
	f.backend.BindFramebuffer(f.target, f.ID())
}

func (f *framebuffer) DrawInto(buf backend.Enum) {
	f.backend.NamedFramebufferDrawBuffer(f.ID(), buf)
}

func (f *framebuffer) ClearColor(rgba [4]float32, drawBuffer int32) {
	f.backend.ClearNamedFramebufferColor(f.ID(), drawBuffer, rgba)
}

func (f *framebuffer) ClearDepth(depth float32) {
	f.backend.ClearNamedFramebufferDepth(f.ID(), depth)
}

func (f *framebuffer) Release() {
	if f.IsDefault() {
		return
	}
	f.handle.Release()
	f.colors = nil
	clear(f.attached)
}

// declareDrawBuffers replaces the draw-buffer list with the attached color points. The API has
// no incremental update, so the whole list is sent every time.
func (f *framebuffer) declareDrawBuffers() {
	f.backend.NamedFramebufferDrawBuffers(f.ID(), slices.Clone(f.colors))
}

func isColor(point backend.Enum) bool {
	return point != backend.DepthAttachment && point != backend.StencilAttachment && point != backend.DepthStencilAttachment
}
