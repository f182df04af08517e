// Package handle owns single native object identifiers. A Handle is created and released through
// the backend symmetrically; release happens exactly once and a zero id is never released.
package handle

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

// Kind identifies the native object type a handle refers to. It selects the matching delete call.
type Kind int

const (
	KindBuffer Kind = iota
	KindTexture
	KindFramebuffer
	KindVertexArray
	KindShader
	KindProgram
	KindPipeline
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindFramebuffer:
		return "framebuffer"
	case KindVertexArray:
		return "vertex array"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindPipeline:
		return "pipeline"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// noCopy makes go vet's copylocks check report copies of Handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle exclusively owns one native object id. Always pass it by pointer.
type Handle struct {
	_       noCopy
	backend backend.Backend
	kind    Kind
	id      uint32
}

// Create allocates a new native object of the given kind. Textures and shaders need extra
// creation parameters and must use CreateTexture and CreateShader instead.
//
// Parameters:
//   - b: the backend bound to the current context
//   - kind: the object kind to create
//
// Returns:
//   - *Handle: the owning handle
func Create(b backend.Backend, kind Kind) *Handle {
	var id uint32
	switch kind {
	case KindBuffer:
		id = b.CreateBuffer()
	case KindFramebuffer:
		id = b.CreateFramebuffer()
	case KindVertexArray:
		id = b.CreateVertexArray()
	case KindProgram:
		id = b.CreateProgram()
	case KindPipeline:
		id = b.CreateProgramPipeline()
	default:
		panic(fmt.Sprintf("handle: %s objects cannot be created without parameters", kind))
	}
	return &Handle{backend: b, kind: kind, id: id}
}

// CreateTexture allocates a new texture object for target.
//
// Parameters:
//   - b: the backend bound to the current context
//   - target: the texture target (e.g. backend.Texture2D)
//
// Returns:
//   - *Handle: the owning handle
func CreateTexture(b backend.Backend, target backend.Enum) *Handle {
	return &Handle{backend: b, kind: KindTexture, id: b.CreateTexture(target)}
}

// CreateShader allocates a new shader object for stage.
//
// Parameters:
//   - b: the backend bound to the current context
//   - stage: the shader stage (e.g. backend.FragmentShader)
//
// Returns:
//   - *Handle: the owning handle
func CreateShader(b backend.Backend, stage backend.Enum) *Handle {
	return &Handle{backend: b, kind: KindShader, id: b.CreateShader(stage)}
}

// Wrap takes ownership of an existing native id. Releasing the returned handle deletes the object.
func Wrap(b backend.Backend, kind Kind, id uint32) *Handle {
	return &Handle{backend: b, kind: kind, id: id}
}

// ID returns the native id, or 0 once released. A nil handle has id 0.
func (h *Handle) ID() uint32 {
	if h == nil {
		return 0
	}
	return h.id
}

func (h *Handle) Kind() Kind {
	return h.kind
}

// Valid reports whether the handle still owns a live object.
func (h *Handle) Valid() bool {
	return h != nil && h.id != 0
}

// Release deletes the native object. Calling it again, on a zero id or on a nil handle does nothing.
func (h *Handle) Release() {
	if h == nil || h.id == 0 {
		return
	}
	id := h.id
	h.id = 0
	switch h.kind {
	case KindBuffer:
		h.backend.DeleteBuffer(id)
	case KindTexture:
		h.backend.DeleteTexture(id)
	case KindFramebuffer:
		h.backend.DeleteFramebuffer(id)
	case KindVertexArray:
		h.backend.DeleteVertexArray(id)
	case KindShader:
		h.backend.DeleteShader(id)
	case KindProgram:
		h.backend.DeleteProgram(id)
	case KindPipeline:
		h.backend.DeleteProgramPipeline(id)
	}
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s(%d)", h.kind, h.ID())
}
