// Package backendtest provides Recorder, an in-memory backend.Backend that logs every call and
// models enough driver state (objects, bindings, fixed-function state, program introspection) to
// test the rendering layer without a graphics context.
package backendtest

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// FramebufferState is the recorded state of a framebuffer object.
type FramebufferState struct {
	Attachments map[backend.Enum]AttachmentState
	DrawBuffers []backend.Enum
}

// AttachmentState is a texture level attached to a framebuffer.
type AttachmentState struct {
	Texture uint32
	Level   int32
}

// TextureState is the recorded state of a texture object.
type TextureState struct {
	Target         backend.Enum
	InternalFormat backend.Enum
	Levels         int32
	Width          int32
	Height         int32
	Depth          int32
	Params         map[backend.Enum]int32
	Data           map[int32][]byte
}

// ImageBinding is the recorded state of an image unit.
type ImageBinding struct {
	Texture uint32
	Level   int32
	Layered bool
	Access  backend.Enum
	Format  backend.Enum
}

// VertexAttrib is the recorded format of one vertex array attribute.
type VertexAttrib struct {
	Enabled        bool
	Size           int32
	Type           backend.Enum
	Normalized     bool
	Integer        bool
	RelativeOffset uint32
	Binding        uint32
}

// VertexArrayState is the recorded state of a vertex array object.
type VertexArrayState struct {
	ElementBuffer uint32
	VertexBuffers map[uint32]uint32
	Attribs       map[uint32]*VertexAttrib
}

type shaderObject struct {
	stage    backend.Enum
	source   string
	binary   []byte
	compiled bool
	log      string
	reflect  *reflection
}

type programObject struct {
	params  map[backend.Enum]int32
	shaders []uint32
	linked  bool
	log     string
	reflect *reflection
}

// Recorder is a backend.Backend that records calls and tracks object state. The zero value is not
// usable; create one with New.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	nextID uint32

	shaders      map[uint32]*shaderObject
	programs     map[uint32]*programObject
	pipelines    map[uint32]map[backend.Enum]uint32
	framebuffers map[uint32]*FramebufferState
	textures     map[uint32]*TextureState
	buffers      map[uint32][]byte
	vertexArrays map[uint32]*VertexArrayState

	textureUnits   map[uint32]uint32
	imageUnits     map[uint32]ImageBinding
	bufferBindings map[backend.Enum]map[uint32]uint32
	uniforms       map[uint32]map[int32]any

	enabled                      map[backend.Enum]bool
	depthMask                    bool
	colorMask                    [4]bool
	blendSrc, blendDst           backend.Enum
	blendSrcAlpha, blendDstAlpha backend.Enum
	viewport                     backend.Rect

	boundFramebuffer uint32
	boundPipeline    uint32
	boundVertexArray uint32

	debug func(backend.DebugMessage)

	compileFailure string
	linkFailure    string
}

var _ backend.Backend = &Recorder{}

// New returns a Recorder holding default driver state: depth writes and color writes on, every
// capability disabled, blend factors ONE/ZERO and the given default viewport.
//
// Parameters:
//   - width: default viewport width
//   - height: default viewport height
//
// Returns:
//   - *Recorder: the recorder
func New(width, height int32) *Recorder {
	return &Recorder{
		shaders:        make(map[uint32]*shaderObject),
		programs:       make(map[uint32]*programObject),
		pipelines:      make(map[uint32]map[backend.Enum]uint32),
		framebuffers:   make(map[uint32]*FramebufferState),
		textures:       make(map[uint32]*TextureState),
		buffers:        make(map[uint32][]byte),
		vertexArrays:   make(map[uint32]*VertexArrayState),
		textureUnits:   make(map[uint32]uint32),
		imageUnits:     make(map[uint32]ImageBinding),
		bufferBindings: make(map[backend.Enum]map[uint32]uint32),
		uniforms:       make(map[uint32]map[int32]any),
		enabled:        make(map[backend.Enum]bool),
		depthMask:      true,
		colorMask:      [4]bool{true, true, true, true},
		blendSrc:       backend.One,
		blendDst:       backend.Zero,
		blendSrcAlpha:  backend.One,
		blendDstAlpha:  backend.Zero,
		viewport:       backend.Rect{Width: width, Height: height},
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) allocate() uint32 {
	r.nextID++
	return r.nextID
}

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// CallsNamed returns the recorded calls with the given name in order.
func (r *Recorder) CallsNamed(name string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls with the given name were recorded.
func (r *Recorder) Count(name string) int {
	return len(r.CallsNamed(name))
}

// ResetCalls clears the call log. Object and binding state is kept.
func (r *Recorder) ResetCalls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// FailNextCompile makes the next CompileShader or SpecializeShader call fail with log.
func (r *Recorder) FailNextCompile(log string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compileFailure = log
}

// FailNextLink makes the next LinkProgram call fail with log.
func (r *Recorder) FailNextLink(log string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.linkFailure = log
}

// Emit delivers msg to the installed debug callback, if any.
func (r *Recorder) Emit(msg backend.DebugMessage) {
	r.mu.Lock()
	cb := r.debug
	r.mu.Unlock()
	if cb != nil {
		cb(msg)
	}
}

// Framebuffer returns a copy of the recorded state of framebuffer id.
func (r *Recorder) Framebuffer(id uint32) (FramebufferState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb, ok := r.framebuffers[id]
	if !ok {
		return FramebufferState{}, false
	}
	out := FramebufferState{
		Attachments: make(map[backend.Enum]AttachmentState, len(fb.Attachments)),
		DrawBuffers: slices.Clone(fb.DrawBuffers),
	}
	for k, v := range fb.Attachments {
		out.Attachments[k] = v
	}
	return out, true
}

// Texture returns the recorded state of texture id. The returned value shares its maps.
func (r *Recorder) Texture(id uint32) (*TextureState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.textures[id]
	return t, ok
}

// VertexArray returns the recorded state of vertex array id. The returned value shares its maps.
func (r *Recorder) VertexArray(id uint32) (*VertexArrayState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vertexArrays[id]
	return v, ok
}

// BufferData returns a copy of the contents of buffer id.
func (r *Recorder) BufferData(id uint32) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.buffers[id])
}

// TextureUnit returns the texture bound to a texture unit.
func (r *Recorder) TextureUnit(unit uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textureUnits[unit]
}

// ImageUnit returns the binding of an image unit.
func (r *Recorder) ImageUnit(unit uint32) ImageBinding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.imageUnits[unit]
}

// BufferBinding returns the buffer bound to an indexed buffer target.
func (r *Recorder) BufferBinding(target backend.Enum, index uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferBindings[target][index]
}

// UniformValue returns the last value written to a program uniform location.
func (r *Recorder) UniformValue(program uint32, location int32) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uniforms[program][location]
}

// PipelineStages returns the program attached to each stage bit of a program pipeline.
func (r *Recorder) PipelineStages(id uint32) map[backend.Enum]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[backend.Enum]uint32, len(r.pipelines[id]))
	for k, v := range r.pipelines[id] {
		out[k] = v
	}
	return out
}

// Bound returns the currently bound framebuffer, program pipeline and vertex array.
func (r *Recorder) Bound() (framebuffer, pipeline, vertexArray uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boundFramebuffer, r.boundPipeline, r.boundVertexArray
}

// Live reports whether id names an object that has been created and not deleted.
func (r *Recorder) Live(id uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shaders[id]; ok {
		return true
	}
	if _, ok := r.programs[id]; ok {
		return true
	}
	if _, ok := r.pipelines[id]; ok {
		return true
	}
	if _, ok := r.framebuffers[id]; ok {
		return true
	}
	if _, ok := r.textures[id]; ok {
		return true
	}
	if _, ok := r.buffers[id]; ok {
		return true
	}
	_, ok := r.vertexArrays[id]
	return ok
}

func (r *Recorder) Type() backend.BackendType {
	return backend.BackendTypeRecorder
}

// Version reports the context version the recorder stands in for.
func (r *Recorder) Version() string {
	return "4.6 backendtest"
}
