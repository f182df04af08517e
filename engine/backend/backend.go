// Package backend defines the boundary between oxy-gl and the native graphics API. Every GPU call
// the library issues goes through the Backend interface, which keeps the binding, framebuffer and
// pass logic independent of the cgo bindings and lets it run against an in-memory recorder in tests.
//
// A Backend is bound to the thread that owns the graphics context. It must only be used from
// inside the callbacks handed to the offscreen context, which run on that thread.
package backend

// BackendType identifies the native API implementation behind a Backend.
type BackendType int

const (
	// BackendTypeOpenGL selects the OpenGL 4.6 core implementation.
	BackendTypeOpenGL BackendType = iota

	// BackendTypeRecorder is the in-memory implementation used by tests.
	BackendTypeRecorder
)

// Enum is a native API enumerant. Values match the OpenGL registry so implementations can pass
// them through unchanged.
type Enum uint32

// Rect is an integer rectangle in window coordinates, used for viewports.
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// Resource describes one active resource reported by program interface introspection.
// Fields that do not apply to the queried interface are zero (storage blocks have no Type or
// Location, inputs and outputs have no BufferBinding).
type Resource struct {
	Name          string
	Type          Enum
	ArraySize     int32
	Location      int32
	BufferBinding int32
	// AtomicCounterBufferIndex is the active atomic counter buffer a uniform lives in, -1 for
	// uniforms that are not atomic counters.
	AtomicCounterBufferIndex int32
}

// Backend is the set of native calls oxy-gl issues. Method names follow the OpenGL direct state
// access entry points they wrap.
type Backend interface {
	// Type reports which implementation this is.
	Type() BackendType
	// Version returns the driver's version string.
	Version() string

	// Shader objects.

	CreateShader(stage Enum) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderBinary(shader uint32, format Enum, binary []byte)
	SpecializeShader(shader uint32, entryPoint string)
	// ShaderCompileStatus reports COMPILE_STATUS and the shader info log.
	ShaderCompileStatus(shader uint32) (bool, string)

	// Program objects and interface introspection.

	CreateProgram() uint32
	DeleteProgram(program uint32)
	ProgramParameteri(program uint32, pname Enum, value int32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramLinkStatus reports LINK_STATUS and the program info log.
	ProgramLinkStatus(program uint32) (bool, string)
	// ActiveResourceCount returns ACTIVE_RESOURCES for the given program interface.
	ActiveResourceCount(program uint32, programInterface Enum) int
	// ProgramResource returns the resource at index in the given program interface. Indices are
	// in the order the driver enumerates them.
	ProgramResource(program uint32, programInterface Enum, index int) Resource
	// AtomicCounterBufferBinding returns the binding point of the index-th active atomic counter buffer.
	AtomicCounterBufferBinding(program uint32, index int) uint32
	// ComputeWorkGroupSize returns COMPUTE_WORK_GROUP_SIZE of a linked compute program.
	ComputeWorkGroupSize(program uint32) [3]uint32

	// Uniform updates. components is the vector width (1-4); len(values) is a multiple of it.

	ProgramUniformInts(program uint32, location int32, components int, values []int32)
	ProgramUniformUints(program uint32, location int32, components int, values []uint32)
	ProgramUniformFloats(program uint32, location int32, components int, values []float32)
	ProgramUniformMatrix(program uint32, location int32, columns, rows int, values []float32)

	// Resource binding points.

	BindTextureUnit(unit, texture uint32)
	BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access, format Enum)
	BindBufferBase(target Enum, index, buffer uint32)

	// Program pipelines.

	CreateProgramPipeline() uint32
	DeleteProgramPipeline(pipeline uint32)
	UseProgramStages(pipeline uint32, stages Enum, program uint32)
	BindProgramPipeline(pipeline uint32)

	// Framebuffers.

	CreateFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	BindFramebuffer(target Enum, framebuffer uint32)
	NamedFramebufferTexture(framebuffer uint32, attachment Enum, texture uint32, level int32)
	NamedFramebufferDrawBuffer(framebuffer uint32, buf Enum)
	// NamedFramebufferDrawBuffers replaces the whole draw-buffer list. An empty list selects NONE.
	NamedFramebufferDrawBuffers(framebuffer uint32, bufs []Enum)
	CheckNamedFramebufferStatus(framebuffer uint32, target Enum) Enum
	ClearNamedFramebufferColor(framebuffer uint32, drawBuffer int32, rgba [4]float32)
	ClearNamedFramebufferDepth(framebuffer uint32, depth float32)

	// Textures.

	CreateTexture(target Enum) uint32
	DeleteTexture(texture uint32)
	TextureStorage1D(texture uint32, levels int32, internalFormat Enum, width int32)
	TextureStorage2D(texture uint32, levels int32, internalFormat Enum, width, height int32)
	TextureStorage3D(texture uint32, levels int32, internalFormat Enum, width, height, depth int32)
	TextureParameteri(texture uint32, pname Enum, value int32)
	// TextureSubImage replaces a whole level. height and depth are 0 for dimensions the texture
	// does not have.
	TextureSubImage(texture uint32, level int32, width, height, depth int32, format, pixelType Enum, pixels []byte)
	GetTextureImage(texture uint32, level int32, format, pixelType Enum, out []byte)
	GenerateTextureMipmap(texture uint32)

	// Buffers.

	CreateBuffer() uint32
	DeleteBuffer(buffer uint32)
	NamedBufferData(buffer uint32, size int, data []byte, usage Enum)
	NamedBufferSubData(buffer uint32, offset int, data []byte)
	GetNamedBufferSubData(buffer uint32, offset int, out []byte)

	// Vertex arrays.

	CreateVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	VertexArrayElementBuffer(vao, buffer uint32)
	VertexArrayVertexBuffer(vao, bindingIndex, buffer uint32, offset int, stride int32)
	EnableVertexArrayAttrib(vao, index uint32)
	VertexArrayAttribFormat(vao, index uint32, size int32, attribType Enum, normalized bool, relativeOffset uint32)
	// VertexArrayAttribIFormat declares an attribute read as integers by the shader.
	VertexArrayAttribIFormat(vao, index uint32, size int32, attribType Enum, relativeOffset uint32)
	VertexArrayAttribBinding(vao, index, bindingIndex uint32)

	// Fixed-function state.

	Enable(capability Enum)
	Disable(capability Enum)
	IsEnabled(capability Enum) bool
	DepthMask(flag bool)
	DepthWriteMask() bool
	ColorMask(r, g, b, a bool)
	ColorWriteMask() [4]bool
	BlendFunc(src, dst Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	// BlendFactors reports the RGB source and destination factors.
	BlendFactors() (Enum, Enum)
	// BlendAlphaFactors reports the alpha source and destination factors.
	BlendAlphaFactors() (Enum, Enum)
	Viewport(rect Rect)
	CurrentViewport() Rect

	// Work submission.

	DrawElements(mode Enum, count int32, indexType Enum, offset int)
	DispatchCompute(x, y, z uint32)

	// EnableDebugOutput turns on synchronous debug output and routes every message to callback.
	EnableDebugOutput(callback func(DebugMessage))
}

// SetEnabled enables or disables capability.
//
// Parameters:
//   - b: the backend to issue the call on
//   - capability: the capability to toggle (e.g. DepthTest)
//   - enabled: the requested state
func SetEnabled(b Backend, capability Enum, enabled bool) {
	if enabled {
		b.Enable(capability)
		return
	}
	b.Disable(capability)
}
