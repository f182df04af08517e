package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/handle"
	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertexarray"
)

// ShaderType identifies the pipeline stage a program is compiled for.
type ShaderType int

const (
	// ShaderTypeCompute indicates a compute program dispatched by a compute pass.
	ShaderTypeCompute ShaderType = iota

	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex

	// ShaderTypeFragment is the fragment shader type. Only fragment programs own render targets.
	ShaderTypeFragment

	// ShaderTypeGeometry is the geometry shader type.
	ShaderTypeGeometry

	// ShaderTypeTessControl is the tessellation control shader type.
	ShaderTypeTessControl

	// ShaderTypeTessEvaluation is the tessellation evaluation shader type.
	ShaderTypeTessEvaluation
)

// Stage returns the native shader stage enumerant.
func (t ShaderType) Stage() backend.Enum {
	switch t {
	case ShaderTypeCompute:
		return backend.ComputeShader
	case ShaderTypeVertex:
		return backend.VertexShader
	case ShaderTypeFragment:
		return backend.FragmentShader
	case ShaderTypeGeometry:
		return backend.GeometryShader
	case ShaderTypeTessControl:
		return backend.TessControlShader
	case ShaderTypeTessEvaluation:
		return backend.TessEvaluationShader
	default:
		panic(fmt.Sprintf("shader: unknown shader type %d", int(t)))
	}
}

func (t ShaderType) String() string {
	if t < ShaderTypeCompute || t > ShaderTypeTessEvaluation {
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
	return backend.StageName(t.Stage())
}

// program is the implementation of the Program interface.
// It owns the shader object, the separable program object and the reflected binding tables.
type program struct {
	backend    backend.Backend
	shaderType ShaderType
	label      string
	entryPoint string

	includeDirs []string

	shader  *handle.Handle
	program *handle.Handle
	linked  bool

	// fbo starts as the default target and is promoted on the first output or depth attachment
	fbo framebuffer.Framebuffer

	workGroupSize [3]uint32

	inputs         table[Input]
	outputs        table[Output]
	uniforms       table[Uniform]
	samplers       table[Sampler]
	images         table[Image]
	storageBuffers table[StorageBuffer]
}

// Program is one shader stage compiled and linked into a separable program object. Its active
// resources are reflected once at link time into named binding slots; writing a resource to a
// slot issues the binding calls for it.
//
// Lookups by name panic with a *ResourceNotFoundError when the name was not reflected. The Find
// variants report absence instead.
type Program interface {
	// Valid reports whether the program compiled and linked. Invalid programs have empty
	// binding tables.
	Valid() bool

	// ShaderType returns the stage the program was compiled for.
	ShaderType() ShaderType

	// Label returns the name used in diagnostics (the source path for loaded programs).
	Label() string

	// ShaderID returns the native shader object id.
	ShaderID() uint32

	// ProgramID returns the native program object id.
	ProgramID() uint32

	// Input returns the vertex input named name.
	//
	// Parameters:
	//   - name: the input name as reported by reflection
	//
	// Returns:
	//   - Input: the input descriptor
	Input(name string) Input

	// Output returns the fragment output named name.
	//
	// Parameters:
	//   - name: the output name
	//
	// Returns:
	//   - Output: the output slot
	Output(name string) Output

	// Uniform returns the non-sampler uniform named name. Array uniforms are found by their base
	// name.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - Uniform: the uniform slot
	Uniform(name string) Uniform

	// Sampler returns the sampler uniform named name.
	//
	// Parameters:
	//   - name: the sampler name
	//
	// Returns:
	//   - Sampler: the sampler slot
	Sampler(name string) Sampler

	// Image returns the image uniform named name.
	//
	// Parameters:
	//   - name: the image name
	//
	// Returns:
	//   - Image: the image slot
	Image(name string) Image

	// StorageBuffer returns the shader storage block named name.
	//
	// Parameters:
	//   - name: the block name
	//
	// Returns:
	//   - StorageBuffer: the storage buffer slot
	StorageBuffer(name string) StorageBuffer

	FindInput(name string) (Input, bool)
	FindOutput(name string) (Output, bool)
	FindUniform(name string) (Uniform, bool)
	FindSampler(name string) (Sampler, bool)
	FindImage(name string) (Image, bool)
	FindStorageBuffer(name string) (StorageBuffer, bool)

	// Inputs returns every input in reflection order. The other table accessors behave the same.
	Inputs() []Input
	Outputs() []Output
	Uniforms() []Uniform
	Samplers() []Sampler
	Images() []Image
	StorageBuffers() []StorageBuffer

	// BufferBinding declares a vertex buffer binding on vao whose vertices interleave the given
	// fields in order. The stride is the packed size of the fields.
	//
	// Parameters:
	//   - vao: the vertex array to declare the binding on
	//   - fields: inputs, normalized inputs and padding in vertex layout order
	//
	// Returns:
	//   - vertexarray.BindingPoint: the binding to assign the vertex buffer to
	BufferBinding(vao vertexarray.VertexArray, fields ...VertexField) vertexarray.BindingPoint

	// AttachDepth attaches tex as the depth target, promoting the framebuffer like an output
	// assignment does.
	//
	// Parameters:
	//   - tex: the depth texture
	AttachDepth(tex texture.Texture)

	// CurrentFramebuffer returns the render target outputs are attached to: the default target
	// until the first attachment, an explicit framebuffer afterwards.
	CurrentFramebuffer() framebuffer.Framebuffer

	// WorkgroupSize returns the local work group size of a compute program, and [0, 0, 0] for
	// every other stage.
	WorkgroupSize() [3]uint32

	// Backend returns the backend the program was created on.
	Backend() backend.Backend

	// Release deletes the shader, the program and a promoted framebuffer. Slots of a released
	// program panic when written.
	Release()
}

var _ Program = &program{}

func newProgram(b backend.Backend, shaderType ShaderType, opts []ProgramBuilderOption) *program {
	p := &program{
		backend:    b,
		shaderType: shaderType,
		label:      shaderType.String(),
		entryPoint: "main",
		fbo:        framebuffer.Default(b),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromSource compiles GLSL source into a separable program and reflects its resources.
//
// On failure the returned Program is non-nil but invalid, and the error is a *CompileError or
// *LinkError carrying the driver's log. The log is also written to the logger at error level.
//
// Parameters:
//   - b: the backend bound to the current context
//   - source: the GLSL source
//   - shaderType: the stage to compile for
//   - opts: a variadic list of ProgramBuilderOption functions to configure the program
//
// Returns:
//   - Program: the program
//   - error: a *CompileError or *LinkError on failure
func FromSource(b backend.Backend, source string, shaderType ShaderType, opts ...ProgramBuilderOption) (Program, error) {
	p := newProgram(b, shaderType, opts)
	return p, p.compileSource(source)
}

// FromBinary specializes a SPIR-V module at entryPoint into a separable program and reflects
// its resources. Failures are reported as for FromSource.
//
// Parameters:
//   - b: the backend bound to the current context
//   - spirv: the SPIR-V module
//   - shaderType: the stage to specialize for
//   - entryPoint: the entry point function name
//   - opts: a variadic list of ProgramBuilderOption functions to configure the program
//
// Returns:
//   - Program: the program
//   - error: a *CompileError or *LinkError on failure
func FromBinary(b backend.Backend, spirv []byte, shaderType ShaderType, entryPoint string, opts ...ProgramBuilderOption) (Program, error) {
	p := newProgram(b, shaderType, opts)
	p.entryPoint = entryPoint
	return p, p.compileBinary(spirv)
}

// Load reads a shader file. Files ending in .spv are loaded as SPIR-V at the entry point set
// with WithEntryPoint ("main" by default); anything else is GLSL whose #include directives are
// resolved against the file's directory and then the WithIncludeDirs directories.
//
// Parameters:
//   - b: the backend bound to the current context
//   - path: the shader file
//   - shaderType: the stage to compile for
//   - opts: a variadic list of ProgramBuilderOption functions to configure the program
//
// Returns:
//   - Program: the program, nil if the file could not be read or pre-processed
//   - error: a read, pre-processing, *CompileError or *LinkError failure
func Load(b backend.Backend, path string, shaderType ShaderType, opts ...ProgramBuilderOption) (Program, error) {
	p := newProgram(b, shaderType, append([]ProgramBuilderOption{WithLabel(path)}, opts...))

	if strings.EqualFold(filepath.Ext(path), ".spv") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("shader: failed to read binary %q: %w", path, err)
		}
		return p, p.compileBinary(data)
	}

	dirs := append([]string{filepath.Dir(path)}, p.includeDirs...)
	source, err := NewPreProcessor(dirs...).ProcessFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to pre-process %q: %w", path, err)
	}
	return p, p.compileSource(source)
}

func (p *program) compileSource(source string) error {
	p.shader = handle.CreateShader(p.backend, p.shaderType.Stage())
	p.backend.ShaderSource(p.shader.ID(), source)
	p.backend.CompileShader(p.shader.ID())
	return p.link()
}

func (p *program) compileBinary(spirv []byte) error {
	p.shader = handle.CreateShader(p.backend, p.shaderType.Stage())
	p.backend.ShaderBinary(p.shader.ID(), backend.ShaderBinaryFormatSPIRV, spirv)
	p.backend.SpecializeShader(p.shader.ID(), p.entryPoint)
	return p.link()
}

// link checks the compile status, links the shader into a separable program and reflects it.
func (p *program) link() error {
	if ok, log := p.backend.ShaderCompileStatus(p.shader.ID()); !ok {
		err := &CompileError{ShaderType: p.shaderType, Label: p.label, Log: log}
		logger.Logger().Error("shader compile failed", "label", p.label, "stage", p.shaderType.String(), "log", log)
		return err
	}

	p.program = handle.Create(p.backend, handle.KindProgram)
	id := p.program.ID()
	p.backend.ProgramParameteri(id, backend.ProgramSeparable, 1)
	p.backend.AttachShader(id, p.shader.ID())
	p.backend.LinkProgram(id)
	p.backend.DetachShader(id, p.shader.ID())

	if ok, log := p.backend.ProgramLinkStatus(id); !ok {
		err := &LinkError{ShaderType: p.shaderType, Label: p.label, Log: log}
		logger.Logger().Error("shader link failed", "label", p.label, "stage", p.shaderType.String(), "log", log)
		return err
	}

	p.linked = true
	p.reflect()
	if p.shaderType == ShaderTypeCompute {
		p.workGroupSize = p.backend.ComputeWorkGroupSize(id)
	}
	logger.Logger().Debug("shader program linked",
		"label", p.label,
		"stage", p.shaderType.String(),
		"inputs", len(p.inputs.items),
		"outputs", len(p.outputs.items),
		"uniforms", len(p.uniforms.items),
		"samplers", len(p.samplers.items),
		"images", len(p.images.items),
		"storage_buffers", len(p.storageBuffers.items),
	)
	return nil
}

func (p *program) Valid() bool {
	return p.linked && p.program.Valid()
}

func (p *program) ShaderType() ShaderType {
	return p.shaderType
}

func (p *program) Label() string {
	return p.label
}

func (p *program) ShaderID() uint32 {
	return p.shader.ID()
}

func (p *program) ProgramID() uint32 {
	return p.program.ID()
}

func (p *program) Input(name string) Input {
	return mustFind(p, &p.inputs, backend.InterfaceName(backend.ProgramInput), name)
}

func (p *program) Output(name string) Output {
	return mustFind(p, &p.outputs, backend.InterfaceName(backend.ProgramOutput), name)
}

func (p *program) Uniform(name string) Uniform {
	return mustFind(p, &p.uniforms, backend.InterfaceName(backend.Uniform), name)
}

func (p *program) Sampler(name string) Sampler {
	return mustFind(p, &p.samplers, "sampler", name)
}

func (p *program) Image(name string) Image {
	return mustFind(p, &p.images, "image", name)
}

func (p *program) StorageBuffer(name string) StorageBuffer {
	return mustFind(p, &p.storageBuffers, "storage buffer", name)
}

func (p *program) FindInput(name string) (Input, bool) {
	return p.inputs.find(name)
}

func (p *program) FindOutput(name string) (Output, bool) {
	return p.outputs.find(name)
}

func (p *program) FindUniform(name string) (Uniform, bool) {
	return p.uniforms.find(name)
}

func (p *program) FindSampler(name string) (Sampler, bool) {
	return p.samplers.find(name)
}

func (p *program) FindImage(name string) (Image, bool) {
	return p.images.find(name)
}

func (p *program) FindStorageBuffer(name string) (StorageBuffer, bool) {
	return p.storageBuffers.find(name)
}

func (p *program) Inputs() []Input {
	return p.inputs.list()
}

func (p *program) Outputs() []Output {
	return p.outputs.list()
}

func (p *program) Uniforms() []Uniform {
	return p.uniforms.list()
}

func (p *program) Samplers() []Sampler {
	return p.samplers.list()
}

func (p *program) Images() []Image {
	return p.images.list()
}

func (p *program) StorageBuffers() []StorageBuffer {
	return p.storageBuffers.list()
}

func (p *program) AttachDepth(tex texture.Texture) {
	p.attachTexture(backend.DepthAttachment, tex, 0)
}

func (p *program) CurrentFramebuffer() framebuffer.Framebuffer {
	return p.fbo
}

func (p *program) WorkgroupSize() [3]uint32 {
	return p.workGroupSize
}

func (p *program) Backend() backend.Backend {
	return p.backend
}

func (p *program) Release() {
	p.linked = false
	p.fbo.Release()
	p.fbo = framebuffer.Default(p.backend)
	p.program.Release()
	p.shader.Release()
}

// attachTexture attaches tex to the program's render target, replacing the default target with
// an explicit framebuffer the first time. Non-fragment programs have no render target and ignore
// the call.
func (p *program) attachTexture(point backend.Enum, tex texture.Texture, level int32) {
	if p.shaderType != ShaderTypeFragment {
		logger.Logger().Debug("ignoring attachment on non-fragment program", "label", p.label, "stage", p.shaderType.String())
		return
	}
	if p.fbo.IsDefault() {
		p.fbo = framebuffer.New(p.backend)
	}
	p.fbo.Attach(point, tex, level)
}

func mustFind[T any](p *program, t *table[T], iface, name string) T {
	v, ok := t.find(name)
	if !ok {
		panic(&ResourceNotFoundError{Interface: iface, Name: name, Label: p.label})
	}
	return v
}
