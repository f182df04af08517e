// Package opengl implements backend.Backend on OpenGL 4.6 core through github.com/go-gl/gl.
//
// Every method must be called on the thread that owns the current GL context.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/go-gl/gl/v4.6-core/gl"
)

type glBackend struct {
	debug func(backend.DebugMessage)
}

var _ backend.Backend = &glBackend{}

// New loads the GL function pointers for the context current on the calling thread.
//
// Returns:
//   - backend.Backend: the OpenGL backend
//   - error: an error if the function pointers could not be loaded
func New() (backend.Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &glBackend{}, nil
}

func (b *glBackend) Type() backend.BackendType {
	return backend.BackendTypeOpenGL
}

func (b *glBackend) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *glBackend) CreateShader(stage backend.Enum) uint32 {
	return gl.CreateShader(uint32(stage))
}

func (b *glBackend) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (b *glBackend) ShaderSource(shader uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csource, nil)
}

func (b *glBackend) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (b *glBackend) ShaderBinary(shader uint32, format backend.Enum, binary []byte) {
	if len(binary) == 0 {
		return
	}
	gl.ShaderBinary(1, &shader, uint32(format), gl.Ptr(binary), int32(len(binary)))
}

func (b *glBackend) SpecializeShader(shader uint32, entryPoint string) {
	centry, free := gl.Strs(entryPoint + "\x00")
	defer free()
	gl.SpecializeShader(shader, *centry, 0, nil, nil)
}

func (b *glBackend) ShaderCompileStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return false, gl.GoStr(&log[0])
}

func (b *glBackend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (b *glBackend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *glBackend) ProgramParameteri(program uint32, pname backend.Enum, value int32) {
	gl.ProgramParameteri(program, uint32(pname), value)
}

func (b *glBackend) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (b *glBackend) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (b *glBackend) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (b *glBackend) ProgramLinkStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &log[0])
	return false, gl.GoStr(&log[0])
}

func (b *glBackend) ActiveResourceCount(program uint32, programInterface backend.Enum) int {
	var count int32
	gl.GetProgramInterfaceiv(program, uint32(programInterface), gl.ACTIVE_RESOURCES, &count)
	return int(count)
}

func (b *glBackend) ProgramResource(program uint32, programInterface backend.Enum, index int) backend.Resource {
	var res backend.Resource
	var nameLength int32

	switch programInterface {
	case backend.ShaderStorageBlock:
		props := []uint32{gl.NAME_LENGTH, gl.BUFFER_BINDING}
		values := make([]int32, len(props))
		gl.GetProgramResourceiv(program, uint32(programInterface), uint32(index), int32(len(props)), &props[0], int32(len(values)), nil, &values[0])
		nameLength, res.BufferBinding = values[0], values[1]
		res.Location = -1
	case backend.Uniform:
		props := []uint32{gl.NAME_LENGTH, gl.TYPE, gl.ARRAY_SIZE, gl.LOCATION, gl.ATOMIC_COUNTER_BUFFER_INDEX}
		values := make([]int32, len(props))
		gl.GetProgramResourceiv(program, uint32(programInterface), uint32(index), int32(len(props)), &props[0], int32(len(values)), nil, &values[0])
		nameLength = values[0]
		res.Type, res.ArraySize, res.Location, res.AtomicCounterBufferIndex = backend.Enum(values[1]), values[2], values[3], values[4]
	default:
		props := []uint32{gl.NAME_LENGTH, gl.TYPE, gl.ARRAY_SIZE, gl.LOCATION}
		values := make([]int32, len(props))
		gl.GetProgramResourceiv(program, uint32(programInterface), uint32(index), int32(len(props)), &props[0], int32(len(values)), nil, &values[0])
		nameLength = values[0]
		res.Type, res.ArraySize, res.Location = backend.Enum(values[1]), values[2], values[3]
	}

	if nameLength > 0 {
		name := make([]byte, nameLength)
		var written int32
		gl.GetProgramResourceName(program, uint32(programInterface), uint32(index), nameLength, &written, &name[0])
		res.Name = string(name[:written])
	}
	return res
}

func (b *glBackend) AtomicCounterBufferBinding(program uint32, index int) uint32 {
	var binding int32
	gl.GetActiveAtomicCounterBufferiv(program, uint32(index), gl.ATOMIC_COUNTER_BUFFER_BINDING, &binding)
	return uint32(binding)
}

func (b *glBackend) ComputeWorkGroupSize(program uint32) [3]uint32 {
	var size [3]int32
	gl.GetProgramiv(program, gl.COMPUTE_WORK_GROUP_SIZE, &size[0])
	return [3]uint32{uint32(size[0]), uint32(size[1]), uint32(size[2])}
}

func (b *glBackend) ProgramUniformInts(program uint32, location int32, components int, values []int32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.ProgramUniform1iv(program, location, count, &values[0])
	case 2:
		gl.ProgramUniform2iv(program, location, count, &values[0])
	case 3:
		gl.ProgramUniform3iv(program, location, count, &values[0])
	case 4:
		gl.ProgramUniform4iv(program, location, count, &values[0])
	default:
		panic(fmt.Sprintf("opengl: unsupported int uniform width %d", components))
	}
}

func (b *glBackend) ProgramUniformUints(program uint32, location int32, components int, values []uint32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.ProgramUniform1uiv(program, location, count, &values[0])
	case 2:
		gl.ProgramUniform2uiv(program, location, count, &values[0])
	case 3:
		gl.ProgramUniform3uiv(program, location, count, &values[0])
	case 4:
		gl.ProgramUniform4uiv(program, location, count, &values[0])
	default:
		panic(fmt.Sprintf("opengl: unsupported uint uniform width %d", components))
	}
}

func (b *glBackend) ProgramUniformFloats(program uint32, location int32, components int, values []float32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / components)
	switch components {
	case 1:
		gl.ProgramUniform1fv(program, location, count, &values[0])
	case 2:
		gl.ProgramUniform2fv(program, location, count, &values[0])
	case 3:
		gl.ProgramUniform3fv(program, location, count, &values[0])
	case 4:
		gl.ProgramUniform4fv(program, location, count, &values[0])
	default:
		panic(fmt.Sprintf("opengl: unsupported float uniform width %d", components))
	}
}

func (b *glBackend) ProgramUniformMatrix(program uint32, location int32, columns, rows int, values []float32) {
	if len(values) == 0 {
		return
	}
	count := int32(len(values) / (columns * rows))
	switch [2]int{columns, rows} {
	case [2]int{2, 2}:
		gl.ProgramUniformMatrix2fv(program, location, count, false, &values[0])
	case [2]int{3, 3}:
		gl.ProgramUniformMatrix3fv(program, location, count, false, &values[0])
	case [2]int{4, 4}:
		gl.ProgramUniformMatrix4fv(program, location, count, false, &values[0])
	case [2]int{2, 3}:
		gl.ProgramUniformMatrix2x3fv(program, location, count, false, &values[0])
	case [2]int{2, 4}:
		gl.ProgramUniformMatrix2x4fv(program, location, count, false, &values[0])
	case [2]int{3, 2}:
		gl.ProgramUniformMatrix3x2fv(program, location, count, false, &values[0])
	case [2]int{3, 4}:
		gl.ProgramUniformMatrix3x4fv(program, location, count, false, &values[0])
	case [2]int{4, 2}:
		gl.ProgramUniformMatrix4x2fv(program, location, count, false, &values[0])
	case [2]int{4, 3}:
		gl.ProgramUniformMatrix4x3fv(program, location, count, false, &values[0])
	default:
		panic(fmt.Sprintf("opengl: unsupported matrix shape %dx%d", columns, rows))
	}
}

func (b *glBackend) BindTextureUnit(unit, texture uint32) {
	gl.BindTextureUnit(unit, texture)
}

func (b *glBackend) BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access, format backend.Enum) {
	gl.BindImageTexture(unit, texture, level, layered, layer, uint32(access), uint32(format))
}

func (b *glBackend) BindBufferBase(target backend.Enum, index, buffer uint32) {
	gl.BindBufferBase(uint32(target), index, buffer)
}

func (b *glBackend) CreateProgramPipeline() uint32 {
	var pipeline uint32
	gl.CreateProgramPipelines(1, &pipeline)
	return pipeline
}

func (b *glBackend) DeleteProgramPipeline(pipeline uint32) {
	gl.DeleteProgramPipelines(1, &pipeline)
}

func (b *glBackend) UseProgramStages(pipeline uint32, stages backend.Enum, program uint32) {
	gl.UseProgramStages(pipeline, uint32(stages), program)
}

func (b *glBackend) BindProgramPipeline(pipeline uint32) {
	gl.BindProgramPipeline(pipeline)
}

func (b *glBackend) CreateFramebuffer() uint32 {
	var framebuffer uint32
	gl.CreateFramebuffers(1, &framebuffer)
	return framebuffer
}

func (b *glBackend) DeleteFramebuffer(framebuffer uint32) {
	gl.DeleteFramebuffers(1, &framebuffer)
}

func (b *glBackend) BindFramebuffer(target backend.Enum, framebuffer uint32) {
	gl.BindFramebuffer(uint32(target), framebuffer)
}

func (b *glBackend) NamedFramebufferTexture(framebuffer uint32, attachment backend.Enum, texture uint32, level int32) {
	gl.NamedFramebufferTexture(framebuffer, uint32(attachment), texture, level)
}

func (b *glBackend) NamedFramebufferDrawBuffer(framebuffer uint32, buf backend.Enum) {
	gl.NamedFramebufferDrawBuffer(framebuffer, uint32(buf))
}

func (b *glBackend) NamedFramebufferDrawBuffers(framebuffer uint32, bufs []backend.Enum) {
	if len(bufs) == 0 {
		gl.NamedFramebufferDrawBuffer(framebuffer, gl.NONE)
		return
	}
	raw := make([]uint32, len(bufs))
	for i, buf := range bufs {
		raw[i] = uint32(buf)
	}
	gl.NamedFramebufferDrawBuffers(framebuffer, int32(len(raw)), &raw[0])
}

func (b *glBackend) CheckNamedFramebufferStatus(framebuffer uint32, target backend.Enum) backend.Enum {
	return backend.Enum(gl.CheckNamedFramebufferStatus(framebuffer, uint32(target)))
}

func (b *glBackend) ClearNamedFramebufferColor(framebuffer uint32, drawBuffer int32, rgba [4]float32) {
	gl.ClearNamedFramebufferfv(framebuffer, gl.COLOR, drawBuffer, &rgba[0])
}

func (b *glBackend) ClearNamedFramebufferDepth(framebuffer uint32, depth float32) {
	gl.ClearNamedFramebufferfv(framebuffer, gl.DEPTH, 0, &depth)
}

func (b *glBackend) CreateTexture(target backend.Enum) uint32 {
	var texture uint32
	gl.CreateTextures(uint32(target), 1, &texture)
	return texture
}

func (b *glBackend) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (b *glBackend) TextureStorage1D(texture uint32, levels int32, internalFormat backend.Enum, width int32) {
	gl.TextureStorage1D(texture, levels, uint32(internalFormat), width)
}

func (b *glBackend) TextureStorage2D(texture uint32, levels int32, internalFormat backend.Enum, width, height int32) {
	gl.TextureStorage2D(texture, levels, uint32(internalFormat), width, height)
}

func (b *glBackend) TextureStorage3D(texture uint32, levels int32, internalFormat backend.Enum, width, height, depth int32) {
	gl.TextureStorage3D(texture, levels, uint32(internalFormat), width, height, depth)
}

func (b *glBackend) TextureParameteri(texture uint32, pname backend.Enum, value int32) {
	gl.TextureParameteri(texture, uint32(pname), value)
}

func (b *glBackend) TextureSubImage(texture uint32, level int32, width, height, depth int32, format, pixelType backend.Enum, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	switch {
	case depth > 0:
		gl.TextureSubImage3D(texture, level, 0, 0, 0, width, height, depth, uint32(format), uint32(pixelType), ptr)
	case height > 0:
		gl.TextureSubImage2D(texture, level, 0, 0, width, height, uint32(format), uint32(pixelType), ptr)
	default:
		gl.TextureSubImage1D(texture, level, 0, width, uint32(format), uint32(pixelType), ptr)
	}
}

func (b *glBackend) GetTextureImage(texture uint32, level int32, format, pixelType backend.Enum, out []byte) {
	if len(out) == 0 {
		return
	}
	gl.GetTextureImage(texture, level, uint32(format), uint32(pixelType), int32(len(out)), gl.Ptr(out))
}

func (b *glBackend) GenerateTextureMipmap(texture uint32) {
	gl.GenerateTextureMipmap(texture)
}

func (b *glBackend) CreateBuffer() uint32 {
	var buffer uint32
	gl.CreateBuffers(1, &buffer)
	return buffer
}

func (b *glBackend) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (b *glBackend) NamedBufferData(buffer uint32, size int, data []byte, usage backend.Enum) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.NamedBufferData(buffer, size, ptr, uint32(usage))
}

func (b *glBackend) NamedBufferSubData(buffer uint32, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.NamedBufferSubData(buffer, offset, len(data), gl.Ptr(data))
}

func (b *glBackend) GetNamedBufferSubData(buffer uint32, offset int, out []byte) {
	if len(out) == 0 {
		return
	}
	gl.GetNamedBufferSubData(buffer, offset, len(out), gl.Ptr(out))
}

func (b *glBackend) CreateVertexArray() uint32 {
	var vao uint32
	gl.CreateVertexArrays(1, &vao)
	return vao
}

func (b *glBackend) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (b *glBackend) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (b *glBackend) VertexArrayElementBuffer(vao, buffer uint32) {
	gl.VertexArrayElementBuffer(vao, buffer)
}

func (b *glBackend) VertexArrayVertexBuffer(vao, bindingIndex, buffer uint32, offset int, stride int32) {
	gl.VertexArrayVertexBuffer(vao, bindingIndex, buffer, offset, stride)
}

func (b *glBackend) EnableVertexArrayAttrib(vao, index uint32) {
	gl.EnableVertexArrayAttrib(vao, index)
}

func (b *glBackend) VertexArrayAttribFormat(vao, index uint32, size int32, attribType backend.Enum, normalized bool, relativeOffset uint32) {
	gl.VertexArrayAttribFormat(vao, index, size, uint32(attribType), normalized, relativeOffset)
}

func (b *glBackend) VertexArrayAttribIFormat(vao, index uint32, size int32, attribType backend.Enum, relativeOffset uint32) {
	gl.VertexArrayAttribIFormat(vao, index, size, uint32(attribType), relativeOffset)
}

func (b *glBackend) VertexArrayAttribBinding(vao, index, bindingIndex uint32) {
	gl.VertexArrayAttribBinding(vao, index, bindingIndex)
}

func (b *glBackend) Enable(capability backend.Enum) {
	gl.Enable(uint32(capability))
}

func (b *glBackend) Disable(capability backend.Enum) {
	gl.Disable(uint32(capability))
}

func (b *glBackend) IsEnabled(capability backend.Enum) bool {
	return gl.IsEnabled(uint32(capability))
}

func (b *glBackend) DepthMask(flag bool) {
	gl.DepthMask(flag)
}

func (b *glBackend) DepthWriteMask() bool {
	var mask bool
	gl.GetBooleanv(gl.DEPTH_WRITEMASK, &mask)
	return mask
}

func (b *glBackend) ColorMask(r, g, bl, a bool) {
	gl.ColorMask(r, g, bl, a)
}

func (b *glBackend) ColorWriteMask() [4]bool {
	var mask [4]bool
	gl.GetBooleanv(gl.COLOR_WRITEMASK, &mask[0])
	return mask
}

func (b *glBackend) BlendFunc(src, dst backend.Enum) {
	gl.BlendFunc(uint32(src), uint32(dst))
}

func (b *glBackend) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha backend.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (b *glBackend) BlendFactors() (backend.Enum, backend.Enum) {
	var src, dst int32
	gl.GetIntegerv(gl.BLEND_SRC_RGB, &src)
	gl.GetIntegerv(gl.BLEND_DST_RGB, &dst)
	return backend.Enum(src), backend.Enum(dst)
}

func (b *glBackend) BlendAlphaFactors() (backend.Enum, backend.Enum) {
	var src, dst int32
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &src)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &dst)
	return backend.Enum(src), backend.Enum(dst)
}

func (b *glBackend) Viewport(rect backend.Rect) {
	gl.Viewport(rect.X, rect.Y, rect.Width, rect.Height)
}

func (b *glBackend) CurrentViewport() backend.Rect {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return backend.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
}

func (b *glBackend) DrawElements(mode backend.Enum, count int32, indexType backend.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(indexType), uintptr(offset))
}

func (b *glBackend) DispatchCompute(x, y, z uint32) {
	gl.DispatchCompute(x, y, z)
}

func (b *glBackend) EnableDebugOutput(callback func(backend.DebugMessage)) {
	b.debug = callback
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if b.debug == nil {
			return
		}
		b.debug(backend.DebugMessage{
			Source:   backend.Enum(source),
			Type:     backend.Enum(gltype),
			ID:       id,
			Severity: backend.Enum(severity),
			Message:  message,
		})
	}, nil)
}
