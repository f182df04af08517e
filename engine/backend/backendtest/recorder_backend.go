package backendtest

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

func (r *Recorder) CreateShader(stage backend.Enum) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.shaders[id] = &shaderObject{stage: stage}
	r.record("CreateShader", stage)
	return id
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shaders, shader)
	r.record("DeleteShader", shader)
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shaders[shader]; ok {
		s.source = source
	}
	r.record("ShaderSource", shader, source)
}

func (r *Recorder) CompileShader(shader uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("CompileShader", shader)
	s, ok := r.shaders[shader]
	if !ok {
		return
	}
	r.compileLocked(s, s.source)
}

func (r *Recorder) compileLocked(s *shaderObject, source string) {
	if r.compileFailure != "" {
		s.compiled, s.log = false, r.compileFailure
		r.compileFailure = ""
		return
	}
	refl, err := reflectSource(source)
	if err != nil {
		s.compiled, s.log = false, err.Error()
		return
	}
	s.compiled, s.log, s.reflect = true, "", refl
}

func (r *Recorder) ShaderBinary(shader uint32, format backend.Enum, binary []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shaders[shader]; ok {
		s.binary = slices.Clone(binary)
	}
	r.record("ShaderBinary", shader, format, len(binary))
}

func (r *Recorder) SpecializeShader(shader uint32, entryPoint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("SpecializeShader", shader, entryPoint)
	s, ok := r.shaders[shader]
	if !ok {
		return
	}
	source, ok := unwrapSPIRV(s.binary)
	if !ok {
		s.compiled, s.log = false, "invalid SPIR-V module"
		return
	}
	r.compileLocked(s, source)
	if s.compiled && !slices.Contains(s.reflect.entryPoints, entryPoint) {
		s.compiled, s.log = false, fmt.Sprintf("entry point %q not found", entryPoint)
	}
}

func (r *Recorder) ShaderCompileStatus(shader uint32) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shaders[shader]
	if !ok {
		return false, "invalid shader object"
	}
	return s.compiled, s.log
}

func (r *Recorder) CreateProgram() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.programs[id] = &programObject{params: make(map[backend.Enum]int32)}
	r.record("CreateProgram")
	return id
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.programs, program)
	delete(r.uniforms, program)
	r.record("DeleteProgram", program)
}

func (r *Recorder) ProgramParameteri(program uint32, pname backend.Enum, value int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.programs[program]; ok {
		p.params[pname] = value
	}
	r.record("ProgramParameteri", program, pname, value)
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.programs[program]; ok {
		p.shaders = append(p.shaders, shader)
	}
	r.record("AttachShader", program, shader)
}

func (r *Recorder) DetachShader(program, shader uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.programs[program]; ok {
		p.shaders = slices.DeleteFunc(p.shaders, func(s uint32) bool { return s == shader })
	}
	r.record("DetachShader", program, shader)
}

func (r *Recorder) LinkProgram(program uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("LinkProgram", program)
	p, ok := r.programs[program]
	if !ok {
		return
	}
	if r.linkFailure != "" {
		p.linked, p.log = false, r.linkFailure
		r.linkFailure = ""
		return
	}
	merged := &reflection{localSize: [3]uint32{1, 1, 1}}
	for _, id := range p.shaders {
		s, ok := r.shaders[id]
		if !ok || !s.compiled {
			p.linked, p.log = false, "attached shader is not compiled"
			return
		}
		merged.inputs = append(merged.inputs, s.reflect.inputs...)
		merged.outputs = append(merged.outputs, s.reflect.outputs...)
		merged.uniforms = append(merged.uniforms, s.reflect.uniforms...)
		merged.storageBlocks = append(merged.storageBlocks, s.reflect.storageBlocks...)
		merged.atomicBindings = append(merged.atomicBindings, s.reflect.atomicBindings...)
		if s.stage == backend.ComputeShader {
			merged.localSize, merged.compute = s.reflect.localSize, true
		}
	}
	p.linked, p.log, p.reflect = true, "", merged
}

func (r *Recorder) ProgramLinkStatus(program uint32) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[program]
	if !ok {
		return false, "invalid program object"
	}
	return p.linked, p.log
}

func (r *Recorder) resourcesLocked(program uint32, programInterface backend.Enum) []backend.Resource {
	p, ok := r.programs[program]
	if !ok || !p.linked {
		return nil
	}
	switch programInterface {
	case backend.ProgramInput:
		return p.reflect.inputs
	case backend.ProgramOutput:
		return p.reflect.outputs
	case backend.Uniform:
		return p.reflect.uniforms
	case backend.ShaderStorageBlock:
		return p.reflect.storageBlocks
	}
	return nil
}

func (r *Recorder) ActiveResourceCount(program uint32, programInterface backend.Enum) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ActiveResourceCount", program, programInterface)
	return len(r.resourcesLocked(program, programInterface))
}

func (r *Recorder) ProgramResource(program uint32, programInterface backend.Enum, index int) backend.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ProgramResource", program, programInterface, index)
	res := r.resourcesLocked(program, programInterface)
	if index < 0 || index >= len(res) {
		return backend.Resource{Location: -1}
	}
	return res[index]
}

func (r *Recorder) AtomicCounterBufferBinding(program uint32, index int) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("AtomicCounterBufferBinding", program, index)
	p, ok := r.programs[program]
	if !ok || !p.linked || index < 0 || index >= len(p.reflect.atomicBindings) {
		return 0
	}
	return p.reflect.atomicBindings[index]
}

func (r *Recorder) setUniformLocked(name string, program uint32, location int32, value any) {
	if r.uniforms[program] == nil {
		r.uniforms[program] = make(map[int32]any)
	}
	r.uniforms[program][location] = value
	r.record(name, program, location, value)
}

func (r *Recorder) ProgramUniformInts(program uint32, location int32, components int, values []int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setUniformLocked("ProgramUniformInts", program, location, slices.Clone(values))
}

func (r *Recorder) ProgramUniformUints(program uint32, location int32, components int, values []uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setUniformLocked("ProgramUniformUints", program, location, slices.Clone(values))
}

func (r *Recorder) ProgramUniformFloats(program uint32, location int32, components int, values []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setUniformLocked("ProgramUniformFloats", program, location, slices.Clone(values))
}

func (r *Recorder) ProgramUniformMatrix(program uint32, location int32, columns, rows int, values []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setUniformLocked("ProgramUniformMatrix", program, location, slices.Clone(values))
}

func (r *Recorder) BindTextureUnit(unit, texture uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textureUnits[unit] = texture
	r.record("BindTextureUnit", unit, texture)
}

func (r *Recorder) BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access, format backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.imageUnits[unit] = ImageBinding{Texture: texture, Level: level, Layered: layered, Access: access, Format: format}
	r.record("BindImageTexture", unit, texture, level, access, format)
}

func (r *Recorder) BindBufferBase(target backend.Enum, index, buffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bufferBindings[target] == nil {
		r.bufferBindings[target] = make(map[uint32]uint32)
	}
	r.bufferBindings[target][index] = buffer
	r.record("BindBufferBase", target, index, buffer)
}

func (r *Recorder) CreateProgramPipeline() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.pipelines[id] = make(map[backend.Enum]uint32)
	r.record("CreateProgramPipeline")
	return id
}

func (r *Recorder) DeleteProgramPipeline(pipeline uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pipelines, pipeline)
	r.record("DeleteProgramPipeline", pipeline)
}

func (r *Recorder) UseProgramStages(pipeline uint32, stages backend.Enum, program uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pipelines[pipeline]; ok {
		for bit := backend.Enum(1); bit <= backend.ComputeShaderBit; bit <<= 1 {
			if stages&bit != 0 {
				p[bit] = program
			}
		}
	}
	r.record("UseProgramStages", pipeline, stages, program)
}

func (r *Recorder) BindProgramPipeline(pipeline uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boundPipeline = pipeline
	r.record("BindProgramPipeline", pipeline)
}

func (r *Recorder) CreateFramebuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.framebuffers[id] = &FramebufferState{
		Attachments: make(map[backend.Enum]AttachmentState),
		DrawBuffers: []backend.Enum{backend.ColorAttachment0},
	}
	r.record("CreateFramebuffer")
	return id
}

func (r *Recorder) DeleteFramebuffer(framebuffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.framebuffers, framebuffer)
	if r.boundFramebuffer == framebuffer {
		r.boundFramebuffer = 0
	}
	r.record("DeleteFramebuffer", framebuffer)
}

func (r *Recorder) BindFramebuffer(target backend.Enum, framebuffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boundFramebuffer = framebuffer
	r.record("BindFramebuffer", target, framebuffer)
}

func (r *Recorder) NamedFramebufferTexture(framebuffer uint32, attachment backend.Enum, texture uint32, level int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fb, ok := r.framebuffers[framebuffer]; ok {
		if texture == 0 {
			delete(fb.Attachments, attachment)
		} else {
			fb.Attachments[attachment] = AttachmentState{Texture: texture, Level: level}
		}
	}
	r.record("NamedFramebufferTexture", framebuffer, attachment, texture, level)
}

func (r *Recorder) NamedFramebufferDrawBuffer(framebuffer uint32, buf backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fb, ok := r.framebuffers[framebuffer]; ok {
		fb.DrawBuffers = []backend.Enum{buf}
	}
	r.record("NamedFramebufferDrawBuffer", framebuffer, buf)
}

func (r *Recorder) NamedFramebufferDrawBuffers(framebuffer uint32, bufs []backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fb, ok := r.framebuffers[framebuffer]; ok {
		fb.DrawBuffers = slices.Clone(bufs)
	}
	r.record("NamedFramebufferDrawBuffers", framebuffer, slices.Clone(bufs))
}

func (r *Recorder) CheckNamedFramebufferStatus(framebuffer uint32, target backend.Enum) backend.Enum {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("CheckNamedFramebufferStatus", framebuffer, target)
	if framebuffer == 0 {
		return backend.FramebufferComplete
	}
	fb, ok := r.framebuffers[framebuffer]
	if !ok || len(fb.Attachments) == 0 {
		return backend.FramebufferIncompleteMissingAttachment
	}
	return backend.FramebufferComplete
}

func (r *Recorder) ClearNamedFramebufferColor(framebuffer uint32, drawBuffer int32, rgba [4]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ClearNamedFramebufferColor", framebuffer, drawBuffer, rgba)
}

func (r *Recorder) ClearNamedFramebufferDepth(framebuffer uint32, depth float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ClearNamedFramebufferDepth", framebuffer, depth)
}

func (r *Recorder) CreateTexture(target backend.Enum) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.textures[id] = &TextureState{
		Target: target,
		Params: make(map[backend.Enum]int32),
		Data:   make(map[int32][]byte),
	}
	r.record("CreateTexture", target)
	return id
}

func (r *Recorder) DeleteTexture(texture uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.textures, texture)
	r.record("DeleteTexture", texture)
}

func (r *Recorder) storageLocked(texture uint32, levels int32, internalFormat backend.Enum, width, height, depth int32) {
	if t, ok := r.textures[texture]; ok {
		t.Levels, t.InternalFormat = levels, internalFormat
		t.Width, t.Height, t.Depth = width, height, depth
	}
}

func (r *Recorder) TextureStorage1D(texture uint32, levels int32, internalFormat backend.Enum, width int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storageLocked(texture, levels, internalFormat, width, 1, 1)
	r.record("TextureStorage1D", texture, levels, internalFormat, width)
}

func (r *Recorder) TextureStorage2D(texture uint32, levels int32, internalFormat backend.Enum, width, height int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storageLocked(texture, levels, internalFormat, width, height, 1)
	r.record("TextureStorage2D", texture, levels, internalFormat, width, height)
}

func (r *Recorder) TextureStorage3D(texture uint32, levels int32, internalFormat backend.Enum, width, height, depth int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storageLocked(texture, levels, internalFormat, width, height, depth)
	r.record("TextureStorage3D", texture, levels, internalFormat, width, height, depth)
}

func (r *Recorder) TextureParameteri(texture uint32, pname backend.Enum, value int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.textures[texture]; ok {
		t.Params[pname] = value
	}
	r.record("TextureParameteri", texture, pname, value)
}

func (r *Recorder) TextureSubImage(texture uint32, level int32, width, height, depth int32, format, pixelType backend.Enum, pixels []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.textures[texture]; ok {
		t.Data[level] = slices.Clone(pixels)
	}
	r.record("TextureSubImage", texture, level, width, height, depth, format, pixelType)
}

func (r *Recorder) GetTextureImage(texture uint32, level int32, format, pixelType backend.Enum, out []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.textures[texture]; ok {
		copy(out, t.Data[level])
	}
	r.record("GetTextureImage", texture, level, format, pixelType)
}

func (r *Recorder) GenerateTextureMipmap(texture uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("GenerateTextureMipmap", texture)
}

func (r *Recorder) CreateBuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.buffers[id] = nil
	r.record("CreateBuffer")
	return id
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.buffers, buffer)
	r.record("DeleteBuffer", buffer)
}

func (r *Recorder) NamedBufferData(buffer uint32, size int, data []byte, usage backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store := make([]byte, size)
	copy(store, data)
	r.buffers[buffer] = store
	r.record("NamedBufferData", buffer, size, usage)
}

func (r *Recorder) NamedBufferSubData(buffer uint32, offset int, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.buffers[buffer]; ok && offset+len(data) <= len(store) {
		copy(store[offset:], data)
	}
	r.record("NamedBufferSubData", buffer, offset, len(data))
}

func (r *Recorder) GetNamedBufferSubData(buffer uint32, offset int, out []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.buffers[buffer]; ok && offset <= len(store) {
		copy(out, store[offset:])
	}
	r.record("GetNamedBufferSubData", buffer, offset, len(out))
}

func (r *Recorder) CreateVertexArray() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocate()
	r.vertexArrays[id] = &VertexArrayState{
		VertexBuffers: make(map[uint32]uint32),
		Attribs:       make(map[uint32]*VertexAttrib),
	}
	r.record("CreateVertexArray")
	return id
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vertexArrays, vao)
	r.record("DeleteVertexArray", vao)
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boundVertexArray = vao
	r.record("BindVertexArray", vao)
}

func (r *Recorder) VertexArrayElementBuffer(vao, buffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vertexArrays[vao]; ok {
		v.ElementBuffer = buffer
	}
	r.record("VertexArrayElementBuffer", vao, buffer)
}

func (r *Recorder) VertexArrayVertexBuffer(vao, bindingIndex, buffer uint32, offset int, stride int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vertexArrays[vao]; ok {
		v.VertexBuffers[bindingIndex] = buffer
	}
	r.record("VertexArrayVertexBuffer", vao, bindingIndex, buffer, offset, stride)
}

func (r *Recorder) attribLocked(vao, index uint32) *VertexAttrib {
	v, ok := r.vertexArrays[vao]
	if !ok {
		return &VertexAttrib{}
	}
	a, ok := v.Attribs[index]
	if !ok {
		a = &VertexAttrib{}
		v.Attribs[index] = a
	}
	return a
}

func (r *Recorder) EnableVertexArrayAttrib(vao, index uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attribLocked(vao, index).Enabled = true
	r.record("EnableVertexArrayAttrib", vao, index)
}

func (r *Recorder) VertexArrayAttribFormat(vao, index uint32, size int32, attribType backend.Enum, normalized bool, relativeOffset uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.attribLocked(vao, index)
	a.Size, a.Type, a.Normalized, a.RelativeOffset, a.Integer = size, attribType, normalized, relativeOffset, false
	r.record("VertexArrayAttribFormat", vao, index, size, attribType, normalized, relativeOffset)
}

func (r *Recorder) VertexArrayAttribIFormat(vao, index uint32, size int32, attribType backend.Enum, relativeOffset uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.attribLocked(vao, index)
	a.Size, a.Type, a.Normalized, a.RelativeOffset, a.Integer = size, attribType, false, relativeOffset, true
	r.record("VertexArrayAttribIFormat", vao, index, size, attribType, relativeOffset)
}

func (r *Recorder) VertexArrayAttribBinding(vao, index, bindingIndex uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attribLocked(vao, index).Binding = bindingIndex
	r.record("VertexArrayAttribBinding", vao, index, bindingIndex)
}

func (r *Recorder) Enable(capability backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[capability] = true
	r.record("Enable", capability)
}

func (r *Recorder) Disable(capability backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[capability] = false
	r.record("Disable", capability)
}

func (r *Recorder) IsEnabled(capability backend.Enum) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[capability]
}

func (r *Recorder) DepthMask(flag bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depthMask = flag
	r.record("DepthMask", flag)
}

func (r *Recorder) DepthWriteMask() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depthMask
}

func (r *Recorder) ColorMask(red, green, blue, alpha bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.colorMask = [4]bool{red, green, blue, alpha}
	r.record("ColorMask", red, green, blue, alpha)
}

func (r *Recorder) ColorWriteMask() [4]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.colorMask
}

func (r *Recorder) BlendFunc(src, dst backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blendSrc, r.blendDst = src, dst
	r.blendSrcAlpha, r.blendDstAlpha = src, dst
	r.record("BlendFunc", src, dst)
}

func (r *Recorder) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blendSrc, r.blendDst = srcRGB, dstRGB
	r.blendSrcAlpha, r.blendDstAlpha = srcAlpha, dstAlpha
	r.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (r *Recorder) BlendFactors() (backend.Enum, backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blendSrc, r.blendDst
}

func (r *Recorder) BlendAlphaFactors() (backend.Enum, backend.Enum) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blendSrcAlpha, r.blendDstAlpha
}

func (r *Recorder) Viewport(rect backend.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = rect
	r.record("Viewport", rect)
}

func (r *Recorder) CurrentViewport() backend.Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *Recorder) ComputeWorkGroupSize(program uint32) [3]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ComputeWorkGroupSize", program)
	p, ok := r.programs[program]
	if !ok || !p.linked || !p.reflect.compute {
		return [3]uint32{}
	}
	return p.reflect.localSize
}

func (r *Recorder) DrawElements(mode backend.Enum, count int32, indexType backend.Enum, offset int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawElements", mode, count, indexType, offset)
}

func (r *Recorder) DispatchCompute(x, y, z uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DispatchCompute", x, y, z)
}

func (r *Recorder) EnableDebugOutput(callback func(backend.DebugMessage)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = callback
	r.enabled[backend.DebugOutput] = true
	r.enabled[backend.DebugOutputSynchronous] = true
	r.record("EnableDebugOutput")
}
