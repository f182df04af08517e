package shader

import (
	"fmt"
	"weak"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertexarray"
)

// slotOwner is the non-owning reference from a slot back to the program that reflected it.
type slotOwner struct {
	program weak.Pointer[program]
}

// resolve returns the owning program, panicking with ErrProgramReleased if it was released or
// garbage collected.
func (o slotOwner) resolve(kind, name string) *program {
	p := o.program.Value()
	if p == nil || !p.Valid() {
		panic(fmt.Errorf("%w: %s %q", ErrProgramReleased, kind, name))
	}
	return p
}

// Input is a reflected vertex input. Inputs are read-only descriptors used to build vertex
// attribute layouts.
type Input struct {
	Name      string
	Type      backend.Enum
	ArraySize int32
	Location  int32
}

// Attribute returns the vertex attribute feeding this input from tightly typed data.
//
// Parameters:
//   - offset: the byte offset of the input within one vertex
//
// Returns:
//   - vertexarray.Attribute: the attribute
func (in Input) Attribute(offset uint32) vertexarray.Attribute {
	attr, ok := vertexarray.AttributeFor(uint32(in.Location), in.Type, offset)
	if !ok {
		panic(fmt.Sprintf("shader: input %q of type 0x%04X cannot be sourced from a vertex buffer", in.Name, uint32(in.Type)))
	}
	return attr
}

// Bind declares a binding on vao that feeds only this input and attaches buf to it.
//
// Parameters:
//   - vao: the vertex array
//   - buf: the vertex buffer holding tightly packed values of the input's type
//
// Returns:
//   - vertexarray.BindingPoint: the declared binding
func (in Input) Bind(vao vertexarray.VertexArray, buf buffer.Buffer) vertexarray.BindingPoint {
	info, _ := backend.LookupType(in.Type)
	bp := vao.VertexBufferBinding([]vertexarray.Attribute{in.Attribute(0)}, int32(info.ByteSize()))
	bp.Set(buf)
	return bp
}

func (in Input) String() string {
	return fmt.Sprintf("input %q (type 0x%04X, location %d)", in.Name, uint32(in.Type), in.Location)
}

// Output is a reflected fragment output. Assigning a texture attaches it to the program's render
// target at COLOR_ATTACHMENT0 + Location.
type Output struct {
	Name     string
	Type     backend.Enum
	Location int32

	owner slotOwner
}

// Set attaches level 0 of tex.
//
// Parameters:
//   - tex: the color target
func (o Output) Set(tex texture.Texture) {
	o.SetLevel(tex, 0)
}

// SetLevel attaches a mip level of tex.
//
// Parameters:
//   - tex: the color target
//   - level: the mip level to render into
func (o Output) SetLevel(tex texture.Texture, level int32) {
	p := o.owner.resolve(backend.InterfaceName(backend.ProgramOutput), o.Name)
	p.attachTexture(backend.ColorAttachment(int(o.Location)), tex, level)
}

func (o Output) String() string {
	return fmt.Sprintf("output %q (type 0x%04X, location %d)", o.Name, uint32(o.Type), o.Location)
}

// Sampler is a reflected sampler uniform with the texture unit assigned to it at link time.
type Sampler struct {
	Name     string
	Type     backend.Enum
	Unit     uint32
	Location int32

	owner slotOwner
}

// Set binds tex to the sampler's unit and points the sampler uniform at that unit.
//
// Parameters:
//   - tex: the texture to sample
func (s Sampler) Set(tex texture.Texture) {
	p := s.owner.resolve("sampler", s.Name)
	p.backend.BindTextureUnit(s.Unit, tex.ID())
	p.backend.ProgramUniformInts(p.ProgramID(), s.Location, 1, []int32{int32(s.Unit)})
}

func (s Sampler) String() string {
	return fmt.Sprintf("sampler %q (type 0x%04X, unit %d, location %d)", s.Name, uint32(s.Type), s.Unit, s.Location)
}

// Image is a reflected image uniform with the image unit assigned to it at link time.
type Image struct {
	Name     string
	Type     backend.Enum
	Unit     uint32
	Location int32
	Access   backend.Enum

	owner slotOwner
}

// Set binds level 0 of tex to the image unit.
//
// Parameters:
//   - tex: the texture to load from and store to
func (i Image) Set(tex texture.Texture) {
	i.SetLevel(tex, 0)
}

// SetLevel binds a mip level of tex to the image unit. 3D textures are bound layered.
//
// Parameters:
//   - tex: the texture to load from and store to
//   - level: the mip level
func (i Image) SetLevel(tex texture.Texture, level int32) {
	p := i.owner.resolve("image", i.Name)
	bindImage(p, i.Unit, i.Location, i.Access, tex, level)
}

func (i Image) String() string {
	return fmt.Sprintf("image %q (type 0x%04X, unit %d, location %d)", i.Name, uint32(i.Type), i.Unit, i.Location)
}

func bindImage(p *program, unit uint32, location int32, access backend.Enum, tex texture.Texture, level int32) {
	layered := tex.Target() == backend.Texture3D
	p.backend.BindImageTexture(unit, tex.ID(), level, layered, 0, access, tex.InternalFormat())
	p.backend.ProgramUniformInts(p.ProgramID(), location, 1, []int32{int32(unit)})
}

// StorageBuffer is a reflected shader storage block and its buffer binding point.
type StorageBuffer struct {
	Name    string
	Binding uint32

	owner slotOwner
}

// Set binds buf to the block's binding point.
//
// Parameters:
//   - buf: the storage buffer
func (s StorageBuffer) Set(buf buffer.Buffer) {
	p := s.owner.resolve("storage buffer", s.Name)
	p.backend.BindBufferBase(backend.ShaderStorageBuffer, s.Binding, buf.ID())
}

func (s StorageBuffer) String() string {
	return fmt.Sprintf("storage buffer %q (binding %d)", s.Name, s.Binding)
}

// VertexField is one entry of a vertex layout passed to Program.BufferBinding.
type VertexField struct {
	name       string
	normalized bool
	padding    uint32
}

// Field refers to the input named name.
func Field(name string) VertexField {
	return VertexField{name: name}
}

// Normalized refers to the input named name, read from normalized integer data.
func Normalized(name string) VertexField {
	return VertexField{name: name, normalized: true}
}

// Padding skips bytes between fields.
func Padding(bytes uint32) VertexField {
	return VertexField{padding: bytes}
}

func (p *program) BufferBinding(vao vertexarray.VertexArray, fields ...VertexField) vertexarray.BindingPoint {
	var offset uint32
	attrs := make([]vertexarray.Attribute, 0, len(fields))
	for _, f := range fields {
		if f.name == "" {
			offset += f.padding
			continue
		}
		in := p.Input(f.name)
		attr := in.Attribute(offset)
		attr.Normalized = f.normalized
		attrs = append(attrs, attr)

		info, _ := backend.LookupType(in.Type)
		offset += uint32(info.ByteSize())
	}
	return vao.VertexBufferBinding(attrs, int32(offset))
}
