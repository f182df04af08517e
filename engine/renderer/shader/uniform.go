package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

// Uniform is a reflected non-sampler uniform. BindingPoint is the image unit for image uniforms,
// the atomic counter buffer binding for atomic counters and the location otherwise.
type Uniform struct {
	Name         string
	Type         backend.Enum
	Count        int32
	Location     int32
	BindingPoint uint32
	// ImageAccess is backend.ReadWrite for image uniforms and backend.None otherwise.
	ImageAccess backend.Enum

	owner slotOwner
}

// Set writes value to the uniform.
//
// Plain uniforms accept float32, int32, int, uint32 and bool scalars, fixed arrays of two, three,
// four, nine or sixteen float32 and of two, three or four int32 or uint32, and []float32,
// []int32, []uint32 slices. The value is split into vectors or matrices by the uniform's
// reflected type, so a [16]float32 fills a mat4 and a []float32 of length 8 fills a vec4[2].
// Image uniforms accept a texture.Texture and atomic counters a buffer.Buffer. Anything else
// panics.
//
// Parameters:
//   - value: the value to write
func (u Uniform) Set(value any) {
	p := u.owner.resolve("uniform", u.Name)

	switch {
	case backend.IsImage(u.Type):
		tex, ok := value.(texture.Texture)
		if !ok {
			panic(u.mismatch(value))
		}
		bindImage(p, u.BindingPoint, u.Location, u.ImageAccess, tex, 0)
		return
	case backend.IsAtomicCounter(u.Type):
		buf, ok := value.(buffer.Buffer)
		if !ok {
			panic(u.mismatch(value))
		}
		p.backend.BindBufferBase(backend.AtomicCounterBuffer, u.BindingPoint, buf.ID())
		return
	}

	info, ok := backend.LookupType(u.Type)
	if !ok {
		panic(u.mismatch(value))
	}

	switch v := value.(type) {
	case float32:
		u.floats(p, info, []float32{v}, value)
	case [2]float32:
		u.floats(p, info, v[:], value)
	case [3]float32:
		u.floats(p, info, v[:], value)
	case [4]float32:
		u.floats(p, info, v[:], value)
	case [9]float32:
		u.floats(p, info, v[:], value)
	case [16]float32:
		u.floats(p, info, v[:], value)
	case []float32:
		u.floats(p, info, v, value)
	case int:
		u.ints(p, info, []int32{int32(v)}, value)
	case int32:
		u.ints(p, info, []int32{v}, value)
	case bool:
		var i int32
		if v {
			i = 1
		}
		u.ints(p, info, []int32{i}, value)
	case [2]int32:
		u.ints(p, info, v[:], value)
	case [3]int32:
		u.ints(p, info, v[:], value)
	case [4]int32:
		u.ints(p, info, v[:], value)
	case []int32:
		u.ints(p, info, v, value)
	case uint32:
		u.uints(p, info, []uint32{v}, value)
	case [2]uint32:
		u.uints(p, info, v[:], value)
	case [3]uint32:
		u.uints(p, info, v[:], value)
	case [4]uint32:
		u.uints(p, info, v[:], value)
	case []uint32:
		u.uints(p, info, v, value)
	default:
		panic(u.mismatch(value))
	}
}

func (u Uniform) floats(p *program, info backend.TypeInfo, values []float32, value any) {
	if info.Scalar != backend.Float {
		panic(u.mismatch(value))
	}
	size := info.Components * info.Columns
	if len(values) == 0 || len(values)%size != 0 {
		panic(u.mismatch(value))
	}
	if info.Columns > 1 {
		p.backend.ProgramUniformMatrix(p.ProgramID(), u.Location, info.Columns, info.Components, values)
		return
	}
	p.backend.ProgramUniformFloats(p.ProgramID(), u.Location, info.Components, values)
}

func (u Uniform) ints(p *program, info backend.TypeInfo, values []int32, value any) {
	if info.Scalar != backend.Int && info.Scalar != backend.Bool {
		panic(u.mismatch(value))
	}
	if len(values) == 0 || len(values)%info.Components != 0 || info.Columns > 1 {
		panic(u.mismatch(value))
	}
	p.backend.ProgramUniformInts(p.ProgramID(), u.Location, info.Components, values)
}

func (u Uniform) uints(p *program, info backend.TypeInfo, values []uint32, value any) {
	if info.Scalar != backend.UnsignedInt {
		panic(u.mismatch(value))
	}
	if len(values) == 0 || len(values)%info.Components != 0 || info.Columns > 1 {
		panic(u.mismatch(value))
	}
	p.backend.ProgramUniformUints(p.ProgramID(), u.Location, info.Components, values)
}

func (u Uniform) mismatch(value any) string {
	return fmt.Sprintf("shader: cannot assign %T to uniform %q of type 0x%04X", value, u.Name, uint32(u.Type))
}

func (u Uniform) String() string {
	return fmt.Sprintf("uniform %q (type 0x%04X, count %d, location %d, binding %d)", u.Name, uint32(u.Type), u.Count, u.Location, u.BindingPoint)
}
