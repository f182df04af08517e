package shader

import (
	"strings"
	"weak"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

// table is a name-indexed binding table that remembers reflection order.
type table[T any] struct {
	items  []T
	byName map[string]int
}

func (t *table[T]) add(name string, v T) {
	if t.byName == nil {
		t.byName = make(map[string]int)
	}
	if i, ok := t.byName[name]; ok {
		t.items[i] = v
		return
	}
	t.byName[name] = len(t.items)
	t.items = append(t.items, v)
}

func (t *table[T]) find(name string) (T, bool) {
	i, ok := t.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	return t.items[i], true
}

func (t *table[T]) list() []T {
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

// reflect fills the binding tables from the linked program. Resources are visited in the order
// the backend enumerates them and units are handed out in that order, so identical programs
// always get identical units.
func (p *program) reflect() {
	b, id := p.backend, p.program.ID()
	owner := slotOwner{program: weak.Make(p)}

	for i := range b.ActiveResourceCount(id, backend.ProgramInput) {
		r := b.ProgramResource(id, backend.ProgramInput, i)
		name := baseName(r.Name)
		p.inputs.add(name, Input{Name: name, Type: r.Type, ArraySize: r.ArraySize, Location: r.Location})
	}

	for i := range b.ActiveResourceCount(id, backend.ProgramOutput) {
		r := b.ProgramResource(id, backend.ProgramOutput, i)
		name := baseName(r.Name)
		p.outputs.add(name, Output{Name: name, Type: r.Type, Location: r.Location, owner: owner})
	}

	var textureUnit, imageUnit uint32
	for i := range b.ActiveResourceCount(id, backend.Uniform) {
		r := b.ProgramResource(id, backend.Uniform, i)
		name := baseName(r.Name)
		u := Uniform{
			Name:         name,
			Type:         r.Type,
			Count:        max(r.ArraySize, 1),
			Location:     r.Location,
			BindingPoint: uint32(max(r.Location, 0)),
			owner:        owner,
		}

		switch {
		case backend.IsSampler(r.Type):
			p.samplers.add(name, Sampler{Name: name, Type: r.Type, Unit: textureUnit, Location: r.Location, owner: owner})
			textureUnit++
			continue
		case backend.IsImage(r.Type):
			img := Image{Name: name, Type: r.Type, Unit: imageUnit, Location: r.Location, Access: backend.ReadWrite, owner: owner}
			imageUnit++
			p.images.add(name, img)
			u.BindingPoint, u.ImageAccess = img.Unit, img.Access
		case backend.IsAtomicCounter(r.Type):
			u.BindingPoint = b.AtomicCounterBufferBinding(id, int(r.AtomicCounterBufferIndex))
		}
		p.uniforms.add(name, u)
	}

	for i := range b.ActiveResourceCount(id, backend.ShaderStorageBlock) {
		r := b.ProgramResource(id, backend.ShaderStorageBlock, i)
		p.storageBuffers.add(r.Name, StorageBuffer{Name: r.Name, Binding: uint32(r.BufferBinding), owner: owner})
	}
}

// baseName strips the "[0]" suffix introspection reports for arrays.
func baseName(name string) string {
	return strings.TrimSuffix(name, "[0]")
}
