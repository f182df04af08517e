package vertexarray

import "github.com/Carmen-Shannon/oxy-gl/engine/backend"

// AttributeFormat maps a reflected shader input type to the component count and component type
// of the matching vertex attribute. Matrix inputs report the total component count.
//
// Parameters:
//   - inputType: the GLSL type reported by introspection
//
// Returns:
//   - int32: the number of components
//   - backend.Enum: the component type
//   - bool: false if the type cannot be sourced from a vertex buffer
func AttributeFormat(inputType backend.Enum) (int32, backend.Enum, bool) {
	info, ok := backend.LookupType(inputType)
	if !ok {
		return 0, backend.Float, false
	}
	return int32(info.Components * info.Columns), info.Scalar, true
}

// AttributeFor builds the attribute that feeds a reflected shader input from tightly typed
// vertex data. Integer inputs keep integer components; everything else is read as given.
//
// Parameters:
//   - location: the input location
//   - inputType: the GLSL type reported by introspection
//   - offset: the byte offset within one vertex
//
// Returns:
//   - Attribute: the attribute description
//   - bool: false if the type cannot be sourced from a vertex buffer
func AttributeFor(location uint32, inputType backend.Enum, offset uint32) (Attribute, bool) {
	size, scalar, ok := AttributeFormat(inputType)
	if !ok {
		return Attribute{}, false
	}
	return Attribute{
		Index:   location,
		Size:    size,
		Type:    scalar,
		Offset:  offset,
		Integer: scalar == backend.Int || scalar == backend.UnsignedInt,
	}, true
}
