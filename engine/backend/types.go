package backend

import "fmt"

// TypeInfo describes the shape of a GLSL data type as reported by introspection.
type TypeInfo struct {
	// Scalar is the component type: Float, Int, UnsignedInt, Bool or Double.
	Scalar Enum
	// Components is the vector width, or the row count for matrices.
	Components int
	// Columns is 1 for scalars and vectors.
	Columns int
}

// ByteSize returns the tightly packed size of one value of the type.
func (t TypeInfo) ByteSize() int {
	scalar := 4
	if t.Scalar == Double {
		scalar = 8
	}
	return scalar * t.Components * t.Columns
}

var typeInfos = map[Enum]TypeInfo{
	Float:        {Float, 1, 1},
	FloatVec2:    {Float, 2, 1},
	FloatVec3:    {Float, 3, 1},
	FloatVec4:    {Float, 4, 1},
	Int:          {Int, 1, 1},
	IntVec2:      {Int, 2, 1},
	IntVec3:      {Int, 3, 1},
	IntVec4:      {Int, 4, 1},
	UnsignedInt:  {UnsignedInt, 1, 1},
	UnsignedVec2: {UnsignedInt, 2, 1},
	UnsignedVec3: {UnsignedInt, 3, 1},
	UnsignedVec4: {UnsignedInt, 4, 1},
	Bool:         {Bool, 1, 1},
	BoolVec2:     {Bool, 2, 1},
	BoolVec3:     {Bool, 3, 1},
	BoolVec4:     {Bool, 4, 1},
	Double:       {Double, 1, 1},
	DoubleVec2:   {Double, 2, 1},
	DoubleVec3:   {Double, 3, 1},
	DoubleVec4:   {Double, 4, 1},
	FloatMat2:    {Float, 2, 2},
	FloatMat3:    {Float, 3, 3},
	FloatMat4:    {Float, 4, 4},
	FloatMat2x3:  {Float, 3, 2},
	FloatMat2x4:  {Float, 4, 2},
	FloatMat3x2:  {Float, 2, 3},
	FloatMat3x4:  {Float, 4, 3},
	FloatMat4x2:  {Float, 2, 4},
	FloatMat4x3:  {Float, 3, 4},
	DoubleMat2:   {Double, 2, 2},
	DoubleMat3:   {Double, 3, 3},
	DoubleMat4:   {Double, 4, 4},
	DoubleMat2x3: {Double, 3, 2},
	DoubleMat2x4: {Double, 4, 2},
	DoubleMat3x2: {Double, 2, 3},
	DoubleMat3x4: {Double, 4, 3},
	DoubleMat4x2: {Double, 2, 4},
	DoubleMat4x3: {Double, 3, 4},
}

// LookupType returns the shape of a non-opaque GLSL type.
func LookupType(t Enum) (TypeInfo, bool) {
	info, ok := typeInfos[t]
	return info, ok
}

// IsSampler reports whether t is one of the opaque sampler types.
func IsSampler(t Enum) bool {
	switch {
	case t >= Sampler1D && t <= Sampler2DRectShadow,
		t >= Sampler1DArray && t <= SamplerCubeShadow,
		t >= IntSampler1D && t <= UintSamplerBuffer,
		t >= Sampler2DMultisample && t <= UintSampler2DMultisampleArray,
		t >= SamplerCubeMapArray && t <= UintSamplerCubeMapArray:
		return true
	}
	return false
}

// IsImage reports whether t is one of the opaque image types.
func IsImage(t Enum) bool {
	return t >= Image1D && t <= UintImage2DMultisampleArray
}

// IsAtomicCounter reports whether t is the atomic counter type.
func IsAtomicCounter(t Enum) bool {
	return t == AtomicCounter
}

// StageName returns the GLSL name of a shader stage.
func StageName(stage Enum) string {
	switch stage {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case ComputeShader:
		return "compute"
	case GeometryShader:
		return "geometry"
	case TessControlShader:
		return "tess_control"
	case TessEvaluationShader:
		return "tess_evaluation"
	}
	return fmt.Sprintf("stage(0x%04X)", uint32(stage))
}

// StageBit returns the program pipeline stage bit for a shader stage.
func StageBit(stage Enum) Enum {
	switch stage {
	case VertexShader:
		return VertexShaderBit
	case FragmentShader:
		return FragmentShaderBit
	case ComputeShader:
		return ComputeShaderBit
	case GeometryShader:
		return GeometryShaderBit
	case TessControlShader:
		return TessControlShaderBit
	case TessEvaluationShader:
		return TessEvaluationShaderBit
	}
	panic(fmt.Sprintf("backend: unknown shader stage 0x%04X", uint32(stage)))
}

// InterfaceName returns a readable name for a program interface.
func InterfaceName(programInterface Enum) string {
	switch programInterface {
	case ProgramInput:
		return "input"
	case ProgramOutput:
		return "output"
	case Uniform:
		return "uniform"
	case ShaderStorageBlock:
		return "storage block"
	}
	return fmt.Sprintf("interface(0x%04X)", uint32(programInterface))
}
