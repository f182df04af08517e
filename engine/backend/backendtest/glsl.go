package backendtest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/backend"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// SPIRV wraps GLSL text in a SPIR-V magic header. The recorder reflects the wrapped text as if it
// were the module's source, so binary loading paths can be tested without a real compiler.
func SPIRV(source string) []byte {
	out := []byte{0x03, 0x02, 0x23, 0x07}
	return append(out, source...)
}

func unwrapSPIRV(binary []byte) (string, bool) {
	if len(binary) < 4 {
		return "", false
	}
	word := uint32(binary[0]) | uint32(binary[1])<<8 | uint32(binary[2])<<16 | uint32(binary[3])<<24
	if word != spirvMagic {
		return "", false
	}
	return string(binary[4:]), true
}

var glslTypes = map[string]backend.Enum{
	"float": backend.Float, "vec2": backend.FloatVec2, "vec3": backend.FloatVec3, "vec4": backend.FloatVec4,
	"int": backend.Int, "ivec2": backend.IntVec2, "ivec3": backend.IntVec3, "ivec4": backend.IntVec4,
	"uint": backend.UnsignedInt, "uvec2": backend.UnsignedVec2, "uvec3": backend.UnsignedVec3, "uvec4": backend.UnsignedVec4,
	"bool": backend.Bool, "bvec2": backend.BoolVec2, "bvec3": backend.BoolVec3, "bvec4": backend.BoolVec4,
	"double": backend.Double, "dvec2": backend.DoubleVec2, "dvec3": backend.DoubleVec3, "dvec4": backend.DoubleVec4,
	"mat2": backend.FloatMat2, "mat3": backend.FloatMat3, "mat4": backend.FloatMat4,
	"mat2x3": backend.FloatMat2x3, "mat2x4": backend.FloatMat2x4, "mat3x2": backend.FloatMat3x2,
	"mat3x4": backend.FloatMat3x4, "mat4x2": backend.FloatMat4x2, "mat4x3": backend.FloatMat4x3,
	"sampler1D": backend.Sampler1D, "sampler2D": backend.Sampler2D, "sampler3D": backend.Sampler3D,
	"samplerCube": backend.SamplerCube, "sampler2DShadow": backend.Sampler2DShadow,
	"sampler2DArray": backend.Sampler2DArray, "samplerBuffer": backend.SamplerBuffer,
	"isampler2D": backend.IntSampler2D, "usampler2D": backend.UintSampler2D,
	"image1D": backend.Image1D, "image2D": backend.Image2D, "image3D": backend.Image3D,
	"image2DArray": backend.Image2DArray, "iimage2D": backend.IntImage2D, "uimage2D": backend.UintImage2D,
	"atomic_uint": backend.AtomicCounter,
}

var ignoredQualifiers = map[string]bool{
	"flat": true, "smooth": true, "noperspective": true, "centroid": true,
	"readonly": true, "writeonly": true, "coherent": true, "volatile": true, "restrict": true,
	"highp": true, "mediump": true, "lowp": true, "const": true,
}

var (
	layoutPattern    = regexp.MustCompile(`^layout\s*\(([^)]*)\)\s*`)
	arraySizePattern = regexp.MustCompile(`^(\w+)\[(\d+)\]$`)
)

// reflection is what a compiled shader object exposes once linked into a program.
type reflection struct {
	inputs         []backend.Resource
	outputs        []backend.Resource
	uniforms       []backend.Resource
	storageBlocks  []backend.Resource
	atomicBindings []uint32
	entryPoints    []string
	localSize      [3]uint32
	compute        bool
}

// reflectSource scans GLSL declarations line by line. Resources are reported in declaration order.
func reflectSource(source string) (*reflection, error) {
	r := &reflection{localSize: [3]uint32{1, 1, 1}}
	var nextInput, nextOutput, nextUniform int32
	seenAtomic := map[uint32]int32{}

	for i, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "void ") {
			name := strings.TrimPrefix(line, "void ")
			if paren := strings.Index(name, "("); paren > 0 {
				r.entryPoints = append(r.entryPoints, strings.TrimSpace(name[:paren]))
			}
			continue
		}

		layout := map[string]string{}
		if m := layoutPattern.FindStringSubmatch(line); m != nil {
			for _, part := range strings.Split(m[1], ",") {
				key, value, _ := strings.Cut(part, "=")
				layout[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
			line = line[len(m[0]):]
		}
		if strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";")) == "in" {
			for axis, key := range []string{"local_size_x", "local_size_y", "local_size_z"} {
				if v, ok := layout[key]; ok {
					n, _ := strconv.Atoi(v)
					r.localSize[axis] = uint32(n)
					r.compute = true
				}
			}
			continue
		}

		var fields []string
		for _, f := range strings.Fields(strings.NewReplacer(";", " ", "{", " { ").Replace(line)) {
			if !ignoredQualifiers[f] {
				fields = append(fields, f)
			}
		}
		if len(fields) < 2 {
			continue
		}
		storage := fields[0]
		if storage != "in" && storage != "out" && storage != "uniform" && storage != "buffer" {
			continue
		}

		if storage == "buffer" {
			binding, _ := strconv.Atoi(layout["binding"])
			r.storageBlocks = append(r.storageBlocks, backend.Resource{Name: fields[1], BufferBinding: int32(binding)})
			continue
		}
		if len(fields) < 3 || fields[2] == "{" {
			// in/out/uniform blocks are not reflected
			continue
		}

		typeName, name := fields[1], fields[2]
		glType, ok := glslTypes[typeName]
		if !ok {
			return nil, fmt.Errorf("ERROR: 0:%d: '%s' : syntax error: unknown type", i+1, typeName)
		}
		res := backend.Resource{Name: name, Type: glType, ArraySize: 1}
		if m := arraySizePattern.FindStringSubmatch(name); m != nil {
			size, _ := strconv.Atoi(m[2])
			res.Name = m[1] + "[0]"
			res.ArraySize = int32(size)
		}

		location := int32(-1)
		if v, ok := layout["location"]; ok {
			n, _ := strconv.Atoi(v)
			location = int32(n)
		}

		switch storage {
		case "in":
			if location < 0 {
				location = nextInput
			}
			res.Location = location
			nextInput = location + res.ArraySize
			r.inputs = append(r.inputs, res)
		case "out":
			if location < 0 {
				location = nextOutput
			}
			res.Location = location
			nextOutput = location + res.ArraySize
			r.outputs = append(r.outputs, res)
		case "uniform":
			if glType == backend.AtomicCounter {
				binding, _ := strconv.Atoi(layout["binding"])
				res.Location = -1
				index, seen := seenAtomic[uint32(binding)]
				if !seen {
					index = int32(len(r.atomicBindings))
					seenAtomic[uint32(binding)] = index
					r.atomicBindings = append(r.atomicBindings, uint32(binding))
				}
				res.AtomicCounterBufferIndex = index
				r.uniforms = append(r.uniforms, res)
				continue
			}
			res.AtomicCounterBufferIndex = -1
			if location < 0 {
				location = nextUniform
			}
			res.Location = location
			nextUniform = location + res.ArraySize
			r.uniforms = append(r.uniforms, res)
		}
	}
	return r, nil
}
