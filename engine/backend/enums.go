package backend

// Shader stages.
const (
	VertexShader         Enum = 0x8B31
	FragmentShader       Enum = 0x8B30
	ComputeShader        Enum = 0x91B9
	GeometryShader       Enum = 0x8DD9
	TessControlShader    Enum = 0x8E88
	TessEvaluationShader Enum = 0x8E87
)

// Program pipeline stage bits.
const (
	VertexShaderBit         Enum = 0x01
	FragmentShaderBit       Enum = 0x02
	GeometryShaderBit       Enum = 0x04
	TessControlShaderBit    Enum = 0x08
	TessEvaluationShaderBit Enum = 0x10
	ComputeShaderBit        Enum = 0x20
)

// Program interfaces and program parameters.
const (
	ProgramInput              Enum = 0x92E3
	ProgramOutput             Enum = 0x92E4
	Uniform                   Enum = 0x92E1
	ShaderStorageBlock        Enum = 0x92E6
	ProgramSeparable          Enum = 0x8258
	ShaderBinaryFormatSPIRV   Enum = 0x9551
	AtomicCounterBufferBinding Enum = 0x92C1
)

// Buffer targets and usage hints.
const (
	ArrayBuffer         Enum = 0x8892
	ElementArrayBuffer  Enum = 0x8893
	ShaderStorageBuffer Enum = 0x90D2
	AtomicCounterBuffer Enum = 0x92C0

	StaticDraw  Enum = 0x88E4
	DynamicDraw Enum = 0x88E8
	StreamDraw  Enum = 0x88E0
)

// Framebuffer targets, attachment points and status.
const (
	None                   Enum = 0
	Framebuffer            Enum = 0x8D40
	DrawFramebuffer        Enum = 0x8CA9
	ReadFramebuffer        Enum = 0x8CA8
	Back                   Enum = 0x0405
	ColorAttachment0       Enum = 0x8CE0
	DepthAttachment        Enum = 0x8D00
	StencilAttachment      Enum = 0x8D20
	DepthStencilAttachment Enum = 0x821A
	FramebufferComplete    Enum = 0x8CD5

	FramebufferIncompleteMissingAttachment Enum = 0x8CD7
)

// ColorAttachment returns the color attachment point for the given output location.
func ColorAttachment(location int) Enum {
	return ColorAttachment0 + Enum(location)
}

// Texture targets, parameters and parameter values.
const (
	Texture1D Enum = 0x0DE0
	Texture2D Enum = 0x0DE1
	Texture3D Enum = 0x806F

	TextureMinFilter Enum = 0x2801
	TextureMagFilter Enum = 0x2800
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	TextureWrapR     Enum = 0x8072
	TextureMaxLevel  Enum = 0x813D

	Nearest     Enum = 0x2600
	Linear      Enum = 0x2601
	ClampToEdge Enum = 0x812F
	Repeat      Enum = 0x2901

	ReadWrite Enum = 0x88BA
)

// Sized internal formats.
const (
	RGBA32F           Enum = 0x8814
	RGB32F            Enum = 0x8815
	RG32F             Enum = 0x8230
	R32F              Enum = 0x822E
	RGBA8             Enum = 0x8058
	RGB8              Enum = 0x8051
	RGBA8UI           Enum = 0x8D7C
	RGB8UI            Enum = 0x8D7D
	DepthComponent32F Enum = 0x8CAC
)

// Pixel transfer formats.
const (
	RGBA           Enum = 0x1908
	RGB            Enum = 0x1907
	RG             Enum = 0x8227
	Red            Enum = 0x1903
	RGBAInteger    Enum = 0x8D99
	DepthComponent Enum = 0x1902
)

// Capabilities.
const (
	DepthTest              Enum = 0x0B71
	CullFace               Enum = 0x0B44
	Blend                  Enum = 0x0BE2
	DebugOutput            Enum = 0x92E0
	DebugOutputSynchronous Enum = 0x8242
)

// Blend factors.
const (
	Zero                  Enum = 0
	One                   Enum = 1
	SrcColor              Enum = 0x0300
	OneMinusSrcColor      Enum = 0x0301
	SrcAlpha              Enum = 0x0302
	OneMinusSrcAlpha      Enum = 0x0303
	DstAlpha              Enum = 0x0304
	OneMinusDstAlpha      Enum = 0x0305
	DstColor              Enum = 0x0306
	OneMinusDstColor      Enum = 0x0307
	ConstantColor         Enum = 0x8001
	OneMinusConstantColor Enum = 0x8002
	ConstantAlpha         Enum = 0x8003
	OneMinusConstantAlpha Enum = 0x8004
)

// Primitive modes.
const (
	Triangles Enum = 0x0004
)

// Scalar and vector types.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
	Double        Enum = 0x140A
	Bool          Enum = 0x8B56
	FloatVec2     Enum = 0x8B50
	FloatVec3     Enum = 0x8B51
	FloatVec4     Enum = 0x8B52
	IntVec2       Enum = 0x8B53
	IntVec3       Enum = 0x8B54
	IntVec4       Enum = 0x8B55
	UnsignedVec2  Enum = 0x8DC6
	UnsignedVec3  Enum = 0x8DC7
	UnsignedVec4  Enum = 0x8DC8
	BoolVec2      Enum = 0x8B57
	BoolVec3      Enum = 0x8B58
	BoolVec4      Enum = 0x8B59
	DoubleVec2    Enum = 0x8FFC
	DoubleVec3    Enum = 0x8FFD
	DoubleVec4    Enum = 0x8FFE
	FloatMat2     Enum = 0x8B5A
	FloatMat3     Enum = 0x8B5B
	FloatMat4     Enum = 0x8B5C
	FloatMat2x3   Enum = 0x8B65
	FloatMat2x4   Enum = 0x8B66
	FloatMat3x2   Enum = 0x8B67
	FloatMat3x4   Enum = 0x8B68
	FloatMat4x2   Enum = 0x8B69
	FloatMat4x3   Enum = 0x8B6A
	DoubleMat2    Enum = 0x8F46
	DoubleMat3    Enum = 0x8F47
	DoubleMat4    Enum = 0x8F48
	DoubleMat2x3  Enum = 0x8F49
	DoubleMat2x4  Enum = 0x8F4A
	DoubleMat3x2  Enum = 0x8F4B
	DoubleMat3x4  Enum = 0x8F4C
	DoubleMat4x2  Enum = 0x8F4D
	DoubleMat4x3  Enum = 0x8F4E
	AtomicCounter Enum = 0x92DB
)

// Opaque sampler types.
const (
	Sampler1D                      Enum = 0x8B5D
	Sampler2D                      Enum = 0x8B5E
	Sampler3D                      Enum = 0x8B5F
	SamplerCube                    Enum = 0x8B60
	Sampler1DShadow                Enum = 0x8B61
	Sampler2DShadow                Enum = 0x8B62
	Sampler2DRect                  Enum = 0x8B63
	Sampler2DRectShadow            Enum = 0x8B64
	Sampler1DArray                 Enum = 0x8DC0
	Sampler2DArray                 Enum = 0x8DC1
	SamplerBuffer                  Enum = 0x8DC2
	Sampler1DArrayShadow           Enum = 0x8DC3
	Sampler2DArrayShadow           Enum = 0x8DC4
	SamplerCubeShadow              Enum = 0x8DC5
	Sampler2DMultisample           Enum = 0x9108
	Sampler2DMultisampleArray      Enum = 0x910B
	SamplerCubeMapArray            Enum = 0x900C
	SamplerCubeMapArrayShadow      Enum = 0x900D
	IntSampler1D                   Enum = 0x8DC9
	IntSampler2D                   Enum = 0x8DCA
	IntSampler3D                   Enum = 0x8DCB
	IntSamplerCube                 Enum = 0x8DCC
	IntSampler2DRect               Enum = 0x8DCD
	IntSampler1DArray              Enum = 0x8DCE
	IntSampler2DArray              Enum = 0x8DCF
	IntSamplerBuffer               Enum = 0x8DD0
	IntSampler2DMultisample        Enum = 0x9109
	IntSampler2DMultisampleArray   Enum = 0x910C
	IntSamplerCubeMapArray         Enum = 0x900E
	UintSampler1D                  Enum = 0x8DD1
	UintSampler2D                  Enum = 0x8DD2
	UintSampler3D                  Enum = 0x8DD3
	UintSamplerCube                Enum = 0x8DD4
	UintSampler2DRect              Enum = 0x8DD5
	UintSampler1DArray             Enum = 0x8DD6
	UintSampler2DArray             Enum = 0x8DD7
	UintSamplerBuffer              Enum = 0x8DD8
	UintSampler2DMultisample       Enum = 0x910A
	UintSampler2DMultisampleArray  Enum = 0x910D
	UintSamplerCubeMapArray        Enum = 0x900F
)

// Opaque image types.
const (
	Image1D                     Enum = 0x904C
	Image2D                     Enum = 0x904D
	Image3D                     Enum = 0x904E
	Image2DRect                 Enum = 0x904F
	ImageCube                   Enum = 0x9050
	ImageBuffer                 Enum = 0x9051
	Image1DArray                Enum = 0x9052
	Image2DArray                Enum = 0x9053
	ImageCubeMapArray           Enum = 0x9054
	Image2DMultisample          Enum = 0x9055
	Image2DMultisampleArray     Enum = 0x9056
	IntImage1D                  Enum = 0x9057
	IntImage2D                  Enum = 0x9058
	IntImage3D                  Enum = 0x9059
	IntImage2DRect              Enum = 0x905A
	IntImageCube                Enum = 0x905B
	IntImageBuffer              Enum = 0x905C
	IntImage1DArray             Enum = 0x905D
	IntImage2DArray             Enum = 0x905E
	IntImageCubeMapArray        Enum = 0x905F
	IntImage2DMultisample       Enum = 0x9060
	IntImage2DMultisampleArray  Enum = 0x9061
	UintImage1D                 Enum = 0x9062
	UintImage2D                 Enum = 0x9063
	UintImage3D                 Enum = 0x9064
	UintImage2DRect             Enum = 0x9065
	UintImageCube               Enum = 0x9066
	UintImageBuffer             Enum = 0x9067
	UintImage1DArray            Enum = 0x9068
	UintImage2DArray            Enum = 0x9069
	UintImageCubeMapArray       Enum = 0x906A
	UintImage2DMultisample      Enum = 0x906B
	UintImage2DMultisampleArray Enum = 0x906C
)

// Debug message sources, types and severities.
const (
	DebugSourceAPI            Enum = 0x8246
	DebugSourceWindowSystem   Enum = 0x8247
	DebugSourceShaderCompiler Enum = 0x8248
	DebugSourceThirdParty     Enum = 0x8249
	DebugSourceApplication    Enum = 0x824A
	DebugSourceOther          Enum = 0x824B

	DebugTypeError              Enum = 0x824C
	DebugTypeDeprecatedBehavior Enum = 0x824D
	DebugTypeUndefinedBehavior  Enum = 0x824E
	DebugTypePortability        Enum = 0x824F
	DebugTypePerformance        Enum = 0x8250
	DebugTypeOther              Enum = 0x8251

	DebugSeverityHigh         Enum = 0x9146
	DebugSeverityMedium       Enum = 0x9147
	DebugSeverityLow          Enum = 0x9148
	DebugSeverityNotification Enum = 0x826B
)
