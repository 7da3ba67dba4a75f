package tokens

// Boolean and capability enumerants.
const (
	GL_FALSE uint32 = 0
	GL_TRUE  uint32 = 1
	GL_NONE  uint32 = 0

	GL_CULL_FACE        uint32 = 0x0B44
	GL_LIGHTING         uint32 = 0x0B50
	GL_FOG              uint32 = 0x0B60
	GL_DEPTH_TEST       uint32 = 0x0B71
	GL_ALPHA_TEST       uint32 = 0x0BC0
	GL_BLEND            uint32 = 0x0BE2
	GL_SCISSOR_TEST     uint32 = 0x0C11
	GL_TEXTURE_2D       uint32 = 0x0DE1
	GL_TEXTURE_CUBE_MAP uint32 = 0x8513
	GL_LIGHT0           uint32 = 0x4000
)

// Faces, polygon modes, shade models.
const (
	GL_FRONT          uint32 = 0x0404
	GL_BACK           uint32 = 0x0405
	GL_FRONT_AND_BACK uint32 = 0x0408

	GL_POINT uint32 = 0x1B00
	GL_LINE  uint32 = 0x1B01
	GL_FILL  uint32 = 0x1B02
)

// Comparison functions.
const (
	GL_NEVER    uint32 = 0x0200
	GL_LESS     uint32 = 0x0201
	GL_EQUAL    uint32 = 0x0202
	GL_LEQUAL   uint32 = 0x0203
	GL_GREATER  uint32 = 0x0204
	GL_NOTEQUAL uint32 = 0x0205
	GL_GEQUAL   uint32 = 0x0206
	GL_ALWAYS   uint32 = 0x0207
)

// Blend factors. GL_SRC_COLOR..GL_ONE_MINUS_SRC_ALPHA double as combiner
// operands.
const (
	GL_ZERO                uint32 = 0
	GL_ONE                 uint32 = 1
	GL_SRC_COLOR           uint32 = 0x0300
	GL_ONE_MINUS_SRC_COLOR uint32 = 0x0301
	GL_SRC_ALPHA           uint32 = 0x0302
	GL_ONE_MINUS_SRC_ALPHA uint32 = 0x0303
	GL_DST_ALPHA           uint32 = 0x0304
	GL_ONE_MINUS_DST_ALPHA uint32 = 0x0305
	GL_DST_COLOR           uint32 = 0x0306
	GL_ONE_MINUS_DST_COLOR uint32 = 0x0307
)

// Texture environment and ARB_texture_env_combine.
const (
	GL_TEXTURE_ENV      uint32 = 0x2300
	GL_TEXTURE_ENV_MODE uint32 = 0x2200
	GL_MODULATE         uint32 = 0x2100
	GL_REPLACE          uint32 = 0x1E01
	GL_ADD              uint32 = 0x0104
	GL_ALPHA_SCALE      uint32 = 0x0D1C

	GL_COMBINE           uint32 = 0x8570
	GL_COMBINE_RGB       uint32 = 0x8571
	GL_COMBINE_ALPHA     uint32 = 0x8572
	GL_RGB_SCALE         uint32 = 0x8573
	GL_ADD_SIGNED        uint32 = 0x8574
	GL_CONSTANT          uint32 = 0x8576
	GL_PRIMARY_COLOR     uint32 = 0x8577
	GL_PREVIOUS          uint32 = 0x8578
	GL_SUBTRACT          uint32 = 0x84E7
	GL_DOT3_RGBA         uint32 = 0x86AF
	GL_TEXTURE           uint32 = 0x1702
	GL_SOURCE0_RGB       uint32 = 0x8580
	GL_SOURCE1_RGB       uint32 = 0x8581
	GL_SOURCE0_ALPHA     uint32 = 0x8588
	GL_SOURCE1_ALPHA     uint32 = 0x8589
	GL_OPERAND0_RGB      uint32 = 0x8590
	GL_OPERAND1_RGB      uint32 = 0x8591
	GL_OPERAND0_ALPHA    uint32 = 0x8598
	GL_OPERAND1_ALPHA    uint32 = 0x8599
	GL_TEXTURE_ENV_COLOR uint32 = 0x2201
)

// Matrices, lights, materials.
const (
	GL_MODELVIEW  uint32 = 0x1700
	GL_PROJECTION uint32 = 0x1701

	GL_DIFFUSE  uint32 = 0x1201
	GL_SPECULAR uint32 = 0x1202
	GL_POSITION uint32 = 0x1203
)

// Texture units.
const (
	GL_TEXTURE0 uint32 = 0x84C0
)

// Client arrays (FFP vertex semantics).
const (
	GL_VERTEX_ARRAY          uint32 = 0x8074
	GL_NORMAL_ARRAY          uint32 = 0x8075
	GL_COLOR_ARRAY           uint32 = 0x8076
	GL_TEXTURE_COORD_ARRAY   uint32 = 0x8078
	GL_FOG_COORD_ARRAY       uint32 = 0x8457
	GL_SECONDARY_COLOR_ARRAY uint32 = 0x845E
)

// Data types.
const (
	GL_BYTE           uint32 = 0x1400
	GL_UNSIGNED_BYTE  uint32 = 0x1401
	GL_SHORT          uint32 = 0x1402
	GL_UNSIGNED_SHORT uint32 = 0x1403
	GL_FLOAT          uint32 = 0x1406
	GL_BGRA           uint32 = 0x80E1
)

// Primitive modes.
const (
	GL_POINTS         uint32 = 0x0000
	GL_LINES          uint32 = 0x0001
	GL_LINE_STRIP     uint32 = 0x0003
	GL_TRIANGLES      uint32 = 0x0004
	GL_TRIANGLE_STRIP uint32 = 0x0005
	GL_QUADS          uint32 = 0x0007
)

// Buffers and framebuffers.
const (
	GL_ARRAY_BUFFER         uint32 = 0x8892
	GL_ELEMENT_ARRAY_BUFFER uint32 = 0x8893
	GL_STREAM_DRAW          uint32 = 0x88E0

	GL_FRAMEBUFFER          uint32 = 0x8D40
	GL_RENDERBUFFER         uint32 = 0x8D41
	GL_COLOR_ATTACHMENT0    uint32 = 0x8CE0
	GL_DEPTH_ATTACHMENT     uint32 = 0x8D00
	GL_DEPTH_COMPONENT24    uint32 = 0x81A6
	GL_FRAMEBUFFER_COMPLETE uint32 = 0x8CD5

	GL_COLOR_BUFFER_BIT   uint32 = 0x00004000
	GL_DEPTH_BUFFER_BIT   uint32 = 0x00000100
	GL_STENCIL_BUFFER_BIT uint32 = 0x00000400
)
