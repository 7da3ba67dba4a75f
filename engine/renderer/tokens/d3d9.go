// Package tokens holds the numeric values of the native Direct3D9 and
// OpenGL enumerants used by the translation tables. The values are the
// ones from d3d9types.h and the GL registry, so the tables can be built and
// tested on hosts that have neither API available.
package tokens

// D3DRENDERSTATETYPE
const (
	D3DRS_ZENABLE           uint32 = 7
	D3DRS_FILLMODE          uint32 = 8
	D3DRS_SHADEMODE         uint32 = 9
	D3DRS_ZWRITEENABLE      uint32 = 14
	D3DRS_ALPHATESTENABLE   uint32 = 15
	D3DRS_SRCBLEND          uint32 = 19
	D3DRS_DESTBLEND         uint32 = 20
	D3DRS_CULLMODE          uint32 = 22
	D3DRS_ZFUNC             uint32 = 23
	D3DRS_ALPHAREF          uint32 = 24
	D3DRS_ALPHAFUNC         uint32 = 25
	D3DRS_ALPHABLENDENABLE  uint32 = 27
	D3DRS_FOGENABLE         uint32 = 28
	D3DRS_TEXTUREFACTOR     uint32 = 60
	D3DRS_LIGHTING          uint32 = 137
	D3DRS_COLORVERTEX       uint32 = 141
	D3DRS_COLORWRITEENABLE  uint32 = 168
	D3DRS_SCISSORTESTENABLE uint32 = 174
)

// D3DFILLMODE, D3DCULL, D3DCMPFUNC, D3DBLEND
const (
	D3DFILL_POINT     uint32 = 1
	D3DFILL_WIREFRAME uint32 = 2
	D3DFILL_SOLID     uint32 = 3

	D3DCULL_NONE uint32 = 1
	D3DCULL_CW   uint32 = 2
	D3DCULL_CCW  uint32 = 3

	D3DCMP_NEVER        uint32 = 1
	D3DCMP_LESS         uint32 = 2
	D3DCMP_EQUAL        uint32 = 3
	D3DCMP_LESSEQUAL    uint32 = 4
	D3DCMP_GREATER      uint32 = 5
	D3DCMP_NOTEQUAL     uint32 = 6
	D3DCMP_GREATEREQUAL uint32 = 7
	D3DCMP_ALWAYS       uint32 = 8

	D3DBLEND_ZERO         uint32 = 1
	D3DBLEND_ONE          uint32 = 2
	D3DBLEND_SRCCOLOR     uint32 = 3
	D3DBLEND_INVSRCCOLOR  uint32 = 4
	D3DBLEND_SRCALPHA     uint32 = 5
	D3DBLEND_INVSRCALPHA  uint32 = 6
	D3DBLEND_DESTALPHA    uint32 = 7
	D3DBLEND_INVDESTALPHA uint32 = 8
	D3DBLEND_DESTCOLOR    uint32 = 9
	D3DBLEND_INVDESTCOLOR uint32 = 10
)

// D3DTEXTURESTAGESTATETYPE
const (
	D3DTSS_COLOROP   uint32 = 1
	D3DTSS_COLORARG1 uint32 = 2
	D3DTSS_COLORARG2 uint32 = 3
	D3DTSS_ALPHAOP   uint32 = 4
	D3DTSS_ALPHAARG1 uint32 = 5
	D3DTSS_ALPHAARG2 uint32 = 6
	D3DTSS_CONSTANT  uint32 = 32
)

// D3DTEXTUREOP
const (
	D3DTOP_DISABLE     uint32 = 1
	D3DTOP_SELECTARG1  uint32 = 2
	D3DTOP_SELECTARG2  uint32 = 3
	D3DTOP_MODULATE    uint32 = 4
	D3DTOP_MODULATE2X  uint32 = 5
	D3DTOP_MODULATE4X  uint32 = 6
	D3DTOP_ADD         uint32 = 7
	D3DTOP_ADDSIGNED   uint32 = 8
	D3DTOP_ADDSIGNED2X uint32 = 9
	D3DTOP_SUBTRACT    uint32 = 10
	D3DTOP_DOTPRODUCT3 uint32 = 24
)

// D3DTA texture arguments
const (
	D3DTA_SELECTMASK     uint32 = 0x0000000f
	D3DTA_DIFFUSE        uint32 = 0x00000000
	D3DTA_CURRENT        uint32 = 0x00000001
	D3DTA_TEXTURE        uint32 = 0x00000002
	D3DTA_TFACTOR        uint32 = 0x00000003
	D3DTA_SPECULAR       uint32 = 0x00000004
	D3DTA_TEMP           uint32 = 0x00000005
	D3DTA_CONSTANT       uint32 = 0x00000006
	D3DTA_COMPLEMENT     uint32 = 0x00000010
	D3DTA_ALPHAREPLICATE uint32 = 0x00000020
)

// D3DTEXTUREOPCAPS / D3DPMISCCAPS bits used by the capability table
const (
	D3DTEXOPCAPS_DOTPRODUCT3      uint32 = 0x00800000
	D3DPMISCCAPS_PERSTAGECONSTANT uint32 = 0x00008000
)

// D3DTRANSFORMSTATETYPE
const (
	D3DTS_VIEW       uint32 = 2
	D3DTS_PROJECTION uint32 = 3
	D3DTS_WORLD      uint32 = 256
)

// D3DPRIMITIVETYPE, the last two only exist on Xenon.
const (
	D3DPT_POINTLIST     uint32 = 1
	D3DPT_LINELIST      uint32 = 2
	D3DPT_LINESTRIP     uint32 = 3
	D3DPT_TRIANGLELIST  uint32 = 4
	D3DPT_TRIANGLESTRIP uint32 = 5
	D3DPT_TRIANGLEFAN   uint32 = 6
	D3DPT_RECTLIST      uint32 = 8
	D3DPT_QUADLIST      uint32 = 13
)

// D3DDECLTYPE
const (
	D3DDECLTYPE_FLOAT1   uint32 = 0
	D3DDECLTYPE_FLOAT2   uint32 = 1
	D3DDECLTYPE_FLOAT3   uint32 = 2
	D3DDECLTYPE_FLOAT4   uint32 = 3
	D3DDECLTYPE_D3DCOLOR uint32 = 4
	D3DDECLTYPE_UBYTE4   uint32 = 5
	D3DDECLTYPE_SHORT2   uint32 = 6
	D3DDECLTYPE_SHORT4   uint32 = 7
	D3DDECLTYPE_UBYTE4N  uint32 = 8
)

// D3DDECLUSAGE
const (
	D3DDECLUSAGE_POSITION     uint32 = 0
	D3DDECLUSAGE_BLENDWEIGHT  uint32 = 1
	D3DDECLUSAGE_BLENDINDICES uint32 = 2
	D3DDECLUSAGE_NORMAL       uint32 = 3
	D3DDECLUSAGE_PSIZE        uint32 = 4
	D3DDECLUSAGE_TEXCOORD     uint32 = 5
	D3DDECLUSAGE_TANGENT      uint32 = 6
	D3DDECLUSAGE_BINORMAL     uint32 = 7
	D3DDECLUSAGE_COLOR        uint32 = 10
	D3DDECLUSAGE_FOG          uint32 = 11
)

// D3DLIGHTTYPE
const (
	D3DLIGHT_POINT       uint32 = 1
	D3DLIGHT_DIRECTIONAL uint32 = 3
)

// D3DCLEAR flags
const (
	D3DCLEAR_TARGET  uint32 = 0x00000001
	D3DCLEAR_ZBUFFER uint32 = 0x00000002
	D3DCLEAR_STENCIL uint32 = 0x00000004
)

// NONE marks a table cell for an enum value the native API cannot express.
const NONE uint32 = 0xFFFFFFFF
