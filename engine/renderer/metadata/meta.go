package metadata

import (
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

// Every engine enum below is described by exactly one row per value in a
// canonical table. The enum constants, the String/Parse helpers and the
// backend translation lookups all read from these tables.

func tagOf[E ~int32, R any](rows []R, tag func(*R) string, v E, bad string) string {
	if v < 0 || int(v) >= len(rows) {
		return bad
	}
	return tag(&rows[v])
}

func parseTag[E ~int32, R any](rows []R, tag func(*R) string, s string, invalid E) E {
	for i := range rows {
		if tag(&rows[i]) == s {
			return E(i)
		}
	}
	return invalid
}

// lookup validates v before indexing rows. An out of range value is a
// programmer error, it is logged and ok is false so the caller can skip the
// native call.
func lookup[E ~int32, R any](rows []R, v E, what string) (*R, bool) {
	if v < 0 || int(v) >= len(rows) {
		core.LogError("%s value %d out of range [0, %d)", what, v, len(rows))
		return nil, false
	}
	return &rows[v], true
}

// ---------------------------------------------------------------------------
// RenderState

type RenderState int32

const (
	RS_ALPHA_TEST RenderState = iota
	RS_ALPHA_FUNC
	RS_ALPHA_REF
	RS_BLENDING
	RS_BLEND_SRC
	RS_BLEND_DST
	RS_COLOR0_WRITE
	RS_CULL_MODE
	RS_DEPTH_TEST
	RS_DEPTH_FUNC
	RS_DEPTH_WRITE
	RS_FILL_MODE
	RS_FOG
	RS_LIGHTING
	NUM_RENDER_STATES
	RS_INVALID RenderState = -1
)

/** @brief Group of RenderStateValues accepted by a render state. */
type RenderStateValueGroup uint8

const (
	// The state takes a plain integer in [Min, Max] instead of a RenderStateValue.
	RSVG_INT RenderStateValueGroup = iota
	RSVG_BOOL
	RSVG_FILL
	RSVG_CULL
	RSVG_CMP
	RSVG_BLEND
)

type RenderStateMeta struct {
	Tag     string
	Group   RenderStateValueGroup
	Default int32
	// Min and Max bound RSVG_INT states.
	Min, Max int32
	// D3DRS_* state.
	D3D uint32
	// glEnable/glDisable capability for boolean states, tokens.NONE otherwise.
	GLCap uint32
}

var RenderStateMetas = [NUM_RENDER_STATES]RenderStateMeta{
	RS_ALPHA_TEST:   {"ALPHA_TEST", RSVG_BOOL, int32(RSV_FALSE), 0, 0, tokens.D3DRS_ALPHATESTENABLE, tokens.GL_ALPHA_TEST},
	RS_ALPHA_FUNC:   {"ALPHA_FUNC", RSVG_CMP, int32(RSV_CMP_ALWAYS), 0, 0, tokens.D3DRS_ALPHAFUNC, tokens.NONE},
	RS_ALPHA_REF:    {"ALPHA_REF", RSVG_INT, 0, 0, 255, tokens.D3DRS_ALPHAREF, tokens.NONE},
	RS_BLENDING:     {"BLENDING", RSVG_BOOL, int32(RSV_FALSE), 0, 0, tokens.D3DRS_ALPHABLENDENABLE, tokens.GL_BLEND},
	RS_BLEND_SRC:    {"BLEND_SRC", RSVG_BLEND, int32(RSV_BLEND_SRC_ALPHA), 0, 0, tokens.D3DRS_SRCBLEND, tokens.NONE},
	RS_BLEND_DST:    {"BLEND_DST", RSVG_BLEND, int32(RSV_BLEND_INV_SRC_ALPHA), 0, 0, tokens.D3DRS_DESTBLEND, tokens.NONE},
	RS_COLOR0_WRITE: {"COLOR0_WRITE", RSVG_INT, 0xF, 0, 0xF, tokens.D3DRS_COLORWRITEENABLE, tokens.NONE},
	RS_CULL_MODE:    {"CULL_MODE", RSVG_CULL, int32(RSV_CULL_CCW), 0, 0, tokens.D3DRS_CULLMODE, tokens.GL_CULL_FACE},
	RS_DEPTH_TEST:   {"DEPTH_TEST", RSVG_BOOL, int32(RSV_TRUE), 0, 0, tokens.D3DRS_ZENABLE, tokens.GL_DEPTH_TEST},
	RS_DEPTH_FUNC:   {"DEPTH_FUNC", RSVG_CMP, int32(RSV_CMP_LESS_EQUAL), 0, 0, tokens.D3DRS_ZFUNC, tokens.NONE},
	RS_DEPTH_WRITE:  {"DEPTH_WRITE", RSVG_BOOL, int32(RSV_TRUE), 0, 0, tokens.D3DRS_ZWRITEENABLE, tokens.NONE},
	RS_FILL_MODE:    {"FILL_MODE", RSVG_FILL, int32(RSV_FILL_SOLID), 0, 0, tokens.D3DRS_FILLMODE, tokens.NONE},
	RS_FOG:          {"FOG", RSVG_BOOL, int32(RSV_FALSE), 0, 0, tokens.D3DRS_FOGENABLE, tokens.GL_FOG},
	RS_LIGHTING:     {"LIGHTING", RSVG_BOOL, int32(RSV_FALSE), 0, 0, tokens.D3DRS_LIGHTING, tokens.GL_LIGHTING},
}

func renderStateTag(r *RenderStateMeta) string { return r.Tag }

func (s RenderState) String() string {
	return tagOf(RenderStateMetas[:], renderStateTag, s, "BAD_RS")
}

func (s RenderState) Valid() bool {
	return s >= 0 && s < NUM_RENDER_STATES
}

// Meta returns the table row of s, logging and failing on bad values.
func (s RenderState) Meta() (*RenderStateMeta, bool) {
	return lookup(RenderStateMetas[:], s, "RenderState")
}

func ParseRenderState(s string) RenderState {
	return parseTag(RenderStateMetas[:], renderStateTag, s, RS_INVALID)
}

// ---------------------------------------------------------------------------
// RenderStateValue

type RenderStateValue int32

const (
	RSV_FALSE RenderStateValue = iota
	RSV_TRUE

	RSV_FILL_POINT
	RSV_FILL_LINE
	RSV_FILL_SOLID

	RSV_CULL_NONE
	RSV_CULL_CW
	RSV_CULL_CCW

	RSV_CMP_NEVER
	RSV_CMP_LESS
	RSV_CMP_EQUAL
	RSV_CMP_LESS_EQUAL
	RSV_CMP_GREATER
	RSV_CMP_NOT_EQUAL
	RSV_CMP_GREATER_EQUAL
	RSV_CMP_ALWAYS

	RSV_BLEND_ZERO
	RSV_BLEND_ONE
	RSV_BLEND_SRC_COLOR
	RSV_BLEND_INV_SRC_COLOR
	RSV_BLEND_SRC_ALPHA
	RSV_BLEND_INV_SRC_ALPHA
	RSV_BLEND_DEST_ALPHA
	RSV_BLEND_INV_DEST_ALPHA
	RSV_BLEND_DEST_COLOR
	RSV_BLEND_INV_DEST_COLOR

	NUM_RENDER_STATE_VALUES
	RSV_INVALID RenderStateValue = -1
)

type RenderStateValueMeta struct {
	Tag   string
	Group RenderStateValueGroup
	D3D   uint32
	GL    uint32
}

var RenderStateValueMetas = [NUM_RENDER_STATE_VALUES]RenderStateValueMeta{
	RSV_FALSE: {"FALSE", RSVG_BOOL, 0, tokens.GL_FALSE},
	RSV_TRUE:  {"TRUE", RSVG_BOOL, 1, tokens.GL_TRUE},

	RSV_FILL_POINT: {"FILL_POINT", RSVG_FILL, tokens.D3DFILL_POINT, tokens.GL_POINT},
	RSV_FILL_LINE:  {"FILL_LINE", RSVG_FILL, tokens.D3DFILL_WIREFRAME, tokens.GL_LINE},
	RSV_FILL_SOLID: {"FILL_SOLID", RSVG_FILL, tokens.D3DFILL_SOLID, tokens.GL_FILL},

	RSV_CULL_NONE: {"CULL_NONE", RSVG_CULL, tokens.D3DCULL_NONE, tokens.GL_NONE},
	RSV_CULL_CW:   {"CULL_CW", RSVG_CULL, tokens.D3DCULL_CW, tokens.GL_FRONT},
	RSV_CULL_CCW:  {"CULL_CCW", RSVG_CULL, tokens.D3DCULL_CCW, tokens.GL_BACK},

	RSV_CMP_NEVER:         {"CMP_NEVER", RSVG_CMP, tokens.D3DCMP_NEVER, tokens.GL_NEVER},
	RSV_CMP_LESS:          {"CMP_LESS", RSVG_CMP, tokens.D3DCMP_LESS, tokens.GL_LESS},
	RSV_CMP_EQUAL:         {"CMP_EQUAL", RSVG_CMP, tokens.D3DCMP_EQUAL, tokens.GL_EQUAL},
	RSV_CMP_LESS_EQUAL:    {"CMP_LESS_EQUAL", RSVG_CMP, tokens.D3DCMP_LESSEQUAL, tokens.GL_LEQUAL},
	RSV_CMP_GREATER:       {"CMP_GREATER", RSVG_CMP, tokens.D3DCMP_GREATER, tokens.GL_GREATER},
	RSV_CMP_NOT_EQUAL:     {"CMP_NOT_EQUAL", RSVG_CMP, tokens.D3DCMP_NOTEQUAL, tokens.GL_NOTEQUAL},
	RSV_CMP_GREATER_EQUAL: {"CMP_GREATER_EQUAL", RSVG_CMP, tokens.D3DCMP_GREATEREQUAL, tokens.GL_GEQUAL},
	RSV_CMP_ALWAYS:        {"CMP_ALWAYS", RSVG_CMP, tokens.D3DCMP_ALWAYS, tokens.GL_ALWAYS},

	RSV_BLEND_ZERO:           {"BLEND_ZERO", RSVG_BLEND, tokens.D3DBLEND_ZERO, tokens.GL_ZERO},
	RSV_BLEND_ONE:            {"BLEND_ONE", RSVG_BLEND, tokens.D3DBLEND_ONE, tokens.GL_ONE},
	RSV_BLEND_SRC_COLOR:      {"BLEND_SRC_COLOR", RSVG_BLEND, tokens.D3DBLEND_SRCCOLOR, tokens.GL_SRC_COLOR},
	RSV_BLEND_INV_SRC_COLOR:  {"BLEND_INV_SRC_COLOR", RSVG_BLEND, tokens.D3DBLEND_INVSRCCOLOR, tokens.GL_ONE_MINUS_SRC_COLOR},
	RSV_BLEND_SRC_ALPHA:      {"BLEND_SRC_ALPHA", RSVG_BLEND, tokens.D3DBLEND_SRCALPHA, tokens.GL_SRC_ALPHA},
	RSV_BLEND_INV_SRC_ALPHA:  {"BLEND_INV_SRC_ALPHA", RSVG_BLEND, tokens.D3DBLEND_INVSRCALPHA, tokens.GL_ONE_MINUS_SRC_ALPHA},
	RSV_BLEND_DEST_ALPHA:     {"BLEND_DEST_ALPHA", RSVG_BLEND, tokens.D3DBLEND_DESTALPHA, tokens.GL_DST_ALPHA},
	RSV_BLEND_INV_DEST_ALPHA: {"BLEND_INV_DEST_ALPHA", RSVG_BLEND, tokens.D3DBLEND_INVDESTALPHA, tokens.GL_ONE_MINUS_DST_ALPHA},
	RSV_BLEND_DEST_COLOR:     {"BLEND_DEST_COLOR", RSVG_BLEND, tokens.D3DBLEND_DESTCOLOR, tokens.GL_DST_COLOR},
	RSV_BLEND_INV_DEST_COLOR: {"BLEND_INV_DEST_COLOR", RSVG_BLEND, tokens.D3DBLEND_INVDESTCOLOR, tokens.GL_ONE_MINUS_DST_COLOR},
}

func renderStateValueTag(r *RenderStateValueMeta) string { return r.Tag }

func (v RenderStateValue) String() string {
	return tagOf(RenderStateValueMetas[:], renderStateValueTag, v, "BAD_RSV")
}

func (v RenderStateValue) Valid() bool {
	return v >= 0 && v < NUM_RENDER_STATE_VALUES
}

func (v RenderStateValue) Meta() (*RenderStateValueMeta, bool) {
	return lookup(RenderStateValueMetas[:], v, "RenderStateValue")
}

func ParseRenderStateValue(s string) RenderStateValue {
	return parseTag(RenderStateValueMetas[:], renderStateValueTag, s, RSV_INVALID)
}

// ---------------------------------------------------------------------------
// TextureState

type TextureState int32

const (
	TS_COLOROP TextureState = iota
	TS_COLORARG0
	TS_COLORARG1
	TS_ALPHAOP
	TS_ALPHAARG0
	TS_ALPHAARG1
	NUM_TEXTURE_STATES
	TS_INVALID TextureState = -1
)

type TextureStateMeta struct {
	Tag string
	// IsArg is true for argument states, false for operation states.
	IsArg bool
	// Default value on stage 0 and on every later stage.
	Default0, DefaultN TextureStateValue
	// D3DTSS_* state.
	D3D uint32
	// GL_TEXTURE_ENV parameters for the combiner value and its scale/operand.
	GLOp1, GLOp2 uint32
}

var TextureStateMetas = [NUM_TEXTURE_STATES]TextureStateMeta{
	TS_COLOROP:   {"COLOROP", false, TSV_MODULATE, TSV_MODULATE, tokens.D3DTSS_COLOROP, tokens.GL_COMBINE_RGB, tokens.GL_RGB_SCALE},
	TS_COLORARG0: {"COLORARG0", true, TSV_TEXTURE_COLOR, TSV_TEXTURE_COLOR, tokens.D3DTSS_COLORARG1, tokens.GL_SOURCE0_RGB, tokens.GL_OPERAND0_RGB},
	TS_COLORARG1: {"COLORARG1", true, TSV_PRIMARY_COLOR, TSV_CURRENT_COLOR, tokens.D3DTSS_COLORARG2, tokens.GL_SOURCE1_RGB, tokens.GL_OPERAND1_RGB},
	TS_ALPHAOP:   {"ALPHAOP", false, TSV_MODULATE, TSV_MODULATE, tokens.D3DTSS_ALPHAOP, tokens.GL_COMBINE_ALPHA, tokens.GL_ALPHA_SCALE},
	TS_ALPHAARG0: {"ALPHAARG0", true, TSV_TEXTURE_ALPHA, TSV_TEXTURE_ALPHA, tokens.D3DTSS_ALPHAARG1, tokens.GL_SOURCE0_ALPHA, tokens.GL_OPERAND0_ALPHA},
	TS_ALPHAARG1: {"ALPHAARG1", true, TSV_PRIMARY_ALPHA, TSV_CURRENT_ALPHA, tokens.D3DTSS_ALPHAARG2, tokens.GL_SOURCE1_ALPHA, tokens.GL_OPERAND1_ALPHA},
}

func textureStateTag(r *TextureStateMeta) string { return r.Tag }

func (s TextureState) String() string {
	return tagOf(TextureStateMetas[:], textureStateTag, s, "BAD_TS")
}

func (s TextureState) Valid() bool {
	return s >= 0 && s < NUM_TEXTURE_STATES
}

func (s TextureState) Meta() (*TextureStateMeta, bool) {
	return lookup(TextureStateMetas[:], s, "TextureState")
}

// Default returns the value a stage holds when s was never set on it.
func (s TextureState) Default(stage uint32) TextureStateValue {
	if !s.Valid() {
		return TSV_INVALID
	}
	if stage == 0 {
		return TextureStateMetas[s].Default0
	}
	return TextureStateMetas[s].DefaultN
}

func ParseTextureState(s string) TextureState {
	return parseTag(TextureStateMetas[:], textureStateTag, s, TS_INVALID)
}

// ---------------------------------------------------------------------------
// TextureStateValue

type TextureStateValue int32

const (
	// operations
	TSV_ARG0 TextureStateValue = iota
	TSV_MODULATE
	TSV_MODULATE2
	TSV_MODULATE4
	TSV_ADD
	TSV_ADD_SIGNED
	TSV_ADD_SIGNED2
	TSV_SUBTRACT
	TSV_DOT3

	// arguments
	TSV_TEXTURE_COLOR
	TSV_TEXTURE_ALPHA
	TSV_TEXTURE_INV_COLOR
	TSV_TEXTURE_INV_ALPHA
	TSV_CONSTANT_COLOR
	TSV_CONSTANT_ALPHA
	TSV_CURRENT_COLOR
	TSV_CURRENT_ALPHA
	TSV_CURRENT_INV_COLOR
	TSV_CURRENT_INV_ALPHA
	TSV_PRIMARY_COLOR
	TSV_PRIMARY_ALPHA
	TSV_PRIMARY_INV_COLOR
	TSV_PRIMARY_INV_ALPHA

	NUM_TEXTURE_STATE_VALUES
	TSV_INVALID TextureStateValue = -1
)

type TextureStateValueMeta struct {
	Tag   string
	IsArg bool
	// D3DTOP_* for operations, D3DTA_* for arguments.
	D3D uint32
	// Operations: combine mode and scale. Arguments: source and operand.
	GLVal1, GLVal2 uint32
}

const (
	d3dtaAlpha    = tokens.D3DTA_ALPHAREPLICATE
	d3dtaInvColor = tokens.D3DTA_COMPLEMENT
	d3dtaInvAlpha = tokens.D3DTA_COMPLEMENT | tokens.D3DTA_ALPHAREPLICATE
)

var TextureStateValueMetas = [NUM_TEXTURE_STATE_VALUES]TextureStateValueMeta{
	TSV_ARG0:        {"ARG0", false, tokens.D3DTOP_SELECTARG1, tokens.GL_REPLACE, 1},
	TSV_MODULATE:    {"MODULATE", false, tokens.D3DTOP_MODULATE, tokens.GL_MODULATE, 1},
	TSV_MODULATE2:   {"MODULATE2", false, tokens.D3DTOP_MODULATE2X, tokens.GL_MODULATE, 2},
	TSV_MODULATE4:   {"MODULATE4", false, tokens.D3DTOP_MODULATE4X, tokens.GL_MODULATE, 4},
	TSV_ADD:         {"ADD", false, tokens.D3DTOP_ADD, tokens.GL_ADD, 1},
	TSV_ADD_SIGNED:  {"ADD_SIGNED", false, tokens.D3DTOP_ADDSIGNED, tokens.GL_ADD_SIGNED, 1},
	TSV_ADD_SIGNED2: {"ADD_SIGNED2", false, tokens.D3DTOP_ADDSIGNED2X, tokens.GL_ADD_SIGNED, 2},
	TSV_SUBTRACT:    {"SUBTRACT", false, tokens.D3DTOP_SUBTRACT, tokens.GL_SUBTRACT, 1},
	TSV_DOT3:        {"DOT3", false, tokens.D3DTOP_DOTPRODUCT3, tokens.GL_DOT3_RGBA, 1},

	TSV_TEXTURE_COLOR:     {"TEXTURE_COLOR", true, tokens.D3DTA_TEXTURE, tokens.GL_TEXTURE, tokens.GL_SRC_COLOR},
	TSV_TEXTURE_ALPHA:     {"TEXTURE_ALPHA", true, tokens.D3DTA_TEXTURE | d3dtaAlpha, tokens.GL_TEXTURE, tokens.GL_SRC_ALPHA},
	TSV_TEXTURE_INV_COLOR: {"TEXTURE_INV_COLOR", true, tokens.D3DTA_TEXTURE | d3dtaInvColor, tokens.GL_TEXTURE, tokens.GL_ONE_MINUS_SRC_COLOR},
	TSV_TEXTURE_INV_ALPHA: {"TEXTURE_INV_ALPHA", true, tokens.D3DTA_TEXTURE | d3dtaInvAlpha, tokens.GL_TEXTURE, tokens.GL_ONE_MINUS_SRC_ALPHA},
	TSV_CONSTANT_COLOR:    {"CONSTANT_COLOR", true, tokens.D3DTA_CONSTANT, tokens.GL_CONSTANT, tokens.GL_SRC_COLOR},
	TSV_CONSTANT_ALPHA:    {"CONSTANT_ALPHA", true, tokens.D3DTA_CONSTANT | d3dtaAlpha, tokens.GL_CONSTANT, tokens.GL_SRC_ALPHA},
	TSV_CURRENT_COLOR:     {"CURRENT_COLOR", true, tokens.D3DTA_CURRENT, tokens.GL_PREVIOUS, tokens.GL_SRC_COLOR},
	TSV_CURRENT_ALPHA:     {"CURRENT_ALPHA", true, tokens.D3DTA_CURRENT | d3dtaAlpha, tokens.GL_PREVIOUS, tokens.GL_SRC_ALPHA},
	TSV_CURRENT_INV_COLOR: {"CURRENT_INV_COLOR", true, tokens.D3DTA_CURRENT | d3dtaInvColor, tokens.GL_PREVIOUS, tokens.GL_ONE_MINUS_SRC_COLOR},
	TSV_CURRENT_INV_ALPHA: {"CURRENT_INV_ALPHA", true, tokens.D3DTA_CURRENT | d3dtaInvAlpha, tokens.GL_PREVIOUS, tokens.GL_ONE_MINUS_SRC_ALPHA},
	TSV_PRIMARY_COLOR:     {"PRIMARY_COLOR", true, tokens.D3DTA_DIFFUSE, tokens.GL_PRIMARY_COLOR, tokens.GL_SRC_COLOR},
	TSV_PRIMARY_ALPHA:     {"PRIMARY_ALPHA", true, tokens.D3DTA_DIFFUSE | d3dtaAlpha, tokens.GL_PRIMARY_COLOR, tokens.GL_SRC_ALPHA},
	TSV_PRIMARY_INV_COLOR: {"PRIMARY_INV_COLOR", true, tokens.D3DTA_DIFFUSE | d3dtaInvColor, tokens.GL_PRIMARY_COLOR, tokens.GL_ONE_MINUS_SRC_COLOR},
	TSV_PRIMARY_INV_ALPHA: {"PRIMARY_INV_ALPHA", true, tokens.D3DTA_DIFFUSE | d3dtaInvAlpha, tokens.GL_PRIMARY_COLOR, tokens.GL_ONE_MINUS_SRC_ALPHA},
}

func textureStateValueTag(r *TextureStateValueMeta) string { return r.Tag }

func (v TextureStateValue) String() string {
	return tagOf(TextureStateValueMetas[:], textureStateValueTag, v, "BAD_TSV")
}

func (v TextureStateValue) Valid() bool {
	return v >= 0 && v < NUM_TEXTURE_STATE_VALUES
}

func (v TextureStateValue) Meta() (*TextureStateValueMeta, bool) {
	return lookup(TextureStateValueMetas[:], v, "TextureStateValue")
}

func ParseTextureStateValue(s string) TextureStateValue {
	return parseTag(TextureStateValueMetas[:], textureStateValueTag, s, TSV_INVALID)
}

// ---------------------------------------------------------------------------
// VtxSem

type VtxSem int32

const (
	VTXSEM_COORD VtxSem = iota
	VTXSEM_WEIGHT
	VTXSEM_NORMAL
	VTXSEM_COLOR0
	VTXSEM_COLOR1
	VTXSEM_FOGCOORD
	VTXSEM_TANGENT
	VTXSEM_BINORMAL
	VTXSEM_TEX0
	VTXSEM_TEX1
	VTXSEM_TEX2
	VTXSEM_TEX3
	VTXSEM_TEX4
	VTXSEM_TEX5
	VTXSEM_TEX6
	VTXSEM_TEX7
	NUM_VTXSEMS
	VTXSEM_INVALID VtxSem = -1
)

type VtxSemMeta struct {
	Tag string
	// D3DDECLUSAGE_* and usage index.
	D3DUsage      uint32
	D3DUsageIndex uint32
	// Fixed function client array, tokens.NONE when the semantic has none.
	GLArray uint32
	// Generic attribute slot used when the semantic has no client array or
	// a GLSL program is active.
	GLAttrib uint32
}

var VtxSemMetas = [NUM_VTXSEMS]VtxSemMeta{
	VTXSEM_COORD:    {"COORD", tokens.D3DDECLUSAGE_POSITION, 0, tokens.GL_VERTEX_ARRAY, 0},
	VTXSEM_WEIGHT:   {"WEIGHT", tokens.D3DDECLUSAGE_BLENDWEIGHT, 0, tokens.NONE, 1},
	VTXSEM_NORMAL:   {"NORMAL", tokens.D3DDECLUSAGE_NORMAL, 0, tokens.GL_NORMAL_ARRAY, 2},
	VTXSEM_COLOR0:   {"COLOR0", tokens.D3DDECLUSAGE_COLOR, 0, tokens.GL_COLOR_ARRAY, 3},
	VTXSEM_COLOR1:   {"COLOR1", tokens.D3DDECLUSAGE_COLOR, 1, tokens.GL_SECONDARY_COLOR_ARRAY, 4},
	VTXSEM_FOGCOORD: {"FOGCOORD", tokens.D3DDECLUSAGE_FOG, 0, tokens.GL_FOG_COORD_ARRAY, 5},
	VTXSEM_TANGENT:  {"TANGENT", tokens.D3DDECLUSAGE_TANGENT, 0, tokens.NONE, 6},
	VTXSEM_BINORMAL: {"BINORMAL", tokens.D3DDECLUSAGE_BINORMAL, 0, tokens.NONE, 7},
	VTXSEM_TEX0:     {"TEX0", tokens.D3DDECLUSAGE_TEXCOORD, 0, tokens.GL_TEXTURE_COORD_ARRAY, 8},
	VTXSEM_TEX1:     {"TEX1", tokens.D3DDECLUSAGE_TEXCOORD, 1, tokens.GL_TEXTURE_COORD_ARRAY, 9},
	VTXSEM_TEX2:     {"TEX2", tokens.D3DDECLUSAGE_TEXCOORD, 2, tokens.GL_TEXTURE_COORD_ARRAY, 10},
	VTXSEM_TEX3:     {"TEX3", tokens.D3DDECLUSAGE_TEXCOORD, 3, tokens.GL_TEXTURE_COORD_ARRAY, 11},
	VTXSEM_TEX4:     {"TEX4", tokens.D3DDECLUSAGE_TEXCOORD, 4, tokens.GL_TEXTURE_COORD_ARRAY, 12},
	VTXSEM_TEX5:     {"TEX5", tokens.D3DDECLUSAGE_TEXCOORD, 5, tokens.GL_TEXTURE_COORD_ARRAY, 13},
	VTXSEM_TEX6:     {"TEX6", tokens.D3DDECLUSAGE_TEXCOORD, 6, tokens.GL_TEXTURE_COORD_ARRAY, 14},
	VTXSEM_TEX7:     {"TEX7", tokens.D3DDECLUSAGE_TEXCOORD, 7, tokens.GL_TEXTURE_COORD_ARRAY, 15},
}

func vtxSemTag(r *VtxSemMeta) string { return r.Tag }

func (s VtxSem) String() string {
	return tagOf(VtxSemMetas[:], vtxSemTag, s, "BAD_VTXSEM")
}

func (s VtxSem) Valid() bool {
	return s >= 0 && s < NUM_VTXSEMS
}

func (s VtxSem) Meta() (*VtxSemMeta, bool) {
	return lookup(VtxSemMetas[:], s, "VtxSem")
}

// TexUnit returns the texture coordinate set of a TEXn semantic.
func (s VtxSem) TexUnit() (uint32, bool) {
	if s < VTXSEM_TEX0 || s > VTXSEM_TEX7 {
		return 0, false
	}
	return uint32(s - VTXSEM_TEX0), true
}

func ParseVtxSem(s string) VtxSem {
	return parseTag(VtxSemMetas[:], vtxSemTag, s, VTXSEM_INVALID)
}

// ---------------------------------------------------------------------------
// ClrFmt (vertex element formats)

type ClrFmt int32

const (
	CLRFMT_FLOAT1 ClrFmt = iota
	CLRFMT_FLOAT2
	CLRFMT_FLOAT3
	CLRFMT_FLOAT4
	CLRFMT_UBYTE4N
	CLRFMT_D3DCOLOR
	CLRFMT_SHORT2
	CLRFMT_SHORT4
	NUM_CLRFMTS
	CLRFMT_INVALID ClrFmt = -1
)

type ClrFmtMeta struct {
	Tag  string
	Size uint32
	// D3DDECLTYPE_*.
	D3D uint32
	// Component type, component count (GL_BGRA for swizzled colors) and
	// whether integer components are normalized.
	GLType       uint32
	GLComponents int32
	GLNormalized bool
}

var ClrFmtMetas = [NUM_CLRFMTS]ClrFmtMeta{
	CLRFMT_FLOAT1:   {"FLOAT1", 4, tokens.D3DDECLTYPE_FLOAT1, tokens.GL_FLOAT, 1, false},
	CLRFMT_FLOAT2:   {"FLOAT2", 8, tokens.D3DDECLTYPE_FLOAT2, tokens.GL_FLOAT, 2, false},
	CLRFMT_FLOAT3:   {"FLOAT3", 12, tokens.D3DDECLTYPE_FLOAT3, tokens.GL_FLOAT, 3, false},
	CLRFMT_FLOAT4:   {"FLOAT4", 16, tokens.D3DDECLTYPE_FLOAT4, tokens.GL_FLOAT, 4, false},
	CLRFMT_UBYTE4N:  {"UBYTE4N", 4, tokens.D3DDECLTYPE_UBYTE4N, tokens.GL_UNSIGNED_BYTE, 4, true},
	CLRFMT_D3DCOLOR: {"D3DCOLOR", 4, tokens.D3DDECLTYPE_D3DCOLOR, tokens.GL_UNSIGNED_BYTE, int32(tokens.GL_BGRA), true},
	CLRFMT_SHORT2:   {"SHORT2", 4, tokens.D3DDECLTYPE_SHORT2, tokens.GL_SHORT, 2, false},
	CLRFMT_SHORT4:   {"SHORT4", 8, tokens.D3DDECLTYPE_SHORT4, tokens.GL_SHORT, 4, false},
}

func clrFmtTag(r *ClrFmtMeta) string { return r.Tag }

func (f ClrFmt) String() string {
	return tagOf(ClrFmtMetas[:], clrFmtTag, f, "BAD_CLRFMT")
}

func (f ClrFmt) Valid() bool {
	return f >= 0 && f < NUM_CLRFMTS
}

func (f ClrFmt) Meta() (*ClrFmtMeta, bool) {
	return lookup(ClrFmtMetas[:], f, "ClrFmt")
}

func ParseClrFmt(s string) ClrFmt {
	return parseTag(ClrFmtMetas[:], clrFmtTag, s, CLRFMT_INVALID)
}

// ---------------------------------------------------------------------------
// PrimitiveType

type PrimitiveType int32

const (
	PRIM_POINT_LIST PrimitiveType = iota
	PRIM_LINE_LIST
	PRIM_LINE_STRIP
	PRIM_TRIANGLE_LIST
	PRIM_TRIANGLE_STRIP
	PRIM_QUAD_LIST
	PRIM_RECT_LIST
	NUM_PRIMITIVES
	PRIM_INVALID PrimitiveType = -1
)

type PrimitiveTypeMeta struct {
	Tag string
	// Vertices per primitive for lists, extra vertices for strips.
	PerPrim, Extra uint32
	// Native primitive per backend, tokens.NONE when unsupported.
	D3D, Xenon, GL uint32
}

var PrimitiveTypeMetas = [NUM_PRIMITIVES]PrimitiveTypeMeta{
	PRIM_POINT_LIST:     {"POINT_LIST", 1, 0, tokens.D3DPT_POINTLIST, tokens.D3DPT_POINTLIST, tokens.GL_POINTS},
	PRIM_LINE_LIST:      {"LINE_LIST", 2, 0, tokens.D3DPT_LINELIST, tokens.D3DPT_LINELIST, tokens.GL_LINES},
	PRIM_LINE_STRIP:     {"LINE_STRIP", 1, 1, tokens.D3DPT_LINESTRIP, tokens.D3DPT_LINESTRIP, tokens.GL_LINE_STRIP},
	PRIM_TRIANGLE_LIST:  {"TRIANGLE_LIST", 3, 0, tokens.D3DPT_TRIANGLELIST, tokens.D3DPT_TRIANGLELIST, tokens.GL_TRIANGLES},
	PRIM_TRIANGLE_STRIP: {"TRIANGLE_STRIP", 1, 2, tokens.D3DPT_TRIANGLESTRIP, tokens.D3DPT_TRIANGLESTRIP, tokens.GL_TRIANGLE_STRIP},
	PRIM_QUAD_LIST:      {"QUAD_LIST", 4, 0, tokens.NONE, tokens.D3DPT_QUADLIST, tokens.GL_QUADS},
	PRIM_RECT_LIST:      {"RECT_LIST", 3, 0, tokens.NONE, tokens.D3DPT_RECTLIST, tokens.NONE},
}

func primitiveTypeTag(r *PrimitiveTypeMeta) string { return r.Tag }

func (p PrimitiveType) String() string {
	return tagOf(PrimitiveTypeMetas[:], primitiveTypeTag, p, "BAD_PRIM")
}

func (p PrimitiveType) Valid() bool {
	return p >= 0 && p < NUM_PRIMITIVES
}

func (p PrimitiveType) Meta() (*PrimitiveTypeMeta, bool) {
	return lookup(PrimitiveTypeMetas[:], p, "PrimitiveType")
}

func ParsePrimitiveType(s string) PrimitiveType {
	return parseTag(PrimitiveTypeMetas[:], primitiveTypeTag, s, PRIM_INVALID)
}
