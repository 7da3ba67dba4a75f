package metadata

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
)

// FieldFlags marks the fields of a RendererContext that should be applied.
// The three FLAG_GROUP_* bits summarise the field bits of each bind pass.
type FieldFlags uint32

const (
	FLAG_VS FieldFlags = 1 << iota
	FLAG_PS
	FLAG_GS
	FLAG_RSB
	FLAG_RENDER_TARGETS
	FLAG_VIEWPORT

	FLAG_WORLD
	FLAG_VIEW
	FLAG_PROJ
	FLAG_LIGHT0_POS
	FLAG_LIGHT0_DIFFUSE
	FLAG_MATERIAL_DIFFUSE
	FLAG_MATERIAL_SPECULAR
	FLAG_TSB

	FLAG_VTXFMT
	FLAG_VTXBUFS
	FLAG_IDXBUF
	FLAG_TEXTURES
)

const (
	FLAG_GROUP_STATE FieldFlags = 1 << (29 + iota)
	FLAG_GROUP_FFP
	FLAG_GROUP_DATA
)

const (
	FLAG_SHADERS  = FLAG_VS | FLAG_PS | FLAG_GS
	FLAG_MATRICES = FLAG_WORLD | FLAG_VIEW | FLAG_PROJ

	FLAG_STATE_FIELDS = FLAG_SHADERS | FLAG_RSB | FLAG_RENDER_TARGETS | FLAG_VIEWPORT
	FLAG_FFP_FIELDS   = FLAG_MATRICES | FLAG_LIGHT0_POS | FLAG_LIGHT0_DIFFUSE |
		FLAG_MATERIAL_DIFFUSE | FLAG_MATERIAL_SPECULAR | FLAG_TSB
	FLAG_DATA_FIELDS = FLAG_VTXFMT | FLAG_VTXBUFS | FLAG_IDXBUF | FLAG_TEXTURES

	FLAG_GROUPS = FLAG_GROUP_STATE | FLAG_GROUP_FFP | FLAG_GROUP_DATA
	FLAG_ALL    = FLAG_STATE_FIELDS | FLAG_FFP_FIELDS | FLAG_DATA_FIELDS | FLAG_GROUPS
)

// ShaderFlag returns the field bit of a shader stage.
func ShaderFlag(t ShaderType) FieldFlags {
	return FLAG_VS << FieldFlags(t)
}

// Derive returns f with the group bits recomputed from the field bits.
func (f FieldFlags) Derive() FieldFlags {
	f &^= FLAG_GROUPS
	if f&FLAG_STATE_FIELDS != 0 {
		f |= FLAG_GROUP_STATE
	}
	if f&FLAG_FFP_FIELDS != 0 {
		f |= FLAG_GROUP_FFP
	}
	if f&FLAG_DATA_FIELDS != 0 {
		f |= FLAG_GROUP_DATA
	}
	return f
}

func (f FieldFlags) Has(bits FieldFlags) bool {
	return f&bits != 0
}

func groupOf(bit FieldFlags) FieldFlags {
	switch {
	case bit&FLAG_STATE_FIELDS != 0:
		return FLAG_GROUP_STATE
	case bit&FLAG_FFP_FIELDS != 0:
		return FLAG_GROUP_FFP
	case bit&FLAG_DATA_FIELDS != 0:
		return FLAG_GROUP_DATA
	}
	return 0
}

/** @brief A color or depth surface, a null texture selects the default surface. */
type SurfaceDesc struct {
	Texture core.Handle
	Face    uint32
	Level   uint32
}

func (s SurfaceDesc) IsDefault() bool {
	return s.Texture.IsNull()
}

type RenderTargetDesc struct {
	NumColorBuffers uint32
	ColorBuffers    [MAX_COLOR_BUFFERS]SurfaceDesc
	DepthBuffer     SurfaceDesc
}

/** @brief Normalized rectangle relative to the bound render target. */
type Viewport struct {
	X, Y, W, H float32
}

var FullViewport = Viewport{0, 0, 1, 1}

// Clamped limits every edge to [0, 1].
func (v Viewport) Clamped() Viewport {
	x0 := core.Clamp(v.X, 0, 1)
	y0 := core.Clamp(v.Y, 0, 1)
	x1 := core.Clamp(v.X+v.W, 0, 1)
	y1 := core.Clamp(v.Y+v.H, 0, 1)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Viewport{x0, y0, x1 - x0, y1 - y0}
}

// Pixels converts the clamped viewport to a pixel rectangle of a target of
// the given size, origin in the top left corner.
func (v Viewport) Pixels(width, height uint32) (x, y, w, h uint32) {
	c := v.Clamped()
	fw, fh := float32(width), float32(height)
	x = uint32(c.X*fw + 0.5)
	y = uint32(c.Y*fh + 0.5)
	x1 := uint32((c.X+c.W)*fw + 0.5)
	y1 := uint32((c.Y+c.H)*fh + 0.5)
	return x, y, x1 - x, y1 - y
}

type VtxBufDesc struct {
	Buffer core.Handle
	Offset uint32
	// 0 uses the stride of the vertex format for this stream.
	Stride uint32
}

/**
 * @brief Everything a draw call needs bound, plus the flags of the fields
 * the caller wants applied. Resources are referenced by handle only, the
 * context never owns them.
 */
type RendererContext struct {
	Shaders [NUM_SHADER_TYPES]core.Handle

	Rsb           RenderStateBlockDesc
	RenderTargets RenderTargetDesc
	Viewport      Viewport

	World, View, Proj mgl32.Mat4
	Light0Pos         mgl32.Vec4
	Light0Diffuse     mgl32.Vec4
	MaterialDiffuse   mgl32.Vec4
	MaterialSpecular  mgl32.Vec4
	Tsb               TextureStateBlockDesc

	VtxFmt      core.Handle
	VtxBufs     [MAX_VERTEX_STREAMS]VtxBufDesc
	NumVtxBufs  uint32
	IdxBuf      core.Handle
	Textures    [MAX_TEXTURE_STAGES]core.Handle
	NumTextures uint32

	Flags FieldFlags
}

func (c *RendererContext) mark(bit FieldFlags) {
	c.Flags |= bit | groupOf(bit)
}

// MergeWith copies every field flagged in other into c. The operation is
// not commutative: other must be the context that was just applied.
func (c *RendererContext) MergeWith(other *RendererContext) {
	f := other.Flags
	for t := ShaderType(0); t < NUM_SHADER_TYPES; t++ {
		if f.Has(ShaderFlag(t)) {
			c.Shaders[t] = other.Shaders[t]
		}
	}
	if f.Has(FLAG_RSB) {
		c.Rsb.Merge(&other.Rsb)
	}
	if f.Has(FLAG_RENDER_TARGETS) {
		c.RenderTargets = other.RenderTargets
	}
	if f.Has(FLAG_VIEWPORT) {
		c.Viewport = other.Viewport
	}
	if f.Has(FLAG_WORLD) {
		c.World = other.World
	}
	if f.Has(FLAG_VIEW) {
		c.View = other.View
	}
	if f.Has(FLAG_PROJ) {
		c.Proj = other.Proj
	}
	if f.Has(FLAG_LIGHT0_POS) {
		c.Light0Pos = other.Light0Pos
	}
	if f.Has(FLAG_LIGHT0_DIFFUSE) {
		c.Light0Diffuse = other.Light0Diffuse
	}
	if f.Has(FLAG_MATERIAL_DIFFUSE) {
		c.MaterialDiffuse = other.MaterialDiffuse
	}
	if f.Has(FLAG_MATERIAL_SPECULAR) {
		c.MaterialSpecular = other.MaterialSpecular
	}
	if f.Has(FLAG_TSB) {
		c.Tsb.Merge(&other.Tsb)
	}
	if f.Has(FLAG_VTXFMT) {
		c.VtxFmt = other.VtxFmt
	}
	if f.Has(FLAG_VTXBUFS) {
		c.VtxBufs = other.VtxBufs
		c.NumVtxBufs = other.NumVtxBufs
	}
	if f.Has(FLAG_IDXBUF) {
		c.IdxBuf = other.IdxBuf
	}
	if f.Has(FLAG_TEXTURES) {
		c.Textures = other.Textures
		c.NumTextures = other.NumTextures
	}
}

// ClearToNull unbinds everything and flags every field, so applying the
// context detaches all shaders and resources.
func (c *RendererContext) ClearToNull() {
	*c = RendererContext{
		Viewport: FullViewport,
		World:    mgl32.Ident4(),
		View:     mgl32.Ident4(),
		Proj:     mgl32.Ident4(),
		Flags:    FLAG_ALL,
	}
}

// ResetToDefault is ClearToNull with every render and texture state set to
// its default value. The retained context starts from here after a restore.
func (c *RendererContext) ResetToDefault() {
	c.ClearToNull()
	c.Rsb.ResetToDefault()
	c.Tsb.ResetToDefault()
	c.Light0Diffuse = mgl32.Vec4{1, 1, 1, 1}
	c.Light0Pos = mgl32.Vec4{0, 0, 1, 0}
	c.MaterialDiffuse = mgl32.Vec4{1, 1, 1, 1}
}

func NewRendererContext() *RendererContext {
	return &RendererContext{
		Viewport: FullViewport,
		World:    mgl32.Ident4(),
		View:     mgl32.Ident4(),
		Proj:     mgl32.Ident4(),
	}
}

// ClearFlags keeps the values but marks nothing for application.
func (c *RendererContext) ClearFlags() {
	c.Flags = 0
}

func (c *RendererContext) SetShader(t ShaderType, h core.Handle) {
	if t < 0 || t >= NUM_SHADER_TYPES {
		core.LogError("shader type %d out of range", t)
		return
	}
	c.Shaders[t] = h
	c.mark(ShaderFlag(t))
}

func (c *RendererContext) SetVertexShader(h core.Handle) { c.SetShader(SHADER_TYPE_VERTEX, h) }
func (c *RendererContext) SetPixelShader(h core.Handle)  { c.SetShader(SHADER_TYPE_PIXEL, h) }

func (c *RendererContext) SetRenderState(s RenderState, v int32) {
	if c.Rsb.Set(s, v) {
		c.mark(FLAG_RSB)
	}
}

func (c *RendererContext) SetRenderStateValue(s RenderState, v RenderStateValue) {
	c.SetRenderState(s, int32(v))
}

// SetRenderStateBlock replaces the whole block, clearing states that were
// set before.
func (c *RendererContext) SetRenderStateBlock(d RenderStateBlockDesc) {
	c.Rsb = d
	c.mark(FLAG_RSB)
}

func (c *RendererContext) SetTextureState(stage uint32, s TextureState, v TextureStateValue) {
	if c.Tsb.Set(stage, s, v) {
		c.mark(FLAG_TSB)
	}
}

func (c *RendererContext) SetTextureStateBlock(d TextureStateBlockDesc) {
	c.Tsb = d
	c.mark(FLAG_TSB)
}

func (c *RendererContext) SetRenderTargets(rt RenderTargetDesc) {
	c.RenderTargets = rt
	c.mark(FLAG_RENDER_TARGETS)
}

// SetColorBuffer sets buffer i and grows the color buffer count to cover it.
func (c *RendererContext) SetColorBuffer(i uint32, s SurfaceDesc) {
	if i >= MAX_COLOR_BUFFERS {
		core.LogError("color buffer %d out of range [0, %d)", i, MAX_COLOR_BUFFERS)
		return
	}
	c.RenderTargets.ColorBuffers[i] = s
	if i+1 > c.RenderTargets.NumColorBuffers {
		c.RenderTargets.NumColorBuffers = i + 1
	}
	c.mark(FLAG_RENDER_TARGETS)
}

func (c *RendererContext) SetDepthBuffer(s SurfaceDesc) {
	c.RenderTargets.DepthBuffer = s
	c.mark(FLAG_RENDER_TARGETS)
}

func (c *RendererContext) SetViewport(x, y, w, h float32) {
	c.Viewport = Viewport{x, y, w, h}
	c.mark(FLAG_VIEWPORT)
}

func (c *RendererContext) SetWorld(m mgl32.Mat4) {
	c.World = m
	c.mark(FLAG_WORLD)
}

func (c *RendererContext) SetView(m mgl32.Mat4) {
	c.View = m
	c.mark(FLAG_VIEW)
}

func (c *RendererContext) SetProj(m mgl32.Mat4) {
	c.Proj = m
	c.mark(FLAG_PROJ)
}

func (c *RendererContext) SetLight0(pos, diffuse mgl32.Vec4) {
	c.Light0Pos = pos
	c.Light0Diffuse = diffuse
	c.mark(FLAG_LIGHT0_POS)
	c.mark(FLAG_LIGHT0_DIFFUSE)
}

func (c *RendererContext) SetMaterial(diffuse, specular mgl32.Vec4) {
	c.MaterialDiffuse = diffuse
	c.MaterialSpecular = specular
	c.mark(FLAG_MATERIAL_DIFFUSE)
	c.mark(FLAG_MATERIAL_SPECULAR)
}

func (c *RendererContext) SetVtxFmt(h core.Handle) {
	c.VtxFmt = h
	c.mark(FLAG_VTXFMT)
}

func (c *RendererContext) SetVtxBuf(stream uint32, buf core.Handle, offset, stride uint32) {
	if stream >= MAX_VERTEX_STREAMS {
		core.LogError("vertex stream %d out of range [0, %d)", stream, MAX_VERTEX_STREAMS)
		return
	}
	c.VtxBufs[stream] = VtxBufDesc{Buffer: buf, Offset: offset, Stride: stride}
	if stream+1 > c.NumVtxBufs {
		c.NumVtxBufs = stream + 1
	}
	c.mark(FLAG_VTXBUFS)
}

func (c *RendererContext) SetIdxBuf(h core.Handle) {
	c.IdxBuf = h
	c.mark(FLAG_IDXBUF)
}

func (c *RendererContext) SetTexture(stage uint32, h core.Handle) {
	if stage >= MAX_TEXTURE_STAGES {
		core.LogError("texture stage %d out of range [0, %d)", stage, MAX_TEXTURE_STAGES)
		return
	}
	c.Textures[stage] = h
	if stage+1 > c.NumTextures {
		c.NumTextures = stage + 1
	}
	c.mark(FLAG_TEXTURES)
}

// SetTextures binds hs to stages 0..len(hs)-1 and nothing above.
func (c *RendererContext) SetTextures(hs ...core.Handle) {
	n := uint32(len(hs))
	if n > MAX_TEXTURE_STAGES {
		core.LogWarn("%d textures requested, only %d stages exist", n, MAX_TEXTURE_STAGES)
		n = MAX_TEXTURE_STAGES
	}
	c.Textures = [MAX_TEXTURE_STAGES]core.Handle{}
	copy(c.Textures[:], hs[:n])
	c.NumTextures = n
	c.mark(FLAG_TEXTURES)
}
