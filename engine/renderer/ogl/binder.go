package ogl

import (
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

/**
 * @brief Applies the flagged fields of next to the GL context, skipping
 * values equal to the retained context unless force is set. The caller
 * merges next into the retained context afterwards.
 */
func (b *Backend) BindContext(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	if b.dev == nil {
		core.LogError("gl bind without a device")
		return
	}
	if force || flags.Has(metadata.FLAG_GROUP_STATE) {
		b.bindState(next, flags, force)
	}
	if force || flags.Has(metadata.FLAG_GROUP_FFP) {
		b.bindFFP(next, flags, force)
	}
	// a program change switches between client arrays and attributes
	if force || flags.Has(metadata.FLAG_GROUP_DATA) || (b.boundProgram != 0) != b.attribMode {
		b.bindData(next, flags, force)
	}
}

func (b *Backend) bindState(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current
	if flags.Has(metadata.FLAG_SHADERS) {
		b.bindShaders(next, flags, force)
	}
	if flags.Has(metadata.FLAG_RSB) {
		b.bindRenderStates(&next.Rsb, &cur.Rsb, force)
	}
	sizeChanged := false
	if flags.Has(metadata.FLAG_RENDER_TARGETS) {
		sizeChanged = b.bindRenderTargets(&next.RenderTargets, &cur.RenderTargets, force)
	}
	if flags.Has(metadata.FLAG_VIEWPORT) && (force || next.Viewport != cur.Viewport) {
		b.setViewport(next.Viewport)
	} else if sizeChanged {
		b.setViewport(cur.Viewport)
	}
}

// bindShaders binds the program linked from the GLSL members of the
// effective shader set. Shaders of other languages are applied on their
// own. Shaders that stay bound only upload their dirty uniforms.
func (b *Backend) bindShaders(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current
	key := programKey(cur.Shaders)
	for t := metadata.ShaderType(0); t < metadata.NUM_SHADER_TYPES; t++ {
		if flags.Has(metadata.ShaderFlag(t)) {
			key[t] = next.Shaders[t]
		}
	}
	if !key[metadata.SHADER_TYPE_GEOMETRY].IsNull() && !b.caps.Has(metadata.CAP_GEOMETRY_SHADER) {
		core.LogWarnOnce("gl.gs", "geometry shaders are not supported by this context")
		key[metadata.SHADER_TYPE_GEOMETRY] = core.InvalidHandle
	}

	for t, h := range cur.Shaders {
		if h != key[t] {
			if s, ok := b.tables.Shaders.Get(h); ok {
				s.Disable()
			}
		}
	}

	program, err := b.programs.get(b.programs.glslKey(key))
	if err != nil {
		core.LogError(err.Error())
		program = 0
	}
	rebound := force || program != b.boundProgram
	if rebound {
		b.dev.UseProgram(program)
		b.boundProgram = program
	}
	for t, h := range key {
		s, ok := b.tables.Shader(h)
		if !ok {
			continue
		}
		if rebound || h != cur.Shaders[t] {
			s.Apply()
		} else {
			s.ApplyDirtyUniforms()
		}
	}
}

func (b *Backend) bindRenderStates(next, cur *metadata.RenderStateBlockDesc, force bool) {
	alpha, blend := false, false
	next.Each(func(s metadata.RenderState, v int32) {
		if !force {
			if old, ok := cur.Get(s); ok && old == v {
				return
			}
		}
		switch s {
		case metadata.RS_ALPHA_FUNC, metadata.RS_ALPHA_REF:
			alpha = true
		case metadata.RS_BLEND_SRC, metadata.RS_BLEND_DST:
			blend = true
		default:
			b.setRenderState(s, v)
		}
	})

	// GL sets both halves of these pairs in one call
	value := func(s metadata.RenderState) int32 {
		return next.GetOr(s, cur.GetOr(s, metadata.RenderStateMetas[s].Default))
	}
	if alpha {
		fn, ok := glValue(value(metadata.RS_ALPHA_FUNC))
		if ok {
			b.dev.AlphaFunc(fn, float32(value(metadata.RS_ALPHA_REF))/255)
		}
	}
	if blend {
		src, okSrc := glValue(value(metadata.RS_BLEND_SRC))
		dst, okDst := glValue(value(metadata.RS_BLEND_DST))
		if okSrc && okDst {
			b.dev.BlendFunc(src, dst)
		}
	}
}

func glValue(v int32) (uint32, bool) {
	m, ok := metadata.RenderStateValue(v).Meta()
	if !ok {
		return 0, false
	}
	return m.GL, true
}

// D3DCOLORWRITEENABLE bits
const (
	colorWriteRed   = 1 << 0
	colorWriteGreen = 1 << 1
	colorWriteBlue  = 1 << 2
	colorWriteAlpha = 1 << 3
)

func (b *Backend) setRenderState(s metadata.RenderState, v int32) {
	m, ok := s.Meta()
	if !ok {
		return
	}
	switch s {
	case metadata.RS_COLOR0_WRITE:
		b.dev.ColorMask(v&colorWriteRed != 0, v&colorWriteGreen != 0, v&colorWriteBlue != 0, v&colorWriteAlpha != 0)
		return
	case metadata.RS_DEPTH_WRITE:
		b.dev.DepthMask(metadata.RenderStateValue(v) == metadata.RSV_TRUE)
		return
	case metadata.RS_CULL_MODE:
		if metadata.RenderStateValue(v) == metadata.RSV_CULL_NONE {
			b.dev.Enable(tokens.GL_CULL_FACE, false)
			return
		}
		face, ok := glValue(v)
		if !ok {
			return
		}
		b.dev.Enable(tokens.GL_CULL_FACE, true)
		b.dev.CullFace(face)
		return
	}

	switch m.Group {
	case metadata.RSVG_BOOL:
		b.dev.Enable(m.GLCap, metadata.RenderStateValue(v) == metadata.RSV_TRUE)
	case metadata.RSVG_CMP:
		if fn, ok := glValue(v); ok {
			b.dev.DepthFunc(fn)
		}
	case metadata.RSVG_FILL:
		if mode, ok := glValue(v); ok {
			b.dev.PolygonMode(mode)
		}
	default:
		core.LogError("render state %s has no gl mapping", s)
	}
}

// surface returns the attachment of a texture render target, the zero
// Surface when it has none.
func (b *Backend) surface(s metadata.SurfaceDesc) Surface {
	tex, ok := b.tables.Texture(s.Texture)
	if !ok {
		return Surface{}
	}
	surf, ok := tex.NativeSurface(s.Face, s.Level).(Surface)
	if !ok {
		core.LogError("texture %s cannot be used as render target", s.Texture)
		return Surface{}
	}
	if surf.Width == 0 || surf.Height == 0 {
		surf.Width, surf.Height = tex.Size(s.Level)
	}
	return surf
}

// bindRenderTargets reports whether the size of the bound target changed.
func (b *Backend) bindRenderTargets(next, cur *metadata.RenderTargetDesc, force bool) bool {
	maxRT := b.caps.Query(metadata.CAP_MAX_RENDER_TARGETS)
	n := next.NumColorBuffers
	if n > maxRT {
		core.LogWarnOnce("gl.maxrt", "%d color buffers requested, context supports %d", n, maxRT)
		n = maxRT
	}
	if !force && *next == *cur {
		return false
	}

	w, h := b.rtWidth, b.rtHeight
	if n == 0 || next.ColorBuffers[0].IsDefault() {
		if n > 1 {
			core.LogWarnOnce("gl.mixedrt", "the back buffer cannot be combined with texture render targets")
		}
		if force || b.usingFBO {
			b.dev.BindFramebuffer(0)
			b.usingFBO = false
		}
		w, h = b.disp.Width, b.disp.Height
	} else if b.fbo != 0 {
		if force || !b.usingFBO {
			b.dev.BindFramebuffer(b.fbo)
			b.usingFBO = true
		}
		for i := uint32(0); i < maxRT; i++ {
			var want Surface
			if i < n {
				want = b.surface(next.ColorBuffers[i])
			}
			if force || want != b.fboColor[i] {
				b.dev.FramebufferTexture(tokens.GL_COLOR_ATTACHMENT0+i, want)
				b.fboColor[i] = want
			}
		}
		b.dev.DrawBuffers(n)
		w, h = b.fboColor[0].Width, b.fboColor[0].Height
		b.bindDepth(next.DepthBuffer, w, h, force)
		if err := b.dev.CheckFramebuffer(); err != nil {
			core.LogError("render target framebuffer incomplete: %s", err)
		}
	}

	changed := w != b.rtWidth || h != b.rtHeight
	b.rtWidth, b.rtHeight = w, h
	return changed
}

func (b *Backend) bindDepth(ds metadata.SurfaceDesc, w, h uint32, force bool) {
	if !ds.IsDefault() {
		surf := b.surface(ds)
		if force || surf != b.fboDepth || b.boundDepthRB != 0 {
			b.dev.FramebufferRenderbuffer(tokens.GL_DEPTH_ATTACHMENT, 0)
			b.dev.FramebufferTexture(tokens.GL_DEPTH_ATTACHMENT, surf)
			b.fboDepth = surf
			b.boundDepthRB = 0
		}
		return
	}
	// the default depth buffer must cover the bound color buffer
	if b.depthRB == 0 || b.depthWidth < w || b.depthHeight < h {
		dw, dh := max(b.depthWidth, w), max(b.depthHeight, h)
		core.LogDebug("growing the default depth renderbuffer to %dx%d", dw, dh)
		if b.depthRB != 0 {
			b.dev.DeleteRenderbuffer(b.depthRB)
		}
		b.depthRB = b.dev.CreateRenderbuffer(dw, dh)
		b.depthWidth, b.depthHeight = dw, dh
		b.boundDepthRB = 0
	}
	if force || b.boundDepthRB != b.depthRB {
		if b.fboDepth != (Surface{}) {
			b.dev.FramebufferTexture(tokens.GL_DEPTH_ATTACHMENT, Surface{})
			b.fboDepth = Surface{}
		}
		b.dev.FramebufferRenderbuffer(tokens.GL_DEPTH_ATTACHMENT, b.depthRB)
		b.boundDepthRB = b.depthRB
	}
}

// setViewport flips y, GL windows start at the bottom left.
func (b *Backend) setViewport(v metadata.Viewport) {
	x, y, w, h := v.Pixels(b.rtWidth, b.rtHeight)
	b.dev.Viewport(int32(x), int32(b.rtHeight)-int32(y)-int32(h), int32(w), int32(h))
}
