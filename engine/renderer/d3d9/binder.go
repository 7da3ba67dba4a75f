package d3d9

import (
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

func logCall(what string, err error) {
	if err != nil {
		core.LogError("d3d9 %s failed: %s", what, err)
	}
}

/**
 * @brief Applies the flagged fields of next to the device, skipping values
 * equal to the retained context unless force is set. The caller merges next
 * into the retained context afterwards.
 */
func (b *Backend) BindContext(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	if b.dev == nil {
		core.LogError("d3d9 bind without a device")
		return
	}
	if force || flags.Has(metadata.FLAG_GROUP_STATE) {
		b.bindState(next, flags, force)
	}
	if !b.xenon() && (force || flags.Has(metadata.FLAG_GROUP_FFP)) {
		b.bindFFP(next, flags, force)
	}
	if force || flags.Has(metadata.FLAG_GROUP_DATA) {
		b.bindData(next, flags, force)
	}
}

func (b *Backend) bindState(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current
	for t := metadata.ShaderType(0); t < metadata.NUM_SHADER_TYPES; t++ {
		if flags.Has(metadata.ShaderFlag(t)) {
			b.bindShader(t, next.Shaders[t], cur.Shaders[t], force)
		}
	}
	if flags.Has(metadata.FLAG_RSB) {
		next.Rsb.Each(func(s metadata.RenderState, v int32) {
			if !force {
				if old, ok := cur.Rsb.Get(s); ok && old == v {
					return
				}
			}
			state, value, ok := renderState(s, v)
			if !ok {
				return
			}
			logCall("SetRenderState", b.dev.SetRenderState(state, value))
		})
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

func (b *Backend) bindShader(t metadata.ShaderType, h, old core.Handle, force bool) {
	if t == metadata.SHADER_TYPE_GEOMETRY {
		if !h.IsNull() {
			core.LogWarnOnce("d3d9.gs", "geometry shaders are not supported by %s", b.api)
		}
		return
	}
	if h == old && !force {
		if s, ok := b.tables.Shaders.Get(h); ok {
			s.ApplyDirtyUniforms()
		}
		return
	}
	if s, ok := b.tables.Shaders.Get(old); ok && h != old {
		s.Disable()
	}
	if s, ok := b.tables.Shader(h); ok {
		s.Apply()
		return
	}
	if b.xenon() && t == metadata.SHADER_TYPE_VERTEX {
		core.LogWarnOnce("xenon.ffp", "xenon has no fixed function pipeline, draws without a vertex shader are undefined")
	}
	logCall("UnbindShader", b.dev.UnbindShader(t))
}

// colorSurface returns the native surface of a color buffer, the back
// buffer for the default surface.
func (b *Backend) colorSurface(s metadata.SurfaceDesc) any {
	if s.IsDefault() {
		return b.backBuffer
	}
	tex, ok := b.tables.Texture(s.Texture)
	if !ok {
		return nil
	}
	surf := tex.NativeSurface(s.Face, s.Level)
	if surf == nil {
		core.LogError("texture %s cannot be used as render target", s.Texture)
	}
	return surf
}

// bindRenderTargets reports whether the size of color buffer 0 changed.
func (b *Backend) bindRenderTargets(next, cur *metadata.RenderTargetDesc, force bool) bool {
	maxRT := b.caps.Query(metadata.CAP_MAX_RENDER_TARGETS)
	n := next.NumColorBuffers
	if n > maxRT {
		core.LogWarnOnce("d3d9.maxrt", "%d color buffers requested, device supports %d", n, maxRT)
		n = maxRT
	}
	prev := min(cur.NumColorBuffers, maxRT)

	sizeChanged := false
	var cb0 metadata.SurfaceDesc
	if n > 0 {
		cb0 = next.ColorBuffers[0]
	}
	var curCb0 metadata.SurfaceDesc
	if prev > 0 {
		curCb0 = cur.ColorBuffers[0]
	}
	if force || cb0 != curCb0 {
		surf := b.colorSurface(cb0)
		if surf == nil {
			surf = b.backBuffer
		}
		logCall("SetRenderTarget", b.dev.SetRenderTarget(0, surf))
		w, h := b.dev.SurfaceSize(surf)
		sizeChanged = w != b.rtWidth || h != b.rtHeight
		b.rtWidth, b.rtHeight = w, h
	}
	for i := uint32(1); i < n; i++ {
		if force || i >= prev || next.ColorBuffers[i] != cur.ColorBuffers[i] {
			var surf any
			if !next.ColorBuffers[i].IsDefault() {
				surf = b.colorSurface(next.ColorBuffers[i])
			}
			logCall("SetRenderTarget", b.dev.SetRenderTarget(i, surf))
		}
	}
	// disable buffers that are no longer requested
	limit := prev
	if force {
		limit = maxRT
	}
	for i := max(n, 1); i < limit; i++ {
		logCall("SetRenderTarget", b.dev.SetRenderTarget(i, nil))
	}

	b.bindDepth(next.DepthBuffer, force)
	return sizeChanged
}

func (b *Backend) bindDepth(ds metadata.SurfaceDesc, force bool) {
	var want any
	if ds.IsDefault() {
		// the default depth surface must cover the bound color buffer
		if b.depthWidth < b.rtWidth || b.depthHeight < b.rtHeight {
			w, h := max(b.depthWidth, b.rtWidth), max(b.depthHeight, b.rtHeight)
			core.LogDebug("growing the default depth surface to %dx%d", w, h)
			if err := b.createDepthSurface(w, h); err != nil {
				return
			}
		}
		want = b.depthSurface
	} else {
		tex, ok := b.tables.Texture(ds.Texture)
		if ok {
			want = tex.NativeSurface(ds.Face, ds.Level)
		}
	}
	if force || want != b.boundDepth {
		logCall("SetDepthStencilSurface", b.dev.SetDepthStencilSurface(want))
		b.boundDepth = want
	}
}

func (b *Backend) setViewport(v metadata.Viewport) {
	x, y, w, h := v.Pixels(b.rtWidth, b.rtHeight)
	logCall("SetViewport", b.dev.SetViewport(Viewport{X: x, Y: y, Width: w, Height: h, MinZ: 0, MaxZ: 1}))
	logCall("SetScissorRect", b.dev.SetScissorRect(x, y, w, h))
}

func (b *Backend) bindData(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current

	fmtChanged := false
	if flags.Has(metadata.FLAG_VTXFMT) && (force || next.VtxFmt != cur.VtxFmt) {
		var decl any
		if f, ok := b.tables.VtxFmt(next.VtxFmt); ok {
			if d, ok := f.(*vertexDecl); ok {
				decl = d.native
			}
		}
		logCall("SetVertexDeclaration", b.dev.SetVertexDeclaration(decl))
		fmtChanged = true
	}

	if flags.Has(metadata.FLAG_VTXBUFS) || fmtChanged {
		fmtH := cur.VtxFmt
		if flags.Has(metadata.FLAG_VTXFMT) {
			fmtH = next.VtxFmt
		}
		bufs, num := cur.VtxBufs, cur.NumVtxBufs
		if flags.Has(metadata.FLAG_VTXBUFS) {
			bufs, num = next.VtxBufs, next.NumVtxBufs
		}
		b.bindStreams(fmtH, &bufs, num, force || fmtChanged || !flags.Has(metadata.FLAG_VTXBUFS))
	}

	if flags.Has(metadata.FLAG_IDXBUF) && (force || next.IdxBuf != cur.IdxBuf || b.indexDirty) {
		var native any
		if ib, ok := b.tables.IdxBuf(next.IdxBuf); ok {
			native = ib.Native()
		}
		logCall("SetIndices", b.dev.SetIndices(native))
		b.indexDirty = false
	}

	if flags.Has(metadata.FLAG_TEXTURES) {
		b.bindTextures(next, force)
	}
}

// bindStreams binds every stream the vertex format reads. all rebinds the
// streams whether or not they changed.
func (b *Backend) bindStreams(fmtH core.Handle, bufs *[metadata.MAX_VERTEX_STREAMS]metadata.VtxBufDesc, num uint32, all bool) {
	f, ok := b.tables.VtxFmt(fmtH)
	if !ok {
		return
	}
	desc := f.Desc()
	maxStreams := b.caps.Query(metadata.CAP_MAX_VERTEX_STREAMS)
	mask := desc.StreamMask()
	cur := b.current
	for s := uint32(0); s < metadata.MAX_VERTEX_STREAMS; s++ {
		if mask&(1<<s) == 0 {
			continue
		}
		if s >= maxStreams {
			core.LogWarnOnce("d3d9.maxstreams", "vertex format reads stream %d, device supports %d", s, maxStreams)
			continue
		}
		bd := bufs[s]
		if s >= num {
			bd = metadata.VtxBufDesc{}
		}
		if !all && b.streamDirty&(1<<s) == 0 && s < cur.NumVtxBufs && bd == cur.VtxBufs[s] {
			continue
		}
		b.setStream(s, bd, desc)
	}
}

func (b *Backend) setStream(s uint32, bd metadata.VtxBufDesc, desc *metadata.VertexFormatDesc) {
	vb, ok := b.tables.VtxBuf(bd.Buffer)
	if !ok {
		logCall("SetStreamSource", b.dev.SetStreamSource(s, nil, 0, 0))
		return
	}
	stride := bd.Stride
	if stride == 0 {
		stride = vb.Stride()
	}
	if stride == 0 {
		stride = desc.StreamStride(s)
	}
	logCall("SetStreamSource", b.dev.SetStreamSource(s, vb.Native(), bd.Offset, stride))
	b.streamDirty &^= 1 << s
}

func (b *Backend) bindTextures(next *metadata.RendererContext, force bool) {
	cur := b.current
	maxStages := b.caps.Query(metadata.CAP_MAX_TEXTURE_STAGES)
	n := next.NumTextures
	if n > maxStages {
		core.LogWarnOnce("d3d9.maxtextures", "%d textures requested, device supports %d stages", n, maxStages)
		n = maxStages
	}
	prev := min(cur.NumTextures, maxStages)
	for stage := uint32(0); stage < n; stage++ {
		h := next.Textures[stage]
		if !force && stage < prev && h == cur.Textures[stage] {
			continue
		}
		if tex, ok := b.tables.Texture(h); ok {
			tex.Bind(stage)
		} else {
			logCall("SetTexture", b.dev.SetTexture(stage, nil))
		}
	}
	limit := prev
	if force {
		limit = maxStages
	}
	for stage := n; stage < limit; stage++ {
		logCall("SetTexture", b.dev.SetTexture(stage, nil))
	}
}
