package ogl

import (
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

// bufferName returns the GL name behind a native buffer, 0 for none.
func bufferName(native any) uint32 {
	name, _ := native.(uint32)
	return name
}

// fixedArray reports the client array of an element and whether it has one.
func (b *Backend) fixedArray(e metadata.VertexElement) (array, unit uint32, ok bool) {
	sm := &metadata.VtxSemMetas[e.Semantic]
	if sm.GLArray == tokens.NONE {
		return 0, 0, false
	}
	unit, _ = e.Semantic.TexUnit()
	return sm.GLArray, unit, true
}

func (b *Backend) enableArray(e metadata.VertexElement, on bool) {
	if b.attribMode {
		b.dev.VertexAttribArray(metadata.VtxSemMetas[e.Semantic].GLAttrib, on)
		return
	}
	array, unit, ok := b.fixedArray(e)
	if !ok {
		if on {
			core.LogWarnOnce("gl.ffpsem."+e.Semantic.String(), "vertex semantic %s needs a vertex shader, ignored", e.Semantic)
		}
		return
	}
	b.dev.ClientArray(array, unit, on)
}

func (b *Backend) arrayPointer(e metadata.VertexElement, stride, base uint32) {
	fm := &metadata.ClrFmtMetas[e.Format]
	offset := uintptr(base + e.Offset)
	if b.attribMode {
		b.dev.VertexAttribPointer(metadata.VtxSemMetas[e.Semantic].GLAttrib, fm.GLComponents, fm.GLType, fm.GLNormalized, stride, offset)
		return
	}
	if array, unit, ok := b.fixedArray(e); ok {
		b.dev.ArrayPointer(array, unit, fm.GLComponents, fm.GLType, stride, offset)
	}
}

// enableArrays switches the enabled arrays over to the elements of desc.
func (b *Backend) enableArrays(desc *metadata.VertexFormatDesc, attribMode bool) {
	for _, e := range b.enabledArrays {
		b.enableArray(e, false)
	}
	b.attribMode = attribMode
	b.enabledArrays = b.enabledArrays[:0]
	if desc == nil {
		return
	}
	for _, e := range desc.Elements {
		b.enableArray(e, true)
		b.enabledArrays = append(b.enabledArrays, e)
	}
}

func (b *Backend) bindData(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current

	fmtH := cur.VtxFmt
	if flags.Has(metadata.FLAG_VTXFMT) {
		fmtH = next.VtxFmt
	}
	attribMode := b.boundProgram != 0
	fmtChanged := (flags.Has(metadata.FLAG_VTXFMT) && (force || next.VtxFmt != cur.VtxFmt)) || attribMode != b.attribMode
	if fmtChanged {
		var desc *metadata.VertexFormatDesc
		if f, ok := b.tables.VtxFmt(fmtH); ok {
			desc = f.Desc()
		}
		b.enableArrays(desc, attribMode)
	}

	if flags.Has(metadata.FLAG_VTXBUFS) || fmtChanged {
		bufs, num := cur.VtxBufs, cur.NumVtxBufs
		if flags.Has(metadata.FLAG_VTXBUFS) {
			bufs, num = next.VtxBufs, next.NumVtxBufs
		}
		b.bindStreams(fmtH, &bufs, num, force || fmtChanged || !flags.Has(metadata.FLAG_VTXBUFS))
	}

	if flags.Has(metadata.FLAG_IDXBUF) && (force || next.IdxBuf != cur.IdxBuf || b.indexDirty) {
		b.bindIndices(next.IdxBuf)
	}

	if flags.Has(metadata.FLAG_TEXTURES) {
		b.bindTextures(next, force)
	}
}

func (b *Backend) bindIndices(h core.Handle) {
	var name uint32
	if ib, ok := b.tables.IdxBuf(h); ok {
		name = bufferName(ib.Native())
	}
	b.dev.BindBuffer(tokens.GL_ELEMENT_ARRAY_BUFFER, name)
	b.indexDirty = false
}

// bindStreams points the arrays of every stream the vertex format reads at
// its buffer, offset by the current start vertex. all rebinds the streams
// whether or not they changed.
func (b *Backend) bindStreams(fmtH core.Handle, bufs *[metadata.MAX_VERTEX_STREAMS]metadata.VtxBufDesc, num uint32, all bool) {
	f, ok := b.tables.VtxFmt(fmtH)
	if !ok {
		return
	}
	desc := f.Desc()
	mask := desc.StreamMask()
	cur := b.current
	for s := uint32(0); s < metadata.MAX_VERTEX_STREAMS; s++ {
		if mask&(1<<s) == 0 {
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
	b.streamDirty &^= 1 << s
	vb, ok := b.tables.VtxBuf(bd.Buffer)
	if !ok {
		b.dev.BindBuffer(tokens.GL_ARRAY_BUFFER, 0)
		return
	}
	stride := bd.Stride
	if stride == 0 {
		stride = vb.Stride()
	}
	if stride == 0 {
		stride = desc.StreamStride(s)
	}
	b.dev.BindBuffer(tokens.GL_ARRAY_BUFFER, bufferName(vb.Native()))
	base := bd.Offset + b.startVtx*stride
	for _, e := range desc.Elements {
		if e.Stream == s {
			b.arrayPointer(e, stride, base)
		}
	}
}

func (b *Backend) bindTextures(next *metadata.RendererContext, force bool) {
	cur := b.current
	maxStages := b.caps.Query(metadata.CAP_MAX_TEXTURE_STAGES)
	n := next.NumTextures
	if n > maxStages {
		core.LogWarnOnce("gl.maxtextures", "%d textures requested, context supports %d units", n, maxStages)
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
			b.dev.UnbindTexture(stage)
		}
	}
	limit := prev
	if force {
		limit = maxStages
	}
	for stage := n; stage < limit; stage++ {
		b.dev.UnbindTexture(stage)
	}
}
