package ogl

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

func (b *Backend) primitive(prim metadata.PrimitiveType) uint32 {
	m, ok := prim.Meta()
	if !ok {
		return tokens.NONE
	}
	return m.GL
}

func (b *Backend) SupportsPrimitive(prim metadata.PrimitiveType) bool {
	return b.primitive(prim) != tokens.NONE
}

// prepare moves the arrays to startVtx and restores what an Up draw
// replaced.
func (b *Backend) prepare(startVtx uint32) {
	cur := b.current
	all := startVtx != b.startVtx
	if all || b.streamDirty != 0 {
		b.startVtx = startVtx
		b.bindStreams(cur.VtxFmt, &cur.VtxBufs, cur.NumVtxBufs, all)
		b.streamDirty = 0
	}
	if b.indexDirty {
		b.bindIndices(cur.IdxBuf)
	}
}

// GL has no base vertex in the compatibility profile, the array pointers
// are offset instead.
func (b *Backend) Draw(prim metadata.PrimitiveType, numPrims, numVtx, startVtx uint32) error {
	b.prepare(startVtx)
	b.dev.DrawArrays(b.primitive(prim), 0, int32(numVtx))
	return nil
}

func (b *Backend) DrawIndexed(prim metadata.PrimitiveType, numPrims, numIdx, startVtx, minVtxIdx, numVtx, startIdx uint32) error {
	b.prepare(startVtx)
	b.dev.DrawElements(b.primitive(prim), int32(numIdx), uintptr(startIdx)*2)
	return nil
}

// upload streams vertices into the stream buffer and points the stream 0
// arrays of the bound format at it.
func (b *Backend) upload(vertices []byte, stride uint32) {
	b.dev.BindBuffer(tokens.GL_ARRAY_BUFFER, b.stream.vbo)
	b.dev.BufferData(tokens.GL_ARRAY_BUFFER, vertices, tokens.GL_STREAM_DRAW)
	if f, ok := b.tables.VtxFmt(b.current.VtxFmt); ok {
		for _, e := range f.Desc().Elements {
			if e.Stream == 0 {
				b.arrayPointer(e, stride, 0)
			}
		}
	}
	b.streamDirty |= 1
}

func (b *Backend) DrawUp(prim metadata.PrimitiveType, numPrims, numVtx uint32, vertices []byte, stride uint32) error {
	b.upload(vertices, stride)
	b.dev.DrawArrays(b.primitive(prim), 0, int32(numVtx))
	return nil
}

func (b *Backend) DrawIndexedUp(prim metadata.PrimitiveType, numPrims, numIdx, numVtx uint32, indices []uint16, vertices []byte, stride uint32) error {
	b.upload(vertices, stride)
	var data []byte
	if len(indices) > 0 {
		data = unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*2)
	}
	b.dev.BindBuffer(tokens.GL_ELEMENT_ARRAY_BUFFER, b.stream.ibo)
	b.dev.BufferData(tokens.GL_ELEMENT_ARRAY_BUFFER, data, tokens.GL_STREAM_DRAW)
	b.indexDirty = true
	b.dev.DrawElements(b.primitive(prim), int32(numIdx), 0)
	return nil
}

func (b *Backend) Clear(flags metadata.ClearFlags, color mgl32.Vec4, z float32, stencil uint32) error {
	var mask uint32
	if flags&metadata.CLEAR_COLOR != 0 {
		mask |= tokens.GL_COLOR_BUFFER_BIT
	}
	if flags&metadata.CLEAR_DEPTH != 0 {
		mask |= tokens.GL_DEPTH_BUFFER_BIT
	}
	if flags&metadata.CLEAR_STENCIL != 0 {
		mask |= tokens.GL_STENCIL_BUFFER_BIT
	}
	b.dev.Clear(mask, color, z, int32(stencil))
	return nil
}

func (b *Backend) BeginScene() error {
	return nil
}

// EndScene presents the frame.
func (b *Backend) EndScene() error {
	return b.dev.SwapBuffers()
}

/** @brief The buffers Up draws stream their data through. */
type streamBuffers struct {
	backend *Backend
	vbo     uint32
	ibo     uint32
}

func (s *streamBuffers) DeviceCreate() error {
	s.vbo = s.backend.dev.CreateBuffer()
	s.ibo = s.backend.dev.CreateBuffer()
	return nil
}

func (s *streamBuffers) DeviceRestore() error { return nil }
func (s *streamBuffers) DeviceDispose()       {}

func (s *streamBuffers) DeviceDestroy() {
	if s.backend.dev == nil {
		return
	}
	if s.vbo != 0 {
		s.backend.dev.DeleteBuffer(s.vbo)
		s.vbo = 0
	}
	if s.ibo != 0 {
		s.backend.dev.DeleteBuffer(s.ibo)
		s.ibo = 0
	}
}
