package d3d9

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

func (b *Backend) primitive(prim metadata.PrimitiveType) uint32 {
	m, ok := prim.Meta()
	if !ok {
		return tokens.NONE
	}
	if b.xenon() {
		return m.Xenon
	}
	return m.D3D
}

func (b *Backend) SupportsPrimitive(prim metadata.PrimitiveType) bool {
	return b.primitive(prim) != tokens.NONE
}

// rebindStreams restores the stream sources an Up draw cleared.
func (b *Backend) rebindStreams() {
	if b.streamDirty != 0 {
		b.bindStreams(b.current.VtxFmt, &b.current.VtxBufs, b.current.NumVtxBufs, false)
		b.streamDirty = 0
	}
	if b.indexDirty {
		var native any
		if ib, ok := b.tables.IdxBuf(b.current.IdxBuf); ok {
			native = ib.Native()
		}
		logCall("SetIndices", b.dev.SetIndices(native))
		b.indexDirty = false
	}
}

// D3D9 offsets the vertices natively, startVtx never requires a stream
// rebind.
func (b *Backend) Draw(prim metadata.PrimitiveType, numPrims, numVtx, startVtx uint32) error {
	b.rebindStreams()
	return b.dev.DrawPrimitive(b.primitive(prim), startVtx, numPrims)
}

func (b *Backend) DrawIndexed(prim metadata.PrimitiveType, numPrims, numIdx, startVtx, minVtxIdx, numVtx, startIdx uint32) error {
	b.rebindStreams()
	return b.dev.DrawIndexedPrimitive(b.primitive(prim), int32(startVtx), minVtxIdx, numVtx, startIdx, numPrims)
}

func (b *Backend) DrawUp(prim metadata.PrimitiveType, numPrims, numVtx uint32, vertices []byte, stride uint32) error {
	err := b.dev.DrawPrimitiveUP(b.primitive(prim), numPrims, vertices, stride)
	// the runtime resets stream 0 after an Up draw
	b.streamDirty |= 1
	return err
}

func (b *Backend) DrawIndexedUp(prim metadata.PrimitiveType, numPrims, numIdx, numVtx uint32, indices []uint16, vertices []byte, stride uint32) error {
	err := b.dev.DrawIndexedPrimitiveUP(b.primitive(prim), 0, numVtx, numPrims, indices, vertices, stride)
	b.streamDirty |= 1
	b.indexDirty = true
	return err
}

func (b *Backend) Clear(flags metadata.ClearFlags, color mgl32.Vec4, z float32, stencil uint32) error {
	return b.dev.Clear(clearFlags(flags), colorARGB(color), z, stencil)
}

func (b *Backend) BeginScene() error {
	return b.dev.BeginScene()
}

// EndScene ends the scene and presents it. A lost device is reported as
// core.ErrDeviceLost.
func (b *Backend) EndScene() error {
	if err := b.dev.EndScene(); err != nil {
		return err
	}
	if err := b.dev.Present(); err != nil {
		if errors.Is(err, core.ErrDeviceLost) {
			core.LogWarn("%s device lost", b.api)
		}
		return err
	}
	return nil
}
