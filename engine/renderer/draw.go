package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

/**
 * @brief Opens a frame. Handles pending window size changes and restores a
 * lost device first. Returns core.ErrDeviceLost while the device cannot be
 * restored yet, the caller should skip the frame.
 */
func (r *Renderer) DrawBegin() error {
	if r.inFrame {
		err := fmt.Errorf("draw begin: %w", core.ErrDrawReentrant)
		core.LogError(err.Error())
		return err
	}

	if r.display.HandleSizeMove() {
		disp := r.display.DispDesc()
		r.fire(core.EVENT_CODE_RESIZED, [2]uint32{disp.Width, disp.Height})
		if r.stage == DEVICE_STAGE_RESTORED && disp.Valid() {
			r.Dispose()
			if err := r.Restore(); err != nil {
				return err
			}
		}
	}

	if r.stage == DEVICE_STAGE_DISPOSED {
		if !r.backend.DeviceReady() || !r.display.DispDesc().Valid() {
			return core.ErrDeviceLost
		}
		if err := r.Restore(); err != nil {
			return err
		}
	}
	if r.stage != DEVICE_STAGE_RESTORED {
		return r.stageError("draw begin")
	}

	if err := r.backend.BeginScene(); err != nil {
		err = fmt.Errorf("failed to begin the scene: %w", err)
		core.LogError(err.Error())
		return err
	}
	r.numPrims, r.numDraws = 0, 0
	r.frameStart = time.Now()
	r.inFrame = true
	return nil
}

/**
 * @brief Ends and presents the frame and folds its totals into the
 * metrics. A lost device is disposed and not reported, the next DrawBegin
 * restores it.
 */
func (r *Renderer) DrawEnd() error {
	if !r.inFrame {
		err := fmt.Errorf("draw end: %w", core.ErrDrawNotBegun)
		core.LogError(err.Error())
		return err
	}
	r.inFrame = false

	err := r.backend.EndScene()
	r.metrics.Update(core.FrameStats{
		NumPrims: r.numPrims,
		NumDraws: r.numDraws,
		Elapsed:  time.Since(r.frameStart),
	})
	if IsDeviceLost(err) {
		core.LogWarn("device lost, disposing until it can be reset")
		r.Dispose()
		return nil
	}
	if err != nil {
		core.LogError("failed to end the scene: %s", err)
	}
	return err
}

// prepare checks the frame and returns the primitive to draw with and the
// number of vertices or indices it needs.
func (r *Renderer) prepare(op string, prim metadata.PrimitiveType, numPrims uint32) (metadata.PrimitiveType, uint32, error) {
	if !r.inFrame {
		err := fmt.Errorf("%s: %w", op, core.ErrDrawNotBegun)
		core.LogError(err.Error())
		return prim, 0, err
	}
	if !r.backend.SupportsPrimitive(prim) {
		core.LogError("primitive %s not supported by %s, drawing triangles", prim, r.backend.API())
		prim = metadata.PRIM_TRIANGLE_LIST
	}
	count, _ := metadata.CalcVertexCount(prim, numPrims)
	return prim, count, nil
}

func (r *Renderer) count(numPrims uint32) {
	r.numPrims += numPrims
	r.numDraws++
}

// validateIndices checks that every index of the bound index buffer in
// [startIdx, startIdx+numIdx) lies in [minVtxIdx, minVtxIdx+numVtx).
func (r *Renderer) validateIndices(startIdx, numIdx, minVtxIdx, numVtx uint32) error {
	ib, ok := r.tables.IdxBuf(r.current.IdxBuf)
	if !ok {
		err := fmt.Errorf("indexed draw without an index buffer: %w", core.ErrInvalidHandle)
		core.LogError(err.Error())
		return err
	}
	indices, err := ib.Indices(startIdx, numIdx)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	return checkIndices(indices, minVtxIdx, numVtx)
}

func checkIndices(indices []uint16, minVtxIdx, numVtx uint32) error {
	for i, idx := range indices {
		if uint32(idx) < minVtxIdx || uint32(idx) >= minVtxIdx+numVtx {
			err := fmt.Errorf("index %d is %d, outside [%d, %d): %w", i, idx, minVtxIdx, minVtxIdx+numVtx, core.ErrIndexOutOfRange)
			core.LogError(err.Error())
			return err
		}
	}
	return nil
}

/**
 * @brief Draws numPrims primitives from the bound vertex buffers starting
 * at vertex startVtx.
 */
func (r *Renderer) Draw(prim metadata.PrimitiveType, numPrims, startVtx uint32) error {
	prim, numVtx, err := r.prepare("draw", prim, numPrims)
	if err != nil || numPrims == 0 {
		return err
	}
	r.count(numPrims)
	return r.backend.Draw(prim, numPrims, numVtx, startVtx)
}

/**
 * @brief Draws numPrims primitives from the bound index buffer starting at
 * index startIdx. Indices are relative to startVtx and must lie in
 * [minVtxIdx, minVtxIdx+numVtx), which is checked in debug mode.
 */
func (r *Renderer) DrawIndexed(prim metadata.PrimitiveType, numPrims, startVtx, minVtxIdx, numVtx, startIdx uint32) error {
	prim, numIdx, err := r.prepare("draw indexed", prim, numPrims)
	if err != nil || numPrims == 0 {
		return err
	}
	if r.options.Debug {
		if err := r.validateIndices(startIdx, numIdx, minVtxIdx, numVtx); err != nil {
			return err
		}
	}
	r.count(numPrims)
	return r.backend.DrawIndexed(prim, numPrims, numIdx, startVtx, minVtxIdx, numVtx, startIdx)
}

// DrawUp draws vertices supplied by the caller, laid out as stream 0 of
// the bound vertex format.
func (r *Renderer) DrawUp(prim metadata.PrimitiveType, numPrims uint32, vertices []byte, stride uint32) error {
	prim, numVtx, err := r.prepare("draw up", prim, numPrims)
	if err != nil || numPrims == 0 {
		return err
	}
	if need := uint64(numVtx) * uint64(stride); uint64(len(vertices)) < need {
		err := fmt.Errorf("draw up needs %d bytes of vertices, got %d", need, len(vertices))
		core.LogError(err.Error())
		return err
	}
	r.count(numPrims)
	return r.backend.DrawUp(prim, numPrims, numVtx, vertices, stride)
}

// DrawIndexedUp draws numVtx caller supplied vertices through caller
// supplied indices.
func (r *Renderer) DrawIndexedUp(prim metadata.PrimitiveType, numPrims, numVtx uint32, indices []uint16, vertices []byte, stride uint32) error {
	prim, numIdx, err := r.prepare("draw indexed up", prim, numPrims)
	if err != nil || numPrims == 0 {
		return err
	}
	if uint32(len(indices)) < numIdx {
		err := fmt.Errorf("draw indexed up needs %d indices, got %d", numIdx, len(indices))
		core.LogError(err.Error())
		return err
	}
	if need := uint64(numVtx) * uint64(stride); uint64(len(vertices)) < need {
		err := fmt.Errorf("draw indexed up needs %d bytes of vertices, got %d", need, len(vertices))
		core.LogError(err.Error())
		return err
	}
	if r.options.Debug {
		if err := checkIndices(indices[:numIdx], 0, numVtx); err != nil {
			return err
		}
	}
	r.count(numPrims)
	return r.backend.DrawIndexedUp(prim, numPrims, numIdx, numVtx, indices[:numIdx], vertices, stride)
}

// Clear fills the bound render targets.
func (r *Renderer) Clear(flags metadata.ClearFlags, color mgl32.Vec4, z float32, stencil uint32) error {
	if r.stage != DEVICE_STAGE_RESTORED {
		return r.stageError("clear")
	}
	return r.backend.Clear(flags, color, z, stencil)
}
