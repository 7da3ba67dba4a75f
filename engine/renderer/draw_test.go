package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/rendertest"
)

func TestDrawBeginRejectsReentry(t *testing.T) {
	f := newFixture(t, glOptions())

	require.NoError(t, f.r.DrawBegin())
	require.NoError(t, f.r.Draw(metadata.PRIM_TRIANGLE_LIST, 10, 0))
	assert.Equal(t, uint32(10), f.r.NumPrims())
	assert.Equal(t, uint32(1), f.r.NumDraws())

	assert.ErrorIs(t, f.r.DrawBegin(), core.ErrDrawReentrant)
	assert.Equal(t, uint32(10), f.r.NumPrims())
	assert.Equal(t, uint32(1), f.r.NumDraws())

	require.NoError(t, f.r.DrawEnd())
	assert.Equal(t, []string{"begin scene", "end scene"}, f.trace)
}

func TestDrawOutsideFrame(t *testing.T) {
	f := newFixture(t, glOptions())

	assert.ErrorIs(t, f.r.Draw(metadata.PRIM_TRIANGLE_LIST, 1, 0), core.ErrDrawNotBegun)
	assert.ErrorIs(t, f.r.DrawIndexed(metadata.PRIM_TRIANGLE_LIST, 1, 0, 0, 3, 0), core.ErrDrawNotBegun)
	assert.ErrorIs(t, f.r.DrawUp(metadata.PRIM_TRIANGLE_LIST, 1, make([]byte, 36), 12), core.ErrDrawNotBegun)
	assert.ErrorIs(t, f.r.DrawEnd(), core.ErrDrawNotBegun)
	assert.Empty(t, f.backend().draws)
}

func TestDrawPrimitiveCounts(t *testing.T) {
	f := newFixture(t, glOptions())
	b := f.backend()
	require.NoError(t, f.r.DrawBegin())

	require.NoError(t, f.r.Draw(metadata.PRIM_TRIANGLE_LIST, 10, 0))
	require.NoError(t, f.r.Draw(metadata.PRIM_TRIANGLE_STRIP, 10, 4))
	require.NoError(t, f.r.Draw(metadata.PRIM_LINE_LIST, 0, 0))

	assert.Equal(t, []drawCall{
		{"draw", metadata.PRIM_TRIANGLE_LIST, 10, 30, 0},
		{"draw", metadata.PRIM_TRIANGLE_STRIP, 10, 12, 4},
	}, b.draws)
	assert.Equal(t, uint32(20), f.r.NumPrims())
	assert.Equal(t, uint32(2), f.r.NumDraws())
	require.NoError(t, f.r.DrawEnd())
}

func TestUnsupportedPrimitiveFallsBackToTriangles(t *testing.T) {
	f := newFixture(t, glOptions())
	b := f.backend()
	b.unsupported = map[metadata.PrimitiveType]bool{metadata.PRIM_QUAD_LIST: true}

	require.NoError(t, f.r.DrawBegin())
	require.NoError(t, f.r.Draw(metadata.PRIM_QUAD_LIST, 2, 0))
	require.NoError(t, f.r.DrawEnd())

	assert.Equal(t, []drawCall{{"draw", metadata.PRIM_TRIANGLE_LIST, 2, 6, 0}}, b.draws)
}

func bindIndices(t *testing.T, f *fixture, indices ...uint16) {
	t.Helper()
	h, err := f.r.AddIdxBuf(rendertest.NewIdxBuf(nil, indices...))
	require.NoError(t, err)
	ctx := metadata.NewRendererContext()
	ctx.SetIdxBuf(h)
	f.r.SetContext(ctx)
}

func TestDebugIndexValidation(t *testing.T) {
	opts := glOptions()
	opts.Debug = true
	f := newFixture(t, opts)
	bindIndices(t, f, 0, 1, 2, 5)

	require.NoError(t, f.r.DrawBegin())
	require.NoError(t, f.r.DrawIndexed(metadata.PRIM_TRIANGLE_LIST, 1, 0, 0, 3, 0))
	assert.ErrorIs(t, f.r.DrawIndexed(metadata.PRIM_TRIANGLE_LIST, 1, 0, 0, 3, 1), core.ErrIndexOutOfRange)
	// past the end of the buffer
	assert.ErrorIs(t, f.r.DrawIndexed(metadata.PRIM_TRIANGLE_LIST, 2, 0, 0, 6, 0), core.ErrIndexOutOfRange)
	require.NoError(t, f.r.DrawEnd())

	assert.Len(t, f.backend().draws, 1)
	assert.Equal(t, uint32(1), f.r.NumDraws())
}

func TestIndexValidationOnlyInDebug(t *testing.T) {
	f := newFixture(t, glOptions())
	bindIndices(t, f, 0, 1, 2, 5)

	require.NoError(t, f.r.DrawBegin())
	require.NoError(t, f.r.DrawIndexed(metadata.PRIM_TRIANGLE_LIST, 1, 0, 0, 3, 1))
	require.NoError(t, f.r.DrawEnd())

	assert.Equal(t, []drawCall{{"indexed", metadata.PRIM_TRIANGLE_LIST, 1, 3, 0}}, f.backend().draws)
}

func TestDrawUpChecksSizes(t *testing.T) {
	opts := glOptions()
	opts.Debug = true
	f := newFixture(t, opts)
	b := f.backend()
	require.NoError(t, f.r.DrawBegin())

	assert.Error(t, f.r.DrawUp(metadata.PRIM_TRIANGLE_LIST, 1, make([]byte, 24), 12))
	require.NoError(t, f.r.DrawUp(metadata.PRIM_TRIANGLE_LIST, 1, make([]byte, 36), 12))

	assert.Error(t, f.r.DrawIndexedUp(metadata.PRIM_TRIANGLE_LIST, 1, 3, []uint16{0, 1}, make([]byte, 36), 12))
	assert.ErrorIs(t, f.r.DrawIndexedUp(metadata.PRIM_TRIANGLE_LIST, 1, 3, []uint16{0, 1, 3}, make([]byte, 36), 12), core.ErrIndexOutOfRange)
	require.NoError(t, f.r.DrawIndexedUp(metadata.PRIM_TRIANGLE_LIST, 1, 3, []uint16{0, 1, 2}, make([]byte, 36), 12))
	require.NoError(t, f.r.DrawEnd())

	assert.Equal(t, []drawCall{
		{"up", metadata.PRIM_TRIANGLE_LIST, 1, 3, 0},
		{"indexed up", metadata.PRIM_TRIANGLE_LIST, 1, 3, 0},
	}, b.draws)
}

func TestDrawUpSizeDoesNotWrap(t *testing.T) {
	f := newFixture(t, glOptions())
	require.NoError(t, f.r.DrawBegin())

	// 2 * 2^31 bytes does not fit 32 bits
	err := f.r.DrawIndexedUp(metadata.PRIM_TRIANGLE_LIST, 1, 2, []uint16{0, 1, 0}, make([]byte, 16), 1<<31)
	assert.Error(t, err)
	assert.Empty(t, f.backend().draws)
	require.NoError(t, f.r.DrawEnd())
}

func TestDrawEndUpdatesMetrics(t *testing.T) {
	f := newFixture(t, glOptions())

	require.NoError(t, f.r.DrawBegin())
	require.NoError(t, f.r.Draw(metadata.PRIM_TRIANGLE_LIST, 10, 0))
	require.NoError(t, f.r.Draw(metadata.PRIM_TRIANGLE_LIST, 2, 0))
	require.NoError(t, f.r.DrawEnd())

	m := f.r.Metrics()
	assert.Equal(t, 1, m.Frames())
	assert.Equal(t, uint32(12), m.Last().NumPrims)
	assert.Equal(t, uint32(2), m.Last().NumDraws)
	assert.InDelta(t, 12, m.AvgPrims, 1e-9)
}

func TestDeviceLostDisposesUntilReady(t *testing.T) {
	f := newFixture(t, glOptions())
	b := f.backend()

	b.endSceneErr = core.ErrDeviceLost
	require.NoError(t, f.r.DrawBegin())
	require.NoError(t, f.r.DrawEnd())
	assert.Equal(t, DEVICE_STAGE_DISPOSED, f.r.Stage())

	b.endSceneErr = nil
	b.notReady = true
	assert.ErrorIs(t, f.r.DrawBegin(), core.ErrDeviceLost)
	assert.Equal(t, DEVICE_STAGE_DISPOSED, f.r.Stage())

	b.notReady = false
	f.reset()
	require.NoError(t, f.r.DrawBegin())
	assert.Equal(t, DEVICE_STAGE_RESTORED, f.r.Stage())
	assert.Equal(t, []string{"backend restore", "bind", "begin scene"}, f.trace)
	require.NoError(t, f.r.DrawEnd())
}

func TestResizeRestoresDevice(t *testing.T) {
	f := newFixture(t, glOptions())
	f.display.Resize(1024, 768)

	require.NoError(t, f.r.DrawBegin())
	assert.Equal(t, []string{"backend dispose", "backend restore", "bind", "begin scene"}, f.trace)
	assert.Equal(t, []core.SystemEventCode{
		core.EVENT_CODE_RESIZED,
		core.EVENT_CODE_DEVICE_DISPOSED,
		core.EVENT_CODE_DEVICE_RESTORED,
	}, f.codes())
	assert.Equal(t, [2]uint32{1024, 768}, f.events[0].Data)
	assert.Equal(t, metadata.DispDesc{Width: 1024, Height: 768}, f.events[2].Data)
	require.NoError(t, f.r.DrawEnd())

	// no change, no restore
	f.reset()
	require.NoError(t, f.r.DrawBegin())
	assert.Equal(t, []string{"begin scene"}, f.trace)
	require.NoError(t, f.r.DrawEnd())
}

func TestSizeMoveHandlerMayChangeOptions(t *testing.T) {
	f := newFixture(t, glOptions())
	f.display.OnSizeMove = func() {
		opts := f.r.Options()
		opts.Fullscreen = true
		require.NoError(t, f.r.ChangeOptions(opts))
	}

	require.NoError(t, f.r.DrawBegin())
	assert.True(t, f.backend().present.Fullscreen)
	require.NoError(t, f.r.DrawEnd())
}
