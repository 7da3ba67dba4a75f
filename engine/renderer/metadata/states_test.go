package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderStateBlockSetOverwrites(t *testing.T) {
	var d RenderStateBlockDesc
	assert.True(t, d.Empty())
	assert.True(t, d.SetValue(RS_CULL_MODE, RSV_CULL_CW))
	assert.True(t, d.SetValue(RS_CULL_MODE, RSV_CULL_NONE))

	v, ok := d.Get(RS_CULL_MODE)
	assert.True(t, ok)
	assert.Equal(t, int32(RSV_CULL_NONE), v)
	assert.False(t, d.IsSet(RS_FOG))
	assert.Equal(t, int32(42), d.GetOr(RS_ALPHA_REF, 42))
}

func TestRenderStateBlockRejectsWrongGroup(t *testing.T) {
	var d RenderStateBlockDesc
	assert.False(t, d.SetValue(RS_DEPTH_FUNC, RSV_BLEND_ONE))
	assert.False(t, d.Set(RS_COLOR0_WRITE, 0x10))
	assert.False(t, d.Set(RS_INVALID, 0))
	assert.True(t, d.Empty())
}

func TestRenderStateBlockEachOrder(t *testing.T) {
	var d RenderStateBlockDesc
	d.SetBool(RS_LIGHTING, true)
	d.SetBool(RS_ALPHA_TEST, false)

	var got []RenderState
	d.Each(func(s RenderState, _ int32) { got = append(got, s) })
	assert.Equal(t, []RenderState{RS_ALPHA_TEST, RS_LIGHTING}, got)
}

func TestTextureStateBlock(t *testing.T) {
	var d TextureStateBlockDesc
	assert.Zero(t, d.NumStages())

	assert.True(t, d.Set(2, TS_COLOROP, TSV_DOT3))
	assert.Equal(t, uint32(3), d.NumStages())
	// operations are not arguments
	assert.False(t, d.Set(0, TS_COLORARG0, TSV_ADD))
	assert.False(t, d.Set(MAX_TEXTURE_STAGES, TS_COLOROP, TSV_ADD))

	assert.Equal(t, TSV_DOT3, d.GetOrDefault(2, TS_COLOROP))
	assert.Equal(t, TSV_CURRENT_ALPHA, d.GetOrDefault(2, TS_ALPHAARG1))

	_, ok := d.Constant(1)
	assert.False(t, ok)
	d.SetConstant(1, 0xff00ff00)
	c, ok := d.Constant(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(0xff00ff00), c)
}

func TestTextureStateBlockMerge(t *testing.T) {
	var cur TextureStateBlockDesc
	cur.ResetToDefault()
	cur.Set(1, TS_COLOROP, TSV_ADD)

	var next TextureStateBlockDesc
	next.Set(0, TS_COLOROP, TSV_ARG0)

	cur.Merge(&next)
	assert.Equal(t, uint32(1), cur.NumStages())
	assert.Equal(t, TSV_ARG0, cur.GetOrDefault(0, TS_COLOROP))
	assert.Equal(t, TSV_TEXTURE_COLOR, cur.GetOrDefault(0, TS_COLORARG0))
}
