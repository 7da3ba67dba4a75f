package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapsFreeze(t *testing.T) {
	var c Caps
	assert.Zero(t, c.Query(CAP_MAX_RENDER_TARGETS))

	assert.True(t, c.Set(CAP_MAX_RENDER_TARGETS, 4))
	assert.True(t, c.SetBool(CAP_DOT3, true))
	c.Freeze()

	assert.False(t, c.Set(CAP_MAX_RENDER_TARGETS, 1))
	assert.Equal(t, uint32(4), c.Query(CAP_MAX_RENDER_TARGETS))
	assert.True(t, c.Has(CAP_DOT3))
	assert.False(t, c.Has(CAP_PER_STAGE_CONSTANT))
	assert.Zero(t, c.Query(NUM_CAPS))

	c.Reset()
	assert.False(t, c.Frozen())
	assert.Zero(t, c.Query(CAP_MAX_RENDER_TARGETS))
}

func TestCapsSupportsLang(t *testing.T) {
	var c Caps
	c.Set(CAP_VS_PROFILES, LANG_OGL_GLSL.Bit()|LANG_OGL_ARB.Bit())
	c.Set(CAP_PS_PROFILES, LANG_OGL_GLSL.Bit())

	assert.True(t, c.SupportsLang(SHADER_TYPE_VERTEX, LANG_OGL_ARB))
	assert.False(t, c.SupportsLang(SHADER_TYPE_PIXEL, LANG_OGL_ARB))
	assert.False(t, c.SupportsLang(SHADER_TYPE_GEOMETRY, LANG_OGL_GLSL))
}
