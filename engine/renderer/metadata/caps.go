package metadata

import "github.com/spaghettifunk/rndr/engine/core"

type CapID int32

const (
	CAP_MAX_TEXTURE_STAGES CapID = iota
	CAP_MAX_RENDER_TARGETS
	CAP_MAX_VERTEX_STREAMS
	// Dot3 texture combiner.
	CAP_DOT3
	// D3DTA_CONSTANT per texture stage, TFACTOR otherwise.
	CAP_PER_STAGE_CONSTANT
	// GL_ARB_texture_env_combine.
	CAP_TEXTURE_ENV_COMBINE
	// Bitmask of ShadingLanguage.Bit() values.
	CAP_VS_PROFILES
	CAP_PS_PROFILES
	CAP_GEOMETRY_SHADER
	CAP_FIXED_FUNCTION
	NUM_CAPS
)

var capNames = [NUM_CAPS]string{
	"MAX_TEXTURE_STAGES",
	"MAX_RENDER_TARGETS",
	"MAX_VERTEX_STREAMS",
	"DOT3",
	"PER_STAGE_CONSTANT",
	"TEXTURE_ENV_COMBINE",
	"VS_PROFILES",
	"PS_PROFILES",
	"GEOMETRY_SHADER",
	"FIXED_FUNCTION",
}

func (c CapID) String() string {
	if c < 0 || c >= NUM_CAPS {
		return "BAD_CAP"
	}
	return capNames[c]
}

/**
 * @brief Hardware capabilities of the active device. Filled once while the
 * device is created and frozen afterwards, every unqueried cap reads as 0.
 */
type Caps struct {
	values [NUM_CAPS]uint32
	frozen bool
}

// Set stores a capability. It fails once the table has been frozen.
func (c *Caps) Set(id CapID, value uint32) bool {
	if id < 0 || id >= NUM_CAPS {
		core.LogError("cannot set capability %d: out of range", id)
		return false
	}
	if c.frozen {
		core.LogError("capability %s set after the device was created", id)
		return false
	}
	c.values[id] = value
	return true
}

func (c *Caps) SetBool(id CapID, value bool) bool {
	var v uint32
	if value {
		v = 1
	}
	return c.Set(id, v)
}

func (c *Caps) Freeze() {
	c.frozen = true
}

func (c *Caps) Frozen() bool {
	return c.frozen
}

func (c *Caps) Query(id CapID) uint32 {
	if id < 0 || id >= NUM_CAPS {
		return 0
	}
	return c.values[id]
}

func (c *Caps) Has(id CapID) bool {
	return c.Query(id) != 0
}

// SupportsLang reports whether a shader of the given type and language can
// be created on this device.
func (c *Caps) SupportsLang(t ShaderType, lang ShadingLanguage) bool {
	switch t {
	case SHADER_TYPE_VERTEX:
		return c.Query(CAP_VS_PROFILES)&lang.Bit() != 0
	case SHADER_TYPE_PIXEL:
		return c.Query(CAP_PS_PROFILES)&lang.Bit() != 0
	case SHADER_TYPE_GEOMETRY:
		return c.Has(CAP_GEOMETRY_SHADER) && lang == LANG_OGL_GLSL
	}
	return false
}

// Reset clears every value and unfreezes the table, used when the device is
// destroyed.
func (c *Caps) Reset() {
	*c = Caps{}
}
