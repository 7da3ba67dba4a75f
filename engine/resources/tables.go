package resources

import (
	"github.com/spaghettifunk/rndr/engine/core"
)

/** @brief Capacities of the resource tables. */
type TablesConfig struct {
	MaxShaders  int
	MaxTextures int
	MaxVtxBufs  int
	MaxIdxBufs  int
	MaxVtxFmts  int
}

func DefaultTablesConfig() TablesConfig {
	return TablesConfig{
		MaxShaders:  256,
		MaxTextures: 1024,
		MaxVtxBufs:  1024,
		MaxIdxBufs:  1024,
		MaxVtxFmts:  64,
	}
}

/**
 * @brief The handle tables a renderer context refers to. Owned by the
 * renderer and handed to the backend that binds the handles.
 */
type Tables struct {
	Shaders  *core.HandleManager[Shader]
	Textures *core.HandleManager[Texture]
	VtxBufs  *core.HandleManager[VtxBuf]
	IdxBufs  *core.HandleManager[IdxBuf]
	VtxFmts  *core.HandleManager[VtxFmt]
}

func NewTables(config TablesConfig) *Tables {
	return &Tables{
		Shaders:  core.NewHandleManager[Shader](config.MaxShaders),
		Textures: core.NewHandleManager[Texture](config.MaxTextures),
		VtxBufs:  core.NewHandleManager[VtxBuf](config.MaxVtxBufs),
		IdxBufs:  core.NewHandleManager[IdxBuf](config.MaxIdxBufs),
		VtxFmts:  core.NewHandleManager[VtxFmt](config.MaxVtxFmts),
	}
}

// resolve returns the value behind h. The null handle resolves to nothing
// silently, a stale or foreign handle is reported.
func resolve[T any](m *core.HandleManager[T], h core.Handle, what string) (T, bool) {
	var zero T
	if h.IsNull() {
		return zero, false
	}
	v, ok := m.Get(h)
	if !ok {
		core.LogError("%s %s: %s", what, h, core.ErrInvalidHandle)
		return zero, false
	}
	return v, true
}

func (t *Tables) Shader(h core.Handle) (Shader, bool) {
	return resolve(t.Shaders, h, "shader")
}

func (t *Tables) Texture(h core.Handle) (Texture, bool) {
	return resolve(t.Textures, h, "texture")
}

func (t *Tables) VtxBuf(h core.Handle) (VtxBuf, bool) {
	return resolve(t.VtxBufs, h, "vertex buffer")
}

func (t *Tables) IdxBuf(h core.Handle) (IdxBuf, bool) {
	return resolve(t.IdxBufs, h, "index buffer")
}

func (t *Tables) VtxFmt(h core.Handle) (VtxFmt, bool) {
	return resolve(t.VtxFmts, h, "vertex format")
}
