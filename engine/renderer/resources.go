package renderer

import (
	"fmt"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/resources"
)

func addResource[T any](m *core.HandleManager[T], v T, what string) (core.Handle, error) {
	h, err := m.Add(v)
	if err != nil {
		err = fmt.Errorf("failed to add %s: %w", what, err)
		core.LogError(err.Error())
		return core.InvalidHandle, err
	}
	return h, nil
}

func removeResource[T any](m *core.HandleManager[T], h core.Handle, what string) error {
	if _, err := m.Remove(h); err != nil {
		err = fmt.Errorf("failed to remove %s %s: %w", what, h, err)
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (r *Renderer) AddShader(s resources.Shader) (core.Handle, error) {
	return addResource(r.tables.Shaders, s, "shader")
}

// DestroyShader drops the shader and every backend object built from it.
// The backend unbinds it first while it can still be resolved, then the
// retained binding is cleared.
func (r *Renderer) DestroyShader(h core.Handle) error {
	if !r.tables.Shaders.Valid(h) {
		err := fmt.Errorf("failed to remove shader %s: %w", h, core.ErrInvalidHandle)
		core.LogError(err.Error())
		return err
	}
	r.backend.OnShaderDestroyed(h)
	if err := removeResource(r.tables.Shaders, h, "shader"); err != nil {
		return err
	}
	for t := range r.current.Shaders {
		if r.current.Shaders[t] == h {
			r.current.Shaders[t] = core.InvalidHandle
		}
	}
	return nil
}

// unbindRetained rebinds the fields of the retained context that referred
// to a removed resource, so the device lets go of it too.
func (r *Renderer) unbindRetained(flags metadata.FieldFlags) {
	if flags != 0 {
		r.RebindContext(flags)
	}
}

func (r *Renderer) AddTexture(t resources.Texture) (core.Handle, error) {
	return addResource(r.tables.Textures, t, "texture")
}

// RemoveTexture drops the texture. Stages and render targets using it are
// unbound.
func (r *Renderer) RemoveTexture(h core.Handle) error {
	if err := removeResource(r.tables.Textures, h, "texture"); err != nil {
		return err
	}
	var flags metadata.FieldFlags
	cur := r.current
	for i := range cur.Textures {
		if cur.Textures[i] == h {
			cur.Textures[i] = core.InvalidHandle
			flags |= metadata.FLAG_TEXTURES
		}
	}
	rt := &cur.RenderTargets
	for i := range rt.ColorBuffers {
		if rt.ColorBuffers[i].Texture == h {
			rt.ColorBuffers[i] = metadata.SurfaceDesc{}
			flags |= metadata.FLAG_RENDER_TARGETS
		}
	}
	if rt.DepthBuffer.Texture == h {
		rt.DepthBuffer = metadata.SurfaceDesc{}
		flags |= metadata.FLAG_RENDER_TARGETS
	}
	r.unbindRetained(flags)
	return nil
}

func (r *Renderer) AddVtxBuf(b resources.VtxBuf) (core.Handle, error) {
	return addResource(r.tables.VtxBufs, b, "vertex buffer")
}

func (r *Renderer) RemoveVtxBuf(h core.Handle) error {
	if err := removeResource(r.tables.VtxBufs, h, "vertex buffer"); err != nil {
		return err
	}
	var flags metadata.FieldFlags
	for i := range r.current.VtxBufs {
		if r.current.VtxBufs[i].Buffer == h {
			r.current.VtxBufs[i] = metadata.VtxBufDesc{}
			flags |= metadata.FLAG_VTXBUFS
		}
	}
	r.unbindRetained(flags)
	return nil
}

func (r *Renderer) AddIdxBuf(b resources.IdxBuf) (core.Handle, error) {
	return addResource(r.tables.IdxBufs, b, "index buffer")
}

func (r *Renderer) RemoveIdxBuf(h core.Handle) error {
	if err := removeResource(r.tables.IdxBufs, h, "index buffer"); err != nil {
		return err
	}
	if r.current.IdxBuf == h {
		r.current.IdxBuf = core.InvalidHandle
		r.unbindRetained(metadata.FLAG_IDXBUF)
	}
	return nil
}

/**
 * @brief Returns the vertex format for desc, building it on the backend
 * the first time. Equal descriptors share one handle.
 */
func (r *Renderer) CreateVtxFmt(desc metadata.VertexFormatDesc) (core.Handle, error) {
	if err := desc.Validate(); err != nil {
		err = fmt.Errorf("vertex format: %w", err)
		core.LogError(err.Error())
		return core.InvalidHandle, err
	}
	if h := r.tables.VtxFmts.FindIf(func(f resources.VtxFmt) bool {
		return f.Desc().Equal(&desc)
	}); !h.IsNull() {
		return h, nil
	}
	f, err := r.backend.CreateVtxFmt(desc)
	if err != nil {
		err = fmt.Errorf("failed to create vertex format: %w", err)
		core.LogError(err.Error())
		return core.InvalidHandle, err
	}
	return addResource(r.tables.VtxFmts, f, "vertex format")
}
