package ogl

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/registry"
	"github.com/spaghettifunk/rndr/engine/resources"
)

/**
 * @brief OpenGL backend. Fixed function rendering goes through the
 * compatibility profile, GLSL shaders are linked into programs cached per
 * shader combination.
 */
type Backend struct {
	factory DeviceFactory
	dev     Device
	info    DeviceInfo
	caps    metadata.Caps

	tables   *resources.Tables
	registry *registry.Registry
	// the renderer's retained context, read only here
	current *metadata.RendererContext

	disp    metadata.DispDesc
	present metadata.PresentDesc

	programs *programCache
	stream   *streamBuffers
	// registry ids of the entries created by this backend
	owned []uuid.UUID

	boundProgram uint32
	// generic attributes instead of fixed function arrays
	attribMode bool

	fbo          uint32
	fboColor     [metadata.MAX_COLOR_BUFFERS]Surface
	fboDepth     Surface
	depthRB      uint32
	depthWidth   uint32
	depthHeight  uint32
	boundDepthRB uint32
	usingFBO     bool
	rtWidth      uint32
	rtHeight     uint32

	// arrays enabled for the bound vertex format
	enabledArrays []metadata.VertexElement
	startVtx      uint32
	streamDirty   uint32
	indexDirty    bool
	combineMode   [metadata.MAX_TEXTURE_STAGES]bool
	// units with texturing switched off by the stage pass
	unitOff [metadata.MAX_TEXTURE_STAGES]bool
}

func NewBackend(factory DeviceFactory, tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) *Backend {
	return &Backend{
		factory:  factory,
		tables:   tables,
		registry: reg,
		current:  current,
	}
}

func (b *Backend) API() metadata.RendererAPI {
	return metadata.API_OGL
}

func (b *Backend) Caps() *metadata.Caps {
	return &b.caps
}

func (b *Backend) DeviceCreate(disp metadata.DispDesc, present metadata.PresentDesc) error {
	if b.dev != nil {
		return fmt.Errorf("gl device already created: %w", core.ErrInvalidDeviceStage)
	}
	dev, err := b.factory(disp, present)
	if err != nil {
		err = fmt.Errorf("failed to create the gl device: %w", err)
		core.LogError(err.Error())
		return err
	}
	b.dev = dev
	b.info = dev.Info()
	b.disp = disp
	b.present = present

	b.caps.Reset()
	b.caps.Set(metadata.CAP_MAX_TEXTURE_STAGES, min(max(b.info.MaxTextureUnits, 1), metadata.MAX_TEXTURE_STAGES))
	rts := uint32(1)
	if b.info.FramebufferObject {
		rts = min(max(b.info.MaxDrawBuffers, 1), metadata.MAX_COLOR_BUFFERS)
	}
	b.caps.Set(metadata.CAP_MAX_RENDER_TARGETS, rts)
	b.caps.Set(metadata.CAP_MAX_VERTEX_STREAMS, metadata.MAX_VERTEX_STREAMS)
	b.caps.SetBool(metadata.CAP_DOT3, b.info.Dot3)
	// GL_TEXTURE_ENV_COLOR is per unit
	b.caps.SetBool(metadata.CAP_PER_STAGE_CONSTANT, true)
	b.caps.SetBool(metadata.CAP_TEXTURE_ENV_COMBINE, b.info.Combine)
	if b.info.GLSL {
		b.caps.Set(metadata.CAP_VS_PROFILES, metadata.LANG_OGL_GLSL.Bit())
		b.caps.Set(metadata.CAP_PS_PROFILES, metadata.LANG_OGL_GLSL.Bit())
	}
	b.caps.SetBool(metadata.CAP_GEOMETRY_SHADER, b.info.GeometryShader && b.info.GLSL)
	b.caps.SetBool(metadata.CAP_FIXED_FUNCTION, true)
	b.caps.Freeze()

	b.programs = newProgramCache(b)
	b.stream = &streamBuffers{backend: b}
	for _, e := range []struct {
		name  string
		entry registry.Entry
	}{
		{"gl program cache", b.programs},
		{"gl stream buffers", b.stream},
	} {
		id, err := b.registry.Register(e.name, e.entry)
		if err != nil {
			b.DeviceDestroy()
			return err
		}
		b.owned = append(b.owned, id)
	}

	core.LogInfo("gl device created: %s (%s), units=%d, targets=%d, combine=%t, glsl=%t",
		b.info.Version, b.info.Renderer,
		b.caps.Query(metadata.CAP_MAX_TEXTURE_STAGES),
		b.caps.Query(metadata.CAP_MAX_RENDER_TARGETS),
		b.info.Combine, b.info.GLSL)
	return nil
}

func (b *Backend) DeviceRestore(disp metadata.DispDesc, present metadata.PresentDesc) error {
	if b.dev == nil {
		return fmt.Errorf("gl restore without device: %w", core.ErrInvalidDeviceStage)
	}
	b.disp = disp
	b.present = present
	b.rtWidth, b.rtHeight = disp.Width, disp.Height

	if b.info.FramebufferObject {
		b.fbo = b.dev.CreateFramebuffer()
		if b.fbo == 0 {
			err := fmt.Errorf("failed to create the render target framebuffer")
			core.LogError(err.Error())
			return err
		}
	}
	b.dev.BindFramebuffer(0)
	b.usingFBO = false

	b.boundProgram = 0
	b.attribMode = false
	b.enabledArrays = nil
	b.startVtx = 0
	b.streamDirty = 0
	b.indexDirty = false
	b.combineMode = [metadata.MAX_TEXTURE_STAGES]bool{}
	b.unitOff = [metadata.MAX_TEXTURE_STAGES]bool{}
	return nil
}

func (b *Backend) DeviceDispose() {
	if b.dev == nil {
		return
	}
	b.dev.BindFramebuffer(0)
	if b.depthRB != 0 {
		b.dev.DeleteRenderbuffer(b.depthRB)
		b.depthRB = 0
	}
	if b.fbo != 0 {
		b.dev.DeleteFramebuffer(b.fbo)
		b.fbo = 0
	}
	b.fboColor = [metadata.MAX_COLOR_BUFFERS]Surface{}
	b.fboDepth = Surface{}
	b.boundDepthRB = 0
	b.depthWidth, b.depthHeight = 0, 0
	b.usingFBO = false
}

func (b *Backend) DeviceDestroy() {
	if b.dev == nil {
		return
	}
	for _, id := range b.owned {
		b.registry.Unregister(id)
	}
	b.owned = nil
	if b.programs != nil {
		b.programs.DeviceDestroy()
	}
	if b.stream != nil {
		b.stream.DeviceDestroy()
	}
	b.DeviceDispose()
	b.dev.Release()
	b.dev = nil
	b.caps.Reset()
	core.LogInfo("gl device destroyed")
}

// DeviceReady is true once created, GL contexts are never lost.
func (b *Backend) DeviceReady() bool {
	return b.dev != nil
}

// OnShaderDestroyed disables the shader when the retained context binds it
// and drops the linked programs that use it.
func (b *Backend) OnShaderDestroyed(h core.Handle) {
	if b.programs == nil || h.IsNull() {
		return
	}
	for _, bound := range b.current.Shaders {
		if bound != h {
			continue
		}
		if s, ok := b.tables.Shaders.Get(h); ok {
			s.Disable()
		}
	}
	if !b.programs.evict(h, b.boundProgram) {
		return
	}
	// the shaders left in the retained context keep running
	key := programKey(b.current.Shaders)
	for t := range key {
		if key[t] == h {
			key[t] = core.InvalidHandle
		}
	}
	program, err := b.programs.get(b.programs.glslKey(key))
	if err != nil {
		core.LogError(err.Error())
		program = 0
	}
	b.dev.UseProgram(program)
	b.boundProgram = program
}

/** @brief Vertex formats need no native object on GL. */
type vtxFmt struct {
	desc metadata.VertexFormatDesc
}

func (f *vtxFmt) Desc() *metadata.VertexFormatDesc {
	return &f.desc
}

func (b *Backend) CreateVtxFmt(desc metadata.VertexFormatDesc) (resources.VtxFmt, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &vtxFmt{desc: desc.Clone()}, nil
}
