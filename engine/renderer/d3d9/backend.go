package d3d9

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/registry"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
	"github.com/spaghettifunk/rndr/engine/resources"
)

/**
 * @brief Direct3D9 backend. The Xenon flavour runs the same binder without
 * the fixed function pass and with the Xenon primitive table.
 */
type Backend struct {
	api     metadata.RendererAPI
	factory DeviceFactory
	dev     Device
	caps    metadata.Caps

	tables   *resources.Tables
	registry *registry.Registry
	// the renderer's retained context, read only here
	current *metadata.RendererContext

	disp    metadata.DispDesc
	present metadata.PresentDesc
	// the device was reset by dispose and needs Reset before restoring
	needsReset bool

	backBuffer   any
	depthSurface any
	depthWidth   uint32
	depthHeight  uint32
	boundDepth   any
	rtWidth      uint32
	rtHeight     uint32

	// streams whose source was cleared by an Up draw
	streamDirty uint32
	indexDirty  bool

	// registry ids of the declarations created by this backend
	owned []uuid.UUID
}

func newBackend(api metadata.RendererAPI, factory DeviceFactory, tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) *Backend {
	return &Backend{
		api:      api,
		factory:  factory,
		tables:   tables,
		registry: reg,
		current:  current,
	}
}

func NewBackend(factory DeviceFactory, tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) *Backend {
	return newBackend(metadata.API_D3D9, factory, tables, reg, current)
}

func NewXenonBackend(factory DeviceFactory, tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) *Backend {
	return newBackend(metadata.API_XENON, factory, tables, reg, current)
}

func (b *Backend) API() metadata.RendererAPI {
	return b.api
}

func (b *Backend) Caps() *metadata.Caps {
	return &b.caps
}

func (b *Backend) xenon() bool {
	return b.api == metadata.API_XENON
}

func shaderModel(version uint32) uint32 {
	return version & 0xFFFF
}

func (b *Backend) DeviceCreate(disp metadata.DispDesc, present metadata.PresentDesc) error {
	if b.dev != nil {
		return fmt.Errorf("d3d9 device already created: %w", core.ErrInvalidDeviceStage)
	}
	dev, err := b.factory(disp, present)
	if err != nil {
		err = fmt.Errorf("failed to create the %s device: %w", b.api, err)
		core.LogError(err.Error())
		return err
	}
	b.dev = dev
	b.disp = disp
	b.present = present
	b.needsReset = false

	dc := dev.Caps()
	b.caps.Reset()
	b.caps.Set(metadata.CAP_MAX_TEXTURE_STAGES, min(dc.MaxTextureBlendStages, metadata.MAX_TEXTURE_STAGES))
	b.caps.Set(metadata.CAP_MAX_RENDER_TARGETS, min(max(dc.NumSimultaneousRTs, 1), metadata.MAX_COLOR_BUFFERS))
	b.caps.Set(metadata.CAP_MAX_VERTEX_STREAMS, min(dc.MaxStreams, metadata.MAX_VERTEX_STREAMS))
	b.caps.SetBool(metadata.CAP_DOT3, dc.TextureOpCaps&tokens.D3DTEXOPCAPS_DOTPRODUCT3 != 0)
	b.caps.SetBool(metadata.CAP_PER_STAGE_CONSTANT, dc.PrimitiveMiscCaps&tokens.D3DPMISCCAPS_PERSTAGECONSTANT != 0)
	b.caps.SetBool(metadata.CAP_TEXTURE_ENV_COMBINE, true)
	langs := metadata.LANG_D3D_ASM.Bit() | metadata.LANG_D3D_HLSL.Bit() | metadata.LANG_CG.Bit()
	if shaderModel(dc.VertexShaderVersion) >= 0x0101 {
		b.caps.Set(metadata.CAP_VS_PROFILES, langs)
	}
	if shaderModel(dc.PixelShaderVersion) >= 0x0101 {
		b.caps.Set(metadata.CAP_PS_PROFILES, langs)
	}
	b.caps.SetBool(metadata.CAP_FIXED_FUNCTION, !b.xenon())
	b.caps.Freeze()

	core.LogInfo("%s device created (stages=%d, targets=%d, dot3=%t)", b.api,
		b.caps.Query(metadata.CAP_MAX_TEXTURE_STAGES),
		b.caps.Query(metadata.CAP_MAX_RENDER_TARGETS),
		b.caps.Has(metadata.CAP_DOT3))
	return nil
}

func (b *Backend) DeviceRestore(disp metadata.DispDesc, present metadata.PresentDesc) error {
	if b.dev == nil {
		return fmt.Errorf("d3d9 restore without device: %w", core.ErrInvalidDeviceStage)
	}
	b.disp = disp
	b.present = present
	if b.needsReset {
		if err := b.dev.Reset(disp, present); err != nil {
			err = fmt.Errorf("failed to reset the %s device: %w", b.api, err)
			core.LogError(err.Error())
			return err
		}
		b.needsReset = false
	}

	bb, err := b.dev.BackBuffer()
	if err != nil {
		err = fmt.Errorf("failed to get the back buffer: %w", err)
		core.LogError(err.Error())
		return err
	}
	b.backBuffer = bb
	b.rtWidth, b.rtHeight = b.dev.SurfaceSize(bb)

	if err := b.createDepthSurface(b.rtWidth, b.rtHeight); err != nil {
		b.releaseSurfaces()
		return err
	}

	if !b.xenon() {
		// per vertex colors feed the fixed function lighting
		logCall("SetRenderState", b.dev.SetRenderState(tokens.D3DRS_COLORVERTEX, 1))
	}
	b.streamDirty = 0
	b.indexDirty = false
	return nil
}

func (b *Backend) createDepthSurface(width, height uint32) error {
	ds, err := b.dev.CreateDepthSurface(width, height)
	if err != nil {
		err = fmt.Errorf("failed to create a %dx%d depth surface: %w", width, height, err)
		core.LogError(err.Error())
		return err
	}
	if b.depthSurface != nil {
		b.dev.ReleaseSurface(b.depthSurface)
	}
	b.depthSurface = ds
	b.depthWidth, b.depthHeight = width, height
	b.boundDepth = nil
	return nil
}

func (b *Backend) releaseSurfaces() {
	if b.depthSurface != nil {
		b.dev.ReleaseSurface(b.depthSurface)
		b.depthSurface = nil
	}
	if b.backBuffer != nil {
		b.dev.ReleaseSurface(b.backBuffer)
		b.backBuffer = nil
	}
	b.boundDepth = nil
	b.depthWidth, b.depthHeight = 0, 0
}

func (b *Backend) DeviceDispose() {
	if b.dev == nil {
		return
	}
	b.releaseSurfaces()
	b.needsReset = true
}

func (b *Backend) DeviceDestroy() {
	if b.dev == nil {
		return
	}
	for _, id := range b.owned {
		b.registry.Unregister(id)
	}
	b.owned = nil
	b.releaseSurfaces()
	b.dev.Release()
	b.dev = nil
	b.caps.Reset()
	core.LogInfo("%s device destroyed", b.api)
}

// DeviceReady polls a lost device.
func (b *Backend) DeviceReady() bool {
	return b.dev != nil && b.dev.TestCooperativeLevel() == nil
}

// OnShaderDestroyed disables the shader and clears its device slot when the
// retained context binds it.
func (b *Backend) OnShaderDestroyed(h core.Handle) {
	if b.dev == nil || h.IsNull() {
		return
	}
	for t, bound := range b.current.Shaders {
		if bound != h {
			continue
		}
		if s, ok := b.tables.Shaders.Get(h); ok {
			s.Disable()
		}
		logCall("UnbindShader", b.dev.UnbindShader(metadata.ShaderType(t)))
	}
}

/** @brief A native vertex declaration owned by the device registry. */
type vertexDecl struct {
	backend  *Backend
	desc     metadata.VertexFormatDesc
	elements []VertexElement
	native   any
}

func (d *vertexDecl) Desc() *metadata.VertexFormatDesc {
	return &d.desc
}

func (d *vertexDecl) DeviceCreate() error {
	decl, err := d.backend.dev.CreateVertexDeclaration(d.elements)
	if err != nil {
		return err
	}
	d.native = decl
	return nil
}

func (d *vertexDecl) DeviceRestore() error { return nil }
func (d *vertexDecl) DeviceDispose()       {}

func (d *vertexDecl) DeviceDestroy() {
	if d.native != nil {
		d.backend.dev.ReleaseVertexDeclaration(d.native)
		d.native = nil
	}
}

func (b *Backend) CreateVtxFmt(desc metadata.VertexFormatDesc) (resources.VtxFmt, error) {
	elems, err := declElements(&desc)
	if err != nil {
		return nil, err
	}
	d := &vertexDecl{backend: b, desc: desc.Clone(), elements: elems}
	id, err := b.registry.Register("d3d9 vertex declaration", d)
	if err != nil {
		return nil, err
	}
	b.owned = append(b.owned, id)
	return d, nil
}
