package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rndr/engine/config"
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/registry"
	"github.com/spaghettifunk/rndr/engine/renderer/rendertest"
	"github.com/spaghettifunk/rndr/engine/resources"
)

type fixture struct {
	trace    []string
	events   []core.EventContext
	display  *rendertest.Display
	backends map[metadata.RendererAPI]*fakeBackend
	r        *Renderer
}

func glOptions() config.RendererOptions {
	opts := config.DefaultRendererOptions()
	opts.API = metadata.API_OGL
	return opts
}

// newRenderer builds a renderer over fake OGL and D3D9 backends without
// creating the device.
func newRenderer(t *testing.T, opts config.RendererOptions) *fixture {
	t.Helper()
	f := &fixture{
		display:  rendertest.NewDisplay(800, 600),
		backends: make(map[metadata.RendererAPI]*fakeBackend),
	}
	bus := core.NewEventBus()
	for code := core.EVENT_CODE_DEVICE_CREATED; code <= core.EVENT_CODE_OPTIONS_CHANGED; code++ {
		bus.Register(code, f, func(ctx core.EventContext) bool {
			f.events = append(f.events, ctx)
			return false
		})
	}
	factories := make(map[metadata.RendererAPI]BackendFactory)
	for _, api := range []metadata.RendererAPI{metadata.API_OGL, metadata.API_D3D9} {
		factories[api] = func(tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) Backend {
			b := &fakeBackend{api: api, trace: &f.trace, tables: tables}
			f.backends[api] = b
			return b
		}
	}
	r, err := New(Config{Options: opts, Display: f.display, Backends: factories, Events: bus})
	require.NoError(t, err)
	f.r = r
	return f
}

// newFixture returns a restored renderer with empty logs.
func newFixture(t *testing.T, opts config.RendererOptions) *fixture {
	t.Helper()
	f := newRenderer(t, opts)
	require.NoError(t, f.r.Create())
	f.reset()
	return f
}

func (f *fixture) backend() *fakeBackend {
	return f.backends[f.r.API()]
}

func (f *fixture) reset() {
	f.trace = nil
	f.events = nil
	for _, b := range f.backends {
		b.binds = nil
		b.draws = nil
	}
}

func (f *fixture) codes() []core.SystemEventCode {
	var out []core.SystemEventCode
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func (f *fixture) entry(t *testing.T, name string) (*traceEntry, func()) {
	t.Helper()
	e := &traceEntry{name: name, trace: &f.trace}
	id, err := f.r.Registry().Register(name, e)
	require.NoError(t, err)
	return e, func() { f.r.Registry().Release(id) }
}

func TestResolveAPI(t *testing.T) {
	both := map[metadata.RendererAPI]BackendFactory{
		metadata.API_OGL:  nil,
		metadata.API_D3D9: nil,
	}
	glOnly := map[metadata.RendererAPI]BackendFactory{metadata.API_OGL: nil}

	tests := []struct {
		name     string
		api      metadata.RendererAPI
		backends map[metadata.RendererAPI]BackendFactory
		goos     string
		want     metadata.RendererAPI
	}{
		{"auto prefers d3d9 on windows", metadata.API_AUTO, both, "windows", metadata.API_D3D9},
		{"auto prefers gl elsewhere", metadata.API_AUTO, both, "linux", metadata.API_OGL},
		{"auto falls back to gl on windows", metadata.API_AUTO, glOnly, "windows", metadata.API_OGL},
		{"explicit api", metadata.API_D3D9, both, "linux", metadata.API_D3D9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveAPI(tt.api, tt.backends, tt.goos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := resolveAPI(metadata.API_XENON, both, "linux")
	assert.ErrorIs(t, err, core.ErrUnsupportedAPI)
	_, err = resolveAPI(metadata.API_AUTO, nil, "darwin")
	assert.ErrorIs(t, err, core.ErrUnsupportedAPI)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Options: glOptions()})
	assert.Error(t, err)

	opts := glOptions()
	opts.API = metadata.API_XENON
	_, err = New(Config{Options: opts, Display: rendertest.NewDisplay(8, 8)})
	assert.ErrorIs(t, err, core.ErrUnsupportedAPI)
}

func TestCreateRestoresAndBindsDefaults(t *testing.T) {
	f := newRenderer(t, glOptions())
	f.entry(t, "entry")
	assert.Equal(t, DEVICE_STAGE_UNCREATED, f.r.Stage())

	require.NoError(t, f.r.Create())

	assert.Equal(t, DEVICE_STAGE_RESTORED, f.r.Stage())
	assert.Equal(t, []string{
		"backend create", "entry create",
		"backend restore", "entry restore",
		"bind",
	}, f.trace)

	b := f.backend()
	require.Len(t, b.binds, 1)
	assert.Equal(t, metadata.FLAG_ALL, b.binds[0].flags)
	assert.True(t, b.binds[0].force)
	assert.Equal(t, metadata.FullViewport, b.binds[0].ctx.Viewport)
	assert.Zero(t, f.r.Current().Flags)

	assert.Equal(t, []core.SystemEventCode{core.EVENT_CODE_DEVICE_CREATED, core.EVENT_CODE_DEVICE_RESTORED}, f.codes())
	assert.Equal(t, metadata.API_OGL, f.events[0].Data)
	assert.Equal(t, metadata.DispDesc{Width: 800, Height: 600}, f.events[1].Data)

	assert.ErrorIs(t, f.r.Create(), core.ErrInvalidDeviceStage)
}

func TestCreateFailureLeavesDeviceUncreated(t *testing.T) {
	f := newRenderer(t, glOptions())
	f.backends[metadata.API_OGL].createErr = errors.New("no adapter")

	assert.Error(t, f.r.Create())
	assert.Equal(t, DEVICE_STAGE_UNCREATED, f.r.Stage())
	assert.Empty(t, f.events)
}

func TestRestoreIsAllOrNothing(t *testing.T) {
	f := newRenderer(t, glOptions())
	e, _ := f.entry(t, "entry")
	boom := errors.New("out of video memory")
	e.restoreErr = boom

	err := f.r.Create()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, DEVICE_STAGE_DISPOSED, f.r.Stage())
	assert.Equal(t, []string{
		"backend create", "entry create",
		"backend restore", "entry restore",
		"backend dispose",
	}, f.trace)
	assert.Empty(t, f.backend().binds)
	assert.Equal(t, []core.SystemEventCode{core.EVENT_CODE_DEVICE_CREATED}, f.codes())

	// the next frame retries
	e.restoreErr = nil
	f.reset()
	require.NoError(t, f.r.DrawBegin())
	assert.Equal(t, DEVICE_STAGE_RESTORED, f.r.Stage())
	assert.Equal(t, []string{"backend restore", "entry restore", "bind", "begin scene"}, f.trace)
	require.NoError(t, f.r.DrawEnd())
}

func TestBackendRestoreFailureSkipsRegistry(t *testing.T) {
	f := newRenderer(t, glOptions())
	f.entry(t, "entry")
	f.backends[metadata.API_OGL].restoreErr = errors.New("lost")

	assert.Error(t, f.r.Create())
	assert.Equal(t, DEVICE_STAGE_DISPOSED, f.r.Stage())
	assert.Equal(t, []string{"backend create", "entry create", "backend restore", "backend dispose"}, f.trace)
}

func TestDestroyReportsLeaks(t *testing.T) {
	f := newFixture(t, glOptions())
	f.entry(t, "leaky texture")
	f.trace = nil

	err := f.r.Destroy()
	assert.ErrorIs(t, err, core.ErrResourceLeak)
	assert.Equal(t, DEVICE_STAGE_DESTROYED, f.r.Stage())
	assert.Equal(t, []string{
		"leaky texture dispose", "backend dispose",
		"leaky texture destroy", "backend destroy",
	}, f.trace)
	assert.Equal(t, []core.SystemEventCode{core.EVENT_CODE_DEVICE_DISPOSED, core.EVENT_CODE_DEVICE_DESTROYED}, f.codes())

	// a second destroy is a no-op
	assert.NoError(t, f.r.Destroy())
}

func TestDestroyWithoutLeaks(t *testing.T) {
	f := newFixture(t, glOptions())
	_, release := f.entry(t, "texture")
	release()

	assert.NoError(t, f.r.Destroy())
	assert.Equal(t, 0, f.r.Registry().Len())
}

func TestDestroyDropsVertexFormats(t *testing.T) {
	f := newFixture(t, glOptions())
	desc := metadata.VertexFormatDesc{}
	desc.Append(0, metadata.CLRFMT_FLOAT3, metadata.VTXSEM_COORD)
	h, err := f.r.CreateVtxFmt(desc)
	require.NoError(t, err)

	require.NoError(t, f.r.Destroy())
	assert.False(t, f.r.Tables().VtxFmts.Valid(h))
	assert.Equal(t, 0, f.r.Tables().VtxFmts.Len())
}

func TestCreateVtxFmtSharesEqualFormats(t *testing.T) {
	f := newFixture(t, glOptions())
	a := metadata.VertexFormatDesc{}
	a.Append(0, metadata.CLRFMT_FLOAT3, metadata.VTXSEM_COORD)
	b := metadata.VertexFormatDesc{}
	b.Append(0, metadata.CLRFMT_FLOAT3, metadata.VTXSEM_COORD)
	c := metadata.VertexFormatDesc{}
	c.Append(0, metadata.CLRFMT_FLOAT3, metadata.VTXSEM_COORD).Append(0, metadata.CLRFMT_FLOAT2, metadata.VTXSEM_TEX0)

	ha, err := f.r.CreateVtxFmt(a)
	require.NoError(t, err)
	hb, err := f.r.CreateVtxFmt(b)
	require.NoError(t, err)
	hc, err := f.r.CreateVtxFmt(c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
	assert.Equal(t, 2, f.backend().vtxFmts)

	bad := metadata.VertexFormatDesc{}
	bad.Append(metadata.MAX_VERTEX_STREAMS, metadata.CLRFMT_FLOAT3, metadata.VTXSEM_COORD)
	_, err = f.r.CreateVtxFmt(bad)
	assert.ErrorIs(t, err, core.ErrBadVertexFormat)
}

func TestSetContextMergesSelectively(t *testing.T) {
	f := newFixture(t, glOptions())
	b := f.backend()
	sh, err := f.r.AddShader(rendertest.NewShader(metadata.SHADER_TYPE_VERTEX, metadata.LANG_OGL_GLSL, 1))
	require.NoError(t, err)

	world := mgl32.Translate3D(1, 2, 3)
	ctx := metadata.NewRendererContext()
	ctx.SetVertexShader(sh)
	ctx.SetWorld(world)
	f.r.SetContext(ctx)

	require.Len(t, b.binds, 1)
	assert.Equal(t, metadata.FLAG_VS|metadata.FLAG_WORLD|metadata.FLAG_GROUP_STATE|metadata.FLAG_GROUP_FFP, b.binds[0].flags)
	assert.False(t, b.binds[0].force)
	assert.Equal(t, metadata.FLAG_VS|metadata.FLAG_WORLD|metadata.FLAG_GROUP_STATE|metadata.FLAG_GROUP_FFP, ctx.Flags.Derive())
	assert.Equal(t, sh, f.r.Current().Shaders[metadata.SHADER_TYPE_VERTEX])
	assert.Equal(t, world, f.r.Current().World)

	// fields that are not flagged keep their retained value
	proj := mgl32.Perspective(1, 4.0/3.0, 0.1, 100)
	next := metadata.NewRendererContext()
	next.SetProj(proj)
	f.r.SetContext(next)

	require.Len(t, b.binds, 2)
	assert.Equal(t, metadata.FLAG_PROJ|metadata.FLAG_GROUP_FFP, b.binds[1].flags)
	cur := f.r.Current()
	assert.Equal(t, sh, cur.Shaders[metadata.SHADER_TYPE_VERTEX])
	assert.Equal(t, world, cur.World)
	assert.Equal(t, proj, cur.Proj)
	assert.Equal(t, mgl32.Ident4(), cur.View)

	// nothing flagged, nothing bound
	f.r.SetContext(metadata.NewRendererContext())
	assert.Len(t, b.binds, 2)
}

func TestSetContextReusesPrebuiltContexts(t *testing.T) {
	f := newFixture(t, glOptions())
	b := f.backend()
	a, err := f.r.AddShader(rendertest.NewShader(metadata.SHADER_TYPE_VERTEX, metadata.LANG_OGL_GLSL, 1))
	require.NoError(t, err)
	other, err := f.r.AddShader(rendertest.NewShader(metadata.SHADER_TYPE_VERTEX, metadata.LANG_OGL_GLSL, 2))
	require.NoError(t, err)

	first := metadata.NewRendererContext()
	first.SetVertexShader(a)
	second := metadata.NewRendererContext()
	second.SetVertexShader(other)

	f.r.SetContext(first)
	f.r.SetContext(second)
	f.r.SetContext(first)

	require.Len(t, b.binds, 3)
	assert.Equal(t, a, b.binds[2].ctx.Shaders[metadata.SHADER_TYPE_VERTEX])
	assert.True(t, b.binds[2].flags.Has(metadata.FLAG_VS))
	assert.Equal(t, a, f.r.Current().Shaders[metadata.SHADER_TYPE_VERTEX])
	assert.True(t, first.Flags.Has(metadata.FLAG_VS))
	assert.Zero(t, f.r.Current().Flags)
}

func TestSetContextIgnoredUntilRestored(t *testing.T) {
	f := newRenderer(t, glOptions())
	ctx := metadata.NewRendererContext()
	ctx.SetWorld(mgl32.Translate3D(1, 0, 0))

	f.r.SetContext(ctx)
	assert.Empty(t, f.backend().binds)
	assert.Equal(t, mgl32.Ident4(), f.r.Current().World)
}

func TestRebindContextForces(t *testing.T) {
	f := newFixture(t, glOptions())
	f.r.RebindContext(metadata.FLAG_TEXTURES)

	b := f.backend()
	require.Len(t, b.binds, 1)
	assert.Equal(t, metadata.FLAG_TEXTURES|metadata.FLAG_GROUP_DATA, b.binds[0].flags)
	assert.True(t, b.binds[0].force)
}

func TestDestroyShaderClearsRetainedBinding(t *testing.T) {
	f := newFixture(t, glOptions())
	sh, err := f.r.AddShader(rendertest.NewShader(metadata.SHADER_TYPE_PIXEL, metadata.LANG_OGL_GLSL, 2))
	require.NoError(t, err)
	ctx := metadata.NewRendererContext()
	ctx.SetPixelShader(sh)
	f.r.SetContext(ctx)

	require.NoError(t, f.r.DestroyShader(sh))
	assert.Equal(t, []core.Handle{sh}, f.backend().destroyed)
	assert.Equal(t, []bool{true}, f.backend().resolved)
	assert.True(t, f.r.Current().Shaders[metadata.SHADER_TYPE_PIXEL].IsNull())
	assert.ErrorIs(t, f.r.DestroyShader(sh), core.ErrInvalidHandle)
}

func TestRemovingBoundResourcesUnbindsThem(t *testing.T) {
	f := newFixture(t, glOptions())
	b := f.backend()

	th, err := f.r.AddTexture(rendertest.NewTexture(4, 4, nil))
	require.NoError(t, err)
	vh, err := f.r.AddVtxBuf(rendertest.NewVtxBuf(nil, 12, 3))
	require.NoError(t, err)
	ih, err := f.r.AddIdxBuf(rendertest.NewIdxBuf(nil, 0, 1, 2))
	require.NoError(t, err)

	ctx := metadata.NewRendererContext()
	ctx.SetTexture(1, th)
	ctx.SetColorBuffer(0, metadata.SurfaceDesc{Texture: th})
	ctx.SetVtxBuf(0, vh, 0, 12)
	ctx.SetIdxBuf(ih)
	f.r.SetContext(ctx)
	require.Len(t, b.binds, 1)

	require.NoError(t, f.r.RemoveTexture(th))
	cur := f.r.Current()
	assert.True(t, cur.Textures[1].IsNull())
	assert.True(t, cur.RenderTargets.ColorBuffers[0].Texture.IsNull())
	require.Len(t, b.binds, 2)
	assert.Equal(t, metadata.FLAG_TEXTURES|metadata.FLAG_RENDER_TARGETS|metadata.FLAG_GROUP_STATE|metadata.FLAG_GROUP_DATA, b.binds[1].flags)
	assert.True(t, b.binds[1].force)

	require.NoError(t, f.r.RemoveVtxBuf(vh))
	assert.True(t, cur.VtxBufs[0].Buffer.IsNull())
	require.Len(t, b.binds, 3)
	assert.True(t, b.binds[2].flags.Has(metadata.FLAG_VTXBUFS))

	require.NoError(t, f.r.RemoveIdxBuf(ih))
	assert.True(t, cur.IdxBuf.IsNull())
	require.Len(t, b.binds, 4)
	assert.True(t, b.binds[3].flags.Has(metadata.FLAG_IDXBUF))

	// a resource the retained context does not use is dropped quietly
	other, err := f.r.AddTexture(rendertest.NewTexture(4, 4, nil))
	require.NoError(t, err)
	require.NoError(t, f.r.RemoveTexture(other))
	assert.Len(t, b.binds, 4)
}

func TestResourceTables(t *testing.T) {
	f := newFixture(t, glOptions())

	th, err := f.r.AddTexture(rendertest.NewTexture(4, 4, nil))
	require.NoError(t, err)
	vh, err := f.r.AddVtxBuf(rendertest.NewVtxBuf(nil, 12, 3))
	require.NoError(t, err)
	ih, err := f.r.AddIdxBuf(rendertest.NewIdxBuf(nil, 0, 1, 2))
	require.NoError(t, err)

	assert.True(t, f.r.Tables().Textures.Valid(th))
	require.NoError(t, f.r.RemoveTexture(th))
	require.NoError(t, f.r.RemoveVtxBuf(vh))
	require.NoError(t, f.r.RemoveIdxBuf(ih))
	assert.ErrorIs(t, f.r.RemoveTexture(th), core.ErrInvalidHandle)
	assert.False(t, f.r.Tables().IdxBufs.Valid(ih))
}

func TestClearNeedsRestoredDevice(t *testing.T) {
	f := newRenderer(t, glOptions())
	assert.ErrorIs(t, f.r.Clear(metadata.CLEAR_ALL, mgl32.Vec4{}, 1, 0), core.ErrInvalidDeviceStage)

	require.NoError(t, f.r.Create())
	f.reset()
	require.NoError(t, f.r.Clear(metadata.CLEAR_ALL, mgl32.Vec4{0, 0, 0, 1}, 1, 0))
	assert.Equal(t, []string{"clear"}, f.trace)
}

func TestChangeOptionsRestoresDevice(t *testing.T) {
	f := newFixture(t, glOptions())
	opts := f.r.Options()
	opts.VSync = false
	opts.MSAA = 4

	require.NoError(t, f.r.ChangeOptions(opts))
	assert.Equal(t, DEVICE_STAGE_RESTORED, f.r.Stage())
	assert.Equal(t, []string{"backend dispose", "backend restore", "bind"}, f.trace)
	assert.Equal(t, metadata.PresentDesc{VSync: false, MSAA: 4}, f.backend().present)
	assert.Equal(t, []core.SystemEventCode{
		core.EVENT_CODE_DEVICE_DISPOSED,
		core.EVENT_CODE_DEVICE_RESTORED,
		core.EVENT_CODE_OPTIONS_CHANGED,
	}, f.codes())
	assert.Equal(t, opts, f.r.Options())
}

func TestChangeOptionsSwitchesBackend(t *testing.T) {
	f := newFixture(t, glOptions())
	f.entry(t, "entry")
	f.reset()

	opts := f.r.Options()
	opts.API = metadata.API_D3D9
	require.NoError(t, f.r.ChangeOptions(opts))

	assert.Equal(t, metadata.API_D3D9, f.r.API())
	assert.Equal(t, DEVICE_STAGE_RESTORED, f.r.Stage())
	assert.Equal(t, []string{
		"entry dispose", "backend dispose",
		"entry destroy", "backend destroy",
		"backend create", "entry create",
		"backend restore", "entry restore",
		"bind",
	}, f.trace)
	assert.Equal(t, []core.SystemEventCode{
		core.EVENT_CODE_DEVICE_DISPOSED,
		core.EVENT_CODE_DEVICE_DESTROYED,
		core.EVENT_CODE_DEVICE_CREATED,
		core.EVENT_CODE_DEVICE_RESTORED,
		core.EVENT_CODE_OPTIONS_CHANGED,
	}, f.codes())
	assert.Len(t, f.backends[metadata.API_D3D9].binds, 1)
}

func TestChangeOptionsRejectsBadOptions(t *testing.T) {
	f := newFixture(t, glOptions())
	before := f.r.Options()

	bad := before
	bad.Width = 0
	assert.Error(t, f.r.ChangeOptions(bad))

	bad = before
	bad.API = metadata.API_XENON
	assert.ErrorIs(t, f.r.ChangeOptions(bad), core.ErrUnsupportedAPI)

	assert.Equal(t, before, f.r.Options())
	assert.Empty(t, f.trace)

	require.NoError(t, f.r.DrawBegin())
	assert.ErrorIs(t, f.r.ChangeOptions(before), core.ErrInvalidDeviceStage)
	require.NoError(t, f.r.DrawEnd())
}
