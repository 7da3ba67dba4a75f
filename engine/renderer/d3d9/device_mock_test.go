package d3d9

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/rendertest"
)

type call struct {
	name string
	args []any
}

// mockDevice records every call made by the backend.
type mockDevice struct {
	caps  DeviceCaps
	disp  metadata.DispDesc
	calls []call

	depthErr   error
	presentErr error
	// errors returned by recorded calls, by name
	failing  map[string]error
	lost     bool
	released bool
	decls    int
}

func newMockDevice(caps DeviceCaps) *mockDevice {
	return &mockDevice{caps: caps}
}

func (d *mockDevice) record(name string, args ...any) error {
	d.calls = append(d.calls, call{name, args})
	return d.failing[name]
}

func (d *mockDevice) reset() { d.calls = nil }

func (d *mockDevice) count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

func (d *mockDevice) find(name string) []call {
	var out []call
	for _, c := range d.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (d *mockDevice) names() []string {
	out := make([]string, len(d.calls))
	for i, c := range d.calls {
		out[i] = c.name
	}
	return out
}

func (d *mockDevice) Caps() DeviceCaps { return d.caps }

func (d *mockDevice) Reset(disp metadata.DispDesc, present metadata.PresentDesc) error {
	d.disp = disp
	return d.record("Reset")
}

func (d *mockDevice) TestCooperativeLevel() error {
	if d.lost {
		return core.ErrDeviceLost
	}
	return nil
}

func (d *mockDevice) Release() { d.released = true }

func (d *mockDevice) SetRenderState(state, value uint32) error {
	return d.record("SetRenderState", state, value)
}

func (d *mockDevice) SetTextureStageState(stage, state, value uint32) error {
	return d.record("SetTextureStageState", stage, state, value)
}

func (d *mockDevice) SetTransform(state uint32, m mgl32.Mat4) error {
	return d.record("SetTransform", state, m)
}

func (d *mockDevice) SetLight(index uint32, light Light) error {
	return d.record("SetLight", index, light)
}

func (d *mockDevice) LightEnable(index uint32, enable bool) error {
	return d.record("LightEnable", index, enable)
}

func (d *mockDevice) SetMaterial(m Material) error  { return d.record("SetMaterial", m) }
func (d *mockDevice) SetViewport(vp Viewport) error { return d.record("SetViewport", vp) }

func (d *mockDevice) SetScissorRect(x, y, width, height uint32) error {
	return d.record("SetScissorRect", x, y, width, height)
}

func (d *mockDevice) UnbindShader(t metadata.ShaderType) error {
	return d.record("UnbindShader", t)
}

func (d *mockDevice) BackBuffer() (any, error) {
	d.record("BackBuffer")
	return &rendertest.Surface{Name: "back", Width: d.disp.Width, Height: d.disp.Height}, nil
}

func (d *mockDevice) CreateDepthSurface(width, height uint32) (any, error) {
	d.record("CreateDepthSurface", width, height)
	if d.depthErr != nil {
		return nil, d.depthErr
	}
	return &rendertest.Surface{Name: "depth", Width: width, Height: height}, nil
}

func (d *mockDevice) SurfaceSize(surface any) (uint32, uint32) {
	if s, ok := surface.(*rendertest.Surface); ok {
		return s.Width, s.Height
	}
	return 0, 0
}

func (d *mockDevice) ReleaseSurface(surface any) { d.record("ReleaseSurface", surface) }

func (d *mockDevice) SetRenderTarget(index uint32, surface any) error {
	return d.record("SetRenderTarget", index, surface)
}

func (d *mockDevice) SetDepthStencilSurface(surface any) error {
	return d.record("SetDepthStencilSurface", surface)
}

func (d *mockDevice) CreateVertexDeclaration(elements []VertexElement) (any, error) {
	d.record("CreateVertexDeclaration", elements)
	d.decls++
	return fmt.Sprintf("decl%d", d.decls), nil
}

func (d *mockDevice) ReleaseVertexDeclaration(decl any) {
	d.record("ReleaseVertexDeclaration", decl)
	d.decls--
}

func (d *mockDevice) SetVertexDeclaration(decl any) error {
	return d.record("SetVertexDeclaration", decl)
}

func (d *mockDevice) SetStreamSource(stream uint32, buffer any, offset, stride uint32) error {
	return d.record("SetStreamSource", stream, buffer, offset, stride)
}

func (d *mockDevice) SetIndices(buffer any) error { return d.record("SetIndices", buffer) }

func (d *mockDevice) SetTexture(stage uint32, texture any) error {
	return d.record("SetTexture", stage, texture)
}

func (d *mockDevice) DrawPrimitive(pt, startVtx, primCount uint32) error {
	return d.record("DrawPrimitive", pt, startVtx, primCount)
}

func (d *mockDevice) DrawIndexedPrimitive(pt uint32, baseVtx int32, minIdx, numVtx, startIdx, primCount uint32) error {
	return d.record("DrawIndexedPrimitive", pt, baseVtx, minIdx, numVtx, startIdx, primCount)
}

func (d *mockDevice) DrawPrimitiveUP(pt, primCount uint32, vertices []byte, stride uint32) error {
	return d.record("DrawPrimitiveUP", pt, primCount, len(vertices), stride)
}

func (d *mockDevice) DrawIndexedPrimitiveUP(pt, minIdx, numVtx, primCount uint32, indices []uint16, vertices []byte, stride uint32) error {
	return d.record("DrawIndexedPrimitiveUP", pt, minIdx, numVtx, primCount)
}

func (d *mockDevice) Clear(flags, color uint32, z float32, stencil uint32) error {
	return d.record("Clear", flags, color, z, stencil)
}

func (d *mockDevice) BeginScene() error { return d.record("BeginScene") }
func (d *mockDevice) EndScene() error   { return d.record("EndScene") }

func (d *mockDevice) Present() error {
	d.record("Present")
	return d.presentErr
}

var _ Device = (*mockDevice)(nil)
