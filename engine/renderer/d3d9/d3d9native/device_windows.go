//go:build windows

// Package d3d9native implements the d3d9 Device on top of the Direct3D9
// runtime.
package d3d9native

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gonutz/d3d9"

	"github.com/spaghettifunk/rndr/engine/core"
	d3d "github.com/spaghettifunk/rndr/engine/renderer/d3d9"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

type device struct {
	d3d    *d3d9.Direct3D
	dev    *d3d9.Device
	params d3d9.PRESENT_PARAMETERS
	caps   d3d.DeviceCaps
}

func presentParams(disp metadata.DispDesc, present metadata.PresentDesc) d3d9.PRESENT_PARAMETERS {
	pp := d3d9.PRESENT_PARAMETERS{
		BackBufferWidth:  disp.Width,
		BackBufferHeight: disp.Height,
		BackBufferFormat: d3d9.FMT_A8R8G8B8,
		BackBufferCount:  1,
		SwapEffect:       d3d9.SWAPEFFECT_DISCARD,
		HDeviceWindow:    d3d9.HWND(disp.Window),
		Windowed:         1,
		// the backend owns the depth surface
		EnableAutoDepthStencil: 0,
		PresentationInterval:   d3d9.PRESENT_INTERVAL_IMMEDIATE,
	}
	if present.Fullscreen {
		pp.Windowed = 0
	}
	if present.VSync {
		pp.PresentationInterval = d3d9.PRESENT_INTERVAL_ONE
	}
	return pp
}

/**
 * @brief Creates a HAL device for the window of disp, with hardware vertex
 * processing when the adapter has it.
 */
func NewDevice(disp metadata.DispDesc, present metadata.PresentDesc) (d3d.Device, error) {
	obj, err := d3d9.Create(d3d9.SDK_VERSION)
	if err != nil {
		return nil, fmt.Errorf("d3d9.Create: %w", err)
	}

	var createFlags uint32 = d3d9.CREATE_SOFTWARE_VERTEXPROCESSING
	caps, err := obj.GetDeviceCaps(d3d9.ADAPTER_DEFAULT, d3d9.DEVTYPE_HAL)
	if err == nil && caps.DevCaps&d3d9.DEVCAPS_HWTRANSFORMANDLIGHT != 0 {
		createFlags = d3d9.CREATE_HARDWARE_VERTEXPROCESSING
	}

	dev, pp, err := obj.CreateDevice(
		d3d9.ADAPTER_DEFAULT,
		d3d9.DEVTYPE_HAL,
		d3d9.HWND(disp.Window),
		createFlags,
		presentParams(disp, present),
	)
	if err != nil {
		obj.Release()
		return nil, fmt.Errorf("d3d9.CreateDevice: %w", err)
	}

	if id, err := obj.GetAdapterIdentifier(d3d9.ADAPTER_DEFAULT, 0); err == nil {
		core.LogInfo("d3d9 adapter: %s", id.Description)
	}

	return &device{
		d3d:    obj,
		dev:    dev,
		params: pp,
		caps: d3d.DeviceCaps{
			MaxTextureBlendStages: caps.MaxTextureBlendStages,
			NumSimultaneousRTs:    caps.NumSimultaneousRTs,
			MaxStreams:            caps.MaxStreams,
			TextureOpCaps:         caps.TextureOpCaps,
			PrimitiveMiscCaps:     caps.PrimitiveMiscCaps,
			VertexShaderVersion:   caps.VertexShaderVersion,
			PixelShaderVersion:    caps.PixelShaderVersion,
		},
	}, nil
}

func (d *device) Caps() d3d.DeviceCaps {
	return d.caps
}

func (d *device) Reset(disp metadata.DispDesc, present metadata.PresentDesc) error {
	pp, err := d.dev.Reset(presentParams(disp, present))
	if err != nil {
		return deviceErr(err)
	}
	d.params = pp
	return nil
}

// deviceErr maps the lost device codes to core.ErrDeviceLost.
func deviceErr(err error) error {
	if err == nil {
		return nil
	}
	var derr d3d9.Error
	if errors.As(err, &derr) {
		switch derr.Code() {
		case d3d9.ERR_DEVICELOST, d3d9.ERR_DEVICENOTRESET:
			return fmt.Errorf("%s: %w", err, core.ErrDeviceLost)
		}
	}
	return err
}

func (d *device) TestCooperativeLevel() error {
	var err error = d.dev.TestCooperativeLevel()
	if err == nil {
		return nil
	}
	// NOTRESET means the device can be reset now
	var derr d3d9.Error
	if errors.As(err, &derr) && derr.Code() == d3d9.ERR_DEVICENOTRESET {
		return nil
	}
	return deviceErr(err)
}

func (d *device) Release() {
	d.dev.Release()
	d.d3d.Release()
}

func (d *device) SetRenderState(state, value uint32) error {
	return d.dev.SetRenderState(d3d9.RENDERSTATETYPE(state), value)
}

func (d *device) SetTextureStageState(stage, state, value uint32) error {
	return d.dev.SetTextureStageState(stage, d3d9.TEXTURESTAGESTATETYPE(state), value)
}

func (d *device) SetTransform(state uint32, m mgl32.Mat4) error {
	return d.dev.SetTransform(d3d9.TRANSFORMSTATETYPE(state), d3d9.MATRIX(m))
}

func colorValue(c mgl32.Vec4) d3d9.COLORVALUE {
	return d3d9.COLORVALUE{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func vector(v mgl32.Vec3) d3d9.VECTOR {
	return d3d9.VECTOR{X: v[0], Y: v[1], Z: v[2]}
}

func (d *device) SetLight(index uint32, l d3d.Light) error {
	return d.dev.SetLight(index, d3d9.LIGHT{
		Type:         d3d9.LIGHTTYPE(l.Type),
		Diffuse:      colorValue(l.Diffuse),
		Position:     vector(l.Position),
		Direction:    vector(l.Direction),
		Range:        l.Range,
		Attenuation0: l.Attenuation0,
	})
}

func (d *device) LightEnable(index uint32, enable bool) error {
	return d.dev.LightEnable(index, enable)
}

func (d *device) SetMaterial(m d3d.Material) error {
	return d.dev.SetMaterial(d3d9.MATERIAL{
		Diffuse:  colorValue(m.Diffuse),
		Ambient:  colorValue(m.Ambient),
		Specular: colorValue(m.Specular),
		Power:    m.Power,
	})
}

func (d *device) SetViewport(vp d3d.Viewport) error {
	return d.dev.SetViewport(d3d9.VIEWPORT{
		X: vp.X, Y: vp.Y, Width: vp.Width, Height: vp.Height, MinZ: vp.MinZ, MaxZ: vp.MaxZ,
	})
}

func (d *device) SetScissorRect(x, y, width, height uint32) error {
	return d.dev.SetScissorRect(d3d9.RECT{
		Left: int32(x), Top: int32(y), Right: int32(x + width), Bottom: int32(y + height),
	})
}

func (d *device) UnbindShader(t metadata.ShaderType) error {
	switch t {
	case metadata.SHADER_TYPE_VERTEX:
		return d.dev.SetVertexShader(nil)
	case metadata.SHADER_TYPE_PIXEL:
		return d.dev.SetPixelShader(nil)
	}
	return nil
}

func (d *device) BackBuffer() (any, error) {
	return d.dev.GetBackBuffer(0, 0, d3d9.BACKBUFFER_TYPE_MONO)
}

func (d *device) CreateDepthSurface(width, height uint32) (any, error) {
	return d.dev.CreateDepthStencilSurface(
		uint(width), uint(height),
		d3d9.FMT_D24S8,
		d3d9.MULTISAMPLE_NONE, 0,
		false, 0,
	)
}

func (d *device) SurfaceSize(surface any) (uint32, uint32) {
	s, ok := surface.(*d3d9.Surface)
	if !ok || s == nil {
		return 0, 0
	}
	desc, err := s.GetDesc()
	if err != nil {
		return 0, 0
	}
	return desc.Width, desc.Height
}

func (d *device) ReleaseSurface(surface any) {
	if s, ok := surface.(*d3d9.Surface); ok && s != nil {
		s.Release()
	}
}

func surfaceOf(surface any) *d3d9.Surface {
	s, _ := surface.(*d3d9.Surface)
	return s
}

func (d *device) SetRenderTarget(index uint32, surface any) error {
	return d.dev.SetRenderTarget(index, surfaceOf(surface))
}

func (d *device) SetDepthStencilSurface(surface any) error {
	return d.dev.SetDepthStencilSurface(surfaceOf(surface))
}

func (d *device) CreateVertexDeclaration(elements []d3d.VertexElement) (any, error) {
	native := make([]d3d9.VERTEXELEMENT, 0, len(elements)+1)
	for _, e := range elements {
		native = append(native, d3d9.VERTEXELEMENT{
			Stream:     e.Stream,
			Offset:     e.Offset,
			Type:       d3d9.DECLTYPE(e.Type),
			Method:     d3d9.DECLMETHOD(e.Method),
			Usage:      d3d9.DECLUSAGE(e.Usage),
			UsageIndex: e.UsageIndex,
		})
	}
	native = append(native, d3d9.VERTEXELEMENT{Stream: 0xFF, Type: d3d9.DECLTYPE_UNUSED})
	return d.dev.CreateVertexDeclaration(native)
}

func (d *device) ReleaseVertexDeclaration(decl any) {
	if v, ok := decl.(*d3d9.VertexDeclaration); ok && v != nil {
		v.Release()
	}
}

func (d *device) SetVertexDeclaration(decl any) error {
	v, _ := decl.(*d3d9.VertexDeclaration)
	return d.dev.SetVertexDeclaration(v)
}

func (d *device) SetStreamSource(stream uint32, buffer any, offset, stride uint32) error {
	vb, _ := buffer.(*d3d9.VertexBuffer)
	return d.dev.SetStreamSource(uint(stream), vb, uint(offset), uint(stride))
}

func (d *device) SetIndices(buffer any) error {
	ib, _ := buffer.(*d3d9.IndexBuffer)
	return d.dev.SetIndices(ib)
}

func (d *device) SetTexture(stage uint32, texture any) error {
	if tex, ok := texture.(*d3d9.Texture); ok && tex != nil {
		return d.dev.SetTexture(stage, tex)
	}
	return d.dev.SetTexture(stage, nil)
}

func (d *device) DrawPrimitive(pt, startVtx, primCount uint32) error {
	return d.dev.DrawPrimitive(d3d9.PRIMITIVETYPE(pt), uint(startVtx), uint(primCount))
}

func (d *device) DrawIndexedPrimitive(pt uint32, baseVtx int32, minIdx, numVtx, startIdx, primCount uint32) error {
	return d.dev.DrawIndexedPrimitive(d3d9.PRIMITIVETYPE(pt), int(baseVtx), uint(minIdx), uint(numVtx), uint(startIdx), uint(primCount))
}

func (d *device) DrawPrimitiveUP(pt, primCount uint32, vertices []byte, stride uint32) error {
	if len(vertices) == 0 {
		return nil
	}
	return d.dev.DrawPrimitiveUP(d3d9.PRIMITIVETYPE(pt), uint(primCount), uintptr(unsafe.Pointer(&vertices[0])), uint(stride))
}

func (d *device) DrawIndexedPrimitiveUP(pt, minIdx, numVtx, primCount uint32, indices []uint16, vertices []byte, stride uint32) error {
	if len(indices) == 0 || len(vertices) == 0 {
		return nil
	}
	return d.dev.DrawIndexedPrimitiveUP(
		d3d9.PRIMITIVETYPE(pt),
		uint(minIdx), uint(numVtx), uint(primCount),
		uintptr(unsafe.Pointer(&indices[0])), d3d9.FMT_INDEX16,
		uintptr(unsafe.Pointer(&vertices[0])), uint(stride),
	)
}

func (d *device) Clear(flags, color uint32, z float32, stencil uint32) error {
	return d.dev.Clear(nil, flags, d3d9.COLOR(color), z, stencil)
}

func (d *device) BeginScene() error {
	return d.dev.BeginScene()
}

func (d *device) EndScene() error {
	return d.dev.EndScene()
}

func (d *device) Present() error {
	var err error = d.dev.Present(nil, nil, 0, nil)
	return deviceErr(err)
}

var _ d3d.Device = (*device)(nil)
