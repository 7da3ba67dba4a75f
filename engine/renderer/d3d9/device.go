package d3d9

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

/** @brief Subset of D3DCAPS9 the backend reads while creating the device. */
type DeviceCaps struct {
	MaxTextureBlendStages uint32
	NumSimultaneousRTs    uint32
	MaxStreams            uint32
	TextureOpCaps         uint32
	PrimitiveMiscCaps     uint32
	// D3DVS_VERSION / D3DPS_VERSION encoded, 0 without shader support.
	VertexShaderVersion uint32
	PixelShaderVersion  uint32
}

/** @brief D3DVERTEXELEMENT9. */
type VertexElement struct {
	Stream     uint16
	Offset     uint16
	Type       uint8
	Method     uint8
	Usage      uint8
	UsageIndex uint8
}

/** @brief D3DLIGHT9 restricted to what the fixed function pass sets. */
type Light struct {
	Type      uint32
	Diffuse   mgl32.Vec4
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Range     float32
	// constant attenuation
	Attenuation0 float32
}

/** @brief D3DMATERIAL9 restricted to what the fixed function pass sets. */
type Material struct {
	Diffuse  mgl32.Vec4
	Ambient  mgl32.Vec4
	Specular mgl32.Vec4
	Power    float32
}

type Viewport struct {
	X, Y, Width, Height uint32
	MinZ, MaxZ          float32
}

/**
 * @brief The native Direct3D9 device as seen by the backend. Surfaces,
 * declarations and buffers are opaque native objects; nil unbinds a slot.
 * Implemented by d3d9native on Windows and by recording mocks in tests.
 */
type Device interface {
	Caps() DeviceCaps
	/** @brief Resets the swap chain, only valid when every size dependent object is released. */
	Reset(disp metadata.DispDesc, present metadata.PresentDesc) error
	/** @brief nil when the device can render or be reset, core.ErrDeviceLost otherwise. */
	TestCooperativeLevel() error
	Release()

	SetRenderState(state, value uint32) error
	SetTextureStageState(stage, state, value uint32) error
	// Matrices use row vectors, the memory layout of a column major mgl32.Mat4.
	SetTransform(state uint32, m mgl32.Mat4) error
	SetLight(index uint32, light Light) error
	LightEnable(index uint32, enable bool) error
	SetMaterial(m Material) error
	SetViewport(vp Viewport) error
	SetScissorRect(x, y, width, height uint32) error
	UnbindShader(t metadata.ShaderType) error

	BackBuffer() (any, error)
	CreateDepthSurface(width, height uint32) (any, error)
	SurfaceSize(surface any) (width, height uint32)
	ReleaseSurface(surface any)
	SetRenderTarget(index uint32, surface any) error
	SetDepthStencilSurface(surface any) error

	CreateVertexDeclaration(elements []VertexElement) (any, error)
	ReleaseVertexDeclaration(decl any)
	SetVertexDeclaration(decl any) error
	SetStreamSource(stream uint32, buffer any, offset, stride uint32) error
	SetIndices(buffer any) error
	SetTexture(stage uint32, texture any) error

	DrawPrimitive(pt, startVtx, primCount uint32) error
	DrawIndexedPrimitive(pt uint32, baseVtx int32, minIdx, numVtx, startIdx, primCount uint32) error
	DrawPrimitiveUP(pt, primCount uint32, vertices []byte, stride uint32) error
	DrawIndexedPrimitiveUP(pt, minIdx, numVtx, primCount uint32, indices []uint16, vertices []byte, stride uint32) error
	Clear(flags, color uint32, z float32, stencil uint32) error
	BeginScene() error
	EndScene() error
	/** @brief Presents the back buffer, core.ErrDeviceLost when the device was lost. */
	Present() error
}

/** @brief Creates the native device for a window. */
type DeviceFactory func(disp metadata.DispDesc, present metadata.PresentDesc) (Device, error)
