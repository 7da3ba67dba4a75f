package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/d3d9"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/ogl"
	"github.com/spaghettifunk/rndr/engine/renderer/registry"
	"github.com/spaghettifunk/rndr/engine/resources"
)

/**
 * @brief A native graphics API. The set is closed: OpenGL, Direct3D9 and
 * Direct3D9 on Xenon, each selected by a metadata.RendererAPI.
 */
type Backend interface {
	API() metadata.RendererAPI
	/** @brief The capability table, frozen once the device exists. */
	Caps() *metadata.Caps

	DeviceCreate(disp metadata.DispDesc, present metadata.PresentDesc) error
	DeviceRestore(disp metadata.DispDesc, present metadata.PresentDesc) error
	DeviceDispose()
	DeviceDestroy()
	/** @brief Whether a disposed device can be restored. */
	DeviceReady() bool

	/**
	 * @brief Applies the flagged fields of next, diffing against the
	 * retained context unless force is set. Never fails, bad handles are
	 * logged and leave their slot unbound.
	 */
	BindContext(next *metadata.RendererContext, flags metadata.FieldFlags, force bool)

	SupportsPrimitive(prim metadata.PrimitiveType) bool
	Draw(prim metadata.PrimitiveType, numPrims, numVtx, startVtx uint32) error
	DrawIndexed(prim metadata.PrimitiveType, numPrims, numIdx, startVtx, minVtxIdx, numVtx, startIdx uint32) error
	DrawUp(prim metadata.PrimitiveType, numPrims, numVtx uint32, vertices []byte, stride uint32) error
	DrawIndexedUp(prim metadata.PrimitiveType, numPrims, numIdx, numVtx uint32, indices []uint16, vertices []byte, stride uint32) error
	Clear(flags metadata.ClearFlags, color mgl32.Vec4, z float32, stencil uint32) error
	BeginScene() error
	/** @brief Ends the scene and presents it, core.ErrDeviceLost when the device was lost. */
	EndScene() error

	CreateVtxFmt(desc metadata.VertexFormatDesc) (resources.VtxFmt, error)
	/**
	 * @brief Called while h still resolves, before the shader leaves the
	 * tables. A shader bound in the retained context is unbound from the
	 * device.
	 */
	OnShaderDestroyed(h core.Handle)
}

/** @brief The window the renderer draws into. */
type Display interface {
	DispDesc() metadata.DispDesc
	/** @brief Processes pending size and move changes, true when the size changed. */
	HandleSizeMove() bool
}

/**
 * @brief Builds a backend bound to the renderer's tables, registry and
 * retained context.
 */
type BackendFactory func(tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) Backend

func OGLBackend(factory ogl.DeviceFactory) BackendFactory {
	return func(tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) Backend {
		return ogl.NewBackend(factory, tables, reg, current)
	}
}

func D3D9Backend(factory d3d9.DeviceFactory) BackendFactory {
	return func(tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) Backend {
		return d3d9.NewBackend(factory, tables, reg, current)
	}
}

func XenonBackend(factory d3d9.DeviceFactory) BackendFactory {
	return func(tables *resources.Tables, reg *registry.Registry, current *metadata.RendererContext) Backend {
		return d3d9.NewXenonBackend(factory, tables, reg, current)
	}
}

var (
	_ Backend = (*ogl.Backend)(nil)
	_ Backend = (*d3d9.Backend)(nil)
)
