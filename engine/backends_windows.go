//go:build windows

package engine

import (
	"github.com/spaghettifunk/rndr/engine/platform"
	"github.com/spaghettifunk/rndr/engine/renderer"
	"github.com/spaghettifunk/rndr/engine/renderer/d3d9/d3d9native"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/ogl/glnative"
)

func availableBackends(p *platform.Platform) map[metadata.RendererAPI]renderer.BackendFactory {
	return map[metadata.RendererAPI]renderer.BackendFactory{
		metadata.API_OGL:  renderer.OGLBackend(glnative.Factory(p.SwapBuffers)),
		metadata.API_D3D9: renderer.D3D9Backend(d3d9native.NewDevice),
	}
}
