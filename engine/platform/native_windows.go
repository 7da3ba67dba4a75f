//go:build windows

package platform

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// nativeWindow returns the HWND Direct3D renders into.
func nativeWindow(w *glfw.Window) uintptr {
	if w == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(w.GetWin32Window()))
}
