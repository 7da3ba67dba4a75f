//go:build !windows

package platform

import "github.com/go-gl/glfw/v3.3/glfw"

// GL backends only talk to the current context, no native handle needed.
func nativeWindow(w *glfw.Window) uintptr {
	return 0
}
