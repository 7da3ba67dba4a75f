package metadata

/**
 * @brief What the renderer needs to know about the output window. Handles
 * are opaque native values (HWND, X11 display, ...), 0 when not available.
 */
type DispDesc struct {
	Width   uint32
	Height  uint32
	Display uintptr
	Window  uintptr
	Monitor uintptr
}

func (d DispDesc) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

/** @brief Back buffer settings applied when the device is restored. */
type PresentDesc struct {
	Fullscreen bool
	VSync      bool
	// Multisample count, 0 or 1 disables multisampling.
	MSAA uint32
}

/** @brief Buffers touched by a clear. */
type ClearFlags uint32

const (
	CLEAR_COLOR ClearFlags = 1 << iota
	CLEAR_DEPTH
	CLEAR_STENCIL

	CLEAR_ALL = CLEAR_COLOR | CLEAR_DEPTH | CLEAR_STENCIL
)
