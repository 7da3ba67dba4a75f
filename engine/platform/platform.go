package platform

import (
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

var startTime float64 = 0

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

/**
 * @brief The glfw window the renderer draws into. Implements
 * renderer.Display: framebuffer size changes are latched by the glfw
 * callback and handed out once by HandleSizeMove.
 */
type Platform struct {
	Window *glfw.Window

	width       uint32
	height      uint32
	sizeChanged bool
	glContext   bool

	// Called for every pressed key.
	KeyPressed func(key glfw.Key)
}

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

/**
 * @brief Opens the window. An OpenGL context is created only for the GL
 * backend, Direct3D renders into the bare window.
 */
func (p *Platform) Startup(applicationName string, x, y, width, height uint32, api metadata.RendererAPI) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	p.glContext = api == metadata.API_OGL
	if p.glContext {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 2)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		return err
	}
	p.Window = window
	if p.glContext {
		p.Window.MakeContextCurrent()
	}

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	fw, fh := p.Window.GetFramebufferSize()
	p.width, p.height = uint32(fw), uint32(fh)
	p.Window.Show()

	startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes the pending window events, false once the window
// was asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) DispDesc() metadata.DispDesc {
	return metadata.DispDesc{
		Width:  p.width,
		Height: p.height,
		Window: nativeWindow(p.Window),
	}
}

func (p *Platform) HandleSizeMove() bool {
	changed := p.sizeChanged
	p.sizeChanged = false
	return changed
}

// Minimized is true while the window is iconified, nothing can be drawn.
func (p *Platform) Minimized() bool {
	return p.Window.GetAttrib(glfw.Iconified) == glfw.True || p.width == 0 || p.height == 0
}

// SwapBuffers presents the GL back buffer.
func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) SetVSync(vsync bool) {
	if !p.glContext {
		return
	}
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

// SetFullscreen moves the window to the primary monitor or back to a
// window of the given size.
func (p *Platform) SetFullscreen(fullscreen bool, width, height uint32) {
	if fullscreen {
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		p.Window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	if p.Window.GetMonitor() != nil {
		p.Window.SetMonitor(nil, 100, 100, int(width), int(height), 0)
		return
	}
	if w, h := p.Window.GetSize(); uint32(w) != width || uint32(h) != height {
		p.Window.SetSize(int(width), int(height))
	}
}

func (p *Platform) SetTitle(title string) {
	p.Window.SetTitle(title)
}

func GetAbsoluteTime() float64 {
	return glfw.GetTime() - startTime
}

func (p *Platform) Sleep(ms float64) {
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Press && p.KeyPressed != nil {
		p.KeyPressed(key)
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if uint32(width) == p.width && uint32(height) == p.height {
		return
	}
	core.LogDebug("framebuffer resized to %dx%d", width, height)
	p.width, p.height = uint32(width), uint32(height)
	p.sizeChanged = true
}
