package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/rndr/engine/config"
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/platform"
	"github.com/spaghettifunk/rndr/engine/renderer"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	quit         atomic.Bool
	platform     *platform.Platform
	events       *core.EventBus
	backends     map[metadata.RendererAPI]renderer.BackendFactory
	renderer     *renderer.Renderer
	options      config.RendererOptions
	watcher      *config.OptionsWatcher
	lastTime     float64
}

func New(g *Game) (*Engine, error) {
	opts := config.DefaultRendererOptions()
	if path := g.ApplicationConfig.OptionsPath; path != "" {
		loaded, err := config.LoadOrCreate(path)
		if err != nil {
			core.LogWarn("using the default renderer options: %s", err)
		} else {
			opts = loaded
		}
	}
	opts.ApplyLogLevel()

	p := platform.New()
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		events:       core.NewEventBus(),
		backends:     availableBackends(p),
		options:      opts,
		isRunning:    true,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)
	e.events.Register(core.EVENT_CODE_DEVICE_RESTORED, e, e.onRestored)

	api, err := renderer.ResolveAPI(e.options.API, e.backends)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	cfg := e.gameInstance.ApplicationConfig
	if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, e.options.Width, e.options.Height, api); err != nil {
		return err
	}
	e.platform.KeyPressed = e.onKey
	if e.options.Fullscreen {
		e.platform.SetFullscreen(true, e.options.Width, e.options.Height)
	}

	r, err := renderer.New(renderer.Config{
		Options:  e.options,
		Display:  e.platform,
		Backends: e.backends,
		Events:   e.events,
	})
	if err != nil {
		return err
	}
	if err := r.Create(); err != nil {
		return err
	}
	e.renderer = r
	e.gameInstance.Renderer = r

	if cfg.OptionsPath != "" {
		w, err := config.NewOptionsWatcher(cfg.OptionsPath)
		if err != nil {
			core.LogWarn("options will not be reloaded: %s", err)
		} else {
			e.watcher = w
		}
	}

	if err := e.gameInstance.FnInitialize(); err != nil {
		return err
	}
	disp := e.platform.DispDesc()
	if err := e.gameInstance.FnOnResize(disp.Width, disp.Height); err != nil {
		return err
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.lastTime = platform.GetAbsoluteTime()

	var targetFrameSeconds float64 = 1.0 / 60.0
	var frameCount uint64 = 0

	for e.isRunning && !e.quit.Load() {
		if !e.platform.PumpMessages() {
			e.isRunning = false
			break
		}
		e.pollOptions()

		if e.platform.Minimized() {
			// nothing to draw into, give the time back to the OS
			e.platform.Sleep(targetFrameSeconds * 1000)
			continue
		}

		var currentTime float64 = platform.GetAbsoluteTime()
		var delta float64 = (currentTime - e.lastTime)

		if err := e.gameInstance.FnUpdate(delta); err != nil {
			core.LogFatal("Game update failed, shutting down.")
			e.isRunning = false
			break
		}

		if err := e.drawFrame(delta); err != nil {
			core.LogFatal("Game render failed, shutting down.")
			e.isRunning = false
			break
		}

		frameCount++
		if frameCount%300 == 0 {
			m := e.renderer.Metrics()
			core.LogDebug("%.1f fps, %.2f ms, %.0f prims, %.0f draws", m.FPS, m.AvgFrameMS, m.AvgPrims, m.AvgDraws)
		}

		// Update last time
		e.lastTime = currentTime
	}
	return nil
}

// drawFrame skips the frame while the device is lost.
func (e *Engine) drawFrame(delta float64) error {
	if err := e.renderer.DrawBegin(); err != nil {
		if renderer.IsDeviceLost(err) {
			return nil
		}
		return err
	}
	renderErr := e.gameInstance.FnRender(delta)
	if err := e.renderer.DrawEnd(); err != nil {
		return err
	}
	return renderErr
}

// pollOptions applies an options file change on the render thread.
func (e *Engine) pollOptions() {
	if e.watcher == nil {
		return
	}
	select {
	case opts := <-e.watcher.Changes():
		core.LogInfo("renderer options changed on disk")
		if opts.Fullscreen != e.options.Fullscreen || opts.Width != e.options.Width || opts.Height != e.options.Height {
			e.platform.SetFullscreen(opts.Fullscreen, opts.Width, opts.Height)
		}
		e.applyOptions(opts)
	default:
	}
}

func (e *Engine) applyOptions(opts config.RendererOptions) {
	prev := e.options
	// read by onRestored while the device is restored
	e.options = opts
	if err := e.renderer.ChangeOptions(opts); err != nil {
		core.LogError("failed to apply the new renderer options: %s", err)
		e.options = prev
	}
}

// RequestQuit stops the main loop at the next frame, safe from any goroutine.
func (e *Engine) RequestQuit() {
	e.quit.Store(true)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.watcher != nil {
		errs = append(errs, e.watcher.Close())
	}
	if e.renderer != nil {
		errs = append(errs, e.renderer.Destroy())
	}
	errs = append(errs, e.platform.Shutdown())
	if err := errors.Join(errs...); err != nil {
		err = fmt.Errorf("engine shutdown: %w", err)
		core.LogError(err.Error())
		return err
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	disp := e.platform.DispDesc()
	return disp.Width, disp.Height
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		{
			core.LogInfo("EVENT_CODE_APPLICATION_QUIT recieved, shutting down.")
			e.isRunning = false
			return true
		}
	}
	return false
}

func (e *Engine) onKey(key glfw.Key) {
	if key == glfw.KeyEscape {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		return
	}
	if key == glfw.KeyF5 {
		// reread the options even when the watcher is not running
		path := e.gameInstance.ApplicationConfig.OptionsPath
		if path == "" {
			return
		}
		if opts, err := config.Load(path); err == nil {
			e.applyOptions(opts)
		}
	}
}

func (e *Engine) onResized(context core.EventContext) bool {
	size, ok := context.Data.([2]uint32)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	width, height := size[0], size[1]
	core.LogDebug("Window resize: %d, %d", width, height)
	if width == 0 || height == 0 {
		return false
	}
	if err := e.gameInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	return false
}

func (e *Engine) onRestored(context core.EventContext) bool {
	e.platform.SetVSync(e.options.VSync)
	return false
}
