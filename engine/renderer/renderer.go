package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spaghettifunk/rndr/engine/config"
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/registry"
	"github.com/spaghettifunk/rndr/engine/resources"
)

type DeviceStage uint8

const (
	DEVICE_STAGE_UNCREATED DeviceStage = iota
	DEVICE_STAGE_CREATED
	DEVICE_STAGE_RESTORED
	DEVICE_STAGE_DISPOSED
	DEVICE_STAGE_DESTROYED
)

func (s DeviceStage) String() string {
	switch s {
	case DEVICE_STAGE_UNCREATED:
		return "uncreated"
	case DEVICE_STAGE_CREATED:
		return "created"
	case DEVICE_STAGE_RESTORED:
		return "restored"
	case DEVICE_STAGE_DISPOSED:
		return "disposed"
	case DEVICE_STAGE_DESTROYED:
		return "destroyed"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

type Config struct {
	Options config.RendererOptions
	Display Display
	// The backends this build can run. AUTO picks among them.
	Backends map[metadata.RendererAPI]BackendFactory
	// Receives the lifecycle events, may be nil.
	Events *core.EventBus
	// Zero uses resources.DefaultTablesConfig.
	Tables resources.TablesConfig
}

/**
 * @brief Front end of one backend. Owns the resource tables, the device
 * registry and the retained context, drives the device lifecycle and
 * dispatches the draw calls.
 */
type Renderer struct {
	options  config.RendererOptions
	display  Display
	backends map[metadata.RendererAPI]BackendFactory
	events   *core.EventBus

	backend  Backend
	tables   *resources.Tables
	registry *registry.Registry
	// what the device has bound right now
	current *metadata.RendererContext
	stage   DeviceStage

	inFrame    bool
	frameStart time.Time
	numPrims   uint32
	numDraws   uint32
	metrics    *core.DrawMetrics
}

// resolveAPI maps AUTO to the preferred backend of goos among the
// available ones.
func resolveAPI(api metadata.RendererAPI, backends map[metadata.RendererAPI]BackendFactory, goos string) (metadata.RendererAPI, error) {
	if api != metadata.API_AUTO {
		if _, ok := backends[api]; !ok {
			return metadata.API_INVALID, fmt.Errorf("%s backend not available: %w", api, core.ErrUnsupportedAPI)
		}
		return api, nil
	}
	order := []metadata.RendererAPI{metadata.API_OGL, metadata.API_D3D9}
	if goos == "windows" {
		order = []metadata.RendererAPI{metadata.API_D3D9, metadata.API_OGL}
	}
	for _, a := range order {
		if _, ok := backends[a]; ok {
			return a, nil
		}
	}
	return metadata.API_INVALID, fmt.Errorf("no backend available on %s: %w", goos, core.ErrUnsupportedAPI)
}

// ResolveAPI returns the backend New would pick for api on this platform.
func ResolveAPI(api metadata.RendererAPI, backends map[metadata.RendererAPI]BackendFactory) (metadata.RendererAPI, error) {
	return resolveAPI(api, backends, runtime.GOOS)
}

/**
 * @brief Builds the renderer and its backend. The device is not created
 * until Create.
 */
func New(cfg Config) (*Renderer, error) {
	if cfg.Display == nil {
		err := fmt.Errorf("renderer needs a display")
		core.LogError(err.Error())
		return nil, err
	}
	if err := cfg.Options.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	api, err := resolveAPI(cfg.Options.API, cfg.Backends, runtime.GOOS)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	tablesConfig := cfg.Tables
	if tablesConfig == (resources.TablesConfig{}) {
		tablesConfig = resources.DefaultTablesConfig()
	}

	r := &Renderer{
		options:  cfg.Options,
		display:  cfg.Display,
		backends: cfg.Backends,
		events:   cfg.Events,
		tables:   resources.NewTables(tablesConfig),
		registry: registry.NewRegistry(),
		current:  metadata.NewRendererContext(),
		stage:    DEVICE_STAGE_UNCREATED,
		metrics:  core.NewDrawMetrics(),
	}
	r.backend = cfg.Backends[api](r.tables, r.registry, r.current)
	core.LogInfo("renderer initialized with the %s backend", api)
	return r, nil
}

func (r *Renderer) fire(code core.SystemEventCode, data interface{}) {
	if r.events == nil {
		return
	}
	r.events.Fire(core.EventContext{Type: code, Data: data})
}

func (r *Renderer) stageError(op string) error {
	err := fmt.Errorf("%s with the device %s: %w", op, r.stage, core.ErrInvalidDeviceStage)
	core.LogError(err.Error())
	return err
}

/**
 * @brief Creates the native device and every registered resource, then
 * restores it. A failed restore leaves the device created but disposed.
 */
func (r *Renderer) Create() error {
	if r.stage != DEVICE_STAGE_UNCREATED && r.stage != DEVICE_STAGE_DESTROYED {
		return r.stageError("create")
	}
	disp := r.display.DispDesc()
	if !disp.Valid() {
		err := fmt.Errorf("cannot create a device for a %dx%d display", disp.Width, disp.Height)
		core.LogError(err.Error())
		return err
	}
	if err := r.backend.DeviceCreate(disp, r.options.Present()); err != nil {
		return err
	}
	if err := r.registry.CreateAll(); err != nil {
		core.LogError(err.Error())
		r.registry.DestroyAll()
		r.backend.DeviceDestroy()
		return err
	}
	r.stage = DEVICE_STAGE_CREATED
	r.fire(core.EVENT_CODE_DEVICE_CREATED, r.backend.API())
	return r.Restore()
}

/**
 * @brief Allocates the size dependent resources and force binds the
 * default context. All or nothing: on failure everything restored so far
 * is disposed again and the device stays disposed.
 */
func (r *Renderer) Restore() error {
	if r.stage != DEVICE_STAGE_CREATED && r.stage != DEVICE_STAGE_DISPOSED {
		return r.stageError("restore")
	}
	disp := r.display.DispDesc()
	if err := r.backend.DeviceRestore(disp, r.options.Present()); err != nil {
		r.backend.DeviceDispose()
		r.stage = DEVICE_STAGE_DISPOSED
		return err
	}
	if err := r.registry.RestoreAll(); err != nil {
		core.LogError(err.Error())
		r.registry.DisposeAll()
		r.backend.DeviceDispose()
		r.stage = DEVICE_STAGE_DISPOSED
		return err
	}

	// the device lost its state, start over from the defaults
	r.current.ResetToDefault()
	r.backend.BindContext(r.current, metadata.FLAG_ALL, true)
	r.current.ClearFlags()

	r.stage = DEVICE_STAGE_RESTORED
	core.LogDebug("device restored at %dx%d", disp.Width, disp.Height)
	r.fire(core.EVENT_CODE_DEVICE_RESTORED, disp)
	return nil
}

// Dispose releases the size dependent resources. Does nothing unless the
// device is restored.
func (r *Renderer) Dispose() {
	if r.stage != DEVICE_STAGE_RESTORED {
		return
	}
	r.registry.DisposeAll()
	r.backend.DeviceDispose()
	r.stage = DEVICE_STAGE_DISPOSED
	core.LogDebug("device disposed")
	r.fire(core.EVENT_CODE_DEVICE_DISPOSED, nil)
}

// teardown releases the device and the backend owned vertex formats.
func (r *Renderer) teardown() {
	r.Dispose()
	r.registry.DestroyAll()
	r.backend.DeviceDestroy()

	var fmts []core.Handle
	r.tables.VtxFmts.Each(func(h core.Handle, _ resources.VtxFmt) {
		fmts = append(fmts, h)
	})
	for _, h := range fmts {
		r.tables.VtxFmts.Remove(h)
	}
	r.stage = DEVICE_STAGE_DESTROYED
}

/**
 * @brief Releases the device. Resources still registered afterwards are
 * logged one by one and reported as core.ErrResourceLeak.
 */
func (r *Renderer) Destroy() error {
	if r.stage == DEVICE_STAGE_UNCREATED || r.stage == DEVICE_STAGE_DESTROYED {
		return nil
	}
	if r.inFrame {
		return r.stageError("destroy inside a frame")
	}
	r.teardown()

	var err error
	if n := r.registry.Len(); n > 0 {
		for _, name := range r.registry.Names() {
			core.LogError("device resource leaked: %s", name)
		}
		err = fmt.Errorf("%d device resources: %w", n, core.ErrResourceLeak)
		core.LogError(err.Error())
	}
	core.LogInfo("renderer device destroyed")
	r.fire(core.EVENT_CODE_DEVICE_DESTROYED, nil)
	return err
}

/**
 * @brief Applies new options. The back buffer settings are applied by a
 * dispose/restore cycle, a different API destroys the device and recreates
 * it on the new backend.
 */
func (r *Renderer) ChangeOptions(opts config.RendererOptions) error {
	if r.inFrame {
		return r.stageError("change options inside a frame")
	}
	if err := opts.Validate(); err != nil {
		core.LogError(err.Error())
		return err
	}
	api, err := resolveAPI(opts.API, r.backends, runtime.GOOS)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	r.options = opts
	opts.ApplyLogLevel()
	defer r.fire(core.EVENT_CODE_OPTIONS_CHANGED, opts)

	if api != r.backend.API() {
		core.LogInfo("switching renderer backend %s -> %s", r.backend.API(), api)
		live := r.stage != DEVICE_STAGE_UNCREATED && r.stage != DEVICE_STAGE_DESTROYED
		if live {
			r.teardown()
			r.fire(core.EVENT_CODE_DEVICE_DESTROYED, nil)
		}
		r.backend = r.backends[api](r.tables, r.registry, r.current)
		if !live {
			return nil
		}
		return r.Create()
	}

	switch r.stage {
	case DEVICE_STAGE_RESTORED:
		r.Dispose()
		return r.Restore()
	case DEVICE_STAGE_CREATED, DEVICE_STAGE_DISPOSED:
		return r.Restore()
	}
	return nil
}

/**
 * @brief Binds the flagged fields of ctx and merges them into the retained
 * context. ctx is left untouched, so a prebuilt context can be set again.
 */
func (r *Renderer) SetContext(ctx *metadata.RendererContext) {
	if r.stage != DEVICE_STAGE_RESTORED {
		core.LogWarnOnce("renderer.setcontext", "context set with the device %s, ignored", r.stage)
		return
	}
	flags := ctx.Flags.Derive()
	if flags == 0 {
		return
	}
	r.backend.BindContext(ctx, flags, false)
	r.current.MergeWith(ctx)
}

// RebindContext applies the flagged fields of the retained context again,
// whether or not they changed.
func (r *Renderer) RebindContext(flags metadata.FieldFlags) {
	if r.stage != DEVICE_STAGE_RESTORED {
		return
	}
	r.backend.BindContext(r.current, flags.Derive(), true)
}

func (r *Renderer) Stage() DeviceStage {
	return r.stage
}

func (r *Renderer) API() metadata.RendererAPI {
	return r.backend.API()
}

func (r *Renderer) Caps() *metadata.Caps {
	return r.backend.Caps()
}

func (r *Renderer) Options() config.RendererOptions {
	return r.options
}

func (r *Renderer) Tables() *resources.Tables {
	return r.tables
}

// Registry is where device backed collaborators register themselves.
func (r *Renderer) Registry() *registry.Registry {
	return r.registry
}

// Current is the retained context. It must not be modified.
func (r *Renderer) Current() *metadata.RendererContext {
	return r.current
}

func (r *Renderer) Metrics() *core.DrawMetrics {
	return r.metrics
}

func (r *Renderer) NumPrims() uint32 {
	return r.numPrims
}

func (r *Renderer) NumDraws() uint32 {
	return r.numDraws
}

// IsDeviceLost reports whether err was caused by a lost device.
func IsDeviceLost(err error) bool {
	return errors.Is(err, core.ErrDeviceLost)
}
