package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

/** @brief Renderer settings persisted in the options file. */
type RendererOptions struct {
	// AUTO picks D3D9 on windows and OpenGL everywhere else.
	API metadata.RendererAPI `toml:"api"`
	// Windowed size, ignored when fullscreen.
	Width      uint32 `toml:"width"`
	Height     uint32 `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	VSync      bool   `toml:"vsync"`
	MSAA       uint32 `toml:"msaa"`
	// Validates the indices of every indexed draw.
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`
}

func DefaultRendererOptions() RendererOptions {
	return RendererOptions{
		API:      metadata.API_AUTO,
		Width:    1280,
		Height:   720,
		VSync:    true,
		LogLevel: "info",
	}
}

func (o RendererOptions) Validate() error {
	if o.API < 0 || o.API >= metadata.NUM_RENDERER_APIS {
		return fmt.Errorf("invalid renderer api %d", o.API)
	}
	if o.Width == 0 || o.Height == 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	if o.MSAA > 16 {
		return fmt.Errorf("msaa %d out of range [0, 16]", o.MSAA)
	}
	if _, err := core.ParseLogLevel(o.LogLevel); err != nil {
		return err
	}
	return nil
}

// Present returns the back buffer settings of the options.
func (o RendererOptions) Present() metadata.PresentDesc {
	return metadata.PresentDesc{
		Fullscreen: o.Fullscreen,
		VSync:      o.VSync,
		MSAA:       o.MSAA,
	}
}

// ApplyLogLevel sets the level of the renderer logger.
func (o RendererOptions) ApplyLogLevel() {
	level, err := core.ParseLogLevel(o.LogLevel)
	if err != nil {
		core.LogWarn(err.Error())
		return
	}
	core.SetLogLevel(level)
}

/**
 * @brief Decodes options from TOML. Keys missing from data keep their
 * default value, unknown keys are rejected.
 */
func Parse(data []byte) (RendererOptions, error) {
	opts := DefaultRendererOptions()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return opts, fmt.Errorf("options %d:%d: %w", row, col, err)
		}
		return opts, fmt.Errorf("options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Load reads the options file. A missing file yields the defaults and an
// error wrapping os.ErrNotExist.
func Load(path string) (RendererOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultRendererOptions(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	opts, err := Parse(data)
	if err != nil {
		err = fmt.Errorf("failed to load %s: %w", path, err)
		core.LogError(err.Error())
		return opts, err
	}
	return opts, nil
}

func Save(path string, opts RendererOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	// write then rename, so the watcher never reads a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadOrCreate loads the options file, writing the defaults when it does
// not exist yet.
func LoadOrCreate(path string) (RendererOptions, error) {
	opts, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogInfo("no options at %s, writing the defaults", path)
		return opts, Save(path, opts)
	}
	return opts, err
}
