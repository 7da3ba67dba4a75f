package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/rndr/engine/core"
)

/**
 * @brief Watches the options file and delivers every valid new version on
 * Changes. Invalid files are logged and skipped. Only the latest version
 * is kept when the reader falls behind.
 */
type OptionsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan RendererOptions
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewOptionsWatcher(path string) (*OptionsWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create the options watcher: %w", err)
	}
	// editors and Save replace the file, so the directory is watched
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w := &OptionsWatcher{
		path:    abs,
		watcher: fw,
		changes: make(chan RendererOptions, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *OptionsWatcher) Changes() <-chan RendererOptions {
	return w.changes
}

func (w *OptionsWatcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			opts, err := Load(w.path)
			if err != nil {
				continue
			}
			core.LogDebug("options file %s changed", w.path)
			w.publish(opts)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("options watcher: %s", err)
		}
	}
}

func (w *OptionsWatcher) publish(opts RendererOptions) {
	for {
		select {
		case w.changes <- opts:
			return
		default:
		}
		// drop the stale version nobody picked up
		select {
		case <-w.changes:
		default:
		}
	}
}

func (w *OptionsWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
