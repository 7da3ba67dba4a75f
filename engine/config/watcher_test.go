package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

func waitChange(t *testing.T, w *OptionsWatcher) RendererOptions {
	t.Helper()
	select {
	case opts := <-w.Changes():
		return opts
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no options change delivered")
	}
	return RendererOptions{}
}

func TestWatcherDeliversSavedOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renderer.toml")
	require.NoError(t, Save(path, DefaultRendererOptions()))

	w, err := NewOptionsWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	opts := DefaultRendererOptions()
	opts.API = metadata.API_OGL
	opts.VSync = false
	require.NoError(t, Save(path, opts))

	assert.Equal(t, opts, waitChange(t, w))
}

func TestWatcherSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "renderer.toml")
	require.NoError(t, Save(path, DefaultRendererOptions()))

	w, err := NewOptionsWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`width = "wide"`), 0o644))
	// other files of the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte(`width = 1`), 0o644))

	opts := DefaultRendererOptions()
	opts.Width = 300
	require.NoError(t, Save(path, opts))

	got := waitChange(t, w)
	for got.Width != 300 {
		got = waitChange(t, w)
	}
	assert.Equal(t, opts, got)
}

func TestPublishKeepsLatest(t *testing.T) {
	w := &OptionsWatcher{changes: make(chan RendererOptions, 1)}
	first := DefaultRendererOptions()
	second := DefaultRendererOptions()
	second.MSAA = 8

	w.publish(first)
	w.publish(second)

	assert.Equal(t, second, <-w.Changes())
	select {
	case <-w.Changes():
		assert.Fail(t, "stale options left in the channel")
	default:
	}
}
