package registry

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceEntry struct {
	name       string
	trace      *[]string
	createErr  error
	restoreErr error
}

func (e *traceEntry) DeviceCreate() error {
	*e.trace = append(*e.trace, "create "+e.name)
	return e.createErr
}

func (e *traceEntry) DeviceRestore() error {
	*e.trace = append(*e.trace, "restore "+e.name)
	return e.restoreErr
}

func (e *traceEntry) DeviceDispose() { *e.trace = append(*e.trace, "dispose "+e.name) }
func (e *traceEntry) DeviceDestroy() { *e.trace = append(*e.trace, "destroy "+e.name) }

func TestRegistryWalkOrder(t *testing.T) {
	var trace []string
	r := NewRegistry()
	for _, n := range []string{"a", "b", "c"} {
		_, err := r.Register(n, &traceEntry{name: n, trace: &trace})
		require.NoError(t, err)
	}
	assert.Empty(t, trace)

	require.NoError(t, r.CreateAll())
	require.NoError(t, r.RestoreAll())
	r.DisposeAll()
	r.DestroyAll()

	assert.Equal(t, []string{
		"create a", "create b", "create c",
		"restore a", "restore b", "restore c",
		"dispose c", "dispose b", "dispose a",
		"destroy c", "destroy b", "destroy a",
	}, trace)
}

func TestRegistryRestoreStopsAtFailure(t *testing.T) {
	var trace []string
	r := NewRegistry()
	boom := errors.New("out of video memory")
	r.Register("a", &traceEntry{name: "a", trace: &trace})
	b := &traceEntry{name: "b", trace: &trace, restoreErr: boom}
	r.Register("b", b)
	r.Register("c", &traceEntry{name: "c", trace: &trace})

	require.NoError(t, r.CreateAll())
	trace = nil
	err := r.RestoreAll()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"restore a", "restore b"}, trace)

	// only what was restored is disposed
	trace = nil
	r.DisposeAll()
	assert.Equal(t, []string{"dispose a"}, trace)

	// the retry picks up every entry again
	b.restoreErr = nil
	trace = nil
	require.NoError(t, r.RestoreAll())
	assert.Equal(t, []string{"restore a", "restore b", "restore c"}, trace)
}

func TestRegistryCreateFailureUnwindsCreatedEntries(t *testing.T) {
	var trace []string
	r := NewRegistry()
	boom := errors.New("no memory")
	a, _ := r.Register("a", &traceEntry{name: "a", trace: &trace})
	r.Register("b", &traceEntry{name: "b", trace: &trace, createErr: boom})
	c, _ := r.Register("c", &traceEntry{name: "c", trace: &trace})

	assert.ErrorIs(t, r.CreateAll(), boom)
	r.DisposeAll()
	r.DestroyAll()
	assert.Equal(t, []string{"create a", "create b", "destroy a"}, trace)

	// destroyed entries are not released twice
	trace = nil
	assert.True(t, r.Release(a))
	assert.True(t, r.Release(c))
	assert.Empty(t, trace)
}

func TestRegisterOnLiveDeviceCatchesUp(t *testing.T) {
	var trace []string
	r := NewRegistry()
	require.NoError(t, r.CreateAll())
	require.NoError(t, r.RestoreAll())

	_, err := r.Register("late", &traceEntry{name: "late", trace: &trace})
	require.NoError(t, err)
	assert.Equal(t, []string{"create late", "restore late"}, trace)

	trace = nil
	_, err = r.Register("bad", &traceEntry{name: "bad", trace: &trace, restoreErr: errors.New("nope")})
	assert.Error(t, err)
	assert.Equal(t, []string{"create bad", "restore bad", "destroy bad"}, trace)
	assert.Equal(t, 1, r.Len())
}

func TestUnregisterAndRelease(t *testing.T) {
	var trace []string
	r := NewRegistry()
	a, _ := r.Register("a", &traceEntry{name: "a", trace: &trace})
	b, _ := r.Register("b", &traceEntry{name: "b", trace: &trace})
	require.NoError(t, r.CreateAll())
	trace = nil

	assert.True(t, r.Unregister(a))
	assert.False(t, r.Unregister(a))
	assert.False(t, r.Unregister(uuid.New()))
	assert.Empty(t, trace)

	assert.True(t, r.Release(b))
	assert.Equal(t, []string{"destroy b"}, trace)
	assert.Zero(t, r.Len())
}

type selfRemoving struct {
	r  *Registry
	id uuid.UUID
}

func (e *selfRemoving) DeviceCreate() error  { return nil }
func (e *selfRemoving) DeviceRestore() error { return nil }
func (e *selfRemoving) DeviceDispose()       {}
func (e *selfRemoving) DeviceDestroy()       { e.r.Unregister(e.id) }

func TestEntriesMayUnregisterDuringWalk(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 3; i++ {
		e := &selfRemoving{r: r}
		id, err := r.Register("self", e)
		require.NoError(t, err)
		e.id = id
	}
	require.NoError(t, r.CreateAll())
	r.DestroyAll()
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Names())
}
