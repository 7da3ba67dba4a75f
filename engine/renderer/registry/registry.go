package registry

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/rndr/engine/core"
)

/**
 * @brief A device backed object. Create and restore may fail, dispose and
 * destroy release whatever the object holds and cannot fail.
 */
type Entry interface {
	/** @brief Allocates objects that survive a device reset. */
	DeviceCreate() error
	/** @brief Allocates size dependent objects after a reset. */
	DeviceRestore() error
	/** @brief Releases everything DeviceRestore allocated. */
	DeviceDispose()
	/** @brief Releases everything DeviceCreate allocated. */
	DeviceDestroy()
}

type record struct {
	id    uuid.UUID
	name  string
	entry Entry
	// lifecycle methods that succeeded and are not undone yet
	created  bool
	restored bool
}

/**
 * @brief Ordered list of the device backed objects of one renderer. Create
 * and restore walk the list in registration order, dispose and destroy walk
 * it backwards so dependent objects go first.
 */
type Registry struct {
	records  []*record
	created  bool
	restored bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

/**
 * @brief Adds an entry at the end of the list. When the device already
 * exists the entry is brought up to the same stage right away.
 * @param name Used in lifecycle and leak logs.
 * @returns the id to pass to Unregister.
 */
func (r *Registry) Register(name string, e Entry) (uuid.UUID, error) {
	rec := &record{id: uuid.New(), name: name, entry: e}
	if r.created {
		if err := e.DeviceCreate(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to create %s: %w", name, err)
		}
		rec.created = true
		if r.restored {
			if err := e.DeviceRestore(); err != nil {
				e.DeviceDestroy()
				return uuid.Nil, fmt.Errorf("failed to restore %s: %w", name, err)
			}
			rec.restored = true
		}
	}
	id := rec.id
	r.records = append(r.records, rec)
	core.LogDebug("device resource %s registered (%s)", name, id)
	return id, nil
}

// Unregister removes the entry without calling any lifecycle method, the
// owner is expected to have released it already.
func (r *Registry) Unregister(id uuid.UUID) bool {
	for i := range r.records {
		if r.records[i].id == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true
		}
	}
	return false
}

// Release runs dispose and destroy on a single entry as required by its
// current stage and unregisters it.
func (r *Registry) Release(id uuid.UUID) bool {
	for i := range r.records {
		if r.records[i].id != id {
			continue
		}
		rec := r.records[i]
		if rec.restored {
			rec.entry.DeviceDispose()
		}
		if rec.created {
			rec.entry.DeviceDestroy()
		}
		r.records = append(r.records[:i], r.records[i+1:]...)
		return true
	}
	return false
}

// snapshot lets entries unregister themselves while a walk is running.
func (r *Registry) snapshot() []*record {
	return append([]*record(nil), r.records...)
}

// CreateAll calls DeviceCreate in registration order and stops at the
// first failure. Entries created before the failure are destroyed by the
// next DestroyAll.
func (r *Registry) CreateAll() error {
	r.created = true
	for _, rec := range r.snapshot() {
		if rec.created {
			continue
		}
		if err := rec.entry.DeviceCreate(); err != nil {
			return fmt.Errorf("failed to create %s: %w", rec.name, err)
		}
		rec.created = true
	}
	return nil
}

// RestoreAll calls DeviceRestore in registration order and stops at the
// first failure. Entries restored before the failure keep their state and
// are disposed by the next DisposeAll.
func (r *Registry) RestoreAll() error {
	r.restored = true
	for _, rec := range r.snapshot() {
		if rec.restored {
			continue
		}
		if err := rec.entry.DeviceRestore(); err != nil {
			return fmt.Errorf("failed to restore %s: %w", rec.name, err)
		}
		rec.restored = true
	}
	return nil
}

// DisposeAll disposes the restored entries, last registered first.
func (r *Registry) DisposeAll() {
	recs := r.snapshot()
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].restored {
			recs[i].entry.DeviceDispose()
			recs[i].restored = false
		}
	}
	r.restored = false
}

// DestroyAll destroys the created entries, last registered first.
func (r *Registry) DestroyAll() {
	recs := r.snapshot()
	for i := len(recs) - 1; i >= 0; i-- {
		if recs[i].created {
			recs[i].entry.DeviceDestroy()
			recs[i].created = false
		}
	}
	r.created = false
}

func (r *Registry) Len() int {
	return len(r.records)
}

// Names lists the registered entries in registration order, used to
// report leaks.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		names = append(names, fmt.Sprintf("%s (%s)", rec.name, rec.id))
	}
	return names
}
