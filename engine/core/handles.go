package core

import "fmt"

// Handle refers to a slot of a HandleManager. The low 20 bits store the slot
// index plus one, the high 12 bits the generation of the slot at the time the
// handle was issued. The zero Handle is the null handle.
type Handle uint32

const (
	InvalidHandle Handle = 0

	handleIndexBits      = 20
	handleIndexMask      = (1 << handleIndexBits) - 1
	handleMaxEntries     = handleIndexMask - 1
	handleGenerationMask = (1 << (32 - handleIndexBits)) - 1
)

func makeHandle(index uint32, generation uint16) Handle {
	return Handle(uint32(generation)<<handleIndexBits | (index + 1))
}

// Index returns the slot index, or -1 for the null handle.
func (h Handle) Index() int {
	return int(uint32(h)&handleIndexMask) - 1
}

func (h Handle) Generation() uint16 {
	return uint16(uint32(h) >> handleIndexBits)
}

func (h Handle) IsNull() bool {
	return h == InvalidHandle
}

func (h Handle) String() string {
	if h.IsNull() {
		return "handle(null)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.Index(), h.Generation())
}

type handleSlot[T any] struct {
	value      T
	generation uint16
	used       bool
}

// HandleManager stores values in reusable slots and hands out generation
// checked handles, so a removed value is never reachable through a stale
// handle.
type HandleManager[T any] struct {
	slots []handleSlot[T]
	free  []uint32
	count int
}

func NewHandleManager[T any](capacity int) *HandleManager[T] {
	return &HandleManager[T]{
		slots: make([]handleSlot[T], 0, capacity),
	}
}

// Add stores the value in a free slot (or a new one) and returns its handle.
func (m *HandleManager[T]) Add(value T) (Handle, error) {
	var index uint32
	if n := len(m.free); n > 0 {
		index = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		if len(m.slots) >= handleMaxEntries {
			return InvalidHandle, fmt.Errorf("handle manager is full (max=%d)", handleMaxEntries)
		}
		m.slots = append(m.slots, handleSlot[T]{})
		index = uint32(len(m.slots) - 1)
	}
	s := &m.slots[index]
	s.value = value
	s.used = true
	m.count++
	return makeHandle(index, s.generation), nil
}

// Valid reports whether h refers to a live value.
func (m *HandleManager[T]) Valid(h Handle) bool {
	i := h.Index()
	if i < 0 || i >= len(m.slots) {
		return false
	}
	s := &m.slots[i]
	return s.used && s.generation == h.Generation()
}

// Get returns the value behind h. The second result is false for null,
// removed or out of range handles.
func (m *HandleManager[T]) Get(h Handle) (T, bool) {
	if !m.Valid(h) {
		var zero T
		return zero, false
	}
	return m.slots[h.Index()].value, true
}

// Remove releases the slot of h. Later lookups through h fail.
func (m *HandleManager[T]) Remove(h Handle) (T, error) {
	var zero T
	if !m.Valid(h) {
		return zero, fmt.Errorf("remove %s: %w", h, ErrInvalidHandle)
	}
	i := h.Index()
	s := &m.slots[i]
	value := s.value
	s.value = zero
	s.used = false
	s.generation = (s.generation + 1) & handleGenerationMask
	m.free = append(m.free, uint32(i))
	m.count--
	return value, nil
}

// FindIf returns the handle of the first live value matching pred, or
// InvalidHandle.
func (m *HandleManager[T]) FindIf(pred func(T) bool) Handle {
	for i := range m.slots {
		s := &m.slots[i]
		if s.used && pred(s.value) {
			return makeHandle(uint32(i), s.generation)
		}
	}
	return InvalidHandle
}

// Each visits every live value in slot order.
func (m *HandleManager[T]) Each(fn func(h Handle, value T)) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.used {
			fn(makeHandle(uint32(i), s.generation), s.value)
		}
	}
}

func (m *HandleManager[T]) Len() int {
	return m.count
}
