package core

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// The native device was created and the capability table populated.
	/* Context usage:
	 * Data = metadata.RendererAPI
	 */
	EVENT_CODE_DEVICE_CREATED SystemEventCode = 0x02

	// The device was restored and the current context force-rebound.
	/* Context usage:
	 * Data = metadata.DispDesc
	 */
	EVENT_CODE_DEVICE_RESTORED SystemEventCode = 0x03

	// Size dependent device resources were released.
	EVENT_CODE_DEVICE_DISPOSED SystemEventCode = 0x04

	// The native device was released.
	EVENT_CODE_DEVICE_DESTROYED SystemEventCode = 0x05

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * Data = [2]uint32{width, height}
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x06

	// The renderer options file changed on disk.
	/* Context usage:
	 * Data = config.RendererOptions
	 */
	EVENT_CODE_OPTIONS_CHANGED SystemEventCode = 0x07

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events synchronously on the calling goroutine. It is
// owned by whoever creates it and handed to the components that publish or
// listen, there is no process wide instance.
type EventBus struct {
	registered map[SystemEventCode][]registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 * @param code The event code to listen for.
 * @param listener A listener instance. Can be nil.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (b *EventBus) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if b == nil || onEvent == nil {
		return false
	}
	for _, e := range b.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns true if the event is successfully unregistered; otherwise false.
 */
func (b *EventBus) Unregister(code SystemEventCode, listener interface{}) bool {
	if b == nil {
		return false
	}
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (b *EventBus) Fire(ctx EventContext) bool {
	if b == nil {
		return false
	}
	for _, e := range b.registered[ctx.Type] {
		if e.callback(ctx) {
			return true
		}
	}
	return false
}
