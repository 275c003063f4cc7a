package event

import (
	"reflect"
	"sync"
)

// Bus is a typed fire-and-forget notification bus. Events are queued by
// Emit while the engine holds its mutation lock and delivered by Flush
// after the lock is released, so a subscriber may safely call back into
// the engine (e.g. to take a snapshot).
type Bus struct {
	mu       sync.Mutex
	pending  []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event for the next Flush.
func Emit[T any](b *Bus, ev T) {
	b.mu.Lock()
	b.pending = append(b.pending, ev)
	b.mu.Unlock()
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Flush delivers all queued events, in emission order, to their subscribers.
// Events queued during delivery are picked up by the next Flush.
func (b *Bus) Flush() {
	b.mu.Lock()
	queued := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, ev := range queued {
		b.mu.Lock()
		handlers := b.handlers[reflect.TypeOf(ev)]
		b.mu.Unlock()
		for _, h := range handlers {
			// Safe: Subscribe and Emit key handlers by the same concrete type.
			reflect.ValueOf(h).Call([]reflect.Value{reflect.ValueOf(ev)})
		}
	}
}
