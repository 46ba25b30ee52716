package input

import (
	"sync"

	"chosenoffset.com/templar/internal/core/geom"
)

// Handler receives a published event.
type Handler func(Event)

// Subscription is a handle to an installed handler.
type Subscription interface {
	// Unsubscribe removes the handler. Calling it more than once is a no-op.
	Unsubscribe()
}

// Source is anything a widget can subscribe to for input.
type Source interface {
	Subscribe(kind EventKind, h Handler) Subscription
	// Pointer returns the last published pointer position, if any.
	Pointer() (geom.Point, bool)
	// ModifierHeld reports whether the modifier is currently down.
	ModifierHeld() bool
}

// Bus is a synchronous, in-order event dispatcher. Publish calls every
// handler for the event's kind before returning, in subscription order.
// Handlers may subscribe or unsubscribe from inside a handler; such changes
// take effect from the next Publish.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers [numEventKinds][]entry

	pointer    geom.Point
	hasPointer bool
	modifier   bool
}

type entry struct {
	id uint64
	h  Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe installs h for events of the given kind.
func (b *Bus) Subscribe(kind EventKind, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], entry{id: id, h: h})
	return &subscription{bus: b, kind: kind, id: id}
}

// Publish records the event's effect on pointer/modifier state and delivers
// it to all current subscribers of its kind.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	switch ev.Kind {
	case PointerMove, PointerUp:
		b.pointer = ev.Pos
		b.hasPointer = true
	case ModifierDown:
		b.modifier = true
	case ModifierUp:
		b.modifier = false
	}
	// Snapshot so handlers can unsubscribe without the lock held.
	hs := make([]Handler, 0, len(b.handlers[ev.Kind]))
	for _, e := range b.handlers[ev.Kind] {
		hs = append(hs, e.h)
	}
	b.mu.Unlock()

	for _, h := range hs {
		h(ev)
	}
}

// Pointer implements Source.
func (b *Bus) Pointer() (geom.Point, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pointer, b.hasPointer
}

// ModifierHeld implements Source.
func (b *Bus) ModifierHeld() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.modifier
}

// Len returns the number of handlers installed for kind.
func (b *Bus) Len(kind EventKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[kind])
}

func (b *Bus) remove(kind EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[kind]
	for i, e := range list {
		if e.id == id {
			b.handlers[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

type subscription struct {
	bus  *Bus
	kind EventKind
	id   uint64
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s.kind, s.id)
	})
}
