package placement

import (
	"sync"

	"chosenoffset.com/templar/internal/input"
)

// handlers are the session callbacks the dispatcher routes events to.
type handlers struct {
	move     func(input.Event)
	release  func(input.Event)
	modifier func(down bool)
}

// dispatcher owns the input subscriptions of one session.
type dispatcher struct {
	mu   sync.Mutex
	subs []input.Subscription
	once sync.Once
}

// install subscribes the session to pointer input and, when the scene has a
// grid, to modifier edges.
func install(src input.Source, withModifier bool, h handlers) *dispatcher {
	d := &dispatcher{}
	d.subs = append(d.subs,
		src.Subscribe(input.PointerMove, h.move),
		src.Subscribe(input.PointerUp, h.release),
	)
	if withModifier {
		d.subs = append(d.subs,
			src.Subscribe(input.ModifierDown, func(input.Event) { h.modifier(true) }),
			src.Subscribe(input.ModifierUp, func(input.Event) { h.modifier(false) }),
		)
	}
	return d
}

// teardown removes every subscription. It is safe to call more than once.
func (d *dispatcher) teardown() {
	d.once.Do(func() {
		d.mu.Lock()
		subs := d.subs
		d.subs = nil
		d.mu.Unlock()

		for _, s := range subs {
			s.Unsubscribe()
		}
	})
}

// installed returns the number of live subscriptions.
func (d *dispatcher) installed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}
