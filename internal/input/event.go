// Package input delivers host input to interested widgets as typed events.
// Backends translate engine-specific input into Events and publish them on a
// Bus; widgets subscribe for the kinds they care about.
package input

import (
	"fmt"

	"chosenoffset.com/templar/internal/core/geom"
)

// EventKind discriminates input events.
type EventKind int

const (
	// PointerMove fires when the pointer moves; Pos is in screen space.
	PointerMove EventKind = iota
	// PointerUp fires when a pointer button is released at Pos.
	PointerUp
	// ModifierDown fires when the free-positioning modifier is pressed.
	ModifierDown
	// ModifierUp fires when the free-positioning modifier is released.
	ModifierUp

	numEventKinds
)

// String returns a human-readable name for the kind.
func (k EventKind) String() string {
	switch k {
	case PointerMove:
		return "pointer_move"
	case PointerUp:
		return "pointer_up"
	case ModifierDown:
		return "modifier_down"
	case ModifierUp:
		return "modifier_up"
	default:
		return fmt.Sprintf("event_kind(%d)", int(k))
	}
}

// Button represents a pointer button.
type Button int

// Pointer button constants
const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// Event is a single piece of host input.
type Event struct {
	Kind   EventKind
	Pos    geom.Point // Screen-space pointer position (PointerMove, PointerUp)
	Button Button     // Released button (PointerUp only)
}

// Move builds a PointerMove event.
func Move(x, y float64) Event {
	return Event{Kind: PointerMove, Pos: geom.Pt(x, y)}
}

// Release builds a PointerUp event.
func Release(x, y float64, b Button) Event {
	return Event{Kind: PointerUp, Pos: geom.Pt(x, y), Button: b}
}
