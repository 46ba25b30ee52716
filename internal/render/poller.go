package render

import (
	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/input"
)

// Publisher accepts translated input events.
type Publisher interface {
	Publish(ev input.Event)
}

// InputPoller turns the polled state of an InputManager into discrete input
// events. Call Poll once per tick from the game loop.
type InputPoller struct {
	mgr       InputManager
	out       Publisher
	modifiers []Key

	held    int // modifier keys currently down
	last    geom.Point
	hasLast bool
}

// NewInputPoller creates a poller that publishes to out. Any of modifiers
// acts as the free-positioning key; the modifier counts as held while at
// least one of them is down.
func NewInputPoller(mgr InputManager, out Publisher, modifiers ...Key) *InputPoller {
	return &InputPoller{mgr: mgr, out: out, modifiers: modifiers}
}

// Poll publishes the events that happened since the previous tick: a pointer
// move if the cursor changed, modifier edges, then button releases.
func (p *InputPoller) Poll() {
	x, y := p.mgr.GetCursorPosition()
	pos := geom.Pt(float64(x), float64(y))
	if !p.hasLast || pos != p.last {
		p.last, p.hasLast = pos, true
		p.out.Publish(input.Event{Kind: input.PointerMove, Pos: pos})
	}

	wasHeld := p.held > 0
	for _, k := range p.modifiers {
		if p.mgr.IsKeyJustPressed(k) {
			p.held++
		}
		if p.mgr.IsKeyJustReleased(k) && p.held > 0 {
			p.held--
		}
	}
	if held := p.held > 0; held != wasHeld {
		kind := input.ModifierUp
		if held {
			kind = input.ModifierDown
		}
		p.out.Publish(input.Event{Kind: kind})
	}

	for _, mb := range []MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle} {
		if p.mgr.IsMouseButtonJustReleased(mb) {
			p.out.Publish(input.Event{Kind: input.PointerUp, Pos: pos, Button: buttonFor(mb)})
		}
	}
}

func buttonFor(mb MouseButton) input.Button {
	switch mb {
	case MouseButtonLeft:
		return input.ButtonLeft
	case MouseButtonRight:
		return input.ButtonRight
	case MouseButtonMiddle:
		return input.ButtonMiddle
	default:
		return input.ButtonOther
	}
}
