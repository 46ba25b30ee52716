package term

import (
	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/input"
)

// Translator converts tcell events into input events. Terminals report
// button state rather than releases and do not report bare modifier keys,
// so releases are derived from button-mask changes and the Tab key toggles
// the free-positioning modifier.
type Translator struct {
	buttons  tcell.ButtonMask
	pos      geom.Point
	hasPos   bool
	modifier bool
}

// Translate returns the input events implied by ev, in delivery order.
func (t *Translator) Translate(ev tcell.Event) []input.Event {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return t.mouse(ev)
	case *tcell.EventKey:
		if ev.Key() != tcell.KeyTab {
			return nil
		}
		t.modifier = !t.modifier
		if t.modifier {
			return []input.Event{{Kind: input.ModifierDown}}
		}
		return []input.Event{{Kind: input.ModifierUp}}
	default:
		return nil
	}
}

func (t *Translator) mouse(ev *tcell.EventMouse) []input.Event {
	x, y := ev.Position()
	pos := geom.Pt(float64(x), float64(y))

	var out []input.Event
	if !t.hasPos || pos != t.pos {
		t.pos, t.hasPos = pos, true
		out = append(out, input.Event{Kind: input.PointerMove, Pos: pos})
	}

	now := ev.Buttons()
	released := t.buttons &^ now
	t.buttons = now &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	for _, b := range []struct {
		mask tcell.ButtonMask
		btn  input.Button
	}{
		{tcell.Button1, input.ButtonLeft},
		{tcell.Button2, input.ButtonRight},
		{tcell.Button3, input.ButtonMiddle},
	} {
		if released&b.mask != 0 {
			out = append(out, input.Event{Kind: input.PointerUp, Pos: pos, Button: b.btn})
		}
	}
	return out
}
