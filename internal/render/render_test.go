package render

import (
	"image/color"
	"testing"

	"chosenoffset.com/templar/internal/input"
	"chosenoffset.com/templar/internal/scene"
)

type countingNode struct {
	draws int
}

func (n *countingNode) Draw(Renderer, Image, scene.Camera) {
	n.draws++
}

func TestLayerAttachDetach(t *testing.T) {
	l := NewLayer()
	a, b := &countingNode{}, &countingNode{}

	l.Attach(a)
	l.Attach(b)
	l.Attach(a)
	if l.Len() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", l.Len())
	}

	l.Draw(nil, nil, scene.Camera{})
	if a.draws != 1 || b.draws != 1 {
		t.Errorf("Expected one draw each, got a=%d b=%d", a.draws, b.draws)
	}

	if !l.Detach(a) {
		t.Error("Expected detach of attached node to succeed")
	}
	if l.Detach(a) {
		t.Error("Expected second detach to report false")
	}
	if l.Contains(a) || !l.Contains(b) {
		t.Error("Unexpected layer contents after detach")
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.NRGBA{R: 10, G: 20, B: 30, A: 200}, 0.5).(color.NRGBA)
	if c.A != 100 || c.R != 10 {
		t.Errorf("Expected alpha 100 with colour kept, got %+v", c)
	}

	if c := WithAlpha(color.White, -1).(color.NRGBA); c.A != 0 {
		t.Errorf("Expected clamped alpha 0, got %d", c.A)
	}
}

type fakeInput struct {
	x, y     int
	pressed  map[Key]bool
	released map[Key]bool
	mouseUp  map[MouseButton]bool
}

func (f *fakeInput) IsKeyPressed(k Key) bool                      { return f.pressed[k] }
func (f *fakeInput) IsKeyJustPressed(k Key) bool                  { return f.pressed[k] }
func (f *fakeInput) IsKeyJustReleased(k Key) bool                 { return f.released[k] }
func (f *fakeInput) GetCursorPosition() (int, int)                { return f.x, f.y }
func (f *fakeInput) IsMouseButtonJustReleased(b MouseButton) bool { return f.mouseUp[b] }

func TestInputPollerPublishesEdges(t *testing.T) {
	bus := input.NewBus()
	var kinds []input.EventKind
	var buttons []input.Button
	for _, k := range []input.EventKind{input.PointerMove, input.PointerUp, input.ModifierDown, input.ModifierUp} {
		bus.Subscribe(k, func(ev input.Event) {
			kinds = append(kinds, ev.Kind)
			if ev.Kind == input.PointerUp {
				buttons = append(buttons, ev.Button)
			}
		})
	}

	in := &fakeInput{x: 10, y: 20, pressed: map[Key]bool{KeyShift: true}, mouseUp: map[MouseButton]bool{MouseButtonRight: true}}
	p := NewInputPoller(in, bus, KeyShift)
	p.Poll()

	want := []input.EventKind{input.PointerMove, input.ModifierDown, input.PointerUp}
	if len(kinds) != len(want) {
		t.Fatalf("Expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Event %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
	if len(buttons) != 1 || buttons[0] != input.ButtonRight {
		t.Errorf("Expected one right release, got %v", buttons)
	}

	// Unchanged cursor does not publish another move.
	kinds = nil
	in.pressed = nil
	in.mouseUp = nil
	in.released = map[Key]bool{KeyShift: true}
	p.Poll()
	if len(kinds) != 1 || kinds[0] != input.ModifierUp {
		t.Errorf("Expected only modifier up, got %v", kinds)
	}
}

func TestInputPollerAlternateModifiers(t *testing.T) {
	bus := input.NewBus()
	var kinds []input.EventKind
	for _, k := range []input.EventKind{input.ModifierDown, input.ModifierUp} {
		bus.Subscribe(k, func(ev input.Event) { kinds = append(kinds, ev.Kind) })
	}

	in := &fakeInput{pressed: map[Key]bool{KeyShift: true}}
	p := NewInputPoller(in, bus, KeyShift, KeyTab)
	p.Poll()

	// Tab goes down while Shift is held: still one modifier.
	in.pressed = map[Key]bool{KeyTab: true}
	p.Poll()

	// Shift released while Tab is held: no edge.
	in.pressed = nil
	in.released = map[Key]bool{KeyShift: true}
	p.Poll()
	if len(kinds) != 1 || kinds[0] != input.ModifierDown {
		t.Fatalf("Expected a single modifier down, got %v", kinds)
	}

	in.released = map[Key]bool{KeyTab: true}
	p.Poll()
	if len(kinds) != 2 || kinds[1] != input.ModifierUp {
		t.Errorf("Expected modifier up after the last key, got %v", kinds)
	}
}
