package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/templar/internal/render"
)

var keys = map[render.Key]ebiten.Key{
	render.KeyW:      ebiten.KeyW,
	render.KeyA:      ebiten.KeyA,
	render.KeyS:      ebiten.KeyS,
	render.KeyD:      ebiten.KeyD,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEscape: ebiten.KeyEscape,
	render.KeyShift:  ebiten.KeyShift,
	render.KeyTab:    ebiten.KeyTab,
	render.Key1:      ebiten.KeyDigit1,
	render.Key2:      ebiten.KeyDigit2,
	render.Key3:      ebiten.KeyDigit3,
}

var buttons = map[render.MouseButton]ebiten.MouseButton{
	render.MouseButtonLeft:   ebiten.MouseButtonLeft,
	render.MouseButtonRight:  ebiten.MouseButtonRight,
	render.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Input reads keyboard and mouse state from Ebitengine. Unmapped keys and
// buttons always report false.
type Input struct{}

// NewInputManager creates an Ebitengine input manager.
func NewInputManager() render.InputManager {
	return Input{}
}

func (Input) IsKeyPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (Input) IsKeyJustPressed(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

func (Input) IsKeyJustReleased(key render.Key) bool {
	k, ok := keys[key]
	return ok && inpututil.IsKeyJustReleased(k)
}

func (Input) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

func (Input) IsMouseButtonJustReleased(button render.MouseButton) bool {
	b, ok := buttons[button]
	return ok && inpututil.IsMouseButtonJustReleased(b)
}
