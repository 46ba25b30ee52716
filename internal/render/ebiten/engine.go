package ebiten

import (
	"fmt"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/templar/internal/render"
)

// Loader loads textures from disk.
type Loader struct{}

// NewResourceLoader creates a file-backed texture loader.
func NewResourceLoader() render.ResourceLoader {
	return Loader{}
}

// LoadImage decodes the image at path. Every call returns a fresh image the
// caller owns and must dispose.
func (Loader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return Wrap(img), nil
}

// Engine runs a render.Game in an Ebitengine window.
type Engine struct{}

// NewEngine creates an Ebitengine engine.
func NewEngine() render.Engine {
	return Engine{}
}

func (Engine) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }
func (Engine) SetWindowTitle(title string)     { ebiten.SetWindowTitle(title) }

func (Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

// RunGame blocks until the window closes or game returns an error.
func (Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(gameLoop{game})
}

type gameLoop struct {
	game render.Game
}

func (g gameLoop) Update() error              { return g.game.Update() }
func (g gameLoop) Draw(screen *ebiten.Image)  { g.game.Draw(Wrap(screen)) }
func (g gameLoop) Layout(w, h int) (int, int) { return g.game.Layout(w, h) }
