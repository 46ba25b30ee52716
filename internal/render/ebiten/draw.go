// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/templar/internal/render"
)

// Debug font cell size in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

func init() {
	render.NewGeoM = func() render.GeoM { return &GeoM{} }
}

// Renderer draws shapes with the vector package. Images that were not
// created by this package are ignored.
type Renderer struct {
	scratch *ebiten.Image
}

// NewRenderer creates an Ebitengine renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	if img := native(dst); img != nil {
		vector.DrawFilledCircle(img, x, y, radius, clr, true)
	}
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	if img := native(dst); img != nil {
		vector.StrokeCircle(img, x, y, radius, strokeWidth, clr, true)
	}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	if img := native(dst); img != nil {
		vector.DrawFilledRect(img, x, y, width, height, clr, true)
	}
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	if img := native(dst); img != nil {
		vector.StrokeRect(img, x, y, width, height, strokeWidth, clr, true)
	}
}

// DrawText prints with the debug font. The white glyphs are rendered
// off-screen first so they can be tinted and scaled.
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	img := native(dst)
	if img == nil || str == "" {
		return
	}
	w, h := r.MeasureText(str, 1)
	if r.scratch == nil || r.scratch.Bounds().Dx() < w || r.scratch.Bounds().Dy() < h {
		if r.scratch != nil {
			r.scratch.Deallocate()
		}
		r.scratch = ebiten.NewImage(w, h)
	}
	r.scratch.Clear()
	ebitenutil.DebugPrintAt(r.scratch, str, 0, 0)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	img.DrawImage(r.scratch, op)
}

func (r *Renderer) MeasureText(str string, scale float64) (width, height int) {
	return int(float64(len([]rune(str))*glyphWidth) * scale), int(glyphHeight * scale)
}
