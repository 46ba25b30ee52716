package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/templar/internal/render"
)

// Image adapts *ebiten.Image to render.Image.
type Image struct {
	img *ebiten.Image
}

// Wrap exposes an Ebitengine image, such as the screen, as a render.Image.
func Wrap(img *ebiten.Image) *Image {
	return &Image{img: img}
}

// Native returns the wrapped image.
func (i *Image) Native() *ebiten.Image {
	return i.img
}

func (i *Image) Bounds() image.Rectangle   { return i.img.Bounds() }
func (i *Image) Size() (width, height int) { return i.img.Bounds().Dx(), i.img.Bounds().Dy() }
func (i *Image) Fill(clr color.Color)      { i.img.Fill(clr) }
func (i *Image) Clear()                    { i.img.Clear() }

// Dispose frees the GPU memory behind the image. The image must not be drawn
// afterwards.
func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Deallocate()
		i.img = nil
	}
}

// DrawImage draws src with the transform and opacity from opts.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	s := native(src)
	if s == nil || i.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			op.GeoM = g.m
		}
		op.ColorScale.ScaleAlpha(float32(opts.Alpha))
	}
	i.img.DrawImage(s, op)
}

func native(img render.Image) *ebiten.Image {
	if i, ok := img.(*Image); ok {
		return i.img
	}
	return nil
}

// GeoM adapts ebiten.GeoM to render.GeoM.
type GeoM struct {
	m ebiten.GeoM
}

func (g *GeoM) Translate(tx, ty float64) { g.m.Translate(tx, ty) }
func (g *GeoM) Scale(sx, sy float64)     { g.m.Scale(sx, sy) }
