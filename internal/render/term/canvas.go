// Package term renders the widget into a terminal through tcell. One canvas
// pixel is one terminal cell; shapes are rasterised by cell centre.
package term

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/templar/internal/render"
)

type cell struct {
	ch rune
	fg color.NRGBA
	bg color.NRGBA
}

// Canvas is a grid of terminal cells implementing render.Image.
type Canvas struct {
	w, h  int
	cells []cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{w: width, h: height, cells: make([]cell, width*height)}
	c.Clear()
	return c
}

// Bounds returns the bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.w, c.h)
}

// Size returns the width and height in cells.
func (c *Canvas) Size() (width, height int) {
	return c.w, c.h
}

// Fill paints every cell's background.
func (c *Canvas) Fill(clr color.Color) {
	bg := toNRGBA(clr)
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', bg: bg}
	}
}

// Clear resets every cell to a blank black cell.
func (c *Canvas) Clear() {
	c.Fill(color.Black)
}

// DrawImage blends another canvas onto this one at the origin; GeoM is
// ignored. Images from other backends cannot be shown and are skipped.
func (c *Canvas) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	other, ok := src.(*Canvas)
	if !ok {
		return
	}
	alpha := 1.0
	if opts != nil {
		alpha = opts.Alpha
	}
	for y := 0; y < other.h && y < c.h; y++ {
		for x := 0; x < other.w && x < c.w; x++ {
			s := other.cells[y*other.w+x]
			d := &c.cells[y*c.w+x]
			d.bg = blend(d.bg, s.bg, alpha)
			if s.ch != ' ' {
				d.ch, d.fg = s.ch, s.fg
			}
		}
	}
}

// Dispose is a no-op; canvases hold no external resources.
func (c *Canvas) Dispose() {}

// Cell returns the rune and background at (x, y).
func (c *Canvas) Cell(x, y int) (rune, color.NRGBA) {
	if !c.in(x, y) {
		return 0, color.NRGBA{}
	}
	cl := c.cells[y*c.w+x]
	return cl.ch, cl.bg
}

// Flush copies the canvas to screen and shows it.
func (c *Canvas) Flush(screen tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			style := tcell.StyleDefault.
				Background(tcell.NewRGBColor(int32(cl.bg.R), int32(cl.bg.G), int32(cl.bg.B))).
				Foreground(tcell.NewRGBColor(int32(cl.fg.R), int32(cl.fg.G), int32(cl.fg.B)))
			screen.SetContent(x, y, cl.ch, nil, style)
		}
	}
	screen.Show()
}

func (c *Canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *Canvas) paint(x, y int, clr color.Color) {
	if !c.in(x, y) {
		return
	}
	n := toNRGBA(clr)
	d := &c.cells[y*c.w+x]
	d.bg = blend(d.bg, n, float64(n.A)/255)
}

func (c *Canvas) mark(x, y int, ch rune, clr color.Color) {
	if !c.in(x, y) {
		return
	}
	n := toNRGBA(clr)
	if n.A == 0 {
		return
	}
	d := &c.cells[y*c.w+x]
	d.ch = ch
	d.fg = blend(d.bg, n, float64(n.A)/255)
}

func toNRGBA(clr color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(clr).(color.NRGBA)
}

// blend mixes src over dst with opacity a and returns an opaque colour.
func blend(dst, src color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	mix := func(d, s uint8) uint8 {
		return uint8(float64(d)*(1-a) + float64(s)*a + 0.5)
	}
	return color.NRGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}
