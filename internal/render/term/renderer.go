package term

import (
	"image/color"
	"math"

	"chosenoffset.com/templar/internal/render"
)

const strokeRune = '•'

// Renderer implements render.Renderer on terminal canvases.
type Renderer struct{}

// NewRenderer creates a terminal renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// FillCircle shades every cell whose centre lies inside the circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	c, ok := dst.(*Canvas)
	if !ok {
		return
	}
	eachCell(c, float64(x-radius), float64(y-radius), float64(x+radius), float64(y+radius), func(cx, cy int, px, py float64) {
		if math.Hypot(px-float64(x), py-float64(y)) <= float64(radius) {
			c.paint(cx, cy, clr)
		}
	})
}

// StrokeCircle marks cells whose centre lies on the circle outline.
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	c, ok := dst.(*Canvas)
	if !ok {
		return
	}
	half := math.Max(float64(strokeWidth)/2, 0.5)
	reach := float64(radius) + half
	eachCell(c, float64(x)-reach, float64(y)-reach, float64(x)+reach, float64(y)+reach, func(cx, cy int, px, py float64) {
		if math.Abs(math.Hypot(px-float64(x), py-float64(y))-float64(radius)) <= half {
			c.mark(cx, cy, strokeRune, clr)
		}
	})
}

// FillRect shades every cell whose centre lies inside the rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	c, ok := dst.(*Canvas)
	if !ok {
		return
	}
	eachCell(c, float64(x), float64(y), float64(x+width), float64(y+height), func(cx, cy int, _, _ float64) {
		c.paint(cx, cy, clr)
	})
}

// StrokeRect marks the cells along the rectangle's edges.
func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	c, ok := dst.(*Canvas)
	if !ok {
		return
	}
	half := math.Max(float64(strokeWidth)/2, 0.5)
	x0, y0 := float64(x), float64(y)
	x1, y1 := x0+float64(width), y0+float64(height)
	eachCell(c, x0-half, y0-half, x1+half, y1+half, func(cx, cy int, px, py float64) {
		onV := math.Abs(px-x0) <= half || math.Abs(px-x1) <= half
		onH := math.Abs(py-y0) <= half || math.Abs(py-y1) <= half
		if onV || onH {
			c.mark(cx, cy, strokeRune, clr)
		}
	})
}

// DrawText writes text starting at cell (x, y). Scale is ignored.
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	c, ok := dst.(*Canvas)
	if !ok {
		return
	}
	for i, ch := range []rune(text) {
		c.mark(x+i, y, ch, clr)
	}
}

// MeasureText returns the text's size in cells.
func (r *Renderer) MeasureText(text string, scale float64) (width, height int) {
	return len([]rune(text)), 1
}

// eachCell visits every cell overlapping the box, passing the cell's centre.
func eachCell(c *Canvas, minX, minY, maxX, maxY float64, fn func(cx, cy int, px, py float64)) {
	x0 := int(math.Max(0, math.Floor(minX)))
	y0 := int(math.Max(0, math.Floor(minY)))
	x1 := int(math.Min(float64(c.w-1), math.Ceil(maxX)))
	y1 := int(math.Min(float64(c.h-1), math.Ceil(maxY)))
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			px, py := float64(cx)+0.5, float64(cy)+0.5
			if px < minX || px > maxX || py < minY || py > maxY {
				continue
			}
			fn(cx, cy, px, py)
		}
	}
}
