package demo

import (
	"image/color"
	"math"
	"sync"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/render"
	"chosenoffset.com/templar/internal/scene"
)

var (
	gridLine    = color.NRGBA{R: 70, G: 70, B: 80, A: 255}
	originColor = color.NRGBA{R: 120, G: 180, B: 255, A: 255}
	markerColor = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
)

// gridNode draws the lines of a square grid across the visible area.
type gridNode struct {
	grid scene.Grid
}

func (n *gridNode) Draw(r render.Renderer, dst render.Image, cam scene.Camera) {
	if !n.grid.Discrete() {
		return
	}
	w, h := dst.Size()
	step := cam.ScaleLength(n.grid.Size)
	if step < 2 {
		return
	}
	topLeft := cam.ScreenToWorld(geom.Pt(0, 0))
	first := cam.WorldToScreen(geom.Pt(
		math.Floor(topLeft.X/n.grid.Size)*n.grid.Size,
		math.Floor(topLeft.Y/n.grid.Size)*n.grid.Size,
	))

	for x := first.X; x <= float64(w); x += step {
		r.FillRect(dst, float32(x), 0, 1, float32(h), gridLine)
	}
	for y := first.Y; y <= float64(h); y += step {
		r.FillRect(dst, 0, float32(y), float32(w), 1, gridLine)
	}
}

// markerNode draws the caster origin and every confirmed placement.
type markerNode struct {
	origin geom.Point

	mu     sync.Mutex
	placed []geom.Point
}

func (n *markerNode) add(p geom.Point) {
	n.mu.Lock()
	n.placed = append(n.placed, p)
	n.mu.Unlock()
}

func (n *markerNode) points() []geom.Point {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]geom.Point, len(n.placed))
	copy(out, n.placed)
	return out
}

func (n *markerNode) Draw(r render.Renderer, dst render.Image, cam scene.Camera) {
	o := cam.WorldToScreen(n.origin)
	r.FillCircle(dst, float32(o.X), float32(o.Y), 3, originColor)
	for _, p := range n.points() {
		s := cam.WorldToScreen(p)
		r.StrokeCircle(dst, float32(s.X), float32(s.Y), 4, 1, markerColor)
	}
}
