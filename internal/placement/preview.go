package placement

import (
	"image/color"
	"log"
	"sync"
	"time"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/render"
	"chosenoffset.com/templar/internal/render/anim"
	"chosenoffset.com/templar/internal/scene"
)

// DefaultFade is how long the preview takes to fade in and out.
const DefaultFade = 200 * time.Millisecond

// Layer is the scene-graph insertion point the preview attaches to.
type Layer interface {
	Attach(n render.Node)
	Detach(n render.Node) bool
}

// Animator interpolates the preview's opacity.
type Animator interface {
	Tween(from, to float64, d time.Duration, ease anim.Easing, set func(float64), done func()) *anim.Tween
	Stop(t *anim.Tween)
}

var (
	defaultFill   = color.NRGBA{R: 255, G: 140, B: 0, A: 90}
	defaultBorder = color.NRGBA{R: 255, G: 140, B: 0, A: 230}
	ringFill      = color.NRGBA{R: 120, G: 180, B: 255, A: 28}
	ringBorder    = color.NRGBA{R: 120, G: 180, B: 255, A: 150}
)

// shapeNode draws the template at the resolved coordinate.
type shapeNode struct {
	mu      sync.Mutex
	shape   Shape
	pos     geom.Point
	alpha   float64
	texture render.Image
}

func (n *shapeNode) setAlpha(a float64) {
	n.mu.Lock()
	n.alpha = a
	n.mu.Unlock()
}

func (n *shapeNode) moveTo(p geom.Point) {
	n.mu.Lock()
	n.pos = p
	n.mu.Unlock()
}

func (n *shapeNode) position() geom.Point {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pos
}

// Draw implements render.Node.
func (n *shapeNode) Draw(r render.Renderer, dst render.Image, cam scene.Camera) {
	n.mu.Lock()
	shape, pos, alpha, tex := n.shape, n.pos, n.alpha, n.texture
	n.mu.Unlock()
	if alpha <= 0 {
		return
	}

	fill, border := shape.Fill, shape.Border
	if fill == nil {
		fill = defaultFill
	}
	if border == nil {
		border = defaultBorder
	}
	width := shape.BorderWidth
	if width <= 0 {
		width = 2
	}

	c := cam.WorldToScreen(pos)
	extent := cam.ScaleLength(shape.Extent())
	x, y := float32(c.X), float32(c.Y)

	switch shape.Kind {
	case ShapeSquare:
		half := float32(extent / 2)
		r.FillRect(dst, x-half, y-half, float32(extent), float32(extent), render.WithAlpha(fill, alpha))
	default:
		r.FillCircle(dst, x, y, float32(extent/2), render.WithAlpha(fill, alpha))
	}

	if tex != nil && render.NewGeoM != nil {
		tw, th := tex.Size()
		if tw > 0 && th > 0 {
			geo := render.NewGeoM()
			geo.Scale(extent/float64(tw), extent/float64(th))
			geo.Translate(c.X-extent/2, c.Y-extent/2)
			dst.DrawImage(tex, &render.DrawImageOptions{GeoM: geo, Alpha: alpha})
		}
	}

	switch shape.Kind {
	case ShapeSquare:
		half := float32(extent / 2)
		r.StrokeRect(dst, x-half, y-half, float32(extent), float32(extent), float32(width), render.WithAlpha(border, alpha))
	default:
		r.StrokeCircle(dst, x, y, float32(extent/2), float32(width), render.WithAlpha(border, alpha))
	}
}

// ringNode marks the maximum range around a fixed origin.
type ringNode struct {
	mu     sync.Mutex
	origin geom.Point
	radius float64
	alpha  float64
}

func (n *ringNode) setAlpha(a float64) {
	n.mu.Lock()
	n.alpha = a
	n.mu.Unlock()
}

// Draw implements render.Node.
func (n *ringNode) Draw(r render.Renderer, dst render.Image, cam scene.Camera) {
	n.mu.Lock()
	origin, radius, alpha := n.origin, n.radius, n.alpha
	n.mu.Unlock()
	if alpha <= 0 {
		return
	}

	c := cam.WorldToScreen(origin)
	rad := float32(cam.ScaleLength(radius))
	r.FillCircle(dst, float32(c.X), float32(c.Y), rad, render.WithAlpha(ringFill, alpha))
	r.StrokeCircle(dst, float32(c.X), float32(c.Y), rad, 2, render.WithAlpha(ringBorder, alpha))
}

// preview owns the visual nodes of one session.
type preview struct {
	layer    Layer
	animator Animator
	fade     time.Duration

	shape *shapeNode
	ring  *ringNode

	tweens []*anim.Tween
	frozen bool
	hidden bool
}

func newPreview(req Request, layer Layer, animator Animator, textures render.ResourceLoader, fade time.Duration) *preview {
	p := &preview{
		layer:    layer,
		animator: animator,
		fade:     fade,
		shape:    &shapeNode{shape: req.Shape},
	}
	if req.HasRange() {
		p.ring = &ringNode{origin: *req.Origin, radius: req.MaxRange}
	}
	if req.Shape.Texture != "" && textures != nil {
		tex, err := textures.LoadImage(req.Shape.Texture)
		if err != nil {
			log.Printf("[placement] Warning: failed to load texture %q, drawing plain shape: %v", req.Shape.Texture, err)
		} else {
			p.shape.texture = tex
		}
	}
	return p
}

// show attaches the nodes at pos and fades them in.
func (p *preview) show(pos geom.Point) {
	p.shape.moveTo(pos)
	if p.ring != nil {
		p.layer.Attach(p.ring)
		p.tweens = append(p.tweens, p.animator.Tween(0, 1, p.fade, anim.EaseOutQuad, p.ring.setAlpha, nil))
	}
	p.layer.Attach(p.shape)
	p.tweens = append(p.tweens, p.animator.Tween(0, 1, p.fade, anim.EaseOutQuad, p.shape.setAlpha, nil))
}

// moveTo repositions the shape. The ring stays at its origin.
func (p *preview) moveTo(pos geom.Point) {
	if p.frozen {
		return
	}
	p.shape.moveTo(pos)
}

// hide freezes the preview and starts the fade out. The nodes are detached
// and their resources released when the fade completes. Calling hide more
// than once is a no-op.
func (p *preview) hide() {
	if p.hidden {
		return
	}
	p.hidden, p.frozen = true, true

	for _, t := range p.tweens {
		p.animator.Stop(t)
	}
	p.tweens = nil

	p.animator.Tween(p.shape.currentAlpha(), 0, p.fade, anim.Linear, p.shape.setAlpha, func() {
		p.layer.Detach(p.shape)
		if tex := p.shape.texture; tex != nil {
			tex.Dispose()
		}
	})
	if ring := p.ring; ring != nil {
		p.animator.Tween(ring.currentAlpha(), 0, p.fade, anim.Linear, ring.setAlpha, func() {
			p.layer.Detach(ring)
		})
	}
}

func (n *shapeNode) currentAlpha() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.alpha
}

func (n *ringNode) currentAlpha() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.alpha
}
