package scene

import (
	"sync"

	"chosenoffset.com/templar/internal/core/geom"
)

// Camera tracks the viewport position for scrolling large scenes.
type Camera struct {
	X, Y float64 // Camera position (top-left corner of viewport in world coords)
	Zoom float64 // Screen pixels per world unit; zero means 1
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// ScreenToWorld converts a client-space position to world space.
func (c Camera) ScreenToWorld(p geom.Point) geom.Point {
	z := c.zoom()
	return geom.Point{X: p.X/z + c.X, Y: p.Y/z + c.Y}
}

// WorldToScreen converts a world-space position to client space.
func (c Camera) WorldToScreen(p geom.Point) geom.Point {
	z := c.zoom()
	return geom.Point{X: (p.X - c.X) * z, Y: (p.Y - c.Y) * z}
}

// ScaleLength converts a world-space length to screen pixels.
func (c Camera) ScaleLength(l float64) float64 {
	return l * c.zoom()
}

// CameraProvider supplies the current camera transform.
type CameraProvider interface {
	Camera() Camera
}

// StaticCamera is a CameraProvider that never moves.
type StaticCamera Camera

// Camera implements CameraProvider.
func (c StaticCamera) Camera() Camera {
	return Camera(c)
}

// Viewport is a mutable CameraProvider shared between the host loop, which
// pans it, and readers on other goroutines.
type Viewport struct {
	mu  sync.RWMutex
	cam Camera
}

// NewViewport creates a viewport starting at cam.
func NewViewport(cam Camera) *Viewport {
	return &Viewport{cam: cam}
}

// Camera implements CameraProvider.
func (v *Viewport) Camera() Camera {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cam
}

// Pan moves the camera by (dx, dy) world units.
func (v *Viewport) Pan(dx, dy float64) {
	v.mu.Lock()
	v.cam.X += dx
	v.cam.Y += dy
	v.mu.Unlock()
}

// SetZoom changes the zoom factor.
func (v *Viewport) SetZoom(z float64) {
	v.mu.Lock()
	v.cam.Zoom = z
	v.mu.Unlock()
}
