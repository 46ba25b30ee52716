// Package demo is a small tabletop scene that exercises the placement
// widget. Both the window and terminal front ends drive the same App.
package demo

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"chosenoffset.com/templar/internal/config"
	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/input"
	"chosenoffset.com/templar/internal/placement"
	"chosenoffset.com/templar/internal/render"
	"chosenoffset.com/templar/internal/render/anim"
	"chosenoffset.com/templar/internal/scene"
)

var (
	background = color.NRGBA{R: 24, G: 24, B: 30, A: 255}
	textColor  = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
)

// ErrNoPreset is returned by Begin for an index outside the preset list.
var ErrNoPreset = errors.New("no such preset")

// App owns the scene, its input bus and the placer.
type App struct {
	ctx      context.Context
	cfg      *config.Config
	renderer render.Renderer

	Viewport *scene.Viewport
	Bus      *input.Bus
	Animator *anim.Animator

	board   *render.Layer
	preview *render.Layer
	markers *markerNode
	placer  *placement.Placer

	mu     sync.Mutex
	status string
	wg     sync.WaitGroup
}

// New builds the scene described by cfg. Pending placements are cancelled
// when ctx ends. textures may be nil.
func New(ctx context.Context, cfg *config.Config, r render.Renderer, textures render.ResourceLoader, zoom float64) (*App, error) {
	grid, err := cfg.Scene.ParseGrid()
	if err != nil {
		return nil, err
	}

	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		renderer: r,
		Viewport: scene.NewViewport(scene.Camera{Zoom: zoom}),
		Bus:      input.NewBus(),
		Animator: anim.NewAnimator(),
		board:    render.NewLayer(),
		preview:  render.NewLayer(),
		markers:  &markerNode{origin: cfg.Scene.Origin()},
	}
	a.board.Attach(&gridNode{grid: grid})
	a.board.Attach(a.markers)

	a.placer, err = placement.New(placement.Deps{
		Camera:   a.Viewport,
		Grid:     scene.StaticGrid(grid),
		Input:    a.Bus,
		Layer:    a.preview,
		Animator: a.Animator,
		Textures: textures,
	}, placement.WithFade(cfg.Scene.Fade()))
	if err != nil {
		return nil, fmt.Errorf("failed to create placer: %w", err)
	}

	a.setStatus(a.help())
	return a, nil
}

// Begin starts placing preset i. The result is logged and recorded when the
// user confirms or cancels.
func (a *App) Begin(i int) error {
	if i < 0 || i >= len(a.cfg.Presets) {
		return fmt.Errorf("%w: %d", ErrNoPreset, i+1)
	}
	preset := a.cfg.Presets[i]
	origin := a.cfg.Scene.Origin()
	req, err := preset.Request(&origin)
	if err != nil {
		return err
	}

	s, err := a.placer.Start(req)
	if err != nil {
		return err
	}
	log.Printf("[demo] Placing %s (session %s)", preset.Name, s.ID())
	a.setStatus(fmt.Sprintf("Placing %s: left click to confirm, right click to cancel", preset.Name))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.finish(preset.Name, s.Wait(a.ctx))
	}()
	return nil
}

func (a *App) finish(name string, res placement.Result) {
	if res.Cancelled {
		log.Printf("[demo] %s cancelled", name)
		a.setStatus(fmt.Sprintf("%s cancelled. %s", name, a.help()))
		return
	}
	log.Printf("[demo] %s placed at (%.1f, %.1f)", name, res.Point.X, res.Point.Y)
	a.markers.add(res.Point)
	a.setStatus(fmt.Sprintf("%s placed at (%.1f, %.1f). %s", name, res.Point.X, res.Point.Y, a.help()))
}

// Abort cancels the current placement, if any.
func (a *App) Abort() {
	a.placer.Abort()
}

// Wait blocks until every started placement has reported its result.
func (a *App) Wait() {
	a.wg.Wait()
}

// Placed returns the confirmed placements in order.
func (a *App) Placed() []geom.Point {
	return a.markers.points()
}

// Status returns the line shown at the top of the screen.
func (a *App) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *App) setStatus(s string) {
	a.mu.Lock()
	a.status = s
	a.mu.Unlock()
}

func (a *App) help() string {
	msg := "Press"
	for i, p := range a.cfg.Presets {
		if i >= 9 {
			break
		}
		msg += fmt.Sprintf(" %d:%s", i+1, p.Name)
	}
	return msg
}

// Update advances animations by dt.
func (a *App) Update(dt time.Duration) {
	a.Animator.Update(dt)
}

// Draw renders the board, the placement preview and the status line.
func (a *App) Draw(dst render.Image) {
	cam := a.Viewport.Camera()
	dst.Fill(background)
	a.board.Draw(a.renderer, dst, cam)
	a.preview.Draw(a.renderer, dst, cam)
	a.renderer.DrawText(dst, a.Status(), 1, 0, textColor, 1)
}
