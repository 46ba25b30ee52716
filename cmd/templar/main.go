package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chosenoffset.com/templar/internal/config"
	"chosenoffset.com/templar/internal/demo"
	"chosenoffset.com/templar/internal/render"
	ebitenrender "chosenoffset.com/templar/internal/render/ebiten"
)

const (
	tick     = time.Second / 60
	panSpeed = 8.0
)

// window adapts the demo app to the engine's game loop.
type window struct {
	app    *demo.App
	input  render.InputManager
	poller *render.InputPoller
	width  int
	height int
}

func (w *window) Update() error {
	w.poller.Poll()

	for i, key := range []render.Key{render.Key1, render.Key2, render.Key3} {
		if w.input.IsKeyJustPressed(key) {
			if err := w.app.Begin(i); err != nil {
				log.Printf("Cannot start placement: %v", err)
			}
		}
	}
	if w.input.IsKeyJustPressed(render.KeyEscape) || w.input.IsKeyJustPressed(render.KeySpace) {
		w.app.Abort()
	}

	var dx, dy float64
	if w.input.IsKeyPressed(render.KeyA) || w.input.IsKeyPressed(render.KeyLeft) {
		dx -= panSpeed
	}
	if w.input.IsKeyPressed(render.KeyD) || w.input.IsKeyPressed(render.KeyRight) {
		dx += panSpeed
	}
	if w.input.IsKeyPressed(render.KeyW) || w.input.IsKeyPressed(render.KeyUp) {
		dy -= panSpeed
	}
	if w.input.IsKeyPressed(render.KeyS) || w.input.IsKeyPressed(render.KeyDown) {
		dy += panSpeed
	}
	if dx != 0 || dy != 0 {
		w.app.Viewport.Pan(dx, dy)
	}

	w.app.Update(tick)
	return nil
}

func (w *window) Draw(screen render.Image) {
	w.app.Draw(screen)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	app, err := demo.New(ctx, cfg, renderer, loader, cfg.Scene.Zoom)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	w := &window{
		app:    app,
		input:  inputMgr,
		poller: render.NewInputPoller(inputMgr, app.Bus, render.KeyShift, render.KeyTab),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.Println("Starting templar...")
	if err := engine.RunGame(w); err != nil {
		log.Fatal(err)
	}
	app.Abort()
	app.Wait()
}
