package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/templar/internal/config"
	"chosenoffset.com/templar/internal/demo"
	"chosenoffset.com/templar/internal/render/term"
)

const (
	frame   = 16 * time.Millisecond // ~60 FPS
	panStep = 20.0
	logFile = "templar-term.log"
)

type termApp struct {
	screen     tcell.Screen
	app        *demo.App
	translator term.Translator
	canvas     *term.Canvas
}

// handleInput returns false when the user quits.
func (t *termApp) handleInput(ev tcell.Event) bool {
	for _, e := range t.translator.Translate(ev) {
		t.app.Bus.Publish(e)
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			t.app.Abort()
		case tcell.KeyLeft:
			t.app.Viewport.Pan(-panStep, 0)
		case tcell.KeyRight:
			t.app.Viewport.Pan(panStep, 0)
		case tcell.KeyUp:
			t.app.Viewport.Pan(0, -panStep)
		case tcell.KeyDown:
			t.app.Viewport.Pan(0, panStep)
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' {
				return false
			}
			if r >= '1' && r <= '9' {
				if err := t.app.Begin(int(r - '1')); err != nil {
					log.Printf("Cannot start placement: %v", err)
				}
			}
		}
	case *tcell.EventResize:
		w, h := t.screen.Size()
		t.canvas = term.NewCanvas(w, h)
		t.screen.Sync()
	}
	return true
}

// run pumps terminal events and draws frames until the user quits or ctx
// ends. The screen is finalised on return, which also stops the pump.
func (t *termApp) run(ctx context.Context) error {
	eventChan := make(chan tcell.Event, 100)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})
	eg.Go(func() error {
		defer t.screen.Fini()
		return t.loop(ctx, eventChan)
	})
	return eg.Wait()
}

func (t *termApp) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !t.handleInput(ev) {
				return nil
			}

		case now := <-ticker.C:
			t.app.Update(now.Sub(last))
			last = now
			t.app.Draw(t.canvas)
			t.canvas.Flush(t.screen)
		}
	}
}

func main() {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	log.SetOutput(f)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := demo.New(ctx, cfg, term.NewRenderer(), nil, cfg.Scene.TermZoom)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to create scene: %v\n", err)
		os.Exit(1)
	}

	w, h := screen.Size()
	t := &termApp{screen: screen, app: app, canvas: term.NewCanvas(w, h)}
	if err := t.run(ctx); err != nil {
		log.Printf("Terminal loop failed: %v", err)
	}

	cancel()
	app.Wait()
}
