// Package placement implements the template placement widget: a session
// that previews a shape under the pointer, snaps it to the scene grid, and
// reports the confirmed world coordinate or a cancellation exactly once.
//
// All scene and input state is injected. Hosts publish pointer and modifier
// events on an input.Source, advance the Animator and draw the Layer from
// their own loop; callers block in Placer.Place or watch Session.Done.
package placement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/input"
	"chosenoffset.com/templar/internal/scene"
)

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseListening
	PhaseResolved
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseListening:
		return "listening"
	case PhaseResolved:
		return "resolved"
	case PhaseCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseResolved || p == PhaseCancelled
}

// ErrNotIdle is returned when activating a session that already ran.
var ErrNotIdle = errors.New("placement session already activated")

// Session is one placement interaction. Its state is only changed by its own
// event handlers and by Cancel.
type Session struct {
	id      string
	req     Request
	camera  scene.CameraProvider
	grid    scene.GridProvider
	input   input.Source
	policy  FootprintPolicy
	preview *preview
	onEnd   func(*Session)

	mu         sync.Mutex
	phase      Phase
	hasGrid    bool
	free       bool
	current    geom.Point
	lastScreen geom.Point
	hasScreen  bool
	resolver   resolver
	dispatch   *dispatcher
	result     Result

	done chan Result
}

// ID returns the session's log identifier.
func (s *Session) ID() string {
	return s.id
}

// Done returns a channel that receives the result once and is then closed.
// Only the first receive carries the result; use Result or Wait afterwards.
func (s *Session) Done() <-chan Result {
	return s.done
}

// Result returns the outcome and true once the session has left Listening.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.phase.Terminal()
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Activate moves the session from Idle to Listening: it reads the grid once,
// shows the preview and installs the input subscriptions.
func (s *Session) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIdle {
		return fmt.Errorf("%w: session %s is %s", ErrNotIdle, s.id, s.phase)
	}

	grid := s.grid.Grid()
	s.hasGrid = grid.Discrete()
	s.resolver = resolver{camera: s.camera, snap: newSelector(s.req, grid, s.policy)}
	s.free = s.hasGrid && s.input.ModifierHeld()

	if p, ok := s.input.Pointer(); ok {
		s.lastScreen, s.hasScreen = p, true
		s.current = s.resolver.resolve(p, s.free)
	} else if s.req.Origin != nil {
		s.current = *s.req.Origin
	} else {
		s.current = s.resolver.resolve(geom.Point{}, s.free)
	}

	s.phase = PhaseListening
	s.preview.show(s.current)
	s.dispatch = install(s.input, s.hasGrid, handlers{
		move:     s.onMove,
		release:  s.onRelease,
		modifier: s.onModifier,
	})

	log.Printf("[placement] session %s listening (grid=%v strategy=%s range=%v)",
		s.id, s.hasGrid, s.resolver.snap.choose(false), s.req.HasRange())
	return nil
}

// Cancel aborts the session from outside, for example when the scene is torn
// down. It resolves the session with a cancellation if it has not resolved
// yet and is otherwise a no-op.
func (s *Session) Cancel() {
	s.withLock(func() bool {
		if s.phase.Terminal() {
			return false
		}
		s.terminate(PhaseCancelled, Cancellation)
		return true
	})
}

// Wait blocks until the session resolves. If ctx ends first the session is
// cancelled and the cancellation is returned. Every call returns the same
// result.
func (s *Session) Wait(ctx context.Context) Result {
	select {
	case <-s.done:
	case <-ctx.Done():
		s.Cancel()
		<-s.done
	}
	res, _ := s.Result()
	return res
}

func (s *Session) onMove(ev input.Event) {
	s.withLock(func() bool {
		if s.phase != PhaseListening {
			return false
		}
		s.track(ev.Pos)
		return false
	})
}

func (s *Session) onRelease(ev input.Event) {
	s.withLock(func() bool {
		if s.phase != PhaseListening {
			return false
		}
		switch ev.Button {
		case input.ButtonLeft:
			s.track(ev.Pos)
			s.terminate(PhaseResolved, Confirmed(s.current))
			return true
		case input.ButtonRight:
			s.terminate(PhaseCancelled, Cancellation)
			return true
		default:
			return false
		}
	})
}

func (s *Session) onModifier(down bool) {
	s.withLock(func() bool {
		if s.phase != PhaseListening || !s.hasGrid {
			return false
		}
		s.free = down
		if s.hasScreen {
			s.track(s.lastScreen)
		}
		return false
	})
}

// track resolves a new pointer position and moves the preview. Callers hold mu.
func (s *Session) track(screen geom.Point) {
	s.lastScreen, s.hasScreen = screen, true
	s.current = s.resolver.resolve(screen, s.free)
	s.preview.moveTo(s.current)
}

// terminate performs the single transition into a terminal phase: remove
// listeners, start the fade out, then deliver the result. Callers hold mu.
func (s *Session) terminate(phase Phase, res Result) {
	s.phase = phase
	s.result = res
	if s.dispatch != nil {
		s.dispatch.teardown()
	}
	s.preview.hide()

	s.done <- res
	close(s.done)

	if res.Cancelled {
		log.Printf("[placement] session %s cancelled", s.id)
	} else {
		log.Printf("[placement] session %s resolved at (%.1f, %.1f)", s.id, res.Point.X, res.Point.Y)
	}
}

// withLock runs fn under mu and, if fn reports that the session ended, runs
// the end hook after releasing it.
func (s *Session) withLock(fn func() bool) {
	s.mu.Lock()
	ended := fn()
	s.mu.Unlock()
	if ended && s.onEnd != nil {
		s.onEnd(s)
	}
}
