package placement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"chosenoffset.com/templar/internal/input"
	"chosenoffset.com/templar/internal/render"
	"chosenoffset.com/templar/internal/scene"
)

var (
	// ErrSessionActive is returned when a placement is requested while
	// another one is still listening. The placer does not queue requests.
	ErrSessionActive = errors.New("placement session already active")
	// ErrMissingDependency is returned by New when a required collaborator is nil.
	ErrMissingDependency = errors.New("missing placement dependency")
)

// Deps are the host collaborators a placer needs.
type Deps struct {
	Camera   scene.CameraProvider
	Grid     scene.GridProvider
	Input    input.Source
	Layer    Layer
	Animator Animator
	// Textures loads shape textures. Optional.
	Textures render.ResourceLoader
}

func (d Deps) validate() error {
	switch {
	case d.Camera == nil:
		return fmt.Errorf("%w: camera", ErrMissingDependency)
	case d.Grid == nil:
		return fmt.Errorf("%w: grid", ErrMissingDependency)
	case d.Input == nil:
		return fmt.Errorf("%w: input", ErrMissingDependency)
	case d.Layer == nil:
		return fmt.Errorf("%w: layer", ErrMissingDependency)
	case d.Animator == nil:
		return fmt.Errorf("%w: animator", ErrMissingDependency)
	}
	return nil
}

type options struct {
	fade   time.Duration
	policy FootprintPolicy
	newID  func() string
}

// Option configures a Placer.
type Option func(*options)

// WithFade overrides the preview fade duration.
func WithFade(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.fade = d
		}
	}
}

// WithFootprintPolicy replaces the odd/even footprint rule.
func WithFootprintPolicy(p FootprintPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithIDGenerator sets how session ids are generated.
func WithIDGenerator(f func() string) Option {
	return func(o *options) {
		if f != nil {
			o.newID = f
		}
	}
}

// Placer runs placement sessions, one at a time.
type Placer struct {
	deps Deps
	opts options

	mu     sync.Mutex
	active *Session
}

// New creates a placer over the given host collaborators.
func New(deps Deps, opts ...Option) (*Placer, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	o := options{fade: DefaultFade, policy: ParityPolicy{}, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &Placer{deps: deps, opts: o}, nil
}

// Start activates a session for req without waiting for it. The result is
// delivered on the session's Done channel.
func (p *Placer) Start(req Request) (*Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// A session that has resolved but not yet run its end hook no longer
	// blocks a new one.
	if p.active != nil && !p.active.Phase().Terminal() {
		log.Printf("[placement] Error: placement requested while session %s is listening", p.active.id)
		return nil, fmt.Errorf("%w: %s", ErrSessionActive, p.active.id)
	}

	s := &Session{
		id:      p.opts.newID(),
		req:     req,
		camera:  p.deps.Camera,
		grid:    p.deps.Grid,
		input:   p.deps.Input,
		policy:  p.opts.policy,
		preview: newPreview(req, p.deps.Layer, p.deps.Animator, p.deps.Textures, p.opts.fade),
		onEnd:   p.release,
		done:    make(chan Result, 1),
	}
	if err := s.Activate(); err != nil {
		return nil, err
	}
	p.active = s
	return s, nil
}

// Place shows the preview for req and blocks until the user confirms or
// cancels, or ctx ends. Cancellation is reported in the Result; the error is
// only set for invalid requests and overlapping placements.
func (p *Placer) Place(ctx context.Context, req Request) (Result, error) {
	s, err := p.Start(req)
	if err != nil {
		return Result{}, err
	}
	return s.Wait(ctx), nil
}

// Abort cancels the listening session, if any.
func (p *Placer) Abort() {
	p.mu.Lock()
	s := p.active
	p.mu.Unlock()
	if s != nil {
		s.Cancel()
	}
}

func (p *Placer) release(s *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == s {
		p.active = nil
	}
}
