// Package anim interpolates numeric properties over time. The host loop
// drives an Animator by calling Update with the elapsed frame time.
package anim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing is a gween easing function.
type Easing = ease.TweenFunc

var (
	// Linear interpolates at constant speed.
	Linear Easing = ease.Linear
	// EaseOutQuad decelerates towards the end.
	EaseOutQuad Easing = ease.OutQuad
)

// Tween is a running interpolation.
type Tween struct {
	tw       *gween.Tween
	instant  bool
	to       float64
	set      func(float64)
	done     func()
	finished atomic.Bool
}

// Finished reports whether the tween completed or was stopped. It is safe to
// call from any goroutine.
func (t *Tween) Finished() bool {
	return t.finished.Load()
}

// step advances the tween and reports whether it reached its end.
func (t *Tween) step(dt time.Duration) bool {
	if t.instant {
		t.set(t.to)
		return true
	}
	v, end := t.tw.Update(float32(dt.Seconds()))
	t.set(float64(v))
	return end
}

// Animator owns a set of tweens. Tweens may be created and stopped from any
// goroutine. set callbacks run under the animator's lock and must not call
// back into it; done callbacks run after the lock is released, on the
// goroutine calling Update.
type Animator struct {
	mu     sync.Mutex
	tweens []*Tween
}

// NewAnimator creates an idle animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Tween starts interpolating from -> to over d, calling set with each value.
// set is called with from immediately. done, if non-nil, runs once after the
// final value has been set. A non-positive duration completes on the next
// Update.
func (a *Animator) Tween(from, to float64, d time.Duration, easing Easing, set func(float64), done func()) *Tween {
	if easing == nil {
		easing = Linear
	}
	t := &Tween{
		tw:      gween.New(float32(from), float32(to), float32(d.Seconds()), easing),
		instant: d <= 0,
		to:      to,
		set:     set,
		done:    done,
	}
	set(from)

	a.mu.Lock()
	a.tweens = append(a.tweens, t)
	a.mu.Unlock()
	return t
}

// Stop cancels t without running its done callback. Once Stop returns, set
// is not called for t again.
func (a *Animator) Stop(t *Tween) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, cur := range a.tweens {
		if cur == t {
			t.finished.Store(true)
			a.tweens = append(a.tweens[:i:i], a.tweens[i+1:]...)
			return
		}
	}
}

// Active returns the number of running tweens.
func (a *Animator) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tweens)
}

// Update advances every tween by dt.
func (a *Animator) Update(dt time.Duration) {
	a.mu.Lock()
	var completed []*Tween
	kept := a.tweens[:0]
	for _, t := range a.tweens {
		if t.step(dt) {
			t.finished.Store(true)
			completed = append(completed, t)
		} else {
			kept = append(kept, t)
		}
	}
	clear(a.tweens[len(kept):])
	a.tweens = kept
	a.mu.Unlock()

	for _, t := range completed {
		if t.done != nil {
			t.done()
		}
	}
}
