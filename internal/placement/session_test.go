package placement

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/input"
	"chosenoffset.com/templar/internal/render"
	"chosenoffset.com/templar/internal/render/anim"
	mockrender "chosenoffset.com/templar/internal/render/mock"
	"chosenoffset.com/templar/internal/scene"
)

var (
	oddShape  = Shape{Kind: ShapeCircle, Size: 50}  // one cell across
	evenShape = Shape{Kind: ShapeCircle, Size: 100} // two cells across
	gridless  = scene.Grid{Type: scene.GridGridless}
)

const (
	assertTimeout = time.Second
	assertTick    = 5 * time.Millisecond
)

type harness struct {
	bus      *input.Bus
	layer    *render.Layer
	animator *anim.Animator
	placer   *Placer
}

func newHarness(t *testing.T, grid scene.Grid, textures render.ResourceLoader, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		bus:      input.NewBus(),
		layer:    render.NewLayer(),
		animator: anim.NewAnimator(),
	}
	opts = append([]Option{WithIDGenerator(func() string { return "test-session" })}, opts...)
	p, err := New(Deps{
		Camera:   scene.StaticCamera{Zoom: 1},
		Grid:     scene.StaticGrid(grid),
		Input:    h.bus,
		Layer:    h.layer,
		Animator: h.animator,
		Textures: textures,
	}, opts...)
	require.NoError(t, err)
	h.placer = p
	return h
}

func (h *harness) start(t *testing.T, req Request) *Session {
	t.Helper()
	s, err := h.placer.Start(req)
	require.NoError(t, err)
	return s
}

func (h *harness) listeners() int {
	n := 0
	for _, k := range []input.EventKind{input.PointerMove, input.PointerUp, input.ModifierDown, input.ModifierUp} {
		n += h.bus.Len(k)
	}
	return n
}

func requireResult(t *testing.T, s *Session) Result {
	t.Helper()
	select {
	case res := <-s.Done():
		return res
	default:
		require.FailNow(t, "session has not resolved")
		return Result{}
	}
}

func TestPlacementScenarios(t *testing.T) {
	tests := []struct {
		name     string
		grid     scene.Grid
		shape    Shape
		modifier bool
		want     geom.Point
	}{
		{"gridless scene keeps raw position", gridless, oddShape, false, geom.Pt(137.4, 52.9)},
		{"even footprint snaps to corner", squareGrid, evenShape, false, geom.Pt(100, 0)},
		{"odd footprint snaps to center", squareGrid, oddShape, false, geom.Pt(150, 50)},
		{"modifier overrides snapping", squareGrid, evenShape, true, geom.Pt(137.4, 52.9)},
		{"modifier on gridless scene is ignored", gridless, evenShape, true, geom.Pt(137.4, 52.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.grid, nil)
			s := h.start(t, Request{Shape: tt.shape})

			if tt.modifier {
				h.bus.Publish(input.Event{Kind: input.ModifierDown})
			}
			h.bus.Publish(input.Move(137.4, 52.9))
			h.bus.Publish(input.Release(137.4, 52.9, input.ButtonLeft))

			res := requireResult(t, s)
			assert.False(t, res.Cancelled)
			assert.Equal(t, tt.want, res.Point)
			assert.Equal(t, PhaseResolved, s.Phase())
		})
	}
}

func TestModifierHeldBeforeActivation(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	h.bus.Publish(input.Event{Kind: input.ModifierDown})
	h.bus.Publish(input.Move(137.4, 52.9))

	s := h.start(t, Request{Shape: evenShape})
	assert.Equal(t, geom.Pt(137.4, 52.9), s.preview.shape.position())

	h.bus.Publish(input.Release(137.4, 52.9, input.ButtonLeft))
	assert.Equal(t, Confirmed(geom.Pt(137.4, 52.9)), requireResult(t, s))
}

func TestRightClickCancelsAndRemovesVisuals(t *testing.T) {
	origin := geom.Pt(0, 0)
	h := newHarness(t, squareGrid, nil)
	s := h.start(t, Request{Shape: oddShape, Origin: &origin, MaxRange: 500})
	require.Equal(t, 2, h.layer.Len())

	h.bus.Publish(input.Move(137.4, 52.9))
	h.bus.Publish(input.Release(137.4, 52.9, input.ButtonRight))

	res := requireResult(t, s)
	assert.True(t, res.Cancelled)
	assert.Equal(t, PhaseCancelled, s.Phase())
	assert.Equal(t, 0, h.listeners())

	// The nodes stay attached while they fade out.
	h.animator.Update(DefaultFade / 2)
	assert.Equal(t, 2, h.layer.Len())
	h.animator.Update(DefaultFade)
	assert.Equal(t, 0, h.layer.Len())
}

func TestOtherButtonsAreIgnored(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	h.bus.Publish(input.Release(10, 10, input.ButtonMiddle))
	h.bus.Publish(input.Release(10, 10, input.ButtonOther))

	assert.Equal(t, PhaseListening, s.Phase())
	select {
	case <-s.Done():
		t.Fatal("Expected session to keep listening")
	default:
	}
}

func TestModifierToggleRedrawsImmediately(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	s := h.start(t, Request{Shape: evenShape})

	h.bus.Publish(input.Move(137.4, 52.9))
	assert.Equal(t, geom.Pt(100, 0), s.preview.shape.position())

	h.bus.Publish(input.Event{Kind: input.ModifierDown})
	assert.Equal(t, geom.Pt(137.4, 52.9), s.preview.shape.position())

	h.bus.Publish(input.Event{Kind: input.ModifierUp})
	assert.Equal(t, geom.Pt(100, 0), s.preview.shape.position())
}

func TestGridlessSceneSkipsModifierListeners(t *testing.T) {
	h := newHarness(t, gridless, nil)
	h.start(t, Request{Shape: oddShape})

	assert.Equal(t, 1, h.bus.Len(input.PointerMove))
	assert.Equal(t, 1, h.bus.Len(input.PointerUp))
	assert.Equal(t, 0, h.bus.Len(input.ModifierDown))
	assert.Equal(t, 0, h.bus.Len(input.ModifierUp))
}

func TestGridSceneInstallsModifierListeners(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	h.start(t, Request{Shape: oddShape})

	assert.Equal(t, 4, h.listeners())
}

func TestTeardownIsIdempotent(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	s := h.start(t, Request{Shape: oddShape})

	h.bus.Publish(input.Release(137.4, 52.9, input.ButtonLeft))
	s.Cancel()
	s.Cancel()
	s.dispatch.teardown()

	assert.Equal(t, Confirmed(geom.Pt(150, 50)), requireResult(t, s))
	_, open := <-s.Done()
	assert.False(t, open, "result channel should be closed after the single result")
	assert.Equal(t, PhaseResolved, s.Phase())
	assert.Equal(t, 0, h.listeners())
	assert.Equal(t, 0, s.dispatch.installed())
}

func TestPreviewFrozenAfterResolve(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	h.bus.Publish(input.Release(10, 20, input.ButtonLeft))
	s.preview.moveTo(geom.Pt(500, 500))
	h.bus.Publish(input.Move(300, 300))

	assert.Equal(t, geom.Pt(10, 20), s.preview.shape.position())
}

func TestRangeRingStaysAtOrigin(t *testing.T) {
	origin := geom.Pt(250, 250)
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape, Origin: &origin, MaxRange: 300})
	require.NotNil(t, s.preview.ring)

	h.bus.Publish(input.Move(10, 10))
	h.bus.Publish(input.Move(400, 20))

	assert.Equal(t, origin, s.preview.ring.origin)
	assert.Equal(t, geom.Pt(400, 20), s.preview.shape.position())
}

func TestNoRingWithoutOrigin(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape, MaxRange: 300})

	assert.Nil(t, s.preview.ring)
	assert.Equal(t, 1, h.layer.Len())
}

func TestSecondStartWhileListeningFails(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	_, err := h.placer.Start(Request{Shape: oddShape})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionActive))

	h.bus.Publish(input.Release(0, 0, input.ButtonRight))
	requireResult(t, s)

	next := h.start(t, Request{Shape: oddShape})
	assert.Equal(t, PhaseListening, next.Phase())
}

func TestActivateTwiceFails(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	err := s.Activate()
	assert.True(t, errors.Is(err, ErrNotIdle))
}

func TestPlaceWithEndedContextCancels(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := h.placer.Place(ctx, Request{Shape: oddShape})
	require.NoError(t, err)
	assert.Equal(t, Cancellation, res)
	assert.Equal(t, 0, h.listeners())

	_, err = h.placer.Start(Request{Shape: oddShape})
	assert.NoError(t, err, "placer should accept a new request after cancellation")
}

func TestPlaceReturnsConfirmedPoint(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	h.bus.Publish(input.Move(137.4, 52.9))

	resCh := make(chan Result, 1)
	go func() {
		res, err := h.placer.Place(context.Background(), Request{Shape: oddShape})
		assert.NoError(t, err)
		resCh <- res
	}()

	// Wait for the session to subscribe before clicking.
	require.Eventually(t, func() bool { return h.bus.Len(input.PointerUp) == 1 }, assertTimeout, assertTick)
	h.bus.Publish(input.Release(137.4, 52.9, input.ButtonLeft))

	assert.Equal(t, Confirmed(geom.Pt(150, 50)), <-resCh)
}

func TestAbortCancelsActiveSession(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	h.placer.Abort()
	h.placer.Abort()

	assert.Equal(t, Cancellation, requireResult(t, s))
}

func TestWaitTwiceReturnsSameCancellation(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	h.bus.Publish(input.Release(0, 0, input.ButtonRight))

	ctx := context.Background()
	assert.Equal(t, Cancellation, s.Wait(ctx))
	assert.Equal(t, Cancellation, s.Wait(ctx), "a second wait must not report a confirmed point")
}

func TestWaitAfterDoneReturnsResult(t *testing.T) {
	h := newHarness(t, squareGrid, nil)
	s := h.start(t, Request{Shape: oddShape})

	h.bus.Publish(input.Release(137.4, 52.9, input.ButtonLeft))

	want := Confirmed(geom.Pt(150, 50))
	assert.Equal(t, want, requireResult(t, s))
	assert.Equal(t, want, s.Wait(context.Background()))

	res, ok := s.Result()
	assert.True(t, ok)
	assert.Equal(t, want, res)
}

func TestResultBeforeResolve(t *testing.T) {
	h := newHarness(t, gridless, nil)
	s := h.start(t, Request{Shape: oddShape})

	_, ok := s.Result()
	assert.False(t, ok)

	s.Cancel()
	res, ok := s.Result()
	assert.True(t, ok)
	assert.Equal(t, Cancellation, res)
}

func TestInvalidRequest(t *testing.T) {
	h := newHarness(t, gridless, nil)
	_, err := h.placer.Place(context.Background(), Request{})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Deps{Camera: scene.StaticCamera{}})
	assert.True(t, errors.Is(err, ErrMissingDependency))
}

func TestCustomFootprintPolicy(t *testing.T) {
	h := newHarness(t, squareGrid, nil, WithFootprintPolicy(FootprintFunc(func(Shape, scene.Grid) Strategy {
		return StrategyCorner
	})))
	s := h.start(t, Request{Shape: oddShape})

	h.bus.Publish(input.Release(137.4, 52.9, input.ButtonLeft))
	assert.Equal(t, Confirmed(geom.Pt(100, 0)), requireResult(t, s))
}

func TestMissingTextureFallsBackToPlainShape(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mockrender.NewMockResourceLoader(ctrl)
	loader.EXPECT().LoadImage("missing.png").Return(nil, errors.New("file not found"))

	h := newHarness(t, gridless, loader)
	s := h.start(t, Request{Shape: Shape{Kind: ShapeCircle, Size: 50, Texture: "missing.png"}})
	h.animator.Update(DefaultFade)

	rec := &recordingRenderer{}
	h.layer.Draw(rec, nil, scene.Camera{})
	assert.Equal(t, 1, rec.fills)
	assert.Equal(t, 1, rec.strokes)

	h.bus.Publish(input.Release(5, 5, input.ButtonLeft))
	assert.Equal(t, Confirmed(geom.Pt(5, 5)), requireResult(t, s))
}

func TestTextureDisposedAfterFadeOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	tex := mockrender.NewMockImage(ctrl)
	loader := mockrender.NewMockResourceLoader(ctrl)
	loader.EXPECT().LoadImage("fire.png").Return(tex, nil)
	tex.EXPECT().Dispose().Times(1)

	h := newHarness(t, gridless, loader)
	s := h.start(t, Request{Shape: Shape{Kind: ShapeCircle, Size: 50, Texture: "fire.png"}})

	h.bus.Publish(input.Release(5, 5, input.ButtonRight))
	requireResult(t, s)
	h.animator.Update(DefaultFade)
	h.animator.Update(DefaultFade)

	assert.Equal(t, 0, h.layer.Len())
}

func TestShapeDrawsAtScreenPosition(t *testing.T) {
	h := newHarness(t, gridless, nil)
	h.start(t, Request{Shape: Shape{Kind: ShapeSquare, Size: 40, Fill: color.White}})
	h.bus.Publish(input.Move(100, 60))
	h.animator.Update(DefaultFade)

	rec := &recordingRenderer{}
	h.layer.Draw(rec, nil, scene.Camera{X: 50, Zoom: 2})

	// World (100, 60) is screen (100, 120); a 40 unit square is 80 pixels.
	require.Len(t, rec.rects, 1)
	assert.Equal(t, [4]float32{60, 80, 80, 80}, rec.rects[0])
}

type recordingRenderer struct {
	fills   int
	strokes int
	rects   [][4]float32
}

func (r *recordingRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) {
	r.fills++
}
func (r *recordingRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {
	r.strokes++
}
func (r *recordingRenderer) FillRect(_ render.Image, x, y, w, h float32, _ color.Color) {
	r.fills++
	r.rects = append(r.rects, [4]float32{x, y, w, h})
}
func (r *recordingRenderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.strokes++
}
func (r *recordingRenderer) DrawText(render.Image, string, int, int, color.Color, float64) {}
func (r *recordingRenderer) MeasureText(string, float64) (int, int) { return 0, 0 }
