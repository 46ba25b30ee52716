package placement

import (
	"math"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/scene"
)

// Strategy is the transformation applied to a world coordinate.
type Strategy int

const (
	StrategyFree Strategy = iota
	StrategyCenter
	StrategyCorner
)

func (s Strategy) String() string {
	switch s {
	case StrategyCenter:
		return "center"
	case StrategyCorner:
		return "corner"
	default:
		return "free"
	}
}

// FootprintPolicy picks the grid-locked strategy for a shape on a discrete
// grid. It is consulted once per session.
type FootprintPolicy interface {
	Strategy(shape Shape, grid scene.Grid) Strategy
}

// FootprintFunc adapts a function to FootprintPolicy.
type FootprintFunc func(shape Shape, grid scene.Grid) Strategy

// Strategy implements FootprintPolicy.
func (f FootprintFunc) Strategy(shape Shape, grid scene.Grid) Strategy {
	return f(shape, grid)
}

// ParityPolicy centers shapes whose extent covers an odd number of cells and
// corner-snaps shapes covering an even number. Extents under one cell count
// as one.
type ParityPolicy struct{}

// Strategy implements FootprintPolicy.
func (ParityPolicy) Strategy(shape Shape, grid scene.Grid) Strategy {
	units := int(math.Round(shape.Extent() / grid.Size))
	if units < 1 {
		units = 1
	}
	if units%2 == 0 {
		return StrategyCorner
	}
	return StrategyCenter
}

// selector holds the per-session snapping decision. The grid-locked strategy
// is fixed at activation; whether free positioning overrides it is decided
// on every call.
type selector struct {
	grid     scene.Grid
	locked   Strategy
	evenMode SnapMode
}

func newSelector(req Request, grid scene.Grid, policy FootprintPolicy) selector {
	s := selector{grid: grid, locked: StrategyFree, evenMode: req.EvenMode}
	if !grid.Discrete() {
		return s
	}
	switch req.Granularity {
	case GranularityOdd:
		s.locked = StrategyCenter
	case GranularityEven:
		s.locked = StrategyCorner
	default:
		s.locked = policy.Strategy(req.Shape, grid)
	}
	return s
}

// choose returns the strategy for the current modifier state.
func (s selector) choose(free bool) Strategy {
	if !s.grid.Discrete() || free {
		return StrategyFree
	}
	return s.locked
}

func (s selector) apply(p geom.Point, free bool) geom.Point {
	switch s.choose(free) {
	case StrategyCenter:
		return s.grid.CellCenter(p)
	case StrategyCorner:
		switch s.evenMode {
		case SnapNearestVertex:
			return s.grid.NearestVertex(p)
		case SnapEdgeMidpoint:
			return s.grid.EdgeMidpoint(p)
		default:
			return s.grid.TopLeft(p)
		}
	default:
		return p
	}
}

// resolver converts screen positions to snapped world positions.
type resolver struct {
	camera scene.CameraProvider
	snap   selector
}

// resolve applies the camera transform and then the snapping policy.
func (r resolver) resolve(screen geom.Point, free bool) geom.Point {
	world := r.camera.Camera().ScreenToWorld(screen)
	return r.snap.apply(world, free)
}
