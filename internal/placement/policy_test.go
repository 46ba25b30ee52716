package placement

import (
	"testing"

	"chosenoffset.com/templar/internal/core/geom"
	"chosenoffset.com/templar/internal/scene"
)

var squareGrid = scene.Grid{Type: scene.GridSquare, Size: 100}

func TestParityPolicy(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  Strategy
	}{
		{"one cell circle", Shape{Kind: ShapeCircle, Size: 50}, StrategyCenter},
		{"two cell circle", Shape{Kind: ShapeCircle, Size: 100}, StrategyCorner},
		{"three cell square", Shape{Kind: ShapeSquare, Size: 300}, StrategyCenter},
		{"four cell square", Shape{Kind: ShapeSquare, Size: 400}, StrategyCorner},
		{"sub cell circle", Shape{Kind: ShapeCircle, Size: 10}, StrategyCenter},
	}

	for _, tt := range tests {
		if got := (ParityPolicy{}).Strategy(tt.shape, squareGrid); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, got)
		}
	}
}

func TestSelectorGridless(t *testing.T) {
	grid := scene.Grid{Type: scene.GridGridless}
	sel := newSelector(Request{Shape: Shape{Size: 50}}, grid, ParityPolicy{})
	p := geom.Pt(137.4, 52.9)

	for _, free := range []bool{false, true} {
		if s := sel.choose(free); s != StrategyFree {
			t.Errorf("free=%v: expected free strategy on gridless scene, got %s", free, s)
		}
		if got := sel.apply(p, free); got != p {
			t.Errorf("free=%v: expected %v, got %v", free, p, got)
		}
	}
}

func TestSelectorGranularityOverridesPolicy(t *testing.T) {
	// A one-cell circle would be centered by the parity rule.
	req := Request{Shape: Shape{Size: 50}, Granularity: GranularityEven}
	sel := newSelector(req, squareGrid, ParityPolicy{})

	if got := sel.apply(geom.Pt(137.4, 52.9), false); got != geom.Pt(100, 0) {
		t.Errorf("Expected (100, 0), got %v", got)
	}

	req = Request{Shape: Shape{Size: 100}, Granularity: GranularityOdd}
	sel = newSelector(req, squareGrid, ParityPolicy{})
	if got := sel.apply(geom.Pt(137.4, 52.9), false); got != geom.Pt(150, 50) {
		t.Errorf("Expected (150, 50), got %v", got)
	}
}

func TestSelectorEvenModes(t *testing.T) {
	p := geom.Pt(137.4, 52.9)
	tests := []struct {
		mode SnapMode
		want geom.Point
	}{
		{SnapTopLeft, geom.Pt(100, 0)},
		{SnapNearestVertex, geom.Pt(100, 100)},
		{SnapEdgeMidpoint, geom.Pt(100, 50)},
	}

	for _, tt := range tests {
		req := Request{Shape: Shape{Size: 100}, EvenMode: tt.mode}
		sel := newSelector(req, squareGrid, ParityPolicy{})
		if got := sel.apply(p, false); got != tt.want {
			t.Errorf("mode %d: expected %v, got %v", tt.mode, tt.want, got)
		}
		if got := sel.apply(p, true); got != p {
			t.Errorf("mode %d with modifier: expected %v, got %v", tt.mode, p, got)
		}
	}
}

func TestResolverAppliesCamera(t *testing.T) {
	r := resolver{
		camera: scene.StaticCamera{X: 100, Y: 100, Zoom: 2},
		snap:   newSelector(Request{Shape: Shape{Size: 50}}, squareGrid, ParityPolicy{}),
	}

	// Screen (20, 10) is world (110, 105), inside cell (1, 1).
	if got := r.resolve(geom.Pt(20, 10), false); got != geom.Pt(150, 150) {
		t.Errorf("Expected (150, 150), got %v", got)
	}
	if got := r.resolve(geom.Pt(20, 10), true); got != geom.Pt(110, 105) {
		t.Errorf("Expected (110, 105), got %v", got)
	}
}

func TestRequestValidate(t *testing.T) {
	origin := geom.Pt(0, 0)
	valid := Request{Shape: Shape{Size: 50}, Origin: &origin, MaxRange: 300}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}
	if !valid.HasRange() {
		t.Error("Expected request with origin and range to have a ring")
	}

	if (Request{Shape: Shape{Size: 50}, MaxRange: 300}).HasRange() {
		t.Error("Expected range without origin to have no ring")
	}

	invalid := []Request{
		{Shape: Shape{Size: 0}},
		{Shape: Shape{Size: 50, Kind: ShapeKind(9)}},
		{Shape: Shape{Size: 50}, MaxRange: -1},
		{Shape: Shape{Size: 50}, Granularity: Granularity(7)},
		{Shape: Shape{Size: 50}, EvenMode: SnapMode(7)},
	}
	for i, req := range invalid {
		if err := req.Validate(); err == nil {
			t.Errorf("Request %d: expected validation error", i)
		}
	}
}
