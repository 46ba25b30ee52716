// Package scene describes the read-only scene metadata the placement widget
// consumes: grid layout and the camera transform.
package scene

import (
	"math"

	"chosenoffset.com/templar/internal/core/geom"
)

// GridType identifies how a scene is tiled.
type GridType int

const (
	// GridGridless is a continuous scene with no tiling.
	GridGridless GridType = iota
	// GridSquare is a regular square tiling.
	GridSquare
)

// String returns the config name of the grid type.
func (t GridType) String() string {
	switch t {
	case GridSquare:
		return "square"
	default:
		return "gridless"
	}
}

// Grid describes the scene's tiling.
type Grid struct {
	Type GridType
	Size float64 // Cell edge length in world units
}

// Discrete reports whether the grid has cells a position can be snapped to.
func (g Grid) Discrete() bool {
	return g.Type != GridGridless && g.Size > 0
}

// Cell returns the grid coordinate of the cell containing p.
func (g Grid) Cell(p geom.Point) geom.Coord {
	if !g.Discrete() {
		return geom.Coord{}
	}
	return geom.Coord{
		X: int(math.Floor(p.X / g.Size)),
		Y: int(math.Floor(p.Y / g.Size)),
	}
}

// CellCenter returns the center of the cell containing p.
func (g Grid) CellCenter(p geom.Point) geom.Point {
	if !g.Discrete() {
		return p
	}
	return geom.Point{
		X: (math.Floor(p.X/g.Size) + 0.5) * g.Size,
		Y: (math.Floor(p.Y/g.Size) + 0.5) * g.Size,
	}
}

// TopLeft returns the top-left vertex of the cell containing p.
func (g Grid) TopLeft(p geom.Point) geom.Point {
	if !g.Discrete() {
		return p
	}
	return geom.Point{
		X: math.Floor(p.X/g.Size) * g.Size,
		Y: math.Floor(p.Y/g.Size) * g.Size,
	}
}

// NearestVertex returns the grid vertex closest to p.
func (g Grid) NearestVertex(p geom.Point) geom.Point {
	if !g.Discrete() {
		return p
	}
	return geom.Point{
		X: math.Round(p.X/g.Size) * g.Size,
		Y: math.Round(p.Y/g.Size) * g.Size,
	}
}

// EdgeMidpoint returns the midpoint of the cell edge closest to p.
func (g Grid) EdgeMidpoint(p geom.Point) geom.Point {
	if !g.Discrete() {
		return p
	}
	s := g.Size
	// Midpoint of the nearest horizontal edge, then of the nearest vertical edge.
	horiz := geom.Point{X: (math.Floor(p.X/s) + 0.5) * s, Y: math.Round(p.Y/s) * s}
	vert := geom.Point{X: math.Round(p.X/s) * s, Y: (math.Floor(p.Y/s) + 0.5) * s}
	if p.Dist(vert) < p.Dist(horiz) {
		return vert
	}
	return horiz
}

// GridProvider supplies the grid of the current scene.
type GridProvider interface {
	Grid() Grid
}

// StaticGrid is a GridProvider that always returns the same grid.
type StaticGrid Grid

// Grid implements GridProvider.
func (g StaticGrid) Grid() Grid {
	return Grid(g)
}
