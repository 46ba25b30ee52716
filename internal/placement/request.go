package placement

import (
	"errors"
	"fmt"
	"image/color"

	"chosenoffset.com/templar/internal/core/geom"
)

// ShapeKind selects the outline of the previewed template.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeSquare
)

// Shape describes the template being placed.
type Shape struct {
	Kind ShapeKind
	// Size is the radius of a circle or the side length of a square, in
	// world units.
	Size        float64
	Fill        color.Color
	Border      color.Color
	BorderWidth float64
	// Texture is an optional image drawn inside the shape. A texture that
	// fails to load leaves the plain shape.
	Texture string
}

// Extent returns the shape's width across in world units.
func (s Shape) Extent() float64 {
	if s.Kind == ShapeCircle {
		return 2 * s.Size
	}
	return s.Size
}

// Granularity says whether the shape's footprint covers an odd or even
// number of grid cells.
type Granularity int

const (
	// GranularityAuto derives parity from the shape extent and grid size
	// using the placer's FootprintPolicy.
	GranularityAuto Granularity = iota
	// GranularityOdd centers the shape on a cell.
	GranularityOdd
	// GranularityEven puts the shape's center on a cell corner or edge.
	GranularityEven
)

// SnapMode chooses the grid point used for even footprints.
type SnapMode int

const (
	// SnapTopLeft snaps to the top-left vertex of the cell under the pointer.
	SnapTopLeft SnapMode = iota
	// SnapNearestVertex snaps to the closest grid vertex.
	SnapNearestVertex
	// SnapEdgeMidpoint snaps to the midpoint of the closest cell edge.
	SnapEdgeMidpoint
)

// Request is everything a caller supplies for one placement.
type Request struct {
	Shape Shape
	// Origin anchors the range ring. Nil means no ring.
	Origin *geom.Point
	// MaxRange is the ring radius in world units. Zero means no ring.
	MaxRange    float64
	Granularity Granularity
	EvenMode    SnapMode
}

// HasRange reports whether a range ring should be drawn.
func (r Request) HasRange() bool {
	return r.Origin != nil && r.MaxRange > 0
}

// ErrInvalidRequest is returned for requests that cannot be previewed.
var ErrInvalidRequest = errors.New("invalid placement request")

// Validate checks the request for values the widget cannot honour.
func (r Request) Validate() error {
	if r.Shape.Size <= 0 {
		return fmt.Errorf("%w: shape size must be positive, got %v", ErrInvalidRequest, r.Shape.Size)
	}
	if r.Shape.Kind != ShapeCircle && r.Shape.Kind != ShapeSquare {
		return fmt.Errorf("%w: unknown shape kind %d", ErrInvalidRequest, r.Shape.Kind)
	}
	if r.MaxRange < 0 {
		return fmt.Errorf("%w: max range must not be negative, got %v", ErrInvalidRequest, r.MaxRange)
	}
	if r.Granularity < GranularityAuto || r.Granularity > GranularityEven {
		return fmt.Errorf("%w: unknown granularity %d", ErrInvalidRequest, r.Granularity)
	}
	if r.EvenMode < SnapTopLeft || r.EvenMode > SnapEdgeMidpoint {
		return fmt.Errorf("%w: unknown snap mode %d", ErrInvalidRequest, r.EvenMode)
	}
	return nil
}

// Result is the outcome of a placement: a world coordinate, or a
// cancellation. Cancellation is an expected outcome, not an error.
type Result struct {
	Point     geom.Point
	Cancelled bool
}

// Confirmed builds a confirmed result.
func Confirmed(p geom.Point) Result {
	return Result{Point: p}
}

// Cancellation is the result of an aborted placement.
var Cancellation = Result{Cancelled: true}
