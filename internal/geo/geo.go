package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/swinglab/swingcheck/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// All positions are in frame pixel space (x right, y down). There is no
// projection step; distances are plain Euclidean pixel distances.

// ErrZeroLength is returned when a direction is requested between two
// coincident (or numerically indistinguishable) points.
var ErrZeroLength = errors.New("zero-length direction vector")

// epsilon below which a vector is treated as degenerate
const epsilon = 1e-9

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b core.Position2D) core.Position2D {
	return core.Position2D{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
	}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b core.Position2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Direction returns the unit vector pointing from `from` to `to` and the
// distance between them. Degenerate (near-zero-length) inputs are rejected.
func Direction(from, to core.Position2D) (core.Position2D, float64, error) {
	length := Distance(from, to)
	if length < epsilon {
		return core.Position2D{}, 0, ErrZeroLength
	}
	return core.Position2D{
		X: (to.X - from.X) / length,
		Y: (to.Y - from.Y) / length,
	}, length, nil
}

// SpineLine builds a two-point LineString from the axis anchor to its top,
// suitable for WKT/WKB export to drawing sinks. A degenerate axis (anchor
// and top coincident) fails geometry validation.
func SpineLine(axis core.SpineAxis) (geom.LineString, error) {
	top := axis.Top()
	seq := geom.NewSequence([]float64{
		axis.Anchor.X, axis.Anchor.Y,
		top.X, top.Y,
	}, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("building spine linestring: %w", err)
	}
	return ls, nil
}

// Point converts a pixel position into a geometry point.
func Point(p core.Position2D) (geom.Point, error) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: p.X, Y: p.Y},
		Type: geom.DimXY,
	})
	if err != nil {
		return geom.Point{}, fmt.Errorf("building point: %w", err)
	}
	return pt, nil
}
