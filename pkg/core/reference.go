// pkg/core/reference.go
package core

// SpineAxis is the reference line through the body, anchored at the hip
// midpoint with a unit direction toward the shoulder midpoint.
type SpineAxis struct {
	Anchor    Position2D `json:"anchor"`    // hip midpoint
	Direction Position2D `json:"direction"` // unit vector, hip -> shoulder
	Length    float64    `json:"length"`    // hip midpoint to shoulder midpoint distance
}

// Top returns the shoulder-end point of the axis.
func (a SpineAxis) Top() Position2D {
	return Position2D{
		X: a.Anchor.X + a.Direction.X*a.Length,
		Y: a.Anchor.Y + a.Direction.Y*a.Length,
	}
}

// HeadBoundary is the circular containment region anchored at the
// calibration head position. Radius is always > 0.
type HeadBoundary struct {
	Center Position2D `json:"center"`
	Radius float64    `json:"radius"`
}

// Reference is the fixed geometry a swing is analyzed against. It is built
// once from the calibration frame and read-only afterwards.
type Reference struct {
	Spine    SpineAxis    `json:"spine"`
	Boundary HeadBoundary `json:"boundary"`
}
