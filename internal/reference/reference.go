// Package reference builds the fixed per-swing geometry: the spine axis and
// the head boundary circle, both derived from a single calibration frame.
// Building is a pure function of its inputs; identical calibration data
// always produces bit-identical geometry.
package reference

import (
	"errors"
	"fmt"

	"github.com/swinglab/swingcheck/internal/geo"
	"github.com/swinglab/swingcheck/pkg/core"
)

// ErrInsufficientLandmarks is returned when the calibration frame lacks a
// required landmark, or carries it below the confidence threshold. Fatal:
// no frame processing may start after this.
var ErrInsufficientLandmarks = errors.New("calibration frame missing required landmarks")

// ErrDegenerateGeometry is returned when the body-scale reference
// (shoulder width or spine length) collapses to zero. Fatal, same stage.
var ErrDegenerateGeometry = errors.New("degenerate calibration geometry")

// DefaultRadiusScale sizes the head boundary relative to shoulder width
// when no explicit radius is configured. Shoulder width tracks subject
// distance from camera, so the default stays stable across resolutions.
const DefaultRadiusScale = 0.5

// Config controls how the reference geometry is derived.
type Config struct {
	// Radius overrides the default shoulder-width-derived boundary radius
	// when > 0.
	Radius float64

	// ConfidenceThreshold is the minimum landmark confidence for the
	// calibration frame to be usable.
	ConfidenceThreshold float64
}

// Build derives the spine axis and head boundary from the calibration
// landmark set.
func Build(calibration core.LandmarkSet, cfg Config) (core.Reference, error) {
	if !calibration.Complete(cfg.ConfidenceThreshold) {
		return core.Reference{}, ErrInsufficientLandmarks
	}

	shoulderL, _ := calibration.Get(core.LandmarkShoulderLeft)
	shoulderR, _ := calibration.Get(core.LandmarkShoulderRight)
	hipL, _ := calibration.Get(core.LandmarkHipLeft)
	hipR, _ := calibration.Get(core.LandmarkHipRight)
	head, _ := calibration.Get(core.LandmarkHead)

	shoulderMid := geo.Midpoint(shoulderL.Position, shoulderR.Position)
	hipMid := geo.Midpoint(hipL.Position, hipR.Position)

	// Axis is anchored at the hip midpoint, pointing at the shoulder midpoint.
	direction, length, err := geo.Direction(hipMid, shoulderMid)
	if err != nil {
		return core.Reference{}, fmt.Errorf("%w: spine axis: %w", ErrDegenerateGeometry, err)
	}

	radius := cfg.Radius
	if radius <= 0 {
		shoulderWidth := geo.Distance(shoulderL.Position, shoulderR.Position)
		radius = shoulderWidth * DefaultRadiusScale
		if radius <= 0 {
			return core.Reference{}, fmt.Errorf("%w: zero shoulder width", ErrDegenerateGeometry)
		}
	}

	return core.Reference{
		Spine: core.SpineAxis{
			Anchor:    hipMid,
			Direction: direction,
			Length:    length,
		},
		Boundary: core.HeadBoundary{
			Center: head.Position,
			Radius: radius,
		},
	}, nil
}
