package classify

import (
	"testing"

	"github.com/swinglab/swingcheck/pkg/core"
)

func testReference() core.Reference {
	return core.Reference{
		Spine: core.SpineAxis{
			Anchor:    core.Position2D{X: 100, Y: 300},
			Direction: core.Position2D{X: 0, Y: -1},
			Length:    120,
		},
		Boundary: core.HeadBoundary{
			Center: core.Position2D{X: 100, Y: 100},
			Radius: 20,
		},
	}
}

func headSet(x, y float64) core.LandmarkSet {
	return core.LandmarkSet{
		core.LandmarkHead: {
			Name:       core.LandmarkHead,
			Position:   core.Position2D{X: x, Y: y},
			Confidence: 0.9,
		},
	}
}

func TestEvaluate_InsideBoundary(t *testing.T) {
	v := Evaluate(testReference(), 2, core.Position2D{X: 110, Y: 100})

	if v.Distance != 10 {
		t.Errorf("expected distance 10, got %f", v.Distance)
	}
	if !v.InBounds {
		t.Error("expected in bounds")
	}
	if !v.Detected {
		t.Error("expected detected")
	}
}

func TestEvaluate_OutsideBoundary(t *testing.T) {
	v := Evaluate(testReference(), 3, core.Position2D{X: 125, Y: 100})

	if v.Distance != 25 {
		t.Errorf("expected distance 25, got %f", v.Distance)
	}
	if v.InBounds {
		t.Error("expected out of bounds")
	}
}

func TestEvaluate_ExactlyAtRadiusIsInBounds(t *testing.T) {
	v := Evaluate(testReference(), 1, core.Position2D{X: 120, Y: 100})

	if v.Distance != 20 {
		t.Errorf("expected distance 20, got %f", v.Distance)
	}
	if !v.InBounds {
		t.Error("expected boundary-inclusive in bounds at distance == radius")
	}
}

func TestEvaluate_JustPastRadiusIsOut(t *testing.T) {
	v := Evaluate(testReference(), 1, core.Position2D{X: 120.001, Y: 100})

	if v.InBounds {
		t.Errorf("expected out of bounds at distance %f", v.Distance)
	}
}

func TestClassify_CarryForward(t *testing.T) {
	c := New(testReference())

	out := c.Classify(1, headSet(125, 100), true)
	if out.InBounds {
		t.Fatal("expected out of bounds")
	}

	carried := c.Classify(2, nil, false)
	if carried.Detected {
		t.Error("expected undetected verdict")
	}
	if carried.InBounds {
		t.Error("expected carried in_bounds=false from previous frame")
	}
	if carried.HeadPosition != out.HeadPosition {
		t.Errorf("expected carried head position %+v, got %+v", out.HeadPosition, carried.HeadPosition)
	}
	if carried.FrameIndex != 2 {
		t.Errorf("expected frame index 2, got %d", carried.FrameIndex)
	}
}

func TestClassify_UndetectedBeforeFirstDetection(t *testing.T) {
	c := New(testReference())

	v := c.Classify(0, nil, false)

	if v.Detected {
		t.Error("expected undetected verdict")
	}
	if !v.InBounds {
		t.Error("expected neutral in-bounds before first detection")
	}
	if v.HeadPosition != testReference().Boundary.Center {
		t.Errorf("expected boundary center, got %+v", v.HeadPosition)
	}
}

func TestClassify_DetectedFlagWithoutHeadLandmark(t *testing.T) {
	c := New(testReference())
	c.Classify(0, headSet(110, 100), true)

	// A frame flagged detected but missing the head landmark degrades to
	// the carry-forward path.
	v := c.Classify(1, core.LandmarkSet{}, true)

	if v.Detected {
		t.Error("expected undetected verdict when head landmark is absent")
	}
	if !v.InBounds {
		t.Error("expected carried in_bounds=true")
	}
}

func TestObserve_UpdatesCarryForwardState(t *testing.T) {
	c := New(testReference())

	c.Observe(Evaluate(testReference(), 0, core.Position2D{X: 125, Y: 100}))
	v := c.Undetected(1)

	if v.InBounds {
		t.Error("expected carried in_bounds=false")
	}
	if v.HeadPosition.X != 125 {
		t.Errorf("expected carried head x=125, got %f", v.HeadPosition.X)
	}
}

func TestOverlay(t *testing.T) {
	ref := testReference()
	v := Evaluate(ref, 5, core.Position2D{X: 110, Y: 100})

	o := Overlay(ref, v)

	if o.SpineBottom != ref.Spine.Anchor {
		t.Errorf("expected spine bottom at anchor, got %+v", o.SpineBottom)
	}
	if o.SpineTop != (core.Position2D{X: 100, Y: 180}) {
		t.Errorf("expected spine top (100,180), got %+v", o.SpineTop)
	}
	if o.Boundary != ref.Boundary {
		t.Errorf("expected boundary %+v, got %+v", ref.Boundary, o.Boundary)
	}
	if o.Verdict != v {
		t.Error("expected verdict passed through")
	}
}
