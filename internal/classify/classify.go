// Package classify turns per-frame landmark sets into frame verdicts
// against a fixed reference geometry.
//
// Undetected-frame policy: the classifier carries the last detected head
// position and in-bounds flag forward so overlays stay continuous, but the
// verdict is marked Detected=false and never counts toward violation
// totals. Before the first detection, carried verdicts report the boundary
// center with distance 0 and InBounds=true.
package classify

import (
	"github.com/swinglab/swingcheck/internal/geo"
	"github.com/swinglab/swingcheck/pkg/core"
)

// Evaluate produces the verdict for a detected head position. It is a pure
// function of the fixed reference and its arguments, safe to call
// concurrently across frames.
//
// The spine axis is overlay-only; the in/out decision uses the full
// Euclidean distance from the boundary center. The boundary is inclusive:
// a head exactly at distance == radius is in bounds.
func Evaluate(ref core.Reference, frameIndex uint, head core.Position2D) core.FrameVerdict {
	dist := geo.Distance(ref.Boundary.Center, head)
	return core.FrameVerdict{
		FrameIndex:   frameIndex,
		HeadPosition: head,
		Distance:     dist,
		InBounds:     dist <= ref.Boundary.Radius,
		Detected:     true,
	}
}

// Classifier applies the undetected-frame carry-forward policy on top of
// Evaluate. It must see frames in ascending index order; parallel
// classification runs Evaluate concurrently and applies the carry-forward
// after reordering (see internal/worker).
type Classifier struct {
	ref      core.Reference
	lastHead core.Position2D
	lastIn   bool
	seen     bool
}

// New creates a classifier over the fixed reference geometry.
func New(ref core.Reference) *Classifier {
	return &Classifier{ref: ref}
}

// Reference returns the fixed geometry the classifier was built with.
func (c *Classifier) Reference() core.Reference {
	return c.ref
}

// Classify produces the verdict for one frame.
func (c *Classifier) Classify(frameIndex uint, landmarks core.LandmarkSet, detected bool) core.FrameVerdict {
	if detected {
		if head, ok := landmarks.Get(core.LandmarkHead); ok {
			v := Evaluate(c.ref, frameIndex, head.Position)
			c.lastHead = v.HeadPosition
			c.lastIn = v.InBounds
			c.seen = true
			return v
		}
	}
	return c.Undetected(frameIndex)
}

// Undetected produces the carry-forward verdict for a frame with no usable
// head detection.
func (c *Classifier) Undetected(frameIndex uint) core.FrameVerdict {
	if !c.seen {
		return core.FrameVerdict{
			FrameIndex:   frameIndex,
			HeadPosition: c.ref.Boundary.Center,
			InBounds:     true,
			Detected:     false,
		}
	}
	return core.FrameVerdict{
		FrameIndex:   frameIndex,
		HeadPosition: c.lastHead,
		Distance:     geo.Distance(c.ref.Boundary.Center, c.lastHead),
		InBounds:     c.lastIn,
		Detected:     false,
	}
}

// Observe records a detected verdict that was computed elsewhere (the
// parallel path) so the carry-forward state stays current.
func (c *Classifier) Observe(v core.FrameVerdict) {
	if !v.Detected {
		return
	}
	c.lastHead = v.HeadPosition
	c.lastIn = v.InBounds
	c.seen = true
}

// Overlay wraps a verdict with the drawing geometry for the sink.
func Overlay(ref core.Reference, v core.FrameVerdict) core.OverlayFrame {
	return core.OverlayFrame{
		Verdict:     v,
		SpineTop:    ref.Spine.Top(),
		SpineBottom: ref.Spine.Anchor,
		Boundary:    ref.Boundary,
	}
}
