// Package aggregate folds an ordered stream of frame verdicts into a swing
// summary. The fold is single-pass with O(1) extra memory; the accumulator
// never retains verdicts.
package aggregate

import (
	"errors"

	"github.com/swinglab/swingcheck/pkg/core"
)

// ErrAlreadyFinalized is returned when Observe or Finalize is called on a
// finalized aggregator. Re-finalization is a programming error.
var ErrAlreadyFinalized = errors.New("aggregator already finalized")

// ErrOutOfOrderFrame is returned when verdicts arrive out of ascending
// frame order. Parallel classification must reorder before feeding the
// aggregator.
var ErrOutOfOrderFrame = errors.New("frame verdict out of order")

// Aggregator accumulates swing statistics. Counters are owned by a single
// consumer; concurrent producers need external synchronization.
type Aggregator struct {
	totalFrames    uint
	detectedFrames uint
	outOfBounds    uint
	firstViolation *uint
	lastIndex      uint
	finalized      bool
}

// New creates an aggregator in its collecting state.
func New() *Aggregator {
	return &Aggregator{}
}

// Observe folds one verdict into the running counters. Verdicts must
// arrive in strictly ascending frame order. Undetected frames count toward
// total_frames only.
func (a *Aggregator) Observe(v core.FrameVerdict) error {
	if a.finalized {
		return ErrAlreadyFinalized
	}
	if a.totalFrames > 0 && v.FrameIndex <= a.lastIndex {
		return ErrOutOfOrderFrame
	}
	a.lastIndex = v.FrameIndex
	a.totalFrames++

	if !v.Detected {
		return nil
	}
	a.detectedFrames++

	if !v.InBounds {
		a.outOfBounds++
		if a.firstViolation == nil {
			idx := v.FrameIndex
			a.firstViolation = &idx
		}
	}
	return nil
}

// Finalize ends the stream and computes the summary. The aggregator enters
// its terminal state; finalizing twice is an error. Early finalization
// over a partial stream is allowed and summarizes the frames seen so far.
//
// With zero detected frames the ratio is a defined sentinel: 0 with
// InsufficientData set, never a division by zero.
func (a *Aggregator) Finalize() (core.SwingSummary, error) {
	if a.finalized {
		return core.SwingSummary{}, ErrAlreadyFinalized
	}
	a.finalized = true

	summary := core.SwingSummary{
		TotalFrames:         a.totalFrames,
		DetectedFrames:      a.detectedFrames,
		OutOfBoundsFrames:   a.outOfBounds,
		FirstViolationIndex: a.firstViolation,
	}
	if a.detectedFrames == 0 {
		summary.InsufficientData = true
		return summary, nil
	}
	summary.OutOfBoundsRatio = float64(a.outOfBounds) / float64(a.detectedFrames)
	return summary, nil
}
