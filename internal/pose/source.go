// Package pose defines the boundary to the external landmark-estimation
// model. The estimator itself is a black box; this package only consumes
// its per-frame output as named 2-D keypoints with confidence scores.
package pose

import "github.com/swinglab/swingcheck/pkg/core"

// Frame is one frame's worth of estimator output. Detected is false when
// the estimator reported no detection, or when any required landmark was
// missing or below the confidence threshold.
type Frame struct {
	Index     uint
	Landmarks core.LandmarkSet
	Detected  bool
}

// Source yields frames in ascending index order. It is finite, single-pass
// and not restartable; re-analyzing a video means re-invoking the estimator.
type Source interface {
	// Next returns the next frame. ok is false once the source is exhausted.
	Next() (frame Frame, ok bool)
}

// SliceSource serves frames from a pre-built slice. Used by tests and by
// callers that already hold all estimator output in memory.
type SliceSource struct {
	frames []Frame
	pos    int
}

// NewSliceSource creates a source over the given frames.
func NewSliceSource(frames []Frame) *SliceSource {
	return &SliceSource{frames: frames}
}

// Next returns the next frame in order.
func (s *SliceSource) Next() (Frame, bool) {
	if s.pos >= len(s.frames) {
		return Frame{}, false
	}
	f := s.frames[s.pos]
	s.pos++
	return f, true
}
