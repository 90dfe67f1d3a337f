// pkg/core/verdict.go
package core

// FrameVerdict is the classification result for one video frame.
// Verdicts are immutable once emitted and ordered by FrameIndex.
type FrameVerdict struct {
	FrameIndex   uint       `json:"frameIndex"`
	HeadPosition Position2D `json:"headPosition"`
	Distance     float64    `json:"distance"`
	InBounds     bool       `json:"inBounds"`
	Detected     bool       `json:"detected"`
}

// OverlayFrame carries a verdict plus the geometry a sink needs to draw
// the per-frame overlay.
type OverlayFrame struct {
	Verdict     FrameVerdict `json:"verdict"`
	SpineTop    Position2D   `json:"spineTop"`
	SpineBottom Position2D   `json:"spineBottom"`
	Boundary    HeadBoundary `json:"boundary"`
}

// SwingSummary holds aggregate statistics over an analyzed swing.
// FirstViolationIndex is nil when the head never left the boundary.
// InsufficientData is set when no frame had a usable detection; the ratio
// is 0 in that case rather than undefined.
type SwingSummary struct {
	TotalFrames         uint    `json:"totalFrames"`
	DetectedFrames      uint    `json:"detectedFrames"`
	OutOfBoundsFrames   uint    `json:"outOfBoundsFrames"`
	OutOfBoundsRatio    float64 `json:"outOfBoundsRatio"`
	FirstViolationIndex *uint   `json:"firstViolationIndex,omitempty"`
	InsufficientData    bool    `json:"insufficientData"`
}
