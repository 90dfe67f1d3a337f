// pkg/core/landmark.go
package core

// Canonical landmark names emitted by the pose estimation backend.
// These five must all be present (above the confidence threshold) for a
// frame to be considered detected.
const (
	LandmarkHead          = "head"
	LandmarkShoulderLeft  = "shoulder_left"
	LandmarkShoulderRight = "shoulder_right"
	LandmarkHipLeft       = "hip_left"
	LandmarkHipRight      = "hip_right"
)

// RequiredLandmarks lists the landmark names a usable frame must carry.
var RequiredLandmarks = []string{
	LandmarkHead,
	LandmarkShoulderLeft,
	LandmarkShoulderRight,
	LandmarkHipLeft,
	LandmarkHipRight,
}

// Position2D is a point in frame pixel space
type Position2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmark is a named anatomical keypoint with a detection confidence in [0,1]
type Landmark struct {
	Name       string     `json:"name"`
	Position   Position2D `json:"position"`
	Confidence float64    `json:"confidence"`
}

// LandmarkSet maps landmark names to landmarks for a single frame
type LandmarkSet map[string]Landmark

// Get returns the landmark with the given name, if present.
func (s LandmarkSet) Get(name string) (Landmark, bool) {
	lm, ok := s[name]
	return lm, ok
}

// Complete reports whether every required landmark is present at or above
// the given confidence threshold.
func (s LandmarkSet) Complete(threshold float64) bool {
	for _, name := range RequiredLandmarks {
		lm, ok := s[name]
		if !ok || lm.Confidence < threshold {
			return false
		}
	}
	return true
}
