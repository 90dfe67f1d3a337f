// pkg/core/swing.go
package core

import "time"

// VideoInfo describes the source video a swing was captured from.
// FrameCount may be 0 when the total length is not known upfront.
type VideoInfo struct {
	Width      uint    `json:"width"`
	Height     uint    `json:"height"`
	FPS        float64 `json:"fps"`
	FrameCount uint    `json:"frameCount"`
}

// UploadMetadata describes an exported swing for the web frontend.
type UploadMetadata struct {
	SwingName string  `json:"swingName"`
	Golfer    string  `json:"golfer"`
	Duration  float64 `json:"duration"` // seconds of analyzed video
}

// Swing represents one analyzed golf swing
type Swing struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Golfer    string    `json:"golfer"`
	Video     VideoInfo `json:"video"`
	StartTime time.Time `json:"startTime"`
}
