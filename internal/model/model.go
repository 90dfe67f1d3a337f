package model

import (
	"database/sql"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/swinglab/swingcheck/pkg/core"
)

// DatabaseModels is a list of all the structs exported here which represent
// tables in the database schema
var DatabaseModels = []interface{}{
	&Swing{},
	&FrameVerdict{},
	&SwingSummary{},
}

// Swing is one recorded swing analysis session
type Swing struct {
	gorm.Model
	Name       string         `json:"name" gorm:"size:255"`
	Golfer     string         `json:"golfer" gorm:"size:255"`
	StartTime  time.Time      `json:"startTime"`
	Width      uint           `json:"width"`
	Height     uint           `json:"height"`
	FPS        float64        `json:"fps"`
	FrameCount uint           `json:"frameCount"`
	Geometry   datatypes.JSON `json:"geometry"` // core.Reference, fixed for the swing
}

func (*Swing) TableName() string {
	return "swings"
}

// FrameVerdict is one frame's classification result
type FrameVerdict struct {
	ID         uint    `json:"id" gorm:"primarykey"`
	SwingID    uint    `json:"swingId" gorm:"index:idx_frameverdict_swing_id"`
	Swing      Swing   `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SwingID;"`
	FrameIndex uint    `json:"frameIndex"`
	HeadX      float64 `json:"headX"`
	HeadY      float64 `json:"headY"`
	Distance   float64 `json:"distance"`
	InBounds   bool    `json:"inBounds"`
	Detected   bool    `json:"detected"`
}

func (*FrameVerdict) TableName() string {
	return "frame_verdicts"
}

// SwingSummary is the aggregate result for one swing
type SwingSummary struct {
	ID                  uint          `json:"id" gorm:"primarykey"`
	SwingID             uint          `json:"swingId" gorm:"uniqueIndex:idx_swingsummary_swing_id"`
	Swing               Swing         `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SwingID;"`
	TotalFrames         uint          `json:"totalFrames"`
	DetectedFrames      uint          `json:"detectedFrames"`
	OutOfBoundsFrames   uint          `json:"outOfBoundsFrames"`
	OutOfBoundsRatio    float64       `json:"outOfBoundsRatio"`
	FirstViolationIndex sql.NullInt64 `json:"firstViolationIndex"`
	InsufficientData    bool          `json:"insufficientData"`
}

func (*SwingSummary) TableName() string {
	return "swing_summaries"
}

// SwingFromCore converts a core swing plus its reference geometry to a row.
func SwingFromCore(s *core.Swing, ref core.Reference) (Swing, error) {
	geometry, err := json.Marshal(ref)
	if err != nil {
		return Swing{}, err
	}
	return Swing{
		Name:       s.Name,
		Golfer:     s.Golfer,
		StartTime:  s.StartTime,
		Width:      s.Video.Width,
		Height:     s.Video.Height,
		FPS:        s.Video.FPS,
		FrameCount: s.Video.FrameCount,
		Geometry:   datatypes.JSON(geometry),
	}, nil
}

// VerdictFromCore converts a core frame verdict to a row.
func VerdictFromCore(swingID uint, v core.FrameVerdict) FrameVerdict {
	return FrameVerdict{
		SwingID:    swingID,
		FrameIndex: v.FrameIndex,
		HeadX:      v.HeadPosition.X,
		HeadY:      v.HeadPosition.Y,
		Distance:   v.Distance,
		InBounds:   v.InBounds,
		Detected:   v.Detected,
	}
}

// SummaryFromCore converts a core swing summary to a row.
func SummaryFromCore(swingID uint, s core.SwingSummary) SwingSummary {
	row := SwingSummary{
		SwingID:           swingID,
		TotalFrames:       s.TotalFrames,
		DetectedFrames:    s.DetectedFrames,
		OutOfBoundsFrames: s.OutOfBoundsFrames,
		OutOfBoundsRatio:  s.OutOfBoundsRatio,
		InsufficientData:  s.InsufficientData,
	}
	if s.FirstViolationIndex != nil {
		row.FirstViolationIndex = sql.NullInt64{Int64: int64(*s.FirstViolationIndex), Valid: true}
	}
	return row
}
