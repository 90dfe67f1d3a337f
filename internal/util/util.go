// Package util provides common formatting helpers used across the analyzer.
package util

import (
	"fmt"
	"strings"

	"github.com/swinglab/swingcheck/pkg/core"
)

// FormatPercent renders a 0..1 ratio as a percentage with one decimal place.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatFrameTime converts a frame index to a timestamp string at the given
// frame rate. Falls back to the bare index when fps is not positive.
func FormatFrameTime(frameIndex uint, fps float64) string {
	if fps <= 0 {
		return fmt.Sprintf("frame %d", frameIndex)
	}
	seconds := float64(frameIndex) / fps
	return fmt.Sprintf("frame %d (%.2fs)", frameIndex, seconds)
}

// FormatSummary renders a swing summary as a human-readable multi-line report.
func FormatSummary(sum *core.SwingSummary, fps float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Frames analyzed:   %d\n", sum.TotalFrames)
	fmt.Fprintf(&b, "Frames detected:   %d\n", sum.DetectedFrames)

	if sum.InsufficientData {
		b.WriteString("Result:            insufficient data (no usable head detections)\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Out of bounds:     %d (%s of detected)\n",
		sum.OutOfBoundsFrames, FormatPercent(sum.OutOfBoundsRatio))

	if sum.FirstViolationIndex != nil {
		fmt.Fprintf(&b, "First violation:   %s\n", FormatFrameTime(*sum.FirstViolationIndex, fps))
	} else {
		b.WriteString("First violation:   none\n")
	}

	return b.String()
}
