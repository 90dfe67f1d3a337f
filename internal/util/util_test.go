package util

import (
	"strings"
	"testing"

	"github.com/swinglab/swingcheck/pkg/core"
)

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero", 0, "0.0%"},
		{"half", 0.5, "50.0%"},
		{"two sevenths", 2.0 / 7.0, "28.6%"},
		{"full", 1, "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatPercent(tt.input)
			if result != tt.expected {
				t.Errorf("FormatPercent(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatFrameTime(t *testing.T) {
	tests := []struct {
		name     string
		frame    uint
		fps      float64
		expected string
	}{
		{"at 60fps", 90, 60, "frame 90 (1.50s)"},
		{"at 30fps", 45, 30, "frame 45 (1.50s)"},
		{"frame zero", 0, 60, "frame 0 (0.00s)"},
		{"unknown fps", 12, 0, "frame 12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatFrameTime(tt.frame, tt.fps)
			if result != tt.expected {
				t.Errorf("FormatFrameTime(%d, %v) = %q, want %q", tt.frame, tt.fps, result, tt.expected)
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	first := uint(3)
	sum := &core.SwingSummary{
		TotalFrames:         10,
		DetectedFrames:      7,
		OutOfBoundsFrames:   2,
		OutOfBoundsRatio:    2.0 / 7.0,
		FirstViolationIndex: &first,
	}

	out := FormatSummary(sum, 60)
	if !strings.Contains(out, "Frames analyzed:   10") {
		t.Errorf("missing total frames: %q", out)
	}
	if !strings.Contains(out, "2 (28.6% of detected)") {
		t.Errorf("missing out-of-bounds line: %q", out)
	}
	if !strings.Contains(out, "frame 3 (0.05s)") {
		t.Errorf("missing first violation line: %q", out)
	}
}

func TestFormatSummaryNoViolation(t *testing.T) {
	sum := &core.SwingSummary{TotalFrames: 5, DetectedFrames: 5}
	out := FormatSummary(sum, 60)
	if !strings.Contains(out, "First violation:   none") {
		t.Errorf("expected no-violation line: %q", out)
	}
}

func TestFormatSummaryInsufficientData(t *testing.T) {
	sum := &core.SwingSummary{TotalFrames: 4, InsufficientData: true}
	out := FormatSummary(sum, 60)
	if !strings.Contains(out, "insufficient data") {
		t.Errorf("expected insufficient data line: %q", out)
	}
	if strings.Contains(out, "Out of bounds") {
		t.Errorf("should not include out-of-bounds line: %q", out)
	}
}
