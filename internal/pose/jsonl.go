package pose

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/swinglab/swingcheck/pkg/core"
)

// rawFrame is the wire format the estimator dumps: one JSON object per line.
// A frame with no detection carries "detected": false and no landmarks.
type rawFrame struct {
	Frame     uint                   `json:"frame"`
	Detected  *bool                  `json:"detected,omitempty"`
	Landmarks map[string]rawLandmark `json:"landmarks,omitempty"`
}

type rawLandmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// JSONLSource reads estimator output line by line. Malformed lines degrade
// to undetected frames instead of aborting the stream; only the calibration
// stage treats missing landmarks as fatal.
type JSONLSource struct {
	scanner   *bufio.Scanner
	threshold float64
	nextIndex uint
	logger    *slog.Logger
}

// NewJSONLSource creates a source over r. Landmarks below threshold are
// dropped before the required-set check.
func NewJSONLSource(r io.Reader, threshold float64, logger *slog.Logger) *JSONLSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONLSource{
		scanner:   bufio.NewScanner(r),
		threshold: threshold,
		logger:    logger,
	}
}

// Next reads one line and converts it to a Frame.
func (s *JSONLSource) Next() (Frame, bool) {
	if !s.scanner.Scan() {
		return Frame{}, false
	}

	frame, err := ParseFrame(s.scanner.Bytes(), s.threshold)
	if err != nil {
		s.logger.Warn("malformed estimator line, treating frame as undetected",
			"frameIndex", s.nextIndex, "error", err)
		frame = Frame{Index: s.nextIndex, Detected: false}
	}
	s.nextIndex = frame.Index + 1
	return frame, true
}

// ParseFrame parses a single estimator output line. Landmarks below
// threshold are discarded; the frame is detected only if the full required
// set survives.
func ParseFrame(line []byte, threshold float64) (Frame, error) {
	var raw rawFrame
	if err := json.Unmarshal(line, &raw); err != nil {
		return Frame{}, fmt.Errorf("error unmarshalling estimator frame: %w", err)
	}

	frame := Frame{Index: raw.Frame}

	if raw.Detected != nil && !*raw.Detected {
		return frame, nil
	}

	set := make(core.LandmarkSet, len(raw.Landmarks))
	for name, lm := range raw.Landmarks {
		if lm.Confidence < 0 || lm.Confidence > 1 {
			return Frame{}, fmt.Errorf("landmark %q confidence %f outside [0,1]", name, lm.Confidence)
		}
		if lm.Confidence < threshold {
			continue
		}
		set[name] = core.Landmark{
			Name:       name,
			Position:   core.Position2D{X: lm.X, Y: lm.Y},
			Confidence: lm.Confidence,
		}
	}

	frame.Landmarks = set
	frame.Detected = set.Complete(threshold)
	return frame, nil
}
