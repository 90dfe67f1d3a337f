// Package pipeline wires the analysis stages together: pose source,
// calibration, parallel classification, aggregation, and the storage
// backend. Calibration failures abort the run before any verdict is
// emitted to the backend.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/swinglab/swingcheck/internal/aggregate"
	"github.com/swinglab/swingcheck/internal/channel"
	"github.com/swinglab/swingcheck/internal/classify"
	"github.com/swinglab/swingcheck/internal/pose"
	"github.com/swinglab/swingcheck/internal/reference"
	"github.com/swinglab/swingcheck/internal/storage"
	"github.com/swinglab/swingcheck/internal/worker"
	"github.com/swinglab/swingcheck/pkg/core"
)

const sourceBuffer = 256

// Options controls one analysis run.
type Options struct {
	// Calibration holds the radius override and confidence threshold for
	// building the reference geometry.
	Calibration reference.Config
	// CalibrationFrame is the frame index the reference is built from.
	CalibrationFrame uint
	// Workers is the classification pool size; values below 1 run
	// single-threaded.
	Workers int
	Logger  *slog.Logger
}

// Run analyzes the full frame stream from src against a reference built
// from the calibration frame, records every overlay frame plus the final
// summary to the backend, and returns the summary.
//
// The reference is built before the backend sees anything; if the
// calibration frame is missing, undetected, or geometrically degenerate,
// no swing is started and no verdicts are produced.
func Run(src pose.Source, swing *core.Swing, backend storage.Backend, opts Options) (core.SwingSummary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prefix, ref, err := calibrate(src, opts)
	if err != nil {
		return core.SwingSummary{}, err
	}

	if err := backend.StartSwing(swing, ref); err != nil {
		return core.SwingSummary{}, fmt.Errorf("starting swing: %w", err)
	}

	pool, err := worker.NewPool(ref, opts.Workers, logger)
	if err != nil {
		return core.SwingSummary{}, fmt.Errorf("creating worker pool: %w", err)
	}

	// Feed the buffered calibration prefix, then the rest of the stream.
	in := channel.New[pose.Frame](sourceBuffer)
	go func() {
		defer in.Close()
		for _, f := range prefix {
			in.Send(f)
		}
		for {
			f, ok := src.Next()
			if !ok {
				return
			}
			in.Send(f)
		}
	}()

	verdicts := pool.Run(in)

	agg := aggregate.New()
	for v := range verdicts.Receive() {
		if err := agg.Observe(v); err != nil {
			// Keep draining so the feeder and pool goroutines can run to
			// completion; the source is finite.
			go func() {
				for range verdicts.Receive() {
				}
			}()
			return core.SwingSummary{}, fmt.Errorf("frame %d: %w", v.FrameIndex, err)
		}
		frame := classify.Overlay(ref, v)
		if err := backend.RecordFrame(&frame); err != nil {
			logger.Error("failed to record frame", "frame", v.FrameIndex, "error", err)
		}
	}

	summary, err := agg.Finalize()
	if err != nil {
		return core.SwingSummary{}, fmt.Errorf("finalizing summary: %w", err)
	}

	if err := backend.RecordSummary(&summary); err != nil {
		return summary, fmt.Errorf("recording summary: %w", err)
	}
	if err := backend.EndSwing(); err != nil {
		return summary, fmt.Errorf("ending swing: %w", err)
	}

	return summary, nil
}

// calibrate reads frames up to and including the calibration frame and
// builds the reference geometry from it. The consumed frames are returned
// so the caller can replay them through classification.
func calibrate(src pose.Source, opts Options) ([]pose.Frame, core.Reference, error) {
	var prefix []pose.Frame
	var calib *pose.Frame

	for {
		f, ok := src.Next()
		if !ok {
			break
		}
		prefix = append(prefix, f)
		if f.Index >= opts.CalibrationFrame {
			calib = &prefix[len(prefix)-1]
			break
		}
	}

	if calib == nil {
		return nil, core.Reference{}, fmt.Errorf("stream ended before calibration frame %d", opts.CalibrationFrame)
	}
	if !calib.Detected {
		return nil, core.Reference{}, fmt.Errorf("calibration frame %d has no pose detection", calib.Index)
	}

	ref, err := reference.Build(calib.Landmarks, opts.Calibration)
	if err != nil {
		return nil, core.Reference{}, fmt.Errorf("calibration frame %d: %w", calib.Index, err)
	}
	return prefix, ref, nil
}
