// Package worker runs frame classification across a pool of goroutines.
// Classification against a fixed reference is a pure per-frame function, so
// frames fan out freely; a reorder stage restores ascending frame order
// before the verdicts reach the aggregator, and the carry-forward policy
// for undetected frames is applied there, where order is known.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/swinglab/swingcheck/internal/channel"
	"github.com/swinglab/swingcheck/internal/classify"
	"github.com/swinglab/swingcheck/internal/pose"
	"github.com/swinglab/swingcheck/pkg/core"
)

const defaultBuffer = 256

// Pool classifies frames in parallel. The reference geometry must be fully
// built before the pool is created; it is never mutated afterwards.
type Pool struct {
	ref     core.Reference
	workers int
	logger  *slog.Logger

	classified metric.Int64Counter
	pending    metric.Int64ObservableGauge

	mu          sync.Mutex
	pendingSize int64
}

// NewPool creates a pool with the given parallelism. Uses the global OTel
// meter for metrics (no-op if not configured).
func NewPool(ref core.Reference, workers int, logger *slog.Logger) (*Pool, error) {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		ref:     ref,
		workers: workers,
		logger:  logger,
	}

	m := meter()
	var err error

	p.classified, err = m.Int64Counter(
		"classifier.frames.classified",
		metric.WithDescription("Total frames classified"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating classified counter: %w", err)
	}

	p.pending, err = m.Int64ObservableGauge(
		"classifier.reorder.pending",
		metric.WithDescription("Frames held in the reorder buffer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reorder gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			p.mu.Lock()
			defer p.mu.Unlock()
			o.ObserveInt64(p.pending, p.pendingSize)
			return nil
		},
		p.pending,
	)
	if err != nil {
		return nil, fmt.Errorf("registering reorder callback: %w", err)
	}

	return p, nil
}

// sequenced tags a frame with its position in the stream so results can be
// reordered after parallel classification.
type sequenced struct {
	seq   uint64
	frame pose.Frame
}

type result struct {
	seq      uint64
	frame    pose.Frame
	verdict  core.FrameVerdict
	detected bool
}

// Run consumes frames from in and returns a channel of verdicts in the
// original stream order. The returned channel is closed once the input is
// exhausted and all results have been drained.
func (p *Pool) Run(in channel.Receiver[pose.Frame]) channel.Receiver[core.FrameVerdict] {
	tagged := channel.New[sequenced](defaultBuffer)
	results := channel.New[result](defaultBuffer)
	out := channel.New[core.FrameVerdict](defaultBuffer)

	// Sequence-tagging stage.
	go func() {
		var seq uint64
		for f := range in.Receive() {
			tagged.Send(sequenced{seq: seq, frame: f})
			seq++
		}
		tagged.Close()
	}()

	// Parallel classification stage. Undetected frames pass through; their
	// verdicts depend on preceding frames and are resolved after reorder.
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range tagged.Receive() {
				r := result{seq: s.seq, frame: s.frame}
				if head, ok := s.frame.Landmarks.Get(core.LandmarkHead); ok && s.frame.Detected {
					r.verdict = classify.Evaluate(p.ref, s.frame.Index, head.Position)
					r.detected = true
				}
				results.Send(r)
				p.classified.Add(context.Background(), 1)
			}
		}()
	}
	go func() {
		wg.Wait()
		results.Close()
	}()

	// Reorder stage: restore ascending sequence order, then apply the
	// carry-forward policy now that order is known.
	go func() {
		defer out.Close()

		classifier := classify.New(p.ref)
		buffer := make(map[uint64]result)
		var next uint64

		flush := func() {
			for {
				r, ok := buffer[next]
				if !ok {
					return
				}
				delete(buffer, next)
				next++

				v := r.verdict
				if r.detected {
					classifier.Observe(v)
				} else {
					v = classifier.Undetected(r.frame.Index)
				}
				out.Send(v)
			}
		}

		for r := range results.Receive() {
			buffer[r.seq] = r
			p.setPending(int64(len(buffer)))
			flush()
		}
		flush()
		if len(buffer) > 0 {
			p.logger.Error("reorder buffer not drained", "remaining", len(buffer))
		}
		p.setPending(0)
	}()

	return out
}

func (p *Pool) setPending(n int64) {
	p.mu.Lock()
	p.pendingSize = n
	p.mu.Unlock()
}
