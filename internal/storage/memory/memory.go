// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"sync"

	"github.com/swinglab/swingcheck/internal/config"
	"github.com/swinglab/swingcheck/pkg/core"
)

// Backend stores swing data in memory and exports to JSON on EndSwing
type Backend struct {
	cfg config.MemoryConfig

	swing     *core.Swing
	reference core.Reference
	frames    []core.OverlayFrame
	summary   *core.SwingSummary

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSwing begins recording a new swing
func (b *Backend) StartSwing(s *core.Swing, ref core.Reference) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.swing = s
	b.reference = ref

	// Reset all collections
	b.frames = nil
	b.summary = nil
	b.lastExportPath = ""

	return nil
}

// EndSwing finalizes and exports the swing data
func (b *Backend) EndSwing() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.swing == nil {
		return fmt.Errorf("no swing in progress")
	}
	return b.exportJSON()
}

// RecordFrame records an overlay frame
func (b *Backend) RecordFrame(f *core.OverlayFrame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = append(b.frames, *f)
	return nil
}

// RecordSummary records the swing summary
func (b *Backend) RecordSummary(sum *core.SwingSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.summary = sum
	return nil
}

// ExportedFilePath returns the path of the last export, empty if none
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// Frames returns a copy of the recorded overlay frames
func (b *Backend) Frames() []core.OverlayFrame {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.OverlayFrame, len(b.frames))
	copy(out, b.frames)
	return out
}

// Summary returns the recorded summary, nil if not yet recorded
func (b *Backend) Summary() *core.SwingSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.summary
}
