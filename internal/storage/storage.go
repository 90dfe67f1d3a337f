// internal/storage/storage.go
package storage

import "github.com/swinglab/swingcheck/pkg/core"

// Backend is the interface all storage implementations must satisfy.
// The core pipeline only emits structured data; drawing and file handling
// beyond these sinks belong to external collaborators.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Swing management. StartSwing assigns an ID to the passed pointer.
	StartSwing(s *core.Swing, ref core.Reference) error
	EndSwing() error

	// Per-frame overlay data, in ascending frame order
	RecordFrame(f *core.OverlayFrame) error

	// Final aggregate, available once the verdict stream ends
	RecordSummary(sum *core.SwingSummary) error
}

// Exportable is an optional interface for backends that produce a file
// suitable for upload to the web frontend.
type Exportable interface {
	ExportedFilePath() string
}
