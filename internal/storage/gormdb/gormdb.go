// Package gormdb implements the storage.Backend interface using GORM
// (PostgreSQL or SQLite) with an internal verdict queue and a background
// DB writer goroutine.
package gormdb

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/swinglab/swingcheck/internal/model"
	"github.com/swinglab/swingcheck/internal/queue"
	"github.com/swinglab/swingcheck/pkg/core"
)

// flushInterval is how often the writer goroutine drains the verdict queue.
const flushInterval = 2 * time.Second

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
// Verdicts are buffered and flushed periodically; swing and summary rows are
// low-volume and written synchronously.
type Backend struct {
	deps     Dependencies
	verdicts *queue.Queue[model.FrameVerdict]
	swingID  atomic.Uint64
	stopChan chan struct{}
	dbReady  bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{deps: deps}
}

// Init creates the internal queue, runs schema migration, and starts the
// DB writer goroutine.
func (b *Backend) Init() error {
	b.verdicts = queue.New[model.FrameVerdict]()
	b.stopChan = make(chan struct{})

	if b.deps.DB == nil {
		return fmt.Errorf("no database connection configured")
	}

	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	b.dbReady = true

	b.startDBWriter()
	return nil
}

// Close flushes any queued verdicts and stops the DB writer goroutine.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		b.stopChan = nil
	}
	b.flush()
	return nil
}

// StartSwing inserts the swing row with its reference geometry and stores
// the DB-assigned ID for the writer goroutine.
func (b *Backend) StartSwing(s *core.Swing, ref core.Reference) error {
	row, err := model.SwingFromCore(s, ref)
	if err != nil {
		return fmt.Errorf("failed to encode reference geometry: %w", err)
	}

	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert swing: %w", err)
	}

	// Assign the DB-generated ID back to the core type
	s.ID = row.ID
	b.swingID.Store(uint64(row.ID))

	return nil
}

// EndSwing drains the remaining queued verdicts synchronously.
func (b *Backend) EndSwing() error {
	b.flush()
	return nil
}

// RecordFrame converts the frame verdict to a row and queues it for the
// next batch write. The overlay geometry is not stored per frame; it is
// reconstructible from the swing's reference geometry.
func (b *Backend) RecordFrame(f *core.OverlayFrame) error {
	row := model.VerdictFromCore(uint(b.swingID.Load()), f.Verdict)
	b.verdicts.Push(row)
	return nil
}

// RecordSummary inserts the summary row synchronously.
func (b *Backend) RecordSummary(sum *core.SwingSummary) error {
	// Verdicts must land before the summary for readers that join on them
	b.flush()

	row := model.SummaryFromCore(uint(b.swingID.Load()), *sum)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert swing summary: %w", err)
	}
	return nil
}

// flush writes all queued verdicts to the database in a transaction.
// Failed batches go back on the queue for the next cycle.
func (b *Backend) flush() {
	if !b.dbReady || b.verdicts == nil {
		return
	}

	// GetAndEmpty is the only atomic take; a ticker flush racing a
	// synchronous flush may find the queue already drained.
	items := b.verdicts.GetAndEmpty()
	if len(items) == 0 {
		return
	}

	swingID := uint(b.swingID.Load())
	for i := range items {
		if items[i].SwingID == 0 {
			items[i].SwingID = swingID
		}
	}

	tx := b.deps.DB.Begin()
	if err := tx.Create(&items).Error; err != nil {
		b.deps.Logger.Error("failed to write frame verdicts", "count", len(items), "error", err)
		tx.Rollback()
		b.verdicts.Push(items...)
		return
	}
	tx.Commit()
}

// startDBWriter starts the background goroutine that periodically drains
// the verdict queue into the DB.
func (b *Backend) startDBWriter() {
	stop := b.stopChan
	go func() {
		ticker := time.NewTicker(flushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				b.flush()
			}
		}
	}()
}
