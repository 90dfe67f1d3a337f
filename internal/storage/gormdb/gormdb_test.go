package gormdb

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/swinglab/swingcheck/internal/model"
	"github.com/swinglab/swingcheck/pkg/core"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := New(Dependencies{DB: newTestDB(t)})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func testSwing() *core.Swing {
	return &core.Swing{
		Name:      "Driver Range Session",
		Golfer:    "A. Palmer",
		Video:     core.VideoInfo{Width: 1920, Height: 1080, FPS: 60, FrameCount: 240},
		StartTime: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func testReference() core.Reference {
	return core.Reference{
		Spine: core.SpineAxis{
			Anchor:    core.Position2D{X: 100, Y: 300},
			Direction: core.Position2D{X: 0, Y: -1},
			Length:    120,
		},
		Boundary: core.HeadBoundary{
			Center: core.Position2D{X: 100, Y: 100},
			Radius: 20,
		},
	}
}

func TestInitWithoutDB(t *testing.T) {
	b := New(Dependencies{})
	require.Error(t, b.Init())
}

func TestStartSwingAssignsID(t *testing.T) {
	b := newTestBackend(t)

	s := testSwing()
	require.NoError(t, b.StartSwing(s, testReference()))
	assert.NotZero(t, s.ID)
	assert.Equal(t, uint64(s.ID), b.swingID.Load())
}

func TestRecordFrameQueuesVerdict(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.StartSwing(testSwing(), testReference()))

	f := &core.OverlayFrame{
		Verdict: core.FrameVerdict{
			FrameIndex:   3,
			HeadPosition: core.Position2D{X: 110, Y: 100},
			Distance:     10,
			InBounds:     true,
			Detected:     true,
		},
	}
	require.NoError(t, b.RecordFrame(f))
	assert.Equal(t, 1, b.verdicts.Len())
}

func TestEndSwingFlushesVerdicts(t *testing.T) {
	b := newTestBackend(t)
	s := testSwing()
	require.NoError(t, b.StartSwing(s, testReference()))

	for i := uint(0); i < 5; i++ {
		f := &core.OverlayFrame{
			Verdict: core.FrameVerdict{
				FrameIndex:   i,
				HeadPosition: core.Position2D{X: 100 + float64(i), Y: 100},
				Distance:     float64(i),
				InBounds:     true,
				Detected:     true,
			},
		}
		require.NoError(t, b.RecordFrame(f))
	}

	require.NoError(t, b.EndSwing())
	assert.True(t, b.verdicts.Empty())

	var rows []model.FrameVerdict
	require.NoError(t, b.deps.DB.Where("swing_id = ?", s.ID).Order("frame_index").Find(&rows).Error)
	require.Len(t, rows, 5)
	assert.Equal(t, uint(4), rows[4].FrameIndex)
	assert.InDelta(t, 4.0, rows[4].Distance, 1e-9)
}

func TestFlushEmptyQueueIsNoOp(t *testing.T) {
	var logBuf bytes.Buffer
	b := New(Dependencies{
		DB:     newTestDB(t),
		Logger: slog.New(slog.NewTextHandler(&logBuf, nil)),
	})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.StartSwing(testSwing(), testReference()))

	b.flush()
	b.flush()

	var count int64
	require.NoError(t, b.deps.DB.Model(&model.FrameVerdict{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.NotContains(t, logBuf.String(), "failed to write frame verdicts")
}

func TestConcurrentFlushWritesVerdictsOnce(t *testing.T) {
	// The ticker flush can race a synchronous flush from EndSwing or
	// RecordSummary; only one of them may take the queued items, and the
	// loser must not hand the database an empty batch.
	var logBuf bytes.Buffer
	b := New(Dependencies{
		DB:     newTestDB(t),
		Logger: slog.New(slog.NewTextHandler(&logBuf, nil)),
	})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.StartSwing(testSwing(), testReference()))

	const frames = 100
	for i := uint(0); i < frames; i++ {
		require.NoError(t, b.RecordFrame(&core.OverlayFrame{
			Verdict: core.FrameVerdict{FrameIndex: i, Detected: true, InBounds: true},
		}))
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.flush()
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, b.deps.DB.Model(&model.FrameVerdict{}).Count(&count).Error)
	assert.EqualValues(t, frames, count)
	assert.NotContains(t, logBuf.String(), "failed to write frame verdicts")
}

func TestRecordSummaryRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	s := testSwing()
	require.NoError(t, b.StartSwing(s, testReference()))

	first := uint(3)
	sum := &core.SwingSummary{
		TotalFrames:         10,
		DetectedFrames:      7,
		OutOfBoundsFrames:   2,
		OutOfBoundsRatio:    2.0 / 7.0,
		FirstViolationIndex: &first,
	}
	require.NoError(t, b.RecordSummary(sum))

	var row model.SwingSummary
	require.NoError(t, b.deps.DB.Where("swing_id = ?", s.ID).First(&row).Error)
	assert.Equal(t, uint(10), row.TotalFrames)
	assert.Equal(t, uint(7), row.DetectedFrames)
	require.True(t, row.FirstViolationIndex.Valid)
	assert.EqualValues(t, 3, row.FirstViolationIndex.Int64)
	assert.False(t, row.InsufficientData)
}

func TestRecordSummaryNoViolation(t *testing.T) {
	b := newTestBackend(t)
	s := testSwing()
	require.NoError(t, b.StartSwing(s, testReference()))

	sum := &core.SwingSummary{TotalFrames: 4, DetectedFrames: 4}
	require.NoError(t, b.RecordSummary(sum))

	var row model.SwingSummary
	require.NoError(t, b.deps.DB.Where("swing_id = ?", s.ID).First(&row).Error)
	assert.False(t, row.FirstViolationIndex.Valid)
}

func TestSwingGeometryStored(t *testing.T) {
	b := newTestBackend(t)
	s := testSwing()
	require.NoError(t, b.StartSwing(s, testReference()))

	var row model.Swing
	require.NoError(t, b.deps.DB.First(&row, s.ID).Error)
	assert.Equal(t, "Driver Range Session", row.Name)
	assert.Contains(t, string(row.Geometry), `"radius":20`)
}
