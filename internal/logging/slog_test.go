package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_WritesToFile(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info")

	m.Logger().Info("hello file")

	assert.Contains(t, buf.String(), "hello file")
}

func TestSetup_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "debug")

	m.Logger().Debug("debug msg")
	m.Logger().Info("info msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "info")

	m.Logger().Debug("should be filtered")
	m.Logger().Info("should appear")

	output := buf.String()
	assert.NotContains(t, output, "should be filtered")
	assert.Contains(t, output, "should appear")
}

func TestSetup_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	m := NewSlogManager()
	m.Setup(&buf, "chatty")

	m.Logger().Debug("filtered")
	m.Logger().Info("kept")

	output := buf.String()
	assert.NotContains(t, output, "filtered")
	assert.Contains(t, output, "kept")
}

func TestSetup_ReplacesLogger(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	m := NewSlogManager()

	m.Setup(&buf1, "info")
	m.Logger().Info("first")

	m.Setup(&buf2, "info")
	m.Logger().Info("second")

	assert.Contains(t, buf1.String(), "first")
	assert.NotContains(t, buf1.String(), "second", "old file should not receive new logs")
	assert.Contains(t, buf2.String(), "second")
}

func TestLogger_DefaultBeforeSetup(t *testing.T) {
	m := NewSlogManager()
	assert.Equal(t, slog.Default(), m.Logger())
}

func TestMultiHandler_FansOut(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&buf1, nil),
		slog.NewTextHandler(&buf2, nil),
	)

	slog.New(h).Info("fan out")

	assert.Contains(t, buf1.String(), "fan out")
	assert.Contains(t, buf2.String(), "fan out")
}

func TestMultiHandler_SkipsNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewTextHandler(&buf, nil), nil)

	slog.New(h).Info("still works")

	assert.Contains(t, buf.String(), "still works")
}
