// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swinglab/swingcheck/internal/geo"
	"github.com/swinglab/swingcheck/pkg/core"
)

// SwingExport is the root JSON structure consumed by the web viewer.
// SpineWKT duplicates the spine axis as a WKT linestring so GIS-style
// drawing tools can consume it without recomputing the endpoints.
type SwingExport struct {
	SwingName string              `json:"swingName"`
	Golfer    string              `json:"golfer"`
	Video     core.VideoInfo      `json:"video"`
	StartTime string              `json:"startTime"`
	Reference core.Reference      `json:"reference"`
	SpineWKT  string              `json:"spineWkt"`
	Frames    []core.OverlayFrame `json:"frames"`
	Summary   *core.SwingSummary  `json:"summary,omitempty"`
}

// exportJSON writes the swing data to a JSON file, gzipped when configured
func (b *Backend) exportJSON() error {
	export, err := b.buildExport()
	if err != nil {
		return err
	}

	// Build filename
	swingName := strings.ReplaceAll(b.swing.Name, " ", "_")
	swingName = strings.ReplaceAll(swingName, ":", "_")
	timestamp := b.swing.StartTime.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", swingName, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", swingName, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if b.cfg.CompressOutput {
		if err := b.writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := b.writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() (SwingExport, error) {
	spine, err := geo.SpineLine(b.reference.Spine)
	if err != nil {
		return SwingExport{}, fmt.Errorf("failed to build spine geometry: %w", err)
	}
	export := SwingExport{
		SwingName: b.swing.Name,
		Golfer:    b.swing.Golfer,
		Video:     b.swing.Video,
		StartTime: b.swing.StartTime.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Reference: b.reference,
		SpineWKT:  spine.AsText(),
		Frames:    make([]core.OverlayFrame, 0, len(b.frames)),
		Summary:   b.summary,
	}
	export.Frames = append(export.Frames, b.frames...)
	return export, nil
}

func (b *Backend) writeJSON(path string, data SwingExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func (b *Backend) writeGzipJSON(path string, data SwingExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
