// Command swingcheck analyzes a golf swing pose stream for head movement.
// It reads per-frame landmarks as JSON lines, builds the reference geometry
// from a calibration frame, classifies every frame against the head
// boundary, and writes overlay frames plus a summary to the configured
// storage backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/swinglab/swingcheck/internal/api"
	"github.com/swinglab/swingcheck/internal/config"
	"github.com/swinglab/swingcheck/internal/database"
	"github.com/swinglab/swingcheck/internal/influx"
	"github.com/swinglab/swingcheck/internal/logging"
	"github.com/swinglab/swingcheck/internal/pipeline"
	"github.com/swinglab/swingcheck/internal/pose"
	"github.com/swinglab/swingcheck/internal/reference"
	"github.com/swinglab/swingcheck/internal/storage"
	"github.com/swinglab/swingcheck/internal/util"
	"github.com/swinglab/swingcheck/pkg/core"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configDir = flag.String("config", ".", "directory containing swingcheck.cfg.json")
		name      = flag.String("name", "", "swing name (default: input filename)")
		golfer    = flag.String("golfer", "", "golfer name")
		fps       = flag.Float64("fps", 60, "source video frame rate")
		width     = flag.Uint("width", 0, "source video width in pixels")
		height    = flag.Uint("height", 0, "source video height in pixels")
		upload    = flag.Bool("upload", false, "upload the exported swing to the web frontend")
		version   = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("swingcheck %s (built %s)\n", Version, BuildDate)
		return nil
	}

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: swingcheck [flags] <landmarks.jsonl | ->")
	}
	inputPath := flag.Arg(0)

	sessionStart := time.Now()

	if err := config.Load(*configDir); err != nil {
		// Defaults still apply without a config file.
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	// Logging goes to a session file; analysis results go to stdout.
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}
	logFile, err := os.Create(logging.LogFilePath(logsDir, "swingcheck", sessionStart))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	slogManager := logging.NewSlogManager()
	slogManager.Setup(logFile, viper.GetString("logLevel"))
	logger := slogManager.Logger()
	logger.Info("Starting up", "version", Version, "input", inputPath)

	zlog := zerolog.New(logFile).With().Timestamp().Logger()

	// Input stream.
	var in io.Reader
	if inputPath == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	analysisCfg := config.Analysis()
	src := pose.NewJSONLSource(in, analysisCfg.ConfidenceThreshold, logger)

	swingName := *name
	if swingName == "" {
		swingName = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if inputPath == "-" {
			swingName = "stdin"
		}
	}
	swing := &core.Swing{
		Name:      swingName,
		Golfer:    *golfer,
		Video:     core.VideoInfo{Width: *width, Height: *height, FPS: *fps},
		StartTime: sessionStart,
	}

	// Storage backend.
	storageCfg := config.Storage()
	deps := storage.Dependencies{Logger: logger}

	switch storageCfg.Type {
	case "postgres":
		dbm := database.NewManager(zlog)
		if err := dbm.Connect(); err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer dbm.Close()
		deps.DB = dbm.DB
	case "sqlite":
		dbm := database.NewManager(zlog)
		db, err := dbm.GetSqliteDB(viper.GetString("db.sqlitePath"))
		if err != nil {
			return fmt.Errorf("opening sqlite database: %w", err)
		}
		dbm.DB = db
		defer dbm.Close()
		deps.DB = db
	}

	backend, err := storage.NewBackend(storageCfg, deps)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing %s backend: %w", storageCfg.Type, err)
	}
	defer backend.Close()

	// Optional InfluxDB metrics.
	var metrics *influx.Manager
	if viper.GetBool("influx.enabled") {
		backupPath := filepath.Join(logsDir, "influx_backup.log.gz")
		metrics = influx.NewManager(zlog, backupPath)
		if err := metrics.Connect(); err != nil {
			logger.Warn("InfluxDB unavailable, metrics disabled", "error", err)
			metrics = nil
		}
	}

	// Run the analysis.
	opts := pipeline.Options{
		Calibration: reference.Config{
			Radius:              analysisCfg.HeadBoundaryRadius,
			ConfidenceThreshold: analysisCfg.ConfidenceThreshold,
		},
		CalibrationFrame: analysisCfg.CalibrationFrame,
		Workers:          analysisCfg.Workers,
		Logger:           logger,
	}

	runStart := time.Now()
	summary, err := pipeline.Run(src, swing, backend, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(runStart)
	logger.Info("Analysis complete",
		"frames", summary.TotalFrames,
		"detected", summary.DetectedFrames,
		"outOfBounds", summary.OutOfBoundsFrames,
		"elapsed", elapsed)

	if metrics != nil {
		ctx := context.Background()
		if err := metrics.WritePoint(ctx, influx.BucketSwingResults, influx.SummaryPoint(swing, &summary)); err != nil {
			logger.Warn("failed to write summary metrics", "error", err)
		}
		if err := metrics.WritePoint(ctx, influx.BucketPerformance,
			influx.ThroughputPoint(swing, summary.TotalFrames, analysisCfg.Workers, elapsed)); err != nil {
			logger.Warn("failed to write throughput metrics", "error", err)
		}
	}

	fmt.Printf("Swing: %s\n", swing.Name)
	fmt.Print(util.FormatSummary(&summary, *fps))

	// Upload the export when the backend produced a file.
	if exp, ok := backend.(storage.Exportable); ok {
		if path := exp.ExportedFilePath(); path != "" {
			fmt.Printf("Exported:          %s\n", path)
			if *upload {
				if err := uploadExport(path, swing, summary, *fps); err != nil {
					return fmt.Errorf("uploading export: %w", err)
				}
				fmt.Println("Uploaded to web frontend")
			}
		}
	}

	return nil
}

func uploadExport(path string, swing *core.Swing, summary core.SwingSummary, fps float64) error {
	client := api.New(viper.GetString("api.serverUrl"), viper.GetString("api.apiKey"))
	if err := client.Healthcheck(); err != nil {
		return err
	}

	duration := 0.0
	if fps > 0 {
		duration = float64(summary.TotalFrames) / fps
	}
	return client.Upload(path, core.UploadMetadata{
		SwingName: swing.Name,
		Golfer:    swing.Golfer,
		Duration:  duration,
	})
}
