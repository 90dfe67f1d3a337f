package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// AnalysisConfig holds the head-movement analysis settings
type AnalysisConfig struct {
	// HeadBoundaryRadius in pixels; 0 derives the radius from shoulder width
	HeadBoundaryRadius float64 `json:"headBoundaryRadius" mapstructure:"headBoundaryRadius"`
	// ConfidenceThreshold is the minimum landmark confidence in [0,1]
	ConfidenceThreshold float64 `json:"confidenceThreshold" mapstructure:"confidenceThreshold"`
	// CalibrationFrame is the frame index the reference geometry is built from
	CalibrationFrame uint `json:"calibrationFrame" mapstructure:"calibrationFrame"`
	// Workers is the classification pool size; 1 disables parallelism
	Workers int `json:"workers" mapstructure:"workers"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// WebSocketConfig holds live streaming sink settings
type WebSocketConfig struct {
	URL    string `json:"url" mapstructure:"url"`
	Secret string `json:"secret" mapstructure:"secret"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type      string          `json:"type" mapstructure:"type"`
	Memory    MemoryConfig    `json:"memory" mapstructure:"memory"`
	WebSocket WebSocketConfig `json:"websocket" mapstructure:"websocket"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./swingcheck-logs")

	viper.SetDefault("analysis.headBoundaryRadius", 0.0)
	viper.SetDefault("analysis.confidenceThreshold", 0.5)
	viper.SetDefault("analysis.calibrationFrame", 0)
	viper.SetDefault("analysis.workers", 4)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./swings")
	viper.SetDefault("storage.memory.compressOutput", false)
	viper.SetDefault("storage.websocket.url", "ws://localhost:5000/stream")
	viper.SetDefault("storage.websocket.secret", "")

	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "swingcheck")
	viper.SetDefault("db.sqlitePath", "./swingcheck.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "swingcheck-metrics")

	viper.SetConfigName("swingcheck.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Analysis returns the analysis section.
func Analysis() AnalysisConfig {
	return AnalysisConfig{
		HeadBoundaryRadius:  viper.GetFloat64("analysis.headBoundaryRadius"),
		ConfidenceThreshold: viper.GetFloat64("analysis.confidenceThreshold"),
		CalibrationFrame:    uint(viper.GetInt("analysis.calibrationFrame")),
		Workers:             viper.GetInt("analysis.workers"),
	}
}

// Storage returns the storage section.
func Storage() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		WebSocket: WebSocketConfig{
			URL:    viper.GetString("storage.websocket.url"),
			Secret: viper.GetString("storage.websocket.secret"),
		},
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
