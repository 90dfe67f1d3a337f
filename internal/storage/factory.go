// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/swinglab/swingcheck/internal/config"
	"github.com/swinglab/swingcheck/internal/storage/gormdb"
	"github.com/swinglab/swingcheck/internal/storage/memory"
	"github.com/swinglab/swingcheck/internal/storage/websocket"
)

// Dependencies holds the shared resources backends may need.
type Dependencies struct {
	DB     *gorm.DB // required for sqlite/postgres backends
	Logger *slog.Logger
}

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.StorageConfig, deps Dependencies) (Backend, error) {
	switch cfg.Type {
	case "postgres", "sqlite":
		if deps.DB == nil {
			return nil, fmt.Errorf("%s backend requires a database connection", cfg.Type)
		}
		return gormdb.New(gormdb.Dependencies{DB: deps.DB, Logger: deps.Logger}), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	case "websocket":
		return websocket.New(websocket.Config{
			URL:    cfg.WebSocket.URL,
			Secret: cfg.WebSocket.Secret,
		}, deps.Logger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
