package websocket_test

import (
	"github.com/swinglab/swingcheck/internal/storage"
	"github.com/swinglab/swingcheck/internal/storage/websocket"
)

// Compile-time interface check.
var _ storage.Backend = (*websocket.Backend)(nil)
