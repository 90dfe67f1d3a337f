package gormdb_test

import (
	"github.com/swinglab/swingcheck/internal/storage"
	"github.com/swinglab/swingcheck/internal/storage/gormdb"
)

// Compile-time interface check
var _ storage.Backend = (*gormdb.Backend)(nil)
