// Package integration wires the real application services against an
// in-memory SQLite database and exercises the full warehouse flows.
package integration

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/transfer"
)

var dbCounter int64

// NewTestDB opens an isolated in-memory database with the full schema
// migrated. Each call gets its own named database so tests never share state.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:wms_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A shared-cache in-memory database disappears when its last connection
	// closes; one connection keeps it alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&inventory.Record{},
		&inventory.Movement{},
		&transfer.TransferOrder{},
		&transfer.Line{},
	), "failed to migrate test schema")

	return db
}
