package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/archivio/internal/db"
)

// NewTestDB opens a migrated in-memory archive database that is closed
// when the test completes. It holds a single connection, so callers must
// not touch it from inside a WithinTx callback.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
