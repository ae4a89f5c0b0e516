package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/tally/internal/config"
	"github.com/balkashynov/tally/internal/db"
)

// NewTestDB creates a private in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite"
	database, err := db.Open(config.Database{Driver: config.DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})
	return database
}

// NewTestStore wraps a fresh test database in a Store that logs nowhere
func NewTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(NewTestDB(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}
