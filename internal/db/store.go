package db

import (
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store runs the task, worklog, remittance and user operations against one database
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// NewStore wraps an open database. A nil logger falls back to slog.Default.
func NewStore(db *gorm.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{db: db, log: log}
}

// DB exposes the underlying connection for health checks and shutdown
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Caller identifies the authenticated user an operation runs on behalf of
type Caller struct {
	UserID    uuid.UUID
	Email     string
	Superuser bool
}
