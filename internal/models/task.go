package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work that users log time against
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;index" json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	WorkLogs []WorkLog `gorm:"foreignKey:TaskID" json:"-"`
}
