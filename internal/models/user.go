package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a worker who records time and receives remittances
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName    *string   `gorm:"size:255" json:"full_name"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	TokenHash   string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	WorkLogs    []WorkLog    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Remittances []Remittance `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}
