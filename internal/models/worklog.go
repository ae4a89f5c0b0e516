package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkLog groups the time segments one user recorded against one task
type WorkLog struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID               uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TaskID               uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	TotalDurationMinutes float64   `gorm:"not null" json:"total_duration_minutes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Relationships
	TimeSegments []TimeSegment `gorm:"foreignKey:WorkLogID;constraint:OnDelete:CASCADE;" json:"time_segments"`
}

// TimeSegment is one contiguous interval of recorded work
type TimeSegment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkLogID   uuid.UUID `gorm:"column:worklog_id;type:uuid;not null;index" json:"worklog_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Description *string   `json:"description"`
	Notes       *string   `json:"notes"`
	RecordedAt  time.Time `gorm:"not null" json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Minutes returns the segment length in minutes
func (s TimeSegment) Minutes() float64 {
	return s.EndTime.Sub(s.StartTime).Minutes()
}

// SumMinutes adds up the length of every segment
func SumMinutes(segments []TimeSegment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Minutes()
	}
	return total
}
