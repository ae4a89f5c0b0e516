package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills a zero uuid primary key before insert
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	return nil
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	newID(&t.ID)
	return nil
}

func (w *WorkLog) BeforeCreate(tx *gorm.DB) error {
	newID(&w.ID)
	return nil
}

func (s *TimeSegment) BeforeCreate(tx *gorm.DB) error {
	newID(&s.ID)
	if s.RecordedAt.IsZero() {
		s.RecordedAt = tx.NowFunc()
	}
	return nil
}

func (r *Remittance) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	if r.Status == "" {
		r.Status = RemittancePending
	}
	return nil
}
