package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Remittance statuses
const (
	RemittancePending  = "PENDING"
	RemittanceRemitted = "REMITTED"
)

// Remittance is the pay owed to one user for one period
type Remittance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_remittance_user_period,priority:1" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status      string          `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	PeriodStart time.Time       `gorm:"not null;uniqueIndex:idx_remittance_user_period,priority:2" json:"period_start"`
	PeriodEnd   time.Time       `gorm:"not null;uniqueIndex:idx_remittance_user_period,priority:3" json:"period_end"`
	PaidAt      *time.Time      `json:"paid_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Covers reports whether the interval [start, end] falls inside the remittance period
func (r Remittance) Covers(start, end time.Time) bool {
	return !start.Before(r.PeriodStart) && !end.After(r.PeriodEnd)
}
