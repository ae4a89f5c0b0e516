package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

// Request bodies

type taskCreateIn struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
}

type timeSegmentIn struct {
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
	Description *string   `json:"description"`
	Notes       *string   `json:"notes"`
}

type workLogCreateIn struct {
	TaskID       uuid.UUID       `json:"task_id" binding:"required"`
	TimeSegments []timeSegmentIn `json:"time_segments" binding:"required,min=1,dive"`
}

type timeSegmentUpdateIn struct {
	StartTime   db.Patch[time.Time] `json:"start_time"`
	EndTime     db.Patch[time.Time] `json:"end_time"`
	Description db.Patch[*string]   `json:"description"`
	Notes       db.Patch[*string]   `json:"notes"`
}

type remittancesGenerateIn struct {
	AmountPerHour *decimal.Decimal `json:"amount_per_hour" binding:"required"`
	StartDate     string           `json:"start_date" binding:"required"`
	EndDate       string           `json:"end_date" binding:"required"`
}

// Response bodies

type taskOut struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type timeSegmentOut struct {
	ID              uuid.UUID `json:"id"`
	WorkLogID       uuid.UUID `json:"worklog_id"`
	UserID          uuid.UUID `json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	Description     *string   `json:"description"`
	Notes           *string   `json:"notes"`
	RecordedAt      time.Time `json:"recorded_at"`
}

type workLogOut struct {
	ID                   uuid.UUID        `json:"id"`
	UserID               uuid.UUID        `json:"user_id"`
	TaskID               uuid.UUID        `json:"task_id"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	TotalDurationMinutes float64          `json:"total_duration_minutes"`
	SegmentCount         int              `json:"segment_count"`
	TimeSegments         []timeSegmentOut `json:"time_segments"`
}

type remittanceOut struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	TotalAmount string     `json:"total_amount"`
	Status      string     `json:"status"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at"`
}

type deleteTimeSegmentOut struct {
	Success string `json:"success"`
}

type updateTimeSegmentOut struct {
	Description string `json:"description"`
}

type remittancesGenerateOut struct {
	Detail  string `json:"detail"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

type errorOut struct {
	Detail string `json:"detail"`
}

func newTaskOut(t models.Task) taskOut {
	return taskOut{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func newTimeSegmentOut(s models.TimeSegment) timeSegmentOut {
	return timeSegmentOut{
		ID:              s.ID,
		WorkLogID:       s.WorkLogID,
		UserID:          s.UserID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.Minutes(),
		Description:     s.Description,
		Notes:           s.Notes,
		RecordedAt:      s.RecordedAt,
	}
}

func newTimeSegmentsOut(segments []models.TimeSegment) []timeSegmentOut {
	out := make([]timeSegmentOut, 0, len(segments))
	for _, s := range segments {
		out = append(out, newTimeSegmentOut(s))
	}
	return out
}

func newWorkLogOut(wl models.WorkLog) workLogOut {
	return workLogOut{
		ID:                   wl.ID,
		UserID:               wl.UserID,
		TaskID:               wl.TaskID,
		CreatedAt:            wl.CreatedAt,
		UpdatedAt:            wl.UpdatedAt,
		TotalDurationMinutes: wl.TotalDurationMinutes,
		SegmentCount:         len(wl.TimeSegments),
		TimeSegments:         newTimeSegmentsOut(wl.TimeSegments),
	}
}

func newRemittanceOut(r models.Remittance) remittanceOut {
	return remittanceOut{
		ID:          r.ID,
		UserID:      r.UserID,
		TotalAmount: r.TotalAmount.StringFixed(2),
		Status:      r.Status,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		CreatedAt:   r.CreatedAt,
		PaidAt:      r.PaidAt,
	}
}
