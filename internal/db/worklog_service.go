package db

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/balkashynov/tally/internal/models"
)

// Remittance status filter values accepted by ListWorkLogs
const (
	FilterRemitted   = "REMITTED"
	FilterUnremitted = "UNREMITTED"
)

// SegmentInput is one time segment of a new worklog
type SegmentInput struct {
	StartTime   time.Time
	EndTime     time.Time
	Description *string
	Notes       *string
}

// CreateWorkLogRequest holds the data needed to create a worklog
type CreateWorkLogRequest struct {
	TaskID   uuid.UUID
	Segments []SegmentInput
}

// WorkLogSummary is a worklog with its segments loaded
type WorkLogSummary struct {
	models.WorkLog
	SegmentCount int
}

// WorkLogFilter narrows ListWorkLogs. An empty RemittanceStatus matches everything.
type WorkLogFilter struct {
	RemittanceStatus string
}

// UpdateTimeSegmentRequest lists the fields to overwrite; unset fields keep their value
type UpdateTimeSegmentRequest struct {
	StartTime   Patch[time.Time]
	EndTime     Patch[time.Time]
	Description Patch[*string]
	Notes       Patch[*string]
}

// CreateWorkLog stores a worklog and all of its segments in one transaction
func (s *Store) CreateWorkLog(ctx context.Context, caller Caller, req CreateWorkLogRequest) (*models.WorkLog, error) {
	if len(req.Segments) == 0 {
		return nil, newError(ErrValidation, "time_segments must contain at least one segment")
	}

	segments := make([]models.TimeSegment, 0, len(req.Segments))
	for i, in := range req.Segments {
		start, end := in.StartTime.UTC(), in.EndTime.UTC()
		if !end.After(start) {
			return nil, newError(ErrValidation, "time_segments[%d]: end_time must be after start_time", i)
		}
		segments = append(segments, models.TimeSegment{
			UserID:      caller.UserID,
			StartTime:   start,
			EndTime:     end,
			Description: in.Description,
			Notes:       in.Notes,
		})
	}

	worklog := models.WorkLog{
		UserID:               caller.UserID,
		TaskID:               req.TaskID,
		TotalDurationMinutes: models.SumMinutes(segments),
		TimeSegments:         segments,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("id = ?", req.TaskID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return newError(ErrNotFound, "No task with the id %s found.", req.TaskID)
		}
		return tx.Create(&worklog).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "worklog created",
		"worklog_id", worklog.ID,
		"task_id", worklog.TaskID,
		"user_id", worklog.UserID,
		"segments", len(segments),
		"minutes", worklog.TotalDurationMinutes,
	)
	return &worklog, nil
}

// ListWorkLogs returns every worklog with its segments preloaded
func (s *Store) ListWorkLogs(ctx context.Context, filter WorkLogFilter) ([]WorkLogSummary, error) {
	status := strings.ToUpper(strings.TrimSpace(filter.RemittanceStatus))
	switch status {
	case "", FilterRemitted, FilterUnremitted:
	default:
		return nil, newError(ErrValidation, "remittance_status must be one of %s, %s", FilterRemitted, FilterUnremitted)
	}

	var worklogs []models.WorkLog
	err := s.db.WithContext(ctx).
		Preload("TimeSegments", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Order("created_at ASC").
		Find(&worklogs).Error
	if err != nil {
		return nil, err
	}

	var paid map[uuid.UUID][]models.Remittance
	if status != "" {
		paid, err = s.remittedByUser(ctx, worklogs)
		if err != nil {
			return nil, err
		}
	}

	summaries := make([]WorkLogSummary, 0, len(worklogs))
	for _, wl := range worklogs {
		if status != "" && isRemitted(wl, paid[wl.UserID]) != (status == FilterRemitted) {
			continue
		}
		wl.TotalDurationMinutes = models.SumMinutes(wl.TimeSegments)
		summaries = append(summaries, WorkLogSummary{
			WorkLog:      wl,
			SegmentCount: len(wl.TimeSegments),
		})
	}
	return summaries, nil
}

// remittedByUser loads paid remittances for the owners of worklogs
func (s *Store) remittedByUser(ctx context.Context, worklogs []models.WorkLog) (map[uuid.UUID][]models.Remittance, error) {
	seen := make(map[uuid.UUID]bool)
	var userIDs []uuid.UUID
	for _, wl := range worklogs {
		if !seen[wl.UserID] {
			seen[wl.UserID] = true
			userIDs = append(userIDs, wl.UserID)
		}
	}
	if len(userIDs) == 0 {
		return nil, nil
	}

	var remittances []models.Remittance
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND status = ?", userIDs, models.RemittanceRemitted).
		Find(&remittances).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[uuid.UUID][]models.Remittance, len(userIDs))
	for _, r := range remittances {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	return byUser, nil
}

// isRemitted reports whether one paid remittance covers every segment of wl
func isRemitted(wl models.WorkLog, remittances []models.Remittance) bool {
	if len(wl.TimeSegments) == 0 {
		return false
	}
	first, last := wl.TimeSegments[0].StartTime, wl.TimeSegments[0].EndTime
	for _, seg := range wl.TimeSegments[1:] {
		if seg.StartTime.Before(first) {
			first = seg.StartTime
		}
		if seg.EndTime.After(last) {
			last = seg.EndTime
		}
	}
	for _, r := range remittances {
		if r.Covers(first, last) {
			return true
		}
	}
	return false
}

// GetUserTimeSegments returns every segment recorded by the caller
func (s *Store) GetUserTimeSegments(ctx context.Context, caller Caller) ([]models.TimeSegment, error) {
	var segments []models.TimeSegment

	err := s.db.WithContext(ctx).
		Where("user_id = ?", caller.UserID).
		Order("start_time ASC").
		Find(&segments).Error
	if err != nil {
		return nil, err
	}

	return segments, nil
}

// GetTimeSegment retrieves a segment by ID
func (s *Store) GetTimeSegment(ctx context.Context, id uuid.UUID) (*models.TimeSegment, error) {
	return findSegment(s.db.WithContext(ctx), id)
}

// DeleteTimeSegment removes one of the caller's segments and re-totals its worklog
func (s *Store) DeleteTimeSegment(ctx context.Context, caller Caller, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seg, err := findSegment(tx, id)
		if err != nil {
			return err
		}
		if seg.UserID != caller.UserID {
			return newError(ErrForbidden, "Not allowed to remove this time segment.")
		}

		if err := tx.Delete(&models.TimeSegment{}, "id = ?", seg.ID).Error; err != nil {
			return err
		}
		return syncWorkLogTotal(tx, seg.WorkLogID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "time segment deleted", "segment_id", id, "user_id", caller.UserID)
	return nil
}

// UpdateTimeSegment overwrites the supplied fields of one of the caller's segments
func (s *Store) UpdateTimeSegment(ctx context.Context, caller Caller, id uuid.UUID, req UpdateTimeSegmentRequest) (*models.TimeSegment, error) {
	var updated *models.TimeSegment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seg, err := findSegment(tx, id)
		if err != nil {
			return err
		}
		if seg.UserID != caller.UserID {
			return newError(ErrForbidden, "Not allowed to update this time segment.")
		}

		changes := map[string]any{}
		if req.StartTime.Set {
			seg.StartTime = req.StartTime.Value.UTC()
			changes["start_time"] = seg.StartTime
		}
		if req.EndTime.Set {
			seg.EndTime = req.EndTime.Value.UTC()
			changes["end_time"] = seg.EndTime
		}
		if req.Description.Set {
			seg.Description = req.Description.Value
			changes["description"] = seg.Description
		}
		if req.Notes.Set {
			seg.Notes = req.Notes.Value
			changes["notes"] = seg.Notes
		}
		if !seg.EndTime.After(seg.StartTime) {
			return newError(ErrValidation, "end_time must be after start_time")
		}
		if len(changes) == 0 {
			updated = seg
			return nil
		}

		if err := tx.Model(seg).Updates(changes).Error; err != nil {
			return err
		}
		if req.StartTime.Set || req.EndTime.Set {
			if err := syncWorkLogTotal(tx, seg.WorkLogID); err != nil {
				return err
			}
		}
		updated = seg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "time segment updated", "segment_id", id, "user_id", caller.UserID)
	return updated, nil
}

func findSegment(tx *gorm.DB, id uuid.UUID) (*models.TimeSegment, error) {
	var seg models.TimeSegment
	if err := tx.First(&seg, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "No time segment with the id %s found.", id)
	}
	return &seg, nil
}

// syncWorkLogTotal recomputes the stored total from the remaining segments
func syncWorkLogTotal(tx *gorm.DB, worklogID uuid.UUID) error {
	var segments []models.TimeSegment
	if err := tx.Where("worklog_id = ?", worklogID).Find(&segments).Error; err != nil {
		return err
	}
	return tx.Model(&models.WorkLog{}).
		Where("id = ?", worklogID).
		Update("total_duration_minutes", models.SumMinutes(segments)).Error
}
