package db

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/balkashynov/tally/internal/models"
)

var minutesPerHour = decimal.NewFromInt(60)

// GenerateRemittancesRequest describes one pay run
type GenerateRemittancesRequest struct {
	AmountPerHour decimal.Decimal
	Start         time.Time
	End           time.Time
}

// GenerateResult reports what a pay run wrote
type GenerateResult struct {
	Created []models.Remittance
	Skipped int // users already remitted for this exact period
}

// RemittanceFilter narrows GetRemittances. An empty Status matches everything.
type RemittanceFilter struct {
	Status string
}

// PayFor converts worked minutes into an amount at the hourly rate, rounded to cents
func PayFor(minutes float64, amountPerHour decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(minutes).Div(minutesPerHour).Mul(amountPerHour).Round(2)
}

// CreateRemittances writes one PENDING remittance per user that owns a worklog,
// paying for the segments that lie entirely inside [Start, End]. The run is a
// single transaction. Users already remitted for the same period are skipped,
// so repeating a run does not pay twice.
func (s *Store) CreateRemittances(ctx context.Context, req GenerateRemittancesRequest) (*GenerateResult, error) {
	start, end := req.Start.UTC(), req.End.UTC()
	if req.AmountPerHour.IsNegative() {
		return nil, newError(ErrValidation, "amount_per_hour must not be negative")
	}
	if end.Before(start) {
		return nil, newError(ErrValidation, "end_date must not be before start_date")
	}

	result := &GenerateResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userIDs []uuid.UUID
		if err := tx.Model(&models.WorkLog{}).Distinct("user_id").Pluck("user_id", &userIDs).Error; err != nil {
			return err
		}

		minutes, err := minutesInWindow(tx, start, end)
		if err != nil {
			return err
		}

		var existing []uuid.UUID
		err = tx.Model(&models.Remittance{}).
			Where("period_start = ? AND period_end = ?", start, end).
			Pluck("user_id", &existing).Error
		if err != nil {
			return err
		}
		done := make(map[uuid.UUID]bool, len(existing))
		for _, id := range existing {
			done[id] = true
		}

		for _, userID := range userIDs {
			if done[userID] {
				result.Skipped++
				continue
			}
			result.Created = append(result.Created, models.Remittance{
				UserID:      userID,
				TotalAmount: PayFor(minutes[userID], req.AmountPerHour),
				Status:      models.RemittancePending,
				PeriodStart: start,
				PeriodEnd:   end,
			})
		}
		if len(result.Created) == 0 {
			return nil
		}
		return tx.Create(&result.Created).Error
	})
	if err != nil {
		return nil, translate(err, "A remittance for this period")
	}

	s.log.InfoContext(ctx, "remittances generated",
		"period_start", start,
		"period_end", end,
		"created", len(result.Created),
		"skipped", result.Skipped,
	)
	return result, nil
}

// minutesInWindow sums segment minutes per user for segments inside [start, end]
func minutesInWindow(tx *gorm.DB, start, end time.Time) (map[uuid.UUID]float64, error) {
	var segments []models.TimeSegment
	err := tx.Select("user_id", "start_time", "end_time").
		Where("start_time >= ? AND end_time <= ?", start, end).
		Find(&segments).Error
	if err != nil {
		return nil, err
	}

	minutes := make(map[uuid.UUID]float64)
	for _, seg := range segments {
		minutes[seg.UserID] += seg.Minutes()
	}
	return minutes, nil
}

// GetRemittances returns all remittances, optionally filtered by status
func (s *Store) GetRemittances(ctx context.Context, filter RemittanceFilter) ([]models.Remittance, error) {
	query := s.db.WithContext(ctx).Order("period_start ASC, created_at ASC")

	if status := strings.ToUpper(strings.TrimSpace(filter.Status)); status != "" {
		if status != models.RemittancePending && status != models.RemittanceRemitted {
			return nil, newError(ErrValidation, "status must be one of %s, %s", models.RemittancePending, models.RemittanceRemitted)
		}
		query = query.Where("status = ?", status)
	}

	var remittances []models.Remittance
	if err := query.Find(&remittances).Error; err != nil {
		return nil, err
	}
	return remittances, nil
}

// MarkRemittancePaid moves a PENDING remittance to REMITTED and stamps paid_at
func (s *Store) MarkRemittancePaid(ctx context.Context, id uuid.UUID) (*models.Remittance, error) {
	var remittance models.Remittance

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&remittance, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "No remittance with the id %s found.", id)
		}
		if remittance.Status == models.RemittanceRemitted {
			return newError(ErrConflict, "Remittance %s has already been paid.", id)
		}

		now := tx.NowFunc()
		remittance.Status = models.RemittanceRemitted
		remittance.PaidAt = &now
		return tx.Model(&remittance).Updates(map[string]any{
			"status":  remittance.Status,
			"paid_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "remittance paid", "remittance_id", id, "user_id", remittance.UserID)
	return &remittance, nil
}
