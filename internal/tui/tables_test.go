package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/tally/internal/models"
)

func TestRenderTasks(t *testing.T) {
	desc := "monthly payroll"
	id := uuid.New()
	out := RenderTasks([]models.Task{
		{ID: id, Title: "Payroll export", Description: &desc, CreatedAt: time.Now()},
		{ID: uuid.New(), Title: strings.Repeat("x", 60), CreatedAt: time.Now()},
	})

	assert.Contains(t, out, id.String())
	assert.Contains(t, out, "Payroll export")
	assert.Contains(t, out, "monthly payroll")
	assert.Contains(t, out, strings.Repeat("x", maxTitle-3)+"...")
	assert.NotContains(t, out, strings.Repeat("x", maxTitle+1))
}

func TestRenderTasks_Empty(t *testing.T) {
	assert.Contains(t, RenderTasks(nil), "No tasks found")
}

func TestRenderUsers(t *testing.T) {
	name := "Ada"
	out := RenderUsers([]models.User{
		{ID: uuid.New(), Email: "ada@example.com", FullName: &name, IsActive: true, IsSuperuser: true},
		{ID: uuid.New(), Email: "bob@example.com", IsActive: false},
	})

	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "superuser")
	assert.Contains(t, out, "worker")
	assert.Contains(t, out, "false")
}

func TestRenderRemittances(t *testing.T) {
	paidAt := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)

	out := RenderRemittances([]models.Remittance{
		{ID: uuid.New(), UserID: uuid.New(), TotalAmount: decimal.RequireFromString("40"), Status: models.RemittancePending, PeriodStart: start, PeriodEnd: end},
		{ID: uuid.New(), UserID: uuid.New(), TotalAmount: decimal.RequireFromString("12.5"), Status: models.RemittanceRemitted, PeriodStart: start, PeriodEnd: end, PaidAt: &paidAt},
	})

	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, models.RemittancePending)
	assert.Contains(t, out, models.RemittanceRemitted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short ", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "żółw...", truncate("żółwiątko", 7))
}
