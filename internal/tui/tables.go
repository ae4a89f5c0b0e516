package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/parser"
)

const (
	dateLayout = "02/01/2006 15:04"
	maxTitle   = 38
	empty      = "-"
)

// newTable applies the shared border and header styling. Columns listed in
// dim are rendered muted.
func newTable(headers []string, rows [][]string, dim ...int) *table.Table {
	muted := make(map[int]bool, len(dim))
	for _, c := range dim {
		muted[c] = true
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case muted[col]:
				return dimStyle
			default:
				return cellStyle
			}
		})
}

// RenderTasks renders tasks as a table, or a hint when there are none
func RenderTasks(tasks []models.Task) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks found. Use 'tally task add \"title\"' to create your first task.")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID.String(),
			truncate(t.Title, maxTitle),
			truncate(deref(t.Description), maxTitle),
			t.CreatedAt.Local().Format(dateLayout),
		})
	}
	return newTable([]string{"ID", "TITLE", "DESCRIPTION", "CREATED"}, rows, 0, 3).String()
}

// RenderUsers renders users with their role and state
func RenderUsers(users []models.User) string {
	if len(users) == 0 {
		return dimStyle.Render("No users found. Use 'tally user add --email ...' to create one.")
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		role := "worker"
		if u.IsSuperuser {
			role = "superuser"
		}
		rows = append(rows, []string{
			u.ID.String(),
			u.Email,
			deref(u.FullName),
			role,
			strconv.FormatBool(u.IsActive),
		})
	}
	return newTable([]string{"ID", "EMAIL", "NAME", "ROLE", "ACTIVE"}, rows, 0).String()
}

// RenderRemittances renders remittances with their pay period and a status
// column colored by state
func RenderRemittances(remittances []models.Remittance) string {
	if len(remittances) == 0 {
		return dimStyle.Render("No remittances found.")
	}

	rows := make([][]string, 0, len(remittances))
	for _, r := range remittances {
		paid := empty
		if r.PaidAt != nil {
			paid = r.PaidAt.Local().Format(dateLayout)
		}
		rows = append(rows, []string{
			r.ID.String(),
			r.UserID.String(),
			parser.FormatPeriod(r.PeriodStart, r.PeriodEnd),
			r.TotalAmount.StringFixed(2),
			statusLabel(r.Status),
			paid,
		})
	}
	return newTable([]string{"ID", "USER", "PERIOD", "AMOUNT", "STATUS", "PAID"}, rows, 0, 1).String()
}

func statusLabel(status string) string {
	switch status {
	case models.RemittanceRemitted:
		return successStyle.Render(status)
	case models.RemittancePending:
		return warningStyle.Render(status)
	default:
		return status
	}
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return empty
	}
	return *s
}

// truncate shortens s to max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
