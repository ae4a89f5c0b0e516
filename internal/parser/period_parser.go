package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayMonthYearRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeDayRegex  = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)\s+ago$`)
)

// now is swapped in tests
var now = time.Now

// ParsePeriodStart parses the first instant of a pay period.
// Supported formats:
// - RFC3339 timestamp (e.g., "2026-01-29T10:00:00Z"), used as is
// - yyyy-mm-dd (e.g., "2026-01-29"), start of that day in UTC
// - dd/mm/yyyy (e.g., "29/01/2026"), start of that day in UTC
// - today, yesterday, X days ago, X weeks ago
func ParsePeriodStart(input string) (time.Time, error) {
	t, dateOnly, err := parseBound(input)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		return t, nil
	}
	return t.UTC(), nil
}

// ParsePeriodEnd parses the last instant of a pay period. Accepts the same
// formats as ParsePeriodStart; a bare date means the end of that day.
func ParsePeriodEnd(input string) (time.Time, error) {
	t, dateOnly, err := parseBound(input)
	if err != nil {
		return time.Time{}, err
	}
	if dateOnly {
		return EndOfDay(t), nil
	}
	return t.UTC(), nil
}

// EndOfDay returns the last microsecond of the UTC day containing t
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, 1).Add(-time.Microsecond)
}

// parseBound returns the parsed time and whether the input named a whole day
func parseBound(input string) (time.Time, bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, false, fmt.Errorf("date is required")
	}

	if t, err := time.Parse(time.RFC3339Nano, input); err == nil {
		return t, false, nil
	}

	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t, true, nil
	}

	if t, err := parseDayMonthYear(input); err == nil {
		return t, true, nil
	}

	if t, err := parseRelativeDay(input); err == nil {
		return t, true, nil
	}

	return time.Time{}, false, fmt.Errorf("invalid date %q. Use: yyyy-mm-dd, dd/mm/yyyy, RFC3339, today, yesterday, or X days/weeks ago", input)
}

// parseDayMonthYear parses dd/mm/yyyy format
func parseDayMonthYear(input string) (time.Time, error) {
	matches := dayMonthYearRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}

	return date, nil
}

// parseRelativeDay parses "today", "yesterday", "3 days ago", "2 weeks ago"
func parseRelativeDay(input string) (time.Time, error) {
	input = strings.ToLower(input)
	current := now().UTC()
	today := time.Date(current.Year(), current.Month(), current.Day(), 0, 0, 0, 0, time.UTC)

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	matches := relativeDayRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days":
		if amount > 3660 {
			return time.Time{}, fmt.Errorf("days must be at most 3660")
		}
		return today.AddDate(0, 0, -amount), nil
	default:
		if amount > 520 {
			return time.Time{}, fmt.Errorf("weeks must be at most 520")
		}
		return today.AddDate(0, 0, -7*amount), nil
	}
}

// FormatPeriod formats a pay period for display
func FormatPeriod(start, end time.Time) string {
	start, end = start.UTC(), end.UTC()
	if start.Equal(start.Truncate(24*time.Hour)) && end.Equal(EndOfDay(end)) {
		if start.Format("2006-01-02") == end.Format("2006-01-02") {
			return start.Format("2006-01-02")
		}
		return start.Format("2006-01-02") + " → " + end.Format("2006-01-02")
	}
	return start.Format("2006-01-02 15:04") + " → " + end.Format("2006-01-02 15:04")
}
