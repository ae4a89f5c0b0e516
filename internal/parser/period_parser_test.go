package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestParsePeriodStart(t *testing.T) {
	fixNow(t, time.Date(2026, 3, 15, 17, 45, 0, 0, time.UTC))

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-01-29", time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)},
		{"29/01/2026", time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC)},
		{"2026-01-29T10:30:00Z", time.Date(2026, 1, 29, 10, 30, 0, 0, time.UTC)},
		{"2026-01-29T12:30:00+02:00", time.Date(2026, 1, 29, 10, 30, 0, 0, time.UTC)},
		{"today", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Yesterday", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
		{"3 days ago", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)},
		{"2 weeks ago", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriodStart(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParsePeriodEnd_DateMeansEndOfDay(t *testing.T) {
	got, err := ParsePeriodEnd("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 999999000, time.UTC), got)

	got, err = ParsePeriodEnd("2026-01-31T18:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 18, 0, 0, 0, time.UTC), got)
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, input := range []string{"", "31/02/2026", "13/13/2026", "soon", "2026-1-5", "99999 days ago"} {
		_, err := ParsePeriodStart(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatPeriod(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-01 → 2026-01-31", FormatPeriod(day, EndOfDay(day.AddDate(0, 0, 30))))
	assert.Equal(t, "2026-01-01", FormatPeriod(day, EndOfDay(day)))
	assert.Equal(t, "2026-01-01 09:00 → 2026-01-01 17:00",
		FormatPeriod(day.Add(9*time.Hour), day.Add(17*time.Hour)))
}
