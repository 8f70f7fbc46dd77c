//go:build unit

package timeexpr_test

import (
	"testing"
	"time"

	"forget-bot/internal/domain/timeexpr"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	loc := losAngeles(t)
	// Tuesday
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)

	testCases := []struct {
		name     string
		target   time.Time
		expected string
	}{
		{name: "same day", target: time.Date(2026, 3, 10, 15, 5, 0, 0, loc), expected: "Today at 3:05 PM"},
		{name: "next day", target: time.Date(2026, 3, 11, 9, 0, 0, 0, loc), expected: "Tomorrow at 9:00 AM"},
		{name: "within the week", target: time.Date(2026, 3, 13, 18, 30, 0, 0, loc), expected: "Friday at 6:30 PM"},
		{name: "beyond the week", target: time.Date(2026, 3, 20, 12, 0, 0, 0, loc), expected: "Friday, March 20, 2026 at 12:00 PM"},
		{name: "target given in another zone", target: time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC), expected: "Today at 4:00 PM"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, timeexpr.FormatRelative(tc.target, now, loc))
		})
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "3 hours", timeexpr.Remaining(now.Add(3*time.Hour), now))
	assert.Equal(t, "5 minutes", timeexpr.Remaining(now.Add(5*time.Minute), now))
	assert.Equal(t, "now", timeexpr.Remaining(now.Add(-time.Minute), now))
}
