// Package followup describes the escalation rounds that run after a
// reminder is delivered and not acknowledged.
package followup

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrEmptySchedule = errors.New("follow-up schedule needs at least one interval")

var DefaultIntervals = []time.Duration{
	1 * time.Hour,
	2 * time.Hour,
	4 * time.Hour,
	8 * time.Hour,
	12 * time.Hour,
}

type Schedule struct {
	intervals []time.Duration
}

func NewSchedule(intervals []time.Duration) (Schedule, error) {
	if len(intervals) == 0 {
		return Schedule{}, ErrEmptySchedule
	}
	for _, d := range intervals {
		if d <= 0 {
			return Schedule{}, fmt.Errorf("follow-up interval must be positive, got %s", d)
		}
	}
	cp := make([]time.Duration, len(intervals))
	copy(cp, intervals)
	return Schedule{intervals: cp}, nil
}

func DefaultSchedule() Schedule {
	s, _ := NewSchedule(DefaultIntervals)
	return s
}

func (s Schedule) Rounds() int { return len(s.intervals) }

// Wait is the sleep before round i.
func (s Schedule) Wait(i int) time.Duration { return s.intervals[i] }

// Remaining is how many rounds follow round i.
func (s Schedule) Remaining(i int) int { return len(s.intervals) - i - 1 }

// NextLabel describes the wait after round i, empty on the last round.
func (s Schedule) NextLabel(i int) string {
	if i+1 >= len(s.intervals) {
		return ""
	}
	return FormatInterval(s.intervals[i+1])
}

// FormatInterval renders whole and fractional hours ("1 hour", "1.5 hours")
// and falls back to minutes below an hour and seconds below a minute.
func FormatInterval(d time.Duration) string {
	if d < time.Minute {
		seconds := max(int(d.Round(time.Second)/time.Second), 1)
		if seconds == 1 {
			return "1 second"
		}
		return strconv.Itoa(seconds) + " seconds"
	}
	if d < time.Hour {
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return strconv.Itoa(minutes) + " minutes"
	}
	hours := d.Hours()
	if hours == 1 {
		return "1 hour"
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hours"
}

// Outcome is the terminal result of an escalation.
type Outcome struct {
	Acknowledged  bool `json:"acknowledged"`
	FollowUpsSent int  `json:"followUpsSent"`
}
