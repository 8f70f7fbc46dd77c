package timeexpr

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const clockLayout = "3:04 PM"

// FormatRelative renders target for confirmations: "Today at 3:05 PM",
// "Tomorrow at 9:00 AM", a weekday within the coming week, or the full date.
func FormatRelative(target, now time.Time, loc *time.Location) string {
	t := target.In(loc)
	clock := t.Format(clockLayout)

	switch days := civilDaysBetween(now.In(loc), t); {
	case days == 0:
		return "Today at " + clock
	case days == 1:
		return "Tomorrow at " + clock
	case days > 1 && days < 7:
		return t.Format("Monday") + " at " + clock
	default:
		return t.Format("Monday, January 2, 2006") + " at " + clock
	}
}

// Remaining is the coarse distance from now to target, e.g. "3 hours".
func Remaining(target, now time.Time) string {
	if !target.After(now) {
		return "now"
	}
	return strings.TrimSpace(humanize.RelTime(now, target, "", ""))
}

func civilDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
