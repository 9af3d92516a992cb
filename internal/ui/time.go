package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/focus/internal/age"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	duration, ok := internalage.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration) + " ago"
}

var shortUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
}

// FormatDurationShort renders d in its largest whole unit: "45s", "2m",
// "3h", "2d". Negative durations render as "0s".
func FormatDurationShort(d time.Duration) string {
	for _, unit := range shortUnits {
		if d >= unit.size {
			return fmt.Sprintf("%d%s", d/unit.size, unit.suffix)
		}
	}
	return fmt.Sprintf("%ds", max(d, 0)/time.Second)
}

// FormatDue describes a deadline relative to now: "in 3d", "2h overdue".
func FormatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}
	remaining := due.Sub(now)
	if remaining < 0 {
		return FormatDurationShort(-remaining) + " overdue"
	}
	return "in " + FormatDurationShort(remaining)
}

// FormatMinutes renders a minute count as "45m" or "2h05m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// FormatMinutesPtr renders an optional minute count, or "-".
func FormatMinutesPtr(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return FormatMinutes(*minutes)
}

// FormatClock renders a timestamp as "2006-01-02 15:04" in loc.
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02 15:04")
}

// FormatCountdown renders a duration as "mm:ss", or "h:mm:ss" past an hour.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	hours, minutes, seconds := total/3600, (total/60)%60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
