// Package age holds the day and minute arithmetic shared by scoring,
// aggregation, and display.
package age

import (
	"math"
	"time"
)

// Day is the length of a scoring day.
const Day = 24 * time.Hour

// CeilDays measures d in whole days, rounding any partial day up.
// A negative duration of less than one day rounds up to zero.
func CeilDays(d time.Duration) int {
	days := math.Ceil(float64(d) / float64(Day))
	if days == 0 {
		// Normalize negative zero.
		return 0
	}
	return int(days)
}

// RoundMinutes measures d in whole minutes, rounding to the nearest minute.
func RoundMinutes(d time.Duration) int {
	return int(d.Round(time.Minute) / time.Minute)
}

// AgeData computes the time elapsed since createdAt and whether timing data exists.
func AgeData(createdAt time.Time, now time.Time) (time.Duration, bool) {
	if createdAt.IsZero() {
		return 0, false
	}
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, true
}

// DurationData computes a display duration and whether timing data exists.
// Active spans run until now. Closed spans prefer the stored minute count and
// fall back to the distance between the timestamps.
func DurationData(startedAt time.Time, endedAt time.Time, minutes *int, active bool, now time.Time) (time.Duration, bool) {
	if active {
		if startedAt.IsZero() {
			return 0, false
		}
		elapsed := now.Sub(startedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		return elapsed, true
	}

	if minutes != nil && *minutes >= 0 {
		return time.Duration(*minutes) * time.Minute, true
	}

	if !endedAt.IsZero() && !startedAt.IsZero() {
		elapsed := endedAt.Sub(startedAt)
		if elapsed < 0 {
			return 0, false
		}
		return elapsed, true
	}

	return 0, false
}
