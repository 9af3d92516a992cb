// Package stats derives daily progress, completion counts, and streaks from
// a user's focus sessions.
//
// Day boundaries are local midnights in now.Location(); callers pick the
// zone by converting now before calling. Functions never modify their
// input.
package stats

import (
	"time"

	"github.com/amonks/focus/session"
)

// DailyStats summarizes a user's sessions as of an instant.
type DailyStats struct {
	// TotalMinutes is today's completed focus time.
	TotalMinutes int `json:"total_minutes" yaml:"total_minutes"`
	// CompletedSessions is the lifetime number of completed sessions.
	CompletedSessions int `json:"completed_sessions" yaml:"completed_sessions"`
	// StreakDays is the number of consecutive days with focus time.
	StreakDays int `json:"streak_days" yaml:"streak_days"`
}

// Aggregate computes the daily total, lifetime count, and streak.
func Aggregate(sessions []session.Session, now time.Time) DailyStats {
	return DailyStats{
		TotalMinutes:      TodayMinutes(sessions, now),
		CompletedSessions: CompletedSessions(sessions),
		StreakDays:        Streak(sessions, now),
	}
}

// StartOfDay returns local midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayKey identifies a calendar day independent of DST-shifted midnights.
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

// counts reports whether a session contributes focus time.
func counts(s session.Session) bool {
	return s.Completed && s.Type.IsFocus()
}

// TodayMinutes sums the minutes of completed focus sessions that started
// today.
func TodayMinutes(sessions []session.Session, now time.Time) int {
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1)

	total := 0
	for _, s := range sessions {
		if !counts(s) {
			continue
		}
		if s.StartTime.Before(start) || !s.StartTime.Before(end) {
			continue
		}
		minutes, _ := session.Minutes(s)
		total += minutes
	}
	return total
}

// CompletedSessions counts every completed session, of any type and day.
func CompletedSessions(sessions []session.Session) int {
	count := 0
	for _, s := range sessions {
		if s.Completed {
			count++
		}
	}
	return count
}

// Streak counts consecutive days, ending today, with at least one completed
// focus session longer than zero minutes. A today without sessions yet does
// not break the streak.
func Streak(sessions []session.Session, now time.Time) int {
	loc := now.Location()
	today := StartOfDay(now)

	active := make(map[dayKey]bool)
	for _, s := range sessions {
		if !counts(s) {
			continue
		}
		if minutes, _ := session.Minutes(s); minutes <= 0 {
			continue
		}
		active[keyOf(s.StartTime.In(loc))] = true
	}

	streak := 0
	day := today
	if active[keyOf(day)] {
		streak++
	}
	for {
		day = day.AddDate(0, 0, -1)
		if !active[keyOf(day)] {
			return streak
		}
		streak++
	}
}
