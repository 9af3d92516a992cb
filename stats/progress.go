package stats

import (
	"time"

	"github.com/amonks/focus/session"
)

// DefaultGoalMinutes is the daily focus goal used when none is configured.
const DefaultGoalMinutes = 240

// Progress measures today's focus time against a daily goal.
type Progress struct {
	TotalMinutes     int     `json:"total_minutes" yaml:"total_minutes"`
	GoalMinutes      int     `json:"goal_minutes" yaml:"goal_minutes"`
	Fraction         float64 `json:"fraction" yaml:"fraction"`
	RemainingMinutes int     `json:"remaining_minutes" yaml:"remaining_minutes"`
	GoalReached      bool    `json:"goal_reached" yaml:"goal_reached"`
}

// ProgressToward compares total against goal. Fraction is capped at 1.
// A non-positive goal falls back to DefaultGoalMinutes.
func ProgressToward(total, goal int) Progress {
	if goal <= 0 {
		goal = DefaultGoalMinutes
	}
	if total < 0 {
		total = 0
	}

	p := Progress{
		TotalMinutes: total,
		GoalMinutes:  goal,
		Fraction:     min(1, float64(total)/float64(goal)),
	}
	if total >= goal {
		p.GoalReached = true
	} else {
		p.RemainingMinutes = goal - total
	}
	return p
}

// DayTotal is the focus time for one calendar day.
type DayTotal struct {
	Day     time.Time `json:"day" yaml:"day"`
	Minutes int       `json:"minutes" yaml:"minutes"`
}

// History returns focus minutes for each of the last days days, oldest
// first and ending with today.
func History(sessions []session.Session, now time.Time, days int) []DayTotal {
	if days <= 0 {
		return nil
	}
	loc := now.Location()

	byDay := make(map[dayKey]int)
	for _, s := range sessions {
		if !counts(s) {
			continue
		}
		minutes, _ := session.Minutes(s)
		byDay[keyOf(s.StartTime.In(loc))] += minutes
	}

	today := StartOfDay(now)
	result := make([]DayTotal, days)
	for i := range result {
		day := today.AddDate(0, 0, i-(days-1))
		result[i] = DayTotal{Day: day, Minutes: byDay[keyOf(day)]}
	}
	return result
}
