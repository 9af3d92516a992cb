package session

import "time"

// Timer holds the pomodoro-style timer lengths.
type Timer struct {
	FocusMinutes           int
	BreakMinutes           int
	LongBreakMinutes       int
	SessionsUntilLongBreak int
}

// DefaultTimer returns 25 minute focus blocks, 5 minute breaks, and a
// 15 minute break after every fourth focus block.
func DefaultTimer() Timer {
	return Timer{
		FocusMinutes:           25,
		BreakMinutes:           5,
		LongBreakMinutes:       15,
		SessionsUntilLongBreak: 4,
	}
}

// Plan is the timer to run next.
type Plan struct {
	Type      Type
	Minutes   int
	LongBreak bool
}

// PlanFor returns the timer for an explicitly chosen session type.
func (t Timer) PlanFor(typ Type) Plan {
	if typ == TypeBreak {
		return Plan{Type: TypeBreak, Minutes: t.BreakMinutes}
	}
	return Plan{Type: TypeFocus, Minutes: t.FocusMinutes}
}

// NextPlan alternates focus and break: a break follows a completed focus
// session, and every SessionsUntilLongBreak-th focus session of the day
// earns a long break. sessions may be in any order.
func (t Timer) NextPlan(sessions []Session, now time.Time) Plan {
	var last *Session
	for i := range sessions {
		s := &sessions[i]
		if !s.Completed || s.StartTime.After(now) {
			continue
		}
		if last == nil || s.StartTime.After(last.StartTime) {
			last = s
		}
	}
	if last == nil || !last.Type.IsFocus() {
		return t.PlanFor(TypeFocus)
	}

	if t.SessionsUntilLongBreak > 0 {
		today := focusCountOnDay(sessions, now)
		if today > 0 && today%t.SessionsUntilLongBreak == 0 {
			return Plan{Type: TypeBreak, Minutes: t.LongBreakMinutes, LongBreak: true}
		}
	}
	return t.PlanFor(TypeBreak)
}

func focusCountOnDay(sessions []Session, now time.Time) int {
	loc := now.Location()
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	count := 0
	for _, s := range sessions {
		if !s.Completed || !s.Type.IsFocus() {
			continue
		}
		if s.StartTime.Before(start) || !s.StartTime.Before(end) {
			continue
		}
		count++
	}
	return count
}
