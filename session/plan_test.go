package session

import (
	"testing"
	"time"
)

func completedAt(typ Type, start time.Time) Session {
	end := start.Add(25 * time.Minute)
	return Session{Type: typ, StartTime: start, EndTime: &end, Duration: MinutesPtr(25), Completed: true}
}

func TestNextPlan(t *testing.T) {
	timer := DefaultTimer()
	now := time.Date(2024, 3, 14, 15, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return time.Date(2024, 3, 14, hour, 0, 0, 0, time.UTC) }

	tests := []struct {
		name     string
		sessions []Session
		want     Plan
	}{
		{"no history", nil, Plan{Type: TypeFocus, Minutes: 25}},
		{"after focus", []Session{completedAt(TypeFocus, at(9))}, Plan{Type: TypeBreak, Minutes: 5}},
		{"after break", []Session{completedAt(TypeFocus, at(9)), completedAt(TypeBreak, at(10))}, Plan{Type: TypeFocus, Minutes: 25}},
		{
			"fourth focus earns long break",
			[]Session{
				completedAt(TypeFocus, at(14)),
				completedAt(TypeFocus, at(11)),
				completedAt(TypeFocus, at(10)),
				completedAt(TypeFocus, at(9)),
			},
			Plan{Type: TypeBreak, Minutes: 15, LongBreak: true},
		},
		{"open session ignored", []Session{{Type: TypeFocus, StartTime: at(14)}}, Plan{Type: TypeFocus, Minutes: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timer.NextPlan(tt.sessions, now); got != tt.want {
				t.Errorf("NextPlan() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanFor(t *testing.T) {
	timer := Timer{FocusMinutes: 50, BreakMinutes: 10}
	if got := timer.PlanFor(TypeBreak); got.Minutes != 10 || got.Type != TypeBreak {
		t.Errorf("PlanFor(break) = %+v", got)
	}
	if got := timer.PlanFor(""); got.Minutes != 50 || got.Type != TypeFocus {
		t.Errorf("PlanFor(\"\") = %+v", got)
	}
}
