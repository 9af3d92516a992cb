// Package priority scores tasks by urgency.
//
// A score is the sum of four contributions (status, due date, effort, and
// age) clamped to [0, 100]. Scoring reads nothing but the task and the
// supplied instant, so the same inputs always produce the same score.
package priority

import (
	"sort"
	"time"

	internalage "github.com/amonks/focus/internal/age"
	"github.com/amonks/focus/task"
)

const (
	// MinScore is the lowest possible score.
	MinScore = 0.0
	// MaxScore is the highest possible score.
	MaxScore = 100.0
)

// Status contributions.
const (
	PendingBase    = 50.0
	InProgressBase = 75.0
	CompletedBase  = 0.0
)

// Due date contributions, by whole days until due.
const (
	OverdueBonus   = 100.0
	DueTodayBonus  = 90.0
	DueSoonBonus   = 80.0 // 1-2 days
	DueWeekBonus   = 60.0 // 3-7 days
	DueLaterFloor  = 20.0
	DueLaterCeil   = 60.0
	dueSoonMaxDays = 2
	dueWeekMaxDays = 7
)

// Effort contributions, by estimated minutes.
const (
	QuickWinBonus   = 10.0
	QuickWinMaxMins = 30
	LargeTaskBonus  = 20.0
	LargeTaskMinMin = 120
)

// Age contributions.
const (
	AgePerDay = 2.0
	AgeMax    = 20.0
)

// Note describes an input that was ignored or adjusted while scoring.
type Note string

const (
	// NoteUnknownStatus means the status earned no base score.
	NoteUnknownStatus Note = "unknown status"
	// NoteNegativeEstimate means a negative estimate was ignored.
	NoteNegativeEstimate Note = "negative estimate ignored"
	// NoteMissingCreatedAt means the task has no creation time, so age is zero.
	NoteMissingCreatedAt Note = "missing created_at"
	// NoteFutureCreatedAt means created_at is after now, so age is zero.
	NoteFutureCreatedAt Note = "created_at in the future"
)

// Breakdown is a score with each contribution shown separately.
type Breakdown struct {
	Status float64 `json:"status" yaml:"status"`
	Due    float64 `json:"due" yaml:"due"`
	Effort float64 `json:"effort" yaml:"effort"`
	Age    float64 `json:"age" yaml:"age"`

	// Raw is the unclamped sum.
	Raw float64 `json:"raw" yaml:"raw"`
	// Score is Raw clamped to [MinScore, MaxScore].
	Score float64 `json:"score" yaml:"score"`

	Notes []Note `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Score returns the task's urgency in [0, 100] as of now.
func Score(t task.Task, now time.Time) float64 {
	return Explain(t, now).Score
}

// Explain scores the task and reports each contribution.
func Explain(t task.Task, now time.Time) Breakdown {
	var b Breakdown

	b.Status = statusBase(t.Status)
	if !t.Status.IsValid() {
		b.Notes = append(b.Notes, NoteUnknownStatus)
	}

	if t.DueDate != nil {
		b.Due = DueContribution(internalage.CeilDays(t.DueDate.Sub(now)))
	}

	if t.EstimatedMinutes != nil {
		if *t.EstimatedMinutes < 0 {
			b.Notes = append(b.Notes, NoteNegativeEstimate)
		} else {
			b.Effort = EffortContribution(*t.EstimatedMinutes)
		}
	}

	switch {
	case t.CreatedAt.IsZero():
		b.Notes = append(b.Notes, NoteMissingCreatedAt)
	case t.CreatedAt.After(now):
		b.Notes = append(b.Notes, NoteFutureCreatedAt)
	default:
		b.Age = AgeContribution(internalage.CeilDays(now.Sub(t.CreatedAt)))
	}

	b.Raw = b.Status + b.Due + b.Effort + b.Age
	b.Score = clamp(b.Raw)
	return b
}

func statusBase(status task.Status) float64 {
	switch status {
	case task.StatusPending:
		return PendingBase
	case task.StatusInProgress:
		return InProgressBase
	default:
		return CompletedBase
	}
}

// DueContribution returns the due date bonus for a task due in days whole
// days (negative when overdue).
func DueContribution(days int) float64 {
	switch {
	case days < 0:
		return OverdueBonus
	case days == 0:
		return DueTodayBonus
	case days <= dueSoonMaxDays:
		return DueSoonBonus
	case days <= dueWeekMaxDays:
		return DueWeekBonus
	default:
		return max(DueLaterFloor, DueLaterCeil-float64(days))
	}
}

// EffortContribution returns the effort bonus for an estimate in minutes.
func EffortContribution(minutes int) float64 {
	switch {
	case minutes < 0:
		return 0
	case minutes <= QuickWinMaxMins:
		return QuickWinBonus
	case minutes >= LargeTaskMinMin:
		return LargeTaskBonus
	default:
		return 0
	}
}

// AgeContribution returns the age bonus for a task days days old.
func AgeContribution(days int) float64 {
	if days < 0 {
		days = 0
	}
	return min(AgeMax, float64(days)*AgePerDay)
}

func clamp(score float64) float64 {
	return min(MaxScore, max(MinScore, score))
}

// Ranked is a task with the breakdown behind its PriorityScore.
type Ranked struct {
	Task      task.Task
	Breakdown Breakdown
}

// RankExplained scores each task once and returns them by descending
// score with their breakdowns. Tasks with equal scores keep their input
// order.
func RankExplained(tasks []task.Task, now time.Time) []Ranked {
	ranked := make([]Ranked, len(tasks))
	for i, t := range tasks {
		b := Explain(t, now)
		t.PriorityScore = b.Score
		ranked[i] = Ranked{Task: t, Breakdown: b}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Task.PriorityScore > ranked[j].Task.PriorityScore
	})
	return ranked
}

// Rank returns a copy of tasks with PriorityScore set, ordered by
// descending score. Tasks with equal scores keep their input order.
func Rank(tasks []task.Task, now time.Time) []task.Task {
	explained := RankExplained(tasks, now)
	ranked := make([]task.Task, len(explained))
	for i, r := range explained {
		ranked[i] = r.Task
	}
	return ranked
}
