package task

import (
	"time"

	internalage "github.com/amonks/focus/internal/age"
)

// AgeData computes the display age and whether timing data exists.
func AgeData(item Task, now time.Time) (time.Duration, bool) {
	return internalage.AgeData(item.CreatedAt, now)
}

// DurationData computes how long the task has been (or was) in progress.
func DurationData(item Task, now time.Time) (time.Duration, bool) {
	if item.StartedAt == nil {
		return 0, false
	}

	switch item.Status {
	case StatusInProgress:
		return internalage.DurationData(*item.StartedAt, time.Time{}, nil, true, now)
	case StatusCompleted:
		if item.CompletedAt == nil {
			return 0, false
		}
		return internalage.DurationData(*item.StartedAt, *item.CompletedAt, nil, false, now)
	default:
		return 0, false
	}
}
