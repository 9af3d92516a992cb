package session

import (
	"time"

	"github.com/google/uuid"

	internalage "github.com/amonks/focus/internal/age"
)

// CreateOptions configures a new session.
type CreateOptions struct {
	// Type defaults to focus.
	Type Type

	// TaskID optionally links the session to a task.
	TaskID string

	// StartTime defaults to the creation time.
	StartTime time.Time

	// PlannedMinutes is the timer length.
	PlannedMinutes *int

	// Completed creates an already-closed session, for logging past work.
	// EndTime and Duration are derived from each other when only one is set.
	Completed bool
	EndTime   *time.Time
	Duration  *int

	Notes string
}

// UpdateOptions configures fields to update on a session.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	TaskID *string
	Notes  *string

	// Completed closes the session. Setting it to false on a closed session
	// fails with ErrSessionClosed.
	Completed *bool

	// EndTime defaults to now when closing.
	EndTime *time.Time

	// Duration defaults to the rounded distance between start and end when
	// closing.
	Duration *int
}

// CloseUpdate returns options that close a session at the given time.
func CloseUpdate(at time.Time) UpdateOptions {
	completed := true
	return UpdateOptions{Completed: &completed, EndTime: &at}
}

// New builds a session owned by userID.
func New(userID string, opts CreateOptions, now time.Time) (Session, error) {
	typ := opts.Type
	if typ == "" {
		typ = TypeFocus
	}
	start := opts.StartTime
	if start.IsZero() {
		start = now
	}

	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    opts.TaskID,
		Type:      typ,
		StartTime: start,
		Notes:     opts.Notes,
		UpdatedAt: now,
	}
	if opts.PlannedMinutes != nil {
		s.PlannedMinutes = MinutesPtr(*opts.PlannedMinutes)
	}
	if opts.Completed {
		closeSession(&s, opts.EndTime, opts.Duration, now)
	}

	if err := ValidateSession(&s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Apply updates s in place. On error s may be partially modified, so callers
// apply updates to a copy.
func Apply(s *Session, opts UpdateOptions, now time.Time) error {
	if opts.Completed != nil && !*opts.Completed && s.Completed {
		return ErrSessionClosed
	}
	if opts.TaskID != nil {
		s.TaskID = *opts.TaskID
	}
	if opts.Notes != nil {
		s.Notes = *opts.Notes
	}

	switch {
	case opts.Completed != nil && *opts.Completed && !s.Completed:
		closeSession(s, opts.EndTime, opts.Duration, now)
	case s.Completed:
		if opts.EndTime != nil {
			s.EndTime = TimePtr(*opts.EndTime)
		}
		if opts.Duration != nil {
			s.Duration = MinutesPtr(*opts.Duration)
		}
	case opts.EndTime != nil:
		return ErrOpenSessionHasEndTime
	}

	s.UpdatedAt = now
	return ValidateSession(s)
}

// closeSession marks s completed. A missing end time is derived from the duration,
// or defaults to now; a missing duration is derived from the timestamps.
func closeSession(s *Session, endTime *time.Time, duration *int, now time.Time) {
	s.Completed = true

	switch {
	case endTime != nil:
		s.EndTime = TimePtr(*endTime)
	case duration != nil && *duration >= 0:
		s.EndTime = TimePtr(s.StartTime.Add(time.Duration(*duration) * time.Minute))
	default:
		s.EndTime = TimePtr(now)
	}

	if duration != nil {
		s.Duration = MinutesPtr(*duration)
		return
	}
	if elapsed := s.EndTime.Sub(s.StartTime); elapsed >= 0 {
		s.Duration = MinutesPtr(internalage.RoundMinutes(elapsed))
	}
}

// Elapsed returns how long the session has run (open) or ran (closed).
func Elapsed(item Session, now time.Time) time.Duration {
	var end time.Time
	if item.EndTime != nil {
		end = *item.EndTime
	}
	elapsed, ok := internalage.DurationData(item.StartTime, end, item.Duration, item.IsOpen(), now)
	if !ok {
		return 0
	}
	return elapsed
}

// Remaining returns the time left on an open session's timer, or zero when
// no timer was planned or it has expired.
func Remaining(item Session, now time.Time) time.Duration {
	if !item.IsOpen() || item.PlannedMinutes == nil {
		return 0
	}
	left := time.Duration(*item.PlannedMinutes)*time.Minute - Elapsed(item, now)
	if left < 0 {
		return 0
	}
	return left
}
