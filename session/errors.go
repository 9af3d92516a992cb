package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSessionType indicates a session type is not focus or break.
	ErrInvalidSessionType = errors.New("invalid session type")
	// ErrMissingOwner indicates a session has no user id.
	ErrMissingOwner = errors.New("session owner is required")
	// ErrMissingStartTime indicates a session has no start time.
	ErrMissingStartTime = errors.New("session start time is required")
	// ErrNegativeDuration indicates a duration below zero minutes.
	ErrNegativeDuration = errors.New("duration cannot be negative")
	// ErrEndBeforeStart indicates an end time earlier than the start time.
	ErrEndBeforeStart = errors.New("end time is before start time")
	// ErrCompletedSessionMissingEndTime indicates a closed session without an end time.
	ErrCompletedSessionMissingEndTime = errors.New("completed session must have end_time")
	// ErrOpenSessionHasEndTime indicates a running session with an end time.
	ErrOpenSessionHasEndTime = errors.New("open session cannot have end_time")
	// ErrSessionClosed indicates an update that would reopen a closed session.
	ErrSessionClosed = errors.New("session is closed")
	// ErrSessionNotFound indicates the requested session is missing.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAmbiguousSessionIDPrefix indicates an ID prefix matches several sessions.
	ErrAmbiguousSessionIDPrefix = errors.New("ambiguous session ID prefix")
	// ErrNoActiveSession indicates the user has no running session.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionAlreadyActive indicates the user already has a running session.
	ErrSessionAlreadyActive = errors.New("session already active")
)

// ValidateSession checks that a session is safe to persist.
func ValidateSession(s *Session) error {
	if s.UserID == "" {
		return ErrMissingOwner
	}
	if s.StartTime.IsZero() {
		return ErrMissingStartTime
	}
	if !s.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSessionType, s.Type)
	}
	if s.Duration != nil && *s.Duration < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeDuration, *s.Duration)
	}
	if s.PlannedMinutes != nil && *s.PlannedMinutes < 0 {
		return fmt.Errorf("%w: planned %d", ErrNegativeDuration, *s.PlannedMinutes)
	}
	if s.EndTime != nil && s.EndTime.Before(s.StartTime) {
		return ErrEndBeforeStart
	}
	if s.Completed && s.EndTime == nil {
		return ErrCompletedSessionMissingEndTime
	}
	if !s.Completed && s.EndTime != nil {
		return ErrOpenSessionHasEndTime
	}
	return nil
}
