// Package session defines focus session records, their open/closed
// lifecycle, a file-backed session repository, and the timer Manager used by
// the CLI.
package session

import (
	"time"

	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/amonks/focus/internal/validation"
)

// Type distinguishes focus work from breaks.
type Type string

const (
	// TypeFocus is a timed block of work.
	TypeFocus Type = "focus"
	// TypeBreak is a rest period between focus sessions.
	TypeBreak Type = "break"
)

// ValidTypes returns all valid session types.
func ValidTypes() []Type {
	return []Type{TypeFocus, TypeBreak}
}

// IsValid returns true if the type is a known value.
func (t Type) IsValid() bool {
	return t == TypeFocus || t == TypeBreak
}

// IsFocus reports whether the type counts as focus time.
// Records written without a type are focus sessions.
func (t Type) IsFocus() bool {
	return t == TypeFocus || t == ""
}

// ParseType normalizes user input into a Type.
func ParseType(value string) (Type, error) {
	typ := Type(internalstrings.NormalizeLowerTrimSpace(value))
	if typ == "" {
		return TypeFocus, nil
	}
	if !typ.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidSessionType, Type(value), ValidTypes())
	}
	return typ, nil
}

// Session is one timed focus or break period.
type Session struct {
	// ID is a random UUID.
	ID string `json:"id" yaml:"id"`

	// UserID references the owning user.
	UserID string `json:"user_id" yaml:"user_id"`

	// TaskID optionally references the task being worked on.
	TaskID string `json:"task_id,omitempty" yaml:"task_id,omitempty"`

	// Type is focus or break.
	Type Type `json:"session_type" yaml:"session_type"`

	// StartTime is when the timer started.
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// EndTime is set when the session closes.
	EndTime *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`

	// Duration is the recorded length in minutes.
	Duration *int `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Completed is true once the session has closed.
	Completed bool `json:"completed" yaml:"completed"`

	// PlannedMinutes is the timer length chosen at start.
	PlannedMinutes *int `json:"planned_minutes,omitempty" yaml:"planned_minutes,omitempty"`

	// Notes is free text added when the session ends.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// UpdatedAt is when the record last changed.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// IsOpen reports whether the timer is still running.
func (s Session) IsOpen() bool {
	return !s.Completed
}

// MinutesPtr returns a pointer to the provided minute count.
func MinutesPtr(minutes int) *int {
	return &minutes
}

// TimePtr returns a pointer to the provided time.
func TimePtr(t time.Time) *time.Time {
	return &t
}

func (s Session) clone() Session {
	out := s
	if s.EndTime != nil {
		out.EndTime = TimePtr(*s.EndTime)
	}
	if s.Duration != nil {
		out.Duration = MinutesPtr(*s.Duration)
	}
	if s.PlannedMinutes != nil {
		out.PlannedMinutes = MinutesPtr(*s.PlannedMinutes)
	}
	return out
}
