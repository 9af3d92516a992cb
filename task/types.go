// Package task defines the task record, its status state machine, and a
// file-backed task repository.
//
// The public API mirrors the CLI commands:
//   - CreateTask, UpdateTask, DeleteTask for the task lifecycle
//   - GetTask, ListTasks for querying
//
// Status changes follow Transition: pending -> in_progress -> completed,
// pending -> completed, and completed -> pending to undo a completion.
package task

import (
	"fmt"

	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/amonks/focus/internal/validation"
)

// Status represents the state of a task.
type Status string

const (
	// StatusPending indicates the task has not been started.
	StatusPending Status = "pending"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "in_progress"

	// StatusCompleted indicates the task is finished.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsOpen reports whether the task still needs work.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500

// ParseStatus normalizes user input into a Status.
// "in-progress" and "done" are accepted as aliases.
func ParseStatus(value string) (Status, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	switch normalized {
	case "in-progress", "started":
		normalized = string(StatusInProgress)
	case "done":
		normalized = string(StatusCompleted)
	}
	status := Status(normalized)
	if !status.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

// Label returns a human-readable status name.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("unknown (%s)", string(s))
	}
}
