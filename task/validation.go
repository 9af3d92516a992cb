package task

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrMissingOwner is returned when a task has no user id.
	ErrMissingOwner = errors.New("task owner is required")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTransition is returned when a status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNegativeEstimate is returned when an estimate is below zero.
	ErrNegativeEstimate = errors.New("estimated duration cannot be negative")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrCompletedTaskMissingCompletedAt is returned when a completed task has no completed_at timestamp.
	ErrCompletedTaskMissingCompletedAt = errors.New("completed task must have completed_at timestamp")

	// ErrOpenTaskHasCompletedAt is returned when an unfinished task has a completed_at timestamp.
	ErrOpenTaskHasCompletedAt = errors.New("unfinished task cannot have completed_at timestamp")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateEstimate checks an optional estimate in minutes.
func ValidateEstimate(minutes *int) error {
	if minutes != nil && *minutes < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeEstimate, *minutes)
	}
	return nil
}

// ValidateTask checks that a task is safe to persist.
func ValidateTask(t *Task) error {
	if t.UserID == "" {
		return ErrMissingOwner
	}

	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	if err := ValidateEstimate(t.EstimatedMinutes); err != nil {
		return err
	}

	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return ErrCompletedTaskMissingCompletedAt
	}
	if t.Status != StatusCompleted && t.CompletedAt != nil {
		return ErrOpenTaskHasCompletedAt
	}

	return nil
}
