package task

import (
	"time"

	internalstrings "github.com/amonks/focus/internal/strings"
)

// CreateOptions configures a new task.
type CreateOptions struct {
	// Description provides additional context.
	Description string

	// DueDate is when the task should be finished. Nil means no deadline.
	DueDate *time.Time

	// EstimatedMinutes is the expected effort. Nil means unknown.
	EstimatedMinutes *int

	// Tags are free-form labels; they are lowercased and deduplicated.
	Tags []string
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Title            *string
	Description      *string
	Status           *Status
	DueDate          *time.Time
	EstimatedMinutes *int
	Tags             *[]string

	// ClearDueDate removes the deadline. It wins over DueDate.
	ClearDueDate bool

	// ClearEstimate removes the estimate. It wins over EstimatedMinutes.
	ClearEstimate bool
}

// StatusUpdate returns options that only change the status.
func StatusUpdate(status Status) UpdateOptions {
	return UpdateOptions{Status: &status}
}

// New builds a pending task owned by userID.
func New(userID, title string, opts CreateOptions, now time.Time) (Task, error) {
	title = internalstrings.NormalizeWhitespace(title)
	if err := ValidateTitle(title); err != nil {
		return Task{}, err
	}
	if err := ValidateEstimate(opts.EstimatedMinutes); err != nil {
		return Task{}, err
	}

	t := Task{
		ID:          GenerateID(userID, title, now),
		UserID:      userID,
		Title:       title,
		Description: opts.Description,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Tags:        internalstrings.SplitList(opts.Tags...),
	}
	if opts.DueDate != nil {
		t.DueDate = TimePtr(*opts.DueDate)
	}
	if opts.EstimatedMinutes != nil {
		t.EstimatedMinutes = MinutesPtr(*opts.EstimatedMinutes)
	}

	if err := ValidateTask(&t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Apply updates t in place. On error t may be partially modified, so
// callers apply updates to a copy.
func Apply(t *Task, opts UpdateOptions, now time.Time) error {
	if opts.Title != nil {
		title := internalstrings.NormalizeWhitespace(*opts.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		t.Title = title
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.Status != nil {
		if err := applyStatus(t, *opts.Status, now); err != nil {
			return err
		}
	}
	if opts.ClearDueDate {
		t.DueDate = nil
	} else if opts.DueDate != nil {
		t.DueDate = TimePtr(*opts.DueDate)
	}
	if opts.ClearEstimate {
		t.EstimatedMinutes = nil
	} else if opts.EstimatedMinutes != nil {
		if err := ValidateEstimate(opts.EstimatedMinutes); err != nil {
			return err
		}
		t.EstimatedMinutes = MinutesPtr(*opts.EstimatedMinutes)
	}
	if opts.Tags != nil {
		t.Tags = internalstrings.SplitList(*opts.Tags...)
	}

	t.UpdatedAt = now
	t.PriorityScore = 0

	return ValidateTask(t)
}

func applyStatus(t *Task, next Status, now time.Time) error {
	if err := Transition(t.Status, next); err != nil {
		return err
	}
	if next == t.Status {
		return nil
	}

	t.Status = next
	switch next {
	case StatusPending:
		t.StartedAt = nil
		t.CompletedAt = nil
	case StatusInProgress:
		t.StartedAt = TimePtr(now)
		t.CompletedAt = nil
	case StatusCompleted:
		t.CompletedAt = TimePtr(now)
	}
	return nil
}
