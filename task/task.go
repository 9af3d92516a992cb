package task

import "time"

// Task represents a single unit of work owned by a user.
type Task struct {
	// ID is a unique identifier (8-char base32, derived from owner, title, and creation time).
	ID string `json:"id" yaml:"id"`

	// UserID references the owning user.
	UserID string `json:"user_id" yaml:"user_id"`

	// Title is the short summary of the task (max 500 chars).
	Title string `json:"title" yaml:"title"`

	// Description provides additional context, rendered as markdown.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Status is the current state of the task.
	Status Status `json:"status" yaml:"status"`

	// CreatedAt is when the task was created. It never changes.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// StartedAt is when the task entered in_progress.
	StartedAt *time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`

	// CompletedAt is when the task was completed (nil unless completed).
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`

	// DueDate is when the task should be finished.
	DueDate *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`

	// EstimatedMinutes is the expected effort in minutes.
	EstimatedMinutes *int `json:"estimated_duration,omitempty" yaml:"estimated_duration,omitempty"`

	// Tags are free-form lowercase labels.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// PriorityScore is the derived 0-100 urgency. It is filled in by ranking
	// and never persisted.
	PriorityScore float64 `json:"priority_score,omitempty" yaml:"priority_score,omitempty"`
}

// MinutesPtr returns a pointer to the provided minute count.
func MinutesPtr(minutes int) *int {
	return &minutes
}

// TimePtr returns a pointer to the provided time.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// clone returns a copy that shares no pointers with t.
func (t Task) clone() Task {
	out := t
	if t.StartedAt != nil {
		out.StartedAt = TimePtr(*t.StartedAt)
	}
	if t.CompletedAt != nil {
		out.CompletedAt = TimePtr(*t.CompletedAt)
	}
	if t.DueDate != nil {
		out.DueDate = TimePtr(*t.DueDate)
	}
	if t.EstimatedMinutes != nil {
		out.EstimatedMinutes = MinutesPtr(*t.EstimatedMinutes)
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}
