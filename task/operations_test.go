package task

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	due := testNow.Add(48 * time.Hour)
	created, err := New("user-1", "  Write   quarterly report ", CreateOptions{
		Description:      "numbers *and* charts",
		DueDate:          &due,
		EstimatedMinutes: MinutesPtr(45),
		Tags:             []string{"Work", "reports, work"},
	}, testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if created.Title != "Write quarterly report" {
		t.Errorf("title = %q", created.Title)
	}
	if created.Status != StatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if len(created.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", created.ID)
	}
	if !created.CreatedAt.Equal(testNow) || !created.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps = %v / %v, want %v", created.CreatedAt, created.UpdatedAt, testNow)
	}
	if created.DueDate == nil || !created.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", created.DueDate, due)
	}
	if created.EstimatedMinutes == nil || *created.EstimatedMinutes != 45 {
		t.Errorf("estimate = %v, want 45", created.EstimatedMinutes)
	}
	if strings.Join(created.Tags, ",") != "work,reports" {
		t.Errorf("tags = %v, want [work reports]", created.Tags)
	}
	if created.StartedAt != nil || created.CompletedAt != nil {
		t.Error("new task should have no started/completed timestamps")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		title   string
		opts    CreateOptions
		wantErr error
	}{
		{"empty title", "u", "   ", CreateOptions{}, ErrEmptyTitle},
		{"long title", "u", strings.Repeat("x", MaxTitleLength+1), CreateOptions{}, ErrTitleTooLong},
		{"missing owner", "", "title", CreateOptions{}, ErrMissingOwner},
		{"negative estimate", "u", "title", CreateOptions{EstimatedMinutes: MinutesPtr(-5)}, ErrNegativeEstimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.userID, tt.title, tt.opts, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApply_StatusTimestamps(t *testing.T) {
	item, err := New("u", "task", CreateOptions{}, testNow)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	startAt := testNow.Add(time.Hour)
	if err := Apply(&item, StatusUpdate(StatusInProgress), startAt); err != nil {
		t.Fatalf("start: %v", err)
	}
	if item.StartedAt == nil || !item.StartedAt.Equal(startAt) {
		t.Errorf("started_at = %v, want %v", item.StartedAt, startAt)
	}

	doneAt := testNow.Add(2 * time.Hour)
	if err := Apply(&item, StatusUpdate(StatusCompleted), doneAt); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if item.CompletedAt == nil || !item.CompletedAt.Equal(doneAt) {
		t.Errorf("completed_at = %v, want %v", item.CompletedAt, doneAt)
	}
	if item.StartedAt == nil || !item.StartedAt.Equal(startAt) {
		t.Errorf("completing should keep started_at, got %v", item.StartedAt)
	}
	if !item.UpdatedAt.Equal(doneAt) {
		t.Errorf("updated_at = %v, want %v", item.UpdatedAt, doneAt)
	}

	if err := Apply(&item, StatusUpdate(StatusPending), doneAt.Add(time.Minute)); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if item.StartedAt != nil || item.CompletedAt != nil {
		t.Error("reopened task should clear started/completed timestamps")
	}
}

func TestApply_RejectsBackwardsTransition(t *testing.T) {
	item, _ := New("u", "task", CreateOptions{}, testNow)
	if err := Apply(&item, StatusUpdate(StatusInProgress), testNow); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := Apply(&item, StatusUpdate(StatusPending), testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApply_Fields(t *testing.T) {
	due := testNow.Add(24 * time.Hour)
	item, _ := New("u", "task", CreateOptions{DueDate: &due, EstimatedMinutes: MinutesPtr(30)}, testNow)
	item.PriorityScore = 77

	title := "renamed  task"
	tags := []string{"Home"}
	err := Apply(&item, UpdateOptions{
		Title:         &title,
		Tags:          &tags,
		ClearDueDate:  true,
		ClearEstimate: true,
	}, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if item.Title != "renamed task" {
		t.Errorf("title = %q", item.Title)
	}
	if item.DueDate != nil || item.EstimatedMinutes != nil {
		t.Errorf("expected due date and estimate cleared, got %v %v", item.DueDate, item.EstimatedMinutes)
	}
	if len(item.Tags) != 1 || item.Tags[0] != "home" {
		t.Errorf("tags = %v", item.Tags)
	}
	if item.PriorityScore != 0 {
		t.Errorf("priority score should be reset, got %v", item.PriorityScore)
	}

	if err := Apply(&item, UpdateOptions{EstimatedMinutes: MinutesPtr(-1)}, testNow); !errors.Is(err, ErrNegativeEstimate) {
		t.Errorf("expected ErrNegativeEstimate, got %v", err)
	}
}

func TestValidateTask_CompletedAtConsistency(t *testing.T) {
	item := Task{UserID: "u", Title: "t", Status: StatusCompleted}
	if err := ValidateTask(&item); !errors.Is(err, ErrCompletedTaskMissingCompletedAt) {
		t.Errorf("expected ErrCompletedTaskMissingCompletedAt, got %v", err)
	}

	item.Status = StatusPending
	item.CompletedAt = TimePtr(testNow)
	if err := ValidateTask(&item); !errors.Is(err, ErrOpenTaskHasCompletedAt) {
		t.Errorf("expected ErrOpenTaskHasCompletedAt, got %v", err)
	}
}

func TestDurationData(t *testing.T) {
	started := testNow.Add(-90 * time.Minute)
	inProgress := Task{Status: StatusInProgress, StartedAt: &started}
	got, ok := DurationData(inProgress, testNow)
	if !ok || got != 90*time.Minute {
		t.Errorf("in progress duration = %v, %v", got, ok)
	}

	completed := testNow.Add(-30 * time.Minute)
	done := Task{Status: StatusCompleted, StartedAt: &started, CompletedAt: &completed}
	got, ok = DurationData(done, testNow)
	if !ok || got != time.Hour {
		t.Errorf("completed duration = %v, %v", got, ok)
	}

	if _, ok := DurationData(Task{Status: StatusPending}, testNow); ok {
		t.Error("pending task should have no duration")
	}
}
