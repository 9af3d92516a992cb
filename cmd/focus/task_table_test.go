package main

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/focus/priority"
	"github.com/amonks/focus/task"
)

var tableNow = time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)

func plainHighlight(id string, _ int) string { return id }

func TestFormatTaskTable(t *testing.T) {
	due := tableNow.Add(50 * time.Hour)
	tasks := []task.Task{
		{
			ID:               "abc12345",
			Title:            "Write report",
			Status:           task.StatusInProgress,
			CreatedAt:        tableNow.Add(-72 * time.Hour),
			DueDate:          &due,
			EstimatedMinutes: task.MinutesPtr(90),
		},
		{ID: "def67890", Title: "Inbox zero", Status: task.StatusPending, CreatedAt: tableNow.Add(-time.Hour)},
	}

	out := formatTaskTable(tasks, nil, plainHighlight, tableNow)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.HasSuffix(lines[0], "TITLE") {
		t.Errorf("unexpected header %q", lines[0])
	}
	for _, want := range []string{"abc12345", "in progress", "in 2d", "1h30m", "3d", "Write report"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row missing %q: %q", want, lines[1])
		}
	}
	if !strings.Contains(lines[2], "-") || !strings.HasSuffix(lines[2], "Inbox zero") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestFormatRankTable(t *testing.T) {
	tasks := []task.Task{
		{ID: "abc12345", Title: "Urgent", Status: task.StatusInProgress, PriorityScore: 100},
		{ID: "def67890", Title: "Someday", Status: task.StatusPending, PriorityScore: 54},
	}

	out := formatRankTable(tasks, nil, plainHighlight, tableNow)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "1  100.0") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2   54.0") {
		t.Errorf("unexpected second row %q", lines[2])
	}
}

func TestFormatBreakdown(t *testing.T) {
	got := formatBreakdown(priority.Breakdown{Status: 75, Due: 100, Effort: 10, Age: 20, Raw: 205, Score: 100})
	want := "100.0 (status 75 + due 100 + effort 10 + age 20), capped from 205"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = formatBreakdown(priority.Breakdown{Status: 50, Raw: 50, Score: 50, Notes: []priority.Note{priority.NoteNegativeEstimate}})
	if !strings.HasSuffix(got, "; negative estimate ignored") {
		t.Errorf("expected note suffix, got %q", got)
	}
}

func TestFormatTaskDetail(t *testing.T) {
	item := task.Task{
		ID:          "abc12345",
		Title:       "Write report",
		Status:      task.StatusPending,
		CreatedAt:   tableNow,
		UpdatedAt:   tableNow,
		Tags:        []string{"work"},
		Description: "Plain text",
	}
	breakdown := priority.Explain(item, tableNow)

	out := formatTaskDetail(item, breakdown, func(id string) string { return id }, tableNow, time.UTC, 80)
	for _, want := range []string{
		"ID:        abc12345\n",
		"Status:    pending\n",
		"Created:   2024-03-14 12:00 (0s ago)\n",
		"Estimate:  -\n",
		"Tags:      work\n",
		"Priority:  50.0 (status 50 + due 0 + effort 0 + age 0)\n",
		"Description:\n",
		"Plain text",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}
